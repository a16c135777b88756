package httpapi

import (
	"context"
	"fmt"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	resolver      usecase.MatchdayResolver
	matchdays     *usecase.MatchdayService
	leagueService *usecase.LeagueService
	rosterService *usecase.RosterService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	resolver usecase.MatchdayResolver,
	matchdays *usecase.MatchdayService,
	leagueService *usecase.LeagueService,
	rosterService *usecase.RosterService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		resolver:      resolver,
		matchdays:     matchdays,
		leagueService: leagueService,
		rosterService: rosterService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, out any) error {
	decoder := sonic.ConfigStd.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}
