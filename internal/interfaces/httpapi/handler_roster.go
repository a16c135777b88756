package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	team := strings.TrimSpace(r.PathValue("team"))
	item, err := h.rosterService.Roster(ctx, team)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "team", team, "error", err)
		writeError(ctx, w, err)
		return
	}

	lastKnown, err := h.rosterService.LastKnownLineup(ctx, item.Team.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "get last known lineup failed", "team", item.Team.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(item, lastKnown))
}
