package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) NormalizeLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.NormalizeLeague")
	defer span.End()

	label := strings.TrimSpace(r.URL.Query().Get("label"))
	l := h.leagueService.Normalize(label)
	writeSuccess(ctx, w, http.StatusOK, leagueNormalizeDTO{
		Label:       label,
		League:      string(l),
		DisplayName: l.DisplayName(),
	})
}

func (h *Handler) ListChains(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChains")
	defer span.End()

	chains := h.leagueService.Chains()
	items := make([]chainDTO, 0, len(chains))
	for _, c := range chains {
		adapters := c.Adapters
		if adapters == nil {
			adapters = []string{}
		}
		items = append(items, chainDTO{
			League:      string(c.League),
			DisplayName: c.DisplayName,
			Adapters:    adapters,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
