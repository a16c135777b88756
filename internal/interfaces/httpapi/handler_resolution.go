package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchday-intel/internal/usecase"
)

func (h *Handler) ResolveLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveLineup")
	defer span.End()

	req, err := h.fixtureFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result := h.resolver.ResolveLineup(ctx, req.Home, req.Away, req.Date, req.League)
	writeSuccess(ctx, w, http.StatusOK, lineupToDTO(result))
}

func (h *Handler) ResolveReferee(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveReferee")
	defer span.End()

	req, err := h.fixtureFromQuery(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result := h.resolver.ResolveReferee(ctx, req.Home, req.Away, req.Date, req.League)
	writeSuccess(ctx, w, http.StatusOK, refereeToDTO(result))
}

func (h *Handler) ResolveMatchday(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveMatchday")
	defer span.End()

	var body matchdayResolveRequest
	if err := h.decodeJSON(w, r, &body); err != nil {
		writeError(ctx, w, err)
		return
	}
	for i := range body.Fixtures {
		body.Fixtures[i] = body.Fixtures[i].trimmed()
	}
	if err := h.validateRequest(ctx, body); err != nil {
		writeError(ctx, w, err)
		return
	}

	requests := make([]usecase.FixtureRequest, 0, len(body.Fixtures))
	for _, item := range body.Fixtures {
		req, err := item.toRequest()
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		requests = append(requests, req)
	}

	reports := h.matchdays.Resolve(ctx, requests)
	items := make([]matchReportDTO, 0, len(reports))
	for _, report := range reports {
		items = append(items, matchReportDTO{
			Lineup:  lineupToDTO(report.Lineup),
			Referee: refereeToDTO(report.Referee),
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) fixtureFromQuery(r *http.Request) (usecase.FixtureRequest, error) {
	values := r.URL.Query()
	q := fixtureQuery{
		Home:   values.Get("home"),
		Away:   values.Get("away"),
		Date:   values.Get("date"),
		League: values.Get("league"),
	}.trimmed()
	if err := h.validateRequest(r.Context(), q); err != nil {
		return usecase.FixtureRequest{}, err
	}
	return q.toRequest()
}
