package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, opts RouterOptions) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}
	if !opts.SwaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerLeagueRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues/normalize", handler.NormalizeLeague)
	mux.HandleFunc("GET /v1/leagues/chains", handler.ListChains)
}

// Resolve endpoints always answer 200 with an envelope; only malformed input
// is rejected.
func registerResolutionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/lineups/resolve", handler.ResolveLineup)
	mux.HandleFunc("GET /v1/referees/resolve", handler.ResolveReferee)
	mux.HandleFunc("POST /v1/matchdays/resolve", handler.ResolveMatchday)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/rosters/{team}", handler.GetRoster)
}
