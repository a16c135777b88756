package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/lineup"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/domain/source"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-intel/internal/platform/id"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/usecase"
)

var (
	celtaXI     = []string{"Guaita", "Mingueza", "Starfelt", "Marcos Alonso", "Ristić", "Beltrán", "Ilaix Moriba", "Bamba", "Swedberg", "Aspas", "Borja Iglesias"}
	villarealXI = []string{"Conde", "Femenía", "Albiol", "Bailly", "Cardona", "Parejo", "Comesaña", "Baena", "Yéremy Pino", "Gerard Moreno", "Barry"}
)

type stubAdapter struct {
	name    string
	lineup  extraction.Lineup
	referee extraction.Referee
}

func (s stubAdapter) Name() string { return s.name }

func (s stubAdapter) FetchLineup(context.Context, fixture.Fixture) extraction.Lineup {
	return s.lineup
}

func (s stubAdapter) FetchReferee(context.Context, fixture.Fixture) extraction.Referee {
	return s.referee
}

type panicResolver struct{}

func (panicResolver) ResolveLineup(context.Context, string, string, time.Time, string) lineup.Resolved {
	panic("resolver exploded")
}

func (panicResolver) ResolveReferee(context.Context, string, string, time.Time, string) referee.Resolved {
	panic("resolver exploded")
}

func newTestRouter(t *testing.T, opts RouterOptions) http.Handler {
	t.Helper()

	live := stubAdapter{
		name:    "stub.example",
		lineup:  extraction.OKLineup("stub.example", "https://stub.example/celta-villarreal", celtaXI, villarealXI, nil),
		referee: extraction.FailedReferee("stub.example", extraction.NoMatch("fixture not listed")),
	}
	table := source.NewTable(
		source.Binding{League: league.LaLiga, Adapters: []source.Adapter{live}},
		source.Binding{League: league.Generic, Adapters: []source.Adapter{live}},
	)
	repo := memory.NewSeededRosterRepository()
	logger := logging.NewNop()

	resolver := usecase.NewResolutionService(table, repo, referee.DefaultPools(), usecase.ResolutionConfig{AdapterTimeout: time.Second}, logger)
	handler := NewHandler(
		resolver,
		usecase.NewMatchdayService(resolver, 2, logger),
		usecase.NewLeagueService(table),
		usecase.NewRosterService(repo),
		logger,
	)
	return NewRouter(handler, logger, opts)
}

func serve(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get("Content-Type") != "application/json" {
		return rec, nil
	}
	return rec, decodeEnvelope(t, rec)
}

func TestResolveLineup_LiveSource(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	rec, body := serve(t, router, http.MethodGet, "/v1/lineups/resolve?home=Celta&away=Villarreal&date=2025-03-09&league=La+Liga+(Espa%C3%B1a)", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "CONFIRMED", data["confidence"])
	assert.Equal(t, false, data["is_fallback"])
	assert.Equal(t, "stub.example", data["source"])
	assert.EqualValues(t, 22, data["resolved_count"])
	assert.Equal(t, "LALIGA", data["fixture"].(map[string]any)["league"])

	home := data["home"].([]any)
	require.Len(t, home, 11)
	aspas := home[9].(map[string]any)
	assert.Equal(t, "Iago Aspas", aspas["name"])
	assert.Equal(t, "Aspas", aspas["scraped"])
	assert.Equal(t, true, aspas["matched"])
}

func TestResolveLineup_InvalidInput(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	for _, target := range []string{
		"/v1/lineups/resolve?away=Villarreal&date=2025-03-09",
		"/v1/lineups/resolve?home=%20&away=Villarreal&date=2025-03-09",
		"/v1/lineups/resolve?home=Celta&away=Villarreal&date=09-03-2025",
		"/v1/lineups/resolve?home=Celta&away=Villarreal",
	} {
		rec, body := serve(t, router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Equal(t, "INVALID_ARGUMENT", body["error"].(map[string]any)["status"], target)
	}
}

func TestResolveReferee_FallsBackWithSuccessStatus(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	rec, body := serve(t, router, http.MethodGet, "/v1/referees/resolve?home=Celta&away=Villarreal&date=2025-03-09&league=laliga", "")

	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, true, data["is_fallback"])
	assert.NotEmpty(t, data["name"])
	assert.Contains(t, data["source"], "fallback pool (La Liga)")
}

func TestResolveMatchday_KeepsOrder(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	payload := `{"fixtures":[
		{"home":"Celta","away":"Villarreal","date":"2025-03-09","league":"La Liga"},
		{"home":"Arsenal","away":"Chelsea","date":"2025-03-16","league":"Premier League"}
	]}`
	rec, body := serve(t, router, http.MethodPost, "/v1/matchdays/resolve", payload)

	require.Equal(t, http.StatusOK, rec.Code)
	items := body["data"].([]any)
	require.Len(t, items, 2)

	first := items[0].(map[string]any)["lineup"].(map[string]any)["fixture"].(map[string]any)
	second := items[1].(map[string]any)["lineup"].(map[string]any)["fixture"].(map[string]any)
	assert.Equal(t, "Celta", first["home"])
	assert.Equal(t, "Arsenal", second["home"])
	assert.Equal(t, "PREMIER_LEAGUE", second["league"])
}

func TestResolveMatchday_Validation(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	var tooMany strings.Builder
	tooMany.WriteString(`{"fixtures":[`)
	for i := range 51 {
		if i > 0 {
			tooMany.WriteString(",")
		}
		fmt.Fprintf(&tooMany, `{"home":"Celta","away":"Villarreal","date":"2025-03-%02d"}`, i%28+1)
	}
	tooMany.WriteString(`]}`)

	cases := map[string]string{
		"empty batch":   `{"fixtures":[]}`,
		"too many":      tooMany.String(),
		"missing away":  `{"fixtures":[{"home":"Celta","date":"2025-03-09"}]}`,
		"bad date":      `{"fixtures":[{"home":"Celta","away":"Villarreal","date":"tomorrow"}]}`,
		"unknown field": `{"fixtures":[{"home":"Celta","away":"Villarreal","date":"2025-03-09","stadium":"Balaídos"}]}`,
		"not json":      `fixtures=1`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rec, _ := serve(t, router, http.MethodPost, "/v1/matchdays/resolve", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetRoster(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	rec, body := serve(t, router, http.MethodGet, "/v1/rosters/rc%20celta", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Celta de Vigo", data["team"])
	assert.Len(t, data["players"], 13)
	assert.Len(t, data["last_known_lineup"], 11)

	rec, body = serve(t, router, http.MethodGet, "/v1/rosters/Atl%C3%A9tico%20Ocotl%C3%A1n", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", body["error"].(map[string]any)["status"])
}

func TestLeagueRoutes(t *testing.T) {
	router := newTestRouter(t, RouterOptions{})

	rec, body := serve(t, router, http.MethodGet, "/v1/leagues/normalize?label=EA+SPORTS+La+Liga", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "LALIGA", body["data"].(map[string]any)["league"])

	rec, body = serve(t, router, http.MethodGet, "/v1/leagues/chains", "")
	require.Equal(t, http.StatusOK, rec.Code)
	chains := body["data"].([]any)
	require.Len(t, chains, len(league.All()))
	first := chains[0].(map[string]any)
	assert.Equal(t, "LALIGA", first["league"])
	assert.Equal(t, []any{"stub.example"}, first["adapters"])
}

func TestRouter_SystemRoutes(t *testing.T) {
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("matchday_resolutions_total 0\n"))
	})

	router := newTestRouter(t, RouterOptions{Metrics: metricsHandler, SwaggerEnabled: true})
	rec, _ := serve(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "matchday_resolutions_total")

	rec, _ = serve(t, router, http.MethodGet, "/openapi.yaml", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/matchdays/resolve")

	router = newTestRouter(t, RouterOptions{})
	rec, _ = serve(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = serve(t, router, http.MethodGet, "/docs", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, body := serve(t, router, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["data"].(map[string]any)["status"])
}

func TestRouter_RecoversPanics(t *testing.T) {
	logger := logging.NewNop()
	handler := NewHandler(panicResolver{}, nil, nil, nil, logger)
	router := NewRouter(handler, logger, RouterOptions{RequestIDs: id.Static("req-1")})

	rec, body := serve(t, router, http.MethodGet, "/v1/lineups/resolve?home=Celta&away=Villarreal&date=2025-03-09", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL", body["error"].(map[string]any)["status"])
	assert.Equal(t, "req-1", rec.Header().Get(requestIDHeader))
}

func TestDecodeJSON_RejectsOversizedBody(t *testing.T) {
	h := NewHandler(nil, nil, nil, nil, nil)
	big := `{"fixtures":[{"home":"` + strings.Repeat("x", maxRequestBodyBytes) + `"}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/matchdays/resolve", strings.NewReader(big))

	var out matchdayResolveRequest
	err := h.decodeJSON(httptest.NewRecorder(), req, &out)
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrInvalidInput))
}
