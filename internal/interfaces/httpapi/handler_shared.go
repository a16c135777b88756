package httpapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/domain/lineup"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/usecase"
)

type fixtureQuery struct {
	Home   string `json:"home" validate:"required,max=120"`
	Away   string `json:"away" validate:"required,max=120"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	League string `json:"league" validate:"omitempty,max=120"`
}

func (q fixtureQuery) trimmed() fixtureQuery {
	return fixtureQuery{
		Home:   strings.TrimSpace(q.Home),
		Away:   strings.TrimSpace(q.Away),
		Date:   strings.TrimSpace(q.Date),
		League: strings.TrimSpace(q.League),
	}
}

func (q fixtureQuery) toRequest() (usecase.FixtureRequest, error) {
	day, err := time.Parse(fixture.DateLayout, q.Date)
	if err != nil {
		return usecase.FixtureRequest{}, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput)
	}
	return usecase.FixtureRequest{Home: q.Home, Away: q.Away, Date: day, League: q.League}, nil
}

type matchdayResolveRequest struct {
	Fixtures []fixtureQuery `json:"fixtures" validate:"required,min=1,max=50,dive"`
}

type fixtureDTO struct {
	Home        string `json:"home"`
	Away        string `json:"away"`
	Date        string `json:"date"`
	League      string `json:"league"`
	LeagueLabel string `json:"league_label,omitempty"`
}

type lineupEntryDTO struct {
	Name     string `json:"name"`
	PlayerID string `json:"player_id,omitempty"`
	Position string `json:"position,omitempty"`
	Matched  bool   `json:"matched"`
	Scraped  string `json:"scraped,omitempty"`
}

type lineupDTO struct {
	Fixture         fixtureDTO       `json:"fixture"`
	Home            []lineupEntryDTO `json:"home"`
	Away            []lineupEntryDTO `json:"away"`
	Unavailable     []lineupEntryDTO `json:"unavailable"`
	ResolvedCount   int              `json:"resolved_count"`
	Source          string           `json:"source"`
	VerificationRef string           `json:"verification_ref,omitempty"`
	Confidence      string           `json:"confidence"`
	IsFallback      bool             `json:"is_fallback"`
	ResolvedAt      string           `json:"resolved_at"`
}

type refereeDTO struct {
	Fixture         fixtureDTO `json:"fixture"`
	Name            string     `json:"name"`
	Strictness      string     `json:"strictness"`
	AvgCardRate     float64    `json:"avg_card_rate"`
	Source          string     `json:"source"`
	VerificationRef string     `json:"verification_ref,omitempty"`
	IsFallback      bool       `json:"is_fallback"`
	ResolvedAt      string     `json:"resolved_at"`
}

type matchReportDTO struct {
	Lineup  lineupDTO  `json:"lineup"`
	Referee refereeDTO `json:"referee"`
}

type leagueNormalizeDTO struct {
	Label       string `json:"label"`
	League      string `json:"league"`
	DisplayName string `json:"display_name"`
}

type chainDTO struct {
	League      string   `json:"league"`
	DisplayName string   `json:"display_name"`
	Adapters    []string `json:"adapters"`
}

type playerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
}

type rosterDTO struct {
	Team            string      `json:"team"`
	League          string      `json:"league"`
	Aliases         []string    `json:"aliases"`
	Players         []playerDTO `json:"players"`
	LastKnownLineup []string    `json:"last_known_lineup"`
}

func fixtureToDTO(f fixture.Fixture) fixtureDTO {
	return fixtureDTO{
		Home:        f.Home,
		Away:        f.Away,
		Date:        f.DateKey(),
		League:      string(f.League),
		LeagueLabel: f.Label,
	}
}

func entriesToDTO(entries []lineup.Entry) []lineupEntryDTO {
	out := make([]lineupEntryDTO, 0, len(entries))
	for _, e := range entries {
		item := lineupEntryDTO{
			Name:     e.Name,
			PlayerID: e.PlayerID,
			Position: string(e.Position),
			Matched:  e.Matched,
		}
		if e.Raw != "" && e.Raw != e.Name {
			item.Scraped = e.Raw
		}
		out = append(out, item)
	}
	return out
}

func lineupToDTO(v lineup.Resolved) lineupDTO {
	return lineupDTO{
		Fixture:         fixtureToDTO(v.Fixture),
		Home:            entriesToDTO(v.Home),
		Away:            entriesToDTO(v.Away),
		Unavailable:     entriesToDTO(v.Unavailable),
		ResolvedCount:   v.Count(),
		Source:          v.Source,
		VerificationRef: v.VerificationRef,
		Confidence:      string(v.Confidence),
		IsFallback:      v.IsFallback,
		ResolvedAt:      formatTime(v.ResolvedAt),
	}
}

func refereeToDTO(v referee.Resolved) refereeDTO {
	return refereeDTO{
		Fixture:         fixtureToDTO(v.Fixture),
		Name:            v.Name,
		Strictness:      string(v.Strictness),
		AvgCardRate:     v.AvgCardRate,
		Source:          v.Source,
		VerificationRef: v.VerificationRef,
		IsFallback:      v.IsFallback,
		ResolvedAt:      formatTime(v.ResolvedAt),
	}
}

func rosterToDTO(v usecase.TeamRoster, lastKnown []string) rosterDTO {
	players := make([]playerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerDTO{ID: p.ID, Name: p.Name, Position: string(p.Position)})
	}
	aliases := v.Team.Aliases
	if aliases == nil {
		aliases = []string{}
	}
	if lastKnown == nil {
		lastKnown = []string{}
	}
	return rosterDTO{
		Team:            v.Team.Name,
		League:          string(v.Team.League),
		Aliases:         aliases,
		Players:         players,
		LastKnownLineup: lastKnown,
	}
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
