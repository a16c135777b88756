package sportmonks

import (
	"bytes"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Lineup and referee type ids used by the v3 football API.
const (
	LineupTypeStarting = 11
	LineupTypeBench    = 12
	RefereeTypeMain    = 6
)

type fixturesEnvelope struct {
	Data       []Fixture  `json:"data"`
	Pagination pagination `json:"pagination"`
}

type pagination struct {
	Count       int  `json:"count"`
	PerPage     int  `json:"per_page"`
	CurrentPage int  `json:"current_page"`
	HasMore     bool `json:"has_more"`
}

type Fixture struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	StartingAt   string           `json:"starting_at"`
	Participants []Participant    `json:"participants"`
	Lineups      []LineupItem     `json:"lineups"`
	Referees     []FixtureReferee `json:"referees"`
}

type Participant struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	ShortCode string          `json:"short_code"`
	Meta      ParticipantMeta `json:"meta"`
}

type ParticipantMeta struct {
	// Location is "home" or "away".
	Location string `json:"location"`
}

type LineupItem struct {
	PlayerID     int64  `json:"player_id"`
	TeamID       int64  `json:"team_id"`
	TypeID       int64  `json:"type_id"`
	PlayerName   string `json:"player_name"`
	JerseyNumber int    `json:"jersey_number"`
}

type FixtureReferee struct {
	RefereeID int64             `json:"referee_id"`
	TypeID    int64             `json:"type_id"`
	Referee   relation[Referee] `json:"referee"`
}

type Referee struct {
	ID          int64  `json:"id"`
	CommonName  string `json:"common_name"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// BestName prefers the full name over the abbreviated common name.
func (r Referee) BestName() string {
	for _, v := range []string{r.Name, r.DisplayName, r.CommonName} {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// Side returns the participant playing at location ("home" or "away").
func (f Fixture) Side(location string) (Participant, bool) {
	for _, p := range f.Participants {
		if strings.EqualFold(p.Meta.Location, location) {
			return p, true
		}
	}
	return Participant{}, false
}

// Starters returns the starting XI names of team in lineup order.
func (f Fixture) Starters(teamID int64) []string {
	var out []string
	for _, item := range f.Lineups {
		if item.TeamID == teamID && item.TypeID == LineupTypeStarting && strings.TrimSpace(item.PlayerName) != "" {
			out = append(out, item.PlayerName)
		}
	}
	return out
}

// MainReferee returns the type 6 official, or the first listed one.
func (f Fixture) MainReferee() (Referee, bool) {
	var first *Referee
	for i := range f.Referees {
		item := f.Referees[i]
		if !item.Referee.Set || item.Referee.Data.BestName() == "" {
			continue
		}
		if item.TypeID == RefereeTypeMain {
			return item.Referee.Data, true
		}
		if first == nil {
			first = &f.Referees[i].Referee.Data
		}
	}
	if first != nil {
		return *first, true
	}
	return Referee{}, false
}

// relation decodes includes that arrive either bare or wrapped in {"data": ...}.
type relation[T any] struct {
	Data T
	Set  bool
}

func (r *relation[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		r.Set = false
		return nil
	}

	var wrapped struct {
		Data *T `json:"data"`
	}
	if err := sonic.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Data != nil {
		r.Data = *wrapped.Data
		r.Set = true
		return nil
	}

	var direct T
	if err := sonic.Unmarshal(trimmed, &direct); err != nil {
		return err
	}
	r.Data = direct
	r.Set = true
	return nil
}
