package roster

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/matchday-intel/internal/domain/league"
)

// Position is the coarse playing role of a canonical player.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
	PositionUnknown    Position = ""
)

// ParsePosition accepts the short codes plus the long English and Spanish names.
func ParsePosition(raw string) Position {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gk", "goalkeeper", "portero":
		return PositionGoalkeeper
	case "def", "defender", "defensa":
		return PositionDefender
	case "mid", "midfielder", "centrocampista":
		return PositionMidfielder
	case "fwd", "forward", "delantero":
		return PositionForward
	default:
		return PositionUnknown
	}
}

// Player is a canonical roster entry. Values are never mutated after load.
type Player struct {
	ID       string
	Name     string
	Team     string
	Position Position
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("player name is required")
	}
	if strings.TrimSpace(p.Team) == "" {
		return fmt.Errorf("player team is required")
	}
	return nil
}

// Team is a canonical club with the alternate spellings sources use for it.
type Team struct {
	Name    string
	League  league.League
	Aliases []string
}
