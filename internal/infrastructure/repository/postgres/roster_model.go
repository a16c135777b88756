package postgres

import (
	"time"

	"github.com/lib/pq"
)

type rosterTeamTableModel struct {
	TeamKey   string         `db:"team_key"`
	Name      string         `db:"name"`
	League    string         `db:"league"`
	Aliases   pq.StringArray `db:"aliases"`
	UpdatedAt time.Time      `db:"updated_at"`
}

type rosterPlayerTableModel struct {
	PublicID  string    `db:"public_id"`
	TeamKey   string    `db:"team_key"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	UpdatedAt time.Time `db:"updated_at"`
}

type lastKnownLineupTableModel struct {
	TeamKey    string    `db:"team_key"`
	Slot       int       `db:"slot"`
	PlayerName string    `db:"player_name"`
	UpdatedAt  time.Time `db:"updated_at"`
}
