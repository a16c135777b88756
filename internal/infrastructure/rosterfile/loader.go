// Package rosterfile reads canonical rosters and referee pools from YAML.
package rosterfile

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"gopkg.in/yaml.v3"
)

// Document is the roster file layout:
//
//	teams:
//	  - name: Celta de Vigo
//	    league: La Liga
//	    aliases: [RC Celta]
//	    players:
//	      - {id: cel-aspas, name: Iago Aspas, position: FWD}
//	    last_known_lineup: [Iago Aspas]
type Document struct {
	Teams []TeamDoc `yaml:"teams" validate:"required,min=1,dive"`
}

type TeamDoc struct {
	Name            string      `yaml:"name" validate:"required"`
	League          string      `yaml:"league"`
	Aliases         []string    `yaml:"aliases" validate:"dive,required"`
	Players         []PlayerDoc `yaml:"players" validate:"dive"`
	LastKnownLineup []string    `yaml:"last_known_lineup" validate:"max=11,dive,required"`
}

type PlayerDoc struct {
	ID       string `yaml:"id" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	Position string `yaml:"position" validate:"omitempty,oneof=GK DEF MID FWD gk def mid fwd goalkeeper defender midfielder forward portero defensa centrocampista delantero"`
}

// PoolsDocument maps free-form league labels to referee pool entries.
type PoolsDocument struct {
	Pools map[string][]referee.PoolEntry `yaml:"pools" validate:"required,dive,min=1,dive"`
}

var validate = validator.New()

func LoadRoster(path string) (Document, error) {
	var doc Document
	if err := decodeFile(path, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func ParseRoster(raw []byte) (Document, error) {
	var doc Document
	if err := decode(raw, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func LoadPools(path string) (referee.Pools, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pools file: %w", err)
	}
	return ParsePools(raw)
}

// ParsePools keys pools by normalized league; entries of labels that fold
// to the same league are concatenated in file order.
func ParsePools(raw []byte) (referee.Pools, error) {
	var doc PoolsDocument
	if err := decode(raw, &doc); err != nil {
		return nil, err
	}

	out := make(referee.Pools, len(doc.Pools))
	for label, entries := range doc.Pools {
		l := league.Normalize(label)
		pool := out[l]
		pool.League = l
		for _, e := range entries {
			e.Strictness = referee.ParseStrictness(string(e.Strictness))
			pool.Entries = append(pool.Entries, e)
		}
		out[l] = pool
	}
	return out, nil
}

// RosterTeams lists the canonical teams of the document.
func (d Document) RosterTeams() []roster.Team {
	out := make([]roster.Team, 0, len(d.Teams))
	for _, t := range d.Teams {
		out = append(out, roster.Team{Name: t.Name, League: league.Normalize(t.League), Aliases: t.Aliases})
	}
	return out
}

func (d Document) RosterPlayers() []roster.Player {
	var out []roster.Player
	for _, t := range d.Teams {
		for _, p := range t.Players {
			out = append(out, roster.Player{ID: p.ID, Name: p.Name, Team: t.Name, Position: roster.ParsePosition(p.Position)})
		}
	}
	return out
}

// LastKnownLineups maps team name to its stored XI. Teams without one are omitted.
func (d Document) LastKnownLineups() map[string][]string {
	out := make(map[string][]string, len(d.Teams))
	for _, t := range d.Teams {
		if len(t.LastKnownLineup) > 0 {
			out[t.Name] = t.LastKnownLineup
		}
	}
	return out
}

func decodeFile(path string, target any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read roster file: %w", err)
	}
	return decode(raw, target)
}

func decode(raw []byte, target any) error {
	if err := yaml.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	if err := validate.Struct(target); err != nil {
		return fmt.Errorf("validate document: %w", err)
	}
	return nil
}
