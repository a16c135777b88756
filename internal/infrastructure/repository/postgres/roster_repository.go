package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	qb "github.com/riskibarqy/matchday-intel/internal/platform/querybuilder"
	"github.com/riskibarqy/matchday-intel/internal/platform/textnorm"
)

const (
	rosterTeamsTable     = "roster_teams"
	rosterPlayersTable   = "roster_players"
	lastKnownLineupTable = "roster_last_known_lineups"
)

// RosterRepository stores canonical rosters. Teams are keyed by their folded
// name so lookups ignore case and accents.
type RosterRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db, now: time.Now}
}

func (r *RosterRepository) Teams(ctx context.Context) ([]roster.Team, error) {
	query, args, err := qb.Select("team_key", "name", "league", "aliases", "updated_at").
		From(rosterTeamsTable).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster teams query: %w", err)
	}

	var rows []rosterTeamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster teams: %w", err)
	}

	out := make([]roster.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Team{
			Name:    row.Name,
			League:  league.League(row.League),
			Aliases: []string(row.Aliases),
		})
	}
	return out, nil
}

func (r *RosterRepository) Roster(ctx context.Context, team string) ([]roster.Player, error) {
	query, args, err := qb.Select("public_id", "team_key", "name", "position", "updated_at").
		From(rosterPlayersTable).
		Where(qb.Eq("team_key", textnorm.Key(team))).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select roster players query: %w", err)
	}

	var rows []rosterPlayerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select roster players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, roster.Player{
			ID:       row.PublicID,
			Name:     row.Name,
			Team:     team,
			Position: roster.ParsePosition(row.Position),
		})
	}
	return out, nil
}

func (r *RosterRepository) LastKnownLineup(ctx context.Context, team string) ([]string, error) {
	query, args, err := qb.Select("player_name").
		From(lastKnownLineupTable).
		Where(qb.Eq("team_key", textnorm.Key(team))).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select last known lineup query: %w", err)
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("select last known lineup: %w", err)
	}
	return names, nil
}

func (r *RosterRepository) UpsertTeams(ctx context.Context, teams []roster.Team) error {
	if len(teams) == 0 {
		return nil
	}

	query, args, err := upsertTeamsQuery(teams, r.now().UTC())
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert roster teams: %w", err)
	}
	return nil
}

func (r *RosterRepository) UpsertPlayers(ctx context.Context, players []roster.Player) error {
	if len(players) == 0 {
		return nil
	}

	query, args, err := upsertPlayersQuery(players, r.now().UTC())
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert roster players: %w", err)
	}
	return nil
}

// SaveLastKnownLineup replaces the stored XI of team in one transaction.
func (r *RosterRepository) SaveLastKnownLineup(ctx context.Context, team string, names []string) (err error) {
	key := textnorm.Key(team)
	deleteQuery, deleteArgs, err := qb.DeleteFrom(lastKnownLineupTable).Where(qb.Eq("team_key", key)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete last known lineup query: %w", err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin last known lineup tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete last known lineup: %w", err)
	}

	if len(names) > 0 {
		now := r.now().UTC()
		builder := qb.InsertInto(lastKnownLineupTable)
		for i, name := range names {
			builder.Model(lastKnownLineupTableModel{TeamKey: key, Slot: i + 1, PlayerName: name, UpdatedAt: now})
		}
		insertQuery, insertArgs, buildErr := builder.ToSQL()
		if buildErr != nil {
			err = fmt.Errorf("build insert last known lineup query: %w", buildErr)
			return err
		}
		if _, err = tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
			return fmt.Errorf("insert last known lineup: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit last known lineup: %w", err)
	}
	return nil
}

func upsertTeamsQuery(teams []roster.Team, now time.Time) (string, []any, error) {
	builder := qb.InsertInto(rosterTeamsTable)
	for _, t := range teams {
		builder.Model(rosterTeamTableModel{
			TeamKey:   textnorm.Key(t.Name),
			Name:      t.Name,
			League:    string(t.League),
			Aliases:   pq.StringArray(nonNil(t.Aliases)),
			UpdatedAt: now,
		})
	}
	query, args, err := builder.
		OnConflict([]string{"team_key"}, "name", "league", "aliases", "updated_at").
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert roster teams query: %w", err)
	}
	return query, args, nil
}

func upsertPlayersQuery(players []roster.Player, now time.Time) (string, []any, error) {
	builder := qb.InsertInto(rosterPlayersTable)
	for _, p := range players {
		if err := p.Validate(); err != nil {
			return "", nil, fmt.Errorf("player %q: %w", p.ID, err)
		}
		builder.Model(rosterPlayerTableModel{
			PublicID:  p.ID,
			TeamKey:   textnorm.Key(p.Team),
			Name:      p.Name,
			Position:  string(p.Position),
			UpdatedAt: now,
		})
	}
	query, args, err := builder.
		OnConflict([]string{"public_id"}, "team_key", "name", "position", "updated_at").
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert roster players query: %w", err)
	}
	return query, args, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
