package roster

import "context"

// Repository is the read side of the roster store. Team arguments are
// canonical team names; callers resolve free-form names with MatchTeam first.
type Repository interface {
	Teams(ctx context.Context) ([]Team, error)
	Roster(ctx context.Context, team string) ([]Player, error)
	LastKnownLineup(ctx context.Context, team string) ([]string, error)
}

// Writer loads canonical data into the store. Writes are idempotent upserts.
type Writer interface {
	UpsertTeams(ctx context.Context, teams []Team) error
	UpsertPlayers(ctx context.Context, players []Player) error
	SaveLastKnownLineup(ctx context.Context, team string, names []string) error
}
