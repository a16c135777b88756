package usecase

import (
	"context"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
)

// rosterReader fronts the roster store for the cascade. Store failures are
// logged and read as an empty roster so resolution can still finish.
type rosterReader struct {
	repo   roster.Repository
	logger *logging.Logger
}

func (r rosterReader) team(ctx context.Context, name string) (roster.Team, bool) {
	if r.repo == nil {
		return roster.Team{}, false
	}
	teams, err := r.repo.Teams(ctx)
	if err != nil {
		r.logger.WarnContext(ctx, "list roster teams failed", "error", err)
		return roster.Team{}, false
	}
	return roster.MatchTeam(name, teams)
}

func (r rosterReader) players(ctx context.Context, name string) []roster.Player {
	t, ok := r.team(ctx, name)
	if !ok {
		return nil
	}
	players, err := r.repo.Roster(ctx, t.Name)
	if err != nil {
		r.logger.WarnContext(ctx, "load roster failed", "team", t.Name, "error", err)
		return nil
	}
	return players
}

func (r rosterReader) lastKnown(ctx context.Context, name string) []string {
	t, ok := r.team(ctx, name)
	if !ok {
		return nil
	}
	names, err := r.repo.LastKnownLineup(ctx, t.Name)
	if err != nil {
		r.logger.WarnContext(ctx, "load last known lineup failed", "team", t.Name, "error", err)
		return nil
	}
	return names
}
