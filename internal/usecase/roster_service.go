package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
)

// TeamRoster is a canonical team together with its players.
type TeamRoster struct {
	Team    roster.Team
	Players []roster.Player
}

type RosterService struct {
	repo roster.Repository
}

func NewRosterService(repo roster.Repository) *RosterService {
	return &RosterService{repo: repo}
}

func (s *RosterService) Roster(ctx context.Context, team string) (TeamRoster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Roster")
	defer span.End()

	t, err := s.team(ctx, team)
	if err != nil {
		return TeamRoster{}, err
	}

	players, err := s.repo.Roster(ctx, t.Name)
	if err != nil {
		return TeamRoster{}, fmt.Errorf("%w: load roster: %v", ErrDependencyUnavailable, err)
	}
	return TeamRoster{Team: t, Players: players}, nil
}

func (s *RosterService) LastKnownLineup(ctx context.Context, team string) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.LastKnownLineup")
	defer span.End()

	t, err := s.team(ctx, team)
	if err != nil {
		return nil, err
	}

	names, err := s.repo.LastKnownLineup(ctx, t.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: load last known lineup: %v", ErrDependencyUnavailable, err)
	}
	return names, nil
}

func (s *RosterService) team(ctx context.Context, name string) (roster.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return roster.Team{}, fmt.Errorf("%w: team is required", ErrInvalidInput)
	}

	teams, err := s.repo.Teams(ctx)
	if err != nil {
		return roster.Team{}, fmt.Errorf("%w: list teams: %v", ErrDependencyUnavailable, err)
	}
	t, ok := roster.MatchTeam(name, teams)
	if !ok {
		return roster.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, name)
	}
	return t, nil
}
