package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
)

// RosterImport is one batch of canonical data to load.
type RosterImport struct {
	Teams     []roster.Team
	Players   []roster.Player
	LastKnown map[string][]string
}

type RosterImportResult struct {
	Teams   int  `json:"teams"`
	Players int  `json:"players"`
	Lineups int  `json:"lineups"`
	DryRun  bool `json:"dry_run"`
}

type RosterImportService struct {
	writer roster.Writer
	logger *logging.Logger
}

func NewRosterImportService(writer roster.Writer, logger *logging.Logger) *RosterImportService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterImportService{writer: writer, logger: logger}
}

// Import upserts teams first so players and lineups can reference them.
// Every player and lineup must belong to a team in the batch.
func (s *RosterImportService) Import(ctx context.Context, batch RosterImport, dryRun bool) (RosterImportResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterImportService.Import")
	defer span.End()

	result := RosterImportResult{
		Teams:   len(batch.Teams),
		Players: len(batch.Players),
		Lineups: len(batch.LastKnown),
		DryRun:  dryRun,
	}
	if len(batch.Teams) == 0 {
		return result, fmt.Errorf("%w: no teams to import", ErrInvalidInput)
	}

	known := make(map[string]struct{}, len(batch.Teams))
	for _, t := range batch.Teams {
		known[t.Name] = struct{}{}
	}
	for _, p := range batch.Players {
		if err := p.Validate(); err != nil {
			return result, fmt.Errorf("%w: player %q: %v", ErrInvalidInput, p.ID, err)
		}
		if _, ok := known[p.Team]; !ok {
			return result, fmt.Errorf("%w: player %q references unknown team %q", ErrInvalidInput, p.ID, p.Team)
		}
	}
	for team := range batch.LastKnown {
		if _, ok := known[team]; !ok {
			return result, fmt.Errorf("%w: last known lineup references unknown team %q", ErrInvalidInput, team)
		}
	}

	if dryRun {
		s.logger.InfoContext(ctx, "roster import validated", "teams", result.Teams, "players", result.Players, "lineups", result.Lineups)
		return result, nil
	}

	if err := s.writer.UpsertTeams(ctx, batch.Teams); err != nil {
		return result, fmt.Errorf("upsert teams: %w", err)
	}
	if err := s.writer.UpsertPlayers(ctx, batch.Players); err != nil {
		return result, fmt.Errorf("upsert players: %w", err)
	}

	teams := make([]string, 0, len(batch.LastKnown))
	for team := range batch.LastKnown {
		teams = append(teams, team)
	}
	sort.Strings(teams)
	for _, team := range teams {
		if err := s.writer.SaveLastKnownLineup(ctx, team, batch.LastKnown[team]); err != nil {
			return result, fmt.Errorf("save last known lineup team=%s: %w", team, err)
		}
	}

	s.logger.InfoContext(ctx, "roster import finished", "teams", result.Teams, "players", result.Players, "lineups", result.Lineups)
	return result, nil
}
