package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-intel/internal/domain/lineup"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const defaultMatchdayWorkers = 4

// FixtureRequest is one fixture of a matchday batch as the caller names it.
type FixtureRequest struct {
	Home   string
	Away   string
	Date   time.Time
	League string
}

// MatchReport pairs the lineup and referee resolved for one fixture.
type MatchReport struct {
	Lineup  lineup.Resolved
	Referee referee.Resolved
}

type MatchdayResolver interface {
	ResolveLineup(ctx context.Context, home, away string, date time.Time, leagueLabel string) lineup.Resolved
	ResolveReferee(ctx context.Context, home, away string, date time.Time, leagueLabel string) referee.Resolved
}

type MatchdayService struct {
	resolver MatchdayResolver
	workers  int
	budget   time.Duration
	logger   *logging.Logger
}

type MatchdayOption func(*MatchdayService)

// WithBatchBudget bounds a whole batch. Fixtures still queued when it runs
// out resolve straight to their fallbacks.
func WithBatchBudget(d time.Duration) MatchdayOption {
	return func(s *MatchdayService) {
		s.budget = d
	}
}

func NewMatchdayService(resolver MatchdayResolver, workers int, logger *logging.Logger, opts ...MatchdayOption) *MatchdayService {
	if workers <= 0 {
		workers = defaultMatchdayWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	s := &MatchdayService{resolver: resolver, workers: workers, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve resolves every fixture on a bounded worker pool. Reports keep the
// input order. Like the single fixture operations it always returns one
// report per request; if the pool cannot be used the batch runs inline.
func (s *MatchdayService) Resolve(ctx context.Context, requests []FixtureRequest) []MatchReport {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchdayService.Resolve")
	defer span.End()
	span.SetAttributes(attribute.Int("fixtures", len(requests)))

	reports := make([]MatchReport, len(requests))
	if len(requests) == 0 {
		return reports
	}
	if s.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.budget)
		defer cancel()
	}

	pool, err := ants.NewPool(min(s.workers, len(requests)))
	if err != nil {
		s.logger.WarnContext(ctx, "create matchday worker pool failed, resolving inline", "error", err)
		for i, req := range requests {
			reports[i] = s.resolveOne(ctx, req)
		}
		return reports
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, req := range requests {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			reports[i] = s.resolveOne(ctx, req)
		}); err != nil {
			workers.Done()
			s.logger.WarnContext(ctx, "submit fixture to worker pool failed, resolving inline", "fixture", fmt.Sprintf("%s vs %s", req.Home, req.Away), "error", err)
			reports[i] = s.resolveOne(ctx, req)
		}
	}
	workers.Wait()

	return reports
}

func (s *MatchdayService) resolveOne(ctx context.Context, req FixtureRequest) MatchReport {
	return MatchReport{
		Lineup:  s.resolver.ResolveLineup(ctx, req.Home, req.Away, req.Date, req.League),
		Referee: s.resolver.ResolveReferee(ctx, req.Home, req.Away, req.Date, req.League),
	}
}
