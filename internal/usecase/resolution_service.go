package usecase

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/domain/lineup"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/domain/roster"
	"github.com/riskibarqy/matchday-intel/internal/domain/source"
	"github.com/riskibarqy/matchday-intel/internal/platform/cache"
	"github.com/riskibarqy/matchday-intel/internal/platform/id"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/platform/metrics"
	"github.com/sourcegraph/conc/iter"
)

const (
	kindLineup  = "lineup"
	kindReferee = "referee"

	fallbackLineupSource = "internal roster (last known lineup)"
	fallbackReadTimeout  = 2 * time.Second
)

type ResolutionConfig struct {
	ConfirmedThreshold int
	AdapterTimeout     time.Duration
	// ResolveTimeout caps one resolve call, on top of any caller deadline.
	ResolveTimeout time.Duration
	Parallel       bool
}

type ResolutionOption func(*ResolutionService)

// WithResultCache caches live results. Fallback envelopes are never stored.
func WithResultCache(lineups *cache.Store[lineup.Resolved], referees *cache.Store[referee.Resolved]) ResolutionOption {
	return func(s *ResolutionService) {
		s.lineupCache = lineups
		s.refereeCache = referees
	}
}

func WithCascadeMetrics(m *metrics.Cascade) ResolutionOption {
	return func(s *ResolutionService) {
		s.metrics = m
	}
}

func WithClock(now func() time.Time) ResolutionOption {
	return func(s *ResolutionService) {
		if now != nil {
			s.now = now
		}
	}
}

func WithRunIDs(gen id.Generator) ResolutionOption {
	return func(s *ResolutionService) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// ResolutionService walks a league's adapter chain in priority order and
// always answers: when no adapter yields usable data it builds a fallback
// envelope from the roster store or the league's referee pool.
type ResolutionService struct {
	table        *source.Table
	rosters      rosterReader
	pools        referee.Pools
	cfg          ResolutionConfig
	lineupCache  *cache.Store[lineup.Resolved]
	refereeCache *cache.Store[referee.Resolved]
	metrics      *metrics.Cascade
	logger       *logging.Logger
	now          func() time.Time
	ids          id.Generator
}

func NewResolutionService(
	table *source.Table,
	rosters roster.Repository,
	pools referee.Pools,
	cfg ResolutionConfig,
	logger *logging.Logger,
	opts ...ResolutionOption,
) *ResolutionService {
	if logger == nil {
		logger = logging.Default()
	}
	if pools == nil {
		pools = referee.DefaultPools()
	}
	if cfg.ConfirmedThreshold <= 0 {
		cfg.ConfirmedThreshold = lineup.DefaultConfirmedThreshold
	}

	s := &ResolutionService{
		table:   table,
		rosters: rosterReader{repo: rosters, logger: logger},
		pools:   pools,
		cfg:     cfg,
		logger:  logger.With("component", "resolution"),
		now:     time.Now,
		ids:     id.NewUUIDGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ResolveLineup returns the best available lineup for the fixture. It never
// fails; IsFallback and Confidence tell the caller how far it degraded.
func (s *ResolutionService) ResolveLineup(ctx context.Context, home, away string, date time.Time, leagueLabel string) lineup.Resolved {
	f := fixture.New(home, away, date, leagueLabel)
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.ResolveLineup", fixtureAttributes(f)...)
	defer span.End()

	log := s.runLogger(kindLineup, f)

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	if s.lineupCache == nil {
		return s.resolveLineup(ctx, f, log)
	}

	key := f.CacheKey(kindLineup)
	if cached, ok := s.lineupCache.Get(ctx, key); ok {
		s.metrics.ObserveCacheHit(kindLineup)
		log.DebugContext(ctx, "lineup served from cache", "source", cached.Source)
		return cached
	}
	if ctx.Err() != nil {
		return s.lineupDeadlineFallback(ctx, f, log)
	}
	// The shared cascade runs detached from this caller, so a short caller
	// deadline cannot turn other callers' answers into fallbacks.
	out, err := s.lineupCache.GetOrLoad(ctx, key, func(loadCtx context.Context) (lineup.Resolved, bool, error) {
		loadCtx, cancel := s.withBudget(loadCtx)
		defer cancel()
		resolved := s.resolveLineup(loadCtx, f, log)
		return resolved, !resolved.IsFallback, nil
	})
	if err != nil {
		return s.lineupDeadlineFallback(ctx, f, log)
	}
	return out
}

// ResolveReferee returns the best available referee for the fixture. Like
// ResolveLineup it never fails.
func (s *ResolutionService) ResolveReferee(ctx context.Context, home, away string, date time.Time, leagueLabel string) referee.Resolved {
	f := fixture.New(home, away, date, leagueLabel)
	ctx, span := startUsecaseSpan(ctx, "usecase.ResolutionService.ResolveReferee", fixtureAttributes(f)...)
	defer span.End()

	log := s.runLogger(kindReferee, f)

	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	if s.refereeCache == nil {
		return s.resolveReferee(ctx, f, log)
	}

	key := f.CacheKey(kindReferee)
	if cached, ok := s.refereeCache.Get(ctx, key); ok {
		s.metrics.ObserveCacheHit(kindReferee)
		log.DebugContext(ctx, "referee served from cache", "source", cached.Source)
		return cached
	}
	if ctx.Err() != nil {
		return s.refereeDeadlineFallback(ctx, f, log)
	}
	out, err := s.refereeCache.GetOrLoad(ctx, key, func(loadCtx context.Context) (referee.Resolved, bool, error) {
		loadCtx, cancel := s.withBudget(loadCtx)
		defer cancel()
		resolved := s.resolveReferee(loadCtx, f, log)
		return resolved, !resolved.IsFallback, nil
	})
	if err != nil {
		return s.refereeDeadlineFallback(ctx, f, log)
	}
	return out
}

func (s *ResolutionService) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.ResolveTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.cfg.ResolveTimeout)
}

// lineupDeadlineFallback answers a caller whose budget ran out before a
// shared cascade finished. The cascade keeps running for the cache.
func (s *ResolutionService) lineupDeadlineFallback(ctx context.Context, f fixture.Fixture, log *logging.Logger) lineup.Resolved {
	readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fallbackReadTimeout)
	defer cancel()

	out := s.lineupFallback(ctx, f, s.rosters.players(readCtx, f.Home), s.rosters.players(readCtx, f.Away), deadlineReason)
	log.WarnContext(ctx, "lineup deadline reached before shared cascade finished, using fallback")
	s.metrics.ObserveResolution(kindLineup, string(f.League), string(out.Confidence))
	return out
}

func (s *ResolutionService) refereeDeadlineFallback(ctx context.Context, f fixture.Fixture, log *logging.Logger) referee.Resolved {
	out := s.refereeFallback(f, deadlineReason)
	log.WarnContext(ctx, "referee deadline reached before shared cascade finished, using fallback", "referee", out.Name)
	s.metrics.ObserveResolution(kindReferee, string(f.League), confidenceLabel(true))
	return out
}

type lineupCandidate struct {
	raw         extraction.Lineup
	home        []lineup.Entry
	away        []lineup.Entry
	unavailable []lineup.Entry
}

func (s *ResolutionService) resolveLineup(ctx context.Context, f fixture.Fixture, log *logging.Logger) (out lineup.Resolved) {
	defer func() {
		if rec := recover(); rec != nil {
			log.ErrorContext(ctx, "lineup resolution panicked", "panic", fmt.Sprint(rec))
			out = lineup.Resolved{
				Fixture:    f,
				Source:     degraded(fallbackLineupSource, "internal error"),
				Confidence: lineup.ConfidenceFallback,
				IsFallback: true,
				ResolvedAt: s.now(),
			}
		}
	}()

	homeRoster := s.rosters.players(ctx, f.Home)
	awayRoster := s.rosters.players(ctx, f.Away)

	fetch := func(ctx context.Context, a source.Adapter) attempt[lineupCandidate] {
		raw := source.SafeFetchLineup(ctx, a, f, s.cfg.AdapterTimeout)
		got := attempt[lineupCandidate]{outcome: raw.Outcome, label: raw.SourceLabel(), reason: raw.Reason}
		if raw.Outcome != extraction.OutcomeOK {
			return got
		}

		home := lineup.Resolve(raw.HomeNames, homeRoster)
		away := lineup.Disjoin(home, lineup.Resolve(raw.AwayNames, awayRoster))
		got.value = lineupCandidate{
			raw:         raw,
			home:        home,
			away:        away,
			unavailable: lineup.Resolve(raw.Unavailable, slices.Concat(homeRoster, awayRoster)),
		}
		if len(home)+len(away) == 0 {
			got.outcome = extraction.OutcomeInsufficientData
			got.label = raw.SourceID + ": " + got.outcome.Label()
			got.reason = "no names resolved"
		}
		return got
	}

	won, ok, reason := walk(ctx, s, kindLineup, f, log, fetch)
	if !ok {
		out = s.lineupFallback(ctx, f, homeRoster, awayRoster, reason)
		log.WarnContext(ctx, "lineup cascade exhausted, using fallback", "reason", reason, "home_count", len(out.Home), "away_count", len(out.Away))
		s.metrics.ObserveResolution(kindLineup, string(f.League), string(out.Confidence))
		return out
	}

	c := won.value
	out = lineup.Resolved{
		Fixture:         f,
		Home:            c.home,
		Away:            c.away,
		Unavailable:     c.unavailable,
		Source:          c.raw.SourceLabel(),
		VerificationRef: c.raw.VerificationRef,
		Confidence:      lineup.Classify(c.home, c.away, false, s.cfg.ConfirmedThreshold),
		ResolvedAt:      s.now(),
	}
	log.InfoContext(ctx, "lineup resolved", "source", out.Source, "confidence", out.Confidence, "count", out.Count())
	s.metrics.ObserveResolution(kindLineup, string(f.League), string(out.Confidence))
	return out
}

func (s *ResolutionService) lineupFallback(ctx context.Context, f fixture.Fixture, homeRoster, awayRoster []roster.Player, reason string) lineup.Resolved {
	// The caller's deadline may already be gone; the store read gets its own short budget.
	readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fallbackReadTimeout)
	defer cancel()

	home := lineup.Resolve(s.rosters.lastKnown(readCtx, f.Home), homeRoster)
	away := lineup.Disjoin(home, lineup.Resolve(s.rosters.lastKnown(readCtx, f.Away), awayRoster))
	return lineup.Resolved{
		Fixture:    f,
		Home:       home,
		Away:       away,
		Source:     degraded(fallbackLineupSource, reason),
		Confidence: lineup.Classify(home, away, true, s.cfg.ConfirmedThreshold),
		IsFallback: true,
		ResolvedAt: s.now(),
	}
}

func (s *ResolutionService) resolveReferee(ctx context.Context, f fixture.Fixture, log *logging.Logger) (out referee.Resolved) {
	defer func() {
		if rec := recover(); rec != nil {
			log.ErrorContext(ctx, "referee resolution panicked", "panic", fmt.Sprint(rec))
			out = s.refereeFallback(f, "internal error")
		}
	}()

	fetch := func(ctx context.Context, a source.Adapter) attempt[extraction.Referee] {
		raw := source.SafeFetchReferee(ctx, a, f, s.cfg.AdapterTimeout)
		got := attempt[extraction.Referee]{value: raw, outcome: raw.Outcome, label: raw.SourceLabel(), reason: raw.Reason}
		if raw.Outcome == extraction.OutcomeOK && !raw.Sufficient() {
			got.outcome = extraction.OutcomeInsufficientData
			got.label = raw.SourceID + ": " + got.outcome.Label()
		}
		return got
	}

	won, ok, reason := walk(ctx, s, kindReferee, f, log, fetch)
	if !ok {
		out = s.refereeFallback(f, reason)
		log.WarnContext(ctx, "referee cascade exhausted, using fallback", "reason", reason, "referee", out.Name)
		s.metrics.ObserveResolution(kindReferee, string(f.League), confidenceLabel(true))
		return out
	}

	strictness, cards := referee.Profile(f.League, won.value.Name, s.pools)
	out = referee.Resolved{
		Fixture:         f,
		Name:            won.value.Name,
		Strictness:      strictness,
		AvgCardRate:     cards,
		Source:          won.value.SourceLabel(),
		VerificationRef: won.value.VerificationRef,
		ResolvedAt:      s.now(),
	}
	log.InfoContext(ctx, "referee resolved", "source", out.Source, "referee", out.Name)
	s.metrics.ObserveResolution(kindReferee, string(f.League), confidenceLabel(false))
	return out
}

// refereeFallback is a pure function of the fixture and the pool, so repeated
// calls agree across requests and processes.
func (s *ResolutionService) refereeFallback(f fixture.Fixture, reason string) referee.Resolved {
	entry := s.pools.For(f.League).Select(f)
	cards := entry.AvgCards
	if cards <= 0 {
		cards = referee.DefaultAvgCards
	}
	return referee.Resolved{
		Fixture:     f,
		Name:        entry.Name,
		Strictness:  referee.ParseStrictness(string(entry.Strictness)),
		AvgCardRate: cards,
		Source:      degraded(fmt.Sprintf("fallback pool (%s)", f.League.DisplayName()), reason),
		IsFallback:  true,
		ResolvedAt:  s.now(),
	}
}

func (s *ResolutionService) runLogger(kind string, f fixture.Fixture) *logging.Logger {
	return s.logger.With(
		"run_id", s.ids.NewID(),
		"kind", kind,
		"league", string(f.League),
		"fixture", f.Key(),
	)
}

func confidenceLabel(fallback bool) string {
	if fallback {
		return string(lineup.ConfidenceFallback)
	}
	return "LIVE"
}

func degraded(source, reason string) string {
	if reason == "" {
		return source
	}
	return source + " [" + reason + "]"
}

// attempt is the outcome of one adapter call within a cascade.
type attempt[T any] struct {
	adapter string
	value   T
	outcome extraction.Outcome
	label   string
	reason  string
	took    time.Duration
}

// walk runs the league chain and returns the highest priority sufficient
// attempt. When none qualifies it reports why the cascade degraded.
func walk[T any](
	ctx context.Context,
	s *ResolutionService,
	kind string,
	f fixture.Fixture,
	log *logging.Logger,
	fetch func(context.Context, source.Adapter) attempt[T],
) (attempt[T], bool, string) {
	chain := s.table.Chain(f.League)
	if len(chain) == 0 {
		return attempt[T]{}, false, "no sources configured"
	}

	if s.cfg.Parallel && len(chain) > 1 {
		return walkParallel(ctx, s, kind, f, log, chain, fetch)
	}

	var last string
	for _, a := range chain {
		if ctx.Err() != nil {
			log.WarnContext(ctx, "cascade deadline reached", "next_adapter", a.Name())
			return attempt[T]{}, false, deadlineReason
		}
		got := runStep(ctx, s, kind, f, log, a, fetch)
		if got.outcome == extraction.OutcomeOK {
			return got, true, ""
		}
		last = got.label
	}
	if ctx.Err() != nil {
		return attempt[T]{}, false, deadlineReason
	}
	return attempt[T]{}, false, last
}

const deadlineReason = "deadline exceeded"

// walkParallel starts every adapter at once but still picks by chain order,
// so a faster low-priority source never beats a slower authoritative one.
func walkParallel[T any](
	ctx context.Context,
	s *ResolutionService,
	kind string,
	f fixture.Fixture,
	log *logging.Logger,
	chain source.Chain,
	fetch func(context.Context, source.Adapter) attempt[T],
) (attempt[T], bool, string) {
	if ctx.Err() != nil {
		return attempt[T]{}, false, deadlineReason
	}

	attempts := iter.Map(chain, func(a *source.Adapter) attempt[T] {
		got := runStep(ctx, s, kind, f, log, *a, fetch)
		if ctx.Err() != nil && got.outcome == extraction.OutcomeOK {
			got.outcome = extraction.OutcomeSourceUnreachable
			got.label = got.adapter + ": answered after deadline"
		}
		return got
	})

	last := ""
	for _, got := range attempts {
		if got.outcome == extraction.OutcomeOK {
			return got, true, ""
		}
		last = got.label
	}
	if ctx.Err() != nil {
		return attempt[T]{}, false, deadlineReason
	}
	return attempt[T]{}, false, last
}

// runStep calls one adapter and records the step in logs and metrics.
func runStep[T any](
	ctx context.Context,
	s *ResolutionService,
	kind string,
	f fixture.Fixture,
	log *logging.Logger,
	a source.Adapter,
	fetch func(context.Context, source.Adapter) attempt[T],
) attempt[T] {
	started := time.Now()
	got := fetch(ctx, a)
	got.adapter = a.Name()
	got.took = time.Since(started)
	if got.label == "" {
		got.label = got.adapter + ": " + got.outcome.Label()
	}

	log.InfoContext(ctx, "cascade step finished",
		"adapter", got.adapter,
		"outcome", string(got.outcome),
		"source", got.label,
		"latency_ms", got.took.Milliseconds(),
	)
	s.metrics.ObserveStep(kind, string(f.League), got.adapter, string(got.outcome), got.took)
	return got
}
