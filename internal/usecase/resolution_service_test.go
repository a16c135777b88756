package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
	"github.com/riskibarqy/matchday-intel/internal/domain/league"
	"github.com/riskibarqy/matchday-intel/internal/domain/lineup"
	"github.com/riskibarqy/matchday-intel/internal/domain/referee"
	"github.com/riskibarqy/matchday-intel/internal/domain/source"
	"github.com/riskibarqy/matchday-intel/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/matchday-intel/internal/platform/cache"
	"github.com/riskibarqy/matchday-intel/internal/platform/logging"
	"github.com/riskibarqy/matchday-intel/internal/platform/metrics"
)

var (
	matchDay   = time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC)
	celtaNames = []string{"Guaita", "Mingueza", "Starfelt", "Marcos Alonso", "Ristić", "Beltrán", "Ilaix Moriba", "Bamba", "Swedberg", "Aspas", "Borja Iglesias"}
	villaNames = []string{"Conde", "Femenía", "Albiol", "Bailly", "Cardona", "Parejo", "Comesaña", "Baena", "Yéremy Pino", "Gerard Moreno", "Barry"}
)

type fakeAdapter struct {
	name    string
	lineup  func(ctx context.Context) extraction.Lineup
	referee func(ctx context.Context) extraction.Referee
	calls   atomic.Int32
}

func (a *fakeAdapter) Name() string { return a.name }

func (a *fakeAdapter) FetchLineup(ctx context.Context, _ fixture.Fixture) extraction.Lineup {
	a.calls.Add(1)
	if a.lineup == nil {
		return extraction.FailedLineup(a.name, extraction.NoMatch("not implemented"))
	}
	return a.lineup(ctx)
}

func (a *fakeAdapter) FetchReferee(ctx context.Context, _ fixture.Fixture) extraction.Referee {
	a.calls.Add(1)
	if a.referee == nil {
		return extraction.FailedReferee(a.name, extraction.NoMatch("not implemented"))
	}
	return a.referee(ctx)
}

func liveLineup(name string, home, away []string) *fakeAdapter {
	return &fakeAdapter{
		name: name,
		lineup: func(context.Context) extraction.Lineup {
			return extraction.OKLineup(name, "https://"+name+"/match", home, away, nil)
		},
		referee: func(context.Context) extraction.Referee {
			return extraction.OKReferee(name, "https://"+name+"/match", "José María Sánchez Martínez")
		},
	}
}

func emptyAdapter(name string) *fakeAdapter {
	return &fakeAdapter{
		name: name,
		lineup: func(context.Context) extraction.Lineup {
			return extraction.OKLineup(name, "", nil, nil, nil)
		},
		referee: func(context.Context) extraction.Referee {
			return extraction.OKReferee(name, "", "")
		},
	}
}

func failingAdapter(name string) *fakeAdapter {
	err := extraction.Unreachable(errors.New("connection refused"), "GET %s", name)
	return &fakeAdapter{
		name:    name,
		lineup:  func(context.Context) extraction.Lineup { return extraction.FailedLineup(name, err) },
		referee: func(context.Context) extraction.Referee { return extraction.FailedReferee(name, err) },
	}
}

func panickingAdapter(name string) *fakeAdapter {
	return &fakeAdapter{
		name:    name,
		lineup:  func(context.Context) extraction.Lineup { panic("index out of range") },
		referee: func(context.Context) extraction.Referee { panic("nil pointer") },
	}
}

// hangingAdapter ignores its context until release is closed.
func hangingAdapter(name string, release <-chan struct{}) *fakeAdapter {
	return &fakeAdapter{
		name: name,
		lineup: func(context.Context) extraction.Lineup {
			<-release
			return extraction.OKLineup(name, "", celtaNames, villaNames, nil)
		},
		referee: func(context.Context) extraction.Referee {
			<-release
			return extraction.OKReferee(name, "", "Too Late")
		},
	}
}

func delayed(a *fakeAdapter, d time.Duration) *fakeAdapter {
	lineupFn, refereeFn := a.lineup, a.referee
	a.lineup = func(ctx context.Context) extraction.Lineup {
		time.Sleep(d)
		return lineupFn(ctx)
	}
	a.referee = func(ctx context.Context) extraction.Referee {
		time.Sleep(d)
		return refereeFn(ctx)
	}
	return a
}

func newTestResolution(cfg ResolutionConfig, adapters []source.Adapter, opts ...ResolutionOption) *ResolutionService {
	table := source.NewTable(source.Binding{League: league.LaLiga, Adapters: adapters})
	if cfg.AdapterTimeout == 0 {
		cfg.AdapterTimeout = time.Second
	}
	return NewResolutionService(table, memory.NewSeededRosterRepository(), referee.DefaultPools(), cfg, logging.NewNop(), opts...)
}

func adapters(list ...*fakeAdapter) []source.Adapter {
	out := make([]source.Adapter, 0, len(list))
	for _, a := range list {
		out = append(out, a)
	}
	return out
}

func TestResolution_TotalUnderFailures(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	svc := newTestResolution(ResolutionConfig{AdapterTimeout: 50 * time.Millisecond}, adapters(
		failingAdapter("rfef.es"),
		panickingAdapter("futbolfantasy.com"),
		hangingAdapter("besoccer.com", release),
	))

	ctx, cancel := context.WithTimeout(t.Context(), 2*time.Second)
	defer cancel()

	started := time.Now()
	gotLineup := svc.ResolveLineup(ctx, "Celta", "Villarreal", matchDay, "La Liga")
	gotReferee := svc.ResolveReferee(ctx, "Celta", "Villarreal", matchDay, "La Liga")

	assert.Less(t, time.Since(started), time.Second)
	assert.True(t, gotLineup.IsFallback)
	assert.Equal(t, lineup.ConfidenceFallback, gotLineup.Confidence)
	assert.Contains(t, gotLineup.Source, "internal roster (last known lineup)")
	assert.Len(t, gotLineup.Home, 11)
	assert.Len(t, gotLineup.Away, 11)

	assert.True(t, gotReferee.IsFallback)
	assert.NotEmpty(t, gotReferee.Name)
	assert.Contains(t, gotReferee.Source, "fallback pool (La Liga)")
}

func TestResolution_TotalWithoutSources(t *testing.T) {
	svc := NewResolutionService(source.NewTable(), nil, nil, ResolutionConfig{}, nil)

	got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "Liga Galáctica")
	assert.True(t, got.IsFallback)
	assert.Equal(t, "internal roster (last known lineup) [no sources configured]", got.Source)
	assert.Equal(t, league.Generic, got.Fixture.League)

	ref := svc.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "Liga Galáctica")
	assert.True(t, ref.IsFallback)
	assert.NotEmpty(t, ref.Name)
}

func TestResolution_RefereeFallbackIsIdempotent(t *testing.T) {
	first := newTestResolution(ResolutionConfig{}, adapters(failingAdapter("rfef.es")))
	second := newTestResolution(ResolutionConfig{}, adapters(emptyAdapter("besoccer.com")))

	a := first.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
	b := first.ResolveReferee(t.Context(), " celta ", "VILLARREAL", matchDay.Add(3*time.Hour), "laliga")
	c := second.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	require.True(t, a.IsFallback)
	assert.Equal(t, a.Name, b.Name)
	assert.Equal(t, a.Name, c.Name)
	assert.Equal(t, a.Strictness, c.Strictness)
	assert.Equal(t, a.AvgCardRate, c.AvgCardRate)
}

func TestResolution_NoDuplicateIdentityAcrossSides(t *testing.T) {
	home := []string{"Aspas", "Iago Aspas", "Borja Iglesias"}
	away := []string{"Iago Aspas", "Parejo", "Gerard Moreno"}
	svc := newTestResolution(ResolutionConfig{}, adapters(liveLineup("futbolfantasy.com", home, away)))

	got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	assert.Equal(t, []string{"Iago Aspas", "Borja Iglesias"}, lineup.Names(got.Home))
	assert.Equal(t, []string{"Dani Parejo", "Gerard Moreno"}, lineup.Names(got.Away))
}

func TestResolution_ConfirmedThreshold(t *testing.T) {
	tests := []struct {
		name string
		home []string
		away []string
		want lineup.Confidence
	}{
		{name: "eighteen names", home: celtaNames[:9], away: villaNames[:9], want: lineup.ConfidenceConfirmed},
		{name: "seventeen names", home: celtaNames[:9], away: villaNames[:8], want: lineup.ConfidencePredicted},
		{name: "one side only", home: celtaNames, want: lineup.ConfidencePredicted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestResolution(ResolutionConfig{}, adapters(liveLineup("futbolfantasy.com", tt.home, tt.away)))
			got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

			assert.False(t, got.IsFallback)
			assert.Equal(t, tt.want, got.Confidence)
			assert.Equal(t, len(tt.home)+len(tt.away), got.Count())
		})
	}
}

func TestResolution_FuzzyMatchingAgainstRoster(t *testing.T) {
	svc := newTestResolution(ResolutionConfig{}, adapters(liveLineup("futbolfantasy.com", []string{"Aspas", "Zzyxw Qqrst"}, nil)))

	got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	require.Len(t, got.Home, 2)
	assert.Equal(t, "Iago Aspas", got.Home[0].Name)
	assert.True(t, got.Home[0].Matched)
	assert.Equal(t, "cel-aspas", got.Home[0].PlayerID)
	assert.Equal(t, "Zzyxw Qqrst", got.Home[1].Name)
	assert.False(t, got.Home[1].Matched)
}

func TestResolution_SequentialPriority(t *testing.T) {
	primary := emptyAdapter("rfef.es")
	secondary := liveLineup("futbolfantasy.com", celtaNames, villaNames)
	tertiary := liveLineup("besoccer.com", celtaNames, villaNames)
	svc := newTestResolution(ResolutionConfig{}, adapters(primary, secondary, tertiary))

	got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	assert.Equal(t, "futbolfantasy.com", got.Source)
	assert.Equal(t, "https://futbolfantasy.com/match", got.VerificationRef)
	assert.Equal(t, lineup.ConfidenceConfirmed, got.Confidence)
	assert.EqualValues(t, 1, primary.calls.Load())
	assert.EqualValues(t, 1, secondary.calls.Load())
	assert.Zero(t, tertiary.calls.Load())
}

func TestResolution_ParallelKeepsPriority(t *testing.T) {
	t.Run("second wins when first is insufficient", func(t *testing.T) {
		svc := newTestResolution(ResolutionConfig{Parallel: true}, adapters(
			emptyAdapter("rfef.es"),
			liveLineup("futbolfantasy.com", celtaNames, villaNames),
		))

		got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
		assert.Equal(t, "futbolfantasy.com", got.Source)

		ref := svc.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
		assert.Equal(t, "futbolfantasy.com", ref.Source)
		assert.False(t, ref.IsFallback)
	})

	t.Run("slower first beats faster second", func(t *testing.T) {
		svc := newTestResolution(ResolutionConfig{Parallel: true}, adapters(
			delayed(liveLineup("rfef.es", celtaNames, villaNames), 80*time.Millisecond),
			liveLineup("futbolfantasy.com", celtaNames[:5], villaNames[:5]),
		))

		got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
		assert.Equal(t, "rfef.es", got.Source)
		assert.Equal(t, lineup.ConfidenceConfirmed, got.Confidence)
	})

	t.Run("insufficient first with faster second", func(t *testing.T) {
		svc := newTestResolution(ResolutionConfig{Parallel: true}, adapters(
			delayed(emptyAdapter("rfef.es"), 60*time.Millisecond),
			liveLineup("futbolfantasy.com", celtaNames, villaNames),
		))

		got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
		assert.Equal(t, "futbolfantasy.com", got.Source)
	})
}

func TestResolution_FallbackTrigger(t *testing.T) {
	svc := newTestResolution(ResolutionConfig{}, adapters(emptyAdapter("rfef.es"), emptyAdapter("besoccer.com")))

	got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	assert.True(t, got.IsFallback)
	assert.Equal(t, lineup.ConfidenceFallback, got.Confidence)
	assert.Equal(t, "internal roster (last known lineup) [besoccer.com: insufficient data]", got.Source)
	assert.Contains(t, lineup.Names(got.Home), "Iago Aspas")
	assert.Contains(t, lineup.Names(got.Away), "Dani Parejo")
}

func TestResolution_CallerDeadline(t *testing.T) {
	live := liveLineup("rfef.es", celtaNames, villaNames)
	svc := newTestResolution(ResolutionConfig{}, adapters(live))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	got := svc.ResolveLineup(ctx, "Celta", "Villarreal", matchDay, "La Liga")
	assert.True(t, got.IsFallback)
	assert.Equal(t, "internal roster (last known lineup) [deadline exceeded]", got.Source)
	assert.Len(t, got.Home, 11, "fallback reads the roster store on a detached context")
	assert.Zero(t, live.calls.Load())
}

func TestResolution_ParallelDeadlineIgnoresLateAnswers(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	svc := newTestResolution(ResolutionConfig{Parallel: true, AdapterTimeout: time.Second}, adapters(
		hangingAdapter("rfef.es", release),
		delayed(liveLineup("futbolfantasy.com", celtaNames, villaNames), 150*time.Millisecond),
	))

	ctx, cancel := context.WithTimeout(t.Context(), 40*time.Millisecond)
	defer cancel()

	got := svc.ResolveReferee(ctx, "Celta", "Villarreal", matchDay, "La Liga")
	assert.True(t, got.IsFallback)
	assert.Contains(t, got.Source, deadlineReason)
}

func TestResolution_SequentialDeadlineDuringLastAdapter(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	svc := newTestResolution(ResolutionConfig{AdapterTimeout: time.Second}, adapters(
		emptyAdapter("besoccer.com"),
		hangingAdapter("rfef.es", release),
	))

	ctx, cancel := context.WithTimeout(t.Context(), 40*time.Millisecond)
	defer cancel()

	got := svc.ResolveReferee(ctx, "Celta", "Villarreal", matchDay, "La Liga")
	assert.True(t, got.IsFallback)
	assert.Equal(t, "fallback pool (La Liga) [deadline exceeded]", got.Source)
}

func TestResolution_ResolveTimeoutCapsEachCall(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	svc := newTestResolution(ResolutionConfig{AdapterTimeout: time.Second, ResolveTimeout: 40 * time.Millisecond},
		adapters(hangingAdapter("rfef.es", release)))

	started := time.Now()
	got := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	assert.Less(t, time.Since(started), 500*time.Millisecond)
	assert.True(t, got.IsFallback)
	assert.Equal(t, "internal roster (last known lineup) [deadline exceeded]", got.Source)
	assert.Len(t, got.Home, 11)
}

func TestResolution_SharedCascadeOutlivesShortCallerDeadline(t *testing.T) {
	live := delayed(liveLineup("rfef.es", celtaNames, villaNames), 150*time.Millisecond)
	svc := newTestResolution(ResolutionConfig{}, adapters(live),
		WithResultCache(cache.NewStore[lineup.Resolved](time.Minute), cache.NewStore[referee.Resolved](time.Minute)))

	hurried, cancel := context.WithTimeout(t.Context(), 30*time.Millisecond)
	defer cancel()

	var hurriedRef, patientRef referee.Resolved
	var hurriedLineup, patientLineup lineup.Resolved
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		hurriedRef = svc.ResolveReferee(hurried, "Celta", "Villarreal", matchDay, "La Liga")
		hurriedLineup = svc.ResolveLineup(hurried, "Celta", "Villarreal", matchDay, "La Liga")
	}()
	go func() {
		defer wg.Done()
		time.Sleep(5 * time.Millisecond)
		patientRef = svc.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
		patientLineup = svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
	}()
	wg.Wait()

	assert.True(t, hurriedRef.IsFallback)
	assert.Equal(t, "fallback pool (La Liga) [deadline exceeded]", hurriedRef.Source)
	assert.True(t, hurriedLineup.IsFallback)
	assert.Len(t, hurriedLineup.Home, 11, "rosters are read on a detached context")

	assert.False(t, patientRef.IsFallback)
	assert.Equal(t, "rfef.es", patientRef.Source)
	assert.Equal(t, "José María Sánchez Martínez", patientRef.Name)
	assert.False(t, patientLineup.IsFallback)
	assert.Equal(t, lineup.ConfidenceConfirmed, patientLineup.Confidence)
	assert.EqualValues(t, 2, live.calls.Load(), "one shared referee cascade and one shared lineup cascade")
}

func TestResolution_CachesOnlyLiveResults(t *testing.T) {
	t.Run("live result is cached", func(t *testing.T) {
		live := liveLineup("rfef.es", celtaNames, villaNames)
		svc := newTestResolution(ResolutionConfig{}, adapters(live),
			WithResultCache(cache.NewStore[lineup.Resolved](time.Minute), cache.NewStore[referee.Resolved](time.Minute)))

		first := svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
		second := svc.ResolveLineup(t.Context(), "celta", "villarreal", matchDay, "LaLiga")

		assert.Equal(t, first, second)
		assert.EqualValues(t, 1, live.calls.Load())
	})

	t.Run("fallback is not cached", func(t *testing.T) {
		empty := emptyAdapter("rfef.es")
		svc := newTestResolution(ResolutionConfig{}, adapters(empty),
			WithResultCache(cache.NewStore[lineup.Resolved](time.Minute), cache.NewStore[referee.Resolved](time.Minute)))

		svc.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")
		svc.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

		assert.EqualValues(t, 2, empty.calls.Load())
	})
}

func TestResolution_LiveRefereeIsProfiled(t *testing.T) {
	a := &fakeAdapter{name: "rfef.es", referee: func(context.Context) extraction.Referee {
		return extraction.OKReferee("rfef.es", "https://rfef.es/designaciones", "Gil Manzano")
	}}
	svc := newTestResolution(ResolutionConfig{}, adapters(a))

	got := svc.ResolveReferee(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	assert.False(t, got.IsFallback)
	assert.Equal(t, "Gil Manzano", got.Name)
	assert.Equal(t, referee.StrictnessHigh, got.Strictness)
	assert.Equal(t, "https://rfef.es/designaciones", got.VerificationRef)
}

func TestResolution_RecordsMetrics(t *testing.T) {
	m := metrics.NewCascade()
	svc := newTestResolution(ResolutionConfig{}, adapters(emptyAdapter("rfef.es"), liveLineup("futbolfantasy.com", celtaNames, villaNames)),
		WithCascadeMetrics(m))

	svc.ResolveLineup(t.Context(), "Celta", "Villarreal", matchDay, "La Liga")

	steps, err := testutil.GatherAndCount(m.Registry(), "matchday_cascade_steps_total")
	require.NoError(t, err)
	assert.Equal(t, 2, steps)

	resolutions, err := testutil.GatherAndCount(m.Registry(), "matchday_resolutions_total")
	require.NoError(t, err)
	assert.Equal(t, 1, resolutions)
}
