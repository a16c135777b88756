package source

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/matchday-intel/internal/domain/extraction"
	"github.com/riskibarqy/matchday-intel/internal/domain/fixture"
)

// Adapter reaches one logical source for lineups and referees. Implementations
// never return errors: every failure is reduced to an empty extraction whose
// Outcome names the failure class.
type Adapter interface {
	Name() string
	FetchLineup(ctx context.Context, f fixture.Fixture) extraction.Lineup
	FetchReferee(ctx context.Context, f fixture.Fixture) extraction.Referee
}

// SafeFetchLineup runs a.FetchLineup under timeout and converts panics and
// adapters that ignore their context into soft failures.
func SafeFetchLineup(ctx context.Context, a Adapter, f fixture.Fixture, timeout time.Duration) extraction.Lineup {
	return guarded(ctx, timeout, func(ctx context.Context) extraction.Lineup {
		return a.FetchLineup(ctx, f)
	}, func(err error) extraction.Lineup {
		return extraction.FailedLineup(a.Name(), err)
	})
}

// SafeFetchReferee is the referee counterpart of SafeFetchLineup.
func SafeFetchReferee(ctx context.Context, a Adapter, f fixture.Fixture, timeout time.Duration) extraction.Referee {
	return guarded(ctx, timeout, func(ctx context.Context) extraction.Referee {
		return a.FetchReferee(ctx, f)
	}, func(err error) extraction.Referee {
		return extraction.FailedReferee(a.Name(), err)
	})
}

func guarded[T any](ctx context.Context, timeout time.Duration, call func(context.Context) T, failed func(error) T) T {
	if err := ctx.Err(); err != nil {
		return failed(extraction.Unreachable(err, "cascade aborted"))
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	done := make(chan T, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- failed(extraction.StructureChanged("adapter panic: %v", rec))
			}
		}()
		done <- call(ctx)
	}()

	select {
	case out := <-done:
		return out
	case <-ctx.Done():
		return failed(extraction.Unreachable(ctx.Err(), "adapter did not return in %s", fmt.Sprint(timeout)))
	}
}
