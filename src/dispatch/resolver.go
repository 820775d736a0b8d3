// Package dispatch implements the closed loop that drives one remote build:
// trigger, resolve the run the trigger created, watch it to completion,
// retrieve the artifact, purge remote copies.
package dispatch

import (
	"context"
	"fmt"
	"time"

	"buildrun-agent/src/logger"
	"buildrun-agent/src/provider"
)

// Polling budget for resolution. 40 attempts at 3s bounds the wait for the
// listing API's eventual consistency at roughly two minutes; the 15s
// tolerance absorbs clock skew between the local clock and the remote
// created_at timestamps without matching unrelated older runs.
const (
	DefaultAttempts  = 40
	DefaultInterval  = 3 * time.Second
	DefaultTolerance = 15 * time.Second

	listWindow    = 30
	dispatchEvent = "workflow_dispatch"
)

// ResolvedRun is the single run selected as the one the trigger created,
// plus the dispatch timestamp used to select it. Immutable once returned;
// every later stage refers to the run only by its ID and never re-resolves.
type ResolvedRun struct {
	Run          provider.Run
	DispatchTime time.Time
}

// Resolver correlates a dispatch with the run it created. The dispatch API
// echoes no run identifier, so this is a heuristic: the newest run of the
// same workflow, ref, and event whose creation time is not older than the
// dispatch time minus the tolerance. There is no token tying trigger to
// run; a concurrent dispatch of the same workflow can win the race.
type Resolver struct {
	Provider  provider.Provider
	Attempts  int
	Interval  time.Duration
	Tolerance time.Duration
	Logger    logger.Logger
}

// NewResolver creates a resolver with the default polling budget.
func NewResolver(p provider.Provider, log logger.Logger) *Resolver {
	return &Resolver{
		Provider:  p,
		Attempts:  DefaultAttempts,
		Interval:  DefaultInterval,
		Tolerance: DefaultTolerance,
		Logger:    log,
	}
}

// Resolve polls the listing API until a candidate run appears or the
// attempt budget is exhausted.
func (r *Resolver) Resolve(ctx context.Context, workflow, ref string, dispatchTime time.Time) (*ResolvedRun, error) {
	cutoff := dispatchTime.Add(-r.Tolerance)

	for attempt := 1; attempt <= r.Attempts; attempt++ {
		runs, err := r.Provider.ListRuns(ctx, workflow, ref, dispatchEvent, listWindow)
		if err != nil {
			return nil, fmt.Errorf("listing runs of %s: %w", workflow, err)
		}

		if best, ok := pickNewest(runs, cutoff); ok {
			r.Logger.Debug("resolved run %d on attempt %d (created %s)", best.ID, attempt, best.CreatedAt)
			return &ResolvedRun{Run: best, DispatchTime: dispatchTime}, nil
		}

		r.Logger.Debug("attempt %d/%d: no run created at or after %s yet", attempt, r.Attempts, cutoff)

		if attempt == r.Attempts {
			break
		}
		select {
		case <-time.After(r.Interval):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("%w: workflow %s ref %s, %d attempts", ErrRunResolutionTimeout, workflow, ref, r.Attempts)
}

// pickNewest returns the run with the greatest creation time among those
// created at or after cutoff. Ties on creation time break toward the
// higher run ID, keeping selection deterministic within one attempt.
func pickNewest(runs []provider.Run, cutoff time.Time) (provider.Run, bool) {
	var best provider.Run
	found := false

	for _, run := range runs {
		if run.CreatedAt.Before(cutoff) {
			continue
		}
		if !found ||
			run.CreatedAt.After(best.CreatedAt) ||
			(run.CreatedAt.Equal(best.CreatedAt) && run.ID > best.ID) {
			best = run
			found = true
		}
	}
	return best, found
}
