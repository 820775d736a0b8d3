package dispatch

import (
	"context"
	"fmt"

	"buildrun-agent/src/provider"
)

// Watcher blocks on a resolved run until it reaches a terminal status.
// No local timeout is imposed; the watch lasts as long as the remote build.
type Watcher struct {
	Provider provider.Provider
}

// Wait blocks until the run completes and returns its conclusion.
// Any conclusion other than success is surfaced as ErrRemoteRunFailure;
// a failed remote build is never re-triggered.
func (w *Watcher) Wait(ctx context.Context, run *ResolvedRun) (string, error) {
	conclusion, err := w.Provider.WatchRun(ctx, run.Run.ID)
	if err != nil {
		return "", fmt.Errorf("watching run %d: %w", run.Run.ID, err)
	}

	if conclusion != provider.ConclusionSuccess {
		return conclusion, fmt.Errorf("%w: run %d concluded %q", ErrRemoteRunFailure, run.Run.ID, conclusion)
	}
	return conclusion, nil
}
