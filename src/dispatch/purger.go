package dispatch

import (
	"context"
	"fmt"

	"buildrun-agent/src/provider"
)

// Purger deletes every artifact of a resolved run from remote storage,
// shrinking the window in which build outputs sit on the CI provider.
type Purger struct {
	Provider provider.Provider
}

// Purge enumerates the run's artifacts and deletes them one at a time,
// awaiting each delete before the next. An empty artifact set is success.
// The first failed delete aborts the rest; artifacts already deleted stay
// deleted. Returns how many deletes completed.
func (p *Purger) Purge(ctx context.Context, run *ResolvedRun) (int, error) {
	artifacts, err := p.Provider.ListArtifacts(ctx, run.Run.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: listing artifacts of run %d: %v", ErrDeleteFailure, run.Run.ID, err)
	}

	deleted := 0
	for _, artifact := range artifacts {
		if err := p.Provider.DeleteArtifact(ctx, artifact.ID); err != nil {
			return deleted, fmt.Errorf("%w: artifact %q (%d) on run %d: %v",
				ErrDeleteFailure, artifact.Name, artifact.ID, run.Run.ID, err)
		}
		deleted++
	}
	return deleted, nil
}
