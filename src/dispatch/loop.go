package dispatch

import (
	"context"
	"fmt"
	"time"

	"buildrun-agent/src/config"
	"buildrun-agent/src/logger"
	"buildrun-agent/src/provider"
	"buildrun-agent/src/report"
)

// Loop runs one complete dispatch-resolve-watch-retrieve-purge cycle.
// Stages are strictly sequential: no stage starts before the previous
// blocking call returns successfully, and nothing runs concurrently.
type Loop struct {
	Provider provider.Provider
	Request  *config.DispatchRequest
	Reporter report.Reporter
	Logger   logger.Logger

	// Resolver replaces the default resolver when set.
	Resolver *Resolver
}

// New creates a loop over the given collaborators.
func New(p provider.Provider, req *config.DispatchRequest, rep report.Reporter, log logger.Logger) *Loop {
	return &Loop{
		Provider: p,
		Request:  req,
		Reporter: rep,
		Logger:   log,
	}
}

// Run executes the loop. The dispatch timestamp is recorded immediately
// before the trigger call so the resolver's tolerance window anchors to it.
// A trigger failure aborts immediately with no retry: dispatching twice
// risks a duplicate remote build.
func (l *Loop) Run(ctx context.Context) (*ResolvedRun, error) {
	req := l.Request

	l.Reporter.Stage("Triggering workflow")
	l.Reporter.Infof("%s@%s building %s@%s", req.Workflow, req.WorkflowRef, req.SourceRepo, req.SourceRef)

	dispatchTime := time.Now()
	if err := l.Provider.Dispatch(ctx, req.Workflow, req.WorkflowRef, req.Inputs()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDispatchFailure, err)
	}

	l.Reporter.Stage("Resolving run")
	resolver := l.Resolver
	if resolver == nil {
		resolver = NewResolver(l.Provider, l.Logger)
	}
	stop := l.Reporter.Spin("waiting for the run to appear")
	resolved, err := resolver.Resolve(ctx, req.Workflow, req.WorkflowRef, dispatchTime)
	stop()
	if err != nil {
		return nil, err
	}
	l.Reporter.Infof("run %d created %s", resolved.Run.ID, resolved.Run.CreatedAt.Format(time.RFC3339))

	l.Reporter.Stage("Watching run")
	watcher := &Watcher{Provider: l.Provider}
	stop = l.Reporter.Spin(fmt.Sprintf("run %d in progress", resolved.Run.ID))
	conclusion, err := watcher.Wait(ctx, resolved)
	stop()
	if err != nil {
		return resolved, err
	}
	l.Reporter.Infof("run %d concluded %s", resolved.Run.ID, conclusion)

	if req.Download {
		l.Reporter.Stage("Downloading artifact")
		retriever := &Retriever{Provider: l.Provider}
		if err := retriever.Fetch(ctx, resolved, req.ArtifactName, req.OutputDir); err != nil {
			return resolved, err
		}
		l.Reporter.Infof("%s -> %s", req.ArtifactName, req.OutputDir)
	}

	if req.DeleteArtifacts {
		l.Reporter.Stage("Purging remote artifacts")
		purger := &Purger{Provider: l.Provider}
		deleted, err := purger.Purge(ctx, resolved)
		if err != nil {
			return resolved, err
		}
		l.Reporter.Infof("deleted %d artifact(s)", deleted)
	}

	l.Reporter.RunID(resolved.Run.ID)
	return resolved, nil
}
