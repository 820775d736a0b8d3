package provider

import (
	"context"
	"fmt"
	"sort"
)

// Provider defines the interface for CI/CD platform integrations.
// It is the only seam between the dispatch loop and the remote system,
// so the loop can be exercised against a scripted in-memory fake.
type Provider interface {
	// Name returns the provider name (e.g., "github")
	Name() string

	// Dispatch triggers one run of a workflow at the given ref with the
	// given inputs. The remote API echoes no run identifier back.
	Dispatch(ctx context.Context, workflow, ref string, inputs map[string]string) error

	// ListRuns returns up to limit recent runs of a workflow, filtered by
	// ref and triggering event. Ordering is not guaranteed significant.
	ListRuns(ctx context.Context, workflow, ref, event string, limit int) ([]Run, error)

	// WatchRun blocks until the run reaches a terminal status and returns
	// its conclusion.
	WatchRun(ctx context.Context, runID int64) (string, error)

	// ListArtifacts returns the artifacts attached to a run.
	ListArtifacts(ctx context.Context, runID int64) ([]Artifact, error)

	// DownloadArtifact downloads the named artifact of a run into destDir,
	// overwriting existing content.
	DownloadArtifact(ctx context.Context, runID int64, name, destDir string) error

	// DeleteArtifact removes a single artifact from remote storage.
	DeleteArtifact(ctx context.Context, artifactID int64) error
}

// Factory constructs a provider from an API token and an owner/name repo.
type Factory func(token, repo string) Provider

var registry = map[string]Factory{}

// RegisterProvider registers a provider factory under a name.
// Called from provider-package init functions.
func RegisterProvider(name string, factory Factory) {
	registry[name] = factory
}

// New returns the named provider bound to a token and repo.
func New(name, token, repo string) (Provider, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (registered: %v)", ErrProviderUnknown, name, registered())
	}
	return factory(token, repo), nil
}

func registered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
