package dispatch

import (
	"context"
	"fmt"

	"buildrun-agent/src/provider"
)

// fakeProvider is a scripted in-memory provider. Each ListRuns call consumes
// the next listing; the last listing repeats once the script runs out.
// Every operation appends to calls so tests can assert stage ordering.
type fakeProvider struct {
	calls []string

	listings        [][]provider.Run
	listCount       int
	listErr         error
	dispatchErr     error
	watchConclusion string
	watchErr        error
	artifacts       []provider.Artifact
	artifactsErr    error
	downloadErr     error
	deleteErr       map[int64]error
	deleted         []int64
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Dispatch(ctx context.Context, workflow, ref string, inputs map[string]string) error {
	f.calls = append(f.calls, "dispatch")
	return f.dispatchErr
}

func (f *fakeProvider) ListRuns(ctx context.Context, workflow, ref, event string, limit int) ([]provider.Run, error) {
	f.calls = append(f.calls, "list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.listings) == 0 {
		return nil, nil
	}
	idx := f.listCount
	if idx >= len(f.listings) {
		idx = len(f.listings) - 1
	}
	f.listCount++
	return f.listings[idx], nil
}

func (f *fakeProvider) WatchRun(ctx context.Context, runID int64) (string, error) {
	f.calls = append(f.calls, fmt.Sprintf("watch:%d", runID))
	if f.watchErr != nil {
		return "", f.watchErr
	}
	if f.watchConclusion == "" {
		return provider.ConclusionSuccess, nil
	}
	return f.watchConclusion, nil
}

func (f *fakeProvider) ListArtifacts(ctx context.Context, runID int64) ([]provider.Artifact, error) {
	f.calls = append(f.calls, "listArtifacts")
	return f.artifacts, f.artifactsErr
}

func (f *fakeProvider) DownloadArtifact(ctx context.Context, runID int64, name, destDir string) error {
	f.calls = append(f.calls, fmt.Sprintf("download:%s", name))
	return f.downloadErr
}

func (f *fakeProvider) DeleteArtifact(ctx context.Context, artifactID int64) error {
	f.calls = append(f.calls, fmt.Sprintf("delete:%d", artifactID))
	if err := f.deleteErr[artifactID]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, artifactID)
	return nil
}

// called reports how many recorded calls have the given prefix
func (f *fakeProvider) called(prefix string) int {
	n := 0
	for _, c := range f.calls {
		if len(c) >= len(prefix) && c[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}
