package githubactions

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"buildrun-agent/src/provider"
)

func init() {
	// Register the GitHub Actions provider factory
	provider.RegisterProvider("github", func(token, repo string) provider.Provider {
		return NewProvider(token, repo)
	})
}

// Provider implements provider.Provider for GitHub Actions
type Provider struct {
	client       *Client
	pollInterval time.Duration
}

// NewProvider creates a GitHub Actions provider for an owner/name repository
func NewProvider(token, repo string) *Provider {
	owner, name, _ := strings.Cut(repo, "/")
	return &Provider{
		client:       NewClient(token, owner, name),
		pollInterval: 10 * time.Second,
	}
}

// Name returns "github"
func (p *Provider) Name() string {
	return "github"
}

// SetProgressWriter enables a download progress bar on the given writer
func (p *Provider) SetProgressWriter(w io.Writer) {
	p.client.ProgressWriter = w
}

// Dispatch triggers one workflow_dispatch run
func (p *Provider) Dispatch(ctx context.Context, workflow, ref string, inputs map[string]string) error {
	return p.client.DispatchWorkflow(ctx, workflow, ref, inputs)
}

// ListRuns returns recent runs of the workflow filtered by ref and event
func (p *Provider) ListRuns(ctx context.Context, workflow, ref, event string, limit int) ([]provider.Run, error) {
	ghRuns, err := p.client.ListWorkflowRuns(ctx, workflow, ref, event, limit)
	if err != nil {
		return nil, err
	}

	runs := make([]provider.Run, 0, len(ghRuns))
	for _, r := range ghRuns {
		runs = append(runs, provider.Run{
			ID:         r.ID,
			Status:     r.Status,
			Conclusion: r.Conclusion,
			CreatedAt:  r.CreatedAt,
			HeadBranch: r.HeadBranch,
			URL:        r.HTMLURL,
		})
	}
	return runs, nil
}

// WatchRun polls the run until it completes and returns its conclusion.
// Duration is bounded only by the remote system and ctx.
func (p *Provider) WatchRun(ctx context.Context, runID int64) (string, error) {
	for {
		run, err := p.client.GetWorkflowRun(ctx, runID)
		if err != nil {
			return "", err
		}
		if run.Status == provider.StatusCompleted {
			return run.Conclusion, nil
		}

		select {
		case <-time.After(p.pollInterval):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// ListArtifacts returns the artifacts attached to a run
func (p *Provider) ListArtifacts(ctx context.Context, runID int64) ([]provider.Artifact, error) {
	ghArtifacts, err := p.client.GetArtifacts(ctx, runID)
	if err != nil {
		return nil, err
	}

	artifacts := make([]provider.Artifact, 0, len(ghArtifacts))
	for _, a := range ghArtifacts {
		artifacts = append(artifacts, provider.Artifact{
			ID:          a.ID,
			Name:        a.Name,
			SizeInBytes: a.SizeInBytes,
			Expired:     a.Expired,
		})
	}
	return artifacts, nil
}

// DownloadArtifact resolves the named artifact of a run and extracts it
// into destDir
func (p *Provider) DownloadArtifact(ctx context.Context, runID int64, name, destDir string) error {
	artifacts, err := p.client.GetArtifacts(ctx, runID)
	if err != nil {
		return err
	}

	for _, a := range artifacts {
		if a.Name == name && !a.Expired {
			return p.client.DownloadArtifact(ctx, a.ID, destDir)
		}
	}
	return fmt.Errorf("%w: artifact %q on run %d", provider.ErrNotFound, name, runID)
}

// DeleteArtifact removes one artifact
func (p *Provider) DeleteArtifact(ctx context.Context, artifactID int64) error {
	return p.client.DeleteArtifact(ctx, artifactID)
}
