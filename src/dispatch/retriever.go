package dispatch

import (
	"context"
	"fmt"
	"os"

	"buildrun-agent/src/provider"
)

// Retriever downloads the named artifact of a resolved run into a local
// directory. Downloads overwrite existing content, so a retried invocation
// against the same directory is idempotent.
type Retriever struct {
	Provider provider.Provider
}

// Fetch ensures outDir exists and downloads the artifact into it.
// Any failure, including an absent artifact, is ErrDownloadFailure.
func (r *Retriever) Fetch(ctx context.Context, run *ResolvedRun, name, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("%w: creating %s: %v", ErrDownloadFailure, outDir, err)
	}

	if err := r.Provider.DownloadArtifact(ctx, run.Run.ID, name, outDir); err != nil {
		return fmt.Errorf("%w: artifact %q on run %d: %v", ErrDownloadFailure, name, run.Run.ID, err)
	}
	return nil
}
