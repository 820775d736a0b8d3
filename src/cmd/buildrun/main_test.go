package main

import (
	"errors"
	"fmt"
	"testing"

	"buildrun-agent/src/config"
	"buildrun-agent/src/dispatch"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "missing argument", err: fmt.Errorf("%w: --repo", config.ErrMissingArgument), want: 2},
		{name: "invalid boolean", err: fmt.Errorf("--download: %w", config.ErrInvalidBooleanValue), want: 2},
		{name: "invalid repo format", err: fmt.Errorf("%w: %q", config.ErrInvalidRepoFormat, "abc"), want: 2},
		{name: "bad defaults file", err: usageError{errors.New("yaml: unmarshal error")}, want: 2},
		{name: "dispatch failure", err: fmt.Errorf("%w: 422", dispatch.ErrDispatchFailure), want: 1},
		{name: "resolution timeout", err: dispatch.ErrRunResolutionTimeout, want: 1},
		{name: "remote run failure", err: fmt.Errorf("%w: run 1 concluded %q", dispatch.ErrRemoteRunFailure, "failure"), want: 1},
		{name: "download failure", err: dispatch.ErrDownloadFailure, want: 1},
		{name: "delete failure", err: dispatch.ErrDeleteFailure, want: 1},
		{name: "unclassified", err: errors.New("boom"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
