package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Validation errors. These map to exit code 2; everything that happens
// after a request is built maps to exit code 1.
var (
	ErrMissingArgument     = errors.New("missing required argument")
	ErrInvalidBooleanValue = errors.New("invalid boolean value")
	ErrInvalidRepoFormat   = errors.New("repository must be in owner/name format")
)

var repoPattern = regexp.MustCompile(`^[^/]+/[^/]+$`)

// Built-in defaults, overridable by the defaults file and by flags.
const (
	DefaultWorkflowRef  = "main"
	DefaultArtifactName = "build-output"
	DefaultBuildScript  = "scripts/build.sh"
	DefaultArtifactPath = "dist/artifact.tar.gz"
	DefaultOutputDir    = "./artifacts"
)

// DispatchRequest is the validated, immutable description of one
// dispatch-resolve-watch-retrieve-purge loop. Built exactly once per
// invocation; no field changes afterwards.
type DispatchRequest struct {
	Repo            string // owner/name hosting the workflow
	Workflow        string // workflow file to trigger
	WorkflowRef     string // branch the workflow definition runs from
	SourceRepo      string // repository to build
	SourceRef       string // branch or commit of the source
	ArtifactName    string
	BuildScript     string
	ArtifactPath    string
	Download        bool
	DeleteArtifacts bool
	OutputDir       string
}

// Options carries the raw, uninterpreted flag values. Boolean options stay
// strings here so the permissive literal set applies uniformly.
type Options struct {
	Repo            string
	Workflow        string
	WorkflowRef     string
	SourceRepo      string
	SourceRef       string
	ArtifactName    string
	BuildScript     string
	ArtifactPath    string
	Download        string
	DeleteArtifacts string
	OutputDir       string
}

// ParseBool interprets the permissive boolean literal set, case-insensitively:
// true/1/yes/y and false/0/no/n. Anything else is ErrInvalidBooleanValue.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "y":
		return true, nil
	case "false", "0", "no", "n":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidBooleanValue, value)
	}
}

// Build validates opts against defs and produces the immutable request.
// It has no side effects; it either returns a request or a validation error.
func Build(opts Options, defs Defaults) (*DispatchRequest, error) {
	if opts.Repo == "" {
		return nil, fmt.Errorf("%w: --repo", ErrMissingArgument)
	}
	if opts.Workflow == "" {
		return nil, fmt.Errorf("%w: --workflow", ErrMissingArgument)
	}
	if opts.SourceRepo == "" {
		return nil, fmt.Errorf("%w: --source-repo", ErrMissingArgument)
	}
	if opts.SourceRef == "" {
		return nil, fmt.Errorf("%w: --source-ref", ErrMissingArgument)
	}

	if !repoPattern.MatchString(opts.Repo) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRepoFormat, opts.Repo)
	}

	download, err := ParseBool(pick(opts.Download, defs.Download, "true"))
	if err != nil {
		return nil, fmt.Errorf("--download: %w", err)
	}
	deleteArtifacts, err := ParseBool(pick(opts.DeleteArtifacts, defs.DeleteArtifacts, "true"))
	if err != nil {
		return nil, fmt.Errorf("--delete-artifacts: %w", err)
	}

	return &DispatchRequest{
		Repo:            opts.Repo,
		Workflow:        opts.Workflow,
		WorkflowRef:     pick(opts.WorkflowRef, defs.WorkflowRef, DefaultWorkflowRef),
		SourceRepo:      opts.SourceRepo,
		SourceRef:       opts.SourceRef,
		ArtifactName:    pick(opts.ArtifactName, defs.ArtifactName, DefaultArtifactName),
		BuildScript:     pick(opts.BuildScript, defs.BuildScript, DefaultBuildScript),
		ArtifactPath:    pick(opts.ArtifactPath, defs.ArtifactPath, DefaultArtifactPath),
		Download:        download,
		DeleteArtifacts: deleteArtifacts,
		OutputDir:       pick(opts.OutputDir, defs.OutputDir, DefaultOutputDir),
	}, nil
}

// Inputs returns the workflow_dispatch inputs derived from the request.
func (r *DispatchRequest) Inputs() map[string]string {
	return map[string]string{
		"source_repo":   r.SourceRepo,
		"source_ref":    r.SourceRef,
		"build_script":  r.BuildScript,
		"artifact_path": r.ArtifactPath,
		"artifact_name": r.ArtifactName,
	}
}

// pick returns the first non-empty value: flag beats file beats built-in.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
