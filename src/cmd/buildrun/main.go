// Package main provides the buildrun CLI entry point.
// It drives one remote artifact build to completion: trigger the workflow,
// find the run the trigger created, wait for it, fetch the artifact, and
// purge remote copies.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"buildrun-agent/src/config"
	"buildrun-agent/src/dispatch"
	"buildrun-agent/src/githubactions"
	"buildrun-agent/src/logger"
	"buildrun-agent/src/provider"
	"buildrun-agent/src/report"
)

var (
	opts       config.Options
	configPath string
	quiet      bool
	verbose    bool
)

// usageError marks failures that should exit 2 alongside the config
// validation sentinels (e.g. an unparseable defaults file).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "buildrun",
	Short: "Trigger a remote artifact build and shepherd it to completion",
	Long: `buildrun triggers a GitHub Actions workflow that builds an artifact from a
source repository, waits for the run to finish, downloads the named artifact,
and deletes remote artifact copies.

The dispatch API does not identify the run it creates, so buildrun correlates
the trigger with the newest matching run that appears after dispatch. This is
a heuristic: a concurrent dispatch of the same workflow can win the race.

Authentication uses the GITHUB_TOKEN environment variable. The token is never
printed. On success the last stdout line is run_id=<id>.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&opts.Repo, "repo", "", "repository hosting the workflow (owner/name)")
	flags.StringVar(&opts.Workflow, "workflow", "", "workflow file to trigger (e.g. build-artifact.yml)")
	flags.StringVar(&opts.WorkflowRef, "workflow-ref", "", `ref the workflow runs from (default "main")`)
	flags.StringVar(&opts.SourceRepo, "source-repo", "", "repository to build")
	flags.StringVar(&opts.SourceRef, "source-ref", "", "branch or commit of the source")
	flags.StringVar(&opts.ArtifactName, "artifact-name", "", fmt.Sprintf("artifact to fetch (default %q)", config.DefaultArtifactName))
	flags.StringVar(&opts.BuildScript, "build-script", "", fmt.Sprintf("build script path passed as a workflow input (default %q)", config.DefaultBuildScript))
	flags.StringVar(&opts.ArtifactPath, "artifact-path", "", fmt.Sprintf("artifact path passed as a workflow input (default %q)", config.DefaultArtifactPath))
	flags.StringVar(&opts.Download, "download", "", `download the artifact: true/1/yes/y or false/0/no/n (default "true")`)
	flags.StringVar(&opts.DeleteArtifacts, "delete-artifacts", "", `delete remote artifacts after the run: same literals (default "true")`)
	flags.StringVar(&opts.OutputDir, "output-dir", "", fmt.Sprintf("local destination for the artifact (default %q)", config.DefaultOutputDir))
	flags.StringVar(&configPath, "config", "", "defaults file (default $HOME/.buildrun.yaml)")
	flags.BoolVar(&quiet, "quiet", false, "suppress progress; print only the run_id line")
	flags.BoolVar(&verbose, "verbose", false, "log poll-level detail")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("%w: GITHUB_TOKEN environment variable", config.ErrMissingArgument)
	}

	path := configPath
	if path == "" {
		path = config.DefaultsPath()
	}
	defs, err := config.LoadDefaults(path)
	if err != nil {
		return usageError{err}
	}

	req, err := config.Build(opts, defs)
	if err != nil {
		return err
	}

	ci, err := provider.New("github", cfg.GitHubToken, req.Repo)
	if err != nil {
		return err
	}

	interactive := !quiet && term.IsTerminal(int(os.Stderr.Fd()))

	var rep report.Reporter
	if quiet {
		rep = report.NewQuiet(os.Stdout)
	} else {
		rep = report.NewConsole(os.Stdout, os.Stderr, interactive)
	}

	if gh, ok := ci.(*githubactions.Provider); ok && interactive {
		gh.SetProgressWriter(os.Stderr)
	}

	var log logger.Logger = logger.NewSilentLogger()
	if verbose {
		log = logger.NewConsoleLogger()
	}

	loop := dispatch.New(ci, req, rep, log)
	_, err = loop.Run(cmd.Context())
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", provider.WrapError(err))
		os.Exit(exitCode(err))
	}
}

// exitCode maps the error taxonomy onto process exit codes:
// 2 for anything caught before the first remote call, 1 otherwise.
func exitCode(err error) int {
	var usage usageError
	if errors.Is(err, config.ErrMissingArgument) ||
		errors.Is(err, config.ErrInvalidBooleanValue) ||
		errors.Is(err, config.ErrInvalidRepoFormat) ||
		errors.As(err, &usage) {
		return 2
	}
	return 1
}
