package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/bosunhq/bosun/internal/config"
	"github.com/bosunhq/bosun/internal/git"
	"github.com/bosunhq/bosun/internal/runner"
)

// newRunCmd creates the run command, the entry point the installed
// pre-commit hook invokes.
func newRunCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured checks",
		Long: `Run the check commands from .bosun.yaml in order, stopping at the
first failure. Exits 0 when every check passes and 1 otherwise, which is
what tells git whether the commit may proceed.

With --verbose (or verbose: true in the config, or BOSUN_VERBOSE=1),
command output streams live; otherwise output appears only for failures.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runChecks(cmd, cmd.Flags().Changed("verbose"), verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Stream command output live")

	return cmd
}

// runChecks loads the config and executes the checks.
// verboseSet distinguishes "--verbose not given" from "--verbose=false" so
// the flag can override the config in both directions.
func runChecks(cmd *cobra.Command, verboseSet, verbose bool) error {
	printer := newPrinter(cmd)

	root, err := git.RepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	cfg, err := config.Load(root)
	if err != nil {
		printer.Error(err)
		return err
	}

	if verboseSet {
		cfg.Verbose = verbose
	}

	run := runner.New(printer, runner.Options{
		Verbose: cfg.Verbose,
		Timeout: time.Duration(cfg.Timeout),
	})

	result, runErr := run.RunAll(cmd.Context(), cfg.Commands)

	if printer.IsJSON() {
		if err := printer.WriteJSON(result); err != nil {
			return err
		}
	}
	if runErr != nil && printer.IsJSON() {
		// Human mode already printed the failure during the run
		printer.Error(runErr)
	}

	return runErr
}
