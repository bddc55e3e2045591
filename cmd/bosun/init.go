package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bosunhq/bosun/internal/config"
	"github.com/bosunhq/bosun/internal/git"
	"github.com/bosunhq/bosun/internal/output"
	"github.com/bosunhq/bosun/internal/setup"
)

// initFlags holds the command-line flags for the init command.
type initFlags struct {
	noHooks bool
	dryRun  bool
}

// initStepResult tracks the result of a single initialization step.
type initStepResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "skipped", "failed", "dry_run"
	Message string `json:"message,omitempty"`
}

// initState holds the current state of bosun setup in the repo.
type initState struct {
	configExists  bool
	hookInstalled bool
}

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize bosun in the current repository",
		Long: `Initialize bosun in the current repository.

This command sets up everything needed to gate commits:
  - Writes a starter .bosun.yaml at the repository root
  - Installs the git pre-commit hook (skip with --no-hooks)

The command is idempotent. An existing config is never touched, and
installing the hook twice changes nothing.

Examples:
  bosun init              # Write config and install the hook
  bosun init --no-hooks   # Write config only
  bosun init --dry-run    # Show what would be done`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.noHooks, "no-hooks", false, "Skip installing the pre-commit hook")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, flags *initFlags) error {
	printer := newPrinter(cmd)

	root, err := git.RepoRoot()
	if err != nil {
		printer.Error(err)
		return err
	}

	state := gatherInitState(root)

	if flags.dryRun {
		return handleInitDryRun(printer, root, state, flags)
	}

	return performInit(printer, root, state, flags)
}

// gatherInitState checks the current bosun setup state.
func gatherInitState(root string) *initState {
	state := &initState{}
	state.configExists = config.Find(root) != ""

	if hooksDir, err := git.HooksDir(); err == nil {
		status := setup.CheckStatus(filepath.Join(hooksDir, setup.HookName))
		state.hookInstalled = status.Installed
	}

	return state
}

// handleInitDryRun outputs what would be done without making changes.
func handleInitDryRun(printer *output.Printer, root string, state *initState, flags *initFlags) error {
	steps := buildInitDryRunSteps(state, flags)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status": "dry_run",
			"repo":   root,
			"steps":  steps,
		})
	}

	printer.Section("Dry Run")
	for _, step := range steps {
		printer.KeyValue(step.Name, step.Message)
	}
	return nil
}

// buildInitDryRunSteps describes the steps init would take.
func buildInitDryRunSteps(state *initState, flags *initFlags) []initStepResult {
	steps := make([]initStepResult, 0, 2)

	configMsg := "would write starter " + config.FileName
	if state.configExists {
		configMsg = "config exists, would leave it alone"
	}
	steps = append(steps, initStepResult{Name: "config", Status: "dry_run", Message: configMsg})

	hookMsg := "would install the pre-commit hook"
	switch {
	case flags.noHooks:
		hookMsg = "skipped (--no-hooks)"
	case state.hookInstalled:
		hookMsg = "hook already installed, would change nothing"
	}
	steps = append(steps, initStepResult{Name: "hooks", Status: "dry_run", Message: hookMsg})

	return steps
}

// performInit runs the actual initialization steps.
func performInit(printer *output.Printer, root string, state *initState, flags *initFlags) error {
	if isAlreadyInitialized(state, flags) {
		return outputAlreadyInitialized(printer, root)
	}

	steps := executeInitSteps(printer, root, state, flags)
	return outputInitResult(printer, root, steps)
}

// isAlreadyInitialized checks if bosun is fully set up.
func isAlreadyInitialized(state *initState, flags *initFlags) bool {
	return state.configExists && (flags.noHooks || state.hookInstalled)
}

// outputAlreadyInitialized handles the already-initialized case.
func outputAlreadyInitialized(printer *output.Printer, root string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":              "ok",
			"already_initialized": true,
			"repo":                root,
		})
	}
	printer.Println("Bosun is already set up in this repository.")
	printer.Println("Run 'bosun doctor' to check health.")
	return nil
}

// executeInitSteps performs the config and hook steps, reporting each.
func executeInitSteps(printer *output.Printer, root string, state *initState, flags *initFlags) []initStepResult {
	steps := make([]initStepResult, 0, 2)
	steps = append(steps, stepWriteConfig(printer, root, state))
	steps = append(steps, stepInstallHook(printer, root, flags))
	return steps
}

// stepWriteConfig writes the starter config unless one already exists.
func stepWriteConfig(printer *output.Printer, root string, state *initState) initStepResult {
	if state.configExists {
		reportStep(printer, "skipped: "+config.FileName+" already exists")
		return initStepResult{Name: "config", Status: "skipped", Message: "config already exists"}
	}

	if _, err := config.WriteStarter(root); err != nil {
		// A config appearing between the check and the write is still fine
		conflictErr := &output.ExitError{}
		if errors.As(err, &conflictErr) && conflictErr.Code == output.ExitConflict {
			reportStep(printer, "skipped: "+config.FileName+" already exists")
			return initStepResult{Name: "config", Status: "skipped", Message: "config already exists"}
		}
		printer.Warn("writing %s: %v", config.FileName, err)
		return initStepResult{Name: "config", Status: "failed", Message: err.Error()}
	}

	reportStep(printer, "wrote starter "+config.FileName)
	return initStepResult{Name: "config", Status: "ok", Message: "wrote starter config"}
}

// stepInstallHook installs the pre-commit hook unless --no-hooks was given.
func stepInstallHook(printer *output.Printer, root string, flags *initFlags) initStepResult {
	if flags.noHooks {
		reportStep(printer, "skipped: hook install (--no-hooks)")
		return initStepResult{Name: "hooks", Status: "skipped", Message: "skipped by flag"}
	}

	result, err := installHook(root)
	if err != nil {
		printer.Warn("installing hook: %v", err)
		return initStepResult{Name: "hooks", Status: "failed", Message: err.Error()}
	}

	if result == setup.AlreadyInstalled {
		reportStep(printer, "pre-commit hook already installed")
		return initStepResult{Name: "hooks", Status: "skipped", Message: "already installed"}
	}

	reportStep(printer, "installed pre-commit hook")
	return initStepResult{Name: "hooks", Status: "ok", Message: "installed pre-commit hook"}
}

// installHook appends the payload at the git-resolved hook location,
// falling back to root/.git when resolution fails.
func installHook(root string) (setup.InstallResult, error) {
	hooksDir, err := git.HooksDir()
	if err != nil {
		return setup.Install(root, ".git")
	}
	return setup.InstallAt(filepath.Join(hooksDir, setup.HookName))
}

// reportStep prints a human-mode progress line for one init step.
func reportStep(printer *output.Printer, msg string) {
	if !printer.IsJSON() {
		printer.Pass("%s", msg)
	}
}

// outputInitResult outputs the final initialization result.
func outputInitResult(printer *output.Printer, root string, steps []initStepResult) error {
	for _, step := range steps {
		if step.Status == "failed" {
			err := output.NewSystemError("init did not complete: " + step.Message)
			printer.Error(err)
			return err
		}
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":              "ok",
			"repo":                root,
			"already_initialized": false,
			"steps":               steps,
		})
	}

	printer.Println()
	printer.Println("Edit " + config.FileName + " to configure your checks, then commit as usual.")
	return nil
}
