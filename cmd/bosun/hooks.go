package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/bosunhq/bosun/internal/git"
	"github.com/bosunhq/bosun/internal/output"
	"github.com/bosunhq/bosun/internal/setup"
)

// newHooksCmd creates the hooks parent command with subcommands.
func newHooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Manage the bosun pre-commit hook",
		Long: `Manage the git pre-commit hook that runs your checks.

Installation appends to .git/hooks/pre-commit, so hook content written by
hand or by other tools is preserved. Installing twice is a no-op: a marker
line in the payload prevents duplication.

Subcommands:
  install    Install the pre-commit hook
  uninstall  Remove the bosun payload from the hook
  list       Show hook status

Examples:
  bosun hooks list              # Show hook status
  bosun hooks install           # Append the bosun payload to the hook
  bosun hooks install --force   # Replace the hook with only the bosun payload
  bosun hooks uninstall         # Strip the bosun payload, keep the rest`,
	}

	cmd.AddCommand(newHooksListCmd())
	cmd.AddCommand(newHooksInstallCmd())
	cmd.AddCommand(newHooksUninstallCmd())
	return cmd
}

// hookFilePath resolves the pre-commit hook location for the current repo.
func hookFilePath() (string, error) {
	hooksDir, err := git.HooksDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(hooksDir, setup.HookName), nil
}

// newHooksListCmd creates the hooks list subcommand.
func newHooksListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show status of the pre-commit hook",
		Long:  `Show whether the pre-commit hook exists and carries the bosun payload.`,
		RunE:  runHooksList,
	}
}

// runHooksList executes the hooks list command.
func runHooksList(cmd *cobra.Command, _ []string) error {
	printer := newPrinter(cmd)

	if !git.IsRepo() {
		err := output.NewSystemError("not in a git repository")
		printer.Error(err)
		return err
	}

	hookPath, err := hookFilePath()
	if err != nil {
		printer.Error(err)
		return err
	}
	status := setup.CheckStatus(hookPath)

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"pre_commit": map[string]any{
				"path":      hookPath,
				"exists":    status.Exists,
				"installed": status.Installed,
			},
		})
	}

	printer.Section("Git Hooks")
	printer.KeyValue("Path", hookPath)
	printer.KeyValue(setup.HookName, describeStatus(status))
	return nil
}

// describeStatus renders a hook status as a short phrase.
func describeStatus(status setup.Status) string {
	switch {
	case status.Installed:
		return "installed"
	case status.Exists:
		return "foreign hook present (bosun not installed)"
	default:
		return "not installed"
	}
}
