package main

import (
	"github.com/spf13/cobra"

	"github.com/bosunhq/bosun/internal/git"
	"github.com/bosunhq/bosun/internal/output"
	"github.com/bosunhq/bosun/internal/setup"
)

// newHooksInstallCmd creates the hooks install subcommand.
func newHooksInstallCmd() *cobra.Command {
	var force bool
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the bosun pre-commit hook",
		Long: `Install the pre-commit hook into the repository's hooks directory.

The payload is appended, so existing hook content is preserved and runs
before the bosun checks. Repeated installs detect the payload marker and
change nothing. Use --force to replace the file with only the bosun payload.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksInstall(cmd, force, dryRun)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Replace the hook file with only the bosun payload")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksInstall executes the hooks install command.
func runHooksInstall(cmd *cobra.Command, force, dryRun bool) error {
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

	// Operator visibility before anything can fail
	if !printer.IsJSON() {
		printer.Print("Hook file: %s\n", hookPath)
	}

	if dryRun {
		return handleInstallDryRun(printer, hookPath, status, force)
	}

	if force {
		if err := setup.Overwrite(hookPath); err != nil {
			printer.Error(err)
			return err
		}
		return outputInstallSuccess(printer, "Installed pre-commit hook (replaced existing)")
	}

	result, err := setup.InstallAt(hookPath)
	if err != nil {
		printer.Error(err)
		return err
	}

	switch result {
	case setup.AlreadyInstalled:
		return outputInstallSuccess(printer, "Pre-commit hook already installed")
	default:
		msg := "Installed pre-commit hook"
		if status.Exists {
			msg += " (existing content preserved)"
		}
		return outputInstallSuccess(printer, msg)
	}
}

// outputInstallSuccess outputs the success message for install.
func outputInstallSuccess(printer *output.Printer, msg string) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status": "ok",
			"hook":   setup.HookName,
		})
	}
	return printer.Success(map[string]any{"message": msg})
}

// handleInstallDryRun handles dry-run output for install.
func handleInstallDryRun(printer *output.Printer, hookPath string, status setup.Status, force bool) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":          "dry_run",
			"hook":            setup.HookName,
			"exists":          status.Exists,
			"installed":       status.Installed,
			"would_overwrite": force,
		})
	}

	printer.Section("Dry Run")
	printer.KeyValue("Hook", setup.HookName)
	printer.KeyValue("Path", hookPath)
	printer.KeyValue("Action", describeInstallAction(status, force))

	return nil
}

// describeInstallAction returns a description of what install would do.
func describeInstallAction(status setup.Status, force bool) string {
	switch {
	case force:
		return "would replace the hook file with the bosun payload"
	case status.Installed:
		return "already installed, would change nothing"
	case status.Exists:
		return "would append after existing hook content"
	default:
		return "would create the hook"
	}
}

// newHooksUninstallCmd creates the hooks uninstall subcommand.
func newHooksUninstallCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the bosun payload from the pre-commit hook",
		Long: `Remove the bosun payload from the pre-commit hook, keeping any other
hook content. The file is deleted only when nothing else remains.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHooksUninstall(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without doing it")

	return cmd
}

// runHooksUninstall executes the hooks uninstall command.
func runHooksUninstall(cmd *cobra.Command, dryRun bool) error {
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

	if dryRun {
		return handleUninstallDryRun(printer, hookPath, status)
	}

	result, err := setup.Uninstall(hookPath)
	if err != nil {
		printer.Error(err)
		return err
	}

	if result == setup.NotInstalled {
		if printer.IsJSON() {
			return printer.Success(map[string]any{
				"status":  "ok",
				"message": "no bosun hook installed",
			})
		}
		return printer.Success(map[string]any{"message": "No bosun hook installed"})
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status": "ok",
			"hook":   setup.HookName,
		})
	}
	return printer.Success(map[string]any{"message": "Removed bosun payload from pre-commit hook"})
}

// handleUninstallDryRun handles dry-run output for uninstall.
func handleUninstallDryRun(printer *output.Printer, hookPath string, status setup.Status) error {
	if printer.IsJSON() {
		return printer.Success(map[string]any{
			"status":    "dry_run",
			"hook":      setup.HookName,
			"exists":    status.Exists,
			"installed": status.Installed,
		})
	}

	printer.Section("Dry Run")
	printer.KeyValue("Hook", setup.HookName)
	printer.KeyValue("Path", hookPath)
	printer.KeyValue("Action", describeUninstallAction(status))

	return nil
}

// describeUninstallAction returns a description of what uninstall would do.
func describeUninstallAction(status setup.Status) string {
	switch {
	case status.Installed:
		return "would remove the bosun payload, preserving other content"
	case status.Exists:
		return "no bosun payload present, would change nothing"
	default:
		return "no hook file, nothing to do"
	}
}
