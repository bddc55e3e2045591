package main

import (
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bosunhq/bosun/internal/config"
	"github.com/bosunhq/bosun/internal/git"
	"github.com/bosunhq/bosun/internal/setup"
)

// runEnvironmentChecks verifies the binaries the hook depends on.
func runEnvironmentChecks() []checkResult {
	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkGitInPath())
	checks = append(checks, checkBosunInPath())
	return checks
}

// checkGitInPath checks that the git binary is available.
func checkGitInPath() checkResult {
	path, err := exec.LookPath("git")
	if err != nil {
		return checkResult{
			Name:    "Git Binary",
			Status:  checkFail,
			Message: "git not found in PATH",
			Hint:    "Install git and make sure it is on your PATH",
		}
	}
	return checkResult{
		Name:    "Git Binary",
		Status:  checkPass,
		Message: path,
	}
}

// checkBosunInPath checks that the installed hook will find bosun.
// The hook script resolves bosun through PATH, not through the binary
// that installed it.
func checkBosunInPath() checkResult {
	path, err := exec.LookPath("bosun")
	if err != nil {
		return checkResult{
			Name:    "Bosun Binary",
			Status:  checkWarn,
			Message: "bosun not found in PATH, the hook will skip checks",
			Hint:    "Put the bosun binary on your PATH",
		}
	}
	return checkResult{
		Name:    "Bosun Binary",
		Status:  checkPass,
		Message: path,
	}
}

// runRepositoryChecks verifies the hook and config in the current repo.
func runRepositoryChecks(flags *doctorFlags) []checkResult {
	checks := make([]checkResult, 0, 2)
	checks = append(checks, checkHookInstalled(flags))
	checks = append(checks, checkConfigFile(flags))
	return checks
}

// checkHookInstalled checks whether the pre-commit hook carries the payload.
func checkHookInstalled(flags *doctorFlags) checkResult {
	hooksDir, err := git.HooksDir()
	if err != nil {
		return checkResult{
			Name:    "Pre-commit Hook",
			Status:  checkWarn,
			Message: "could not determine hooks directory: " + err.Error(),
		}
	}

	hookPath := filepath.Join(hooksDir, setup.HookName)
	status := setup.CheckStatus(hookPath)
	if status.Installed {
		return checkResult{
			Name:    "Pre-commit Hook",
			Status:  checkPass,
			Message: "bosun installed in pre-commit hook",
		}
	}

	if flags.fix {
		if _, installErr := setup.InstallAt(hookPath); installErr == nil {
			return checkResult{
				Name:    "Pre-commit Hook",
				Status:  checkPass,
				Message: "bosun installed in pre-commit hook (auto-fixed)",
			}
		}
	}

	if status.Exists {
		return checkResult{
			Name:    "Pre-commit Hook",
			Status:  checkWarn,
			Message: "pre-commit hook present without bosun",
			Hint:    "Run 'bosun hooks install' to append the bosun payload",
		}
	}

	return checkResult{
		Name:    "Pre-commit Hook",
		Status:  checkWarn,
		Message: "pre-commit hook not installed",
		Hint:    "Run 'bosun hooks install' or 'bosun doctor --fix'",
	}
}

// checkConfigFile checks that the config exists and parses.
func checkConfigFile(flags *doctorFlags) checkResult {
	root, err := git.RepoRoot()
	if err != nil {
		return checkResult{
			Name:    "Config File",
			Status:  checkWarn,
			Message: "could not determine repo root: " + err.Error(),
		}
	}

	path := config.Find(root)
	if path == "" {
		if flags.fix {
			if _, writeErr := config.WriteStarter(root); writeErr == nil {
				return checkResult{
					Name:    "Config File",
					Status:  checkPass,
					Message: "wrote starter " + config.FileName + " (auto-fixed)",
				}
			}
		}
		return checkResult{
			Name:    "Config File",
			Status:  checkWarn,
			Message: config.FileName + " not found, 'bosun run' passes vacuously",
			Hint:    "Run 'bosun init' to write a starter config",
		}
	}

	cfg, loadErr := config.Load(root)
	if loadErr != nil {
		return checkResult{
			Name:    "Config File",
			Status:  checkFail,
			Message: "config does not parse: " + loadErr.Error(),
			Hint:    "Fix the YAML in " + path,
		}
	}

	if len(cfg.Commands) == 0 {
		return checkResult{
			Name:    "Config File",
			Status:  checkWarn,
			Message: "no commands configured, 'bosun run' passes vacuously",
			Hint:    "Add commands to " + path,
		}
	}

	return checkResult{
		Name:    "Config File",
		Status:  checkPass,
		Message: strconv.Itoa(len(cfg.Commands)) + " command(s) configured",
	}
}

// runConfiguredCommandChecks verifies each configured command's program
// resolves through PATH. Load errors are reported by checkConfigFile, so
// an unreadable config yields an empty section here.
func runConfiguredCommandChecks() []checkResult {
	root, err := git.RepoRoot()
	if err != nil {
		return nil
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil
	}

	checks := make([]checkResult, 0, len(cfg.Commands))
	for _, command := range cfg.Commands {
		checks = append(checks, checkCommandResolvable(command))
	}
	return checks
}

// checkCommandResolvable checks that a command's program is in PATH.
func checkCommandResolvable(command string) checkResult {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return checkResult{
			Name:    "Command",
			Status:  checkFail,
			Message: "empty command in config",
			Hint:    "Remove the blank entry from " + config.FileName,
		}
	}

	program := fields[0]
	if _, err := exec.LookPath(program); err != nil {
		return checkResult{
			Name:    program,
			Status:  checkFail,
			Message: "not found in PATH",
			Hint:    "Install " + program + " or fix the command in " + config.FileName,
		}
	}

	return checkResult{
		Name:    program,
		Status:  checkPass,
		Message: command,
	}
}
