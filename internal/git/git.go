// Package git provides Git operations via exec for the bosun CLI.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bosunhq/bosun/internal/output"
)

// Run executes a git command with the given arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func Run(args ...string) (string, error) {
	return RunContext(context.Background(), args...)
}

// RunContext executes a git command with the given context and arguments.
// It captures stdout and returns it as a trimmed string.
// Returns an *output.ExitError on failure with appropriate exit code.
func RunContext(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check if git is not found
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemError("git not found: ensure git is installed and in PATH")
		}

		// Git command failed - include stderr in message
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return "", output.NewSystemErrorWithCause("git command failed: "+errMsg, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// IsRepo checks if the current directory is inside a git repository.
func IsRepo() bool {
	_, err := Run("rev-parse", "--git-dir")
	return err == nil
}

// RepoRoot returns the root directory of the current git repository.
// Returns an error if not in a git repository.
func RepoRoot() (string, error) {
	root, err := Run("rev-parse", "--show-toplevel")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return root, nil
}

// Dir returns the absolute path of the repository's metadata directory.
// Usually <root>/.git, but worktrees and GIT_DIR point elsewhere, so the
// answer comes from git itself rather than path construction.
func Dir() (string, error) {
	dir, err := Run("rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", output.NewSystemErrorWithCause("not in a git repository", err)
	}
	return dir, nil
}

// HooksDir returns the directory git consults for hooks.
// Respects core.hooksPath when configured.
func HooksDir() (string, error) {
	if path, err := Run("config", "--get", "core.hooksPath"); err == nil && path != "" {
		if filepath.IsAbs(path) {
			return path, nil
		}
		root, err := RepoRoot()
		if err != nil {
			return "", err
		}
		return filepath.Join(root, path), nil
	}

	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "hooks"), nil
}

// HasStagedChanges returns true if the index has changes staged for commit.
func HasStagedChanges() bool {
	out, err := Run("diff", "--cached", "--name-only")
	if err != nil {
		return false
	}
	return strings.TrimSpace(out) != ""
}
