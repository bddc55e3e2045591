// Package setup installs and removes the bosun pre-commit hook.
//
// Installation is append-based and idempotent: the hook file is created if
// missing, existing content from other tools is preserved, and a marker
// substring in the payload prevents double installation.
package setup

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/bosunhq/bosun/internal/output"
)

// HookName is the only hook bosun manages.
const HookName = "pre-commit"

// Marker is the substring that identifies an installed bosun hook.
// It is part of the payload's invocation line, so writing the payload and
// detecting a prior install use the same source of truth.
const Marker = "bosun run"

// hookScript is the fixed payload appended to the hook file.
//
//go:embed hook.sh
var hookScript string

// ErrNotARepo reports that the metadata directory is missing.
// Wrapped in the returned *output.ExitError; test with errors.Is.
var ErrNotARepo = errors.New("not a git repository")

// Script returns the hook payload.
func Script() string {
	return hookScript
}

// HookPath computes the hook file location from a project root and the
// metadata directory name (normally ".git").
func HookPath(root, gitDirName string) string {
	return filepath.Join(root, gitDirName, "hooks", HookName)
}

// Status describes the state of a hook file.
type Status struct {
	Exists    bool `json:"exists"`
	Installed bool `json:"installed"`
}

// CheckStatus inspects the hook file at path.
func CheckStatus(path string) Status {
	content, err := os.ReadFile(path)
	if err != nil {
		return Status{}
	}
	return Status{
		Exists:    true,
		Installed: strings.Contains(string(content), Marker),
	}
}

// InstallResult reports what Install did.
type InstallResult int

const (
	// Installed means the payload was appended and the file made executable.
	Installed InstallResult = iota
	// AlreadyInstalled means the marker was present and nothing was written.
	AlreadyInstalled
)

// Install writes the bosun payload into root/gitDirName/hooks/pre-commit.
//
// The file is opened in append mode, creating it if needed, so any hook
// content written by the user or another tool survives. If the marker is
// already present the call is a no-op; repeated installs never duplicate
// the payload. On success the file carries mode 0755.
//
// All failures are fatal to the caller: a missing metadata directory yields
// an error wrapping ErrNotARepo, and filesystem failures carry an
// errno-mapped description of the cause.
func Install(root, gitDirName string) (InstallResult, error) {
	metaDir := filepath.Join(root, gitDirName)
	if info, err := os.Stat(metaDir); err != nil || !info.IsDir() {
		return 0, output.NewSystemErrorWithCause(
			root+" is not a git repository (missing "+gitDirName+" directory)", ErrNotARepo)
	}

	return InstallAt(HookPath(root, gitDirName))
}

// InstallAt appends the payload to the hook file at an already-resolved path,
// with the same idempotence and mode guarantees as Install. Callers that
// honor core.hooksPath resolve the path through git and install here.
func InstallAt(hookPath string) (InstallResult, error) {
	// git init creates hooks/, but bare-ish layouts may not have it
	if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
		return 0, fsError("creating hooks directory", hookPath, err)
	}

	// #nosec G302 -- hooks must be executable
	file, err := os.OpenFile(hookPath, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o755)
	if err != nil {
		return 0, fsError("opening hook file", hookPath, err)
	}
	defer file.Close() //nolint:errcheck // double close on the error paths is harmless

	content, err := os.ReadFile(hookPath)
	if err != nil {
		return 0, fsError("reading hook file", hookPath, err)
	}

	if strings.Contains(string(content), Marker) {
		return AlreadyInstalled, nil
	}

	payload := hookScript
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		payload = "\n" + payload
	}
	if _, err := file.WriteString(payload); err != nil {
		return 0, fsError("writing hook file", hookPath, err)
	}
	if err := file.Close(); err != nil {
		return 0, fsError("writing hook file", hookPath, err)
	}

	// Pre-existing files may have been created without the execute bit
	if err := os.Chmod(hookPath, 0o755); err != nil {
		return 0, fsError("marking hook executable", hookPath, err)
	}

	return Installed, nil
}

// UninstallResult reports what Uninstall did.
type UninstallResult int

const (
	// Removed means the payload was stripped and the file kept (other
	// content remained) or deleted (nothing else remained).
	Removed UninstallResult = iota
	// NotInstalled means no bosun payload was found.
	NotInstalled
)

// Uninstall removes the bosun payload from the hook file at path, preserving
// any surrounding content. If only whitespace remains the file is deleted.
//
// Content outside the exact payload block is never touched, so a hand-edited
// bosun section will not be recognized. Known limitation, not a bug.
func Uninstall(path string) (UninstallResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NotInstalled, nil
		}
		return 0, fsError("reading hook file", path, err)
	}

	text := string(content)
	if !strings.Contains(text, hookScript) {
		return NotInstalled, nil
	}

	remaining := strings.Replace(text, hookScript, "", 1)
	if strings.TrimSpace(remaining) == "" {
		if err := os.Remove(path); err != nil {
			return 0, fsError("removing hook file", path, err)
		}
		return Removed, nil
	}

	// #nosec G306 -- hooks must be executable
	if err := os.WriteFile(path, []byte(remaining), 0o755); err != nil {
		return 0, fsError("writing hook file", path, err)
	}
	return Removed, nil
}

// Overwrite replaces the hook file with only the bosun payload.
// Used by install --force when the user wants a clean hook.
func Overwrite(path string) error {
	// #nosec G306 -- hooks must be executable
	if err := os.WriteFile(path, []byte(hookScript), 0o755); err != nil {
		return fsError("writing hook file", path, err)
	}
	return nil
}
