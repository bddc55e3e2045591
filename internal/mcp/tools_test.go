package mcp

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bosunhq/bosun/internal/setup"
)

// initRepo creates a git repository with a bosun config and chdirs into it.
func initRepo(t *testing.T, configYAML string) string {
	t.Helper()
	dir := t.TempDir()

	cmd := exec.CommandContext(context.Background(), "git", "init")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init failed: %v\nOutput: %s", err, out)
	}

	if configYAML != "" {
		path := filepath.Join(dir, ".bosun.yaml")
		if err := os.WriteFile(path, []byte(configYAML), 0o644); err != nil {
			t.Fatalf("writing config: %v", err)
		}
	}

	t.Chdir(dir)
	return dir
}

func TestHandleRunChecks_AllPass(t *testing.T) {
	initRepo(t, "commands:\n  - true\n  - true\n")

	_, out, err := handleRunChecks(context.Background(), nil, RunChecksInput{})
	if err != nil {
		t.Fatalf("handleRunChecks() error = %v", err)
	}
	if !out.Passed {
		t.Errorf("Passed = false, want true: %+v", out)
	}
	if len(out.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2", len(out.Results))
	}
	if out.Failure != "" {
		t.Errorf("Failure = %q, want empty", out.Failure)
	}
}

func TestHandleRunChecks_FailureIsResultNotError(t *testing.T) {
	initRepo(t, "commands:\n  - true\n  - false\n  - true\n")

	_, out, err := handleRunChecks(context.Background(), nil, RunChecksInput{})
	if err != nil {
		t.Fatalf("a failing check must not be a protocol error: %v", err)
	}
	if out.Passed {
		t.Error("Passed = true, want false")
	}
	if len(out.Results) != 2 {
		t.Errorf("len(Results) = %d, want 2 (fail-fast)", len(out.Results))
	}
	if !strings.Contains(out.Failure, "false") {
		t.Errorf("Failure = %q, should name the failing command", out.Failure)
	}
}

func TestHandleRunChecks_CommandOverride(t *testing.T) {
	initRepo(t, "commands:\n  - false\n")

	input := RunChecksInput{Commands: []string{"true"}}
	_, out, err := handleRunChecks(context.Background(), nil, input)
	if err != nil {
		t.Fatalf("handleRunChecks() error = %v", err)
	}
	if !out.Passed {
		t.Error("override commands should have run instead of the configured list")
	}
}

func TestHandleStatus(t *testing.T) {
	dir := initRepo(t, "commands:\n  - go vet ./...\nverbose: true\n")

	_, out, err := handleStatus(context.Background(), nil, StatusInput{})
	if err != nil {
		t.Fatalf("handleStatus() error = %v", err)
	}

	if out.Installed {
		t.Error("Installed = true before any install")
	}
	if len(out.Commands) != 1 || out.Commands[0] != "go vet ./..." {
		t.Errorf("Commands = %v, want configured list", out.Commands)
	}
	if !out.Verbose {
		t.Error("Verbose = false, want true from config")
	}

	if _, err := setup.Install(dir, ".git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	_, out, err = handleStatus(context.Background(), nil, StatusInput{})
	if err != nil {
		t.Fatalf("handleStatus() error = %v", err)
	}
	if !out.Installed {
		t.Error("Installed = false after install")
	}
}

func TestNewServer(t *testing.T) {
	server := NewServer("test")
	if server == nil {
		t.Fatal("NewServer() returned nil")
	}
}
