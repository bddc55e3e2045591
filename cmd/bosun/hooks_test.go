package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHooksListCommand_JSON(t *testing.T) {
	newTestRepo(t)

	output, err := execute(t, "hooks", "list", "--json")
	if err != nil {
		t.Fatalf("command failed: %v\nOutput: %s", err, output)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	preCommit, ok := result["pre_commit"].(map[string]any)
	if !ok {
		t.Fatalf("missing pre_commit field: %s", output)
	}
	if preCommit["installed"] != false {
		t.Errorf("installed = %v, want false", preCommit["installed"])
	}
	if preCommit["exists"] != false {
		t.Errorf("exists = %v, want false", preCommit["exists"])
	}
}

func TestHooksListHumanOutput(t *testing.T) {
	newTestRepo(t)

	output, err := execute(t, "hooks", "list")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}

	for _, check := range []string{"pre-commit", "not installed"} {
		if !strings.Contains(output, check) {
			t.Errorf("human output missing %q\nOutput: %s", check, output)
		}
	}
}

func TestHooksInstallCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStatus string
		checkHook  func(t *testing.T, dir string)
	}{
		{
			name:       "install hook JSON output",
			args:       []string{"hooks", "install", "--json"},
			wantStatus: "ok",
			checkHook: func(t *testing.T, dir string) {
				hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
				content, err := os.ReadFile(hookPath)
				if err != nil {
					t.Fatalf("failed to read hook: %v", err)
				}
				if !strings.Contains(string(content), "bosun run") {
					t.Error("hook does not contain the bosun invocation")
				}
			},
		},
		{
			name:       "dry-run does not create hook",
			args:       []string{"hooks", "install", "--dry-run", "--json"},
			wantStatus: "dry_run",
			checkHook: func(t *testing.T, dir string) {
				hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
				if _, err := os.Stat(hookPath); err == nil {
					t.Error("hook file should not be created in dry-run mode")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := newTestRepo(t)

			output, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Execute() error = %v\nOutput: %s", err, output)
			}

			var result map[string]any
			if err := json.Unmarshal([]byte(output), &result); err != nil {
				t.Fatalf("failed to parse JSON output: %v\nOutput: %s", err, output)
			}
			if result["status"] != tt.wantStatus {
				t.Errorf("status = %v, want %v", result["status"], tt.wantStatus)
			}

			if tt.checkHook != nil {
				tt.checkHook(t, dir)
			}
		})
	}
}

func TestHooksInstallPreservesExistingHook(t *testing.T) {
	dir := newTestRepo(t)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	existing := "#!/bin/sh\necho 'existing hook'\n"
	if err := os.WriteFile(hookPath, []byte(existing), 0o755); err != nil {
		t.Fatalf("failed to create existing hook: %v", err)
	}

	output, err := execute(t, "hooks", "install", "--json")
	if err != nil {
		t.Fatalf("command failed: %v\nOutput: %s", err, output)
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read hook: %v", err)
	}
	if !strings.HasPrefix(string(content), existing) {
		t.Error("existing hook content was not preserved at the start of the file")
	}
	if !strings.Contains(string(content), "bosun run") {
		t.Error("bosun payload was not appended")
	}
}

func TestHooksInstallIdempotent(t *testing.T) {
	dir := newTestRepo(t)

	if _, err := execute(t, "hooks", "install"); err != nil {
		t.Fatalf("first install failed: %v", err)
	}

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	first, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read hook: %v", err)
	}

	if _, err := execute(t, "hooks", "install"); err != nil {
		t.Fatalf("second install failed: %v", err)
	}

	second, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read hook: %v", err)
	}
	if string(first) != string(second) {
		t.Error("second install modified the hook file")
	}
}

func TestHooksInstallForceOverwrite(t *testing.T) {
	dir := newTestRepo(t)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	if err := os.WriteFile(hookPath, []byte("#!/bin/sh\necho 'existing hook'\n"), 0o755); err != nil {
		t.Fatalf("failed to create existing hook: %v", err)
	}

	output, err := execute(t, "hooks", "install", "--force", "--json")
	if err != nil {
		t.Fatalf("command failed: %v\nOutput: %s", err, output)
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read hook: %v", err)
	}
	if strings.Contains(string(content), "existing hook") {
		t.Error("--force should replace existing content")
	}
	if !strings.Contains(string(content), "bosun run") {
		t.Error("hook was not overwritten with the bosun payload")
	}
}

func TestHooksUninstallCommand(t *testing.T) {
	dir := newTestRepo(t)

	if _, err := execute(t, "hooks", "install"); err != nil {
		t.Fatalf("install failed: %v", err)
	}

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	if _, err := os.Stat(hookPath); err != nil {
		t.Fatal("hook was not installed")
	}

	output, err := execute(t, "hooks", "uninstall", "--json")
	if err != nil {
		t.Fatalf("uninstall failed: %v\nOutput: %s", err, output)
	}

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nOutput: %s", err, output)
	}
	if result["status"] != "ok" {
		t.Errorf("status = %v, want ok", result["status"])
	}

	// Nothing but the payload was in the file, so it should be gone
	if _, err := os.Stat(hookPath); err == nil {
		t.Error("hook file was not removed")
	}
}

func TestHooksUninstallKeepsForeignContent(t *testing.T) {
	dir := newTestRepo(t)

	hookPath := filepath.Join(dir, ".git", "hooks", "pre-commit")
	existing := "#!/bin/sh\necho 'original hook'\n"
	if err := os.WriteFile(hookPath, []byte(existing), 0o755); err != nil {
		t.Fatalf("failed to create existing hook: %v", err)
	}

	if _, err := execute(t, "hooks", "install"); err != nil {
		t.Fatalf("install failed: %v", err)
	}
	if _, err := execute(t, "hooks", "uninstall"); err != nil {
		t.Fatalf("uninstall failed: %v", err)
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		t.Fatalf("failed to read hook: %v", err)
	}
	if !strings.Contains(string(content), "original hook") {
		t.Errorf("original content lost:\n%s", content)
	}
	if strings.Contains(string(content), "bosun run") {
		t.Errorf("bosun payload still present:\n%s", content)
	}
}

func TestHooksNotARepo(t *testing.T) {
	t.Chdir(t.TempDir())

	subcommands := []string{"list", "install", "uninstall"}

	for _, subcmd := range subcommands {
		t.Run(subcmd, func(t *testing.T) {
			output, err := execute(t, "hooks", subcmd, "--json")
			if err == nil {
				t.Fatal("expected error for non-repo directory")
			}

			var result map[string]any
			if jsonErr := json.Unmarshal([]byte(output), &result); jsonErr != nil {
				t.Fatalf("failed to parse JSON error output: %v\nOutput: %s", jsonErr, output)
			}

			code, ok := result["code"].(float64)
			if !ok {
				t.Fatalf("missing or invalid 'code' in error output: %v", result)
			}
			if code != 2 {
				t.Errorf("error code = %v, want 2 (system error)", code)
			}
		})
	}
}
