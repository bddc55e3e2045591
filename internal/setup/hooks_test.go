package setup

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// newRepoDir creates a fake repo layout: root with a .git/hooks directory.
func newRepoDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git", "hooks"), 0o755); err != nil {
		t.Fatalf("creating .git/hooks: %v", err)
	}
	return root
}

func TestInstall_CreatesHook(t *testing.T) {
	root := newRepoDir(t)

	result, err := Install(root, ".git")
	if err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if result != Installed {
		t.Errorf("result = %v, want Installed", result)
	}

	path := HookPath(root, ".git")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading hook: %v", err)
	}
	if !strings.Contains(string(content), Marker) {
		t.Error("hook content missing marker")
	}
	if !strings.HasPrefix(string(content), "#!/bin/sh") {
		t.Error("hook should start with shebang")
	}
}

func TestInstall_ExecutableBit(t *testing.T) {
	root := newRepoDir(t)

	if _, err := Install(root, ".git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	info, err := os.Stat(HookPath(root, ".git"))
	if err != nil {
		t.Fatalf("stat hook: %v", err)
	}
	if info.Mode().Perm()&0o111 != 0o111 {
		t.Errorf("hook mode = %v, want owner/group/other execute bits", info.Mode())
	}
}

func TestInstall_Idempotent(t *testing.T) {
	root := newRepoDir(t)

	if _, err := Install(root, ".git"); err != nil {
		t.Fatalf("first Install() error = %v", err)
	}
	first, err := os.ReadFile(HookPath(root, ".git"))
	if err != nil {
		t.Fatalf("reading hook: %v", err)
	}

	result, err := Install(root, ".git")
	if err != nil {
		t.Fatalf("second Install() error = %v", err)
	}
	if result != AlreadyInstalled {
		t.Errorf("result = %v, want AlreadyInstalled", result)
	}

	second, err := os.ReadFile(HookPath(root, ".git"))
	if err != nil {
		t.Fatalf("reading hook: %v", err)
	}
	if string(first) != string(second) {
		t.Errorf("second install changed the file\nfirst:\n%s\nsecond:\n%s", first, second)
	}
	if strings.Count(string(second), Marker) != strings.Count(hookScript, Marker) {
		t.Error("marker duplicated by repeated install")
	}
}

func TestInstall_PreservesExistingContent(t *testing.T) {
	root := newRepoDir(t)
	path := HookPath(root, ".git")

	existing := "#!/bin/sh\necho 'user hook'\n"
	// #nosec G306 -- test hook needs execute permission
	if err := os.WriteFile(path, []byte(existing), 0o755); err != nil {
		t.Fatalf("creating existing hook: %v", err)
	}

	if _, err := Install(root, ".git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading hook: %v", err)
	}
	if !strings.HasPrefix(string(content), existing) {
		t.Error("existing hook content was not preserved at the top of the file")
	}
	if !strings.Contains(string(content), Marker) {
		t.Error("payload was not appended after existing content")
	}
}

func TestInstall_AppendAddsNewlineSeparator(t *testing.T) {
	root := newRepoDir(t)
	path := HookPath(root, ".git")

	// No trailing newline on the existing content
	// #nosec G306 -- test hook needs execute permission
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho hi"), 0o755); err != nil {
		t.Fatalf("creating existing hook: %v", err)
	}

	if _, err := Install(root, ".git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "hi#!/bin/sh") {
		t.Error("payload glued onto the previous line")
	}
}

func TestInstall_NotARepo(t *testing.T) {
	root := t.TempDir() // no .git directory

	_, err := Install(root, ".git")
	if err == nil {
		t.Fatal("expected error for missing metadata directory")
	}
	if !errors.Is(err, ErrNotARepo) {
		t.Errorf("error = %v, want ErrNotARepo", err)
	}

	// No filesystem writes may have happened
	entries, readErr := os.ReadDir(root)
	if readErr != nil {
		t.Fatalf("reading root: %v", readErr)
	}
	if len(entries) != 0 {
		t.Errorf("install wrote into a non-repo directory: %v", entries)
	}
}

func TestInstall_CustomMetadataDirName(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "_git", "hooks"), 0o755); err != nil {
		t.Fatalf("creating _git/hooks: %v", err)
	}

	if _, err := Install(root, "_git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if st := CheckStatus(HookPath(root, "_git")); !st.Installed {
		t.Error("hook not installed under custom metadata dir name")
	}
}

func TestCheckStatus(t *testing.T) {
	root := newRepoDir(t)
	path := HookPath(root, ".git")

	if st := CheckStatus(path); st.Exists || st.Installed {
		t.Errorf("status of missing file = %+v, want zero", st)
	}

	// #nosec G306 -- test hook needs execute permission
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho other\n"), 0o755); err != nil {
		t.Fatalf("writing hook: %v", err)
	}
	if st := CheckStatus(path); !st.Exists || st.Installed {
		t.Errorf("status of foreign hook = %+v, want exists but not installed", st)
	}

	if _, err := Install(root, ".git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if st := CheckStatus(path); !st.Exists || !st.Installed {
		t.Errorf("status after install = %+v, want exists and installed", st)
	}
}

func TestUninstall_RemovesFileWhenOnlyPayload(t *testing.T) {
	root := newRepoDir(t)
	if _, err := Install(root, ".git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	path := HookPath(root, ".git")
	result, err := Uninstall(path)
	if err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if result != Removed {
		t.Errorf("result = %v, want Removed", result)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("hook file should be deleted when only the payload remained")
	}
}

func TestUninstall_PreservesUserContent(t *testing.T) {
	root := newRepoDir(t)
	path := HookPath(root, ".git")

	existing := "#!/bin/sh\necho 'user hook'\n"
	// #nosec G306 -- test hook needs execute permission
	if err := os.WriteFile(path, []byte(existing), 0o755); err != nil {
		t.Fatalf("creating existing hook: %v", err)
	}
	if _, err := Install(root, ".git"); err != nil {
		t.Fatalf("Install() error = %v", err)
	}

	if _, err := Uninstall(path); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("hook file should survive with user content: %v", err)
	}
	if string(content) != existing {
		t.Errorf("remaining content = %q, want original user hook", content)
	}
}

func TestUninstall_NotInstalled(t *testing.T) {
	root := newRepoDir(t)

	result, err := Uninstall(HookPath(root, ".git"))
	if err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if result != NotInstalled {
		t.Errorf("result = %v, want NotInstalled", result)
	}
}

func TestOverwrite(t *testing.T) {
	root := newRepoDir(t)
	path := HookPath(root, ".git")

	// #nosec G306 -- test hook needs execute permission
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho old\n"), 0o755); err != nil {
		t.Fatalf("creating existing hook: %v", err)
	}

	if err := Overwrite(path); err != nil {
		t.Fatalf("Overwrite() error = %v", err)
	}

	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "echo old") {
		t.Error("overwrite kept old content")
	}
	if !strings.Contains(string(content), Marker) {
		t.Error("overwrite missing payload")
	}
}
