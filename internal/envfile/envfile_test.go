package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing env file: %v", err)
	}
	return path
}

func TestLoad_MissingFileIsNil(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Errorf("Load() on missing file = %v, want nil", err)
	}
}

func TestLoad_SetsVariables(t *testing.T) {
	path := writeEnvFile(t, `# comment
BOSUN_TEST_A=plain
BOSUN_TEST_B="quoted value"
export BOSUN_TEST_C='single'

not-a-pair
`)

	for _, key := range []string{"BOSUN_TEST_A", "BOSUN_TEST_B", "BOSUN_TEST_C"} {
		os.Unsetenv(key)
		t.Cleanup(func() { os.Unsetenv(key) })
	}

	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := map[string]string{
		"BOSUN_TEST_A": "plain",
		"BOSUN_TEST_B": "quoted value",
		"BOSUN_TEST_C": "single",
	}
	for key, want := range tests {
		if got := os.Getenv(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestLoad_EnvironmentWins(t *testing.T) {
	path := writeEnvFile(t, "BOSUN_TEST_PRIO=from-file\n")

	t.Setenv("BOSUN_TEST_PRIO", "from-env")

	if err := Load(path); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := os.Getenv("BOSUN_TEST_PRIO"); got != "from-env" {
		t.Errorf("BOSUN_TEST_PRIO = %q, existing environment should win", got)
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line      string
		wantKey   string
		wantValue string
		wantOK    bool
	}{
		{"KEY=value", "KEY", "value", true},
		{"KEY = spaced ", "KEY", "spaced", true},
		{`KEY="has = sign"`, "KEY", "has = sign", true},
		{"export KEY=exported", "KEY", "exported", true},
		{"=novalue", "", "", false},
		{"no equals", "", "", false},
	}

	for _, tt := range tests {
		key, value, ok := parseLine(tt.line)
		if ok != tt.wantOK {
			t.Errorf("parseLine(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			continue
		}
		if key != tt.wantKey || value != tt.wantValue {
			t.Errorf("parseLine(%q) = (%q, %q), want (%q, %q)", tt.line, key, value, tt.wantKey, tt.wantValue)
		}
	}
}
