// Package config loads the bosun configuration: the ordered list of check
// commands and runner settings, read from a YAML file at the repository root.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/bosunhq/bosun/internal/output"
)

// FileName is the primary config file name, looked up at the repo root.
const FileName = ".bosun.yaml"

// fileNames lists accepted config file names in resolution order.
var fileNames = []string{FileName, ".bosun.yml"}

// Config holds the runner configuration.
// Commands run in listed order; the first failure aborts the run.
type Config struct {
	// Commands is the ordered list of check commands. Each entry is
	// whitespace-tokenized into a program name plus arguments.
	Commands []string `yaml:"commands"`

	// Verbose streams command output live instead of buffering it.
	Verbose bool `yaml:"verbose"`

	// Timeout bounds each command's execution time. Zero means no limit,
	// matching git's own behavior of waiting on hooks indefinitely.
	Timeout Duration `yaml:"timeout,omitempty"`
}

// Duration wraps time.Duration so YAML values like "90s" or "2m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Default returns the configuration used when no config file exists:
// no commands (the run vacuously passes), quiet output, no timeout.
func Default() *Config {
	return &Config{}
}

// Find returns the path of the config file under root, or "" if none exists.
func Find(root string) string {
	for _, name := range fileNames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the configuration from the repository root, falling back to
// defaults when no config file is present. The BOSUN_VERBOSE environment
// variable overrides the file's verbose setting.
func Load(root string) (*Config, error) {
	cfg := Default()

	if path := Find(root); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, output.NewSystemErrorWithCause("reading "+path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, output.NewUserError(fmt.Sprintf("parsing %s: %v", path, err))
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv overlays environment variables onto the file config.
// Environment wins over the file; flags win over both (handled by the CLI).
func applyEnv(cfg *Config) {
	if raw := os.Getenv("BOSUN_VERBOSE"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			cfg.Verbose = v
		}
	}
}

// Starter is the config file written by "bosun init".
const Starter = `# bosun configuration
# Commands run in order before every commit; the first failure aborts it.
commands:
  - go vet ./...
  - go test ./...

# Stream command output live instead of showing it only on failure.
verbose: false

# Optional per-command time limit, e.g. "90s" or "2m". Omit for no limit.
# timeout: 2m
`

// WriteStarter writes the starter config to root. Fails if a config file
// already exists so it never clobbers user settings.
func WriteStarter(root string) (string, error) {
	if existing := Find(root); existing != "" {
		return "", output.NewConflictError(existing + " already exists")
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, []byte(Starter), 0o644); err != nil {
		return "", output.NewSystemErrorWithCause("writing "+path, err)
	}
	return path, nil
}
