package mcp

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bosunhq/bosun/internal/config"
	"github.com/bosunhq/bosun/internal/git"
	"github.com/bosunhq/bosun/internal/output"
	"github.com/bosunhq/bosun/internal/runner"
	"github.com/bosunhq/bosun/internal/setup"
)

// --- run_checks tool ---

// RunChecksInput is the input for the run_checks tool.
type RunChecksInput struct {
	// Commands overrides the configured command list when non-empty.
	Commands []string `json:"commands,omitempty" jsonschema:"commands to run instead of the configured list"`
}

// CheckOutcome is one command's result.
type CheckOutcome struct {
	Command string `json:"command"          jsonschema:"the command string that ran"`
	Passed  bool   `json:"passed"           jsonschema:"whether the command exited zero"`
	Output  string `json:"output,omitempty" jsonschema:"combined stdout+stderr of a failing command"`
}

// RunChecksOutput is the output for the run_checks tool.
type RunChecksOutput struct {
	Passed  bool           `json:"passed"            jsonschema:"whether every check passed"`
	Results []CheckOutcome `json:"results"           jsonschema:"per-command outcomes in execution order"`
	Failure string         `json:"failure,omitempty" jsonschema:"description of the first failure"`
}

func handleRunChecks(ctx context.Context, _ *mcp.CallToolRequest, input RunChecksInput) (*mcp.CallToolResult, RunChecksOutput, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return nil, RunChecksOutput{}, fmt.Errorf("locating repository: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, RunChecksOutput{}, fmt.Errorf("loading config: %w", err)
	}

	commands := cfg.Commands
	if len(input.Commands) > 0 {
		commands = input.Commands
	}

	// JSON-mode printer on a discarded writer keeps the run silent; results
	// travel in the structured output instead.
	printer := output.NewPrinter(io.Discard, true, false)
	run := runner.New(printer, runner.Options{Timeout: time.Duration(cfg.Timeout)})

	result, runErr := run.RunAll(ctx, commands)

	out := RunChecksOutput{Passed: result.Passed}
	for _, res := range result.Results {
		out.Results = append(out.Results, CheckOutcome{
			Command: res.Command,
			Passed:  res.Passed,
			Output:  res.Output,
		})
	}
	if runErr != nil {
		out.Failure = runErr.Error()
	}

	// A failing check is a result, not a protocol error
	return nil, out, nil
}

// --- status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	Repo       string   `json:"repo"                  jsonschema:"repository root path"`
	HookPath   string   `json:"hook_path"             jsonschema:"location of the pre-commit hook file"`
	HookExists bool     `json:"hook_exists"           jsonschema:"whether a pre-commit hook file exists"`
	Installed  bool     `json:"installed"             jsonschema:"whether the bosun payload is in the hook"`
	ConfigPath string   `json:"config_path,omitempty" jsonschema:"resolved config file path, empty if none"`
	Commands   []string `json:"commands"              jsonschema:"configured check commands in order"`
	Verbose    bool     `json:"verbose"               jsonschema:"whether output streaming is enabled"`
}

func handleStatus(_ context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
	root, err := git.RepoRoot()
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("locating repository: %w", err)
	}

	hooksDir, err := git.HooksDir()
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("locating hooks directory: %w", err)
	}
	hookPath := filepath.Join(hooksDir, setup.HookName)
	status := setup.CheckStatus(hookPath)

	cfg, err := config.Load(root)
	if err != nil {
		return nil, StatusOutput{}, fmt.Errorf("loading config: %w", err)
	}

	out := StatusOutput{
		Repo:       root,
		HookPath:   hookPath,
		HookExists: status.Exists,
		Installed:  status.Installed,
		ConfigPath: config.Find(root),
		Commands:   cfg.Commands,
		Verbose:    cfg.Verbose,
	}

	return nil, out, nil
}
