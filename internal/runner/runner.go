// Package runner executes the configured check commands in order, stopping
// at the first failure so a broken check aborts the commit.
package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	"github.com/bosunhq/bosun/internal/output"
)

// BypassHint is shown after a failing check. The bypass itself is git's:
// bosun only advertises it.
const BypassHint = "Bypass once with 'git commit --no-verify'"

// Options control how checks run.
type Options struct {
	// Verbose streams command output live. When false, output is buffered
	// and shown only if the command fails.
	Verbose bool

	// Timeout bounds each command's execution. Zero means wait forever,
	// which matches how git itself waits on hooks.
	Timeout time.Duration
}

// CommandResult is the outcome of one check command.
type CommandResult struct {
	Command string `json:"command"`
	Passed  bool   `json:"passed"`
	// Output holds the captured combined stdout+stderr of a failing
	// command when it was not already streamed.
	Output string `json:"output,omitempty"`
}

// Result is the outcome of a full run.
type Result struct {
	Results []CommandResult `json:"results"`
	Passed  bool            `json:"passed"`
}

// Runner runs check commands sequentially with fail-fast semantics.
type Runner struct {
	printer *output.Printer
	opts    Options
}

// New creates a Runner that reports through printer.
func New(printer *output.Printer, opts Options) *Runner {
	return &Runner{printer: printer, opts: opts}
}

// RunAll executes commands in listed order. Each command string is
// whitespace-tokenized into a program and arguments and run synchronously
// with stderr merged into stdout. The first nonzero exit stops the run;
// remaining commands never start. An empty list passes vacuously.
//
// The returned error is non-nil exactly when the run must abort the commit:
// a *output.ExitError with code 1 for a failing check, or a user error for
// a malformed command string. The Result always describes what ran.
func (r *Runner) RunAll(ctx context.Context, commands []string) (*Result, error) {
	result := &Result{Passed: true}

	if len(commands) == 0 {
		r.notice("No checks configured, nothing to run")
		return result, nil
	}

	r.notice("Running %d check(s)", len(commands))

	for _, command := range commands {
		cmdResult, err := r.runOne(ctx, command)
		result.Results = append(result.Results, cmdResult)
		if err != nil {
			result.Passed = false
			return result, err
		}
	}

	if !r.printer.IsJSON() {
		_ = r.printer.Success(map[string]any{"message": "All checks passed"})
	}
	return result, nil
}

// runOne executes a single command string and reports its outcome.
func (r *Runner) runOne(ctx context.Context, command string) (CommandResult, error) {
	cmdResult := CommandResult{Command: command}

	argv := strings.Fields(command)
	if len(argv) == 0 {
		return cmdResult, output.NewUserError("empty command in configuration")
	}

	runCtx := ctx
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)

	// stderr merges into stdout so failure output reads in one stream
	var buf bytes.Buffer
	if r.opts.Verbose && !r.printer.IsJSON() {
		cmd.Stdout = r.printer.Writer()
		cmd.Stderr = r.printer.Writer()
	} else {
		cmd.Stdout = &buf
		cmd.Stderr = &buf
	}

	err := cmd.Run()
	if err == nil {
		cmdResult.Passed = true
		if !r.printer.IsJSON() {
			r.printer.Pass("%s", command)
		}
		return cmdResult, nil
	}

	cmdResult.Output = buf.String()

	if !r.printer.IsJSON() {
		// Buffered output was suppressed; the operator needs it now
		if !r.opts.Verbose && cmdResult.Output != "" {
			r.printer.Print("%s", cmdResult.Output)
		}
		r.printer.Fail("%s", command)
		r.printer.Println(BypassHint)
	}

	return cmdResult, checkError(runCtx, command, r.opts.Timeout, err)
}

// checkError builds the abort error for a failed command.
func checkError(ctx context.Context, command string, timeout time.Duration, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return output.NewCheckError("check timed out after " + timeout.String() + ": " + command)
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return output.NewCheckError("check command not found: " + execErr.Name)
	}

	return output.NewCheckError("check failed: " + command)
}

// notice writes a progress line in human mode.
func (r *Runner) notice(format string, args ...any) {
	if r.printer.IsJSON() {
		return
	}
	r.printer.Print(format+"\n", args...)
}
