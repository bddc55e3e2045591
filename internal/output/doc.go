// Package output provides structured output handling for the bosun CLI.
//
// This package handles both human-readable and JSON output formats, so every
// command works the same for humans at a terminal and for tools parsing the
// hook's output.
//
// # Printer
//
// The Printer is the primary interface for command output. It switches format
// based on the --json flag and TTY detection:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonMode, output.IsTTY(cmd.OutOrStdout()))
//
//	printer.Success(map[string]any{"message": "Installed pre-commit hook"})
//	printer.Error(err)
//	printer.Pass("go vet ./...")
//	printer.Fail("go test ./...")
//
// # Exit Codes
//
// The package defines the exit codes the hook contract depends on:
//
//	output.ExitSuccess     // 0: all checks passed, commit proceeds
//	output.ExitCheckFailed // 1: a check failed or bad usage, commit aborts
//	output.ExitSystemError // 2: git missing, I/O failure
//	output.ExitConflict    // 3: hook or config state mismatch
//
// Use the error constructors to create properly-coded errors:
//
//	output.NewCheckError("check failed: go test ./...")
//	output.NewSystemError("git not found")
//	output.NewConflictError(".bosun.yaml already exists")
//
// These errors carry exit codes used for both JSON error output and the
// process exit code that tells git whether to abort the commit.
package output
