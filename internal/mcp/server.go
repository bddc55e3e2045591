// Package mcp provides a Model Context Protocol server for bosun.
// It exposes the commit checks as MCP tools so agent environments can run
// the quality gates before they commit, without shelling out to the CLI.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer creates an MCP server with all bosun tools registered.
func NewServer(version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "bosun",
		Version: version,
	}, nil)
	registerTools(server)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// statusAnnotations marks the status tool as read-only.
func statusAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// runAnnotations marks run_checks as executing but non-destructive: the
// checks themselves may build or test, but bosun does not modify the repo.
func runAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all bosun tools to the server.
func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "run_checks",
		Description: "Run the repository's configured pre-commit checks in order, " +
			"stopping at the first failure. Returns per-command results with the " +
			"failing command's output.",
		Annotations: runAnnotations(),
	}, handleRunChecks)

	mcp.AddTool(server, &mcp.Tool{
		Name: "status",
		Description: "Report whether the bosun pre-commit hook is installed and " +
			"which check commands are configured.",
		Annotations: statusAnnotations(),
	}, handleStatus)
}
