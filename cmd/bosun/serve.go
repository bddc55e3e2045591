package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	bosunmcp "github.com/bosunhq/bosun/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run bosun as a Model Context Protocol (MCP) server over stdio.

This exposes bosun operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).
Agents can run the configured checks before committing instead of
finding out from a rejected commit.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "bosun": {
        "command": "bosun",
        "args": ["serve"]
      }
    }
  }

Available tools: run_checks, status`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			server := bosunmcp.NewServer(buildVersion())
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
