package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing screenpilot tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes the automation
loop and one-shot analysis as tools, so agents can drive screenpilot without
shell overhead.

Supported transports:
  stdio             Standard I/O (default, for Claude Code / MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Examples:
  screenpilot serve
  screenpilot serve --transport streamable-http --port 8080`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "stdio", "Transport: stdio, streamable-http")
	serveCmd.Flags().Int("port", 8080, "HTTP port for streamable-http transport")
}

func runServe(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	mcpCfg := MCPConfig{
		Transport: transport,
		Port:      port,
	}

	srv, err := newMCPServer(cmd.Context(), mcpCfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	defer srv.pipeline.loop.Stop()
	return srv.serve(mcpCfg)
}
