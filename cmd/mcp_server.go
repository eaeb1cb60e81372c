package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/screenpilot/internal/output"
	"github.com/mj1618/screenpilot/internal/version"
)

// mcpServer wraps the MCP server around one automation pipeline.
type mcpServer struct {
	pipeline *pipeline
	mcp      *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

// newMCPServer creates and configures an MCP server with all screenpilot tools.
func newMCPServer(ctx context.Context, _ MCPConfig) (*mcpServer, error) {
	p, err := buildPipeline(ctx)
	if err != nil {
		return nil, err
	}

	s := &mcpServer{pipeline: p}
	s.mcp = mcpserver.NewMCPServer(
		"screenpilot",
		version.Version,
	)

	s.registerTools()
	return s, nil
}

// serve starts the MCP server with the configured transport.
func (s *mcpServer) serve(cfg MCPConfig) error {
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("status",
			mcp.WithDescription("Report whether the automation loop is running"),
		),
		s.handleStatus,
	)

	s.mcp.AddTool(
		mcp.NewTool("start",
			mcp.WithDescription("Start the automation loop: capture the screen every cycle, analyze it with the vision model, perform the recommended action"),
		),
		s.handleStart,
	)

	s.mcp.AddTool(
		mcp.NewTool("stop",
			mcp.WithDescription("Stop the automation loop"),
		),
		s.handleStop,
	)

	s.mcp.AddTool(
		mcp.NewTool("analyze",
			mcp.WithDescription("Capture the screen once and return the vision model's analysis: description, interactive elements, and the recommended action"),
			mcp.WithBoolean("act", mcp.Description("Also move the cursor and perform the recommended action")),
		),
		s.handleAnalyze,
	)
}

// statusResult is the MCP payload for status, start and stop.
type statusResult struct {
	State string `yaml:"state" json:"state"`
}

func toText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("marshal: %v", err)
	}
	return string(b)
}

func (s *mcpServer) handleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(toText(statusResult{State: s.pipeline.loop.State().String()})), nil
}

func (s *mcpServer) handleStart(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.pipeline.loop.Start()
	return mcp.NewToolResultText(toText(statusResult{State: s.pipeline.loop.State().String()})), nil
}

func (s *mcpServer) handleStop(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.pipeline.loop.Stop()
	return mcp.NewToolResultText(toText(statusResult{State: s.pipeline.loop.State().String()})), nil
}

func (s *mcpServer) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	act, _ := params["act"].(bool)

	analysis, err := s.pipeline.analyzer.RunCycle(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := output.AnalyzeResult{
		TS:          time.Now().Unix(),
		Description: analysis.Description,
		Elements:    analysis.Elements,
		Recommended: analysis.Recommended,
	}

	if act && analysis.Recommended != nil {
		if err := s.pipeline.dispatcher.Dispatch(*analysis.Recommended); err != nil {
			logger.Warn("dispatch failed", zap.Error(err))
		} else {
			result.Dispatched = true
		}
	}

	return mcp.NewToolResultText(toText(result)), nil
}
