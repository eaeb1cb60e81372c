package cmd

import (
	"strings"
	"testing"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"run", "analyze", "serve"}
	commands := rootCmd.Commands()

	found := make(map[string]bool)
	for _, c := range commands {
		found[c.Name()] = true
	}

	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestToText(t *testing.T) {
	text := toText(statusResult{State: "running"})
	if !strings.Contains(text, "state: running") {
		t.Errorf("unexpected status text:\n%s", text)
	}
}

func TestServe_UnsupportedTransport(t *testing.T) {
	s := &mcpServer{}
	if err := s.serve(MCPConfig{Transport: "websocket"}); err == nil {
		t.Error("unsupported transport should error")
	}
}
