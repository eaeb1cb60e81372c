package main

import (
	"github.com/mj1618/screenpilot/cmd"

	// Register the platform backend for the current OS.
	_ "github.com/mj1618/screenpilot/internal/platform/darwin"
)

func main() {
	cmd.Execute()
}
