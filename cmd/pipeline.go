package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/screenpilot/internal/analyzer"
	"github.com/mj1618/screenpilot/internal/dispatch"
	"github.com/mj1618/screenpilot/internal/llm"
	"github.com/mj1618/screenpilot/internal/loop"
	"github.com/mj1618/screenpilot/internal/platform"
)

// pipeline bundles the fully wired automation components.
type pipeline struct {
	provider   *platform.Provider
	analyzer   *analyzer.Client
	dispatcher *dispatch.Dispatcher
	loop       *loop.Loop
}

// buildPipeline wires capture, inference, dispatch and the loop from the
// loaded config.
func buildPipeline(ctx context.Context) (*pipeline, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}

	service, err := llm.New(ctx, cfg.Service)
	if err != nil {
		return nil, fmt.Errorf("init %s client: %w", cfg.Service.Provider, err)
	}

	an := analyzer.New(provider.Capturer, service, cfg.Capture, logger)
	disp := dispatch.New(provider.Pointer, cfg.Pointer.MoveDuration, logger)
	l := loop.New(an, disp, cfg.Loop, logger)

	return &pipeline{
		provider:   provider,
		analyzer:   an,
		dispatcher: disp,
		loop:       l,
	}, nil
}
