package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/screenpilot/internal/surface"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the automation loop with hotkeys and a tray icon",
	Long: `Run the screen automation loop. The loop is controlled with global
hotkeys and a system tray menu; it captures the screen every cycle, asks the
vision model what to interact with, and moves the cursor there.

Examples:
  screenpilot run
  screenpilot run --autostart
  screenpilot run --config ./screenpilot.yaml`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("autostart", false, "Start the loop immediately instead of waiting for the hotkey")
}

func runRun(cmd *cobra.Command, args []string) error {
	autostart, _ := cmd.Flags().GetBool("autostart")

	p, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}

	logger.Info("screenpilot starting",
		zap.String("provider", cfg.Service.Provider),
		zap.String("endpoint", cfg.Service.BaseURL),
		zap.String("model", cfg.Service.Model),
		zap.Duration("interval", cfg.Loop.Interval),
		zap.String("start_hotkey", cfg.Hotkeys.Start),
		zap.String("stop_hotkey", cfg.Hotkeys.Stop))

	s := surface.New(p.loop, cfg.Hotkeys, autostart, logger)
	defer p.loop.Stop()
	return s.Run()
}
