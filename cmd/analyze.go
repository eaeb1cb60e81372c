package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mj1618/screenpilot/internal/output"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Capture the screen once and print the model's analysis",
	Long: `Run a single capture-and-analyze cycle and print the result,
without starting the automation loop.

Examples:
  screenpilot analyze
  screenpilot analyze --format json --pretty
  screenpilot analyze --act`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("act", false, "Also move the cursor and perform the recommended action")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	act, _ := cmd.Flags().GetBool("act")

	p, err := buildPipeline(cmd.Context())
	if err != nil {
		return err
	}

	analysis, cycleErr := p.analyzer.RunCycle(cmd.Context())
	if cycleErr != nil {
		return cycleErr
	}

	result := output.AnalyzeResult{
		TS:          time.Now().Unix(),
		Description: analysis.Description,
		Elements:    analysis.Elements,
		Recommended: analysis.Recommended,
	}

	if act && analysis.Recommended != nil {
		if err := p.dispatcher.Dispatch(*analysis.Recommended); err != nil {
			logger.Warn("dispatch failed", zap.Error(err))
		} else {
			result.Dispatched = true
		}
	}

	return output.Print(result)
}
