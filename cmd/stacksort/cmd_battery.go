package main

import (
	"context"
	"fmt"

	"stacksort/internal/logging"
	"stacksort/internal/ops"
	"stacksort/internal/regression"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// batteryCmd runs a regression battery
var batteryCmd = &cobra.Command{
	Use:   "battery FILE",
	Short: "Run a YAML battery of sorting cases with operation budgets",
	Long: `Runs every case of a battery file and prints PASS or FAIL per case.

Example battery:
  version: 1
  cases:
    - id: hundred
      generate: {size: 100, seed: 2043930778}
      max_ops: 720
    - id: swap
      type: check
      values: [2, 1]
      ops: [sa]
      expect: OK`,
	Args: cobra.ExactArgs(1),
	RunE: runBattery,
}

func runBattery(cmd *cobra.Command, args []string) error {
	b, err := regression.LoadBattery(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := regression.RunBattery(ctx, b, func(ranks []int) ([]ops.Op, error) {
		out, err := solve(ranks)
		if err != nil {
			return nil, err
		}
		return out.Final.Log(), nil
	})
	if err != nil {
		return err
	}

	failed := 0
	w := cmd.OutOrStdout()
	for _, r := range results {
		if r.Success {
			fmt.Fprintf(w, "PASS %s ops=%d (%dms)\n", r.CaseID, r.Ops, r.DurationMs)
			continue
		}
		failed++
		fmt.Fprintf(w, "FAIL %s: %s\n", r.CaseID, r.Error)
	}
	logging.Get(logging.CategoryCheck).Info("battery finished",
		zap.String("path", args[0]),
		zap.Int("cases", len(results)),
		zap.Int("failed", failed))

	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(results))
	}
	return nil
}
