package main

import (
	"stacksort/cmd/stacksort/ui"
	"stacksort/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var replayBase bool

// replayCmd opens the interactive replay
var replayCmd = &cobra.Command{
	Use:   "replay VALUES...",
	Short: "Step through the sorting operations interactively",
	Long: `Sorts the values and opens a full-screen view of both stacks that steps
through the operation log.

Keys: left/right step, pgup/pgdown jump 10, home/end, q quits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	ranks, err := parseValues(args)
	if err != nil {
		return err
	}
	out, err := solve(ranks)
	if err != nil {
		return err
	}
	run := out.Final
	if replayBase {
		run = out.Base
	}
	logging.Get(logging.CategoryReplay).Debug("starting replay", zap.Int("operations", run.Steps()))

	p := tea.NewProgram(
		ui.NewReplayModel(run, ui.DefaultStyles()),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
