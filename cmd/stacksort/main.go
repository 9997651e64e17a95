package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"stacksort/internal/compress"
	"stacksort/internal/config"
	"stacksort/internal/logging"
	"stacksort/internal/quicksort"
	"stacksort/internal/state"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	maxDepth   int
	maxLen     int
	passes     int
	noCompress bool

	cfg   = config.DefaultConfig()
	runID string
)

var errNotSorted = errors.New("operations do not sort the input")

// slowCompress is the compression time above which solve logs a warning.
var slowCompress = 2 * time.Second

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "stacksort",
	Short: "Sort integers with two stacks and a fixed instruction set",
	Long: `stacksort sorts a list of distinct integers using two stacks, a and b,
and the eleven operations pa pb sa sb ss ra rb rr rra rrb rrr.

The list is sorted by recursive partitioning, then the resulting operation
log is shortened by searching for cheaper paths between recorded states.
Operations are printed one per line.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd, loaded)
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		runID = uuid.NewString()
		if _, err := logging.Initialize(cfg.Logging, verbose, zap.String("run_id", runID)); err != nil {
			return err
		}
		logging.Get(logging.CategoryBoot).Debug("config loaded",
			zap.String("path", configPath),
			zap.String("command", cmd.Name()),
			zap.Bool("compress", cfg.Compress.Enabled),
			zap.Int("max_depth", cfg.Compress.MaxDepth),
			zap.Int("max_len", cfg.Compress.MaxLen))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
}

// applyFlagOverrides copies explicitly set global flags over c.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		c.Compress.MaxDepth = maxDepth
	}
	if flags.Changed("max-len") {
		c.Compress.MaxLen = maxLen
	}
	if flags.Changed("passes") {
		c.Compress.Passes = passes
	}
	if noCompress {
		c.Compress.Enabled = false
	}
}

// outcome is a sorted run and, when compression is on, its shortened form.
type outcome struct {
	Base         *state.SortState
	Final        *state.SortState
	SortTime     time.Duration
	CompressTime time.Duration
}

// solve sorts ranks and compresses the log as configured. It is safe for
// concurrent use.
func solve(ranks []int) (*outcome, error) {
	st := state.New(ranks)

	timer := logging.StartTimer(logging.CategorySort, "sort")
	quicksort.New(logging.Get(logging.CategorySort)).Sort(st)
	out := &outcome{Base: st, Final: st, SortTime: timer.Stop()}
	if !st.Sorted() {
		return nil, errNotSorted
	}

	if !cfg.Compress.Enabled {
		return out, nil
	}
	opts := cfg.CompressOptions()
	opts.Logger = logging.Get(logging.CategoryCompress)

	timer = logging.StartTimer(logging.CategoryCompress, "compress")
	final, err := compress.Compress(st, opts)
	if err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	out.CompressTime = timer.StopWithThreshold(slowCompress)
	if !final.Sorted() {
		return nil, fmt.Errorf("compress: %w", errNotSorted)
	}
	out.Final = final

	logging.Get(logging.CategoryCompress).Debug("compressed",
		zap.Int("elements", len(ranks)),
		zap.Int("before", st.Steps()),
		zap.Int("after", final.Steps()))
	return out, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "stacksort.yaml", "Config file (missing file means defaults)")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", 1, "Longest replacement tried is max-depth+1 operations")
	rootCmd.PersistentFlags().IntVar(&maxLen, "max-len", 500, "How far ahead the compressor looks for a match")
	rootCmd.PersistentFlags().IntVar(&passes, "passes", 1, "Compression passes over the log")
	rootCmd.PersistentFlags().BoolVar(&noCompress, "no-compress", false, "Print the partitioner's log unchanged")

	sortCmd.Flags().BoolVar(&showStacks, "stacks", false, "Render the final stacks on stderr")
	sortCmd.Flags().BoolVar(&showStats, "stats", false, "Print operation counts and timings on stderr")
	generateCmd.Flags().BoolVar(&showStacks, "stacks", false, "Render the final stacks on stderr")
	generateCmd.Flags().BoolVar(&showStats, "stats", false, "Print operation counts and timings on stderr")
	generateCmd.Flags().Uint32Var(&seed, "seed", config.DefaultSeed, "Generator seed (non-zero)")
	generateCmd.Flags().BoolVar(&printInput, "print-input", false, "Print the generated values on stderr")

	benchCmd.Flags().IntVar(&benchRuns, "runs", 0, "Number of inputs (default from config)")
	benchCmd.Flags().IntVar(&benchSize, "size", 0, "Elements per input (default from config)")
	benchCmd.Flags().IntVar(&benchWorkers, "workers", 0, "Concurrent runs (default from config)")
	benchCmd.Flags().Uint32Var(&seed, "seed", config.DefaultSeed, "Seed of the first input")

	replayCmd.Flags().BoolVar(&replayBase, "base", false, "Replay the uncompressed log")

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(batteryCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
