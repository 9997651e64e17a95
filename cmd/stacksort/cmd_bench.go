package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"

	"stacksort/internal/logging"
	"stacksort/internal/rank"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var errSeedRange = errors.New("seed range overflows uint32")

var (
	benchRuns    int
	benchSize    int
	benchWorkers int
)

// benchCmd measures operation counts over many generated inputs
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Sort many generated inputs concurrently and summarize operation counts",
	Long: `Sorts runs inputs of the given size, seeded seed, seed+1, ..., on a
bounded pool of workers and prints min/avg/max operation counts before and
after compression.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

// benchResult is the outcome of one seed.
type benchResult struct {
	Seed  uint32
	Base  int
	Final int
}

// benchSummary aggregates operation counts.
type benchSummary struct {
	Min, Max int
	Avg      float64
}

func summarize(counts []int) benchSummary {
	if len(counts) == 0 {
		return benchSummary{}
	}
	s := benchSummary{Min: math.MaxInt, Max: math.MinInt}
	total := 0
	for _, c := range counts {
		s.Min = min(s.Min, c)
		s.Max = max(s.Max, c)
		total += c
	}
	s.Avg = float64(total) / float64(len(counts))
	return s
}

func runBench(cmd *cobra.Command, args []string) error {
	runs, size, workers := cfg.Bench.Runs, cfg.Bench.Size, cfg.Bench.Workers
	if benchRuns > 0 {
		runs = benchRuns
	}
	if benchSize > 0 {
		size = benchSize
	}
	if benchWorkers > 0 {
		workers = benchWorkers
	}
	first := cfg.Generate.Seed
	if cmd.Flags().Changed("seed") {
		first = seed
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := bench(ctx, runs, size, workers, first)
	if err != nil {
		return err
	}
	printBench(cmd.OutOrStdout(), size, results)
	return nil
}

// bench sorts runs generated inputs with at most workers in flight.
func bench(ctx context.Context, runs, size, workers int, first uint32) ([]benchResult, error) {
	if runs > 0 && uint64(first)+uint64(runs)-1 > math.MaxUint32 {
		return nil, fmt.Errorf("%w: seeds %d+%d exceed %d", errSeedRange, first, runs-1, uint32(math.MaxUint32))
	}
	log := logging.Get(logging.CategoryBench)
	timer := logging.StartTimer(logging.CategoryBench, "bench")
	defer timer.StopWithInfo()

	results := make([]benchResult, runs)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range runs {
		s := first + uint32(i)
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ranks, err := rank.Generate(size, s)
			if err != nil {
				return fmt.Errorf("seed %d: %w", s, err)
			}
			out, err := solve(ranks)
			if err != nil {
				return fmt.Errorf("seed %d: %w", s, err)
			}
			results[i] = benchResult{Seed: s, Base: out.Base.Steps(), Final: out.Final.Steps()}
			log.Debug("run finished",
				zap.Uint32("seed", s),
				zap.Int("base", results[i].Base),
				zap.Int("final", results[i].Final))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func printBench(w io.Writer, size int, results []benchResult) {
	base := make([]int, len(results))
	final := make([]int, len(results))
	for i, r := range results {
		base[i] = r.Base
		final[i] = r.Final
	}
	b, f := summarize(base), summarize(final)
	fmt.Fprintf(w, "runs %d size %d\n", len(results), size)
	fmt.Fprintf(w, "base      min %d avg %.1f max %d\n", b.Min, b.Avg, b.Max)
	fmt.Fprintf(w, "optimized min %d avg %.1f max %d\n", f.Min, f.Avg, f.Max)
}
