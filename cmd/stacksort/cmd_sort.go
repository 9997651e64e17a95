package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"stacksort/cmd/stacksort/ui"
	"stacksort/internal/logging"
	"stacksort/internal/ops"
	"stacksort/internal/rank"
	"stacksort/internal/state"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	showStacks bool
	showStats  bool
	printInput bool
	seed       uint32
)

// sortCmd sorts values given on the command line
var sortCmd = &cobra.Command{
	Use:     "sort VALUES...",
	Aliases: []string{"list"},
	Short:   "Print the operations that sort the given integers",
	Long: `Sorts distinct integers, first value on top of stack a. Values may be
given as separate arguments or as one quoted, space separated argument.

Example:
  stacksort sort 3 1 5
  stacksort sort "42 -7 13 0"`,
	RunE: runSort,
}

// generateCmd sorts a generated permutation
var generateCmd = &cobra.Command{
	Use:     "generate [N]",
	Aliases: []string{"gen"},
	Short:   "Sort a reproducible random permutation of 0..N-1",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runGenerate,
}

// checkCmd verifies an operation list read from stdin
var checkCmd = &cobra.Command{
	Use:   "check VALUES...",
	Short: "Read operations from stdin and report whether they sort the values",
	Long: `Applies the operations read from stdin, one per line, to the values and
prints OK when stack a ends ascending and stack b empty, KO otherwise.

Example:
  stacksort sort 3 1 5 | stacksort check 3 1 5`,
	RunE: runCheck,
}

// parseValues splits, parses and rank-normalizes command line values.
func parseValues(args []string) ([]int, error) {
	var fields []string
	for _, a := range args {
		fields = append(fields, strings.Fields(a)...)
	}
	values, err := rank.ParseInts(fields)
	if err != nil {
		return nil, err
	}
	ranks, err := rank.Normalize(values)
	if err != nil {
		return nil, err
	}
	return ranks, nil
}

func runSort(cmd *cobra.Command, args []string) error {
	ranks, err := parseValues(args)
	if err != nil {
		return err
	}
	return sortAndPrint(cmd, ranks)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	n := cfg.Generate.Size
	if len(args) == 1 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid size %q: %w", args[0], err)
		}
		n = v
	}
	s := cfg.Generate.Seed
	if cmd.Flags().Changed("seed") {
		s = seed
	}

	ranks, err := rank.Generate(n, s)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	logging.Get(logging.CategorySort).Debug("generated input", zap.Int("size", n), zap.Uint32("seed", s))
	if printInput {
		fmt.Fprintln(cmd.ErrOrStderr(), strings.Trim(fmt.Sprint(ranks), "[]"))
	}
	return sortAndPrint(cmd, ranks)
}

func sortAndPrint(cmd *cobra.Command, ranks []int) error {
	out, err := solve(ranks)
	if err != nil {
		return err
	}

	if err := ops.Write(cmd.OutOrStdout(), out.Final.Log()); err != nil {
		return fmt.Errorf("write operations: %w", err)
	}

	stderr := cmd.ErrOrStderr()
	if showStats {
		printStats(stderr, out)
	}
	if showStacks {
		fmt.Fprintln(stderr, ui.RenderStacks(ui.DefaultStyles(), out.Final.Current(), 0))
	}
	return nil
}

func printStats(w io.Writer, out *outcome) {
	fmt.Fprintf(w, "Base sort in %d instructions in %s\n", out.Base.Steps(), out.SortTime)
	if out.Final != out.Base {
		fmt.Fprintf(w, "Optimized in %d instructions in %s\n", out.Final.Steps(), out.CompressTime)
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
	ranks, err := parseValues(args)
	if err != nil {
		return err
	}
	log, err := ops.Read(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read operations: %w", err)
	}

	st := state.New(ranks)
	st.ApplyAll(log...)
	sorted := st.Sorted()
	logging.Get(logging.CategoryCheck).Debug("checked",
		zap.Int("elements", len(ranks)),
		zap.Int("operations", len(log)),
		zap.Bool("sorted", sorted))

	if sorted {
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "KO")
	}
	return nil
}
