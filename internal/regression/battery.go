// Package regression runs YAML-defined batteries of sorting cases. A case
// either sorts an input and checks the result against an operation budget,
// or applies a fixed operation list and checks the OK/KO verdict.
package regression

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"stacksort/internal/ops"
	"stacksort/internal/rank"
	"stacksort/internal/state"

	"gopkg.in/yaml.v3"
)

// Battery is a collection of regression cases.
type Battery struct {
	Version  int    `yaml:"version"`
	FailFast bool   `yaml:"fail_fast,omitempty"`
	Cases    []Case `yaml:"cases"`
}

// Case is a single regression case.
// Supported types: "sort" (default) and "check".
type Case struct {
	ID       string        `yaml:"id"`
	Type     string        `yaml:"type,omitempty"`
	Values   []int         `yaml:"values,omitempty"`
	Generate *GenerateSpec `yaml:"generate,omitempty"`

	// sort: fail when the log is longer than MaxOps (0 = no budget)
	MaxOps int `yaml:"max_ops,omitempty"`

	// check: operations to apply and the expected verdict, OK or KO
	Ops    []string `yaml:"ops,omitempty"`
	Expect string   `yaml:"expect,omitempty"`
}

// GenerateSpec describes a generated input.
type GenerateSpec struct {
	Size int    `yaml:"size"`
	Seed uint32 `yaml:"seed"`
}

// Result captures execution outcome for a case.
type Result struct {
	CaseID     string
	Success    bool
	Ops        int
	Error      string
	DurationMs int64
}

// Solver returns the operations sorting ranks.
type Solver func(ranks []int) ([]ops.Op, error)

// LoadBattery reads a YAML battery file from disk.
func LoadBattery(path string) (*Battery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var b Battery
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse battery YAML: %w", err)
	}
	return &b, nil
}

// RunBattery executes all cases in order. With FailFast set it stops after
// the first failing case.
func RunBattery(ctx context.Context, b *Battery, solve Solver) ([]Result, error) {
	if b == nil || len(b.Cases) == 0 {
		return nil, nil
	}

	results := make([]Result, 0, len(b.Cases))

	for _, c := range b.Cases {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		start := time.Now()
		res := Result{CaseID: c.ID}

		n, err := runCase(c, solve)
		res.Ops = n
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Success = true
		}

		res.DurationMs = time.Since(start).Milliseconds()
		results = append(results, res)

		if b.FailFast && !res.Success {
			break
		}
	}

	return results, nil
}

func runCase(c Case, solve Solver) (int, error) {
	ranks, err := c.input()
	if err != nil {
		return 0, err
	}

	t := strings.ToLower(strings.TrimSpace(c.Type))
	if t == "" {
		t = "sort"
	}
	switch t {
	case "sort":
		log, err := solve(ranks)
		if err != nil {
			return 0, err
		}
		if !state.Replay(state.Snapshot{A: ranks, B: []int{}}, log).Sorted() {
			return len(log), fmt.Errorf("%d operations do not sort the input", len(log))
		}
		if c.MaxOps > 0 && len(log) > c.MaxOps {
			return len(log), fmt.Errorf("%d operations exceed budget %d", len(log), c.MaxOps)
		}
		return len(log), nil
	case "check":
		log := make([]ops.Op, len(c.Ops))
		for i, name := range c.Ops {
			if log[i], err = ops.Parse(name); err != nil {
				return 0, fmt.Errorf("op %d: %w", i, err)
			}
		}
		got := "KO"
		if state.Replay(state.Snapshot{A: ranks, B: []int{}}, log).Sorted() {
			got = "OK"
		}
		if want := strings.ToUpper(c.Expect); got != want {
			return len(log), fmt.Errorf("got %s, want %q", got, c.Expect)
		}
		return len(log), nil
	default:
		return 0, fmt.Errorf("unsupported case type: %s", c.Type)
	}
}

// input returns the ranked values of the case.
func (c Case) input() ([]int, error) {
	switch {
	case c.Generate != nil && c.Values != nil:
		return nil, fmt.Errorf("case has both values and generate")
	case c.Generate != nil:
		return rank.Generate(c.Generate.Size, c.Generate.Seed)
	default:
		return rank.Normalize(c.Values)
	}
}
