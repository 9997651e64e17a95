// Package compress shortens an operation log without changing where it ends.
//
// Every position of a recorded run is a pair of stacks. From each position the
// compressor tries short replacement sequences and looks ahead for the
// farthest later position they reach; the log between is then replaced by the
// shorter sequence.
package compress

import (
	"errors"
	"fmt"

	"stacksort/internal/ops"
	"stacksort/internal/state"

	"go.uber.org/zap"
)

// ErrDiverged is returned when a compressed log does not end in the same
// stacks as the log it replaces.
var ErrDiverged = errors.New("compressed log diverges from original")

// Options bound the search.
type Options struct {
	// MaxDepth + 1 is the longest replacement tried.
	MaxDepth int
	// MaxLen is how far ahead of a position matches are looked for.
	MaxLen int
	// Passes is the number of times Compress walks the log.
	Passes int

	Logger *zap.Logger
}

// DefaultOptions returns the search bounds used when nothing is configured.
func DefaultOptions() Options {
	return Options{MaxDepth: 1, MaxLen: 500, Passes: 1}
}

// Validate checks that the bounds can be searched.
func (o Options) Validate() error {
	if o.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0, got %d", o.MaxDepth)
	}
	if o.MaxLen < 1 {
		return fmt.Errorf("max len must be >= 1, got %d", o.MaxLen)
	}
	if o.Passes < 1 {
		return fmt.Errorf("passes must be >= 1, got %d", o.Passes)
	}
	return nil
}

// Result is the best replacement found at one position. Ops replaces the
// Consumed operations starting at Index, saving Skip of them. Skip is 0 when
// nothing shorter was found.
type Result struct {
	Index    int
	Consumed int
	Skip     int
	Ops      []ops.Op
}

// Compressor searches one recorded run. It does not modify the run.
type Compressor struct {
	st     *state.SortState
	opts   Options
	logger *zap.Logger

	// positions by state hash, ascending
	index map[uint64][]int
}

// New indexes every position of st.
func New(st *state.SortState, opts Options) *Compressor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Compressor{
		st:     st,
		opts:   opts,
		logger: logger,
		index:  make(map[uint64][]int, st.Steps()+1),
	}
	for i := 0; i <= st.Steps(); i++ {
		h := st.StateAt(i).Hash()
		c.index[h] = append(c.index[h], i)
	}
	return c
}

// At returns the best replacement for the operations starting at index.
// It panics if index is not a position of the run.
func (c *Compressor) At(index int) Result {
	pair := state.PairOf(c.st.StateAt(index))
	hi := c.st.Steps()
	if c.opts.MaxLen < hi-index {
		hi = index + c.opts.MaxLen
	}
	best := Result{Index: index}

	path := make([]ops.Op, 0, c.opts.MaxDepth+1)
	var search func(prev ops.Op, hasPrev bool)
	search = func(prev ops.Op, hasPrev bool) {
		if match := c.farthest(pair, index+1, hi); match > 0 {
			consumed := match - index
			if skip := consumed - len(path); skip > best.Skip {
				best.Consumed = consumed
				best.Skip = skip
				best.Ops = append([]ops.Op{}, path...)
			}
		}
		if len(path) > c.opts.MaxDepth {
			return
		}
		for _, op := range ops.All {
			if !pair.Changes(op) || (hasPrev && op == prev.Inverse()) {
				continue
			}
			pair.Step(op)
			path = append(path, op)
			search(op, true)
			path = path[:len(path)-1]
			pair.Step(op.Inverse())
		}
	}
	search(0, false)
	return best
}

// farthest returns the last position in [lo, hi] holding the stacks of pair,
// or -1.
func (c *Compressor) farthest(pair *state.Pair, lo, hi int) int {
	positions := c.index[pair.Hash()]
	for j := len(positions) - 1; j >= 0; j-- {
		p := positions[j]
		if p > hi {
			continue
		}
		if p < lo {
			break
		}
		if pair.Matches(c.st.StateAt(p)) {
			return p
		}
	}
	return -1
}

// Compress returns a new run reaching the same stacks as st with a log no
// longer than st's. st itself is left untouched.
func Compress(st *state.SortState, opts Options) (*state.SortState, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	cur := st
	for pass := 1; pass <= opts.Passes; pass++ {
		c := New(cur, opts)
		log := make([]ops.Op, 0, cur.Steps())
		saved, replaced, first := 0, 0, -1
		for i := 0; i < cur.Steps(); {
			if r := c.At(i); r.Skip > 0 {
				if first < 0 {
					first = i
				}
				log = append(log, r.Ops...)
				i += r.Consumed
				saved += r.Skip
				replaced++
				continue
			}
			log = append(log, cur.Log()[i])
			i++
		}
		if saved == 0 {
			logger.Debug("pass saved nothing", zap.Int("pass", pass))
			break
		}

		// log and cur agree up to the first replacement.
		next := cur.Restore(first)
		next.ApplyAll(log[first:]...)
		if !next.Current().Equal(cur.Current()) {
			return nil, fmt.Errorf("pass %d: %w", pass, ErrDiverged)
		}
		logger.Debug("pass complete",
			zap.Int("pass", pass),
			zap.Int("replaced", replaced),
			zap.Int("saved", saved),
			zap.Int("length", next.Steps()))
		cur = next
	}
	if cur == st {
		cur = state.Replay(st.Initial(), st.Log())
	}
	return cur, nil
}
