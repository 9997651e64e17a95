// Package quicksort sorts a SortState by recursive partitioning.
//
// A prefix of n elements is split around the median of the prefix: on A the
// small half is pushed to B and the large half rotated out of the way and
// back, on B the large half is pushed to A. Both halves are then sorted
// recursively, bottoming out in the smallsort tables. Only elements inside the
// active prefix are ever moved, so nested calls do not disturb each other.
package quicksort

import (
	"fmt"
	"slices"

	"stacksort/internal/ops"
	"stacksort/internal/smallsort"
	"stacksort/internal/state"

	"go.uber.org/zap"
)

// Partition describes one partitioning pass.
type Partition struct {
	Stack   state.Stack
	N       int
	Pivot   int
	Pushed  int
	Rotated int
}

// Sorter emits the operations that sort a SortState.
type Sorter struct {
	logger *zap.Logger

	// OnPartition, when set, is called after every partitioning pass.
	OnPartition func(Partition)
}

// New creates a Sorter. A nil logger disables logging.
func New(logger *zap.Logger) *Sorter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sorter{logger: logger}
}

// Sort sorts every element of st onto A. B must be empty.
func (s *Sorter) Sort(st *state.SortState) {
	if n := st.Len(state.B); n != 0 {
		panic(fmt.Errorf("quicksort: stack B holds %d elements", n))
	}
	start := st.Steps()
	s.SortPrefix(st, state.A, st.Len(state.A))
	s.logger.Debug("sort finished",
		zap.Int("elements", st.Size()),
		zap.Int("operations", st.Steps()-start))
}

// SortPrefix sorts the front n elements of stack from, leaving them
// ascending on top of A. Elements past the prefix are not touched.
// It panics if the stack holds fewer than n elements.
func (s *Sorter) SortPrefix(st *state.SortState, from state.Stack, n int) {
	if n < 0 || st.Len(from) < n {
		panic(fmt.Errorf("quicksort: cannot sort %d elements of stack %s holding %d", n, from, st.Len(from)))
	}

	switch {
	case n == 0:
		return
	case n == 1:
		if from == state.B {
			st.Apply(ops.PA)
		}
		return
	case n <= 3:
		st.ApplyAll(smallsort.Lookup(from, st.Prefix(from, n))...)
		return
	}

	if from == state.A {
		p := s.partition(st, state.A, n)
		s.SortPrefix(st, state.A, n-p.Pushed)
		s.SortPrefix(st, state.B, p.Pushed)
		return
	}
	p := s.partition(st, state.B, n)
	s.SortPrefix(st, state.A, p.Pushed)
	s.SortPrefix(st, state.B, n-p.Pushed)
}

// partition splits the front n elements of from. On A, values <= pivot go to
// B; on B, values >= pivot go to A. Rotated values are rotated back so the
// ones left behind keep their order at the front.
func (s *Sorter) partition(st *state.SortState, from state.Stack, n int) Partition {
	pivot := choosePivot(st.Prefix(from, n))
	p := Partition{Stack: from, N: n, Pivot: pivot}

	push, rotate, unrotate := ops.PB, ops.RA, ops.RRA
	keep := func(v int) bool { return v <= pivot }
	if from == state.B {
		push, rotate, unrotate = ops.PA, ops.RB, ops.RRB
		keep = func(v int) bool { return v >= pivot }
	}

	for range n {
		if keep(st.At(from, 0)) {
			st.Apply(push)
			p.Pushed++
		} else {
			st.Apply(rotate)
			p.Rotated++
		}
	}
	for range p.Rotated {
		st.Apply(unrotate)
	}

	if ce := s.logger.Check(zap.DebugLevel, "partition"); ce != nil {
		ce.Write(
			zap.Stringer("stack", from),
			zap.Int("n", n),
			zap.Int("pivot", pivot),
			zap.Int("pushed", p.Pushed),
			zap.Int("rotated", p.Rotated))
	}
	if s.OnPartition != nil {
		s.OnPartition(p)
	}
	return p
}

// choosePivot returns the element of rank len/2 in prefix.
func choosePivot(prefix []int) int {
	sorted := slices.Clone(prefix)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}
