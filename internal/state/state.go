package state

import (
	"fmt"

	"stacksort/internal/ops"
)

// SortState owns both stacks together with the log of applied operations.
// Snapshot i is the pair exactly as it was before log[i] was applied, so the
// run can be restored at any position.
type SortState struct {
	pair  *Pair
	log   []ops.Op
	saves []Snapshot
}

// New creates a state with ranks on stack A (front first) and B empty.
// ranks must be a permutation of 0..len(ranks)-1; see rank.Normalize.
func New(ranks []int) *SortState {
	p := NewPair(len(ranks))
	p.a.Load(ranks)
	return &SortState{pair: p}
}

// FromSnapshot creates a state whose stacks start as s.
func FromSnapshot(s Snapshot) *SortState {
	return &SortState{pair: PairOf(s)}
}

// Replay applies log to a fresh state built from initial.
func Replay(initial Snapshot, log []ops.Op) *SortState {
	st := FromSnapshot(initial)
	st.ApplyAll(log...)
	return st
}

// Apply records the current snapshot and op, then applies op.
// This is the only way the stacks of a SortState change.
func (st *SortState) Apply(op ops.Op) {
	st.saves = append(st.saves, st.pair.Snapshot())
	st.log = append(st.log, op)
	st.pair.Step(op)
}

// ApplyAll applies every op in order.
func (st *SortState) ApplyAll(log ...ops.Op) {
	for _, op := range log {
		st.Apply(op)
	}
}

// Size returns the number of elements across both stacks.
func (st *SortState) Size() int { return st.pair.Size() }

// Len returns the number of elements on stack s.
func (st *SortState) Len(s Stack) int { return st.pair.Len(s) }

// At returns element i of stack s.
func (st *SortState) At(s Stack, i int) int { return st.pair.At(s, i) }

// Prefix returns a copy of the first n elements of stack s.
func (st *SortState) Prefix(s Stack, n int) []int { return st.pair.Prefix(s, n) }

// Values returns a copy of stack s, front to back.
func (st *SortState) Values(s Stack) []int { return st.pair.Values(s) }

// Sorted reports whether A is strictly ascending and B is empty.
func (st *SortState) Sorted() bool { return st.pair.Sorted() }

// Current returns a snapshot of the stacks as they are now.
func (st *SortState) Current() Snapshot { return st.pair.Snapshot() }

// Log returns the applied operations. The slice must not be modified.
func (st *SortState) Log() []ops.Op { return st.log }

// Steps returns the number of applied operations.
func (st *SortState) Steps() int { return len(st.log) }

// Snapshots returns the pre-operation snapshots, parallel to Log.
// The slice must not be modified.
func (st *SortState) Snapshots() []Snapshot { return st.saves }

// StateAt returns the stacks at log position i: the snapshot taken before
// log[i] for i < Steps(), the current stacks for i == Steps().
func (st *SortState) StateAt(i int) Snapshot {
	switch {
	case i >= 0 && i < len(st.saves):
		return st.saves[i]
	case i == len(st.saves):
		return st.Current()
	}
	panic(fmt.Errorf("state: position %d out of range [0, %d]", i, len(st.saves)))
}

// Initial returns the stacks before the first operation.
func (st *SortState) Initial() Snapshot { return st.StateAt(0) }

// Restore returns a new state positioned at log position i, carrying the
// first i operations and snapshots of st.
func (st *SortState) Restore(i int) *SortState {
	s := st.StateAt(i)
	return &SortState{
		pair:  PairOf(s),
		log:   append([]ops.Op(nil), st.log[:i]...),
		saves: append([]Snapshot(nil), st.saves[:i]...),
	}
}

// Pair returns a detached copy of the current stacks for speculative work.
func (st *SortState) Pair() *Pair { return st.pair.Clone() }
