package quicksort

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"stacksort/internal/ops"
	"stacksort/internal/rank"
	"stacksort/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for pos := 0; pos <= len(p); pos++ {
			q := make([]int, 0, n)
			q = append(q, p[:pos]...)
			q = append(q, n-1)
			q = append(q, p[pos:]...)
			out = append(out, q)
		}
	}
	return out
}

func sortRanks(t *testing.T, s *Sorter, ranks []int) *state.SortState {
	t.Helper()
	st := state.New(ranks)
	s.Sort(st)
	return st
}

func TestSortEveryPermutation(t *testing.T) {
	s := New(nil)
	for n := 0; n <= 7; n++ {
		for _, p := range permutations(n) {
			st := sortRanks(t, s, p)
			require.True(t, st.Sorted(), "n=%d %v: %s", n, p, ops.Format(st.Log(), " "))
		}
	}
}

func TestSortLargeInputs(t *testing.T) {
	s := New(zaptest.NewLogger(t))
	for _, n := range []int{100, 500} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			ranks, err := rank.Generate(n, 2043930778)
			require.NoError(t, err)
			st := sortRanks(t, s, ranks)
			assert.True(t, st.Sorted())
			assert.Equal(t, n, st.Len(state.A))
			assert.Zero(t, st.Len(state.B))
		})
	}
}

func TestSortKnownLogs(t *testing.T) {
	tests := []struct {
		in   []int
		want string
	}{
		{[]int{0, 1, 2, 3}, "pb pb pb ra rra pa pa pa"},
		{[]int{2, 0, 1, 3}, "pb pb pb ra rra pa sb pa sa pa"},
		{[]int{1, 0}, "sa"},
		{[]int{0}, ""},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			st := sortRanks(t, New(nil), tt.in)
			assert.Equal(t, tt.want, ops.Format(st.Log(), " "))
		})
	}
}

func TestPartitionInvariant(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	ranks := rng.Perm(64)

	st := state.New(ranks)
	s := New(nil)
	var parts []Partition
	s.OnPartition = func(p Partition) {
		parts = append(parts, p)

		// The pushed values sit at the front of the other stack and all lie
		// on the correct side of the pivot.
		other := state.B
		if p.Stack == state.B {
			other = state.A
		}
		for _, v := range st.Prefix(other, p.Pushed) {
			if p.Stack == state.A {
				assert.LessOrEqual(t, v, p.Pivot)
			} else {
				assert.GreaterOrEqual(t, v, p.Pivot)
			}
		}
		for _, v := range st.Prefix(p.Stack, p.N-p.Pushed) {
			if p.Stack == state.A {
				assert.Greater(t, v, p.Pivot)
			} else {
				assert.Less(t, v, p.Pivot)
			}
		}
		assert.Equal(t, p.N, p.Pushed+p.Rotated)
	}
	s.Sort(st)

	require.True(t, st.Sorted())
	require.NotEmpty(t, parts)
	assert.Equal(t, state.A, parts[0].Stack)
	assert.Equal(t, 64, parts[0].N)
	assert.Equal(t, 32, parts[0].Pivot)
	assert.Equal(t, 33, parts[0].Pushed)
}

func TestSortKeepsSnapshots(t *testing.T) {
	ranks, err := rank.Generate(40, 7)
	require.NoError(t, err)
	st := sortRanks(t, New(nil), ranks)

	replay := state.New(ranks)
	for i, op := range st.Log() {
		require.Equal(t, st.StateAt(i), replay.Current(), "step %d", i)
		replay.Apply(op)
	}
	assert.Equal(t, st.Current(), replay.Current())
}

func TestSortPrefixLeavesRestAlone(t *testing.T) {
	// Sorting the top three of A must not move 7 and 8 below them.
	st := state.New([]int{2, 0, 1, 8, 7})
	New(nil).SortPrefix(st, state.A, 3)
	assert.Equal(t, []int{0, 1, 2, 8, 7}, st.Values(state.A))
	assert.Empty(t, st.Values(state.B))
}

func TestSortPanics(t *testing.T) {
	st := state.New([]int{1, 0})
	assert.Panics(t, func() { New(nil).SortPrefix(st, state.A, 3) })
	assert.Panics(t, func() { New(nil).SortPrefix(st, state.B, 1) })

	st.Apply(ops.PB)
	assert.Panics(t, func() { New(nil).Sort(st) })
}
