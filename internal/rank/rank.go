// Package rank turns raw input values into the dense permutation 0..N-1 the
// sorter works on, and generates reproducible random permutations.
package rank

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
)

var (
	// ErrDuplicate is returned when the input holds the same value twice.
	ErrDuplicate = errors.New("duplicate value")
	// ErrZeroSeed is returned for a generator seed of 0, which xorshift
	// never leaves.
	ErrZeroSeed = errors.New("seed must be non-zero")
)

// Ranks replaces every value by its 0-based rank among all values. Equal
// values are ranked by input order.
func Ranks[T cmp.Ordered](values []T) []int {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		return cmp.Compare(values[i], values[j])
	})
	out := make([]int, len(values))
	for r, i := range idx {
		out[i] = r
	}
	return out
}

// Normalize ranks values and rejects duplicates.
func Normalize[T cmp.Ordered](values []T) ([]int, error) {
	ranks := Ranks(values)
	byRank := make([]int, len(values))
	for i, r := range ranks {
		byRank[r] = i
	}
	for r := 1; r < len(byRank); r++ {
		prev, cur := byRank[r-1], byRank[r]
		if values[prev] == values[cur] {
			return nil, fmt.Errorf("%w %v at positions %d and %d", ErrDuplicate, values[cur], prev, cur)
		}
	}
	return ranks, nil
}

// ParseInts parses base-10 integers.
func ParseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q at position %d: %w", a, i, err)
		}
		out[i] = v
	}
	return out, nil
}

// Xorshift32 is the 13/17/5 xorshift generator.
type Xorshift32 struct {
	state uint32
}

// NewXorshift32 creates a generator. The seed must be non-zero.
func NewXorshift32(seed uint32) (*Xorshift32, error) {
	if seed == 0 {
		return nil, ErrZeroSeed
	}
	return &Xorshift32{state: seed}, nil
}

// Next advances the generator and returns the new state.
func (x *Xorshift32) Next() uint32 {
	s := x.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	x.state = s
	return s
}

// Generate returns a permutation of 0..n-1. Values are drawn as Next() % n,
// skipping values already taken, so a seed always yields the same list.
func Generate(n int, seed uint32) ([]int, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative size %d", n)
	}
	rng, err := NewXorshift32(seed)
	if err != nil {
		return nil, err
	}
	taken := make([]bool, n)
	out := make([]int, 0, n)
	for len(out) < n {
		v := int(rng.Next() % uint32(n))
		if taken[v] {
			continue
		}
		taken[v] = true
		out = append(out, v)
	}
	return out, nil
}
