// Package smallsort holds the fixed operation sequences that sort a prefix of
// two or three elements.
//
// Each sequence touches only the prefix: elements below it on either stack
// end where they started. A-origin sequences leave the prefix ascending on
// top of A. B-origin sequences move the prefix onto A ascending and drain it
// from B.
package smallsort

import (
	"fmt"

	"stacksort/internal/ops"
	"stacksort/internal/state"
)

// MaxPrefix is the longest prefix PermutationID accepts.
const MaxPrefix = 5

// Sequences are indexed by PermutationID of the prefix, u being the front
// element, v the next and w the third.
var (
	sortA2 = [][]ops.Op{
		{ops.SA}, // u > v
		{},       // u < v
	}
	sortB2 = [][]ops.Op{
		{ops.PA, ops.PA},         // u > v
		{ops.PA, ops.PA, ops.SA}, // u < v
	}
	sortA3 = [][]ops.Op{
		{ops.SA, ops.RA, ops.SA, ops.RRA, ops.SA}, // u > v > w
		{ops.SA, ops.RA, ops.SA, ops.RRA},         // u > w > v
		{ops.RA, ops.SA, ops.RRA, ops.SA},         // v > u > w
		{ops.RA, ops.SA, ops.RRA},                 // v > w > u
		{ops.SA},                                  // w > u > v
		{},                                        // w > v > u
	}
	sortB3 = [][]ops.Op{
		{ops.PA, ops.PA, ops.PA},                         // u > v > w
		{ops.PA, ops.SB, ops.PA, ops.PA},                 // u > w > v
		{ops.SB, ops.PA, ops.PA, ops.PA},                 // v > u > w
		{ops.SB, ops.PA, ops.SB, ops.PA, ops.PA},         // v > w > u
		{ops.PA, ops.SB, ops.PA, ops.SA, ops.PA},         // w > u > v
		{ops.SB, ops.PA, ops.SB, ops.PA, ops.SA, ops.PA}, // w > v > u
	}
)

// PermutationID maps the relative order of values to an index in
// [0, len(values)!). The positions are listed from the largest value to the
// smallest and that list is ranked lexicographically (Lehmer code), so a
// strictly descending prefix is 0 and an ascending one is n!-1.
// values must be distinct and at most MaxPrefix long.
func PermutationID(values []int) int {
	n := len(values)
	if n > MaxPrefix {
		panic(fmt.Errorf("smallsort: prefix of %d exceeds %d", n, MaxPrefix))
	}

	var order [MaxPrefix]int
	for i, v := range values {
		// position i is the (number of larger values)-th largest
		k := 0
		for _, w := range values {
			if w > v {
				k++
			}
		}
		order[k] = i
	}

	id := 0
	for i := 0; i < n; i++ {
		smaller := 0
		for j := i + 1; j < n; j++ {
			if order[j] < order[i] {
				smaller++
			}
		}
		id = id*(n-i) + smaller
	}
	return id
}

// Table returns the sequences for a prefix of length n on stack s.
// It panics for anything other than lengths 2 and 3.
func Table(s state.Stack, n int) [][]ops.Op {
	switch {
	case s == state.A && n == 2:
		return sortA2
	case s == state.A && n == 3:
		return sortA3
	case s == state.B && n == 2:
		return sortB2
	case s == state.B && n == 3:
		return sortB3
	}
	panic(fmt.Errorf("smallsort: no table for stack %s length %d", s, n))
}

// Lookup returns the sequence sorting prefix, the front elements of stack s.
func Lookup(s state.Stack, prefix []int) []ops.Op {
	return Table(s, len(prefix))[PermutationID(prefix)]
}
