// Package state holds the two stacks being sorted, the operation log and the
// snapshot taken before every logged operation.
package state

import (
	"encoding/binary"
	"fmt"
	"slices"

	"stacksort/internal/deque"
	"stacksort/internal/ops"

	"github.com/cespare/xxhash/v2"
)

// Stack names one of the two stacks.
type Stack uint8

const (
	A Stack = iota
	B
)

func (s Stack) String() string {
	switch s {
	case A:
		return "A"
	case B:
		return "B"
	}
	return fmt.Sprintf("Stack(%d)", uint8(s))
}

// Snapshot is the exact content of both stacks, front to back.
type Snapshot struct {
	A []int
	B []int
}

// Equal reports whether s and o hold the same stacks.
func (s Snapshot) Equal(o Snapshot) bool {
	return slices.Equal(s.A, o.A) && slices.Equal(s.B, o.B)
}

// Hash returns an xxhash digest of the snapshot. Equal snapshots hash equally.
func (s Snapshot) Hash() uint64 {
	return hashStacks(s.A, s.B)
}

// Sorted reports whether A is strictly ascending and B is empty.
func (s Snapshot) Sorted() bool {
	return len(s.B) == 0 && ascending(s.A)
}

func ascending(vs []int) bool {
	for i := 1; i < len(vs); i++ {
		if vs[i-1] >= vs[i] {
			return false
		}
	}
	return true
}

func hashStacks(a, b []int) uint64 {
	buf := make([]byte, 0, 8*(len(a)+len(b)+1))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(a)))
	for _, v := range a {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	for _, v := range b {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	return xxhash.Sum64(buf)
}

// Pair is stack A and stack B, each able to hold every element.
// It applies operations without recording them.
type Pair struct {
	a, b    *deque.Bounded[int]
	scratch []byte
}

// NewPair creates an empty pair for n elements.
func NewPair(n int) *Pair {
	return &Pair{a: deque.New[int](n), b: deque.New[int](n)}
}

// PairOf creates a pair holding the stacks of s.
func PairOf(s Snapshot) *Pair {
	p := NewPair(len(s.A) + len(s.B))
	p.Load(s)
	return p
}

// Load replaces the content of both stacks.
func (p *Pair) Load(s Snapshot) {
	p.a.Load(s.A)
	p.b.Load(s.B)
}

// Size returns the total number of elements.
func (p *Pair) Size() int { return p.a.Cap() }

// Len returns the number of elements on stack s.
func (p *Pair) Len(s Stack) int { return p.stack(s).Len() }

// At returns element i of stack s, 0 being the front.
func (p *Pair) At(s Stack, i int) int { return p.stack(s).At(i) }

// Prefix returns a copy of the first n elements of stack s.
func (p *Pair) Prefix(s Stack, n int) []int { return p.stack(s).Prefix(n) }

// Values returns a copy of stack s, front to back.
func (p *Pair) Values(s Stack) []int { return p.stack(s).Values() }

func (p *Pair) stack(s Stack) *deque.Bounded[int] {
	switch s {
	case A:
		return p.a
	case B:
		return p.b
	}
	panic(fmt.Errorf("state: unknown stack %d", s))
}

// Snapshot copies both stacks.
func (p *Pair) Snapshot() Snapshot {
	return Snapshot{A: p.a.Values(), B: p.b.Values()}
}

// Matches reports whether the pair holds exactly the stacks of s.
func (p *Pair) Matches(s Snapshot) bool {
	return p.a.Equal(s.A) && p.b.Equal(s.B)
}

// Hash returns the same digest as Snapshot.Hash for the current stacks.
func (p *Pair) Hash() uint64 {
	buf := binary.LittleEndian.AppendUint64(p.scratch[:0], uint64(p.a.Len()))
	for _, v := range p.a.All() {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	for _, v := range p.b.All() {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(v))
	}
	p.scratch = buf
	return xxhash.Sum64(buf)
}

// Sorted reports whether A is strictly ascending and B is empty.
func (p *Pair) Sorted() bool {
	if !p.b.Empty() {
		return false
	}
	for i := 1; i < p.a.Len(); i++ {
		if p.a.At(i-1) >= p.a.At(i) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the pair.
func (p *Pair) Clone() *Pair {
	return &Pair{a: p.a.Clone(), b: p.b.Clone()}
}

// Changes reports whether op would modify the pair. Combined operations
// only count when both halves would, since otherwise they act like the
// single-stack operation.
func (p *Pair) Changes(op ops.Op) bool {
	la, lb := p.a.Len(), p.b.Len()
	switch op {
	case ops.PA:
		return lb > 0
	case ops.PB:
		return la > 0
	case ops.SA, ops.RA, ops.RRA:
		return la > 1
	case ops.SB, ops.RB, ops.RRB:
		return lb > 1
	case ops.SS, ops.RR, ops.RRR:
		return la > 1 && lb > 1
	}
	return false
}

// Step applies op. Operations on stacks with too few elements do nothing.
func (p *Pair) Step(op ops.Op) {
	switch op {
	case ops.PA:
		push(p.b, p.a)
	case ops.PB:
		push(p.a, p.b)
	case ops.SA:
		swap(p.a)
	case ops.SB:
		swap(p.b)
	case ops.SS:
		swap(p.a)
		swap(p.b)
	case ops.RA:
		rotate(p.a)
	case ops.RB:
		rotate(p.b)
	case ops.RR:
		rotate(p.a)
		rotate(p.b)
	case ops.RRA:
		reverseRotate(p.a)
	case ops.RRB:
		reverseRotate(p.b)
	case ops.RRR:
		reverseRotate(p.a)
		reverseRotate(p.b)
	default:
		panic(fmt.Errorf("state: invalid operation %d", uint8(op)))
	}
}

func push(from, to *deque.Bounded[int]) {
	if from.Empty() {
		return
	}
	to.PushFront(from.PopFront())
}

func swap(d *deque.Bounded[int]) {
	if d.Len() < 2 {
		return
	}
	d.Swap(0, 1)
}

func rotate(d *deque.Bounded[int]) {
	if d.Empty() {
		return
	}
	d.PushBack(d.PopFront())
}

func reverseRotate(d *deque.Bounded[int]) {
	if d.Empty() {
		return
	}
	d.PushFront(d.PopBack())
}
