// Package deque provides a fixed-capacity double-ended buffer.
//
// The buffer is three times the capacity wide. The live elements start out in
// the middle window and drift left or right as elements are pushed and popped
// at either end. When a push would leave the buffer, the live elements are
// copied back into the middle window. A rotation (pop one end, push the other)
// therefore costs O(1) amortized, and the buffer never reallocates.
package deque

import (
	"fmt"
	"iter"
)

// Bounded is a double-ended queue holding at most Cap() elements.
// Operations that violate the bounds panic.
type Bounded[T comparable] struct {
	buf      []T
	pos      int
	len      int
	capacity int
}

// New creates an empty deque that can hold capacity elements.
func New[T comparable](capacity int) *Bounded[T] {
	if capacity < 0 {
		panic(fmt.Errorf("deque: negative capacity %d", capacity))
	}
	return &Bounded[T]{
		buf:      make([]T, 3*capacity),
		pos:      capacity,
		capacity: capacity,
	}
}

// Len returns the number of elements in the deque.
func (d *Bounded[T]) Len() int { return d.len }

// Cap returns the maximum number of elements.
func (d *Bounded[T]) Cap() int { return d.capacity }

// Empty reports whether the deque holds no elements.
func (d *Bounded[T]) Empty() bool { return d.len == 0 }

// recentre moves the live window back to [capacity, capacity+len).
func (d *Bounded[T]) recentre() {
	copy(d.buf[d.capacity:d.capacity+d.len], d.buf[d.pos:d.pos+d.len])
	d.pos = d.capacity
}

// PushFront inserts v before the first element.
func (d *Bounded[T]) PushFront(v T) {
	if d.len == d.capacity {
		panic(fmt.Errorf("deque: push front on full deque (cap %d)", d.capacity))
	}
	if d.pos == 0 {
		d.recentre()
	}
	d.pos--
	d.buf[d.pos] = v
	d.len++
}

// PushBack inserts v after the last element.
func (d *Bounded[T]) PushBack(v T) {
	if d.len == d.capacity {
		panic(fmt.Errorf("deque: push back on full deque (cap %d)", d.capacity))
	}
	if d.pos+d.len == len(d.buf) {
		d.recentre()
	}
	d.buf[d.pos+d.len] = v
	d.len++
}

// PopFront removes and returns the first element.
func (d *Bounded[T]) PopFront() T {
	if d.len == 0 {
		panic(fmt.Errorf("deque: pop front on empty deque"))
	}
	v := d.buf[d.pos]
	var zero T
	d.buf[d.pos] = zero
	d.pos++
	d.len--
	return v
}

// PopBack removes and returns the last element.
func (d *Bounded[T]) PopBack() T {
	if d.len == 0 {
		panic(fmt.Errorf("deque: pop back on empty deque"))
	}
	d.len--
	v := d.buf[d.pos+d.len]
	var zero T
	d.buf[d.pos+d.len] = zero
	return v
}

// At returns the element at index i, with 0 being the front.
// Panics if i is negative or greater than or equal to Len().
func (d *Bounded[T]) At(i int) T {
	d.check(i)
	return d.buf[d.pos+i]
}

// Swap exchanges the elements at indexes i and j.
func (d *Bounded[T]) Swap(i, j int) {
	d.check(i)
	d.check(j)
	d.buf[d.pos+i], d.buf[d.pos+j] = d.buf[d.pos+j], d.buf[d.pos+i]
}

func (d *Bounded[T]) check(i int) {
	if i < 0 || i >= d.len {
		panic(fmt.Errorf("deque: index %d out of range %d", i, d.len))
	}
}

// All iterates over the elements front to back.
func (d *Bounded[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.len; i++ {
			if !yield(i, d.buf[d.pos+i]) {
				return
			}
		}
	}
}

// Values returns a copy of the elements front to back.
func (d *Bounded[T]) Values() []T {
	out := make([]T, d.len)
	copy(out, d.buf[d.pos:d.pos+d.len])
	return out
}

// Prefix returns a copy of the first n elements.
func (d *Bounded[T]) Prefix(n int) []T {
	if n < 0 || n > d.len {
		panic(fmt.Errorf("deque: prefix %d out of range %d", n, d.len))
	}
	out := make([]T, n)
	copy(out, d.buf[d.pos:d.pos+n])
	return out
}

// Equal reports whether d holds exactly vs, front to back.
func (d *Bounded[T]) Equal(vs []T) bool {
	if len(vs) != d.len {
		return false
	}
	for i, v := range vs {
		if d.buf[d.pos+i] != v {
			return false
		}
	}
	return true
}

// Load replaces the contents with vs, placing them in the middle window.
func (d *Bounded[T]) Load(vs []T) {
	if len(vs) > d.capacity {
		panic(fmt.Errorf("deque: load %d elements into cap %d", len(vs), d.capacity))
	}
	clear(d.buf)
	d.pos = d.capacity
	d.len = copy(d.buf[d.pos:d.pos+len(vs)], vs)
}

// Clone returns an independent copy of d.
func (d *Bounded[T]) Clone() *Bounded[T] {
	c := &Bounded[T]{
		buf:      make([]T, len(d.buf)),
		pos:      d.pos,
		len:      d.len,
		capacity: d.capacity,
	}
	copy(c.buf, d.buf)
	return c
}

// String formats the live elements front to back.
func (d *Bounded[T]) String() string {
	return fmt.Sprint(d.buf[d.pos : d.pos+d.len])
}
