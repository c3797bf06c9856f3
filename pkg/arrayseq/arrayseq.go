// Package arrayseq implements an eager, growable, indexed sequence.
//
// Array keeps a logical length L and a capacity C ≥ max(1, L),
// and doubles its capacity when an insertion finds L == C.
// It serves as the memoization buffer of lazy sequences and as a concrete leaf source.
package arrayseq

import (
	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/port/iterators"
)

type Array[T any] struct {
	data []T // len(data) is the capacity
	size int
}

// New returns an empty Array with capacity 1.
func New[T any]() *Array[T] {
	return &Array[T]{data: make([]T, 1)}
}

// FromSlice copies the items into a new Array.
// The capacity equals the count, or 1 for an empty input.
func FromSlice[T any](items []T) *Array[T] {
	if len(items) == 0 {
		return New[T]()
	}
	data := make([]T, len(items))
	copy(data, items)
	return &Array[T]{data: data, size: len(items)}
}

func Of[T any](items ...T) *Array[T] {
	return FromSlice(items)
}

// Clone duplicates the Array by enumerating it into a new one with the same capacity.
func (a *Array[T]) Clone() *Array[T] {
	c := &Array[T]{data: make([]T, a.Cap())}
	for i := 0; i < a.size; i++ {
		c.Append(a.data[i])
	}
	return c
}

func (a *Array[T]) Len() int { return a.size }

func (a *Array[T]) Cap() int { return len(a.data) }

func (a *Array[T]) Get(i int) (T, error) {
	if i < 0 || a.size <= i {
		return *new(T), seqstream.ErrOutOfRange.F("index %d is out of range [0, %d)", i, a.size)
	}
	return a.data[i], nil
}

func (a *Array[T]) First() (T, error) {
	if a.size == 0 {
		return *new(T), seqstream.ErrOutOfRange.F("sequence is empty")
	}
	return a.data[0], nil
}

func (a *Array[T]) Last() (T, error) {
	if a.size == 0 {
		return *new(T), seqstream.ErrOutOfRange.F("sequence is empty")
	}
	return a.data[a.size-1], nil
}

// Slice returns a new Array with the elements of the inclusive interval [lo, hi].
func (a *Array[T]) Slice(lo, hi int) (*Array[T], error) {
	if lo < 0 || a.size <= lo || a.size <= hi {
		return nil, seqstream.ErrOutOfRange.F("interval [%d, %d] is out of range [0, %d)", lo, hi, a.size)
	}
	if hi < lo {
		return nil, seqstream.ErrOutOfRange.F("interval start %d is greater than its end %d", lo, hi)
	}
	return FromSlice(a.data[lo : hi+1]), nil
}

// FirstN returns the first k elements.
func (a *Array[T]) FirstN(k int) (*Array[T], error) {
	if k == 0 {
		return New[T](), nil
	}
	if k < 0 || a.size < k {
		return nil, seqstream.ErrOutOfRange.F("requested %d elements from %d", k, a.size)
	}
	return a.Slice(0, k-1)
}

// LastN returns the last k elements.
func (a *Array[T]) LastN(k int) (*Array[T], error) {
	if k == 0 {
		return New[T](), nil
	}
	if k < 0 || a.size < k {
		return nil, seqstream.ErrOutOfRange.F("requested %d elements from %d", k, a.size)
	}
	return a.Slice(a.size-k, a.size-1)
}

func (a *Array[T]) Append(v T) {
	a.grow()
	a.data[a.size] = v
	a.size++
}

func (a *Array[T]) Prepend(v T) {
	a.insert(0, v)
}

// InsertAt places v at index i and shifts the elements of [i, L) up by one.
func (a *Array[T]) InsertAt(i int, v T) error {
	if i < 0 || a.size < i {
		return seqstream.ErrOutOfRange.F("insert index %d is out of range [0, %d]", i, a.size)
	}
	a.insert(i, v)
	return nil
}

// insert expects 0 <= i <= L.
func (a *Array[T]) insert(i int, v T) {
	a.grow()
	copy(a.data[i+1:a.size+1], a.data[i:a.size])
	a.data[i] = v
	a.size++
}

// Clear resets the length to zero and keeps the capacity.
func (a *Array[T]) Clear() {
	clear(a.data[:a.size])
	a.size = 0
}

func (a *Array[T]) ToSlice() []T {
	out := make([]T, a.size)
	copy(out, a.data[:a.size])
	return out
}

func (a *Array[T]) grow() {
	if a.size < len(a.data) {
		return
	}
	capacity := len(a.data) * 2
	if capacity == 0 {
		capacity = 1
	}
	data := make([]T, capacity)
	copy(data, a.data[:a.size])
	a.data = data
}

// Values returns an enumerator over the elements in insertion order.
func (a *Array[T]) Values() *Enumerator[T] {
	return &Enumerator[T]{array: a, index: -1}
}

var _ iterators.Iterator[int] = &Enumerator[int]{}

// Enumerator walks an Array and reports the index of the current element.
// Elements appended during the enumeration are visited as well.
type Enumerator[T any] struct {
	array  *Array[T]
	index  int
	value  T
	closed bool
}

func (e *Enumerator[T]) Next() bool {
	if e.closed || e.array.size <= e.index+1 {
		return false
	}
	e.index++
	e.value = e.array.data[e.index]
	return true
}

func (e *Enumerator[T]) Value() T { return e.value }

// Index is the position of the current Value, or -1 before the first Next.
func (e *Enumerator[T]) Index() int { return e.index }

func (e *Enumerator[T]) Err() error { return nil }

func (e *Enumerator[T]) Close() error {
	e.closed = true
	return nil
}
