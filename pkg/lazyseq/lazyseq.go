// Package lazyseq implements pull-based, memoizing sequences over finite or countably infinite streams.
//
// A Lazy sequence owns a memoization buffer and a single Generator.
// Reading index i returns the memoized element when it was already produced,
// otherwise the generator is pulled until the buffer reaches i.
// Derived sequences (Subsequence, Skip, Append, InsertAt, Concat, Map, Filter, Zip)
// share their upstream sequences and read them through their own Cursor,
// so diamond shaped compositions are safe and every node computes each element at most once.
//
// A Lazy sequence is not safe for concurrent use.
package lazyseq

import (
	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/pkg/arrayseq"
	"go.llib.dev/seqstream/pkg/cardinal"
	"go.llib.dev/seqstream/port/iterators"
)

type Lazy[T any] struct {
	length cardinal.Cardinal
	memo   *arrayseq.Array[T]
	gen    Generator[T]
}

func newLazy[T any](length cardinal.Cardinal, memo *arrayseq.Array[T], gen Generator[T]) *Lazy[T] {
	return &Lazy[T]{length: length, memo: memo, gen: gen}
}

// FromSlice makes a fully materialized sequence from a copy of the items.
func FromSlice[T any](items []T) *Lazy[T] {
	return newLazy[T](cardinal.Finite(len(items)), arrayseq.FromSlice(items), static[T]{})
}

func Of[T any](items ...T) *Lazy[T] {
	return FromSlice(items)
}

func Empty[T any]() *Lazy[T] {
	return FromSlice[T](nil)
}

// FromArray makes a fully materialized sequence from a copy of an eager sequence.
func FromArray[T any](a *arrayseq.Array[T]) *Lazy[T] {
	return newLazy[T](cardinal.Finite(a.Len()), a.Clone(), static[T]{})
}

// FromLazy makes a sequence that replays another one through its own memo.
func FromLazy[T any](s *Lazy[T]) *Lazy[T] {
	return newLazy[T](s.length, arrayseq.New[T](), &replay[T]{it: s.Values()})
}

// FromRecurrence makes an infinite sequence that starts with the seeds,
// and produces every further element by calling fn with the last arity elements.
//
// Fibonacci:
//
//	lazyseq.FromRecurrence(func(w []int) int { return w[0] + w[1] }, []int{1, 1}, 2)
func FromRecurrence[T any](fn func(window []T) T, seeds []T, arity int) (*Lazy[T], error) {
	if arity < 0 {
		return nil, seqstream.ErrPrecondition.F("negative recurrence arity: %d", arity)
	}
	if len(seeds) < arity {
		return nil, seqstream.ErrPrecondition.F("recurrence of arity %d needs at least %d seeds, got %d", arity, arity, len(seeds))
	}
	memo := arrayseq.FromSlice(seeds)
	return newLazy[T](cardinal.Aleph0, memo, &recurrence[T]{memo: memo, fn: fn, arity: arity}), nil
}

// FromGenerator makes a sequence of the given length on top of a custom generator.
// With a Finite length, only the first length elements are ever pulled.
func FromGenerator[T any](length cardinal.Cardinal, g Generator[T]) *Lazy[T] {
	return newLazy[T](length, arrayseq.New[T](), g)
}

// Len is the cardinality of the sequence.
// A Finite length is an upper bound: a generator may finish early, as a Filter's does.
func (s *Lazy[T]) Len() cardinal.Cardinal { return s.length }

// Materialized is the number of elements already held in the memo.
func (s *Lazy[T]) Materialized() int { return s.memo.Len() }

// HasNext reports whether the generator may produce further elements.
func (s *Lazy[T]) HasNext() bool { return s.gen.HasNext() }

// At returns the element at index i, materializing every element before it that is not yet memoized.
func (s *Lazy[T]) At(i int) (T, error) {
	if !s.length.Contains(i) {
		return *new(T), seqstream.ErrOutOfRange.F("index %d is out of range [0, %s)", i, s.length)
	}
	for s.memo.Len() <= i {
		if !s.gen.HasNext() {
			return *new(T), seqstream.ErrOutOfRange.F("index %d is past the end of the sequence at %d", i, s.memo.Len())
		}
		v, err := s.gen.Next()
		if err != nil {
			return *new(T), err
		}
		s.memo.Append(v)
	}
	return s.memo.Get(i)
}

// TryAt is At that reports failures as a missing value.
func (s *Lazy[T]) TryAt(i int) (T, bool) {
	v, err := s.At(i)
	return v, err == nil
}

func (s *Lazy[T]) First() (T, error) {
	return s.At(0)
}

// Last drains the generator and returns the final element.
// It is unsupported on Aleph0 sequences.
func (s *Lazy[T]) Last() (T, error) {
	if _, ok := s.length.Value(); !ok {
		return *new(T), seqstream.ErrUnsupported.F("Last of an %s long sequence", s.length)
	}
	v, found, err := iterators.Last[T](s.Values())
	if err != nil {
		return *new(T), err
	}
	if !found {
		return *new(T), seqstream.ErrOutOfRange.F("sequence is empty")
	}
	return v, nil
}

// Values returns a fresh cursor positioned before the first element.
func (s *Lazy[T]) Values() *Cursor[T] {
	return &Cursor[T]{owner: s}
}

// Subsequence returns the elements of the inclusive interval [lo, hi].
func (s *Lazy[T]) Subsequence(lo, hi int) (*Lazy[T], error) {
	if err := s.checkInterval(lo, hi); err != nil {
		return nil, err
	}
	it := s.Values()
	it.seek(lo)
	return newLazy[T](cardinal.Finite(hi-lo+1), arrayseq.New[T](), &subsequence[T]{it: it, hi: hi}), nil
}

// Skip returns the sequence without the elements of the inclusive interval [lo, hi].
func (s *Lazy[T]) Skip(lo, hi int) (*Lazy[T], error) {
	if err := s.checkInterval(lo, hi); err != nil {
		return nil, err
	}
	gen := &skip[T]{it: s.Values(), lo: lo, hi: hi}
	return newLazy[T](s.length.Sub(hi-lo+1), arrayseq.New[T](), gen), nil
}

func (s *Lazy[T]) checkInterval(lo, hi int) error {
	if lo < 0 {
		return seqstream.ErrOutOfRange.F("negative interval start: %d", lo)
	}
	if hi < lo {
		return seqstream.ErrOutOfRange.F("interval start %d is greater than its end %d", lo, hi)
	}
	if !s.length.Contains(hi) {
		return seqstream.ErrOutOfRange.F("interval end %d is out of range [0, %s)", hi, s.length)
	}
	return nil
}

// Append returns the sequence followed by v.
func (s *Lazy[T]) Append(v T) *Lazy[T] {
	gen := &appendGen[T]{it: s.Values(), item: v}
	return newLazy[T](s.length.Add(cardinal.Finite(1)), arrayseq.New[T](), gen)
}

// Prepend returns v followed by the sequence.
func (s *Lazy[T]) Prepend(v T) *Lazy[T] {
	out, _ := s.InsertAt(v, 0) // index 0 is always within bounds
	return out
}

// InsertAt returns the sequence with v placed at index i.
// Inserting at the length of a finite sequence appends.
func (s *Lazy[T]) InsertAt(v T, i int) (*Lazy[T], error) {
	if i < 0 {
		return nil, seqstream.ErrOutOfRange.F("negative insert index: %d", i)
	}
	if n, ok := s.length.Value(); ok && n < i {
		return nil, seqstream.ErrOutOfRange.F("insert index %d is greater than the length %d", i, n)
	}
	gen := &insert[T]{it: s.Values(), item: v, index: i}
	return newLazy[T](s.length.Add(cardinal.Finite(1)), arrayseq.New[T](), gen), nil
}

// Concat returns the sequence followed by o.
func (s *Lazy[T]) Concat(o *Lazy[T]) *Lazy[T] {
	gen := &concat[T]{a: s.Values(), b: o.Values()}
	return newLazy[T](s.length.Add(o.length), arrayseq.New[T](), gen)
}

// Filter returns the elements for which pred holds.
// The result keeps the upstream length as its upper bound, and ends together with the upstream.
func (s *Lazy[T]) Filter(pred func(T) bool) *Lazy[T] {
	return newLazy[T](s.length, arrayseq.New[T](), &filter[T]{it: s.Values(), pred: pred})
}

// Map returns the sequence with fn applied to every element.
func Map[T, U any](s *Lazy[T], fn func(T) U) *Lazy[U] {
	return newLazy[U](s.length, arrayseq.New[U](), &mapGen[T, U]{it: s.Values(), fn: fn})
}

type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip pairs the elements of a and b until either side ends.
func Zip[A, B any](a *Lazy[A], b *Lazy[B]) *Lazy[Pair[A, B]] {
	gen := &zip[A, B]{a: a.Values(), b: b.Values()}
	return newLazy[Pair[A, B]](cardinal.Min(a.length, b.length), arrayseq.New[Pair[A, B]](), gen)
}

// Reduce folds the sequence from its first element.
// It only returns once the sequence is exhausted,
// so calling it on an endless recurrence never terminates.
func Reduce[T, R any](s *Lazy[T], initial R, fn func(R, T) R) (R, error) {
	return iterators.Reduce[R, T](s.Values(), initial, fn)
}
