package lazyseq

import (
	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/pkg/arrayseq"
)

// Generator produces the not yet memoized elements of a Lazy sequence, one at a time.
//
// HasNext must not consume anything observable.
// Next may only be called after HasNext reported true,
// otherwise it fails with seqstream.ErrOutOfRange.
type Generator[T any] interface {
	HasNext() bool
	Next() (T, error)
}

// TryNext pulls the next element when there is one.
func TryNext[T any](g Generator[T]) (T, bool) {
	if !g.HasNext() {
		return *new(T), false
	}
	v, err := g.Next()
	if err != nil {
		return *new(T), false
	}
	return v, true
}

func errExhausted() error {
	return seqstream.ErrOutOfRange.F("generator has no next element")
}

// pull reads the next element of an upstream cursor,
// and passes upstream errors on unchanged.
func pull[T any](c *Cursor[T]) (T, error) {
	if c.Next() {
		return c.Value(), nil
	}
	if err := c.Err(); err != nil {
		return *new(T), err
	}
	return *new(T), errExhausted()
}

// static belongs to fully materialized sequences.
type static[T any] struct{}

func (static[T]) HasNext() bool { return false }

func (static[T]) Next() (T, error) { return *new(T), errExhausted() }

type replay[T any] struct {
	it *Cursor[T]
}

func (g *replay[T]) HasNext() bool { return !g.it.IsEnd() }

func (g *replay[T]) Next() (T, error) { return pull(g.it) }

// recurrence computes the next element from the last arity elements of the memo it shares with its sequence.
type recurrence[T any] struct {
	memo  *arrayseq.Array[T]
	fn    func(window []T) T
	arity int
}

func (g *recurrence[T]) HasNext() bool { return true }

func (g *recurrence[T]) Next() (T, error) {
	window, err := g.memo.LastN(g.arity)
	if err != nil {
		return *new(T), err
	}
	return g.fn(window.ToSlice()), nil
}

type subsequence[T any] struct {
	it *Cursor[T]
	hi int
}

func (g *subsequence[T]) HasNext() bool {
	return g.it.Index() <= g.hi && !g.it.IsEnd()
}

func (g *subsequence[T]) Next() (T, error) {
	if g.hi < g.it.Index() {
		return *new(T), errExhausted()
	}
	return pull(g.it)
}

type skip[T any] struct {
	it      *Cursor[T]
	lo, hi  int
	skipped bool
}

func (g *skip[T]) settle() {
	if !g.skipped && g.lo <= g.it.Index() {
		g.it.seek(g.hi + 1)
		g.skipped = true
	}
}

func (g *skip[T]) HasNext() bool {
	g.settle()
	return !g.it.IsEnd()
}

func (g *skip[T]) Next() (T, error) {
	g.settle()
	return pull(g.it)
}

type appendGen[T any] struct {
	it    *Cursor[T]
	item  T
	added bool
}

func (g *appendGen[T]) HasNext() bool {
	return !g.added || !g.it.IsEnd()
}

func (g *appendGen[T]) Next() (T, error) {
	if !g.it.IsEnd() {
		return pull(g.it)
	}
	if g.added {
		return *new(T), errExhausted()
	}
	g.added = true
	return g.item, nil
}

type insert[T any] struct {
	it    *Cursor[T]
	item  T
	index int
	added bool
}

func (g *insert[T]) HasNext() bool {
	return !g.added || !g.it.IsEnd()
}

func (g *insert[T]) Next() (T, error) {
	if !g.added && g.it.Index() == g.index {
		g.added = true
		return g.item, nil
	}
	if !g.added && g.it.IsEnd() {
		return *new(T), seqstream.ErrOutOfRange.F("insert index %d is past the end of the sequence at %d", g.index, g.it.Index())
	}
	return pull(g.it)
}

type concat[T any] struct {
	a, b *Cursor[T]
}

func (g *concat[T]) HasNext() bool {
	return !g.a.IsEnd() || !g.b.IsEnd()
}

func (g *concat[T]) Next() (T, error) {
	if !g.a.IsEnd() {
		return pull(g.a)
	}
	return pull(g.b)
}

type mapGen[T, U any] struct {
	it *Cursor[T]
	fn func(T) U
}

func (g *mapGen[T, U]) HasNext() bool { return !g.it.IsEnd() }

func (g *mapGen[T, U]) Next() (U, error) {
	v, err := pull(g.it)
	if err != nil {
		return *new(U), err
	}
	return g.fn(v), nil
}

// filter looks ahead for the next matching element, so HasNext is exact.
type filter[T any] struct {
	it      *Cursor[T]
	pred    func(T) bool
	pending T
	has     bool
	err     error
}

func (g *filter[T]) HasNext() bool {
	if g.has || g.err != nil {
		return true
	}
	for g.it.Next() {
		if v := g.it.Value(); g.pred(v) {
			g.pending, g.has = v, true
			return true
		}
	}
	if err := g.it.Err(); err != nil {
		g.err = err
		return true
	}
	return false
}

func (g *filter[T]) Next() (T, error) {
	if !g.HasNext() {
		return *new(T), errExhausted()
	}
	if g.err != nil {
		return *new(T), g.err
	}
	v := g.pending
	g.pending, g.has = *new(T), false
	return v, nil
}

type zip[A, B any] struct {
	a *Cursor[A]
	b *Cursor[B]
}

func (g *zip[A, B]) HasNext() bool {
	return !g.a.IsEnd() && !g.b.IsEnd()
}

func (g *zip[A, B]) Next() (Pair[A, B], error) {
	va, err := pull(g.a)
	if err != nil {
		return Pair[A, B]{}, err
	}
	vb, err := pull(g.b)
	if err != nil {
		return Pair[A, B]{}, err
	}
	return Pair[A, B]{First: va, Second: vb}, nil
}
