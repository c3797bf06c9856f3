package lazyseq

import (
	"go.llib.dev/seqstream/port/iterators"
)

var _ iterators.Iterator[int] = &Cursor[int]{}

// Cursor walks a Lazy sequence by index, reading through the owner's memo.
// Several cursors may walk the same sequence independently.
type Cursor[T any] struct {
	owner  *Lazy[T]
	index  int
	value  T
	err    error
	closed bool
}

// IsEnd reports a clean end of the enumeration:
// either a finite length is reached, or the memo is exhausted and the generator has nothing more to give.
// A failed cursor is not at its end, Next returns false on it and Err explains why.
func (c *Cursor[T]) IsEnd() bool {
	if c.err != nil {
		return false
	}
	if c.closed {
		return true
	}
	if n, ok := c.owner.length.Value(); ok && n <= c.index {
		return true
	}
	return c.owner.memo.Len() <= c.index && !c.owner.gen.HasNext()
}

func (c *Cursor[T]) Next() bool {
	if c.err != nil || c.IsEnd() {
		return false
	}
	v, err := c.owner.At(c.index)
	if err != nil {
		c.err = err
		return false
	}
	c.value = v
	c.index++
	return true
}

func (c *Cursor[T]) Value() T { return c.value }

// Index is the index of the element the next call to Next reads.
func (c *Cursor[T]) Index() int { return c.index }

func (c *Cursor[T]) Err() error { return c.err }

func (c *Cursor[T]) Close() error {
	c.closed = true
	return nil
}

// seek moves the cursor to index i without materializing the elements in between.
func (c *Cursor[T]) seek(i int) {
	c.index = i
}
