// Package memory implements the streams role interfaces over in-memory sequences and texts.
package memory

import (
	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/pkg/arrayseq"
	"go.llib.dev/seqstream/pkg/lazyseq"
	"go.llib.dev/seqstream/port/streams"
)

var (
	_ streams.ReadStream[int]  = &SequenceReadStream[int]{}
	_ streams.ReadStream[int]  = &LazyReadStream[int]{}
	_ streams.WriteStream[int] = &SequenceWriteStream[int]{}
)

func NewSequenceReadStream[T any](seq *arrayseq.Array[T]) *SequenceReadStream[T] {
	return &SequenceReadStream[T]{Sequence: seq}
}

// SequenceReadStream reads an eager sequence from its start.
type SequenceReadStream[T any] struct {
	Sequence *arrayseq.Array[T]

	index int
}

func (s *SequenceReadStream[T]) IsEnd() bool { return s.Sequence.Len() <= s.index }

func (s *SequenceReadStream[T]) Read() (T, error) {
	if s.IsEnd() {
		return *new(T), seqstream.ErrEndOfStream
	}
	v, err := s.Sequence.Get(s.index)
	if err != nil {
		return *new(T), err
	}
	s.index++
	return v, nil
}

func (s *SequenceReadStream[T]) Position() int { return s.index }

func (s *SequenceReadStream[T]) CanSeek() bool { return true }

func (s *SequenceReadStream[T]) CanGoBack() bool { return true }

func (s *SequenceReadStream[T]) Seek(index int) (int, error) {
	if index < 0 || s.Sequence.Len() < index {
		return s.index, seqstream.ErrOutOfRange.F("seek index %d is out of range [0, %d]", index, s.Sequence.Len())
	}
	s.index = index
	return s.index, nil
}

func NewLazyReadStream[T any](seq *lazyseq.Lazy[T]) *LazyReadStream[T] {
	return &LazyReadStream[T]{Sequence: seq}
}

// LazyReadStream reads a lazy sequence, materializing it as the reading goes.
// Its end follows the enumeration of the sequence,
// so sequences of unknown length end when their generator does.
type LazyReadStream[T any] struct {
	Sequence *lazyseq.Lazy[T]

	index int
	err   error
}

// IsEnd materializes the sequence up to the read position to tell whether an element is there.
// A failure while doing so is kept, and returned by the next Read.
func (s *LazyReadStream[T]) IsEnd() bool {
	if s.err != nil {
		return false
	}
	if n, ok := s.Sequence.Len().Value(); ok && n <= s.index {
		return true
	}
	for s.Sequence.Materialized() <= s.index {
		if !s.Sequence.HasNext() {
			return true
		}
		if _, err := s.Sequence.At(s.Sequence.Materialized()); err != nil {
			s.err = err
			return false
		}
	}
	return false
}

func (s *LazyReadStream[T]) Read() (T, error) {
	if s.IsEnd() {
		return *new(T), seqstream.ErrEndOfStream
	}
	if s.err != nil {
		return *new(T), s.err
	}
	v, err := s.Sequence.At(s.index)
	if err != nil {
		return *new(T), err
	}
	s.index++
	return v, nil
}

func (s *LazyReadStream[T]) Err() error { return s.err }

func (s *LazyReadStream[T]) Position() int { return s.index }

func (s *LazyReadStream[T]) CanSeek() bool { return true }

func (s *LazyReadStream[T]) CanGoBack() bool { return true }

func (s *LazyReadStream[T]) Seek(index int) (int, error) {
	if index < 0 {
		return s.index, seqstream.ErrOutOfRange.F("negative seek index: %d", index)
	}
	if n, ok := s.Sequence.Len().Value(); ok && n < index {
		return s.index, seqstream.ErrOutOfRange.F("seek index %d is greater than the length %d", index, n)
	}
	s.index = index
	return s.index, nil
}

func NewSequenceWriteStream[T any](seq *arrayseq.Array[T]) *SequenceWriteStream[T] {
	return &SequenceWriteStream[T]{Sequence: seq}
}

// SequenceWriteStream appends to an eager sequence.
// Its position is the length of the sequence.
type SequenceWriteStream[T any] struct {
	Sequence *arrayseq.Array[T]

	closed bool
}

func (s *SequenceWriteStream[T]) Open() error {
	s.closed = false
	return nil
}

func (s *SequenceWriteStream[T]) Write(v T) (int, error) {
	if s.closed {
		return s.Position(), seqstream.ErrIO.F("write to a closed sequence stream")
	}
	s.Sequence.Append(v)
	return s.Sequence.Len(), nil
}

func (s *SequenceWriteStream[T]) Position() int { return s.Sequence.Len() }

func (s *SequenceWriteStream[T]) Close() error {
	s.closed = true
	return nil
}
