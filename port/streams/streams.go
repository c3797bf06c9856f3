// Package streams define the pull and push role interfaces of element streams,
// and the drivers that move elements between them.
//
// A Reader is polled with IsEnd before every Read.
// Readers that can fail after they reported their end (a file that hit a read error, for example)
// additionally implement `Err() error`, which every driver in this package checks.
package streams

import (
	"io"

	"go.llib.dev/frameless/pkg/errorkit"

	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/port/iterators"
)

type Reader[T any] interface {
	// IsEnd reports whether the stream has no more elements to Read.
	IsEnd() bool
	// Read returns the next element.
	// Reading past the end yields seqstream.ErrEndOfStream.
	Read() (T, error)
	// Position is the number of elements read so far.
	Position() int
}

type ReadStream[T any] interface {
	Reader[T]
	CanSeek() bool
	CanGoBack() bool
	// Seek moves the read position to index, and returns the new position.
	// Non seekable streams yield seqstream.ErrUnsupported.
	Seek(index int) (int, error)
}

type WriteStream[T any] interface {
	Open() error
	// Write appends v and returns the new position.
	Write(v T) (int, error)
	Position() int
	// Close must be safe to call multiple times.
	io.Closer
}

type errorer interface {
	Err() error
}

// ErrOf returns the deferred error of a reader, if it reports any.
func ErrOf[T any](r Reader[T]) error {
	if e, ok := r.(errorer); ok {
		return e.Err()
	}
	return nil
}

// Copy pulls every element from src and writes it into dst.
// It neither opens nor closes dst.
func Copy[T any](dst WriteStream[T], src Reader[T]) (int, error) {
	var n int
	for !src.IsEnd() {
		v, err := src.Read()
		if err != nil {
			return n, err
		}
		if _, err := dst.Write(v); err != nil {
			return n, err
		}
		n++
	}
	return n, ErrOf(src)
}

// ReadAll drains the reader into a slice.
func ReadAll[T any](src Reader[T]) ([]T, error) {
	var vs = make([]T, 0)
	for !src.IsEnd() {
		v, err := src.Read()
		if err != nil {
			return vs, err
		}
		vs = append(vs, v)
	}
	return vs, ErrOf(src)
}

// ReadN reads at most n elements, and reports whether the reader ended before it could give more.
func ReadN[T any](src Reader[T], n int) ([]T, bool, error) {
	var vs = make([]T, 0, n)
	for len(vs) < n {
		if src.IsEnd() {
			return vs, true, ErrOf(src)
		}
		v, err := src.Read()
		if err != nil {
			return vs, false, err
		}
		vs = append(vs, v)
	}
	return vs, src.IsEnd(), nil
}

// Values adapts a reader to the iterator protocol.
// Closing the iterator closes the reader when it is an io.Closer.
func Values[T any](src Reader[T]) iterators.Iterator[T] {
	return &readerIter[T]{src: src}
}

type readerIter[T any] struct {
	src    Reader[T]
	value  T
	err    error
	closed bool
}

func (i *readerIter[T]) Next() bool {
	if i.closed || i.err != nil {
		return false
	}
	if i.src.IsEnd() {
		i.err = ErrOf(i.src)
		return false
	}
	v, err := i.src.Read()
	if err != nil {
		i.err = err
		return false
	}
	i.value = v
	return true
}

func (i *readerIter[T]) Value() T { return i.value }

func (i *readerIter[T]) Err() error { return i.err }

func (i *readerIter[T]) Close() error {
	if i.closed {
		return nil
	}
	i.closed = true
	if c, ok := i.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// IOReader exposes a byte reader as an io.Reader.
func IOReader(src Reader[byte]) io.Reader {
	return &ioReader{src: src}
}

type ioReader struct {
	src Reader[byte]
}

func (r *ioReader) Read(p []byte) (int, error) {
	var n int
	for n < len(p) {
		if r.src.IsEnd() {
			if err := ErrOf(r.src); err != nil {
				return n, err
			}
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		}
		b, err := r.src.Read()
		if err != nil {
			return n, err
		}
		p[n] = b
		n++
	}
	return n, nil
}

// WriteAll opens dst, writes every value into it, and closes it.
func WriteAll[T any](dst WriteStream[T], vs ...T) (rErr error) {
	if err := dst.Open(); err != nil {
		return err
	}
	defer errorkit.Finish(&rErr, dst.Close)
	for _, v := range vs {
		if _, err := dst.Write(v); err != nil {
			return err
		}
	}
	return nil
}

// SeekUnsupported is the Seek of streams that can't seek.
func SeekUnsupported(int) (int, error) {
	return 0, seqstream.ErrUnsupported.F("stream is not seekable")
}
