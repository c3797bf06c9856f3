// Package streamcontract holds the behavioural contracts of the streams role interfaces.
// Every supplier of a streams.ReadStream or streams.WriteStream is expected to pass them.
package streamcontract

import (
	"testing"

	"go.llib.dev/frameless/port/contract"
	"go.llib.dev/testcase"

	"go.llib.dev/seqstream"
	"go.llib.dev/seqstream/port/streams"
)

// ReadStreamSubject is a freshly made read stream, and the elements it is expected to yield.
type ReadStreamSubject[T any] struct {
	Stream   streams.ReadStream[T]
	Expected []T
}

func ReadStream[T any](mk contract.Make[ReadStreamSubject[T]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) ReadStreamSubject[T] {
		return mk(t)
	})

	s.Test("reading until the end yields the expected elements in order", func(t *testcase.T) {
		sub := subject.Get(t)
		t.Must.Equal(0, sub.Stream.Position())

		var got []T
		for !sub.Stream.IsEnd() {
			v, err := sub.Stream.Read()
			t.Must.NoError(err)
			got = append(got, v)
			t.Must.Equal(len(got), sub.Stream.Position())
		}
		t.Must.NoError(streams.ErrOf[T](sub.Stream))
		t.Must.Equal(len(sub.Expected), len(got))
		for i := range sub.Expected {
			t.Must.Equal(sub.Expected[i], got[i])
		}
	})

	s.Test("reading past the end yields end of stream", func(t *testcase.T) {
		sub := subject.Get(t)
		_, err := streams.ReadAll[T](sub.Stream)
		t.Must.NoError(err)
		t.Must.True(sub.Stream.IsEnd())

		position := sub.Stream.Position()
		_, err = sub.Stream.Read()
		t.Must.ErrorIs(seqstream.ErrEndOfStream, err)
		t.Must.Equal(position, sub.Stream.Position())
	})

	s.Test("seeking follows the declared capabilities", func(t *testcase.T) {
		sub := subject.Get(t)
		if !sub.Stream.CanSeek() {
			_, err := sub.Stream.Seek(0)
			t.Must.ErrorIs(seqstream.ErrUnsupported, err)
			return
		}

		index := t.Random.IntBetween(0, len(sub.Expected))
		pos, err := sub.Stream.Seek(index)
		t.Must.NoError(err)
		t.Must.Equal(index, pos)
		t.Must.Equal(index, sub.Stream.Position())

		rest, err := streams.ReadAll[T](sub.Stream)
		t.Must.NoError(err)
		t.Must.Equal(len(sub.Expected)-index, len(rest))
		for i, v := range rest {
			t.Must.Equal(sub.Expected[index+i], v)
		}

		if !sub.Stream.CanGoBack() {
			return
		}
		pos, err = sub.Stream.Seek(0)
		t.Must.NoError(err)
		t.Must.Equal(0, pos)
		again, err := streams.ReadAll[T](sub.Stream)
		t.Must.NoError(err)
		t.Must.Equal(len(sub.Expected), len(again))
	})

	return s.AsSuite("ReadStream")
}

// WriteStreamSubject is a write stream, the way to read back what it stored after Close,
// and a maker of elements to write.
type WriteStreamSubject[T any] struct {
	Stream   streams.WriteStream[T]
	Written  func(testing.TB) []T
	MakeElem func(testing.TB) T
}

func WriteStream[T any](mk contract.Make[WriteStreamSubject[T]]) contract.Contract {
	s := testcase.NewSpec(nil)

	subject := testcase.Let(s, func(t *testcase.T) WriteStreamSubject[T] {
		return mk(t)
	})

	s.Test("written elements are stored in order and the position follows the writes", func(t *testcase.T) {
		sub := subject.Get(t)
		t.Must.NoError(sub.Stream.Open())

		var exp []T
		n := t.Random.IntBetween(0, 42)
		for i := 0; i < n; i++ {
			v := sub.MakeElem(t)
			pos, err := sub.Stream.Write(v)
			t.Must.NoError(err)
			exp = append(exp, v)
			t.Must.Equal(len(exp), pos)
			t.Must.Equal(len(exp), sub.Stream.Position())
		}
		t.Must.NoError(sub.Stream.Close())

		got := sub.Written(t)
		t.Must.Equal(len(exp), len(got))
		for i := range exp {
			t.Must.Equal(exp[i], got[i])
		}
	})

	s.Test("Close is idempotent", func(t *testcase.T) {
		sub := subject.Get(t)
		t.Must.NoError(sub.Stream.Open())
		_, err := sub.Stream.Write(sub.MakeElem(t))
		t.Must.NoError(err)
		t.Must.NoError(sub.Stream.Close())
		t.Must.NoError(sub.Stream.Close())
		t.Must.Equal(1, len(sub.Written(t)))
	})

	return s.AsSuite("WriteStream")
}
