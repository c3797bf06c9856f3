// Package iterators define the pull protocol shared by every sequence and cursor in seqstream.
//
// An Iterator decouples the producer of the elements from the consumer who uses them.
// Its length is not known until it is fully iterated, thus can range from zero to infinity,
// so consumers that need every element (Collect, Reduce, Last)
// only terminate when the underlying producer does.
package iterators

import (
	"io"

	"go.llib.dev/frameless/pkg/errorkit"
)

// Iterator is a cursor over a stream of values.
// Interface design inspired by https://golang.org/pkg/encoding/json/#Decoder
type Iterator[V any] interface {
	// Closer is required to make it able to cancel iterators where resources are being used behind the scene.
	// For all other cases, it should simply return nil.
	io.Closer
	// Err return the error cause.
	Err() error
	// Next will ensure that Value returns the next item when executed.
	// If the next value is not retrievable, Next should return false and ensure Err() will return the error cause.
	Next() bool
	// Value returns the current value in the iterator.
	// The action should be repeatable without side effects.
	Value() V
}

// Reduce folds the iterator values into a single result, and closes the iterator.
// The reducer is either a plain or an error returning function.
func Reduce[
	R, T any,
	FN func(R, T) R |
		func(R, T) (R, error),
](i Iterator[T], initial R, fn FN) (_ R, rErr error) {
	defer errorkit.Finish(&rErr, i.Close)
	fold := asFold[R, T](fn)
	acc := initial
	for i.Next() {
		next, err := fold(acc, i.Value())
		if err != nil {
			return acc, err
		}
		acc = next
	}
	return acc, i.Err()
}

func asFold[R, T any](fn any) func(R, T) (R, error) {
	if fold, ok := fn.(func(R, T) (R, error)); ok {
		return fold
	}
	plain := fn.(func(R, T) R)
	return func(acc R, v T) (R, error) { return plain(acc, v), nil }
}

// Collect drains the iterator into a slice, and closes it.
func Collect[T any](i Iterator[T]) (_ []T, rErr error) {
	defer errorkit.Finish(&rErr, i.Close)
	vs := make([]T, 0)
	for i.Next() {
		vs = append(vs, i.Value())
	}
	return vs, i.Err()
}

// Take reads up to n values.
// The iterator is left open, so the remaining values can still be consumed.
func Take[T any](i Iterator[T], n int) ([]T, error) {
	vs := make([]T, 0, n)
	for len(vs) < n && i.Next() {
		vs = append(vs, i.Value())
	}
	return vs, i.Err()
}

// Last drains the iterator and returns its final value, then closes it.
// found is false when the iterator had no values at all.
func Last[T any](i Iterator[T]) (last T, found bool, rErr error) {
	defer errorkit.Finish(&rErr, i.Close)
	for i.Next() {
		last, found = i.Value(), true
	}
	if err := i.Err(); err != nil {
		return *new(T), false, err
	}
	return last, found, nil
}
