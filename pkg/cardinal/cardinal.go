// Package cardinal implements lengths that are either a finite natural number or countable infinity (ℵ₀).
package cardinal

import (
	"fmt"
	"strconv"
)

// Cardinal is a length value.
// The zero value is Finite(0).
type Cardinal struct {
	n     int
	aleph bool
}

// Aleph0 is the countably infinite cardinal.
var Aleph0 = Cardinal{aleph: true}

// Finite returns the cardinal of a finite length.
// A negative n is a programming error.
func Finite(n int) Cardinal {
	if n < 0 {
		panic(fmt.Sprintf("cardinal: negative finite value %d", n))
	}
	return Cardinal{n: n}
}

func (c Cardinal) IsFinite() bool { return !c.aleph }

func (c Cardinal) IsAleph0() bool { return c.aleph }

// Value returns the finite value.
// ok is false for Aleph0.
func (c Cardinal) Value() (n int, ok bool) {
	if c.aleph {
		return 0, false
	}
	return c.n, true
}

// Add returns c + o. Aleph0 absorbs on either side.
func (c Cardinal) Add(o Cardinal) Cardinal {
	if c.aleph || o.aleph {
		return Aleph0
	}
	return Cardinal{n: c.n + o.n}
}

// Sub returns c - k.
// Aleph0 - k is Aleph0, and subtracting past zero is a programming error.
func (c Cardinal) Sub(k int) Cardinal {
	if c.aleph {
		return Aleph0
	}
	if k < 0 || c.n < k {
		panic(fmt.Sprintf("cardinal: %d - %d underflows", c.n, k))
	}
	return Cardinal{n: c.n - k}
}

// Compare returns -1, 0 or +1 depending on whether c is less, equal or greater than o.
func (c Cardinal) Compare(o Cardinal) int {
	switch {
	case c.aleph && o.aleph:
		return 0
	case c.aleph:
		return 1
	case o.aleph:
		return -1
	case c.n < o.n:
		return -1
	case c.n > o.n:
		return 1
	default:
		return 0
	}
}

func (c Cardinal) Less(o Cardinal) bool { return c.Compare(o) < 0 }

func (c Cardinal) Equal(o Cardinal) bool { return c.Compare(o) == 0 }

// Contains reports whether index i is within [0, c).
func (c Cardinal) Contains(i int) bool {
	if i < 0 {
		return false
	}
	return c.aleph || i < c.n
}

func (c Cardinal) String() string {
	if c.aleph {
		return "ℵ₀"
	}
	return strconv.Itoa(c.n)
}

// Min returns the smaller of the two cardinals.
func Min(a, b Cardinal) Cardinal {
	if b.Less(a) {
		return b
	}
	return a
}
