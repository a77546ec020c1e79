// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

// Add sets e = a + b and returns e. a and b must be loose values from
// the same field as e; the result is itself loose and must be
// normalized before comparison, serialization, or sign extraction.
func (e *Element) Add(a, b *Element) *Element {
	e.p.Params.Add(e.e, a.e, b.e)
	return e
}

// AddInt64 sets e = a + v, where v is a small two's-complement addend
// within [Params.AddMin, Params.AddMax), and returns e.
func (e *Element) AddInt64(a *Element, v int64) *Element {
	e.p.Params.AddScalar(e.e, a.e, v)
	return e
}

// Sub sets e = a - b and returns e.
func (e *Element) Sub(a, b *Element) *Element {
	scratch := e.p.Acquire()
	defer e.p.Release(scratch)
	e.p.Params.Sub(e.e, a.e, b.e, scratch)
	return e
}

// SubInt64 sets e = a - v and returns e.
func (e *Element) SubInt64(a *Element, v int64) *Element {
	e.p.Params.SubScalar(e.e, a.e, v)
	return e
}

// Neg sets e = -a and returns e.
func (e *Element) Neg(a *Element) *Element {
	scratch := e.p.Acquire()
	defer e.p.Release(scratch)
	e.p.Params.Neg(e.e, a.e, scratch)
	return e
}

// Mul sets e = a * b and returns e.
func (e *Element) Mul(a, b *Element) *Element {
	scratch := e.p.Acquire()
	defer e.p.Release(scratch)
	e.p.Params.Mul(e.e, a.e, b.e, scratch)
	return e
}

// MulInt64 sets e = a * v, where v is a small signed multiplier within
// [Params.MulMin, Params.MulMax), and returns e.
func (e *Element) MulInt64(a *Element, v int64) *Element {
	scratch := e.p.Acquire()
	defer e.p.Release(scratch)
	e.p.Params.MulScalar(e.e, a.e, v, scratch)
	return e
}

// Square sets e = a * a and returns e.
func (e *Element) Square(a *Element) *Element {
	scratch := e.p.Acquire()
	defer e.p.Release(scratch)
	e.p.Params.Square(e.e, a.e, scratch)
	return e
}

// Div sets e = a / b and returns e. b must be nonzero.
func (e *Element) Div(a, b *Element) *Element {
	inv := NewElement(e.p).Inv(b)
	return e.Mul(a, inv)
}

// DivInt64 sets e = a / v, where v is a small nonzero signed constant,
// and returns e.
func (e *Element) DivInt64(a *Element, v int64) *Element {
	abs := v
	if abs < 0 {
		abs = -abs
	}
	mag := NewElement(e.p).SetInt64(uint64(abs))
	inv := NewElement(e.p).Inv(mag)
	if v < 0 {
		inv.Neg(inv)
	}
	return e.Mul(a, inv)
}

// IsZero returns 1 if e represents zero, 0 otherwise. e may be loose;
// IsZero normalizes a throwaway copy rather than e itself, so calling
// it never mutates the receiver or requires the caller to normalize
// first.
func (e *Element) IsZero() int {
	t := e.p.Clone(e.e)
	e.p.Params.Normalize(t, t)
	return e.p.Params.IsZero(t)
}

// Equal returns 1 if e and x represent the same value, 0 otherwise.
// Both may be loose; Equal normalizes throwaway copies of each rather
// than mutating either receiver.
func (e *Element) Equal(x *Element) int {
	te := e.p.Clone(e.e)
	e.p.Params.Normalize(te, te)
	tx := e.p.Clone(x.e)
	e.p.Params.Normalize(tx, tx)
	return e.p.Params.Equal(te, tx)
}

// Select sets e = a if cond == 1, e = b if cond == 0, and returns e.
func (e *Element) Select(a, b *Element, cond int) *Element {
	e.p.Params.Select(e.e, a.e, b.e, cond)
	return e
}

// Sign returns the low bit (0 or 1) of e's value. e may be loose; Sign
// normalizes a throwaway copy rather than e itself.
func (e *Element) Sign() int {
	t := e.p.Clone(e.e)
	e.p.Params.Normalize(t, t)
	return e.p.Params.Sign(t)
}

// Signum returns -1, 0, or 1: -1 if e's sign bit is 1 and e is
// nonzero, 0 if e is zero, 1 if e's sign bit is 0 and e is nonzero.
func (e *Element) Signum() int {
	if e.IsZero() == 1 {
		return 0
	}
	if e.Sign() == 1 {
		return -1
	}
	return 1
}

// Abs sets e to the normalized absolute value of x and returns e.
func (e *Element) Abs(x *Element) *Element {
	scratch := e.p.Acquire()
	defer e.p.Release(scratch)
	e.p.Params.Abs(e.e, x.e, scratch)
	return e
}

// Mask sets e to x with every value bit at position >= bit cleared,
// and returns e.
func (e *Element) Mask(x *Element, bit int) *Element {
	e.Set(x)
	e.p.Params.Mask(e.e, bit)
	return e
}

// Or sets e = e | other, limb by limb, and returns e.
func (e *Element) Or(other *Element) *Element {
	e.p.Params.Or(e.e, other.e)
	return e
}

// Bit returns the value (0 or 1) of bit index n of e's value. e may be
// loose; Bit normalizes a throwaway copy rather than e itself.
func (e *Element) Bit(n int) int {
	t := e.p.Clone(e.e)
	e.p.Params.Normalize(t, t)
	return e.p.Params.Bit(t, n)
}
