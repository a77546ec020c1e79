// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/gtank/pmfield/internal/limb"
)

// Element is an element of a pseudo-Mersenne field, in either the loose
// or normalized regime described in spec.md section 3. The zero value
// of Element is not usable; construct one with NewElement, Zero, One,
// or one of the other factories below, all of which bind the element to
// a specific *Params for its lifetime.
//
// Every mutator method returns the receiver, so calls chain the way
// they do throughout this package's teacher lineage (e.g.
// dst.Mul(a, b).Normalize()).
type Element struct {
	p *Params
	e *limb.Elt
}

// NewElement returns a new Element bound to p, initialized to zero.
func NewElement(p *Params) *Element {
	return &Element{p: p, e: p.New()}
}

// Zero sets e to 0 and returns e.
func (e *Element) Zero() *Element {
	e.p.Zero(e.e)
	return e
}

// One sets e to 1 and returns e.
func (e *Element) One() *Element {
	e.p.SetInt64(e.e, 1)
	return e
}

// MinusOne sets e to p-1 and returns e.
func (e *Element) MinusOne() *Element {
	e.Zero()
	e.p.SubScalar(e.e, e.e, 1)
	e.p.Normalize(e.e, e.e)
	return e
}

// Half sets e to the field element 1/2 and returns e. Every field in
// this package has odd p, so 1/2 is always well defined; Half computes
// it as the inverse of the literal 2 rather than (p+1)/2 directly, so
// it goes through the same ladder path as every other inversion.
func (e *Element) Half() *Element {
	e.SetInt64(2)
	return e.Inv(e)
}

// Params returns the field parameters e belongs to.
func (e *Element) Params() *Params {
	return e.p
}

// Clone returns a new Element bound to the same field as e, holding an
// independent copy of e's value (loose or normalized, as e currently
// is).
func (e *Element) Clone() *Element {
	return &Element{p: e.p, e: e.p.Clone(e.e)}
}

// Set sets e = x and returns e. e and x must belong to the same field.
func (e *Element) Set(x *Element) *Element {
	copy(e.e.Limbs, x.e.Limbs)
	return e
}

// SetInt64 sets e to the small non-negative constant v and returns e.
func (e *Element) SetInt64(v uint64) *Element {
	e.p.SetInt64(e.e, v)
	return e
}

// Random sets e to a uniformly-sampled value read from rnd, masked to
// the field's bit width, and returns e. On a read error it returns nil
// and the error.
//
// Random does not reject values in [p, 2^n); those reduce onto [0, c),
// so the distribution is very slightly biased toward those small values
// (bias at most c/2^n, negligible for every field in this package); curve-level
// consumers that need unbiased scalars correct for this themselves, per
// spec.md section 9.
func (e *Element) Random(rnd io.Reader) (*Element, error) {
	buf := make([]byte, e.p.PackedBytes)
	if _, err := io.ReadFull(rnd, buf); err != nil {
		return nil, err
	}
	e.p.Unpack(e.e, buf)
	e.p.Mask(e.e, e.p.N)
	return e, nil
}

// RandomElement returns a new Element bound to p, sampled from
// crypto/rand.
func RandomElement(p *Params) (*Element, error) {
	return NewElement(p).Random(rand.Reader)
}

// Destroy overwrites every limb of e with all-ones bits, per spec.md
// section 3's "destroyed by explicit scrubbing" lifecycle step. e must
// not be used afterward.
func (e *Element) Destroy() {
	e.p.Destroy(e.e)
}

// Hex returns the lowercase hex encoding of e's canonical byte
// representation. e may be loose; see Bytes.
func (e *Element) Hex() string {
	return hex.EncodeToString(e.Bytes())
}

// Normalize reduces e to the canonical representative in [0, p) and
// returns e. Every other mutator on Element may leave its result in the
// loose representation; Normalize is the only way to reduce e itself in
// place, for callers that want to pin a value to its canonical form
// rather than let Equal/Sign/Bit/Bytes normalize a throwaway copy on
// every call.
func (e *Element) Normalize() *Element {
	e.p.Params.Normalize(e.e, e.e)
	return e
}
