// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"github.com/gtank/pmfield/internal/ladder"
	"github.com/gtank/pmfield/internal/limb"
)

// runLadder replays a compiled ladder against e's field, starting from
// base, and stores the result in e. scratch is acquired once and reused
// across every squaring and multiply the ladder calls for.
func (e *Element) runLadder(steps []ladder.Step, base *Element) *Element {
	scratch := e.p.Acquire()
	defer e.p.Release(scratch)

	ops := ladder.Ops[*limb.Elt]{
		Init: func(b *limb.Elt) *limb.Elt {
			return e.p.Clone(b)
		},
		Square: func(acc *limb.Elt) {
			e.p.Params.Square(acc, acc, scratch)
		},
		Multiply: func(acc *limb.Elt, b *limb.Elt) {
			e.p.Params.Mul(acc, acc, b, scratch)
		},
	}
	result := ladder.Run(steps, base.e, ops)
	e.e = result
	return e
}

// Inv sets e = 1/a and returns e, using the fixed addition-chain ladder
// for the exponent p-2 compiled once at field-table init time (Fermat's
// little theorem). a may alias e. a must be nonzero; Inv of zero
// returns zero, matching the ladder's natural behavior rather than
// signaling an error, per spec section 7's undefined-by-contract
// treatment of degenerate inputs.
func (e *Element) Inv(a *Element) *Element {
	return e.runLadder(e.p.inverseLadder, a)
}

// Legendre sets e to the Legendre symbol of a, a raised to (p-1)/2: 1
// if a is a nonzero quadratic residue, -1 (i.e. p-1) if a is a nonzero
// non-residue, 0 if a is zero. The result is left loose; callers that
// need the literal values 1/0/-1 normalize and compare.
func (e *Element) Legendre(a *Element) *Element {
	return e.runLadder(e.p.legendreLadder, a)
}

// LegendreQuartic sets e to the quartic residue character of a, a
// raised to (p-1)/4. It is only meaningful for fields where p == 1 mod
// 4 (equivalently p == 5 mod 8 here, the only p == 1 mod 4 family this
// package ships); calling it on a p == 3 mod 4 field panics, since no
// such ladder was compiled for that family.
func (e *Element) LegendreQuartic(a *Element) *Element {
	if e.p.quarticLegendreLadder == nil {
		panic("field: LegendreQuartic is undefined for this field's modulus")
	}
	return e.runLadder(e.p.quarticLegendreLadder, a)
}

// Sqrt sets e to a square root of a and returns e. The result is
// correct (up to sign, per Abs/Signum convention) only when a is a
// quadratic residue; callers that need to detect non-residues should
// check Legendre first, as spec section 7 leaves Sqrt's behavior on
// non-residues unspecified.
//
// For p == 3 mod 4 fields this is the textbook a^((p+1)/4) ladder. For
// p == 5 mod 8 fields it is the Atkin/Lucas-style construction: compute
// a candidate root with the (p+3)/8 ladder, then branch-free correct it
// by the precomputed constant 2^((p-1)/4) whenever the candidate's
// square lands on -a instead of a.
func (e *Element) Sqrt(a *Element) *Element {
	switch {
	case e.p.PMod4 == 3:
		return e.runLadder(e.p.sqrtLadder, a)
	case e.p.PMod8 == 5:
		return e.sqrt5mod8(a)
	default:
		panic("field: unreachable modulus class")
	}
}

// sqrt5mod8 implements the p == 5 mod 8 square-root construction: let
// c = a^((p+3)/8). If c^2 == a, c is the answer; otherwise c^2 == -a,
// and multiplying c by the fixed constant sqrtCorrection = 2^((p-1)/4)
// (a primitive fourth root of unity) yields a root, selected branch-free
// on whether the residual c^2 - a is zero.
func (e *Element) sqrt5mod8(a *Element) *Element {
	candidate := NewElement(e.p).runLadder(e.p.sqrtLadder, a)

	check := NewElement(e.p).Square(candidate)
	check.Sub(check, a).Normalize()
	needsCorrection := 1 ^ check.IsZero()

	scratch := e.p.Acquire()
	corrected := NewElement(e.p)
	e.p.Params.Mul(corrected.e, candidate.e, e.p.sqrtCorrection, scratch)
	e.p.Release(scratch)

	e.Select(corrected, candidate, needsCorrection)
	return e
}

// InvSqrt sets e to 1/sqrt(a) and returns e. Like Sqrt, its result is
// only meaningful when a is a nonzero quadratic residue.
//
// For p == 3 mod 4 fields this uses the dedicated ladder for exponent
// (3p-5)/4. For p == 5 mod 8 fields, spec section 6 calls this "a
// composed variant... with an analogous correction"; rather than
// compiling a second dedicated ladder this package composes it directly
// as Inv of Sqrt: Sqrt already applies the quartic-residue correction,
// so no separate derivation is needed.
func (e *Element) InvSqrt(a *Element) *Element {
	if e.p.PMod4 == 3 {
		return e.runLadder(e.p.invSqrtLadder, a)
	}
	e.Sqrt(a)
	return e.Inv(e)
}
