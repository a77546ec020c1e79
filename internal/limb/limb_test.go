// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package limb

import (
	"crypto/rand"
	"math/big"
	"testing"
	"testing/quick"
)

// testParams exercises the kernel against two differently-shaped
// fields, the way the field-level tests exercise all five: the
// 56-bit/4-limb layout (Curve222's shape) and the classic
// 51-bit/5-limb layout (Curve25519's shape), so alias and
// ring-law properties are checked against more than one (D, digitBits)
// combination.
var testParams = []*Params{
	NewParams(222, 117, 4, 56, 54, 28),
	NewParams(255, 19, 5, 51, 51, 26),
}

func modulus(p *Params) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(p.N))
	m.Sub(m, big.NewInt(p.C))
	return m
}

func randomBigInt(t *testing.T, mod *big.Int) *big.Int {
	t.Helper()
	v, err := rand.Int(rand.Reader, mod)
	if err != nil {
		t.Fatalf("rand.Int: %v", err)
	}
	return v
}

func eltFromBig(p *Params, v *big.Int) *Elt {
	buf := make([]byte, p.PackedBytes)
	b := v.Bytes()
	for i := 0; i < len(b); i++ {
		buf[i] = b[len(b)-1-i]
	}
	e := p.New()
	p.Unpack(e, buf)
	return e
}

func bigFromElt(p *Params, x *Elt) *big.Int {
	dst := make([]byte, p.PackedBytes)
	p.Pack(dst, x)
	v := new(big.Int)
	for i := len(dst) - 1; i >= 0; i-- {
		v.Lsh(v, 8)
		v.Or(v, big.NewInt(int64(dst[i])))
	}
	return v
}

func TestAddMatchesBigInt(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		for i := 0; i < 50; i++ {
			a := randomBigInt(t, mod)
			b := randomBigInt(t, mod)

			ea, eb := eltFromBig(p, a), eltFromBig(p, b)
			dst := p.New()
			p.Add(dst, ea, eb)
			p.Normalize(dst, dst)

			want := new(big.Int).Add(a, b)
			want.Mod(want, mod)

			if got := bigFromElt(p, dst); got.Cmp(want) != 0 {
				t.Fatalf("N=%d: Add(%s, %s) = %s, want %s", p.N, a, b, got, want)
			}
		}
	}
}

func TestSubMatchesBigInt(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		scratch := p.Acquire()
		defer p.Release(scratch)
		for i := 0; i < 50; i++ {
			a := randomBigInt(t, mod)
			b := randomBigInt(t, mod)

			ea, eb := eltFromBig(p, a), eltFromBig(p, b)
			dst := p.New()
			p.Sub(dst, ea, eb, scratch)
			p.Normalize(dst, dst)

			want := new(big.Int).Sub(a, b)
			want.Mod(want, mod)

			if got := bigFromElt(p, dst); got.Cmp(want) != 0 {
				t.Fatalf("N=%d: Sub(%s, %s) = %s, want %s", p.N, a, b, got, want)
			}
		}
	}
}

func TestMulMatchesBigInt(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		scratch := p.Acquire()
		defer p.Release(scratch)
		for i := 0; i < 50; i++ {
			a := randomBigInt(t, mod)
			b := randomBigInt(t, mod)

			ea, eb := eltFromBig(p, a), eltFromBig(p, b)
			dst := p.New()
			p.Mul(dst, ea, eb, scratch)
			p.Normalize(dst, dst)

			want := new(big.Int).Mul(a, b)
			want.Mod(want, mod)

			if got := bigFromElt(p, dst); got.Cmp(want) != 0 {
				t.Fatalf("N=%d: Mul(%s, %s) = %s, want %s", p.N, a, b, got, want)
			}
		}
	}
}

func TestSquareMatchesMul(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		scratch := p.Acquire()
		defer p.Release(scratch)
		for i := 0; i < 20; i++ {
			a := randomBigInt(t, mod)
			ea := eltFromBig(p, a)

			viaSquare := p.New()
			p.Square(viaSquare, ea, scratch)
			p.Normalize(viaSquare, viaSquare)

			viaMul := p.New()
			p.Mul(viaMul, ea, ea, scratch)
			p.Normalize(viaMul, viaMul)

			if p.Equal(viaSquare, viaMul) != 1 {
				t.Fatalf("N=%d: Square(%s) != Mul(%s, %s)", p.N, a, a, a)
			}
		}
	}
}

func TestNegIsZeroMinusX(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		scratch := p.Acquire()
		defer p.Release(scratch)
		for i := 0; i < 20; i++ {
			a := randomBigInt(t, mod)
			ea := eltFromBig(p, a)

			viaNeg := p.New()
			p.Neg(viaNeg, ea, scratch)
			p.Normalize(viaNeg, viaNeg)

			viaSub := p.New()
			p.Zero(viaSub)
			p.Sub(viaSub, viaSub, ea, scratch)
			p.Normalize(viaSub, viaSub)

			if p.Equal(viaNeg, viaSub) != 1 {
				t.Fatalf("N=%d: Neg(%s) != 0-%s", p.N, a, a)
			}
		}
	}
}

func TestAddCommutativeAndAssociative(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		for i := 0; i < 20; i++ {
			a, b, c := randomBigInt(t, mod), randomBigInt(t, mod), randomBigInt(t, mod)
			ea, eb, ec := eltFromBig(p, a), eltFromBig(p, b), eltFromBig(p, c)

			ab := p.New()
			p.Add(ab, ea, eb)
			ba := p.New()
			p.Add(ba, eb, ea)
			p.Normalize(ab, ab)
			p.Normalize(ba, ba)
			if p.Equal(ab, ba) != 1 {
				t.Fatalf("N=%d: add not commutative", p.N)
			}

			abc1 := p.New()
			p.Add(abc1, ab, ec)
			bc := p.New()
			p.Add(bc, eb, ec)
			abc2 := p.New()
			p.Add(abc2, ea, bc)
			p.Normalize(abc1, abc1)
			p.Normalize(abc2, abc2)
			if p.Equal(abc1, abc2) != 1 {
				t.Fatalf("N=%d: add not associative", p.N)
			}
		}
	}
}

func TestMulDistributesOverAdd(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		scratch := p.Acquire()
		defer p.Release(scratch)
		for i := 0; i < 20; i++ {
			a, b, c := randomBigInt(t, mod), randomBigInt(t, mod), randomBigInt(t, mod)
			ea, eb, ec := eltFromBig(p, a), eltFromBig(p, b), eltFromBig(p, c)

			bc := p.New()
			p.Add(bc, eb, ec)
			lhs := p.New()
			p.Mul(lhs, ea, bc, scratch)
			p.Normalize(lhs, lhs)

			ab := p.New()
			p.Mul(ab, ea, eb, scratch)
			ac := p.New()
			p.Mul(ac, ea, ec, scratch)
			rhs := p.New()
			p.Add(rhs, ab, ac)
			p.Normalize(rhs, rhs)

			if p.Equal(lhs, rhs) != 1 {
				t.Fatalf("N=%d: mul does not distribute over add", p.N)
			}
		}
	}
}

// TestAliasSafety checks property 9 from the testable-properties list:
// every in-place kernel gives the same result whether dst aliases its
// inputs or not.
func TestAliasSafety(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		scratch := p.Acquire()
		defer p.Release(scratch)

		a := eltFromBig(p, randomBigInt(t, mod))
		b := eltFromBig(p, randomBigInt(t, mod))

		distinct := p.New()
		p.Add(distinct, a, b)
		p.Normalize(distinct, distinct)

		aliasedDst := p.Clone(a)
		p.Add(aliasedDst, aliasedDst, b)
		p.Normalize(aliasedDst, aliasedDst)
		if p.Equal(distinct, aliasedDst) != 1 {
			t.Fatalf("N=%d: Add not alias-safe on first operand", p.N)
		}

		mulDistinct := p.New()
		p.Mul(mulDistinct, a, b, scratch)
		p.Normalize(mulDistinct, mulDistinct)

		mulAliased := p.Clone(a)
		p.Mul(mulAliased, mulAliased, b, scratch)
		p.Normalize(mulAliased, mulAliased)
		if p.Equal(mulDistinct, mulAliased) != 1 {
			t.Fatalf("N=%d: Mul not alias-safe on first operand", p.N)
		}

		sqDistinct := p.New()
		p.Square(sqDistinct, a, scratch)
		p.Normalize(sqDistinct, sqDistinct)

		sqAliased := p.Clone(a)
		p.Square(sqAliased, sqAliased, scratch)
		p.Normalize(sqAliased, sqAliased)
		if p.Equal(sqDistinct, sqAliased) != 1 {
			t.Fatalf("N=%d: Square not alias-safe", p.N)
		}

		negDistinct := p.New()
		p.Neg(negDistinct, a, scratch)
		p.Normalize(negDistinct, negDistinct)

		negAliased := p.Clone(a)
		p.Neg(negAliased, negAliased, scratch)
		p.Normalize(negAliased, negAliased)
		if p.Equal(negDistinct, negAliased) != 1 {
			t.Fatalf("N=%d: Neg not alias-safe", p.N)
		}
	}
}

// TestNormalizeIdempotent checks property 1: normalize twice equals
// normalize once, and every limb is within its digit budget with no
// residual top-limb carry-out afterward.
func TestNormalizeIdempotent(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		for i := 0; i < 20; i++ {
			a := randomBigInt(t, mod)
			ea := eltFromBig(p, a)

			once := p.Clone(ea)
			p.Normalize(once, once)
			twice := p.Clone(once)
			p.Normalize(twice, twice)

			if p.Equal(once, twice) != 1 {
				t.Fatalf("N=%d: normalize not idempotent", p.N)
			}
			for idx, l := range once.Limbs {
				width := p.DigitBits
				if idx == p.D-1 {
					width = p.HighDigitBits
				}
				if l>>uint(width) != 0 {
					t.Fatalf("N=%d: limb %d out of range after normalize: %#x", p.N, idx, l)
				}
			}
		}
	}
}

// TestEqualAndIsZero checks property 8 (folded comparison, no early
// exit) indirectly: IsZero must report zero only for zero, and Equal
// must report 1 for identical operands and 0 once a single low bit of
// one of them is flipped.
func TestEqualAndIsZero(t *testing.T) {
	for _, p := range testParams {
		zero := p.New()
		if p.IsZero(zero) != 1 {
			t.Fatalf("N=%d: IsZero(0) != 1", p.N)
		}
		if p.Equal(zero, zero) != 1 {
			t.Fatalf("N=%d: Equal(0, 0) != 1", p.N)
		}

		mod := modulus(p)
		a := randomBigInt(t, mod)
		ea := eltFromBig(p, a)
		p.Normalize(ea, ea)
		if p.IsZero(ea) == 1 && a.Sign() != 0 {
			t.Fatalf("N=%d: IsZero false positive for %s", p.N, a)
		}

		eb := p.Clone(ea)
		// Flip one bit deep in the limbs; Equal must report 0.
		eb.Limbs[0] ^= 1
		if p.Equal(ea, eb) == 1 {
			t.Fatalf("N=%d: Equal false positive after bit flip", p.N)
		}
	}
}

// TestDestroyScrubs checks property 10: after Destroy, every limb of
// the element is all-ones.
func TestDestroyScrubs(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		ea := eltFromBig(p, randomBigInt(t, mod))
		p.Destroy(ea)
		for i, l := range ea.Limbs {
			if l != ^uint64(0) {
				t.Fatalf("N=%d: limb %d not scrubbed: %#x", p.N, i, l)
			}
		}
	}
}

func TestScratchpadReleaseScrubs(t *testing.T) {
	for _, p := range testParams {
		s := p.Acquire()
		for i := range s.D0 {
			s.D0[i] = 0x1234
			s.D1[i] = 0x5678
			s.D2[i] = 0x9abc
		}
		p.Release(s)
		for _, buf := range [][]uint64{s.D0, s.D1, s.D2} {
			for _, v := range buf {
				if v != ^uint64(0) {
					t.Fatalf("N=%d: scratchpad buffer not scrubbed after Release", p.N)
				}
			}
		}
	}
}

// TestRoundTripQuick exercises property 7 (pack/unpack round trip)
// across many random values via testing/quick, generalizing the
// teacher's own unfulfilled "TODO quickcheck" into an actual check.
func TestRoundTripQuick(t *testing.T) {
	for _, p := range testParams {
		mod := modulus(p)
		f := func(seed uint32) bool {
			v := new(big.Int).SetUint64(uint64(seed))
			v.Mod(v, mod)
			ea := eltFromBig(p, v)
			p.Normalize(ea, ea)

			dst := make([]byte, p.PackedBytes)
			p.Pack(dst, ea)

			back := p.New()
			p.Unpack(back, dst)
			p.Normalize(back, back)

			return p.Equal(ea, back) == 1
		}
		if err := quick.Check(f, &quick.Config{MaxCount: 200}); err != nil {
			t.Fatalf("N=%d: round-trip property failed: %v", p.N, err)
		}
	}
}
