// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"math/big"

	"github.com/gtank/pmfield/internal/ladder"
	"github.com/gtank/pmfield/internal/limb"
)

// Params describes one concrete pseudo-Mersenne field, combining the
// limb-layout parameters with the precompiled power ladders that
// implement inversion, square roots, and Legendre symbols for that
// field. Every ladder is derived once, here, from (n, c) via math/big;
// no field element arithmetic at runtime ever touches math/big.
type Params struct {
	*limb.Params

	PMod4 int64
	PMod8 int64

	inverseLadder        []ladder.Step
	legendreLadder        []ladder.Step
	sqrtLadder            []ladder.Step
	quarticLegendreLadder []ladder.Step // nil unless PMod4 == 1
	invSqrtLadder         []ladder.Step // nil when PMod8 == 5 (InvSqrt is composed instead)

	sqrtCorrection *limb.Elt // 2^((p-1)/4), only populated when PMod8 == 5
}

// newField builds the parameter table for p = 2^n - c from a literal
// row (d, digitBits, highDigitBits, mulDigitBits): the "parameter
// table" the design notes describe, rather than deriving limb widths
// from n at runtime.
func newField(n int, c int64, d, digitBits, highDigitBits, mulDigitBits int) *Params {
	lp := limb.NewParams(n, c, d, digitBits, highDigitBits, mulDigitBits)

	p := new(big.Int).Lsh(big.NewInt(1), uint(n))
	p.Sub(p, big.NewInt(c))
	pm1 := new(big.Int).Sub(p, big.NewInt(1))

	f := &Params{
		Params: lp,
		PMod4:  new(big.Int).Mod(p, big.NewInt(4)).Int64(),
		PMod8:  new(big.Int).Mod(p, big.NewInt(8)).Int64(),
	}

	invExp := new(big.Int).Sub(p, big.NewInt(2))
	legExp := new(big.Int).Rsh(pm1, 1) // (p-1)/2

	f.inverseLadder = ladder.Build(invExp)
	f.legendreLadder = ladder.Build(legExp)

	switch {
	case f.PMod4 == 3:
		sqrtExp := new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(1)), 2) // (p+1)/4
		f.sqrtLadder = ladder.Build(sqrtExp)
		invSqrtExp := new(big.Int).Rsh(new(big.Int).Sub(new(big.Int).Mul(p, big.NewInt(3)), big.NewInt(5)), 2) // (3p-5)/4
		f.invSqrtLadder = ladder.Build(invSqrtExp)
	case f.PMod8 == 5:
		sqrtExp := new(big.Int).Rsh(new(big.Int).Add(p, big.NewInt(3)), 3) // (p+3)/8
		f.sqrtLadder = ladder.Build(sqrtExp)
		quarticExp := new(big.Int).Rsh(pm1, 2) // (p-1)/4
		f.quarticLegendreLadder = ladder.Build(quarticExp)
		// InvSqrt is composed from Sqrt+Inv for this family (spec's
		// "composed variant" for p == 5 mod 8); see InvSqrt in
		// ladder_ops.go.
	default:
		panic("field: modulus is neither 3 mod 4 nor 5 mod 8")
	}

	if f.quarticLegendreLadder != nil {
		two := lp.New()
		lp.SetInt64(two, 2)
		f.sqrtCorrection = runLadderRaw(lp, f.quarticLegendreLadder, two)
	}

	return f
}

// runLadderRaw replays a compiled ladder directly against the limb
// kernel, used at init time before any *Element wrapper exists.
func runLadderRaw(p *limb.Params, steps []ladder.Step, base *limb.Elt) *limb.Elt {
	scratch := p.Acquire()
	defer p.Release(scratch)

	acc := p.Clone(base)
	for _, step := range steps {
		for i := 0; i < step.Squarings; i++ {
			p.Square(acc, acc, scratch)
		}
		if step.Multiply {
			p.Mul(acc, acc, base, scratch)
		}
	}
	p.Normalize(acc, acc)
	return acc
}

// The five concrete fields shipped by this package. Curve25519 is
// 2^255-19, the field underlying the teacher repository and every
// other_examples grounding file retrieved for this package; the other
// four are the fields spec.md names explicitly.
var (
	// Curve25519 is the field GF(2^255 - 19).
	Curve25519 = newField(255, 19, 5, 51, 51, 26)

	// Curve222 is the field GF(2^222 - 117).
	Curve222 = newField(222, 117, 4, 56, 54, 28)

	// Curve383 is the field GF(2^383 - 187).
	Curve383 = newField(383, 187, 7, 55, 53, 28)

	// Curve414 is the field GF(2^414 - 17).
	Curve414 = newField(414, 17, 8, 52, 50, 26)

	// Curve511 is the field GF(2^511 - 187).
	Curve511 = newField(511, 187, 9, 57, 55, 29)
)
