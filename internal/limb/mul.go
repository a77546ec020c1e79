// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package limb

import "math/bits"

// Mul sets dst = a * b. dst may alias a and/or b.
//
// Each input limb is split into a low and high half of MulDigitBits
// bits (spec section 4.3's "Split"), every cross-product of the 2D
// half-limbs is formed with bits.Mul64 and accumulated into a 2D-wide
// (lo, hi) pair per output position, then the low D positions and the
// high D positions are split apart at bit N: the high half is
// multiplied by C and folded back into the low half via the pseudo-
// Mersenne identity 2^N == C (mod p), exactly as the grounding
// implementation's FeMul does for the fixed D=5 case, generalized here
// to an arbitrary limb count D.
func (p *Params) Mul(dst, a, b *Elt, scratch *Scratchpad) {
	p.mulGeneric(dst, a.Limbs, b.Limbs, scratch)
}

// Square sets dst = x * x. dst may alias x.
//
// Square passes x as both operands of mulGeneric. No symmetry shortcut
// is taken: each cross term a[i]*a[j] with i != j is formed twice, once
// for (i, j) and once for (j, i), exactly as in Mul.
func (p *Params) Square(dst, x *Elt, scratch *Scratchpad) {
	p.mulGeneric(dst, x.Limbs, x.Limbs, scratch)
}

// split breaks limb v (width bits of value) into its low and high
// MulDigitBits-wide halves.
func (p *Params) split(v uint64) (lo, hi uint64) {
	return v & p.highMulMask, v >> uint(p.MulDigitBits)
}

// mulGeneric implements the shared body of Mul and Square: schoolbook
// half-limb multiplication with deferred pseudo-Mersenne reduction.
func (p *Params) mulGeneric(dst *Elt, a, b []uint64, scratch *Scratchpad) {
	d := p.D
	halves := 2 * d

	// Split both operands into half-limbs: index 2*i is the low half of
	// limb i, index 2*i+1 is the high half.
	ah := make([]uint64, halves)
	bh := make([]uint64, halves)
	for i := 0; i < d; i++ {
		ah[2*i], ah[2*i+1] = p.split(a[i])
		bh[2*i], bh[2*i+1] = p.split(b[i])
	}

	// Accumulate every half-limb cross product into a 2*halves-wide
	// (lo, hi) accumulator indexed by the sum of the two half-limb
	// positions, i.e. the product's weight in units of 2^MulDigitBits.
	accLo := make([]uint64, 2*halves)
	accHi := make([]uint64, 2*halves)
	for i := 0; i < halves; i++ {
		for j := 0; j < halves; j++ {
			pos := i + j
			hi, lo := bits.Mul64(ah[i], bh[j])
			addWithCarry(accLo, accHi, pos, lo, hi)
		}
	}

	// Re-pack each pair of half-limb accumulator slots (2*i, 2*i+1) into
	// a full limb-wide digit, propagating the half-limb carries.
	d2 := make([]uint64, 2*d)
	var carry uint64
	for i := 0; i < 2*d; i++ {
		v := accLo[i] + carry
		carryOut := accHi[i]
		if v < carry {
			carryOut++
		}
		d2[i] = v & p.highMulMask
		carry = (v >> uint(p.MulDigitBits)) | (carryOut << uint(64-p.MulDigitBits))
	}
	// Fold any remaining carry beyond the last half-limb slot back into
	// d2[2*d-1]; it represents a tiny multiple of 2^(2*d*MulDigitBits)
	// that is within the high half handled below.
	d2[2*d-1] += carry

	// Reassemble d2's half-limb pairs into D full-width limbs forming
	// the 2D-limb-wide product d[0..2D-1].
	wide := make([]uint64, 2*d)
	for i := 0; i < d; i++ {
		wide[i] = d2[2*i] | (d2[2*i+1] << uint(p.MulDigitBits))
	}
	for i := d; i < 2*d; i++ {
		wide[i] = d2[2*i] | (d2[2*i+1] << uint(p.MulDigitBits))
	}

	// Split wide at bit N into a low half l[0..D-1] and a high half
	// h[0..D-1], the high half reassembled by shifting wide's bits at
	// position N down to position 0.
	low := scratch.D0
	high := scratch.D1
	p.splitWideAtN(wide, low, high)

	// Multiply the high half by C and re-accumulate it into the low
	// half using the same add/propagate shape as the add kernel.
	hm := scratch.D2
	p.mulByConstant(hm, high, uint64(p.C))

	for i := 0; i < d; i++ {
		dst.Limbs[i] = low[i]
	}
	p.addLimbs(dst.Limbs, hm)
	p.propagate(dst.Limbs)
}

// addWithCarry adds (lo, hi) into the accumulator pair at position pos,
// rippling any overflow into pos+1, pos+2, ... as needed. Because every
// half-limb product is bounded by 2*MulDigitBits bits and at most 2D
// products land on the same position, the ripple never needs to travel
// more than a few slots in practice, but it is written to travel as far
// as necessary for correctness regardless of D.
func addWithCarry(accLo, accHi []uint64, pos int, lo, hi uint64) {
	sum := accLo[pos] + lo
	carry := hi
	if sum < accLo[pos] {
		carry++
	}
	accLo[pos] = sum
	accHi[pos] += carry
	if accHi[pos] < carry {
		// extremely rare further carry into the next accumulator slot's
		// low word; propagate it.
		i := pos + 1
		for i < len(accLo) {
			accLo[i]++
			if accLo[i] != 0 {
				break
			}
			i++
		}
	}
}

// splitWideAtN splits the 2D-limb product wide into a low half (the low
// N bits, top limb masked to HighDigitBits) and a high half (everything
// from bit N up, reassembled starting at limb 0 of high).
func (p *Params) splitWideAtN(wide, low, high []uint64) {
	d := p.D
	for i := 0; i < d; i++ {
		low[i] = wide[i]
	}
	low[d-1] &= p.HighDigitMask

	// The high half begins at limb d-1's bits above HighDigitBits and
	// continues through wide[d..2d-1]. Reassemble it as a D-limb value
	// with the same digit widths as the main representation by shifting
	// the whole upper region down by N bits, via a bit-accumulator
	// carried across limb boundaries (digit widths need not divide 64,
	// mirroring Unpack's byte-straddling logic).
	acc := wide[d-1] >> uint(p.HighDigitBits)
	accBits := 64 - p.HighDigitBits
	srcIdx := d
	for i := 0; i < d; i++ {
		width := p.DigitBits
		if i == d-1 {
			width = p.HighDigitBits
		}
		for accBits < width && srcIdx < 2*d {
			acc |= wide[srcIdx] << uint(accBits)
			accBits += 64
			srcIdx++
		}
		mask := uint64(1)<<uint(width) - 1
		high[i] = acc & mask
		acc >>= uint(width)
		accBits -= width
	}
}

// mulByConstant sets dst = x * k, where k is a small constant (the
// field's C), using the same half-limb shape as Mul/Square but with one
// fixed operand.
func (p *Params) mulByConstant(dst, x []uint64, k uint64) {
	d := p.D
	var carry uint64
	for i := 0; i < d; i++ {
		hi, lo := bits.Mul64(x[i], k)
		lo += carry
		if lo < carry {
			hi++
		}
		width := p.DigitBits
		if i == d-1 {
			width = p.HighDigitBits
		}
		mask := uint64(1)<<uint(width) - 1
		dst[i] = lo & mask
		carry = (lo >> uint(width)) | (hi << uint(64-width))
	}
	// k is small and D is bounded, so the final carry (representing a
	// tiny additional multiple of 2^N) is folded into dst[0] and
	// rippled through once more by the caller's propagate step.
	dst[0] += carry * uint64(p.C)
}

// addLimbs adds src into dst in place, limb by limb, without carry
// propagation (the caller runs propagate afterward).
func (p *Params) addLimbs(dst, src []uint64) {
	for i := range dst {
		dst[i] += src[i]
	}
}

// MulScalar sets dst = a * scalar, where scalar is a bounded signed
// integer (caller keeps it within [Params.MulMin, Params.MulMax)). The
// magnitude is multiplied through using the same half-limb-free direct
// 64x64->128 product as Mult32 in the grounding implementation (a
// single small multiplier needs no splitting of its own), then the
// result is conditionally negated.
func (p *Params) MulScalar(dst, a *Elt, scalar int64, scratch *Scratchpad) {
	neg := scalar < 0
	mag := uint64(scalar)
	if neg {
		mag = uint64(-scalar)
	}

	d := p.D
	var carry uint64
	for i := 0; i < d; i++ {
		width := p.DigitBits
		if i == d-1 {
			width = p.HighDigitBits
		}
		hi, lo := bits.Mul64(a.Limbs[i], mag)
		lo += carry
		if lo < carry {
			hi++
		}
		mask := uint64(1)<<uint(width) - 1
		dst.Limbs[i] = lo & mask
		carry = (lo >> uint(width)) | (hi << uint(64-width))
	}
	dst.Limbs[0] += carry * uint64(p.C)
	p.propagate(dst.Limbs)

	if neg {
		p.Neg(dst, dst, scratch)
	}
}
