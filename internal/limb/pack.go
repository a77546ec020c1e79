// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package limb

// Unpack reads exactly p.PackedBytes little-endian bytes from src and
// packs them into x's D limbs (DigitBits value bits each, HighDigitBits
// for the top limb). When DigitBits is not a multiple of 8, adjacent
// bytes straddle limb boundaries; a sliding bit accumulator recombines
// them with shifts and masks, the same technique FiloSottile's SetBytes
// uses for the fixed 51-bit case, generalized to arbitrary digit width.
// Unpack does not reduce modulo p: an encoded value in [p, 2^N) is kept
// as it is. Bits at or above N are not kept: the top limb holds only its
// HighDigitBits value bits.
func (p *Params) Unpack(x *Elt, src []byte) {
	var acc uint64
	accBits := 0
	srcIdx := 0

	for i := 0; i < p.D; i++ {
		width := p.DigitBits
		if i == p.D-1 {
			width = p.HighDigitBits
		}
		for accBits < width && srcIdx < len(src) {
			acc |= uint64(src[srcIdx]) << uint(accBits)
			accBits += 8
			srcIdx++
		}
		mask := uint64(1)<<uint(width) - 1
		x.Limbs[i] = acc & mask
		acc >>= uint(width)
		accBits -= width
	}
}

// Pack writes the canonical little-endian encoding of the normalized
// element x into dst, which must be exactly p.PackedBytes long. Pack
// assumes x is already normalized; callers that hold a loose value
// compose Normalize followed by Pack.
func (p *Params) Pack(dst []byte, x *Elt) {
	var acc uint64
	accBits := 0
	dstIdx := 0

	for i := 0; i < p.D; i++ {
		width := p.DigitBits
		if i == p.D-1 {
			width = p.HighDigitBits
		}
		acc |= x.Limbs[i] << uint(accBits)
		accBits += width

		for accBits >= 8 && dstIdx < len(dst) {
			dst[dstIdx] = byte(acc)
			acc >>= 8
			accBits -= 8
			dstIdx++
		}
	}
	for dstIdx < len(dst) {
		dst[dstIdx] = byte(acc)
		acc >>= 8
		dstIdx++
	}
}
