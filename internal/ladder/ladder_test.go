// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ladder

import (
	"math/big"
	"testing"
)

// modExpOps builds Ops[*big.Int] against a fixed modulus, so Run can be
// checked against big.Int.Exp directly without any field-specific
// machinery.
func modExpOps(mod *big.Int) Ops[*big.Int] {
	return Ops[*big.Int]{
		Init: func(base *big.Int) *big.Int {
			return new(big.Int).Set(base)
		},
		Square: func(acc *big.Int) {
			acc.Mul(acc, acc)
			acc.Mod(acc, mod)
		},
		Multiply: func(acc *big.Int, base *big.Int) {
			acc.Mul(acc, base)
			acc.Mod(acc, mod)
		},
	}
}

func TestBuildMatchesBigExp(t *testing.T) {
	mod := big.NewInt(1000000007)

	exps := []int64{1, 2, 3, 7, 8, 255, 256, 1023, 123456789}
	bases := []int64{2, 3, 5, 97, 999999}

	for _, e := range exps {
		exp := big.NewInt(e)
		steps := Build(exp)
		for _, b := range bases {
			base := big.NewInt(b)
			want := new(big.Int).Exp(base, exp, mod)
			got := Run(steps, base, modExpOps(mod))
			if got.Cmp(want) != 0 {
				t.Errorf("exp=%d base=%d: got %s, want %s", e, b, got, want)
			}
		}
	}
}

func TestBuildZeroExponent(t *testing.T) {
	steps := Build(big.NewInt(0))
	if steps != nil {
		t.Errorf("Build(0) = %v, want nil", steps)
	}
}

func TestBuildOneExponent(t *testing.T) {
	// exp = 1 has a single set bit, which is the implicit leading bit;
	// Build should emit no steps, since Run starts from base already.
	steps := Build(big.NewInt(1))
	if len(steps) != 0 {
		t.Errorf("Build(1) = %v, want empty", steps)
	}
}
