// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package field implements constant-time finite-field arithmetic over
// pseudo-Mersenne primes p = 2^n - c, the computational substrate that
// elliptic-curve implementations build their point arithmetic on top
// of. The package ships five concrete fields (see Curve25519, Curve222,
// Curve383, Curve414, Curve511) driven by one shared, parameterized
// unsaturated-limb engine rather than a hand-duplicated kernel per
// field.
//
// Curve-level arithmetic (point addition/doubling, scalar
// multiplication, compression), random-number sourcing beyond the
// single Random constructor, and any higher-level signature or key-
// agreement API are out of scope: this package is the field engine that
// such a layer would be built on top of, not that layer itself.
package field
