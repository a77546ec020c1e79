// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package limb

import (
	"runtime"
	"sync"
)

// Scratchpad is a scoped bundle of three D-limb work buffers: D0, D1 and
// D2. Sub, Neg, Abs, MulScalar and the multiply/square kernel (and so
// the Legendre/sqrt ladders built on it) borrow these instead of
// allocating; Normalize needs none. The
// caller is responsible for calling Release when the computation that
// acquired the scratchpad is done, at which point every buffer is
// scrubbed.
//
// A Scratchpad is never safe to share between two goroutines at the
// same time; Acquire/Release hands each caller its own buffer set.
type Scratchpad struct {
	D0, D1, D2 []uint64
	params     *Params
}

// D2AsElt views D2 as an *Elt, for kernel steps (like Neg and Abs) that
// need a full Elt-shaped temporary rather than a raw limb slice.
func (s *Scratchpad) D2AsElt() *Elt {
	return &Elt{Limbs: s.D2}
}

// pools holds one *sync.Pool per field, keyed by the field's *Params.
// Go has no addressable per-OS-thread storage; sync.Pool is the
// idiomatic stand-in the standard library itself uses for "at most one
// idle, lazily-initialized, never-shared-across-threads" buffer reuse
// (see DESIGN.md, "per-thread scratchpad cache"). Each P's private free
// list means two goroutines essentially never contend for the same
// buffer set, which satisfies the spec's concurrency contract without
// inventing goroutine-local storage.
var (
	poolsMu sync.Mutex
	pools   = map[*Params]*sync.Pool{}
)

func poolFor(p *Params) *sync.Pool {
	poolsMu.Lock()
	defer poolsMu.Unlock()
	if pool, ok := pools[p]; ok {
		return pool
	}
	pool := &sync.Pool{
		New: func() any {
			return &Scratchpad{
				D0:     make([]uint64, p.D),
				D1:     make([]uint64, p.D),
				D2:     make([]uint64, p.D),
				params: p,
			}
		},
	}
	pools[p] = pool
	return pool
}

// Acquire returns a Scratchpad for p, reusing an idle one from the pool
// when available.
func (p *Params) Acquire() *Scratchpad {
	return poolFor(p).Get().(*Scratchpad)
}

// Release scrubs every buffer in s and returns it to p's pool. Callers
// must not use s after calling Release.
func (p *Params) Release(s *Scratchpad) {
	scrub(s.D0)
	scrub(s.D1)
	scrub(s.D2)
	poolFor(p).Put(s)
}

// scrub overwrites every word of x with all-ones bits. The loop has no
// trailing read, so nothing downstream observes the stores; runtime.
// KeepAlive(x) after the loop keeps the compiler from using that
// absence of a read as license to prove the writes dead and elide them.
func scrub(x []uint64) {
	for i := range x {
		x[i] = ^uint64(0)
	}
	runtime.KeepAlive(x)
}

// Destroy scrubs every limb of x with all-ones bits, leaving it unfit
// for further arithmetic. Used by the field package's Element.Destroy.
func (p *Params) Destroy(x *Elt) {
	scrub(x.Limbs)
}
