// Copyright 2024 The pmfield Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"errors"
	"io"
)

// ErrShortInput is returned by SetBytes, UnmarshalBinary, and ReadFrom
// when the supplied input is shorter than the field's packed encoding
// length. It is the only error this package's decoders return; every
// other malformed-input case (e.g. an encoding of a value >= p) is
// accepted and simply carries through as an out-of-range loose value,
// per spec section 7.
var ErrShortInput = errors.New("field: input too short for this field's encoding")

// Bytes returns e's canonical little-endian encoding. e may be loose;
// Bytes normalizes a throwaway copy rather than e itself, so encoding a
// value never mutates the receiver.
func (e *Element) Bytes() []byte {
	t := e.p.Clone(e.e)
	e.p.Params.Normalize(t, t)
	dst := make([]byte, e.p.PackedBytes)
	e.p.Params.Pack(dst, t)
	return dst
}

// SetBytes sets e from the little-endian encoding src and returns e. src
// must be at least e.p.PackedBytes long; any trailing bytes beyond that
// are ignored. SetBytes does not reduce the result modulo p: an
// encoding of a value in [p, 2^n) yields a loose element whose
// remaining bits above N are cleared to keep it within the carry
// budget, but not mod-reduced further.
func (e *Element) SetBytes(src []byte) (*Element, error) {
	if len(src) < e.p.PackedBytes {
		return nil, ErrShortInput
	}
	e.p.Params.Unpack(e.e, src)
	e.p.Params.Mask(e.e, e.p.N)
	return e, nil
}

// WriteTo writes e's canonical encoding to w, implementing io.WriterTo.
// e may be loose; see Bytes.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(e.Bytes())
	return int64(n), err
}

// ReadFrom reads exactly e.p.PackedBytes bytes from r and sets e from
// them, implementing io.ReaderFrom. It returns ErrShortInput if r is
// exhausted before a full encoding is read.
func (e *Element) ReadFrom(r io.Reader) (int64, error) {
	buf := make([]byte, e.p.PackedBytes)
	n, err := io.ReadFull(r, buf)
	if err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return int64(n), ErrShortInput
		}
		return int64(n), err
	}
	e.p.Params.Unpack(e.e, buf)
	e.p.Params.Mask(e.e, e.p.N)
	return int64(n), nil
}

// MarshalBinary implements encoding.BinaryMarshaler, returning the same
// encoding as Bytes.
func (e *Element) MarshalBinary() ([]byte, error) {
	return e.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Element) UnmarshalBinary(data []byte) error {
	_, err := e.SetBytes(data)
	return err
}
