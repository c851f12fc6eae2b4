// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package f2 implements the F2 (64-bit-word, big-endian, flat
// Event+Waveform) firmware wire-format decoder.
package f2 // import "github.com/dlnb/delila/decode/f2"

import (
	"encoding/binary"

	"github.com/dlnb/delila/decode/internal/bword"
)

// reader reads F2 words directly as big-endian. Byte-reversing a big-endian
// word and then reading it little-endian produces the exact same 64-bit
// value as reading it big-endian in place; since Classify and Decode both
// need to read the same RawBuffer independently (Classify runs first, at
// submit time; Decode later, off the ingestion queue), reading in place
// avoids mutating a buffer that is inspected twice.
type reader struct {
	*bword.Reader
}

func newReader(buf []byte) *reader {
	return &reader{Reader: bword.New(buf, 8)}
}

// word64 reads word idx as a big-endian uint64. ok is false when idx is out
// of bounds.
func (r *reader) word64(idx int) (v uint64, ok bool) {
	b, ok := r.ReadWord(idx)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint64(b), true
}
