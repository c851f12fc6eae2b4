// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f1

import (
	"encoding/binary"

	"github.com/dlnb/delila/decode/internal/bword"
)

// reader reads little-endian 32-bit words from an F1 RawBuffer.
type reader struct {
	*bword.Reader
}

func newReader(buf []byte) *reader {
	return &reader{Reader: bword.New(buf, 4)}
}

// word32 reads word idx as a little-endian uint32. ok is false when idx is
// out of bounds.
func (r *reader) word32(idx int) (v uint32, ok bool) {
	b, ok := r.ReadWord(idx)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}
