// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f2

import "github.com/dlnb/delila/decode"

// dataHeader is the decoded 1-word F2 data-block header.
type dataHeader struct {
	Type             uint64
	BoardFail        bool
	AggregateCounter uint32
	TotalSizeWords   uint32
}

func decodeDataHeader(w uint64) dataHeader {
	return dataHeader{
		Type:             (w >> 60) & 0xF,
		BoardFail:        (w>>56)&0x1 != 0,
		AggregateCounter: uint32((w >> 32) & 0xFFFF),
		TotalSizeWords:   uint32(w & 0xFFFF_FFFF),
	}
}

// hiNibble and loNibble split a word's top byte [56:63] into the two 4-bit
// fields the control-signal patterns are expressed in terms of.
func hiNibble(w uint64) uint64 { return (w >> 60) & 0xF }
func loNibble(w uint64) uint64 { return (w >> 56) & 0xF }

// classify decides Start/Stop/Event/Unknown from buffer size, then bit
// pattern, reading each word big-endian directly (see reader.go).
func classify(r *reader) (decode.SignalKind, uint32) {
	n := r.TotalWords()

	switch {
	case n < 3:
		return decode.SignalUnknown, 0

	case n == 3:
		w0, _ := r.word64(0)
		w1, _ := r.word64(1)
		w2, _ := r.word64(2)
		if hiNibble(w0) == 0x3 && loNibble(w0) == 0x2 && loNibble(w1) == 0x0 && loNibble(w2) == 0x1 {
			deadTimeNs := uint32(w2&0xFFFF_FFFF) * 8
			return decode.SignalStop, deadTimeNs
		}
		return decode.SignalEvent, 0

	case n == 4:
		w0, _ := r.word64(0)
		w1, _ := r.word64(1)
		w2, _ := r.word64(2)
		w3, _ := r.word64(3)
		if hiNibble(w0) == 0x3 && loNibble(w0) == 0x0 && loNibble(w1) == 0x2 && loNibble(w2) == 0x1 && loNibble(w3) == 0x1 {
			return decode.SignalStart, 0
		}
		return decode.SignalEvent, 0

	default:
		return decode.SignalEvent, 0
	}
}
