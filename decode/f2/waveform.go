// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f2

import "github.com/dlnb/delila/decode"

// waveformHeader is the decoded F2 waveform header word.
type waveformHeader struct {
	TimeResolution   uint8
	TriggerThreshold uint16

	DigitalProbe1Type uint8
	DigitalProbe2Type uint8
	DigitalProbe3Type uint8
	DigitalProbe4Type uint8

	AP1Type   uint8
	AP1Signed bool
	AP1Mul    int32

	AP2Type   uint8
	AP2Signed bool
	AP2Mul    int32
}

func mulFactor(code uint8) int32 {
	switch code & 0x3 {
	case 1:
		return 4
	case 2:
		return 8
	case 3:
		return 16
	default:
		return 1
	}
}

func decodeWaveformHeader(w uint64) (waveformHeader, bool) {
	if (w>>63)&0x1 != 1 || (w>>60)&0x7 != 0 {
		return waveformHeader{}, false
	}

	return waveformHeader{
		TimeResolution:    uint8((w >> 44) & 0x3),
		TriggerThreshold:  uint16((w >> 28) & 0xFFFF),
		DigitalProbe4Type: uint8((w >> 24) & 0xF),
		DigitalProbe3Type: uint8((w >> 20) & 0xF),
		DigitalProbe2Type: uint8((w >> 16) & 0xF),
		DigitalProbe1Type: uint8((w >> 12) & 0xF),
		AP2Type:           uint8((w >> 6) & 0x7),
		AP1Type:           uint8(w & 0x7),
		AP1Signed:         (w>>3)&0x1 != 0,
		AP1Mul:            mulFactor(uint8((w >> 4) & 0x3)),
		AP2Signed:         (w>>9)&0x1 != 0,
		AP2Mul:            mulFactor(uint8((w >> 10) & 0x3)),
	}, true
}

// sample decodes one 32-bit F2 waveform sample into ev's probe arrays at
// index i.
func sample(s uint32, h waveformHeader, ev *decode.Event, i int) {
	a1 := int32(s & 0x3FFF)
	if h.AP1Signed && s&0x2000 != 0 {
		a1 |= ^int32(0x3FFF)
	}
	ev.AnalogProbe1[i] = a1 * h.AP1Mul

	a2 := int32((s >> 16) & 0x3FFF)
	if h.AP2Signed && (s>>16)&0x2000 != 0 {
		a2 |= ^int32(0x3FFF)
	}
	ev.AnalogProbe2[i] = a2 * h.AP2Mul

	ev.DigitalProbe1[i] = uint8((s >> 14) & 0x1)
	ev.DigitalProbe2[i] = uint8((s >> 15) & 0x1)
	ev.DigitalProbe3[i] = uint8((s >> 30) & 0x1)
	ev.DigitalProbe4[i] = uint8((s >> 31) & 0x1)
}

// unpackWaveform reads nWords sample words starting at idx (two samples per
// word, waveformLen = nWords*2), filling ev's probe arrays which must
// already be sized via ev.ResizeWaveform.
func unpackWaveform(r *reader, idx int, nWords int, h waveformHeader, ev *decode.Event) (nextIdx int, ok bool) {
	for j := 0; j < nWords; j++ {
		w, wok := r.word64(idx + j)
		if !wok {
			return idx, false
		}
		s1 := uint32(w & 0xFFFF_FFFF)
		s2 := uint32((w >> 32) & 0xFFFF_FFFF)
		sample(s1, h, ev, 2*j)
		sample(s2, h, ev, 2*j+1)
	}
	return idx + nWords, true
}
