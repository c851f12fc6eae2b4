// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f1

// Variant selects which of the two F1 channel-pair aggregate block layouts
// is on the wire: PSD (charge/PSD firmware) or PHA (energy firmware).
type Variant uint8

const (
	VariantPSD Variant = iota
	VariantPHA
)

// PairInfo is the decoded 2-word F1 channel-pair aggregate header, unified
// across the PSD and PHA wire layouts.
type PairInfo struct {
	SizeWords uint32
	HeaderBit bool

	SamplesDiv8 uint32

	DP1Sel uint8
	DP2Sel uint8
	AP1Sel uint8
	AP2Sel uint8

	ExtrasFormat uint8

	SamplesEnabled  bool
	ExtrasEnabled   bool // extras (PSD) or extras-2 (PHA).
	TimeEnabled     bool
	ChargeEnabled   bool // charge (PSD) or energy (PHA).
	DualTraceEnabled bool
}

func decodePairHeader(r *reader, idx int, variant Variant) (PairInfo, bool) {
	w0, ok := r.word32(idx + 0)
	if !ok {
		return PairInfo{}, false
	}
	w1, ok := r.word32(idx + 1)
	if !ok {
		return PairInfo{}, false
	}

	info := PairInfo{HeaderBit: (w0>>31)&0x1 != 0}

	switch variant {
	case VariantPSD:
		info.SizeWords = w0 & 0x003F_FFFF // bits [0:21]
		info.SamplesDiv8 = w1 & 0xFFFF
		info.DP1Sel = uint8((w1 >> 16) & 0x7)
		info.DP2Sel = uint8((w1 >> 19) & 0x7)
		info.AP1Sel = uint8((w1 >> 22) & 0x3)
		info.ExtrasFormat = uint8((w1 >> 24) & 0x7)
		info.SamplesEnabled = (w1>>27)&0x1 != 0
		info.ExtrasEnabled = (w1>>28)&0x1 != 0
		info.TimeEnabled = (w1>>29)&0x1 != 0
		info.ChargeEnabled = (w1>>30)&0x1 != 0
		info.DualTraceEnabled = (w1>>31)&0x1 != 0

	case VariantPHA:
		info.SizeWords = w0 & 0x7FFF_FFFF // bits [0:30]
		info.SamplesDiv8 = w1 & 0xFFFF
		info.DP1Sel = uint8((w1 >> 16) & 0xF)
		info.AP2Sel = uint8((w1 >> 20) & 0x3)
		info.AP1Sel = uint8((w1 >> 22) & 0x3)
		info.ExtrasFormat = uint8((w1 >> 24) & 0x7)
		info.SamplesEnabled = (w1>>27)&0x1 != 0
		info.ExtrasEnabled = (w1>>28)&0x1 != 0
		info.TimeEnabled = (w1>>29)&0x1 != 0
		info.ChargeEnabled = (w1>>30)&0x1 != 0
		info.DualTraceEnabled = (w1>>31)&0x1 != 0
	}

	return info, true
}

// WaveformLen returns the number of samples the pair's events carry
// (SamplesDiv8 * 8).
func (p PairInfo) WaveformLen() int { return int(p.SamplesDiv8) * 8 }
