// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f1

import "github.com/dlnb/delila/decode"

// extrasVariant tags the recognized extras-word layouts.
const (
	extrasVariantTimeA  = 0b000
	extrasVariantTimeB  = 0b001
	extrasVariantFine   = 0b010
)

// extrasInfo is the decoded content of one F1 extras word.
type extrasInfo struct {
	ExtendedTime uint32
	FineTime     uint16 // valid only when HasFineTime.
	HasFineTime  bool
	FlagBits     uint8 // 6-bit raw flag field, valid only when HasFineTime.
	Unknown      bool  // extras format not one of the recognized variants.
}

func decodeExtras(w uint32, format uint8) extrasInfo {
	switch format {
	case extrasVariantTimeA, extrasVariantTimeB:
		return extrasInfo{ExtendedTime: (w >> 16) & 0xFFFF}

	case extrasVariantFine:
		return extrasInfo{
			ExtendedTime: (w >> 16) & 0xFFFF,
			FineTime:     uint16(w & 0x3FF),
			HasFineTime:  true,
			FlagBits:     uint8((w >> 10) & 0x3F),
		}

	default:
		return extrasInfo{
			ExtendedTime: (w >> 16) & 0xFFFF,
			Unknown:      true,
		}
	}
}

// applyFlags maps the extras flag bits onto the event's flag bit-set:
// bit 5 -> TriggerLost, bit 4 -> OverRange, bit 3 -> Trigger1024,
// bit 2 -> NLostTrigger.
func (x extrasInfo) applyFlags(ev *decode.Event) {
	if !x.HasFineTime {
		return
	}
	if x.FlagBits&(1<<5) != 0 {
		ev.SetFlag(decode.FlagTriggerLost)
	}
	if x.FlagBits&(1<<4) != 0 {
		ev.SetFlag(decode.FlagOverRange)
	}
	if x.FlagBits&(1<<3) != 0 {
		ev.SetFlag(decode.FlagTrigger1024)
	}
	if x.FlagBits&(1<<2) != 0 {
		ev.SetFlag(decode.FlagNLostTrigger)
	}
}
