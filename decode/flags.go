// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

// Flag bits carried in Event.Flags. Bits 0x01..0x10 are set by the F1
// decoder. The F2 decoder stores its raw flag fields instead, as
// (high_priority << 11) | low_priority, so on F2 events bits 0..10 hold the
// low-priority field rather than these named bits.
const (
	FlagPileup       uint64 = 0x01 // pile-up flag set for this event.
	FlagTriggerLost  uint64 = 0x02 // one or more triggers were lost.
	FlagOverRange    uint64 = 0x04 // signal saturated.
	FlagTrigger1024  uint64 = 0x08 // counter rollover marker.
	FlagNLostTrigger uint64 = 0x10 // N-trigger-lost marker.
)

// SignalKind classifies a RawBuffer as it is submitted to a decoder.
type SignalKind uint8

const (
	SignalUnknown SignalKind = iota
	SignalStart
	SignalStop
	SignalEvent
)

func (k SignalKind) String() string {
	switch k {
	case SignalStart:
		return "Start"
	case SignalStop:
		return "Stop"
	case SignalEvent:
		return "Event"
	default:
		return "Unknown"
	}
}

// ProbeType tags which physical signal a probe waveform stream represents.
// The concrete numeric values are firmware-defined selector codes decoded
// verbatim from the wire; this type only names the field.
type ProbeType = uint8
