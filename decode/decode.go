// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package decode holds the wire-format-agnostic types shared by the
// firmware decoders (f1, f2) and the decoder pipeline: the raw input
// buffer, the decoded event record, and the classification/outcome enums.
package decode // import "github.com/dlnb/delila/decode"

import "golang.org/x/xerrors"

// WordSize is a firmware wire-format word size, in bytes.
type WordSize int

const (
	WordSizeF1 WordSize = 4
	WordSizeF2 WordSize = 8
)

// RawBuffer is one transport frame of undecoded bytes handed to a decoder.
// Its length is always a positive multiple of the firmware word size; a
// non-multiple is rejected by NewRawBuffer.
type RawBuffer struct {
	Data []byte
	// NEvents is an optional hint from the device-read layer about how
	// many events the buffer is expected to contain; it is never trusted
	// for allocation beyond a sizing hint.
	NEvents int
}

// NewRawBuffer validates that len(data) is a positive multiple of wordSize
// and wraps it as a RawBuffer.
func NewRawBuffer(data []byte, wordSize WordSize) (RawBuffer, error) {
	n := len(data)
	if n == 0 || n%int(wordSize) != 0 {
		return RawBuffer{}, xerrors.Errorf(
			"decode: buffer size %d is not a positive multiple of word size %d",
			n, int(wordSize),
		)
	}
	return RawBuffer{Data: data}, nil
}

// Len returns the buffer size, in bytes.
func (b RawBuffer) Len() int { return len(b.Data) }

// Words returns the buffer size, in words of the given size.
func (b RawBuffer) Words(wordSize WordSize) int { return len(b.Data) / int(wordSize) }

// Event is the uniform decoded output record produced by both firmware
// decoders. The six waveform sequences are either all empty (no-waveform
// event) or all of length WaveformSize.
type Event struct {
	TimestampNs float64
	Energy      uint16
	EnergyShort uint16
	Module      uint8
	Channel     uint8

	TimeResolutionNs uint8
	DownSampleFactor uint8

	Flags uint64

	WaveformSize int

	AnalogProbe1 []int32
	AnalogProbe2 []int32
	DigitalProbe1 []uint8
	DigitalProbe2 []uint8
	DigitalProbe3 []uint8
	DigitalProbe4 []uint8

	AnalogProbe1Type  ProbeType
	AnalogProbe2Type  ProbeType
	DigitalProbe1Type ProbeType
	DigitalProbe2Type ProbeType
	DigitalProbe3Type ProbeType
	DigitalProbe4Type ProbeType
}

// ResizeWaveform sets all six waveform sequences to length n, allocating
// them fresh. n == 0 clears the event's waveform.
func (e *Event) ResizeWaveform(n int) {
	e.WaveformSize = n
	e.AnalogProbe1 = make([]int32, n)
	e.AnalogProbe2 = make([]int32, n)
	e.DigitalProbe1 = make([]uint8, n)
	e.DigitalProbe2 = make([]uint8, n)
	e.DigitalProbe3 = make([]uint8, n)
	e.DigitalProbe4 = make([]uint8, n)
}

// SetFlag sets bit(s) in e.Flags.
func (e *Event) SetFlag(bit uint64) { e.Flags |= bit }

// HasFlag reports whether bit(s) are set in e.Flags.
func (e *Event) HasFlag(bit uint64) bool { return e.Flags&bit != 0 }
