// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f2

import (
	"github.com/dlnb/delila/decode"
	"golang.org/x/xerrors"
)

// eventParams carries the configuration a single event-group decode needs
// beyond the words themselves.
type eventParams struct {
	module     uint8
	timeStepNs uint32
}

// decodeEvent decodes one F2 event group starting at word index idx,
// returning the decoded event, the index of the word following it, and an
// outcome. On failure, the returned index lies within the event group being
// decoded; it is not necessarily the word that could not be read.
func decodeEvent(r *reader, idx int, p eventParams) (decode.Event, int, decode.Outcome) {
	w0, ok := r.word64(idx)
	if !ok {
		return decode.Event{}, idx, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f2: could not read first event word at index %d", idx))
	}
	idx++

	channel := uint8((w0 >> 56) & 0x7F)
	rawTs := w0 & 0x0000_FFFF_FFFF_FFFF

	if outcome := validateChannel(channel); !outcome.OK() {
		return decode.Event{}, idx, outcome
	}

	w1, ok := r.word64(idx)
	if !ok {
		return decode.Event{}, idx, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f2: could not read second event word at index %d", idx))
	}
	idx++

	waveformPresent := (w1>>62)&0x1 != 0
	lowPriority := (w1 >> 50) & 0x7FF
	highPriority := (w1 >> 42) & 0xFF
	shortGate := uint16((w1 >> 26) & 0xFFFF)
	fineTime := uint16((w1 >> 16) & 0x3FF)
	longEnergy := uint16(w1 & 0xFFFF)

	var ev decode.Event
	ev.Module = p.module
	ev.TimeResolutionNs = uint8(p.timeStepNs)
	ev.Channel = channel
	ev.Energy = longEnergy
	ev.EnergyShort = shortGate
	ev.Flags = (highPriority << 11) | lowPriority
	ev.TimestampNs = computeTimestamp(rawTs, fineTime, p.timeStepNs)
	ev.DownSampleFactor = 1

	if !waveformPresent {
		return ev, idx, decode.Ok
	}

	hw, ok := r.word64(idx)
	if !ok {
		return decode.Event{}, idx, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f2: could not read waveform header word at index %d", idx))
	}
	h, ok := decodeWaveformHeader(hw)
	if !ok {
		return decode.Event{}, idx, decode.Fail(decode.OutcomeInvalidHeader,
			xerrors.Errorf("f2: invalid waveform header check bits at index %d", idx))
	}
	idx++

	countWord, ok := r.word64(idx)
	if !ok {
		return decode.Event{}, idx, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f2: could not read waveform count word at index %d", idx))
	}
	idx++

	nWords := int(countWord & 0xFFF)
	waveformLen := nWords * 2
	if outcome := validateWaveformLen(waveformLen); !outcome.OK() {
		return decode.Event{}, idx, outcome
	}

	ev.ResizeWaveform(waveformLen)
	ev.DownSampleFactor = 1 << h.TimeResolution
	ev.DigitalProbe1Type = h.DigitalProbe1Type
	ev.DigitalProbe2Type = h.DigitalProbe2Type
	ev.DigitalProbe3Type = h.DigitalProbe3Type
	ev.DigitalProbe4Type = h.DigitalProbe4Type
	ev.AnalogProbe1Type = h.AP1Type
	ev.AnalogProbe2Type = h.AP2Type

	next, wok := unpackWaveform(r, idx, nWords, h, &ev)
	if !wok {
		return decode.Event{}, idx, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f2: could not read %d waveform words at index %d", nWords, idx))
	}

	return ev, next, decode.Ok
}
