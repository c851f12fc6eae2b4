// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f1

import (
	"github.com/dlnb/delila/decode"
	"golang.org/x/xerrors"
)

// eventParams carries the configuration a single event decode needs beyond
// the pair header itself.
type eventParams struct {
	variant     Variant
	module      uint8
	timeStepNs  uint32
}

// decodeEvent decodes one F1 event starting at word index idx, returning
// the decoded event, the index of the word following it, the parity bit
// (channel = pairIndex*2 + oddBit, set by the caller), and an outcome. On
// failure, the returned index lies within the event being decoded; it is
// not necessarily the word that could not be read.
func decodeEvent(r *reader, idx int, pair PairInfo, p eventParams) (decode.Event, int, uint8, decode.Outcome) {
	timeTagWord, ok := r.word32(idx)
	if !ok {
		return decode.Event{}, idx, 0, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f1: could not read event time-tag word at index %d", idx))
	}
	idx++

	triggerTimeTag := timeTagWord & 0x7FFF_FFFF
	odd := uint8((timeTagWord >> 31) & 0x1)

	waveformLen := pair.WaveformLen()
	if outcome := validateWaveformLen(waveformLen); !outcome.OK() {
		return decode.Event{}, idx, odd, outcome
	}

	var ev decode.Event
	if pair.SamplesEnabled && waveformLen > 0 {
		ev.ResizeWaveform(waveformLen)
	}
	ev.Module = p.module
	ev.TimeResolutionNs = uint8(p.timeStepNs)

	switch p.variant {
	case VariantPSD:
		ev.DigitalProbe1Type = pair.DP1Sel
		ev.DigitalProbe2Type = pair.DP2Sel
		ev.AnalogProbe1Type = pair.AP1Sel
		if pair.DualTraceEnabled {
			ev.AnalogProbe2Type = pair.AP1Sel
		}
	case VariantPHA:
		ev.DigitalProbe1Type = pair.DP1Sel
		ev.AnalogProbe1Type = pair.AP1Sel
		if pair.DualTraceEnabled {
			ev.AnalogProbe2Type = pair.AP2Sel
		}
	}

	if pair.SamplesEnabled && waveformLen > 0 {
		nWords := int(pair.SamplesDiv8) * 2
		next, wok := unpackWaveform(r, idx, nWords, pair.DualTraceEnabled, &ev)
		if !wok {
			return decode.Event{}, idx, odd, decode.Fail(decode.OutcomeInsufficientData,
				xerrors.Errorf("f1: could not read %d waveform words at index %d", nWords, idx))
		}
		idx = next
	}

	var (
		extras    extrasInfo
		hasExtras bool
	)
	if pair.ExtrasEnabled {
		w, wok := r.word32(idx)
		if !wok {
			return decode.Event{}, idx, odd, decode.Fail(decode.OutcomeInsufficientData,
				xerrors.Errorf("f1: could not read extras word at index %d", idx))
		}
		idx++
		extras = decodeExtras(w, pair.ExtrasFormat)
		hasExtras = true
		extras.applyFlags(&ev)
	}

	ev.TimestampNs = computeTimestamp(triggerTimeTag, hasExtras, extras, p.timeStepNs)

	if pair.ChargeEnabled {
		w, wok := r.word32(idx)
		if !wok {
			return decode.Event{}, idx, odd, decode.Fail(decode.OutcomeInsufficientData,
				xerrors.Errorf("f1: could not read charge/energy word at index %d", idx))
		}
		idx++

		switch p.variant {
		case VariantPSD:
			ev.EnergyShort = uint16(w & 0x7FFF)
			ev.Energy = uint16((w >> 16) & 0xFFFF)
			if (w>>15)&0x1 != 0 {
				ev.SetFlag(decode.FlagPileup)
			}
		case VariantPHA:
			ev.Energy = uint16(w & 0x7FFF)
			if (w>>15)&0x1 != 0 {
				ev.SetFlag(decode.FlagPileup)
			}
			ev.EnergyShort = uint16((w >> 16) & 0x3FF)
		}
	}

	return ev, idx, odd, decode.Ok
}
