// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f2

import (
	"encoding/binary"
	"testing"

	"github.com/dlnb/delila/decode"
	"github.com/dlnb/delila/internal/dlog"
)

func be64(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func buf64(words ...uint64) []byte {
	out := make([]byte, 0, 8*len(words))
	for _, w := range words {
		out = append(out, be64(w)...)
	}
	return out
}

func rawBuf(t *testing.T, words ...uint64) decode.RawBuffer {
	t.Helper()
	buf, err := decode.NewRawBuffer(buf64(words...), decode.WordSizeF2)
	if err != nil {
		t.Fatalf("could not build raw buffer: %+v", err)
	}
	return buf
}

func TestClassifyStart(t *testing.T) {
	dec := New(dlog.New("f2-test: "))
	buf := rawBuf(t, 0x30<<56, 0x02<<56, 0x01<<56, 0x01<<56)
	if got, want := dec.Classify(buf), decode.SignalStart; got != want {
		t.Fatalf("invalid classification: got=%v, want=%v", got, want)
	}
}

func TestClassifyStop(t *testing.T) {
	dec := New(dlog.New("f2-test: "))
	buf := rawBuf(t, 0x32<<56, 0x00<<56, (uint64(0x01)<<56)|125)
	if got, want := dec.Classify(buf), decode.SignalStop; got != want {
		t.Fatalf("invalid classification: got=%v, want=%v", got, want)
	}
}

func TestClassifyEventAndUnknown(t *testing.T) {
	dec := New(dlog.New("f2-test: "))

	event := rawBuf(t, 0x2<<60|3, 0, 0)
	if got, want := dec.Classify(event), decode.SignalEvent; got != want {
		t.Fatalf("invalid classification: got=%v, want=%v", got, want)
	}

	unknown := rawBuf(t, 0, 0)
	if got, want := dec.Classify(unknown), decode.SignalUnknown; got != want {
		t.Fatalf("invalid classification: got=%v, want=%v", got, want)
	}
}

func TestDecodeSingleEventNoWaveform(t *testing.T) {
	dec := New(dlog.New("f2-test: "))
	dec.SetTimeStep(4)
	dec.SetModuleNumber(9)

	header := uint64(0x2)<<60 | 3
	w0 := (uint64(12) & 0x7F) << 56
	w0 |= uint64(500) & 0x0000_FFFF_FFFF_FFFF
	w1 := (uint64(77) & 0xFFFF) << 26 // short-gate energy
	w1 |= (uint64(512) & 0x3FF) << 16 // fine time
	w1 |= uint64(999) & 0xFFFF        // long energy

	buf := rawBuf(t, header, w0, w1)

	events, outcome := dec.Decode(buf)
	if !outcome.OK() {
		t.Fatalf("decode failed: %+v", outcome)
	}
	if len(events) != 1 {
		t.Fatalf("invalid event count: got=%d, want=1", len(events))
	}

	ev := events[0]
	if got, want := ev.Module, uint8(9); got != want {
		t.Fatalf("invalid module: got=%d, want=%d", got, want)
	}
	if got, want := ev.Channel, uint8(12); got != want {
		t.Fatalf("invalid channel: got=%d, want=%d", got, want)
	}
	if got, want := ev.Energy, uint16(999); got != want {
		t.Fatalf("invalid energy: got=%d, want=%d", got, want)
	}
	if got, want := ev.EnergyShort, uint16(77); got != want {
		t.Fatalf("invalid energy-short: got=%d, want=%d", got, want)
	}
	if got, want := ev.WaveformSize, 0; got != want {
		t.Fatalf("invalid waveform size: got=%d, want=%d", got, want)
	}

	wantTs := float64(500)*4 + (512.0/1024.0)*4
	if ev.TimestampNs != wantTs {
		t.Fatalf("invalid timestamp: got=%v, want=%v", ev.TimestampNs, wantTs)
	}
}

func TestDecodeEventWithWaveform(t *testing.T) {
	dec := New(dlog.New("f2-test: "))
	dec.SetTimeStep(1)

	header := uint64(0x2)<<60 | 6 // header + event(2) + wf-header(1) + count(1) + 1 sample word
	w0 := (uint64(3) & 0x7F) << 56
	w0 |= 100
	w1 := uint64(1) << 62 // waveform present
	w1 |= uint64(0) & 0xFFFF

	wfHeader := uint64(1) << 63 // check bit
	wfHeader |= 0 << 60         // check bits[60:62]
	wfHeader |= uint64(1) << 44 // time_resolution = 1 -> down-sample 2
	wfHeader |= uint64(2)       // AP1 type = 2

	count := uint64(1) // n_words = 1 -> waveform length 2

	// sample word: s1 encodes a1_raw=100 (positive), s2 encodes a1... wait
	// s2 is a second independent 32-bit sample.
	s1 := uint32(100) // a1_raw=100, digital probes 0
	s2 := uint32(200) // a1_raw=200
	sampleWord := uint64(s1) | uint64(s2)<<32

	buf := rawBuf(t, header, w0, w1, wfHeader, count, sampleWord)

	events, outcome := dec.Decode(buf)
	if !outcome.OK() {
		t.Fatalf("decode failed: %+v", outcome)
	}
	if len(events) != 1 {
		t.Fatalf("invalid event count: got=%d, want=1", len(events))
	}

	ev := events[0]
	if got, want := ev.WaveformSize, 2; got != want {
		t.Fatalf("invalid waveform size: got=%d, want=%d", got, want)
	}
	if got, want := ev.DownSampleFactor, uint8(2); got != want {
		t.Fatalf("invalid down-sample factor: got=%d, want=%d", got, want)
	}
	if got, want := ev.AnalogProbe1[0], int32(100); got != want {
		t.Fatalf("invalid AP1[0]: got=%d, want=%d", got, want)
	}
	if got, want := ev.AnalogProbe1[1], int32(200); got != want {
		t.Fatalf("invalid AP1[1]: got=%d, want=%d", got, want)
	}
}

func TestDecodeInvalidMagic(t *testing.T) {
	dec := New(dlog.New("f2-test: "))
	header := uint64(0x5)<<60 | 3
	buf := rawBuf(t, header, 0, 0)

	_, outcome := dec.Decode(buf)
	if outcome.OK() {
		t.Fatalf("expected decode failure for invalid header type")
	}
	if got, want := outcome.Kind, decode.OutcomeUnknownDataType; got != want {
		t.Fatalf("invalid outcome kind: got=%v, want=%v", got, want)
	}
}

func TestDecodeSizeAlignment(t *testing.T) {
	_, err := decode.NewRawBuffer([]byte{0, 1, 2, 3}, decode.WordSizeF2)
	if err == nil {
		t.Fatalf("expected error for non-multiple-of-8 buffer")
	}
	dec := New(dlog.New("f2-test: "))
	_, outcome := dec.Decode(decode.RawBuffer{Data: []byte{0, 1, 2, 3}})
	if got, want := outcome.Kind, decode.OutcomeSizeAlignment; got != want {
		t.Fatalf("invalid outcome kind: got=%v, want=%v", got, want)
	}
}

func TestDecodeOrdering(t *testing.T) {
	dec := New(dlog.New("f2-test: "))
	dec.SetTimeStep(1)

	header := uint64(0x2)<<60 | 7
	ev := func(ts uint64) (uint64, uint64) {
		w0 := (uint64(1) & 0x7F) << 56
		w0 |= ts & 0x0000_FFFF_FFFF_FFFF
		return w0, 0
	}
	w0a, w1a := ev(300)
	w0b, w1b := ev(100)
	w0c, w1c := ev(200)

	buf := rawBuf(t, header, w0a, w1a, w0b, w1b, w0c, w1c)

	events, outcome := dec.Decode(buf)
	if !outcome.OK() {
		t.Fatalf("decode failed: %+v", outcome)
	}
	if len(events) != 3 {
		t.Fatalf("invalid event count: got=%d, want=3", len(events))
	}
	if events[0].TimestampNs != 100 || events[1].TimestampNs != 200 || events[2].TimestampNs != 300 {
		t.Fatalf("invalid ordering: got=%v", events)
	}
}
