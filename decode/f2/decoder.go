// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f2

import (
	"sort"
	"sync/atomic"

	"github.com/dlnb/delila/decode"
	"github.com/dlnb/delila/internal/dlog"
	"golang.org/x/xerrors"
)

// Decoder decodes F2 RawBuffers: control-signal classification plus the
// flat Event+Waveform data layout. Decode is meant to be called from a
// single worker goroutine, but timeStepNs and module are stored atomically
// so SetTimeStep/SetModuleNumber can be called concurrently from a
// pipeline's configuration path while a worker is decoding.
type Decoder struct {
	timeStepNs uint32 // atomic
	module     uint32 // atomic, holds a uint8
	log        *dlog.Logger

	lastAggregateCounter uint32
	haveLastCounter      bool
	checkContinuity      bool
}

// New builds an F2 decoder. Each Decoder is meant for exclusive use by one
// worker goroutine; it carries no internal locking beyond the atomically
// stored time-step and module fields.
func New(log *dlog.Logger) *Decoder {
	return &Decoder{
		timeStepNs:      1, // default 1ns until SetTimeStep is called.
		log:             log,
		checkContinuity: true,
	}
}

func (d *Decoder) SetTimeStep(ns uint32)    { atomic.StoreUint32(&d.timeStepNs, ns) }
func (d *Decoder) SetModuleNumber(id uint8) { atomic.StoreUint32(&d.module, uint32(id)) }

// SetCheckAggregateCounter enables or disables the aggregate-counter
// continuity check. The pipeline enables it only when running a single
// worker and disables it on every worker decoder otherwise, since each
// worker then only sees a subset of buffers and per-worker discontinuities
// are meaningless.
func (d *Decoder) SetCheckAggregateCounter(enabled bool) { d.checkContinuity = enabled }

// Classify decides Start/Stop/Event/Unknown from buffer size, then bit
// pattern. Buffers matching the Stop pattern also produce a dead-time log
// line.
func (d *Decoder) Classify(buf decode.RawBuffer) decode.SignalKind {
	if buf.Len()%8 != 0 {
		d.log.Errorf("f2: buffer size %d is not a multiple of 8", buf.Len())
		return decode.SignalUnknown
	}
	kind, deadTimeNs := classify(newReader(buf.Data))
	if kind == decode.SignalStop {
		d.log.Warnf("f2: stop received, dead time = %d ns", deadTimeNs)
	}
	return kind
}

// Decode parses the data header and each event group of a buffer already
// known (via Classify) to be a data buffer, and stable-sorts the result by
// timestamp.
func (d *Decoder) Decode(buf decode.RawBuffer) ([]decode.Event, decode.Outcome) {
	if buf.Len()%8 != 0 {
		return nil, decode.Fail(decode.OutcomeSizeAlignment,
			xerrors.Errorf("f2: buffer size %d is not a multiple of 8", buf.Len()))
	}
	if buf.Len() < 8 {
		return nil, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f2: buffer size %d smaller than one header word", buf.Len()))
	}

	r := newReader(buf.Data)
	totalWords := r.TotalWords()

	w0, ok := r.word64(0)
	if !ok {
		return nil, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f2: could not read data header word"))
	}
	header := decodeDataHeader(w0)
	if outcome := validateDataMagic(header.Type); !outcome.OK() {
		return nil, outcome
	}
	if header.BoardFail {
		d.log.Warnf("f2: board reports board-fail")
	}
	if d.checkContinuity {
		if d.haveLastCounter {
			expected := d.lastAggregateCounter + 1
			if header.AggregateCounter != expected {
				d.log.Warnf("f2: aggregate counter discontinuity (got=%d, want=%d)", header.AggregateCounter, expected)
			}
		}
		d.lastAggregateCounter = header.AggregateCounter
		d.haveLastCounter = true
	}

	events := make([]decode.Event, 0, totalWords/2+1)
	params := eventParams{
		module:     uint8(atomic.LoadUint32(&d.module)),
		timeStepNs: atomic.LoadUint32(&d.timeStepNs),
	}

	wordIndex := 1
	for wordIndex < totalWords {
		ev, next, outcome := decodeEvent(r, wordIndex, params)
		if !outcome.OK() {
			d.log.Errorf("f2: %v", outcome)
			break
		}
		events = append(events, ev)
		wordIndex = next
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampNs < events[j].TimestampNs
	})

	return events, decode.Ok
}
