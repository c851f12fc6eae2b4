// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pipeline implements the bounded producer/consumer decoder shell:
// a fixed worker pool draining a FIFO of raw digitizer buffers into a
// timestamp-sorted output queue, gated by a Start/Stop control-signal state
// machine.
package pipeline // import "github.com/dlnb/delila/pipeline"

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dlnb/delila/decode"
	"github.com/dlnb/delila/decode/f1"
	"github.com/dlnb/delila/decode/f2"
	"github.com/dlnb/delila/internal/dlog"
)

// FirmwareKind selects which wire-format decoder a Decoder wraps.
type FirmwareKind uint8

const (
	FirmwareF1PSD FirmwareKind = iota
	FirmwareF1PHA
	FirmwareF2
)

// FirmwareDecoder is the interface every concrete firmware decoder
// satisfies; Decoder never depends on the f1/f2 package types directly
// beyond construction.
type FirmwareDecoder interface {
	Decode(buf decode.RawBuffer) ([]decode.Event, decode.Outcome)
	Classify(buf decode.RawBuffer) decode.SignalKind
	SetTimeStep(ns uint32)
	SetModuleNumber(id uint8)
}

func newFirmwareDecoder(kind FirmwareKind, log *dlog.Logger) FirmwareDecoder {
	switch kind {
	case FirmwareF1PSD:
		return f1.New(f1.VariantPSD, log)
	case FirmwareF1PHA:
		return f1.New(f1.VariantPHA, log)
	case FirmwareF2:
		return f2.New(log)
	default:
		return f2.New(log)
	}
}

// Decoder is the concurrent decode pipeline: a bounded worker pool
// consuming an ingestion queue and producing a timestamp-ordered output
// queue, gated by the Idle/Running state machine.
type Decoder struct {
	cfg  config
	kind FirmwareKind
	log  *dlog.Logger // immutable after New; safe to read without a lock.

	classifier FirmwareDecoder // used only by submit(), single caller.

	// decoders holds one entry per worker, populated once in New and never
	// mutated afterward; SetTimeStep/SetModuleNumber range over it to reach
	// every worker's decoder, each of which stores those fields atomically.
	decoders []FirmwareDecoder

	stateMu sync.Mutex
	state   State

	inMu  sync.Mutex
	inQ   []decode.RawBuffer

	outMu sync.Mutex
	outQ  []decode.Event

	statsMu   sync.Mutex
	lastStats *BatchStats

	cancel context.CancelFunc
	grp    *errgroup.Group
}

// New builds a Decoder with workerCount worker goroutines decoding buffers
// of the given firmware kind. Workers are spawned and begin polling
// immediately.
func New(workerCount int, kind FirmwareKind, opts ...Option) *Decoder {
	if workerCount < 1 {
		workerCount = 1
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	d := &Decoder{
		cfg:        cfg,
		kind:       kind,
		log:        cfg.log,
		classifier: newFirmwareDecoder(kind, cfg.log),
		decoders:   make([]FirmwareDecoder, 0, workerCount),
	}
	d.classifier.SetTimeStep(cfg.timeStepNs)
	d.classifier.SetModuleNumber(cfg.moduleNumber)

	// F1 carries no on-wire Start marker: treat a pipeline decoding F1 as
	// already running, or its Event buffers would have nothing to move it
	// out of the zero-value Idle state.
	if kind == FirmwareF1PSD || kind == FirmwareF1PHA {
		d.state = StateRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	grp, ctx := errgroup.WithContext(ctx)
	d.cancel = cancel
	d.grp = grp

	for i := 0; i < workerCount; i++ {
		dec := newFirmwareDecoder(kind, cfg.log)
		dec.SetTimeStep(cfg.timeStepNs)
		dec.SetModuleNumber(cfg.moduleNumber)
		if f2dec, ok := dec.(*f2.Decoder); ok {
			// Aggregate-counter continuity is only meaningful with a single
			// worker consuming buffers in submission order.
			f2dec.SetCheckAggregateCounter(workerCount == 1)
		}
		d.decoders = append(d.decoders, dec)

		grp.Go(func() error {
			d.workerLoop(ctx, dec)
			return nil
		})
	}

	return d
}

// SetTimeStep updates the time-step configuration used by every future
// decode, on the classifier and every worker's decoder.
func (d *Decoder) SetTimeStep(ns uint32) {
	d.stateMu.Lock()
	d.cfg.timeStepNs = ns
	d.stateMu.Unlock()
	d.classifier.SetTimeStep(ns)
	for _, dec := range d.decoders {
		dec.SetTimeStep(ns)
	}
}

// SetModuleNumber updates the module number stamped onto future events, on
// the classifier and every worker's decoder.
func (d *Decoder) SetModuleNumber(id uint8) {
	d.stateMu.Lock()
	d.cfg.moduleNumber = id
	d.stateMu.Unlock()
	d.classifier.SetModuleNumber(id)
	for _, dec := range d.decoders {
		dec.SetModuleNumber(id)
	}
}

// SetDumpFlag turns diagnostic batch statistics on or off.
func (d *Decoder) SetDumpFlag(on bool) {
	d.stateMu.Lock()
	d.cfg.dumpFlag = on
	d.stateMu.Unlock()
}

// Submit classifies buf and, per the Idle/Running state table, either
// enqueues it for decoding, updates the state, or drops it. It returns the
// classification.
func (d *Decoder) Submit(buf decode.RawBuffer) decode.SignalKind {
	kind := d.classifier.Classify(buf)

	d.stateMu.Lock()
	next, enqueue := transition(d.state, kind)
	d.state = next
	d.stateMu.Unlock()

	if enqueue {
		d.inMu.Lock()
		d.inQ = append(d.inQ, buf)
		d.inMu.Unlock()
	}

	return kind
}

// Drain atomically swaps the output queue with an empty one and returns its
// previous contents. When dump_flag is on, it also computes BatchStats over
// the drained batch, retrievable via Stats().
func (d *Decoder) Drain() []decode.Event {
	d.outMu.Lock()
	out := d.outQ
	d.outQ = nil
	d.outMu.Unlock()

	d.stateMu.Lock()
	dump := d.cfg.dumpFlag
	d.stateMu.Unlock()

	if dump && len(out) > 0 {
		st := newBatchStats(out)
		d.statsMu.Lock()
		d.lastStats = &st
		d.statsMu.Unlock()
	}

	return out
}

// Stats returns the BatchStats computed by the most recent Drain call that
// found dump_flag on and a non-empty batch, or nil if none has run yet.
func (d *Decoder) Stats() *BatchStats {
	d.statsMu.Lock()
	defer d.statsMu.Unlock()
	return d.lastStats
}

// State reports the current control-signal state (Idle or Running).
func (d *Decoder) State() State {
	d.stateMu.Lock()
	defer d.stateMu.Unlock()
	return d.state
}

// ForceRunning moves the pipeline to Running without a Start buffer. It is
// meant for callers replaying data buffers with no accompanying control
// signal, such as a bench tool fed a bare event capture.
func (d *Decoder) ForceRunning() {
	d.stateMu.Lock()
	d.state = StateRunning
	d.stateMu.Unlock()
}

// Shutdown stops all workers and waits for them to exit. Any buffers still
// in the ingestion queue are dropped; the output queue is left for a final
// Drain call.
func (d *Decoder) Shutdown() {
	d.cancel()
	_ = d.grp.Wait()

	d.inMu.Lock()
	d.inQ = nil
	d.inMu.Unlock()
}

// workerLoop pops a buffer, decodes it, and appends the result until ctx is
// cancelled.
func (d *Decoder) workerLoop(ctx context.Context, dec FirmwareDecoder) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		buf, ok := d.popBuffer()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Millisecond):
			}
			continue
		}

		events, outcome := dec.Decode(buf)
		if !outcome.OK() {
			d.log.Errorf("pipeline: %v", outcome)
		}
		if len(events) == 0 {
			continue
		}

		d.outMu.Lock()
		d.outQ = append(d.outQ, events...)
		d.outMu.Unlock()
	}
}

func (d *Decoder) popBuffer() (decode.RawBuffer, bool) {
	d.inMu.Lock()
	defer d.inMu.Unlock()

	if len(d.inQ) == 0 {
		return decode.RawBuffer{}, false
	}
	buf := d.inQ[0]
	d.inQ = d.inQ[1:]
	return buf, true
}
