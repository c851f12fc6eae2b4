// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package f1 implements the F1 (32-bit-word, little-endian, hierarchical
// Board -> Channel-Pair -> Event) firmware wire-format decoder.
package f1 // import "github.com/dlnb/delila/decode/f1"

import (
	"sort"
	"sync/atomic"

	"github.com/dlnb/delila/decode"
	"github.com/dlnb/delila/internal/dlog"
	"golang.org/x/xerrors"
)

// Decoder decodes F1 RawBuffers. F1 carries no on-wire Start/Stop marker, so
// it is treated as implicitly running from construction to destruction:
// Classify always reports SignalEvent for any non-empty buffer. Decode is
// meant to be called from a single worker goroutine, but timeStepNs and
// module are stored atomically so SetTimeStep/SetModuleNumber can be called
// concurrently from a pipeline's configuration path while a worker decodes.
type Decoder struct {
	variant    Variant
	timeStepNs uint32 // atomic
	module     uint32 // atomic, holds a uint8
	log        *dlog.Logger
}

// New builds an F1 decoder for the given channel-pair layout variant.
func New(variant Variant, log *dlog.Logger) *Decoder {
	return &Decoder{
		variant:    variant,
		timeStepNs: 1, // default 1ns until SetTimeStep is called.
		log:        log,
	}
}

func (d *Decoder) SetTimeStep(ns uint32)    { atomic.StoreUint32(&d.timeStepNs, ns) }
func (d *Decoder) SetModuleNumber(id uint8) { atomic.StoreUint32(&d.module, uint32(id)) }

// Classify always returns SignalEvent for a non-empty buffer: F1 has no
// control-signal wire format.
func (d *Decoder) Classify(buf decode.RawBuffer) decode.SignalKind {
	if buf.Len() == 0 {
		return decode.SignalUnknown
	}
	return decode.SignalEvent
}

// Decode walks one or more Board Aggregate Blocks, each containing zero or
// more Channel-Pair Aggregate Blocks, each containing one or more Events,
// and stable-sorts the result by timestamp.
func (d *Decoder) Decode(buf decode.RawBuffer) ([]decode.Event, decode.Outcome) {
	if buf.Len()%4 != 0 {
		return nil, decode.Fail(decode.OutcomeSizeAlignment,
			xerrors.Errorf("f1: buffer size %d is not a multiple of 4", buf.Len()))
	}
	if buf.Len() < minBoardWords*4 {
		return nil, decode.Fail(decode.OutcomeInsufficientData,
			xerrors.Errorf("f1: buffer size %d smaller than one board header (%d)", buf.Len(), minBoardWords*4))
	}

	r := newReader(buf.Data)
	totalWords := r.TotalWords()

	events := make([]decode.Event, 0, totalWords/20+1)

	wordIndex := 0
	for wordIndex < totalWords {
		board, ok := decodeBoardHeader(r, wordIndex)
		if !ok {
			d.log.Warnf("f1: premature end of buffer reading board header at word %d", wordIndex)
			break
		}
		if outcome := validateBoardMagic(board.Magic); !outcome.OK() {
			d.log.Errorf("f1: %v", outcome)
			break
		}
		if outcome := validateBoardID(board.BoardID); !outcome.OK() {
			d.log.Errorf("f1: %v", outcome)
			break
		}
		if board.BoardFail {
			d.log.Warnf("f1: board 0x%x reports board-fail", board.BoardID)
		}

		wordIndex += minBoardWords
		boardEnd := r.Clamp(wordIndex - minBoardWords + int(board.SizeWords))
		if boardEnd < wordIndex {
			boardEnd = wordIndex
		}

		events = d.decodeBoard(r, &wordIndex, boardEnd, board, events)

		wordIndex = boardEnd
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampNs < events[j].TimestampNs
	})

	return events, decode.Ok
}

// decodeBoard walks the channel-pair blocks of one board, appending decoded
// events to out and returning the updated slice. wordIndex is advanced
// in-place past the pairs successfully consumed.
func (d *Decoder) decodeBoard(r *reader, wordIndex *int, boardEnd int, board BoardInfo, out []decode.Event) []decode.Event {
	for p := 0; p < maxChannelPairs; p++ {
		if board.DualChannelMask&(1<<uint(p)) == 0 {
			continue
		}

		if *wordIndex >= boardEnd {
			d.log.Warnf("f1: board 0x%x premature end before pair %d", board.BoardID, p)
			break
		}

		pair, ok := decodePairHeader(r, *wordIndex, d.variant)
		if !ok {
			d.log.Warnf("f1: board 0x%x premature end reading pair %d header", board.BoardID, p)
			return out
		}
		if outcome := validatePairHeaderBit(pair.HeaderBit); !outcome.OK() {
			d.log.Errorf("f1: board 0x%x pair %d: %v", board.BoardID, p, outcome)
			return out
		}
		if outcome := validateWaveformLen(pair.WaveformLen()); !outcome.OK() {
			d.log.Errorf("f1: board 0x%x pair %d: %v", board.BoardID, p, outcome)
			return out
		}

		*wordIndex += minPairWords
		pairEnd := r.Clamp(*wordIndex - minPairWords + int(pair.SizeWords))
		if pairEnd > boardEnd {
			pairEnd = boardEnd
		}

		params := eventParams{
			variant:    d.variant,
			module:     uint8(atomic.LoadUint32(&d.module)),
			timeStepNs: atomic.LoadUint32(&d.timeStepNs),
		}
		for *wordIndex < pairEnd && *wordIndex < boardEnd {
			ev, next, odd, outcome := decodeEvent(r, *wordIndex, pair, params)
			if !outcome.OK() {
				d.log.Errorf("f1: board 0x%x pair %d: %v", board.BoardID, p, outcome)
				*wordIndex = next
				return out
			}
			ev.Channel = uint8(p*2) + odd
			out = append(out, ev)
			*wordIndex = next
		}
	}
	return out
}
