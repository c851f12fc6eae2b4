// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"go-hep.org/x/hep/hbook"
	"gonum.org/v1/gonum/stat"

	"github.com/dlnb/delila/decode"
)

// BatchStats is a diagnostic summary computed once per drained batch, only
// when dump_flag is on. It is not part of the decoder's contract; nothing
// downstream of drain() depends on it.
type BatchStats struct {
	NEvents int
	MeanDtNs float64
	StdDtNs  float64

	// Hist is a histogram of inter-event delta-t, in nanoseconds, over the
	// batch. Callers that don't care about the shape can ignore it and read
	// MeanDtNs/StdDtNs instead.
	Hist *hbook.H1D
}

// newBatchStats computes BatchStats over one drained batch. The batch is a
// concatenation of per-buffer runs, each sorted by timestamp, so a delta
// across a run boundary can be negative. events must not be empty.
func newBatchStats(events []decode.Event) BatchStats {
	deltas := make([]float64, 0, len(events)-1)
	for i := 1; i < len(events); i++ {
		deltas = append(deltas, events[i].TimestampNs-events[i-1].TimestampNs)
	}

	h := hbook.NewH1D(100, 0, maxOr(deltas, 1))
	for _, dt := range deltas {
		h.Fill(dt, 1)
	}

	var mean, std float64
	if len(deltas) > 0 {
		mean, std = stat.MeanStdDev(deltas, nil)
	}

	return BatchStats{
		NEvents:  len(events),
		MeanDtNs: mean,
		StdDtNs:  std,
		Hist:     h,
	}
}

func maxOr(xs []float64, fallback float64) float64 {
	if len(xs) == 0 {
		return fallback
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	if m <= 0 {
		return fallback
	}
	return m
}
