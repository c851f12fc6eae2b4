// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f1

import "github.com/dlnb/delila/decode"

// unpackWaveform decodes nWords F1 waveform words (two 16-bit samples per
// word, waveformLen = nWords*2 samples) into ev's probe arrays, which must
// already be sized to waveformLen via ev.ResizeWaveform.
//
// In dual-trace mode, one physical analog input is time-multiplexed between
// two probes at half rate each: even sample indices carry AP1, odd indices
// carry AP2. A full-length AP1 trace is re-derived by sample-and-holding the
// preceding even value into each odd slot, computed from a scratch slice of
// raw samples rather than read back through the output slice, so the result
// does not depend on fill order.
func unpackWaveform(r *reader, idx int, nWords int, dualTrace bool, ev *decode.Event) (nextIdx int, ok bool) {
	n := nWords * 2
	raw := make([]int32, n)

	for j := 0; j < nWords; j++ {
		w, wok := r.word32(idx + j)
		if !wok {
			return idx, false
		}

		for k := 0; k < 2; k++ {
			s := uint16(w >> (16 * k))
			i := 2*j + k

			raw[i] = int32(s & 0x3FFF)
			ev.DigitalProbe1[i] = uint8((s >> 14) & 0x1)
			ev.DigitalProbe2[i] = uint8((s >> 15) & 0x1)
		}
	}

	switch {
	case dualTrace:
		for i := 0; i < n; i++ {
			if i%2 == 0 {
				ev.AnalogProbe1[i] = raw[i]
				ev.AnalogProbe2[i] = 0
				continue
			}
			ev.AnalogProbe2[i] = raw[i]
			ev.AnalogProbe1[i] = raw[i-1]
		}
	default:
		copy(ev.AnalogProbe1, raw)
	}

	return idx + nWords, true
}
