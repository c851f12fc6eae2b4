// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f2

import (
	"github.com/dlnb/delila/decode"
	"golang.org/x/xerrors"
)

// Structural constants for the F2 (64-bit, flat event group) wire format.
const (
	dataMagic      = 0x2
	maxChannel     = 127
	maxWaveformLen = 65536
)

func validateDataMagic(magic uint64) decode.Outcome {
	if magic != dataMagic {
		return decode.Fail(decode.OutcomeUnknownDataType,
			xerrors.Errorf("f2: invalid header type (got=0x%x, want=0x%x)", magic, dataMagic))
	}
	return decode.Ok
}

func validateChannel(ch uint8) decode.Outcome {
	if ch > maxChannel {
		return decode.Fail(decode.OutcomeInvalidChannelPair,
			xerrors.Errorf("f2: invalid channel (got=%d, max=%d)", ch, maxChannel))
	}
	return decode.Ok
}

func validateWaveformLen(n int) decode.Outcome {
	if n < 0 || n > maxWaveformLen {
		return decode.Fail(decode.OutcomeInvalidWaveformSize,
			xerrors.Errorf("f2: invalid waveform length %d (max=%d)", n, maxWaveformLen))
	}
	return decode.Ok
}
