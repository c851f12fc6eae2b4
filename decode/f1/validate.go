// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f1

import (
	"github.com/dlnb/delila/decode"
	"golang.org/x/xerrors"
)

// Structural constants for the F1 (32-bit, board/pair/event) wire format.
const (
	boardMagic      = 0xA
	maxChannelPairs = 8
	maxBoardID      = 31
	maxWaveformLen  = 65536

	minBoardWords = 4 // board header is 4 words.
	minPairWords  = 2 // pair header is 2 words.
)

func validateBoardMagic(magic uint32) decode.Outcome {
	if magic != boardMagic {
		return decode.Fail(decode.OutcomeInvalidHeader,
			xerrors.Errorf("f1: invalid board magic (got=0x%x, want=0x%x)", magic, boardMagic))
	}
	return decode.Ok
}

func validateBoardID(id uint8) decode.Outcome {
	if id > maxBoardID {
		return decode.Fail(decode.OutcomeInvalidHeader,
			xerrors.Errorf("f1: invalid board id (got=%d, max=%d)", id, maxBoardID))
	}
	return decode.Ok
}

func validateWaveformLen(n int) decode.Outcome {
	if n < 0 || n > maxWaveformLen {
		return decode.Fail(decode.OutcomeInvalidWaveformSize,
			xerrors.Errorf("f1: invalid waveform length %d (max=%d)", n, maxWaveformLen))
	}
	return decode.Ok
}

func validatePairHeaderBit(set bool) decode.Outcome {
	if !set {
		return decode.Fail(decode.OutcomeInvalidHeader,
			xerrors.Errorf("f1: pair header bit[31] not set"))
	}
	return decode.Ok
}
