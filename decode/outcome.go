// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decode

import "fmt"

// OutcomeKind classifies the result of a decode/validate routine.
type OutcomeKind uint8

const (
	OutcomeOK OutcomeKind = iota
	OutcomeInvalidHeader
	OutcomeInsufficientData
	OutcomeOutOfBounds
	OutcomeCorruptedData
	OutcomeInvalidChannelPair
	OutcomeInvalidWaveformSize
	OutcomeTimestampError
	OutcomeUnknownDataType
	OutcomeSizeAlignment
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "OK"
	case OutcomeInvalidHeader:
		return "InvalidHeader"
	case OutcomeInsufficientData:
		return "InsufficientData"
	case OutcomeOutOfBounds:
		return "OutOfBounds"
	case OutcomeCorruptedData:
		return "CorruptedData"
	case OutcomeInvalidChannelPair:
		return "InvalidChannelPair"
	case OutcomeInvalidWaveformSize:
		return "InvalidWaveformSize"
	case OutcomeTimestampError:
		return "TimestampError"
	case OutcomeUnknownDataType:
		return "UnknownDataType"
	case OutcomeSizeAlignment:
		return "SizeAlignment"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", uint8(k))
	}
}

// Outcome carries the result of a decode/validate routine: a tag plus,
// for failures, the wrapped error explaining why.
type Outcome struct {
	Kind OutcomeKind
	Err  error
}

// OK reports whether the outcome is a successful decode.
func (o Outcome) OK() bool { return o.Kind == OutcomeOK }

func (o Outcome) Error() string {
	if o.Err == nil {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s: %v", o.Kind, o.Err)
}

// Ok is the zero-value success outcome.
var Ok = Outcome{Kind: OutcomeOK}

// Fail builds a failing Outcome of the given kind, wrapping err.
func Fail(kind OutcomeKind, err error) Outcome {
	return Outcome{Kind: kind, Err: err}
}
