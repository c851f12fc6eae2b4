// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import "github.com/dlnb/delila/decode"

// State is one of the two states of the decoder pipeline's control-signal
// state machine.
type State uint8

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// transition applies the Idle/Running control-signal state table. It
// returns the next state and whether the caller should enqueue the buffer
// that produced kind.
func transition(cur State, kind decode.SignalKind) (next State, enqueue bool) {
	switch kind {
	case decode.SignalStart:
		return StateRunning, false
	case decode.SignalStop:
		return StateIdle, false
	case decode.SignalEvent:
		if cur == StateRunning {
			return StateRunning, true
		}
		return StateIdle, false
	default: // SignalUnknown
		return cur, false
	}
}
