// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import (
	"testing"

	"github.com/dlnb/delila/decode"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name        string
		cur         State
		kind        decode.SignalKind
		wantNext    State
		wantEnqueue bool
	}{
		{"idle+start", StateIdle, decode.SignalStart, StateRunning, false},
		{"idle+event", StateIdle, decode.SignalEvent, StateIdle, false},
		{"idle+stop", StateIdle, decode.SignalStop, StateIdle, false},
		{"running+event", StateRunning, decode.SignalEvent, StateRunning, true},
		{"running+stop", StateRunning, decode.SignalStop, StateIdle, false},
		{"running+start", StateRunning, decode.SignalStart, StateRunning, false},
		{"idle+unknown", StateIdle, decode.SignalUnknown, StateIdle, false},
		{"running+unknown", StateRunning, decode.SignalUnknown, StateRunning, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			next, enqueue := transition(tc.cur, tc.kind)
			if next != tc.wantNext {
				t.Fatalf("invalid next state: got=%v, want=%v", next, tc.wantNext)
			}
			if enqueue != tc.wantEnqueue {
				t.Fatalf("invalid enqueue: got=%v, want=%v", enqueue, tc.wantEnqueue)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	if got, want := StateIdle.String(), "idle"; got != want {
		t.Fatalf("invalid string: got=%q, want=%q", got, want)
	}
	if got, want := StateRunning.String(), "running"; got != want {
		t.Fatalf("invalid string: got=%q, want=%q", got, want)
	}
}
