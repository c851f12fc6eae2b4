// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bword

import (
	"bytes"
	"testing"
)

func TestReader(t *testing.T) {
	for _, tc := range []struct {
		name     string
		buf      []byte
		wordSize int
		nwords   int
	}{
		{
			name:     "4-byte words, exact fit",
			buf:      []byte{0, 1, 2, 3, 4, 5, 6, 7},
			wordSize: 4,
			nwords:   2,
		},
		{
			name:     "8-byte words, exact fit",
			buf:      make([]byte, 24),
			wordSize: 8,
			nwords:   3,
		},
		{
			name:     "empty buffer",
			buf:      nil,
			wordSize: 4,
			nwords:   0,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := New(tc.buf, tc.wordSize)
			if got, want := r.TotalWords(), tc.nwords; got != want {
				t.Fatalf("invalid total words: got=%d, want=%d", got, want)
			}
		})
	}
}

func TestReaderReadWord(t *testing.T) {
	buf := []byte{0, 1, 2, 3, 4, 5, 6, 7}
	r := New(buf, 4)

	w0, ok := r.ReadWord(0)
	if !ok {
		t.Fatalf("expected word 0 to be in bounds")
	}
	if !bytes.Equal(w0, []byte{0, 1, 2, 3}) {
		t.Fatalf("invalid word 0: got=%v", w0)
	}

	w1, ok := r.ReadWord(1)
	if !ok {
		t.Fatalf("expected word 1 to be in bounds")
	}
	if !bytes.Equal(w1, []byte{4, 5, 6, 7}) {
		t.Fatalf("invalid word 1: got=%v", w1)
	}

	if _, ok := r.ReadWord(2); ok {
		t.Fatalf("expected word 2 to be out of bounds")
	}
	if _, ok := r.ReadWord(-1); ok {
		t.Fatalf("expected negative index to be out of bounds")
	}
}

func TestReaderAdvance(t *testing.T) {
	r := New(make([]byte, 16), 4) // 4 words

	idx := 0
	if !r.Advance(&idx, 3) {
		t.Fatalf("expected advance by 3 to succeed")
	}
	if idx != 3 {
		t.Fatalf("invalid idx after advance: got=%d, want=3", idx)
	}

	if !r.Advance(&idx, 1) {
		t.Fatalf("expected advance to exact end to succeed")
	}
	if idx != 4 {
		t.Fatalf("invalid idx after advance: got=%d, want=4", idx)
	}

	if r.Advance(&idx, 1) {
		t.Fatalf("expected advance past end to fail")
	}
	if idx != 4 {
		t.Fatalf("idx must be unmodified on failed advance: got=%d", idx)
	}
}

func TestReaderRemainingWords(t *testing.T) {
	r := New(make([]byte, 40), 4) // 10 words

	for _, tc := range []struct {
		from int
		want int
	}{
		{from: 0, want: 10},
		{from: 5, want: 5},
		{from: 10, want: 0},
		{from: 11, want: 0},
	} {
		if got := r.RemainingWords(tc.from); got != tc.want {
			t.Fatalf("RemainingWords(%d): got=%d, want=%d", tc.from, got, tc.want)
		}
	}
}

func TestReaderClamp(t *testing.T) {
	r := New(make([]byte, 16), 4) // 4 words

	for _, tc := range []struct {
		idx  int
		want int
	}{
		{idx: -5, want: 0},
		{idx: 0, want: 0},
		{idx: 4, want: 4},
		{idx: 100, want: 4},
	} {
		if got := r.Clamp(tc.idx); got != tc.want {
			t.Fatalf("Clamp(%d): got=%d, want=%d", tc.idx, got, tc.want)
		}
	}
}
