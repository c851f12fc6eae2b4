// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bword implements a bounds-checked, word-aligned reader over an
// in-memory byte slice, shared by the F1 (32-bit) and F2 (64-bit) firmware
// decoders. Reads never assume the underlying slice is aligned to the word
// size, and out-of-bounds reads return a sentinel rather than panicking.
package bword // import "github.com/dlnb/delila/decode/internal/bword"

// Reader walks a byte slice word-by-word. It never mutates the underlying
// slice and holds no cursor of its own beyond what callers pass in
// explicitly.
type Reader struct {
	buf      []byte
	wordSize int
	nwords   int
}

// New builds a Reader over buf, treating it as a sequence of words of
// wordSize bytes (4 or 8). Any trailing bytes shorter than one word are
// ignored: they are not counted by TotalWords/RemainingWords and cannot be
// read through ReadWord.
func New(buf []byte, wordSize int) *Reader {
	return &Reader{
		buf:      buf,
		wordSize: wordSize,
		nwords:   len(buf) / wordSize,
	}
}

// TotalWords returns the number of complete words in the underlying buffer.
func (r *Reader) TotalWords() int { return r.nwords }

// RemainingWords returns how many complete words remain from index from.
func (r *Reader) RemainingWords(from int) int {
	if from >= r.nwords {
		return 0
	}
	return r.nwords - from
}

// InBounds reports whether word index idx exists in the buffer.
func (r *Reader) InBounds(idx int) bool {
	return idx >= 0 && idx < r.nwords
}

// ReadWord reads the raw bytes of word idx as a big-endian-agnostic byte
// slice view (a sub-slice of the buffer, not a copy). ok is false when idx
// is out of bounds, in which case the returned slice is nil.
func (r *Reader) ReadWord(idx int) (word []byte, ok bool) {
	if !r.InBounds(idx) {
		return nil, false
	}
	start := idx * r.wordSize
	return r.buf[start : start+r.wordSize], true
}

// TryReadWord is an alias for ReadWord, named for call sites that read as
// an (ok bool) probe rather than a bounds-checked fetch.
func (r *Reader) TryReadWord(idx int) ([]byte, bool) { return r.ReadWord(idx) }

// Advance moves *idx forward by count words, refusing to move past the end
// of the buffer. It returns false (and leaves *idx unmodified) on overflow.
func (r *Reader) Advance(idx *int, count int) bool {
	next := *idx + count
	if next < 0 || next > r.nwords {
		return false
	}
	*idx = next
	return true
}

// Clamp returns idx clamped into [0, TotalWords()].
func (r *Reader) Clamp(idx int) int {
	switch {
	case idx < 0:
		return 0
	case idx > r.nwords:
		return r.nwords
	default:
		return idx
	}
}
