// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dlog is the structured diagnostic logger shared by the firmware
// decoders and the decoder pipeline. It wraps a standard *log.Logger with
// an atomically-stored level, so the level can be changed concurrently
// with decode workers logging, with no mutable process-wide logger state.
package dlog // import "github.com/dlnb/delila/internal/dlog"

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level is a diagnostic log level.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger is a leveled wrapper around a standard library logger.
type Logger struct {
	out   *log.Logger
	level int32 // atomic, holds a Level
}

// New builds a Logger writing to stdout at the given prefix. The initial
// level is LevelInfo.
func New(prefix string) *Logger {
	l := &Logger{out: log.New(os.Stdout, prefix, 0)}
	l.SetLevel(LevelInfo)
	return l
}

// SetLevel atomically sets the minimum level that will be emitted.
func (l *Logger) SetLevel(lvl Level) { atomic.StoreInt32(&l.level, int32(lvl)) }

// Level atomically reads the current minimum level.
func (l *Logger) Level() Level { return Level(atomic.LoadInt32(&l.level)) }

func (l *Logger) logf(lvl Level, format string, args ...interface{}) {
	if l == nil || l.out == nil {
		return
	}
	if lvl < l.Level() {
		return
	}
	l.out.Printf("[%s] %s", lvl, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...interface{}) { l.logf(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.logf(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.logf(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.logf(LevelError, format, args...) }

// DumpBuffer writes a hex dump of p, tagged, at Debug level; it writes
// nothing when the level is above LevelDebug. The decoders and the pipeline
// do not call it, and the pipeline's dump flag does not change the level.
func (l *Logger) DumpBuffer(tag string, p []byte) {
	if l == nil || l.out == nil || l.Level() > LevelDebug {
		return
	}
	l.out.Printf("[DEBUG] %s: % x", tag, p)
}
