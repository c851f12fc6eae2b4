// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pipeline

import "github.com/dlnb/delila/internal/dlog"

// config carries every value settable by an Option.
type config struct {
	timeStepNs   uint32
	moduleNumber uint8
	dumpFlag     bool
	log          *dlog.Logger
}

func defaultConfig() config {
	return config{
		timeStepNs: 1,
		log:        dlog.New("pipeline: "),
	}
}

// Option configures a Decoder at construction time.
type Option func(*config)

// WithTimeStep sets the firmware time step, in nanoseconds, used to scale
// raw timestamp fields into event.timestamp_ns.
func WithTimeStep(ns uint32) Option {
	return func(c *config) { c.timeStepNs = ns }
}

// WithModuleNumber sets the module/board id stamped onto every decoded
// event.
func WithModuleNumber(id uint8) Option {
	return func(c *config) { c.moduleNumber = id }
}

// WithDumpFlag turns on diagnostic batch statistics (see Decoder.Stats).
// It does not dump raw buffers.
func WithDumpFlag(on bool) Option {
	return func(c *config) { c.dumpFlag = on }
}

// WithLogger overrides the pipeline's default logger.
func WithLogger(log *dlog.Logger) Option {
	return func(c *config) { c.log = log }
}
