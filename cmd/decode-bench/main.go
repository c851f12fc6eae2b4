// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// decode-bench feeds a raw digitizer buffer file through a decoder pipeline
// and prints the decoded events.
//
// Usage: decode-bench [OPTIONS] FILE
//
// Example:
//
//	$> decode-bench -kind=f2 -time-step=2 ./testdata/run042.raw
//	channel=3   module=0   ts_ns=2004.0 energy=812    energy_short=110    waveform=64
//	channel=5   module=0   ts_ns=2018.0 energy=790    energy_short=98     waveform=0
//	[...]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dlnb/delila/decode"
	"github.com/dlnb/delila/pipeline"
)

func main() {
	log.SetPrefix("decode-bench: ")
	log.SetFlags(0)

	kind := flag.String("kind", "f2", "firmware kind: f1-psd, f1-pha, f2")
	timeStep := flag.Uint("time-step", 1, "time step, in nanoseconds")
	moduleNumber := flag.Uint("module", 0, "module number stamped onto events")
	dump := flag.Bool("dump", false, "enable diagnostic batch statistics")

	flag.Usage = func() {
		fmt.Printf(`decode-bench feeds a raw digitizer buffer file through a decoder
pipeline and prints the decoded events.

Usage: decode-bench [OPTIONS] FILE

`)
		flag.PrintDefaults()
	}

	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		log.Fatalf("missing path to input raw buffer file")
	}

	fk, err := firmwareKindOf(*kind)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	err = process(os.Stdout, flag.Arg(0), fk, uint32(*timeStep), uint8(*moduleNumber), *dump)
	if err != nil {
		log.Fatalf("could not process %q: %+v", flag.Arg(0), err)
	}
}

func firmwareKindOf(s string) (pipeline.FirmwareKind, error) {
	switch s {
	case "f1-psd":
		return pipeline.FirmwareF1PSD, nil
	case "f1-pha":
		return pipeline.FirmwareF1PHA, nil
	case "f2":
		return pipeline.FirmwareF2, nil
	default:
		return 0, fmt.Errorf("decode-bench: unknown firmware kind %q", s)
	}
}

func process(w *os.File, fname string, kind pipeline.FirmwareKind, timeStepNs uint32, module uint8, dump bool) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", fname, err)
	}

	wordSize := decode.WordSizeF1
	if kind == pipeline.FirmwareF2 {
		wordSize = decode.WordSizeF2
	}
	buf, err := decode.NewRawBuffer(data, wordSize)
	if err != nil {
		return fmt.Errorf("could not build raw buffer: %w", err)
	}

	dec := pipeline.New(1, kind,
		pipeline.WithTimeStep(timeStepNs),
		pipeline.WithModuleNumber(module),
		pipeline.WithDumpFlag(dump),
	)
	defer dec.Shutdown()

	signal := dec.Submit(buf)
	if signal == decode.SignalUnknown {
		return fmt.Errorf("decode-bench: input buffer did not classify as event data")
	}
	if signal == decode.SignalEvent && dec.State() == pipeline.StateIdle {
		log.Printf("input classified as Event but pipeline was idle; forcing running state and resubmitting")
		dec.ForceRunning()
		dec.Submit(buf)
	}

	// Give the worker pool a moment to drain the single submitted buffer.
	time.Sleep(10 * time.Millisecond)

	events := dec.Drain()
	for _, ev := range events {
		fmt.Fprintf(w, "channel=%-3d module=%-3d ts_ns=%.1f energy=%-6d energy_short=%-6d waveform=%d\n",
			ev.Channel, ev.Module, ev.TimestampNs, ev.Energy, ev.EnergyShort, ev.WaveformSize)
	}

	if dump {
		if st := dec.Stats(); st != nil {
			fmt.Fprintf(w, "--- batch stats: n=%d mean_dt_ns=%.2f std_dt_ns=%.2f\n", st.NEvents, st.MeanDtNs, st.StdDtNs)
		}
	}

	return nil
}
