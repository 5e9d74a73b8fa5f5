// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main provides a one-shot CLI runner for a single simulation
// (or, with -suite, the ten-scenario suite): it runs the engine to
// completion, prints a summary to stdout, and for a single run
// optionally dumps the downsampled chart trace and event log as JSONL.
package main

import (
	"flag"
	"fmt"
	"log"

	"simtrain/internal/train/core"
	"simtrain/internal/train/sinks"
)

func main() {
	simS := flag.Float64("sim_s", 3600, "Simulation duration in seconds")
	dt := flag.Float64("dt", 1, "Step size in seconds")
	noise := flag.Bool("noise", false, "Enable measurement noise")
	suite := flag.Bool("suite", false, "Run the deterministic ten-scenario suite instead of a single run")
	traceLog := flag.String("trace_log", "", "If non-empty, write the downsampled chart trace as JSONL to this path")
	eventLog := flag.String("event_log", "", "If non-empty, write the event log as JSONL to this path")
	flag.Parse()

	scn := core.DefaultScenario()
	scn.SimS = *simS
	scn.Dt = *dt
	scn.Noise = *noise

	if *suite {
		resp, err := core.RunSuiteRequest(scn)
		if err != nil {
			log.Fatalf("suite run failed: %v", err)
		}
		for _, r := range resp.Scenarios {
			fmt.Printf("%-22s totalIAE=%10.2f switches=%d product_pct=%.1f%%\n", r.Name, r.TotalIAE, r.Gate.Switches, r.Gate.ProductPct)
		}
		return
	}

	sched := core.NewScheduler(scn)
	tr := sched.Run()
	metricsOut, gate := core.ComputeAllMetrics(tr, scn.Metrics)

	fmt.Printf("run complete: %d samples, route switches=%d, product time=%.1f%%\n", len(tr.T), gate.Switches, gate.ProductPct)
	for _, m := range metricsOut {
		fmt.Printf("  %-10s IAE=%10.2f ITAE=%12.2f overshoot=%v settling=%v\n", m.Name, m.IAE, m.ITAE, m.OvershootPct, m.SettlingTime)
	}

	if *traceLog != "" {
		sink, err := sinks.NewTraceFileSink(*traceLog)
		if err != nil {
			log.Fatalf("open trace log: %v", err)
		}
		if err := sink.WriteAll(tr.Downsample(scn.Gate)); err != nil {
			log.Fatalf("write trace log: %v", err)
		}
		if err := sink.Close(); err != nil {
			log.Fatalf("close trace log: %v", err)
		}
	}
	if *eventLog != "" {
		sink, err := sinks.NewEventFileSink(*eventLog)
		if err != nil {
			log.Fatalf("open event log: %v", err)
		}
		if err := sink.WriteAll(tr.EventLog(len(tr.Events))); err != nil {
			log.Fatalf("write event log: %v", err)
		}
		if err := sink.Close(); err != nil {
			log.Fatalf("close event log: %v", err)
		}
	}
}
