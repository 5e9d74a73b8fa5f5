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

// Package core implements the distillation train digital twin: the
// FOPDT process blocks, the bumpless PI loops, the hysteretic quality
// gate, the interlock table, the fixed-step scheduler that couples
// them, and the metric computation over a finished run. Every run is
// request-scoped: a Scheduler owns its PlantModel, controllers, gate,
// and interlock table for exactly one call to Run and is never reused
// or shared across requests.
package core

import "fmt"

const eventLogCap = 200

// SingleResponse is the single-mode external response shape.
type SingleResponse struct {
	ChartData []ChartPoint  `json:"chartData"`
	Metrics   []LoopMetrics `json:"metrics"`
	Gate      GateStats     `json:"gate"`
	EventLog  []Event       `json:"eventLog"`
}

// SuiteResponse is the suite-mode external response shape.
type SuiteResponse struct {
	Scenarios []ScenarioResult `json:"scenarios"`
}

// RunSingle executes one scenario to completion and builds the
// single-mode response. The only error this can return is a genuine
// runtime fault (e.g. a non-finite trace sample slipping past
// DecodeRequest's normalization); ordinary input problems never reach
// here as errors, per the engine's recovery-first policy.
func RunSingle(scn Scenario) (SingleResponse, error) {
	sched := NewScheduler(scn)
	tr := sched.Run()
	if err := validateTrace(tr); err != nil {
		return SingleResponse{}, err
	}
	metrics, gate := ComputeAllMetrics(tr, scn.Metrics)
	return SingleResponse{
		ChartData: tr.Downsample(scn.Gate),
		Metrics:   metrics,
		Gate:      gate,
		EventLog:  tr.EventLog(eventLogCap),
	}, nil
}

// RunSuiteRequest executes the deterministic ten-scenario batch.
func RunSuiteRequest(scn Scenario) (SuiteResponse, error) {
	results := RunSuite(scn)
	return SuiteResponse{Scenarios: results}, nil
}

// validateTrace is the engine's last line of defense: it should never
// fire given DecodeRequest's upfront sanitization, but a genuine
// numeric blowup (e.g. pathological user-supplied tuning) must surface
// as {error} rather than a silently corrupt trace.
func validateTrace(tr *Trace) error {
	for i, pv := range tr.PV {
		if isBad(pv.TT106) || isBad(pv.Rho15) || isBad(pv.Lv201) || isBad(pv.DTsub) {
			return fmt.Errorf("engine: non-finite process variable at step %d", i)
		}
	}
	return nil
}

func isBad(v float64) bool {
	return v != v || v > 1e12 || v < -1e12
}
