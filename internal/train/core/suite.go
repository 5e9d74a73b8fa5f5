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

package core

// ScenarioResult is one entry of the suite-mode response: a named
// scenario's gate statistics, total IAE across loops, and per-loop
// metrics.
type ScenarioResult struct {
	Name     string        `json:"name"`
	Gate     GateStats     `json:"gate"`
	TotalIAE float64       `json:"totalIAE"`
	Metrics  []LoopMetrics `json:"metrics"`
}

// suiteScenario is one named variant of the base scenario, expressed as
// a mutation applied before running.
type suiteScenario struct {
	name   string
	mutate func(s *Scenario)
}

var suiteScenarios = []suiteScenario{
	{name: "A0_BASELINE", mutate: func(s *Scenario) {}},
	{name: "B1_STEP_TFEED", mutate: func(s *Scenario) {
		s.SPSteps = append(s.SPSteps, SPStep{T: 600, Key: "TIC-101", Delta: 3})
	}},
	{name: "B2_STEP_TREB", mutate: func(s *Scenario) {
		s.SPSteps = append(s.SPSteps, SPStep{T: 600, Key: "TIC-102", Delta: 3})
	}},
	{name: "B3_STEP_TCOND", mutate: func(s *Scenario) {
		s.SPSteps = append(s.SPSteps, SPStep{T: 600, Key: "TIC-201", Delta: 2})
	}},
	{name: "B4_STEP_FFEED", mutate: func(s *Scenario) {
		s.SPSteps = append(s.SPSteps, SPStep{T: 600, Key: "FIC-101", Delta: 5})
	}},
	{name: "B5_STEP_FREFLUX", mutate: func(s *Scenario) {
		s.SPSteps = append(s.SPSteps, SPStep{T: 600, Key: "FIC-201", Delta: 5})
	}},
	{name: "B6_STEP_LV201", mutate: func(s *Scenario) {
		s.SPSteps = append(s.SPSteps, SPStep{T: 600, Key: "LIC-201", Delta: 5})
	}},
	{name: "C1_DIST_FEED_TEMP", mutate: func(s *Scenario) {
		s.Dist.TFeedDist = 0
		s.Dist.DFeedTemp = 8
	}},
	{name: "C2_DIST_CW_DEGRADE", mutate: func(s *Scenario) {
		s.Dist.TCwDegrade = 0
		s.Dist.CwDegradeDrop = 0.25
	}},
	{name: "C3_ANALYZER_FAIL", mutate: func(s *Scenario) {
		s.Dist.AnalyzerFailEnable = true
		s.Dist.TAnalyzerFail = 1800
	}},
}

// RunSuite runs the deterministic ten-scenario batch (noise always
// disabled, regardless of the base scenario's Noise flag) and returns
// one ScenarioResult per scenario, in fixed order.
func RunSuite(base Scenario) []ScenarioResult {
	base.Noise = false
	out := make([]ScenarioResult, 0, len(suiteScenarios))
	for _, sc := range suiteScenarios {
		scn := base
		scn.SPSteps = append([]SPStep(nil), base.SPSteps...)
		sc.mutate(&scn)

		sched := NewScheduler(scn)
		tr := sched.Run()
		metrics, gate := ComputeAllMetrics(tr, scn.Metrics)

		out = append(out, ScenarioResult{
			Name:     sc.name,
			Gate:     gate,
			TotalIAE: TotalIAE(metrics),
			Metrics:  metrics,
		})
	}
	return out
}
