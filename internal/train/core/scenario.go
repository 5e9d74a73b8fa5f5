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

import (
	"fmt"
	"math"
)

// neverT is the disturbance-schedule sentinel meaning "never triggers
// within any plausible sim_s". Finite (unlike math.Inf) so a Scenario
// round-trips through JSON for preset storage.
const neverT = 1e18

// LoopTuning holds the Kp/Ti pair for one of the six PI loops.
type LoopTuning struct {
	Kp float64
	Ti float64
}

// SPStep is one scheduled setpoint-step event: at t, add delta to the
// named setpoint. Unknown keys are ignored by the Scheduler.
type SPStep struct {
	T     float64
	Key   string
	Delta float64
}

// Setpoints holds the base target for every loop.
type Setpoints struct {
	Ffeed   float64
	Tfeed   float64
	Treb    float64
	Tcond   float64
	Freflux float64
	Lv201   float64
}

// RampRates holds the maximum per-second ramp rate toward target for
// each setpoint; a non-positive or non-finite rate means "jump to target".
type RampRates struct {
	Ffeed   float64
	Tfeed   float64
	Treb    float64
	Tcond   float64
	Freflux float64
	Lv201   float64
}

// DisturbanceSchedule holds the start time and amplitude for each
// disturbance, plus the analyzer-fail schedule.
type DisturbanceSchedule struct {
	TFeedDist    float64
	DFeedTemp    float64
	TVaporDist   float64
	DVaporLoad   float64
	TCwDegrade   float64
	CwDegradeDrop float64

	AnalyzerFailEnable bool
	TAnalyzerFail      float64
}

// MetricOptions holds the normalization spans, settling band, and hold
// window used by Metrics.
type MetricOptions struct {
	NormSpans   map[string]float64
	SettleBand  float64
	HoldWindowS float64
}

// Scenario is the immutable bundle the Scheduler consumes for one run.
type Scenario struct {
	SimS  float64
	Dt    float64
	Noise bool
	Seed  *int64

	SP   Setpoints
	Ramp RampRates

	MVInit MV

	Tuning map[string]LoopTuning // keys: FIC101, TIC101, TIC102, TIC201, FIC201, LIC201

	Gate     GateConfig
	Interlock InterlockConfig

	Dist DisturbanceSchedule

	SPSteps []SPStep

	AnalyzerFail bool // single-mode toggle; suite scenarios set Dist.AnalyzerFailEnable directly

	Metrics MetricOptions
}

// DefaultScenario returns a scenario with every field at its documented
// default, matching the nominal operating point and conservative tuning.
func DefaultScenario() Scenario {
	return Scenario{
		SimS:  3600,
		Dt:    1,
		Noise: false,
		SP: Setpoints{
			Ffeed:   fFeed0,
			Tfeed:   tFeed0,
			Treb:    tReb0,
			Tcond:   tCond0,
			Freflux: 50,
			Lv201:   l0,
		},
		Ramp: RampRates{Ffeed: 2, Tfeed: 0.05, Treb: 0.05, Tcond: 0.05, Freflux: 2, Lv201: 2},
		MVInit: MV{
			Feed: uFeed0, SteamPre: uSteamPre0, SteamReb: uSteamReb0,
			Cw: uCw0, Reflux: uReflux0, Draw: uDraw0,
		},
		Tuning: map[string]LoopTuning{
			"FIC101": {Kp: 2.0, Ti: 20},
			"TIC101": {Kp: 1.5, Ti: 90},
			"TIC102": {Kp: 1.2, Ti: 120},
			"TIC201": {Kp: 1.5, Ti: 90},
			"FIC201": {Kp: 2.0, Ti: 20},
			"LIC201": {Kp: 2.5, Ti: 60},
		},
		Gate: GateConfig{
			TTOnLow: 93, TTOnHigh: 97,
			RhoOnLow: 0.735, RhoOnHigh: 0.745,
			DTsubMin: 3,
			DelayOnS: 120, DelayOffS: 30,
			PermLMin: 20, PermLMax: 80,
		},
		Interlock: InterlockConfig{
			TFeedHH:    160,
			TRebHH:     200,
			TCondOutHH: 46,
			Lv201HH:    90,
			Lv201LL:    10,
			UDrawForceHigh: 60,
			UDrawForceLow:  10,
		},
		Dist: DisturbanceSchedule{
			TFeedDist: neverT, DFeedTemp: 0,
			TVaporDist: neverT, DVaporLoad: 0,
			TCwDegrade: neverT, CwDegradeDrop: 0,
			AnalyzerFailEnable: false, TAnalyzerFail: neverT,
		},
		Metrics: MetricOptions{SettleBand: 0.02, HoldWindowS: 60},
	}
}

// clampScenario applies §6's range clamps/swaps in place.
func clampScenario(s *Scenario) {
	s.SimS = clamp(s.SimS, 600, 7200)
	s.Dt = clamp(s.Dt, 0.5, 5.0)
	if s.Gate.TTOnLow > s.Gate.TTOnHigh {
		s.Gate.TTOnLow, s.Gate.TTOnHigh = s.Gate.TTOnHigh, s.Gate.TTOnLow
	}
	if s.Gate.RhoOnLow > s.Gate.RhoOnHigh {
		s.Gate.RhoOnLow, s.Gate.RhoOnHigh = s.Gate.RhoOnHigh, s.Gate.RhoOnLow
	}
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// numField reads a numeric field from a decoded JSON map (float64 or a
// string that parses as a float), falling back to def on any mismatch.
func numField(m map[string]any, key string, def float64) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case float64:
		return finiteOr(t, def)
	case string:
		if t == "" {
			return def
		}
		var f float64
		if _, err := fmt.Sscanf(t, "%g", &f); err == nil {
			return finiteOr(f, def)
		}
		return def
	default:
		return def
	}
}

func boolField(m map[string]any, key string, def bool) bool {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		switch t {
		case "true":
			return true
		case "false":
			return false
		default:
			return def
		}
	default:
		return def
	}
}

// DecodeRequest normalizes a raw decoded-JSON request map into a
// Scenario, substituting defaults for any missing/non-finite/
// non-numeric field and applying §6/§7's silent range corrections.
// This function never returns an error: every input shape problem is
// recovered locally, per the engine's error-handling policy.
func DecodeRequest(raw map[string]any) (mode string, s Scenario) {
	s = DefaultScenario()

	mode, _ = raw["mode"].(string)
	if mode != "single" && mode != "suite" {
		mode = "single"
	}

	s.SimS = numField(raw, "sim_s", s.SimS)
	s.Dt = numField(raw, "dt", s.Dt)
	s.Noise = boolField(raw, "noise", s.Noise)

	s.SP.Ffeed = numField(raw, "sp_Ffeed", s.SP.Ffeed)
	s.SP.Tfeed = numField(raw, "sp_Tfeed", s.SP.Tfeed)
	s.SP.Treb = numField(raw, "sp_Treb", s.SP.Treb)
	s.SP.Tcond = numField(raw, "sp_Tcond", s.SP.Tcond)
	s.SP.Freflux = numField(raw, "sp_Freflux", s.SP.Freflux)
	s.SP.Lv201 = numField(raw, "sp_Lv201", s.SP.Lv201)

	for _, loop := range []string{"FIC101", "TIC101", "TIC102", "TIC201", "FIC201", "LIC201"} {
		def := s.Tuning[loop]
		kp := numField(raw, loop+"_Kp", def.Kp)
		ti := numField(raw, loop+"_Ti", def.Ti)
		if kp < 0 {
			kp = def.Kp
		}
		if ti <= 0 {
			ti = def.Ti
		}
		s.Tuning[loop] = LoopTuning{Kp: kp, Ti: ti}
	}

	s.Gate.TTOnLow = numField(raw, "g_tt_low", s.Gate.TTOnLow)
	s.Gate.TTOnHigh = numField(raw, "g_tt_high", s.Gate.TTOnHigh)
	s.Gate.RhoOnLow = numField(raw, "g_rho_low", s.Gate.RhoOnLow)
	s.Gate.RhoOnHigh = numField(raw, "g_rho_high", s.Gate.RhoOnHigh)
	s.Gate.DTsubMin = numField(raw, "g_dTsub", s.Gate.DTsubMin)
	s.Gate.DelayOnS = numField(raw, "g_delay_on", s.Gate.DelayOnS)
	s.Gate.DelayOffS = numField(raw, "g_delay_off", s.Gate.DelayOffS)

	s.AnalyzerFail = boolField(raw, "analyzerFail", s.AnalyzerFail)
	if s.AnalyzerFail {
		s.Dist.AnalyzerFailEnable = true
		s.Dist.TAnalyzerFail = numField(raw, "t_analyzer_fail", 1800)
	}

	clampScenario(&s)
	return mode, s
}
