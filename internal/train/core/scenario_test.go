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
	"math"
	"testing"
)

func TestDecodeRequestEmptyMapYieldsDefaults(t *testing.T) {
	mode, s := DecodeRequest(map[string]any{})
	if mode != "single" {
		t.Fatalf("expected default mode single, got %q", mode)
	}
	def := DefaultScenario()
	if s.SimS != def.SimS || s.Dt != def.Dt {
		t.Fatalf("expected default SimS/Dt, got %v/%v", s.SimS, s.Dt)
	}
}

func TestDecodeRequestUnknownModeFallsBackToSingle(t *testing.T) {
	mode, _ := DecodeRequest(map[string]any{"mode": "bogus"})
	if mode != "single" {
		t.Fatalf("expected fallback mode single, got %q", mode)
	}
	mode2, _ := DecodeRequest(map[string]any{"mode": "suite"})
	if mode2 != "suite" {
		t.Fatalf("expected mode suite to pass through, got %q", mode2)
	}
}

func TestDecodeRequestClampsSimSAndDt(t *testing.T) {
	_, s := DecodeRequest(map[string]any{"sim_s": 100.0, "dt": 50.0})
	if s.SimS != 600 {
		t.Fatalf("expected sim_s clamped to 600, got %v", s.SimS)
	}
	if s.Dt != 5.0 {
		t.Fatalf("expected dt clamped to 5.0, got %v", s.Dt)
	}
}

func TestDecodeRequestNonFiniteNumericFallsBackToDefault(t *testing.T) {
	def := DefaultScenario()
	_, s := DecodeRequest(map[string]any{"sim_s": math.NaN()})
	if s.SimS != def.SimS {
		t.Fatalf("expected NaN sim_s to fall back to default %v, got %v", def.SimS, s.SimS)
	}
	_, s2 := DecodeRequest(map[string]any{"sim_s": math.Inf(1)})
	if s2.SimS != def.SimS {
		t.Fatalf("expected +Inf sim_s to fall back to default %v, got %v", def.SimS, s2.SimS)
	}
}

func TestDecodeRequestStringNumericCoercion(t *testing.T) {
	_, s := DecodeRequest(map[string]any{"sim_s": "1200"})
	if s.SimS != 1200 {
		t.Fatalf("expected string-coerced sim_s=1200, got %v", s.SimS)
	}
	_, s2 := DecodeRequest(map[string]any{"sim_s": "not-a-number"})
	if s2.SimS != DefaultScenario().SimS {
		t.Fatalf("expected unparsable string to fall back to default, got %v", s2.SimS)
	}
}

func TestDecodeRequestBoolStringCoercion(t *testing.T) {
	_, s := DecodeRequest(map[string]any{"noise": "true"})
	if !s.Noise {
		t.Fatalf("expected string 'true' to decode as noise=true")
	}
	_, s2 := DecodeRequest(map[string]any{"noise": "false"})
	if s2.Noise {
		t.Fatalf("expected string 'false' to decode as noise=false")
	}
	_, s3 := DecodeRequest(map[string]any{"noise": "maybe"})
	if s3.Noise != DefaultScenario().Noise {
		t.Fatalf("expected unrecognized noise string to fall back to default")
	}
}

func TestDecodeRequestGateThresholdsSwappedWhenInverted(t *testing.T) {
	_, s := DecodeRequest(map[string]any{"g_tt_low": 97.0, "g_tt_high": 93.0})
	if s.Gate.TTOnLow != 93 || s.Gate.TTOnHigh != 97 {
		t.Fatalf("expected inverted TT thresholds swapped, got low=%v high=%v", s.Gate.TTOnLow, s.Gate.TTOnHigh)
	}
}

func TestDecodeRequestNegativeKpRejected(t *testing.T) {
	def := DefaultScenario()
	_, s := DecodeRequest(map[string]any{"FIC101_Kp": -5.0})
	if s.Tuning["FIC101"].Kp != def.Tuning["FIC101"].Kp {
		t.Fatalf("expected negative Kp rejected in favor of default, got %v", s.Tuning["FIC101"].Kp)
	}
}

func TestDecodeRequestAnalyzerFailEnablesDisturbance(t *testing.T) {
	_, s := DecodeRequest(map[string]any{"analyzerFail": true, "t_analyzer_fail": 900.0})
	if !s.Dist.AnalyzerFailEnable {
		t.Fatalf("expected analyzerFail=true to enable the disturbance schedule")
	}
	if s.Dist.TAnalyzerFail != 900 {
		t.Fatalf("expected t_analyzer_fail=900 to carry through, got %v", s.Dist.TAnalyzerFail)
	}
}

func TestDecodeRequestNeverErrors(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("DecodeRequest panicked on malformed input: %v", r)
		}
	}()
	DecodeRequest(map[string]any{
		"mode":    42,
		"sim_s":   []any{1, 2, 3},
		"noise":   3.14,
		"FIC101_Kp": "abc",
	})
}
