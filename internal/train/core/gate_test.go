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

import "testing"

func testGateConfig() GateConfig {
	return GateConfig{
		TTOnLow: 93, TTOnHigh: 97,
		RhoOnLow: 0.735, RhoOnHigh: 0.745,
		DTsubMin: 3,
		DelayOnS: 10, DelayOffS: 5,
		PermLMin: 20, PermLMax: 80,
	}
}

func TestGateInitialStateIsRecycle(t *testing.T) {
	g := NewQualityGate(testGateConfig())
	if g.Route != Recycle {
		t.Fatalf("expected initial route RECYCLE, got %v", g.Route)
	}
}

func TestGatePromotesOnlyAfterDelay(t *testing.T) {
	g := NewQualityGate(testGateConfig())
	for i := 0; i < 9; i++ {
		r := g.Step(1, 95, 0.740, 5, true, true)
		if r != Recycle {
			t.Fatalf("expected RECYCLE before delay elapses at step %d, got %v", i, r)
		}
	}
	r := g.Step(1, 95, 0.740, 5, true, true)
	if r != Product {
		t.Fatalf("expected PRODUCT once on_timer reaches delay_on_s, got %v", r)
	}
}

func TestGateDemotesAfterOffDelay(t *testing.T) {
	g := NewQualityGate(testGateConfig())
	for i := 0; i < 10; i++ {
		g.Step(1, 95, 0.740, 5, true, true)
	}
	if g.Route != Product {
		t.Fatalf("setup: expected PRODUCT before testing demotion")
	}
	for i := 0; i < 4; i++ {
		r := g.Step(1, 80, 0.740, 5, true, true) // TT106 outside OFF band (<93-2)
		if r != Product {
			t.Fatalf("expected PRODUCT before off delay elapses at step %d, got %v", i, r)
		}
	}
	r := g.Step(1, 80, 0.740, 5, true, true)
	if r != Recycle {
		t.Fatalf("expected RECYCLE once off_timer reaches delay_off_s, got %v", r)
	}
}

func TestGateForcesRecycleOnBadFlags(t *testing.T) {
	g := NewQualityGate(testGateConfig())
	g.OnTimer = 5
	r := g.Step(1, 95, 0.740, 5, false, true)
	if r != Recycle || g.OnTimer != 0 || g.OffTimer != 0 {
		t.Fatalf("expected forced RECYCLE with cleared timers on analyzer fail, got route=%v on=%v off=%v", r, g.OnTimer, g.OffTimer)
	}
}

func TestGateWideningHysteresisNeverIncreasesSwitches(t *testing.T) {
	// Synthetic TT106 series that wanders just above TTOnHigh; widening
	// the OFF band should never increase switch count relative to a
	// narrower OFF band, since a wider band only keeps more borderline
	// samples classified as "not off_bad".
	run := func(widen float64) int {
		cfg := testGateConfig()
		cfg.TTOffWiden = widen
		g := NewQualityGate(cfg)
		switches := 0
		prev := g.Route
		for i := 0; i < 200; i++ {
			tt := 95.0
			if i%20 < 10 {
				tt = cfg.TTOnHigh + 3 // borderline: inside OFF band only if widen >= 3
			}
			r := g.Step(1, tt, 0.740, 5, true, true)
			if r != prev {
				switches++
			}
			prev = r
		}
		return switches
	}
	narrow := run(1)
	wide := run(6)
	if wide > narrow {
		t.Fatalf("expected widening OFF band to not increase switches: narrow=%d wide=%d", narrow, wide)
	}
}
