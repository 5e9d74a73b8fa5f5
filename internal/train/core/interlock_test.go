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

func testInterlockConfig() InterlockConfig {
	return InterlockConfig{
		TFeedHH: 160, TRebHH: 200, TCondOutHH: 46,
		Lv201HH: 90, Lv201LL: 10,
		UDrawForceHigh: 60, UDrawForceLow: 10,
	}
}

func TestInterlockRule03ForcesRecycle(t *testing.T) {
	tbl := NewInterlockTable(testInterlockConfig())
	mv := MV{Draw: 25}
	pv := PV{TCondOut: 47, AnalyzerOK: true}
	active, route, forced := tbl.Apply(&mv, pv)
	if !forced || route != Recycle {
		t.Fatalf("expected IL-03 to force RECYCLE, forced=%v route=%v", forced, route)
	}
	if !active["IL-03"] {
		t.Fatalf("expected IL-03 active")
	}
}

func TestInterlockRule06ForcesRecycleOnAnalyzerFail(t *testing.T) {
	tbl := NewInterlockTable(testInterlockConfig())
	mv := MV{Draw: 25}
	pv := PV{AnalyzerOK: false}
	_, route, forced := tbl.Apply(&mv, pv)
	if !forced || route != Recycle {
		t.Fatalf("expected IL-06 to force RECYCLE on analyzer fail")
	}
}

func TestInterlockRule04ClampsDrawHigh(t *testing.T) {
	tbl := NewInterlockTable(testInterlockConfig())
	mv := MV{Draw: 20}
	pv := PV{Lv201: 95, AnalyzerOK: true}
	tbl.Apply(&mv, pv)
	if mv.Draw != 60 {
		t.Fatalf("expected draw forced to 60, got %v", mv.Draw)
	}
}

func TestInterlockRule05ClampsDrawLow(t *testing.T) {
	tbl := NewInterlockTable(testInterlockConfig())
	mv := MV{Draw: 50}
	pv := PV{Lv201: 5, AnalyzerOK: true}
	tbl.Apply(&mv, pv)
	if mv.Draw != 10 {
		t.Fatalf("expected draw forced to 10, got %v", mv.Draw)
	}
}

func TestInterlockUsesPreMutationPV(t *testing.T) {
	// Rule 1 and rule 2 both key off PV fields independent of MV
	// mutations made by earlier rules in the same pass.
	tbl := NewInterlockTable(testInterlockConfig())
	mv := MV{SteamPre: 80, SteamReb: 80}
	pv := PV{TFeedOut: 161, TReb: 201, AnalyzerOK: true}
	tbl.Apply(&mv, pv)
	if mv.SteamPre != 0 || mv.SteamReb != 0 {
		t.Fatalf("expected both high-high rules to trip independently, got %+v", mv)
	}
}

func TestDiffEventsOrderIsFixedRuleOrder(t *testing.T) {
	prev := map[string]bool{"IL-02": true}
	curr := map[string]bool{"IL-01": true, "IL-06": true}
	on, off := DiffEvents(prev, curr)
	if len(on) != 2 || on[0] != "IL-01" || on[1] != "IL-06" {
		t.Fatalf("expected on events in fixed rule order, got %v", on)
	}
	if len(off) != 1 || off[0] != "IL-02" {
		t.Fatalf("expected off events %v, got %v", []string{"IL-02"}, off)
	}
}
