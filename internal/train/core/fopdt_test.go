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

func TestFopdtSteadyState(t *testing.T) {
	b := NewFopdtBlock(2.0, 30, 10, 1, 100, 50)
	for i := 0; i < 2000; i++ {
		b.Update(50, 0)
	}
	if got := b.Y(); abs(got-100) > 1e-3 {
		t.Fatalf("expected y settle near y0=100 holding u=u0, got %v", got)
	}
}

func TestFopdtStepResponseGain(t *testing.T) {
	b := NewFopdtBlock(2.0, 30, 5, 1, 100, 50)
	for i := 0; i < 5000; i++ {
		b.Update(60, 0)
	}
	want := 100 + 2.0*(60-50)
	if got := b.Y(); abs(got-want) > 1e-2 {
		t.Fatalf("expected y -> %v after long step, got %v", want, got)
	}
}

func TestFopdtDelaySteps(t *testing.T) {
	if n := delaySteps(10, 1); n != 10 {
		t.Fatalf("expected 10 delay steps, got %d", n)
	}
	if n := delaySteps(0, 1); n != 0 {
		t.Fatalf("expected 0 delay steps, got %d", n)
	}
}

func TestFopdtResetRebindsAnchor(t *testing.T) {
	b := NewFopdtBlock(1, 10, 2, 1, 100, 50)
	b.Update(70, 0)
	b.Reset(80, 40)
	if b.Y() != 80 {
		t.Fatalf("expected y=80 after reset, got %v", b.Y())
	}
	// delay buffer should be refilled with the new u0
	y := b.Update(40, 0)
	if abs(y-80) > 1e-9 {
		t.Fatalf("expected y to remain at anchor when holding u0, got %v", y)
	}
}
