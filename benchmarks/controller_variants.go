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

// Package benchmarks compares anti-windup strategies for the train
// digital twin's PI controller against a shared saturating step
// scenario, reporting IAE/overshoot/settling instead of write
// amplification.
package benchmarks

import "simtrain/internal/train/core"

// controller is the common interface every variant implements so the
// harness can drive them identically.
type controller interface {
	update(sp, pv float64) float64
}

// bumplessVariant is the production controller: back-calculation
// anti-windup with Aw in (0,1].
type bumplessVariant struct {
	c *core.PiController
}

func newBumplessVariant(kp, ti, dt, outMin, outMax, bias float64) *bumplessVariant {
	return &bumplessVariant{c: core.NewPiController(kp, ti, dt, outMin, outMax, bias, 1.0, core.Direct)}
}

func (v *bumplessVariant) update(sp, pv float64) float64 { return v.c.Update(sp, pv) }

// noAntiWindupVariant disables back-calculation entirely (Aw=0): the
// integrator keeps accumulating error while the output is saturated,
// the textbook windup failure mode.
type noAntiWindupVariant struct {
	c *core.PiController
}

func newNoAntiWindupVariant(kp, ti, dt, outMin, outMax, bias float64) *noAntiWindupVariant {
	return &noAntiWindupVariant{c: core.NewPiController(kp, ti, dt, outMin, outMax, bias, 0.0, core.Direct)}
}

func (v *noAntiWindupVariant) update(sp, pv float64) float64 { return v.c.Update(sp, pv) }

// naiveResetVariant is the "naive" fix some implementations reach for:
// whenever the output saturates, the integrator is slammed to zero
// rather than back-calculated. Stops windup but reintroduces a step
// bump whenever saturation clears.
type naiveResetVariant struct {
	c *core.PiController
}

func newNaiveResetVariant(kp, ti, dt, outMin, outMax, bias float64) *naiveResetVariant {
	return &naiveResetVariant{c: core.NewPiController(kp, ti, dt, outMin, outMax, bias, 0.0, core.Direct)}
}

func (v *naiveResetVariant) update(sp, pv float64) float64 {
	u := v.c.Update(sp, pv)
	sat := u <= v.c.OutMin || u >= v.c.OutMax
	if sat {
		v.c.Reset(u)
	}
	return u
}
