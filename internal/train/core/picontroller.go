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

// Action selects the sign convention for a PiController's error term.
type Action int

const (
	Direct Action = iota
	Reverse
)

// PiController is a proportional-integral controller with output
// saturation, back-calculation anti-windup, and a bumpless re-tracking
// primitive used to keep the integrator consistent after an external
// override of its output.
type PiController struct {
	Kp     float64
	Ti     float64
	Dt     float64
	OutMin float64
	OutMax float64
	Bias   float64
	Aw     float64 // back-calculation gain, in [0,1]
	Action Action

	integral float64
	uPrev    float64
}

// NewPiController constructs a controller reset to its bias output.
func NewPiController(kp, ti, dt, outMin, outMax, bias, aw float64, action Action) *PiController {
	c := &PiController{Kp: kp, Ti: ti, Dt: dt, OutMin: outMin, OutMax: outMax, Bias: bias, Aw: aw, Action: action}
	c.Reset(bias)
	return c
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (c *PiController) err(sp, pv float64) float64 {
	if c.Action == Reverse {
		return pv - sp
	}
	return sp - pv
}

// Update computes one control step: integrates the error, forms the
// unsaturated command, saturates it, and back-calculates the integrator
// to bleed off windup. Returns the saturated MV.
func (c *PiController) Update(sp, pv float64) float64 {
	e := c.err(sp, pv)
	if c.Ti > 0 {
		c.integral += (c.Dt / c.Ti) * e
	}
	uUnsat := c.Bias + c.Kp*(e+c.integral)
	u := clamp(uUnsat, c.OutMin, c.OutMax)
	c.integral += c.Aw * (u - uUnsat)
	c.uPrev = u
	return u
}

// Track bumplessly re-initializes the integrator so that, given the
// current SP/PV, the controller would emit exactly uActual. Used after
// an external override (interlock, forced routing, initialization at
// the MV anchor) to keep the loop consistent without a step bump.
func (c *PiController) Track(uActual, sp, pv float64) {
	uActual = clamp(uActual, c.OutMin, c.OutMax)
	e := c.err(sp, pv)
	if abs(c.Kp) < 1e-9 {
		c.integral = 0
	} else {
		c.integral = (uActual-c.Bias)/c.Kp - e
	}
	c.uPrev = uActual
}

// Reset zeroes the integrator and clamps u0 into range as the
// controller's initial output. NewPiController passes Bias as u0.
func (c *PiController) Reset(u0 float64) {
	c.integral = 0
	c.uPrev = clamp(u0, c.OutMin, c.OutMax)
}

// Prev returns the controller's last emitted output.
func (c *PiController) Prev() float64 { return c.uPrev }

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
