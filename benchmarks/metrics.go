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

package benchmarks

import "math"

// RunResult is one variant's performance over the shared step scenario.
type RunResult struct {
	Name         string
	IAE          float64
	ITAE         float64
	OvershootPct float64
	SettlingS    float64
	Settled      bool
	SatSteps     int
}

// RunAll runs every controller variant over the same step-plus-load
// scenario and returns their results in a fixed, deterministic order:
// bumpless back-calculation, naive integrator reset, no anti-windup.
func RunAll(kp, ti, outMin, outMax float64) []RunResult {
	const dt = 1.0
	bias := outMin + (outMax-outMin)/2
	variants := []struct {
		name string
		c    controller
	}{
		{"bumpless", newBumplessVariant(kp, ti, dt, outMin, outMax, bias)},
		{"naive-reset", newNaiveResetVariant(kp, ti, dt, outMin, outMax, bias)},
		{"no-anti-windup", newNoAntiWindupVariant(kp, ti, dt, outMin, outMax, bias)},
	}
	out := make([]RunResult, 0, len(variants))
	for _, v := range variants {
		out = append(out, runScenario(v.name, v.c, outMin, outMax))
	}
	return out
}

// runScenario drives a single FOPDT loop closed by the given controller
// through a setpoint step with a mid-run saturating disturbance, and
// scores the resulting trajectory the same way the engine's own
// metrics package scores a loop: IAE/ITAE over the whole run, peak
// overshoot past the final setpoint, and 2%-band settling time with a
// hold window.
func runScenario(name string, ctrl controller, outMin, outMax float64) RunResult {
	const (
		dt       = 1.0
		simS     = 1800.0
		spBefore = 70.0
		spAfter  = 85.0
		stepAt   = 60.0
		distAt   = 900.0
		distMag  = -15.0 // a load disturbance that drives the controller into saturation
		settleBand = 0.02
		holdS      = 60.0
	)

	plant := newSimplePlant(1.4, 180.0, dt, spBefore, spBefore/1.4)

	n := int(simS/dt) + 1
	t := make([]float64, 0, n)
	sp := make([]float64, 0, n)
	pv := make([]float64, 0, n)

	satSteps := 0
	for i := 0; i < n; i++ {
		ti := float64(i) * dt
		spv := spBefore
		if ti >= stepAt {
			spv = spAfter
		}
		d := 0.0
		if ti >= distAt {
			d = distMag
		}
		u := ctrl.update(spv, plant.y)
		if u <= outMin+1e-9 || u >= outMax-1e-9 {
			satSteps++
		}
		y := plant.step(u, d)
		t = append(t, ti)
		sp = append(sp, spv)
		pv = append(pv, y)
	}

	res := RunResult{Name: name, SatSteps: satSteps}
	for i := range t {
		e := sp[i] - pv[i]
		ae := math.Abs(e)
		res.IAE += ae * dt
		res.ITAE += t[i] * ae * dt
	}

	spFinal := sp[len(sp)-1]
	maxPV := pv[0]
	for _, v := range pv {
		if v > maxPV {
			maxPV = v
		}
	}
	if math.Abs(spFinal) > 1e-9 {
		pct := (maxPV - spFinal) / math.Abs(spFinal) * 100
		if pct > 0 {
			res.OvershootPct = pct
		}
	}

	tol := math.Max(math.Abs(spFinal)*settleBand, 1e-6)
	holdSteps := int(math.Round(holdS / dt))
	firstOut := -1
	for i, v := range pv {
		if math.Abs(v-spFinal) > tol {
			firstOut = i
			break
		}
	}
	if firstOut < 0 {
		res.SettlingS = t[0]
		res.Settled = true
		return res
	}
	for i := firstOut; i < len(pv); i++ {
		ok := true
		for j := i; j < i+holdSteps && j < len(pv); j++ {
			if math.Abs(pv[j]-spFinal) > tol {
				ok = false
				break
			}
		}
		if ok && i+holdSteps <= len(pv) {
			res.SettlingS = t[i]
			res.Settled = true
			return res
		}
	}
	return res
}

// simplePlant is a minimal first-order-lag plant (no dead time) used
// only by this benchmark; the full transport-delay FOPDT block lives
// in core and is reused as-is by the engine.
type simplePlant struct {
	k, tau, dt float64
	y0, u0, y  float64
}

func newSimplePlant(k, tau, dt, y0, u0 float64) *simplePlant {
	return &simplePlant{k: k, tau: tau, dt: dt, y0: y0, u0: u0, y: y0}
}

func (p *simplePlant) step(u, d float64) float64 {
	ySS := p.y0 + p.k*(u-p.u0) + d
	p.y += (ySS - p.y) * (p.dt / p.tau)
	return p.y
}
