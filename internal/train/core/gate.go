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

// Route is the product/recycle routing decision produced by QualityGate.
type Route int

const (
	Recycle Route = iota
	Product
)

// GateConfig holds the ON thresholds, delay timers, and permissive window.
// OFF thresholds widen the ON band by fixed constants (TT106 +-2, rho15
// +-0.005, dTsub -1), per the gate's hysteresis design. The widen fields
// default to those constants when left at zero; tests exercising the
// hysteresis-monotonicity law set them explicitly to compare widths.
type GateConfig struct {
	TTOnLow, TTOnHigh   float64
	RhoOnLow, RhoOnHigh float64
	DTsubMin            float64
	DelayOnS, DelayOffS float64
	PermLMin, PermLMax  float64

	TTOffWiden    float64 // default 2 when zero
	RhoOffWiden   float64 // default 0.005 when zero
	DTsubOffWiden float64 // default 1 when zero
}

func (g GateConfig) ttWiden() float64 {
	if g.TTOffWiden == 0 {
		return 2
	}
	return g.TTOffWiden
}
func (g GateConfig) rhoWiden() float64 {
	if g.RhoOffWiden == 0 {
		return 0.005
	}
	return g.RhoOffWiden
}
func (g GateConfig) dTsubWiden() float64 {
	if g.DTsubOffWiden == 0 {
		return 1
	}
	return g.DTsubOffWiden
}

func (g GateConfig) ttOffLow() float64    { return g.TTOnLow - g.ttWiden() }
func (g GateConfig) ttOffHigh() float64   { return g.TTOnHigh + g.ttWiden() }
func (g GateConfig) rhoOffLow() float64   { return g.RhoOnLow - g.rhoWiden() }
func (g GateConfig) rhoOffHigh() float64  { return g.RhoOnHigh + g.rhoWiden() }
func (g GateConfig) dTsubMinOff() float64 { return g.DTsubMin - g.dTsubWiden() }

// QualityGate is a plain two-state (RECYCLE/PRODUCT) hysteretic value
// object, stepped once per scheduler tick. It holds no goroutine of its
// own and reacts to nothing; the Scheduler is solely responsible for
// calling Step in the fixed per-step order.
type QualityGate struct {
	Cfg      GateConfig
	Route    Route
	OnTimer  float64
	OffTimer float64
}

// NewQualityGate returns a gate initialized to RECYCLE with both timers
// at zero, per the gate's invariant.
func NewQualityGate(cfg GateConfig) *QualityGate {
	return &QualityGate{Cfg: cfg, Route: Recycle}
}

// Step advances the gate by dt given the current TT106/rho15/dTsub
// readings and the analyzer/permissive flags. If either flag is false
// the gate is forced to RECYCLE and both timers are cleared.
func (g *QualityGate) Step(dt, tt106, rho15, dTsub float64, analyzerOK, permissiveOK bool) Route {
	if !analyzerOK || !permissiveOK {
		g.Route = Recycle
		g.OnTimer = 0
		g.OffTimer = 0
		return g.Route
	}

	onOK := tt106 >= g.Cfg.TTOnLow && tt106 <= g.Cfg.TTOnHigh &&
		rho15 >= g.Cfg.RhoOnLow && rho15 <= g.Cfg.RhoOnHigh &&
		dTsub >= g.Cfg.DTsubMin
	offBad := tt106 < g.Cfg.ttOffLow() || tt106 > g.Cfg.ttOffHigh() ||
		rho15 < g.Cfg.rhoOffLow() || rho15 > g.Cfg.rhoOffHigh() ||
		dTsub < g.Cfg.dTsubMinOff()

	switch g.Route {
	case Recycle:
		if onOK {
			g.OnTimer += dt
		} else {
			g.OnTimer = 0
		}
		if g.OnTimer >= g.Cfg.DelayOnS {
			g.Route = Product
			g.OnTimer = 0
			g.OffTimer = 0
		}
	case Product:
		if offBad {
			g.OffTimer += dt
		} else {
			g.OffTimer = 0
		}
		if g.OffTimer >= g.Cfg.DelayOffS {
			g.Route = Recycle
			g.OnTimer = 0
			g.OffTimer = 0
		}
	}
	return g.Route
}
