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

// Nominal operating point, fixed constants of the plant model.
const (
	fFeed0  = 50.0
	tFeed0  = 120.0
	tReb0   = 165.0
	tCond0  = 35.0
	tt106_0 = 95.0
	rho0    = 0.7400
	l0      = 50.0

	uFeed0      = 50.0
	uSteamPre0  = 35.0
	uSteamReb0  = 40.0
	uCw0        = 45.0
	uReflux0    = 55.0
	uDraw0      = 25.0
	fCond0      = 70.0
)

// MV is the manipulated-variable bundle produced by the six PI loops
// each step. Interlocks read and mutate this bundle in place.
type MV struct {
	Feed      float64
	SteamPre  float64
	SteamReb  float64
	Cw        float64
	Reflux    float64
	Draw      float64
}

func (m *MV) clamp() {
	m.Feed = clamp(m.Feed, 0, 100)
	m.SteamPre = clamp(m.SteamPre, 0, 100)
	m.SteamReb = clamp(m.SteamReb, 0, 100)
	m.Cw = clamp(m.Cw, 0, 100)
	m.Reflux = clamp(m.Reflux, 0, 100)
	m.Draw = clamp(m.Draw, 0, 100)
}

// PV is the process-variable record produced by one PlantModel step.
type PV struct {
	FFeed     float64
	TFeedOut  float64
	TReb      float64
	FReflux   float64
	TCondOut  float64
	TT106     float64
	TT201     float64
	Lv201     float64
	Rho15     float64
	DTsub     float64
	AnalyzerOK bool
}

// Disturbance is the per-step exogenous input bundle applied to the plant.
type Disturbance struct {
	DFeedTemp   float64
	DVaporLoad  float64
	CwDegrade   float64 // in [0,1]; 0 = no degradation
	AnalyzerOK  bool
}

// PlantModel is the fixed network of seven FopdtBlocks plus algebraic
// couplings and a mass-balance integrator for the reflux-drum level.
type PlantModel struct {
	dt float64

	gFfeed *FopdtBlock
	gTfeed *FopdtBlock
	gTreb  *FopdtBlock
	gFref  *FopdtBlock
	gTcond *FopdtBlock
	gTT106 *FopdtBlock
	gRho   *FopdtBlock

	l float64

	Noise bool
	rng   *gaussSource
}

// PlantConfig carries the per-loop FOPDT tuning constants (gain, time
// constant, dead time) used to build the seven process blocks. Callers
// normally use DefaultPlantConfig; tests may override individual blocks.
type PlantConfig struct {
	KFfeed, TauFfeed, ThetaFfeed float64
	KTfeed, TauTfeed, ThetaTfeed float64
	KTreb, TauTreb, ThetaTreb    float64
	KFref, TauFref, ThetaFref    float64
	KTcond, TauTcond, ThetaTcond float64
	KTT106, TauTT106, ThetaTT106 float64
	KRho, TauRho, ThetaRho       float64
}

// DefaultPlantConfig returns the reference tuning used by the distillation
// train digital twin: moderate lags with short dead times, matched to the
// 1-5s control step sizes the scheduler runs at.
func DefaultPlantConfig() PlantConfig {
	return PlantConfig{
		KFfeed: 1.0, TauFfeed: 20, ThetaFfeed: 2,
		KTfeed: 1.4, TauTfeed: 60, ThetaTfeed: 10,
		KTreb: 1.8, TauTreb: 90, ThetaTreb: 15,
		KFref: 1.0, TauFref: 15, ThetaFref: 2,
		KTcond: -1.0, TauTcond: 45, ThetaTcond: 8,
		KTT106: 1.0, TauTT106: 30, ThetaTT106: 5,
		KRho: 1.0, TauRho: 40, ThetaRho: 5,
	}
}

// NewPlantModel builds the seven-block network anchored at the nominal
// operating point, with noise optionally enabled and seeded.
func NewPlantModel(cfg PlantConfig, dt float64, noise bool, seed int64) *PlantModel {
	p := &PlantModel{dt: dt, Noise: noise}
	p.gFfeed = NewFopdtBlock(cfg.KFfeed, cfg.TauFfeed, cfg.ThetaFfeed, dt, fFeed0, uFeed0)
	p.gTfeed = NewFopdtBlock(cfg.KTfeed, cfg.TauTfeed, cfg.ThetaTfeed, dt, tFeed0, uSteamPre0)
	p.gTreb = NewFopdtBlock(cfg.KTreb, cfg.TauTreb, cfg.ThetaTreb, dt, tReb0, uSteamReb0)
	p.gFref = NewFopdtBlock(cfg.KFref, cfg.TauFref, cfg.ThetaFref, dt, 50, uReflux0)
	p.gTcond = NewFopdtBlock(cfg.KTcond, cfg.TauTcond, cfg.ThetaTcond, dt, tCond0, uCw0)
	p.gTT106 = NewFopdtBlock(cfg.KTT106, cfg.TauTT106, cfg.ThetaTT106, dt, tt106_0, tt106_0)
	p.gRho = NewFopdtBlock(cfg.KRho, cfg.TauRho, cfg.ThetaRho, dt, rho0, rho0)
	p.l = l0
	if noise {
		p.rng = newGaussSource(seed)
	}
	return p
}

// Step advances the plant one dt given the current MV bundle (clamped to
// [0,100] first) and disturbance inputs, returning the full PV record.
func (p *PlantModel) Step(mv *MV, dist Disturbance) PV {
	mv.clamp()

	fFeed := p.gFfeed.Update(mv.Feed, 0)
	tFeedOut := p.gTfeed.Update(mv.SteamPre, dist.DFeedTemp)
	tReb := p.gTreb.Update(mv.SteamReb, dist.DVaporLoad)
	fReflux := p.gFref.Update(mv.Reflux, 0)
	cwEff := mv.Cw * (1 - dist.CwDegrade)
	tCondOut := p.gTcond.Update(cwEff, 0)

	tt106SS := tt106_0 + 0.35*(tReb-tReb0) - 0.20*(fReflux-50) + 0.05*(fFeed-fFeed0)
	tt106 := p.gTT106.Update(tt106SS, 0)

	tt201 := tt106 + 0.20*(tReb-tReb0)

	fCondIn := fCond0 + 0.20*(tReb-tReb0) + 0.10*(fFeed-fFeed0)
	if fCondIn < 0 {
		fCondIn = 0
	}
	fDraw := 0.8 * mv.Draw
	p.l = clamp(p.l+(fCondIn-fReflux-fDraw)*(p.dt/200), 0, 100)

	rhoSS := rho0 + 0.0009*(tt106-tt106_0) - 0.0011*(fReflux-50)
	rho15 := p.gRho.Update(rhoSS, 0)

	if p.Noise && p.rng != nil {
		fFeed += p.rng.sigma(0.45)
		tFeedOut += p.rng.sigma(0.22)
		tReb += p.rng.sigma(0.22)
		fReflux += p.rng.sigma(0.45)
		tCondOut += p.rng.sigma(0.22)
		tt106 += p.rng.sigma(0.22)
		tt201 += p.rng.sigma(0.22)
		p.l += p.rng.sigma(0.2)
		rho15 += p.rng.sigma(0.0005)
	}

	dTsub := tt201 - tCondOut

	return PV{
		FFeed:      fFeed,
		TFeedOut:   tFeedOut,
		TReb:       tReb,
		FReflux:    fReflux,
		TCondOut:   tCondOut,
		TT106:      tt106,
		TT201:      tt201,
		Lv201:      p.l,
		Rho15:      rho15,
		DTsub:      dTsub,
		AnalyzerOK: dist.AnalyzerOK,
	}
}
