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

const interlockEps = 1e-6

// Scheduler is the fixed-step loop that uniquely owns one PlantModel,
// six PiControllers, one QualityGate, and the InterlockTable for the
// duration of a single run. It performs no I/O and is never shared
// across runs; construction yields deterministic state for a given
// scenario and seed.
type Scheduler struct {
	scn Scenario

	plant     *PlantModel
	gate      *QualityGate
	interlock *InterlockTable

	ctrlFeed     *PiController
	ctrlTfeed    *PiController
	ctrlTreb     *PiController
	ctrlFreflux  *PiController
	ctrlTcond    *PiController
	ctrlLv201    *PiController

	rampSP   Setpoints
	initDone bool

	routePrev  Route
	activePrev map[string]bool
}

func mkController(t LoopTuning, dt, bias float64, action Action) *PiController {
	return NewPiController(t.Kp, t.Ti, dt, 0, 100, bias, 0.8, action)
}

// NewScheduler constructs and initializes every owned component per
// §4.6: fresh plant, six controllers reset to the MV-init anchors,
// ramped-SP state at the nominal setpoints, empty timers/trace/events.
func NewScheduler(scn Scenario) *Scheduler {
	var seed int64 = 1
	if scn.Seed != nil {
		seed = *scn.Seed
	}
	s := &Scheduler{
		scn:        scn,
		plant:      NewPlantModel(DefaultPlantConfig(), scn.Dt, scn.Noise, seed),
		gate:       NewQualityGate(scn.Gate),
		interlock:  NewInterlockTable(scn.Interlock),
		rampSP:     scn.SP,
		routePrev:  Recycle,
		activePrev: map[string]bool{},
	}
	s.ctrlFeed = mkController(scn.Tuning["FIC101"], scn.Dt, scn.MVInit.Feed, Direct)
	s.ctrlTfeed = mkController(scn.Tuning["TIC101"], scn.Dt, scn.MVInit.SteamPre, Direct)
	s.ctrlTreb = mkController(scn.Tuning["TIC102"], scn.Dt, scn.MVInit.SteamReb, Direct)
	// T_cond_out falls as u_cw rises (negative process gain), so TIC201
	// must run reverse action to close the loop with a positive Kp.
	s.ctrlTcond = mkController(scn.Tuning["TIC201"], scn.Dt, scn.MVInit.Cw, Reverse)
	s.ctrlFreflux = mkController(scn.Tuning["FIC201"], scn.Dt, scn.MVInit.Reflux, Direct)
	s.ctrlLv201 = mkController(scn.Tuning["LIC201"], scn.Dt, scn.MVInit.Draw, Reverse)
	return s
}

func rampToward(curr, target, rate, dt float64) float64 {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return target
	}
	maxStep := rate * dt
	delta := target - curr
	if delta > maxStep {
		delta = maxStep
	} else if delta < -maxStep {
		delta = -maxStep
	}
	return curr + delta
}

// Run executes the scheduler to completion, returning the finished
// trace. Ordering within a step is fixed and must not be reordered:
// disturbance/SP/ramp -> PV sample -> controller update -> interlock
// override -> controller re-tracking -> gate override -> log.
func (s *Scheduler) Run() *Trace {
	n := int(s.scn.SimS/s.scn.Dt + 0.5)
	tr := NewTrace(n)

	mv := s.scn.MVInit

	for i := 0; i <= n; i++ {
		ti := float64(i) * s.scn.Dt

		dist := s.stepDisturbance(ti)

		target := s.stepSPTargets(ti)
		s.rampSP.Ffeed = rampToward(s.rampSP.Ffeed, target.Ffeed, s.scn.Ramp.Ffeed, s.scn.Dt)
		s.rampSP.Tfeed = rampToward(s.rampSP.Tfeed, target.Tfeed, s.scn.Ramp.Tfeed, s.scn.Dt)
		s.rampSP.Treb = rampToward(s.rampSP.Treb, target.Treb, s.scn.Ramp.Treb, s.scn.Dt)
		s.rampSP.Tcond = rampToward(s.rampSP.Tcond, target.Tcond, s.scn.Ramp.Tcond, s.scn.Dt)
		s.rampSP.Freflux = rampToward(s.rampSP.Freflux, target.Freflux, s.scn.Ramp.Freflux, s.scn.Dt)
		s.rampSP.Lv201 = rampToward(s.rampSP.Lv201, target.Lv201, s.scn.Ramp.Lv201, s.scn.Dt)

		pv := s.plant.Step(&mv, dist)

		if !s.initDone {
			s.ctrlFeed.Track(mv.Feed, s.rampSP.Ffeed, pv.FFeed)
			s.ctrlTfeed.Track(mv.SteamPre, s.rampSP.Tfeed, pv.TFeedOut)
			s.ctrlTreb.Track(mv.SteamReb, s.rampSP.Treb, pv.TReb)
			s.ctrlTcond.Track(mv.Cw, s.rampSP.Tcond, pv.TCondOut)
			s.ctrlFreflux.Track(mv.Reflux, s.rampSP.Freflux, pv.FReflux)
			s.ctrlLv201.Track(mv.Draw, s.rampSP.Lv201, pv.Lv201)
			s.initDone = true
		}

		mv.Feed = s.ctrlFeed.Update(s.rampSP.Ffeed, pv.FFeed)
		mv.SteamPre = s.ctrlTfeed.Update(s.rampSP.Tfeed, pv.TFeedOut)
		mv.SteamReb = s.ctrlTreb.Update(s.rampSP.Treb, pv.TReb)
		mv.Cw = s.ctrlTcond.Update(s.rampSP.Tcond, pv.TCondOut)
		mv.Reflux = s.ctrlFreflux.Update(s.rampSP.Freflux, pv.FReflux)
		mv.Draw = s.ctrlLv201.Update(s.rampSP.Lv201, pv.Lv201)

		snapshot := mv

		permissiveOK := pv.Lv201 > s.scn.Gate.PermLMin && pv.Lv201 < s.scn.Gate.PermLMax
		route := s.gate.Step(s.scn.Dt, pv.TT106, pv.Rho15, pv.DTsub, pv.AnalyzerOK, permissiveOK)

		active, forceRoute, forced := s.interlock.Apply(&mv, pv)

		if abs(mv.Feed-snapshot.Feed) > interlockEps {
			s.ctrlFeed.Track(mv.Feed, s.rampSP.Ffeed, pv.FFeed)
		}
		if abs(mv.SteamPre-snapshot.SteamPre) > interlockEps {
			s.ctrlTfeed.Track(mv.SteamPre, s.rampSP.Tfeed, pv.TFeedOut)
		}
		if abs(mv.SteamReb-snapshot.SteamReb) > interlockEps {
			s.ctrlTreb.Track(mv.SteamReb, s.rampSP.Treb, pv.TReb)
		}
		if abs(mv.Cw-snapshot.Cw) > interlockEps {
			s.ctrlTcond.Track(mv.Cw, s.rampSP.Tcond, pv.TCondOut)
		}
		if abs(mv.Reflux-snapshot.Reflux) > interlockEps {
			s.ctrlFreflux.Track(mv.Reflux, s.rampSP.Freflux, pv.FReflux)
		}
		if abs(mv.Draw-snapshot.Draw) > interlockEps {
			s.ctrlLv201.Track(mv.Draw, s.rampSP.Lv201, pv.Lv201)
		}

		if forced {
			route = forceRoute
			s.gate.Route = forceRoute
		}

		if route != s.routePrev {
			tr.Events = append(tr.Events, Event{T: ti, Msg: fmt.Sprintf("GATE_SWITCH: %s -> %s", routeName(s.routePrev), routeName(route))})
		}
		onNames, offNames := DiffEvents(s.activePrev, active)
		for _, name := range onNames {
			tr.Events = append(tr.Events, Event{T: ti, Msg: fmt.Sprintf("INTERLOCK_ON: %s", name)})
		}
		for _, name := range offNames {
			tr.Events = append(tr.Events, Event{T: ti, Msg: fmt.Sprintf("INTERLOCK_OFF: %s", name)})
		}
		s.routePrev = route
		s.activePrev = active

		tr.append(ti, pv, mv, s.rampSP, route, pv.AnalyzerOK)
	}

	return tr
}

func routeName(r Route) string {
	if r == Product {
		return "PRODUCT"
	}
	return "RECYCLE"
}

// stepDisturbance computes the disturbance bundle active at time ti per
// the scenario's disturbance schedule.
func (s *Scheduler) stepDisturbance(ti float64) Disturbance {
	d := Disturbance{AnalyzerOK: true}
	if ti >= s.scn.Dist.TFeedDist {
		d.DFeedTemp = s.scn.Dist.DFeedTemp
	}
	if ti >= s.scn.Dist.TVaporDist {
		d.DVaporLoad = s.scn.Dist.DVaporLoad
	}
	drop := 0.0
	if ti >= s.scn.Dist.TCwDegrade {
		drop = s.scn.Dist.CwDegradeDrop
	}
	d.CwDegrade = clamp(drop, 0, 1)
	if s.scn.Dist.AnalyzerFailEnable && ti >= s.scn.Dist.TAnalyzerFail {
		d.AnalyzerOK = false
	}
	return d
}

// stepSPTargets starts from the base setpoints and applies any SP-step
// events whose time has arrived; unknown keys are ignored.
func (s *Scheduler) stepSPTargets(ti float64) Setpoints {
	target := s.scn.SP
	for _, ev := range s.scn.SPSteps {
		if ti < ev.T {
			continue
		}
		switch ev.Key {
		case "Tfeed", "T_feed_out", "TIC-101", "TIC101":
			target.Tfeed += ev.Delta
		case "Treb", "T_reb", "TIC-102", "TIC102":
			target.Treb += ev.Delta
		case "Tcond", "T_cond_out", "TIC-201", "TIC201":
			target.Tcond += ev.Delta
		case "Ffeed", "F_feed", "FIC-101", "FIC101":
			target.Ffeed += ev.Delta
		case "Freflux", "F_reflux", "FIC-201", "FIC201":
			target.Freflux += ev.Delta
		case "Lv201", "L_v201", "LIC-201", "LIC201":
			target.Lv201 += ev.Delta
		}
	}
	return target
}
