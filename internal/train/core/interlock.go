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

// InterlockConfig holds the six rules' threshold constants.
type InterlockConfig struct {
	TFeedHH      float64
	TRebHH       float64
	TCondOutHH   float64
	Lv201HH      float64
	Lv201LL      float64
	UDrawForceHigh float64
	UDrawForceLow  float64
}

// interlockRule is one fixed, ordered condition -> action pair. Rules are
// a fixed slice of named condition/action functions, so the evaluation
// order is a plain array walk.
type interlockRule struct {
	name string
	cond func(cfg InterlockConfig, pv PV) bool
	act  func(cfg InterlockConfig, mv *MV, forceRoute *Route, forced *bool)
}

func setForce(forceRoute *Route, forced *bool, r Route) {
	*forceRoute = r
	*forced = true
}

var interlockRules = []interlockRule{
	{
		name: "IL-01",
		cond: func(cfg InterlockConfig, pv PV) bool { return pv.TFeedOut >= cfg.TFeedHH },
		act: func(cfg InterlockConfig, mv *MV, forceRoute *Route, forced *bool) {
			mv.SteamPre = 0
		},
	},
	{
		name: "IL-02",
		cond: func(cfg InterlockConfig, pv PV) bool { return pv.TReb >= cfg.TRebHH },
		act: func(cfg InterlockConfig, mv *MV, forceRoute *Route, forced *bool) {
			mv.SteamReb = 0
		},
	},
	{
		name: "IL-03",
		cond: func(cfg InterlockConfig, pv PV) bool { return pv.TCondOut >= cfg.TCondOutHH },
		act: func(cfg InterlockConfig, mv *MV, forceRoute *Route, forced *bool) {
			setForce(forceRoute, forced, Recycle)
		},
	},
	{
		name: "IL-04",
		cond: func(cfg InterlockConfig, pv PV) bool { return pv.Lv201 >= cfg.Lv201HH },
		act: func(cfg InterlockConfig, mv *MV, forceRoute *Route, forced *bool) {
			if mv.Draw < cfg.UDrawForceHigh {
				mv.Draw = cfg.UDrawForceHigh
			}
		},
	},
	{
		name: "IL-05",
		cond: func(cfg InterlockConfig, pv PV) bool { return pv.Lv201 <= cfg.Lv201LL },
		act: func(cfg InterlockConfig, mv *MV, forceRoute *Route, forced *bool) {
			if mv.Draw > cfg.UDrawForceLow {
				mv.Draw = cfg.UDrawForceLow
			}
		},
	},
	{
		name: "IL-06",
		cond: func(cfg InterlockConfig, pv PV) bool { return !pv.AnalyzerOK },
		act: func(cfg InterlockConfig, mv *MV, forceRoute *Route, forced *bool) {
			setForce(forceRoute, forced, Recycle)
		},
	},
}

// InterlockTable walks the fixed rule list each step, tracking which
// rules are currently active so the scheduler can diff against the
// previous step and emit INTERLOCK_ON/INTERLOCK_OFF events.
type InterlockTable struct {
	Cfg    InterlockConfig
	active map[string]bool
}

// NewInterlockTable returns a table with an empty active-rule set.
func NewInterlockTable(cfg InterlockConfig) *InterlockTable {
	return &InterlockTable{Cfg: cfg, active: make(map[string]bool, len(interlockRules))}
}

// Apply evaluates every rule against pv (never against mv, which this
// step's rules may be mutating), applying actions to mv in order and
// setting forceRoute/forced if any rule requested a routing override.
// It returns the set of rule names active this step, for event diffing.
func (t *InterlockTable) Apply(mv *MV, pv PV) (active map[string]bool, forceRoute Route, forced bool) {
	active = make(map[string]bool, len(interlockRules))
	for _, r := range interlockRules {
		if r.cond(t.Cfg, pv) {
			active[r.name] = true
			r.act(t.Cfg, mv, &forceRoute, &forced)
		}
	}
	return active, forceRoute, forced
}

// DiffEvents compares the newly active rule set against the previous
// one, returning rule names newly turned on and newly turned off. Both
// are walked in fixed rule order so event emission is deterministic
// regardless of map iteration order.
func DiffEvents(prev, curr map[string]bool) (onNames, offNames []string) {
	for _, r := range interlockRules {
		on := curr[r.name]
		was := prev[r.name]
		if on && !was {
			onNames = append(onNames, r.name)
		}
		if was && !on {
			offNames = append(offNames, r.name)
		}
	}
	return onNames, offNames
}
