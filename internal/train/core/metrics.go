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

import "math"

// LoopMetrics is the per-loop performance summary computed over a
// finished trace. OvershootPct is nil ("not defined") when the final
// setpoint is numerically zero. SettlingTime holds either a float64
// (seconds) or one of the strings "not defined"/"not settled", matching
// the external contract's nullable/string-or-number shape.
type LoopMetrics struct {
	Name         string   `json:"name"`
	IAE          float64  `json:"IAE"`
	ITAE         float64  `json:"ITAE"`
	OvershootPct *float64 `json:"OvershootPct"`
	SettlingTime any      `json:"SettlingTime"`
}

// GateStats summarizes routing behavior over a complete trace.
type GateStats struct {
	ProductPct float64 `json:"productPct"`
	Switches   int     `json:"switches"`
}

// loopSeries is the (t, sp, pv) triple Metrics needs for one loop.
type loopSeries struct {
	name string
	t    []float64
	sp   []float64
	pv   []float64
	norm float64 // 0 disables normalization
}

// ComputeLoopMetrics implements §4.7's IAE/ITAE/overshoot/settling-time
// definitions over a uniform-dt series.
func ComputeLoopMetrics(s loopSeries, opts MetricOptions) LoopMetrics {
	n := len(s.t)
	m := LoopMetrics{Name: s.name}
	if n < 2 {
		return m
	}
	dt := s.t[1] - s.t[0]

	var iae, itae float64
	for i := 0; i < n; i++ {
		e := s.sp[i] - s.pv[i]
		if s.norm > 0 {
			e /= s.norm
		}
		ae := math.Abs(e)
		iae += ae * dt
		itae += s.t[i] * ae * dt
	}
	m.IAE = iae
	m.ITAE = itae

	spFinal := s.sp[n-1]
	if math.Abs(spFinal) < 1e-9 {
		m.OvershootPct = nil
	} else {
		maxPV := s.pv[0]
		for _, v := range s.pv {
			if v > maxPV {
				maxPV = v
			}
		}
		pct := (maxPV - spFinal) / math.Abs(spFinal) * 100
		if pct < 0 {
			pct = 0
		}
		m.OvershootPct = &pct
	}

	sp0 := s.sp[0]
	if math.Abs(spFinal-sp0) <= math.Max(1e-6, 0.001*math.Max(1, math.Abs(sp0))) {
		m.SettlingTime = "not defined"
		return m
	}
	band := opts.SettleBand
	if band <= 0 {
		band = 0.02
	}
	tol := math.Max(math.Abs(spFinal)*band, 1e-6)

	firstOut := -1
	for i := 0; i < n; i++ {
		if math.Abs(s.pv[i]-spFinal) > tol {
			firstOut = i
			break
		}
	}
	if firstOut < 0 {
		m.SettlingTime = s.t[0]
		return m
	}

	holdSteps := int(opts.HoldWindowS/dt + 0.5)
	if holdSteps < 1 {
		holdSteps = 1
	}
	for i := firstOut; i < n; i++ {
		ok := true
		for j := i; j < i+holdSteps && j < n; j++ {
			if math.Abs(s.pv[j]-spFinal) > tol {
				ok = false
				break
			}
		}
		if ok && i+holdSteps <= n {
			m.SettlingTime = s.t[i]
			return m
		}
	}
	m.SettlingTime = "not settled"
	return m
}

// ComputeGateStats reports productPct/switches over a route column.
func ComputeGateStats(route []Route) GateStats {
	n := len(route)
	if n == 0 {
		return GateStats{}
	}
	var productCount, switches int
	for i, r := range route {
		if r == Product {
			productCount++
		}
		if i > 0 && route[i] != route[i-1] {
			switches++
		}
	}
	return GateStats{
		ProductPct: 100 * float64(productCount) / float64(n),
		Switches:   switches,
	}
}

// loopNames is the fixed, ordered list of the six loops' display names,
// used for metric output.
var loopNames = []string{"FIC-101", "TIC-101", "TIC-102", "TIC-201", "FIC-201", "LIC-201"}

func loopSeriesFor(name string, tr *Trace, norm float64) loopSeries {
	n := len(tr.T)
	ls := loopSeries{name: name, t: tr.T, norm: norm}
	ls.sp = make([]float64, n)
	ls.pv = make([]float64, n)
	for i := 0; i < n; i++ {
		switch name {
		case "FIC-101":
			ls.sp[i], ls.pv[i] = tr.SP[i].Ffeed, tr.PV[i].FFeed
		case "TIC-101":
			ls.sp[i], ls.pv[i] = tr.SP[i].Tfeed, tr.PV[i].TFeedOut
		case "TIC-102":
			ls.sp[i], ls.pv[i] = tr.SP[i].Treb, tr.PV[i].TReb
		case "TIC-201":
			ls.sp[i], ls.pv[i] = tr.SP[i].Tcond, tr.PV[i].TCondOut
		case "FIC-201":
			ls.sp[i], ls.pv[i] = tr.SP[i].Freflux, tr.PV[i].FReflux
		case "LIC-201":
			ls.sp[i], ls.pv[i] = tr.SP[i].Lv201, tr.PV[i].Lv201
		}
	}
	return ls
}

// ComputeAllMetrics computes LoopMetrics for all six loops plus gate
// statistics over a finished trace.
func ComputeAllMetrics(tr *Trace, opts MetricOptions) ([]LoopMetrics, GateStats) {
	out := make([]LoopMetrics, 0, len(loopNames))
	for _, name := range loopNames {
		norm := opts.NormSpans[name]
		out = append(out, ComputeLoopMetrics(loopSeriesFor(name, tr, norm), opts))
	}
	return out, ComputeGateStats(tr.Route)
}

// TotalIAE sums IAE across all loops, used by the suite driver.
func TotalIAE(ms []LoopMetrics) float64 {
	var total float64
	for _, m := range ms {
		total += m.IAE
	}
	return total
}
