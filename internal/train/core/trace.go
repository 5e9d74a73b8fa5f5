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

// Event is one (time, message) entry in the run's event log.
type Event struct {
	T   float64
	Msg string
}

// Trace is the column-array record of a complete run, indexed by step
// i=0..N. All column slices are sized up front from N+1 and never grown
// during the run, avoiding heap churn on the hot path; only Events grows.
type Trace struct {
	T []float64

	PV  []PV
	MV  []MV
	SP  []Setpoints
	Route      []Route
	AnalyzerOK []bool

	Events []Event
}

// NewTrace preallocates all column arrays for n+1 samples.
func NewTrace(n int) *Trace {
	return &Trace{
		T:          make([]float64, 0, n+1),
		PV:         make([]PV, 0, n+1),
		MV:         make([]MV, 0, n+1),
		SP:         make([]Setpoints, 0, n+1),
		Route:      make([]Route, 0, n+1),
		AnalyzerOK: make([]bool, 0, n+1),
	}
}

func (tr *Trace) append(t float64, pv PV, mv MV, sp Setpoints, route Route, analyzerOK bool) {
	tr.T = append(tr.T, t)
	tr.PV = append(tr.PV, pv)
	tr.MV = append(tr.MV, mv)
	tr.SP = append(tr.SP, sp)
	tr.Route = append(tr.Route, route)
	tr.AnalyzerOK = append(tr.AnalyzerOK, analyzerOK)
}

// ChartPoint is one downsampled record of the single-mode response, field
// names matching the external contract exactly.
type ChartPoint struct {
	T               float64 `json:"t"`
	Tfeed           float64 `json:"Tfeed"`
	SPTfeed         float64 `json:"SP_Tfeed"`
	Treb            float64 `json:"Treb"`
	SPTreb          float64 `json:"SP_Treb"`
	Tcond           float64 `json:"Tcond"`
	SPTcond         float64 `json:"SP_Tcond"`
	TT106           float64 `json:"TT106"`
	TT201           float64 `json:"TT201"`
	Rho15           float64 `json:"rho15"`
	GateRhoLow      float64 `json:"Gate_rho_low"`
	GateRhoHigh     float64 `json:"Gate_rho_high"`
	DTsub           float64 `json:"dTsub"`
	GateDTsubMin    float64 `json:"Gate_dTsub_min"`
	RouteCode       int     `json:"route"`
	AnalyzerOKCode  int     `json:"analyzer_ok"`
	Ffeed           float64 `json:"Ffeed"`
	SPFfeed         float64 `json:"SP_Ffeed"`
	Freflux         float64 `json:"Freflux"`
	SPFreflux       float64 `json:"SP_Freflux"`
	Lv201           float64 `json:"Lv201"`
	SPLv201         float64 `json:"SP_Lv201"`
	UFeed           float64 `json:"u_feed"`
	USteamPre       float64 `json:"u_steam_pre"`
	USteamReb       float64 `json:"u_steam_reb"`
	UCw             float64 `json:"u_cw"`
	UReflux         float64 `json:"u_reflux"`
	UDraw           float64 `json:"u_draw"`
}

const chartCap = 700

// Downsample performs a single linear-scan stride through the trace,
// producing at most chartCap strided chart points, plus the final sample
// when the stride skips it (so at most chartCap+1 points), each carrying
// the gate thresholds for client-side plotting.
func (tr *Trace) Downsample(gate GateConfig) []ChartPoint {
	n := len(tr.T)
	if n == 0 {
		return nil
	}
	stride := 1
	if n > chartCap {
		stride = (n + chartCap - 1) / chartCap
	}
	out := make([]ChartPoint, 0, chartCap+1)
	for i := 0; i < n; i += stride {
		out = append(out, tr.pointAt(i, gate))
	}
	if last := n - 1; (last)%stride != 0 {
		out = append(out, tr.pointAt(last, gate))
	}
	return out
}

func (tr *Trace) pointAt(i int, gate GateConfig) ChartPoint {
	pv := tr.PV[i]
	mv := tr.MV[i]
	sp := tr.SP[i]
	routeCode := 0
	if tr.Route[i] == Product {
		routeCode = 1
	}
	analyzerCode := 0
	if tr.AnalyzerOK[i] {
		analyzerCode = 1
	}
	return ChartPoint{
		T: tr.T[i],
		Tfeed: pv.TFeedOut, SPTfeed: sp.Tfeed,
		Treb: pv.TReb, SPTreb: sp.Treb,
		Tcond: pv.TCondOut, SPTcond: sp.Tcond,
		TT106: pv.TT106, TT201: pv.TT201,
		Rho15: pv.Rho15, GateRhoLow: gate.RhoOnLow, GateRhoHigh: gate.RhoOnHigh,
		DTsub: pv.DTsub, GateDTsubMin: gate.DTsubMin,
		RouteCode: routeCode, AnalyzerOKCode: analyzerCode,
		Ffeed: pv.FFeed, SPFfeed: sp.Ffeed,
		Freflux: pv.FReflux, SPFreflux: sp.Freflux,
		Lv201: pv.Lv201, SPLv201: sp.Lv201,
		UFeed: mv.Feed, USteamPre: mv.SteamPre, USteamReb: mv.SteamReb,
		UCw: mv.Cw, UReflux: mv.Reflux, UDraw: mv.Draw,
	}
}

// EventLog returns the first n events, truncated per the external
// contract (cap 200 in the HTTP response).
func (tr *Trace) EventLog(n int) []Event {
	if len(tr.Events) <= n {
		return tr.Events
	}
	return tr.Events[:n]
}
