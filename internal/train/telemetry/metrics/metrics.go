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

// Package metrics provides opt-in, low-overhead Prometheus
// instrumentation for the train digital twin's engine and HTTP
// server. When disabled, every public function is a no-op so it is
// safe to call from the hot path of request handling.
package metrics

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config controls the behavior of the metrics module.
type Config struct {
	Enabled     bool
	MetricsAddr string // e.g. ":9090"; empty disables the standalone endpoint
}

var (
	modEnabled atomic.Bool

	runsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "train_runs_total",
		Help: "Total number of simulation runs (single or suite mode), by outcome",
	}, []string{"outcome"})

	runDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "train_run_duration_seconds",
		Help:    "Wall-clock duration of a completed simulation run",
		Buckets: prometheus.DefBuckets,
	})

	suiteScenariosTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "train_suite_scenarios_total",
		Help: "Total number of suite scenarios executed across all suite-mode runs",
	})

	gateSwitches = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "train_gate_switches",
		Help: "Number of RECYCLE/PRODUCT route switches observed in the most recent run",
	})

	presetCommitErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "train_preset_commit_errors_total",
		Help: "Total number of failed preset store commit attempts",
	})
)

func init() {
	prometheus.MustRegister(runsTotal, runDuration, suiteScenariosTotal, gateSwitches, presetCommitErrorsTotal)
}

// Enable configures the module. Safe to call multiple times.
func Enable(cfg Config) {
	modEnabled.Store(cfg.Enabled)
	if cfg.MetricsAddr != "" {
		startMetricsEndpoint(cfg.MetricsAddr)
	}
}

// Enabled reports whether the metrics module is active.
func Enabled() bool { return modEnabled.Load() }

// ObserveRun records one run's outcome and duration (single or suite
// mode; a suite request counts as one run).
func ObserveRun(ok bool, d time.Duration) {
	if !modEnabled.Load() {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	runsTotal.WithLabelValues(outcome).Inc()
	runDuration.Observe(d.Seconds())
}

// ObserveSuite records a completed suite-mode run's scenario count.
func ObserveSuite(scenarioCount int) {
	if !modEnabled.Load() || scenarioCount <= 0 {
		return
	}
	suiteScenariosTotal.Add(float64(scenarioCount))
}

// ObserveGateSwitches records the most recent run's switch count.
func ObserveGateSwitches(n int) {
	if !modEnabled.Load() {
		return
	}
	gateSwitches.Set(float64(n))
}

// ObservePresetCommitError increments the preset-store error counter.
func ObservePresetCommitError() {
	if !modEnabled.Load() {
		return
	}
	presetCommitErrorsTotal.Inc()
}

// startMetricsEndpoint exposes /metrics on addr in a background
// goroutine. Safe to call multiple times; callers typically call it
// once at startup via Enable.
func startMetricsEndpoint(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		_ = server.ListenAndServe()
	}()
}
