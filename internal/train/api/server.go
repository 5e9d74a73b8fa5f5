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

// Package api implements the public-facing HTTP server for the train
// digital twin. It decodes simulation requests, runs the engine, and
// returns the external JSON contract; it holds no state across
// requests beyond the optional preset store.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"simtrain/internal/train/core"
	"simtrain/internal/train/presets"
	"simtrain/internal/train/telemetry/metrics"
)

// Server handles HTTP requests for the simulation engine. Each
// /simulate request constructs and owns its own Scheduler; nothing is
// shared across requests except the single preset store passed to
// NewServer.
type Server struct {
	presetStore presets.Store
}

// NewServer creates a configured server. store may be nil, in which
// case preset save/load endpoints respond 501.
func NewServer(store presets.Store) *Server {
	return &Server{presetStore: store}
}

// RegisterRoutes sets up the HTTP routes for the server on the given ServeMux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/simulate", s.handleSimulate)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/presets", s.handlePresets)
	mux.HandleFunc("/presets/", s.handlePresetByName)
}

// handleSimulate is the main HTTP handler: decode request -> run
// engine -> encode response. Ordinary malformed input never reaches
// here as an error (DecodeRequest recovers locally); only a genuine
// engine fault surfaces as {"error": "..."} with HTTP 500.
func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		raw = map[string]any{}
	}
	mode, scn := core.DecodeRequest(raw)

	start := time.Now()
	w.Header().Set("Content-Type", "application/json")

	if mode == "suite" {
		resp, err := core.RunSuiteRequest(scn)
		metrics.ObserveRun(err == nil, time.Since(start))
		if err != nil {
			writeEngineError(w, err)
			return
		}
		metrics.ObserveSuite(len(resp.Scenarios))
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	resp, err := core.RunSingle(scn)
	metrics.ObserveRun(err == nil, time.Since(start))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	metrics.ObserveGateSwitches(resp.Gate.Switches)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeEngineError(w http.ResponseWriter, err error) {
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// handleHealthz is a liveness probe.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "time": time.Now().UTC()})
}

// ListenAndServe starts the HTTP server on the specified address,
// wrapping http.Server with the same timeout policy as the teacher's
// rate-limiter API server.
func (s *Server) ListenAndServe(addr string) error {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	fmt.Printf("train-api server listening on %s\n", addr)
	return httpServer.ListenAndServe()
}
