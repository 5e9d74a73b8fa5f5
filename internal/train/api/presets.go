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

package api

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"simtrain/internal/train/core"
	"simtrain/internal/train/presets"
	"simtrain/internal/train/telemetry/metrics"
)

type savePresetRequest struct {
	Name     string         `json:"name"`
	Scenario map[string]any `json:"scenario"`
}

// handlePresets serves POST (save a named preset) and GET (list names).
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	if s.presetStore == nil {
		http.Error(w, "preset store not configured", http.StatusNotImplemented)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		names, err := s.presetStore.List(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"presets": names})
	case http.MethodPost:
		var req savePresetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
			http.Error(w, "name and scenario are required", http.StatusBadRequest)
			return
		}
		_, scn := core.DecodeRequest(req.Scenario)
		entry := presets.PresetEntry{Name: req.Name, Scenario: scn, CommitID: randomCommitID()}
		if err := s.presetStore.Save(r.Context(), entry); err != nil {
			metrics.ObservePresetCommitError()
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// handlePresetByName serves GET /presets/{name} -> the stored Scenario.
func (s *Server) handlePresetByName(w http.ResponseWriter, r *http.Request) {
	if s.presetStore == nil {
		http.Error(w, "preset store not configured", http.StatusNotImplemented)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/presets/")
	if name == "" {
		http.Error(w, "preset name is required", http.StatusBadRequest)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	scn, ok, err := s.presetStore.Load(r.Context(), name)
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "preset not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(scn)
}

func randomCommitID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
