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

// Package presets provides idempotent named-scenario storage for the
// train digital twin. A preset is a saved core.Scenario under a name;
// saves carry a CommitID so a retried save (crash, timeout, duplicate
// client request) becomes a no-op rather than a duplicate write.
package presets

import (
	"context"

	"simtrain/internal/train/core"
)

// PresetEntry is the adapter-facing shape for a single named preset
// save. CommitID is the idempotency key: re-applying the same
// CommitID for the same Name must not change stored state.
type PresetEntry struct {
	Name     string
	Scenario core.Scenario
	CommitID string
}

// Store is the minimal persistence surface every adapter implements.
// Save must be idempotent per (Name, CommitID); Load returns
// (zero value, false, nil) for an unknown name, never an error.
type Store interface {
	Save(ctx context.Context, entry PresetEntry) error
	Load(ctx context.Context, name string) (core.Scenario, bool, error)
	List(ctx context.Context) ([]string, error)
}
