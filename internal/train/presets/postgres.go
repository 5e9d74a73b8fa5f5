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

package presets

import (
	"context"
	"errors"

	"simtrain/internal/train/core"
)

// PostgresStore is intentionally not wired: constructing one always
// fails, the same stance the teacher takes on its Postgres adapter,
// to avoid a hidden nil *sql.DB being used silently. Supply a real
// *sql.DB and a schema migration before enabling this adapter.
type PostgresStore struct{}

var errPostgresNotWired = errors.New("presets: postgres adapter is not enabled; wire a real *sql.DB and create the presets table")

func NewPostgresStore() (*PostgresStore, error) {
	return nil, errPostgresNotWired
}

func (*PostgresStore) Save(ctx context.Context, entry PresetEntry) error { return errPostgresNotWired }

func (*PostgresStore) Load(ctx context.Context, name string) (core.Scenario, bool, error) {
	return core.Scenario{}, false, errPostgresNotWired
}

func (*PostgresStore) List(ctx context.Context) ([]string, error) { return nil, errPostgresNotWired }
