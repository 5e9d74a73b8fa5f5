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
	"sort"
	"sync"

	"simtrain/internal/train/core"
)

// MockStore is an in-process, idempotent preset store. It is the
// default adapter and requires no external infrastructure.
type MockStore struct {
	mu      sync.Mutex
	byName  map[string]core.Scenario
	applied map[string]bool // key: name+"\x00"+commitID
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{
		byName:  make(map[string]core.Scenario),
		applied: make(map[string]bool),
	}
}

func (m *MockStore) Save(ctx context.Context, entry PresetEntry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	key := entry.Name + "\x00" + entry.CommitID
	if entry.CommitID != "" && m.applied[key] {
		return nil
	}
	m.byName[entry.Name] = entry.Scenario
	if entry.CommitID != "" {
		m.applied[key] = true
	}
	return nil
}

func (m *MockStore) Load(ctx context.Context, name string) (core.Scenario, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byName[name]
	return s, ok, nil
}

func (m *MockStore) List(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.byName))
	for name := range m.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
