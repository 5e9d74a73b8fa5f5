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
	"testing"

	"simtrain/internal/train/core"
)

func TestMockStoreSaveLoadRoundTrip(t *testing.T) {
	s := NewMockStore()
	ctx := context.Background()
	scn := core.DefaultScenario()
	scn.SimS = 1234
	if err := s.Save(ctx, PresetEntry{Name: "baseline", Scenario: scn, CommitID: "c1"}); err != nil {
		t.Fatalf("unexpected save error: %v", err)
	}
	got, ok, err := s.Load(ctx, "baseline")
	if err != nil || !ok {
		t.Fatalf("expected load to find the saved preset, ok=%v err=%v", ok, err)
	}
	if got.SimS != 1234 {
		t.Fatalf("expected round-tripped SimS=1234, got %v", got.SimS)
	}
}

func TestMockStoreLoadUnknownNameReturnsFalseNotError(t *testing.T) {
	s := NewMockStore()
	_, ok, err := s.Load(context.Background(), "nonexistent")
	if err != nil {
		t.Fatalf("expected no error for unknown name, got %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for unknown name")
	}
}

func TestMockStoreSaveIsIdempotentByCommitID(t *testing.T) {
	s := NewMockStore()
	ctx := context.Background()
	scn1 := core.DefaultScenario()
	scn1.SimS = 600
	scn2 := core.DefaultScenario()
	scn2.SimS = 7200

	if err := s.Save(ctx, PresetEntry{Name: "x", Scenario: scn1, CommitID: "dup"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Same CommitID retried with a different scenario must be a no-op.
	if err := s.Save(ctx, PresetEntry{Name: "x", Scenario: scn2, CommitID: "dup"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _, _ := s.Load(ctx, "x")
	if got.SimS != 600 {
		t.Fatalf("expected retried save with duplicate CommitID to be a no-op, got SimS=%v", got.SimS)
	}
}

func TestMockStoreListReturnsSortedNames(t *testing.T) {
	s := NewMockStore()
	ctx := context.Background()
	_ = s.Save(ctx, PresetEntry{Name: "zeta", Scenario: core.DefaultScenario(), CommitID: "1"})
	_ = s.Save(ctx, PresetEntry{Name: "alpha", Scenario: core.DefaultScenario(), CommitID: "2"})
	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("expected sorted [alpha zeta], got %v", names)
	}
}

func TestBuildStoreDefaultsToMock(t *testing.T) {
	store, err := BuildStore("", Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.(*MockStore); !ok {
		t.Fatalf("expected default adapter to be *MockStore, got %T", store)
	}
}

func TestBuildStorePostgresNotWired(t *testing.T) {
	_, err := BuildStore("postgres", Options{})
	if err == nil {
		t.Fatalf("expected postgres adapter to return an explicit error")
	}
}

func TestBuildStoreUnknownAdapterErrors(t *testing.T) {
	_, err := BuildStore("bogus", Options{})
	if err == nil {
		t.Fatalf("expected unknown adapter to return an error")
	}
}

func TestKafkaStoreSaveIsIdempotentByCommitID(t *testing.T) {
	var produced int
	producer := fakeProducer{onProduce: func() { produced++ }}
	s := NewKafkaStore(producer, "test-topic")
	ctx := context.Background()
	entry := PresetEntry{Name: "x", Scenario: core.DefaultScenario(), CommitID: "dup"}
	if err := s.Save(ctx, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save(ctx, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if produced != 1 {
		t.Fatalf("expected exactly one produce call for a duplicate CommitID, got %d", produced)
	}
}

type fakeProducer struct {
	onProduce func()
}

func (f fakeProducer) Produce(ctx context.Context, topic string, key, value []byte, headers map[string]string) error {
	f.onProduce()
	return nil
}
