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

// Package sinks provides buffered JSONL writers for CLI-only dumps of
// a run's chart trace and event log. The HTTP server never touches
// this package: a run served over /simulate remains stateless.
package sinks

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"

	"simtrain/internal/train/core"
)

// TraceFileSink is a buffered JSONL sink for a run's downsampled
// chart points. Safe for sequential use by a single CLI run.
type TraceFileSink struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// NewTraceFileSink opens (or creates/truncates) the file at path.
func NewTraceFileSink(path string) (*TraceFileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &TraceFileSink{f: f, w: bufio.NewWriterSize(f, 1<<16)}, nil
}

// WriteAll writes every chart point as one JSON line each.
func (s *TraceFileSink) WriteAll(points []core.ChartPoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.w)
	for _, p := range points {
		if err := enc.Encode(&p); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// Close flushes and closes the underlying file.
func (s *TraceFileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.w.Flush()
	return s.f.Close()
}

// EventFileSink is a buffered JSONL sink for a run's event log.
type EventFileSink struct {
	mu sync.Mutex
	f  *os.File
	w  *bufio.Writer
}

// NewEventFileSink opens (or creates/truncates) the file at path.
func NewEventFileSink(path string) (*EventFileSink, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &EventFileSink{f: f, w: bufio.NewWriterSize(f, 1<<16)}, nil
}

// WriteAll writes every event as one JSON line each.
func (s *EventFileSink) WriteAll(events []core.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.w)
	for _, e := range events {
		if err := enc.Encode(&e); err != nil {
			return err
		}
	}
	return s.w.Flush()
}

// Close flushes and closes the underlying file.
func (s *EventFileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.w.Flush()
	return s.f.Close()
}
