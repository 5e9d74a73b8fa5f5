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
	"fmt"
	"time"
)

// Options holds the minimal knobs needed to build any adapter.
type Options struct {
	RedisAddr      string
	RedisMarkerTTL time.Duration
	KafkaTopic     string
}

// BuildStore constructs a Store by name. Supported adapters:
//   - "", "mock": in-process store (default)
//   - "redis": idempotent Redis adapter; uses a real client when
//     opts.RedisAddr is set, otherwise a logging stand-in
//   - "kafka": append-only Kafka adapter; uses a logging producer
//     (no broker dependency introduced)
//   - "postgres": not wired, returns an explicit error
func BuildStore(adapter string, opts Options) (Store, error) {
	switch adapter {
	case "", "mock":
		return NewMockStore(), nil
	case "redis":
		ttl := opts.RedisMarkerTTL
		if ttl <= 0 {
			ttl = 24 * time.Hour
		}
		var evaler RedisEvaler
		if opts.RedisAddr != "" {
			evaler = NewGoRedisEvaler(opts.RedisAddr)
		} else {
			evaler = LoggingRedisEvaler{}
		}
		return NewRedisStore(evaler, ttl), nil
	case "kafka":
		topic := opts.KafkaTopic
		if topic == "" {
			topic = "train-presets"
		}
		return NewKafkaStore(LoggingKafkaProducer{}, topic), nil
	case "postgres":
		_, err := NewPostgresStore()
		return nil, err
	default:
		return nil, fmt.Errorf("presets: unknown adapter %q", adapter)
	}
}
