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

// Package main provides the entry point for the train digital twin's
// HTTP API server: POST /simulate runs the engine (single or suite
// mode), GET /healthz is a liveness probe, GET /metrics exposes
// Prometheus exposition, and /presets saves and loads named scenarios.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"simtrain/internal/train/api"
	"simtrain/internal/train/presets"
	"simtrain/internal/train/telemetry/metrics"
)

func main() {
	httpAddr := flag.String("http_addr", ":8080", "HTTP listen address")
	presetAdapter := flag.String("preset_adapter", "mock", "Preset store adapter: mock, redis, kafka, postgres")
	redisAddr := flag.String("preset_redis_addr", "", "Redis address for preset_adapter=redis (empty uses a logging stand-in)")
	kafkaTopic := flag.String("preset_kafka_topic", "", "Kafka topic for preset_adapter=kafka")
	metricsEnabled := flag.Bool("metrics", false, "Enable in-process Prometheus instrumentation (opt-in)")
	metricsAddr := flag.String("metrics_addr", "", "If non-empty, expose a dedicated /metrics endpoint on this address")
	flag.Parse()

	metrics.Enable(metrics.Config{Enabled: *metricsEnabled, MetricsAddr: *metricsAddr})

	store, err := presets.BuildStore(*presetAdapter, presets.Options{
		RedisAddr:  *redisAddr,
		KafkaTopic: *kafkaTopic,
	})
	if err != nil {
		log.Fatalf("build preset store: %v", err)
	}

	apiServer := api.NewServer(store)

	mux := http.NewServeMux()
	apiServer.RegisterRoutes(mux)
	httpServer := &http.Server{
		Addr:         *httpAddr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		fmt.Printf("train-api server listening on %s\n", *httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("could not listen on %s: %v", *httpAddr, err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	fmt.Println("\nshutting down train-api server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}
	fmt.Println("train-api server gracefully stopped.")
}
