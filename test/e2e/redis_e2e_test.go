//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
)

// TestRedisPresetStoreE2E verifies the real Redis-backed preset store
// path: a saved preset survives a round trip through an actual Redis
// instance, not just the in-memory mock. Requires PRESET_REDIS_ADDR
// (e.g. 127.0.0.1:6379) to point at a reachable Redis; skipped
// otherwise.
func TestRedisPresetStoreE2E(t *testing.T) {
	addr := os.Getenv("PRESET_REDIS_ADDR")
	if addr == "" {
		t.Skip("skipping: PRESET_REDIS_ADDR not set")
	}

	rc := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Ping(ctx).Err(); err != nil {
		t.Skipf("skipping: Redis not reachable at %s: %v", addr, err)
	}
	defer rc.Close()

	rs := buildAndStartServer(t,
		"-preset_adapter=redis",
		"-preset_redis_addr="+addr,
	)

	client := &http.Client{Timeout: 5 * time.Second}
	saveBody, _ := json.Marshal(map[string]any{"name": "redis-e2e-preset", "scenario": map[string]any{"sim_s": 2400.0}})
	resp, err := client.Post(rs.baseURL+"/presets", "application/json", bytes.NewReader(saveBody))
	if err != nil {
		t.Fatalf("POST /presets: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 on save, got %d", resp.StatusCode)
	}

	loadResp, err := client.Get(rs.baseURL + "/presets/redis-e2e-preset")
	if err != nil {
		t.Fatalf("GET /presets/redis-e2e-preset: %v", err)
	}
	defer loadResp.Body.Close()
	if loadResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on load, got %d", loadResp.StatusCode)
	}
	var scn map[string]any
	if err := json.NewDecoder(loadResp.Body).Decode(&scn); err != nil {
		t.Fatalf("decode loaded scenario: %v", err)
	}
	if got, ok := scn["SimS"].(float64); !ok || got != 2400.0 {
		t.Fatalf("expected round-tripped SimS=2400, got %v", scn["SimS"])
	}
}
