package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("STUDYSHEET_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Storage != "" || cfg.Log != nil {
		t.Fatalf("expected zero config; got %#v", cfg)
	}
	if !cfg.HistoryShared() {
		t.Fatalf("expected history sharing to default on")
	}
}

func TestSaveConfig_RoundTripAndBackup(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("STUDYSHEET_CONFIG_DIR", cfgDir)

	off := false
	if err := SaveConfig(&GlobalConfig{Storage: BackendSQLite}); err != nil {
		t.Fatalf("SaveConfig(first): %v", err)
	}
	want := &GlobalConfig{
		Storage:      BackendRedis,
		RedisURL:     "redis://localhost:6379/0",
		Seed:         "https://example.test/sheet.json",
		ShareHistory: &off,
		Log:          &LogConfig{Mode: "prod", Level: "warn"},
	}
	if err := SaveConfig(want); err != nil {
		t.Fatalf("SaveConfig(second): %v", err)
	}

	got, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if got.Storage != BackendRedis || got.RedisURL != want.RedisURL || got.Seed != want.Seed {
		t.Fatalf("roundtrip mismatch: %#v", got)
	}
	if got.HistoryShared() {
		t.Fatalf("expected shareHistory=false to survive")
	}
	if got.Log == nil || got.Log.Level != "warn" {
		t.Fatalf("expected log config; got %#v", got.Log)
	}

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	var prev GlobalConfig
	if err := json.Unmarshal(b, &prev); err != nil {
		t.Fatalf("backup is not valid json: %v", err)
	}
	if prev.Storage != BackendSQLite {
		t.Fatalf("expected backup to hold previous config; got %#v", prev)
	}
}

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("STUDYSHEET_CONFIG_DIR", cfgDir)

	const n = 32
	errCh := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg := &GlobalConfig{Seed: fmt.Sprintf("seed-%d.json", i)}
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
			}
		}(i)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		t.Fatalf("config.json is corrupted: %v\n%s", err, string(b))
	}
}
