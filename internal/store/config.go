package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type GlobalConfig struct {
	// Storage selects the slot backend: file|sqlite|redis|memory.
	Storage string `json:"storage,omitempty"`

	// RedisURL is used when Storage == "redis".
	RedisURL string `json:"redisUrl,omitempty"`

	// Seed is the default seed document location (http(s) URL or file path).
	Seed string `json:"seed,omitempty"`

	// ShareHistory persists undo history next to the data so separate CLI invocations can undo
	// each other's changes. Defaults to true when unset.
	ShareHistory *bool `json:"shareHistory,omitempty"`

	// PersistDebounceMs delays background writes. Zero writes immediately.
	PersistDebounceMs int `json:"persistDebounceMs,omitempty"`

	Log *LogConfig `json:"log,omitempty"`
}

type LogConfig struct {
	// Mode is one of: dev|prod|off.
	Mode  string `json:"mode,omitempty"`
	Level string `json:"level,omitempty"`
	// File is where the TUI writes logs. Empty disables TUI logging.
	File string `json:"file,omitempty"`
}

func (c *GlobalConfig) HistoryShared() bool {
	if c == nil || c.ShareHistory == nil {
		return true
	}
	return *c.ShareHistory
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.studysheet).
	if v := strings.TrimSpace(os.Getenv("STUDYSHEET_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config; errors here never block the save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}
