package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrSlotEmpty is returned by Slot.Get when nothing is stored under the key.
var ErrSlotEmpty = errors.New("slot empty")

// Slot is a durable key/value string slot. Values are opaque bytes (JSON in practice).
type Slot interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type OpenOptions struct {
	// Backend is one of: file|sqlite|redis|memory. Empty means file.
	Backend string
	// RedisURL is required for the redis backend (redis://host:port/db).
	RedisURL string
}

// Open returns the slot for the configured backend rooted at s.Dir.
func (s Store) Open(ctx context.Context, opts OpenOptions) (Slot, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	switch backend {
	case "", BackendFile:
		if !s.valid() {
			return nil, errors.New("file storage: missing dir")
		}
		return NewFileSlot(s.Dir)
	case BackendSQLite:
		if !s.valid() {
			return nil, errors.New("sqlite storage: missing dir")
		}
		return OpenSQLiteSlot(ctx, s.SQLitePath())
	case BackendRedis:
		return OpenRedisSlot(ctx, opts.RedisURL)
	case BackendMemory:
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (expected file|sqlite|redis|memory)", opts.Backend)
	}
}

// MemorySlot keeps values in process memory.
type MemorySlot struct {
	mu   sync.Mutex
	vals map[string][]byte
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{vals: map[string][]byte{}}
}

func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (m *MemorySlot) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = append([]byte(nil), value...)
	return nil
}

func (m *MemorySlot) Close() error { return nil }
