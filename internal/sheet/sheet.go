package sheet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"studysheet/internal/logger"
	"studysheet/internal/model"
	"studysheet/internal/seed"
	"studysheet/internal/stats"
	"studysheet/internal/store"
)

// Load state errors. Their messages are shown to users as-is.
var (
	ErrLoadFailed = errors.New("Failed to load data")
	ErrNoData     = errors.New("No data found")
)

type Options struct {
	// Slot is the durable storage. Nil keeps everything in memory.
	Slot store.Slot
	// Source is queried when Slot holds no document.
	Source seed.Source
	// ShareHistory persists the undo history under store.HistoryKey and restores it on load.
	ShareHistory bool
	// Debounce delays background writes.
	Debounce time.Duration

	IDs store.IDGenerator
	Log *logger.Logger
	Now func() time.Time
}

// Store owns the live document tree and its undo history. All methods are safe for
// concurrent use; each operation runs to completion under one lock.
type Store struct {
	mu      sync.Mutex
	topics  []model.Topic
	history []HistoryEntry
	index   int
	loading bool
	err     error

	adapter store.Adapter
	data    *store.Persister
	hist    *store.Persister
	source  seed.Source
	ids     store.IDGenerator
	log     *logger.Logger
	now     func() time.Time
}

func New(opts Options) *Store {
	s := &Store{
		topics: []model.Topic{},
		index:  -1,
		source: opts.Source,
		ids:    opts.IDs,
		log:    opts.Log,
		now:    opts.Now,
	}
	if s.ids == nil {
		s.ids = store.RandomIDs{}
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.adapter = store.Adapter{Slot: opts.Slot, Log: s.log}
	if opts.Slot != nil {
		s.data = store.NewPersister(store.PersisterOpts{
			Slot: opts.Slot, Key: store.DataKey, Debounce: opts.Debounce, Log: s.log,
		})
		if opts.ShareHistory {
			s.hist = store.NewPersister(store.PersisterOpts{
				Slot: opts.Slot, Key: store.HistoryKey, Debounce: opts.Debounce, Log: s.log,
			})
		}
	}
	return s
}

// Initialize loads the stored document, or the seed when storage is empty. Load errors are
// recorded in Err and returned; the tree is left empty in that case.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	if topics, ok := s.adapter.LoadTopics(ctx); ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.topics = topics
		s.loading = false
		s.history = nil
		s.index = -1
		if s.hist != nil && s.restoreHistoryLocked(ctx) {
			s.log.Debug("history restored", "entries", len(s.history), "index", s.index)
			return nil
		}
		s.pushLocked("Load from storage")
		s.persistHistoryLocked()
		return nil
	}

	topics, err := s.fetchSeed(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.history = nil
	s.index = -1
	if err != nil {
		s.topics = []model.Topic{}
		s.err = sentinel(err)
		return err
	}
	s.topics = topics
	s.pushLocked("Initial load from sheet")
	s.persistLocked(true)
	return nil
}

// Reseed replaces the live tree with a fresh copy of the seed. The replacement is undoable.
func (s *Store) Reseed(ctx context.Context) error {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return errors.New("store is loading")
	}
	s.mu.Unlock()

	topics, err := s.fetchSeed(ctx)
	if err != nil {
		return err
	}
	s.apply("Reseed from sheet", func(cur []model.Topic) ([]model.Topic, bool) {
		return topics, true
	})
	return nil
}

func (s *Store) fetchSeed(ctx context.Context) ([]model.Topic, error) {
	if s.source == nil {
		return nil, ErrNoData
	}
	doc, err := s.source.Fetch(ctx)
	if err != nil {
		s.log.Warn("seed fetch failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	topics, err := seed.Normalize(doc, s.ids)
	if err != nil {
		s.log.Warn("seed normalize failed", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	if len(topics) == 0 {
		return nil, ErrNoData
	}
	s.log.Info("seed loaded", "topics", len(topics))
	return topics, nil
}

func sentinel(err error) error {
	if errors.Is(err, ErrNoData) {
		return ErrNoData
	}
	return ErrLoadFailed
}

// apply runs one mutation. fn must return a new tree and leave cur untouched; ok=false means
// no-op. A non-empty desc records an undo entry. An empty desc folds the change into the
// current entry instead, so undoing a later change keeps it.
func (s *Store) apply(desc string, fn func(cur []model.Topic) ([]model.Topic, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return false
	}
	next, ok := fn(s.topics)
	if !ok {
		return false
	}
	if desc != "" && s.index < 0 {
		// No base entry yet (e.g. empty store). Record the pre-state so the first edit can be undone.
		s.pushLocked("Initial state")
	}
	s.topics = next
	switch {
	case desc != "":
		s.pushLocked(desc)
	case s.index >= 0:
		s.history[s.index].Topics = model.CloneTopics(next)
	}
	s.persistLocked(s.index >= 0)
	return true
}

func (s *Store) persistLocked(historyChanged bool) {
	if s.data != nil {
		b, err := store.EncodeTopics(s.topics)
		if err != nil {
			s.log.Warn("encode topics failed", "error", err)
		} else {
			s.data.Notify(b)
		}
	}
	if historyChanged {
		s.persistHistoryLocked()
	}
}

func (s *Store) Topics() []model.Topic {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneTopics(s.topics)
}

func (s *Store) Stats() stats.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return stats.Compute(s.topics)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err is ErrLoadFailed, ErrNoData or nil.
func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Flush blocks until pending background writes complete.
func (s *Store) Flush() {
	s.data.Flush()
	s.hist.Flush()
}

// Close flushes pending writes. The slot is owned by the caller.
func (s *Store) Close() error {
	s.Flush()
	return nil
}
