package sheet

import (
	"context"
	"encoding/json"
	"time"

	"studysheet/internal/model"
	"studysheet/internal/store"
)

// MaxHistory bounds the undo history; the oldest entries are evicted first.
const MaxHistory = 30

// HistoryEntry is the document as it stood right after an undoable change. Entry 0 is the
// loaded (or initial) document.
type HistoryEntry struct {
	Topics      []model.Topic `json:"topics"`
	Description string        `json:"description"`
	At          time.Time     `json:"at"`
}

type historySnapshot struct {
	Version int            `json:"version"`
	Index   int            `json:"index"`
	Entries []HistoryEntry `json:"entries"`
}

// pushLocked records the live tree. Entries past the cursor are discarded first.
func (s *Store) pushLocked(desc string) {
	h := s.history
	if s.index+1 < len(h) {
		h = h[:s.index+1]
	}
	h = append(h, HistoryEntry{
		Topics:      model.CloneTopics(s.topics),
		Description: desc,
		At:          s.now(),
	})
	if over := len(h) - MaxHistory; over > 0 {
		h = append([]HistoryEntry(nil), h[over:]...)
	}
	s.history = h
	s.index = len(h) - 1
}

// Undo moves the cursor back one entry and restores that document. It reports whether
// anything changed.
func (s *Store) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading || s.index <= 0 {
		return false
	}
	s.index--
	s.topics = restore(s.history[s.index].Topics, s.topics)
	s.persistLocked(true)
	return true
}

func (s *Store) Redo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading || s.index >= len(s.history)-1 {
		return false
	}
	s.index++
	s.topics = restore(s.history[s.index].Topics, s.topics)
	s.persistLocked(true)
	return true
}

// restore copies snap but keeps the live expanded flag of topics that still exist.
func restore(snap, live []model.Topic) []model.Topic {
	expanded := make(map[string]bool, len(live))
	for _, t := range live {
		expanded[t.ID] = t.Expanded
	}
	out := model.CloneTopics(snap)
	for i := range out {
		if e, ok := expanded[out[i].ID]; ok {
			out[i].Expanded = e
		}
	}
	return model.Normalize(out)
}

func (s *Store) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index > 0
}

func (s *Store) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index < len(s.history)-1
}

// HistoryIndex is the cursor into History; -1 when empty.
func (s *Store) HistoryIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Store) History() []HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]HistoryEntry, len(s.history))
	for i, e := range s.history {
		e.Topics = model.CloneTopics(e.Topics)
		out[i] = e
	}
	return out
}

func (s *Store) persistHistoryLocked() {
	if s.hist == nil {
		return
	}
	b, err := json.Marshal(historySnapshot{Version: 1, Index: s.index, Entries: s.history})
	if err != nil {
		s.log.Warn("encode history failed", "error", err)
		return
	}
	s.hist.Notify(b)
}

// restoreHistoryLocked adopts a stored history when its cursor is valid and the entry under
// the cursor matches the loaded tree. A mismatch means the data was written without the
// history (sharing off, or a failed history write).
func (s *Store) restoreHistoryLocked(ctx context.Context) bool {
	var snap historySnapshot
	if !s.adapter.LoadJSON(ctx, store.HistoryKey, &snap) {
		return false
	}
	n := len(snap.Entries)
	if n == 0 || n > MaxHistory || snap.Index < 0 || snap.Index >= n {
		s.log.Warn("stored history ignored", "entries", n, "index", snap.Index)
		return false
	}
	for i := range snap.Entries {
		snap.Entries[i].Topics = model.Normalize(snap.Entries[i].Topics)
	}
	if !sameTree(snap.Entries[snap.Index].Topics, s.topics) {
		s.log.Warn("stored history does not match stored data", "entries", n, "index", snap.Index)
		return false
	}
	s.history = snap.Entries
	s.index = snap.Index
	return true
}

// sameTree compares two trees ignoring the expanded flag.
func sameTree(a, b []model.Topic) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		ta, tb := a[i], b[i]
		if ta.ID != tb.ID || ta.Title != tb.Title || ta.Color != tb.Color || len(ta.SubTopics) != len(tb.SubTopics) {
			return false
		}
		for j := range ta.SubTopics {
			sa, sb := ta.SubTopics[j], tb.SubTopics[j]
			if sa.ID != sb.ID || sa.Title != sb.Title || len(sa.Questions) != len(sb.Questions) {
				return false
			}
			for k := range sa.Questions {
				if sa.Questions[k] != sb.Questions[k] {
					return false
				}
			}
		}
	}
	return true
}
