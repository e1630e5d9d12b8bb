package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const uiStateFileName = "ui_state.json"

// UIState stores the last filter/sort/search of the interactive views.
// It is best effort: callers should tolerate missing/invalid data.
type UIState struct {
	Version int `json:"version"`

	// Filter is one of: all|easy|medium|hard|completed|incomplete
	Filter string `json:"filter,omitempty"`
	// Sort is one of: custom|a-z|progress
	Sort   string `json:"sort,omitempty"`
	Search string `json:"search,omitempty"`

	// ShowNotes toggles the notes pane in the TUI.
	ShowNotes bool `json:"showNotes,omitempty"`

	// Cursor is the id of the last selected row.
	Cursor string `json:"cursor,omitempty"`
}

func (s Store) uiStatePath() string {
	return filepath.Join(s.Dir, uiStateFileName)
}

func (s Store) LoadUIState() (*UIState, error) {
	if !s.valid() {
		return &UIState{Version: 1}, nil
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.uiStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &UIState{Version: 1}, nil
		}
		return nil, err
	}
	var st UIState
	if err := json.Unmarshal(b, &st); err != nil {
		// Corrupted state is treated as missing.
		return &UIState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SaveUIState(st *UIState) error {
	if st == nil || !s.valid() {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, uiStateFileName+".*.tmp", s.uiStatePath(), b, 0o644)
}
