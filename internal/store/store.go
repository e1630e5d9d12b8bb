package store

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DataKey is the fixed slot key holding the serialized Topic array.
	DataKey = "studysheet-data"
	// HistoryKey holds the serialized undo history, when history sharing is enabled.
	HistoryKey = "studysheet-history"

	dirName = ".studysheet"
)

// Store is a local data directory. Slots, ui state and the sqlite file live inside it.
type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the data directory: a .studysheet directory found walking up from the
// working directory, otherwise <config dir>/data.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "data"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) valid() bool {
	return strings.TrimSpace(s.Dir) != ""
}
