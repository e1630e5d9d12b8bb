package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"studysheet/internal/logger"
	"studysheet/internal/sheet"
)

type Options struct {
	// Sheet is loaded by the TUI itself; it must not be initialized yet.
	Sheet *sheet.Store
	// Dir holds ui_state.json. Empty disables ui state persistence.
	Dir string
	Log *logger.Logger
}

// Run starts the interactive checklist and blocks until the user quits. Pending writes are
// flushed before it returns.
func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()

	m := newAppModel(ctx, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if opts.Sheet != nil {
		opts.Sheet.Flush()
	}
	return err
}
