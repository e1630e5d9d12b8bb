package cli

import (
	"errors"
	"time"

	"studysheet/internal/sheet"

	"github.com/spf13/cobra"
)

func newUndoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Undo the last recorded change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				h := st.History()
				i := st.HistoryIndex()
				if !st.Undo() {
					return writeErr(cmd, errors.New("nothing to undo"))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"undone":  h[i].Description,
					"index":   st.HistoryIndex(),
					"canUndo": st.CanUndo(),
					"canRedo": st.CanRedo(),
				}})
			})
		},
	}
}

func newRedoCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				if !st.Redo() {
					return writeErr(cmd, errors.New("nothing to redo"))
				}
				h := st.History()
				i := st.HistoryIndex()
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"redone":  h[i].Description,
					"index":   i,
					"canUndo": st.CanUndo(),
					"canRedo": st.CanRedo(),
				}})
			})
		},
	}
}

type historyRow struct {
	Index       int       `json:"index"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
	Current     bool      `json:"current"`
	Topics      int       `json:"topics"`
}

func newHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List undo history entries (oldest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				cur := st.HistoryIndex()
				h := st.History()
				rows := make([]historyRow, 0, len(h))
				for i, e := range h {
					rows = append(rows, historyRow{
						Index:       i,
						Description: e.Description,
						At:          e.At,
						Current:     i == cur,
						Topics:      len(e.Topics),
					})
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{
					"entries": rows,
					"index":   cur,
					"canUndo": st.CanUndo(),
					"canRedo": st.CanRedo(),
				}})
			})
		},
	}
}
