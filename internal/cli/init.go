package cli

import (
	"errors"

	"studysheet/internal/sheet"
	"studysheet/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	var reseed bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage and load the sheet (stored data first, then the seed)",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSheet(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer sess.Close()

			st := sess.sheet
			if reseed {
				if err := st.Reseed(cmd.Context()); err != nil {
					return writeErr(cmd, err)
				}
			}

			backend := app.backend()
			if backend == "" {
				backend = store.BackendFile
			}
			data := map[string]any{
				"dir":     sess.dir,
				"storage": backend,
				"seed":    app.seedLocation(),
				"stats":   st.Stats(),
			}
			if backend == store.BackendSQLite {
				data["sqlitePath"] = store.Store{Dir: sess.dir}.SQLitePath()
			}
			if errors.Is(sess.loadErr, sheet.ErrNoData) && !reseed {
				data["warning"] = sheet.ErrNoData.Error()
			}
			return writeOut(cmd, app, map[string]any{"data": data})
		},
	}

	cmd.Flags().BoolVar(&reseed, "reseed", false, "Replace the stored sheet with a fresh copy of the seed (undoable)")
	return cmd
}
