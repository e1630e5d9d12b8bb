package cli

import (
	"os"
	"strings"

	"studysheet/internal/logger"
	"studysheet/internal/tui"

	"github.com/spf13/cobra"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app)
		},
	}
}

// tuiLogger writes to a file when one is configured. The terminal belongs to the TUI, so
// there is no stderr fallback.
func tuiLogger(app *App) *logger.Logger {
	path := strings.TrimSpace(os.Getenv("STUDYSHEET_LOG_FILE"))
	opts := logger.Options{Mode: "prod"}
	if lc := app.config().Log; lc != nil {
		if path == "" {
			path = lc.File
		}
		opts.Level = lc.Level
	}
	if path == "" || app.LogMode == "off" {
		return logger.Nop()
	}
	opts.OutputPath = path
	l, err := logger.NewWithOptions(opts)
	if err != nil {
		return logger.Nop()
	}
	return l
}

func runTUI(cmd *cobra.Command, app *App) error {
	log := tuiLogger(app)
	defer log.Sync()

	sess, err := newSession(cmd.Context(), app, log)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()

	return tui.Run(cmd.Context(), tui.Options{Sheet: sess.sheet, Dir: sess.dir, Log: log})
}
