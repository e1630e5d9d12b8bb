package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"studysheet/internal/format"
	"studysheet/internal/logger"
	"studysheet/internal/seed"
	"studysheet/internal/sheet"
	"studysheet/internal/store"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Storage    string
	RedisURL   string
	Seed       string
	PrettyJSON bool
	Format     string
	LogMode    string

	cfg *store.GlobalConfig
	log *logger.Logger
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "studysheet",
		Short:         "Question sheet tracker (CLI + TUI)",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive checklist
  studysheet

  # Load the sheet from a seed document
  studysheet init --seed https://example.com/api/sheet

  # Scriptable commands
  studysheet list --filter incomplete --sort progress
  studysheet questions toggle q-abcd1234
  studysheet undo

  # Direct lookup (shortcut for: studysheet show <id>)
  studysheet q-abcd1234
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := store.LoadConfig()
		if err != nil {
			return writeErr(cmd, fmt.Errorf("load config: %w", err))
		}
		app.cfg = cfg
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("STUDYSHEET_DIR", ""), "Path to data dir (default: nearest .studysheet/ or ~/.studysheet/data)")
	cmd.PersistentFlags().StringVar(&app.Storage, "storage", envOr("STUDYSHEET_STORAGE", ""), "Storage backend (file|sqlite|redis|memory)")
	cmd.PersistentFlags().StringVar(&app.RedisURL, "redis-url", envOr("STUDYSHEET_REDIS_URL", ""), "Redis URL for the redis backend")
	cmd.PersistentFlags().StringVar(&app.Seed, "seed", envOr("STUDYSHEET_SEED", ""), "Seed document (http(s) URL or JSON/YAML file) used when storage is empty")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("STUDYSHEET_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().StringVar(&app.LogMode, "log", envOr("STUDYSHEET_LOG", ""), "Log mode (dev|prod|off)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newTopicsCmd(app))
	cmd.AddCommand(newSubTopicsCmd(app))
	cmd.AddCommand(newQuestionsCmd(app))
	cmd.AddCommand(newUndoCmd(app))
	cmd.AddCommand(newRedoCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newSeedCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newTUICmd(app))

	return cmd
}

func (app *App) config() *store.GlobalConfig {
	if app.cfg == nil {
		return &store.GlobalConfig{}
	}
	return app.cfg
}

func (app *App) dataDir() (string, error) {
	if strings.TrimSpace(app.Dir) != "" {
		return app.Dir, nil
	}
	d, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	app.Dir = d
	return d, nil
}

func (app *App) backend() string {
	if app.Storage != "" {
		return app.Storage
	}
	return app.config().Storage
}

func (app *App) seedLocation() string {
	if app.Seed != "" {
		return app.Seed
	}
	return app.config().Seed
}

// logger builds the command logger. CLI output goes to stdout, so logs default to warnings on
// stderr.
func (app *App) logger() *logger.Logger {
	if app.log != nil {
		return app.log
	}
	opts := logger.Options{Mode: "prod", Level: "warn"}
	if lc := app.config().Log; lc != nil {
		if lc.Mode != "" {
			opts.Mode = lc.Mode
		}
		if lc.Level != "" {
			opts.Level = lc.Level
		}
	}
	if app.LogMode != "" {
		opts.Mode = app.LogMode
	}
	l, err := logger.NewWithOptions(opts)
	if err != nil {
		l = logger.Nop()
	}
	app.log = l
	return l
}

// session is one opened sheet: the slot it persists to and the loaded store.
type session struct {
	dir   string
	slot  store.Slot
	sheet *sheet.Store
	// loadErr is the Initialize result (sheet.ErrLoadFailed, sheet.ErrNoData or nil).
	loadErr error
}

func (s *session) Close() error {
	if s == nil {
		return nil
	}
	var errs []error
	if s.sheet != nil {
		errs = append(errs, s.sheet.Close())
	}
	if s.slot != nil {
		errs = append(errs, s.slot.Close())
	}
	return errors.Join(errs...)
}

// newSession opens the configured slot and builds an uninitialized sheet store over it.
func newSession(ctx context.Context, app *App, log *logger.Logger) (*session, error) {
	dir, err := app.dataDir()
	if err != nil {
		return nil, err
	}
	s := store.Store{Dir: dir}
	backend := app.backend()
	if backend == "" || backend == store.BackendFile || backend == store.BackendSQLite {
		if err := s.Ensure(); err != nil {
			return nil, err
		}
	}
	redisURL := app.RedisURL
	if redisURL == "" {
		redisURL = app.config().RedisURL
	}
	slot, err := s.Open(ctx, store.OpenOptions{Backend: backend, RedisURL: redisURL})
	if err != nil {
		return nil, err
	}

	cfg := app.config()
	st := sheet.New(sheet.Options{
		Slot:         slot,
		Source:       seed.For(app.seedLocation()),
		ShareHistory: cfg.HistoryShared(),
		Debounce:     time.Duration(cfg.PersistDebounceMs) * time.Millisecond,
		Log:          log,
	})
	return &session{dir: dir, slot: slot, sheet: st}, nil
}

// openSheet builds a session and loads it. ErrNoData is not fatal: an empty sheet can still
// be built up with add commands.
func openSheet(ctx context.Context, app *App) (*session, error) {
	sess, err := newSession(ctx, app, app.logger())
	if err != nil {
		return nil, err
	}
	if err := sess.sheet.Initialize(ctx); err != nil {
		// The detailed cause is logged by the store; users see the load state.
		sess.loadErr = sess.sheet.Err()
	}
	if sess.loadErr != nil && !errors.Is(sess.loadErr, sheet.ErrNoData) {
		_ = sess.Close()
		return nil, sess.loadErr
	}
	return sess, nil
}

// withSheet runs fn against an opened sheet and flushes pending writes afterwards.
func withSheet(cmd *cobra.Command, app *App, fn func(st *sheet.Store) error) error {
	sess, err := openSheet(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	runErr := fn(sess.sheet)
	if err := sess.Close(); err != nil && runErr == nil {
		return writeErr(cmd, err)
	}
	app.logger().Sync()
	return runErr
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

// writeErr prints err to stderr once and marks it as reported.
func writeErr(cmd *cobra.Command, err error) error {
	if err == nil || Reported(err) {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err: err}
}
