package cli

import (
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"studysheet/internal/server"

	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, dump string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a raw question dump as a seed document over HTTP",
		Long: strings.TrimSpace(`
Serve GET /api/sheet from a raw question dump.

The dump is re-read on every request and grouped into topics and sub-topics.
Point --seed (or the seed config) at http://<addr>/api/sheet to load it.
`),
		Example: strings.TrimSpace(`
studysheet serve --dump ./questions.json --addr 127.0.0.1:3333
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(dump) == "" {
				return writeErr(cmd, errors.New("serve: missing --dump"))
			}
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				return writeErr(cmd, errors.New("serve: missing --addr"))
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}
			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/api/sheet"

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"dump":      dump,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
			})
			fmt.Fprintf(cmd.ErrOrStderr(), "studysheet seed server running at %s\n", url)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := app.logger()
			defer log.Sync()
			srv := server.New(server.Config{DumpPath: dump, Log: log})
			return srv.Serve(ctx, ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3333", "Bind address (host:port or :port)")
	cmd.Flags().StringVar(&dump, "dump", envOr("STUDYSHEET_DUMP", ""), "Raw question dump (JSON)")
	return cmd
}
