package cli

import (
	"fmt"
	"os"

	"studysheet/internal/format"
	"studysheet/internal/seed"

	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed document tools",
	}

	var out string
	ingest := &cobra.Command{
		Use:   "ingest <dump.json>",
		Short: "Group a raw question dump into a seed document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			raw, err := seed.ParseRaw(b)
			if err != nil {
				return writeErr(cmd, err)
			}
			doc := seed.Ingest(raw)
			if out == "" {
				return writeOut(cmd, app, map[string]any{"data": doc})
			}
			f, err := os.Create(out)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := format.WriteJSON(f, doc, true); err != nil {
				_ = f.Close()
				return writeErr(cmd, err)
			}
			if err := f.Close(); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"written": out,
				"topics":  len(doc.Topics),
				"total":   doc.Total,
			}})
		},
	}
	ingest.Flags().StringVarP(&out, "out", "o", "", "Write the seed document to a file")
	cmd.AddCommand(ingest)

	cmd.AddCommand(&cobra.Command{
		Use:   "validate <seed.(json|yaml)>",
		Short: "Validate a seed document against the schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := seed.FileSource{Path: args[0]}.Fetch(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			questions := 0
			for _, t := range doc.Topics {
				for _, st := range t.SubTopics {
					questions += len(st.Questions)
				}
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"valid":     true,
				"topics":    len(doc.Topics),
				"questions": questions,
			}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the seed document JSON schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), string(seed.Schema()))
			return err
		},
	})

	return cmd
}
