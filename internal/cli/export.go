package cli

import (
	"studysheet/internal/export"
	"studysheet/internal/model"
	"studysheet/internal/sheet"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var kind, out, topicID string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the sheet as JSON, CSV, XLSX or Markdown",
		Long: `Export the sheet.

The format comes from --type, else from the --out extension, else json.
Without --out the file is written to question-sheet.<ext> in the working directory.
Use --out - to write to stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := resolveExportFormat(kind, out)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSheet(cmd, app, func(st *sheet.Store) error {
				topics := st.Topics()
				if topicID != "" {
					loc, err := locateKind(st, topicID, sheet.KindTopic)
					if err != nil {
						return writeErr(cmd, err)
					}
					t, _ := findTopic(topics, loc.TopicID)
					topics = []model.Topic{t}
				}
				topics = model.Normalize(topics)

				if out == "-" {
					return export.Write(cmd.OutOrStdout(), topics, f)
				}
				path := out
				if path == "" {
					path = export.DefaultFileName(f)
				}
				res, err := export.WriteFile(path, topics, export.WriteOptions{Format: f, Overwrite: overwrite})
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}

	cmd.Flags().StringVar(&kind, "type", "", "Export format (json|csv|xlsx|md)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (- for stdout)")
	cmd.Flags().StringVar(&topicID, "topic", "", "Export a single topic")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite an existing file")
	return cmd
}

func resolveExportFormat(kind, out string) (export.Format, error) {
	if kind != "" {
		return export.ParseFormat(kind)
	}
	if out != "" && out != "-" {
		if f, ok := export.FormatFromPath(out); ok {
			return f, nil
		}
	}
	return export.FormatJSON, nil
}
