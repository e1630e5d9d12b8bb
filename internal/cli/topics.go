package cli

import (
	"errors"

	"studysheet/internal/model"
	"studysheet/internal/sheet"
	"studysheet/internal/stats"

	"github.com/spf13/cobra"
)

type topicSummary struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Color     string         `json:"color"`
	Expanded  bool           `json:"expanded"`
	SubTopics int            `json:"subTopics"`
	Progress  stats.Progress `json:"progress"`
}

func summarizeTopic(t model.Topic) topicSummary {
	return topicSummary{
		ID:        t.ID,
		Title:     t.Title,
		Color:     t.Color,
		Expanded:  t.Expanded,
		SubTopics: len(t.SubTopics),
		Progress:  stats.TopicProgress(t),
	}
}

func newTopicsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "topics",
		Aliases: []string{"topic"},
		Short:   "Topic commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List topics with progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				topics := st.Topics()
				out := make([]topicSummary, 0, len(topics))
				for _, t := range topics {
					out = append(out, summarizeTopic(t))
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <title>",
		Short: "Append a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireTitle(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSheet(cmd, app, func(st *sheet.Store) error {
				id := st.AddTopic(title)
				if id == "" {
					return writeErr(cmd, errors.New("could not add topic"))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "title": title}})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rename <topic-id> <title>",
		Aliases: []string{"update"},
		Short:   "Rename a topic",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireTitle(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return topicMutation(cmd, app, args[0], func(st *sheet.Store, id string) bool {
				return st.UpdateTopic(id, title)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <topic-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a topic with its sub-topics and questions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return topicMutation(cmd, app, args[0], (*sheet.Store).DeleteTopic)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <topic-id> <over-topic-id>",
		Short: "Move a topic to the position of another topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				for _, id := range args {
					if _, err := locateKind(st, id, sheet.KindTopic); err != nil {
						return writeErr(cmd, err)
					}
				}
				changed := st.ReorderTopics(args[0], args[1])
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "changed": changed}})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "up <topic-id>",
		Short: "Move a topic up one position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return topicMutation(cmd, app, args[0], (*sheet.Store).MoveTopicUp)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down <topic-id>",
		Short: "Move a topic down one position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return topicMutation(cmd, app, args[0], (*sheet.Store).MoveTopicDown)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "complete <topic-id>",
		Short: "Mark every question in a topic complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return topicMutation(cmd, app, args[0], (*sheet.Store).MarkAllComplete)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <topic-id>",
		Short: "Toggle whether a topic is expanded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return topicMutation(cmd, app, args[0], (*sheet.Store).ToggleTopicExpanded)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "expand",
		Short: "Expand all topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				st.ExpandAll()
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"expanded": true}})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "collapse",
		Short: "Collapse all topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				st.CollapseAll()
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"expanded": false}})
			})
		},
	})

	return cmd
}

// topicMutation checks id names a topic, applies fn and reports whether the tree changed.
func topicMutation(cmd *cobra.Command, app *App, id string, fn func(st *sheet.Store, id string) bool) error {
	return withSheet(cmd, app, func(st *sheet.Store) error {
		loc, err := locateKind(st, id, sheet.KindTopic)
		if err != nil {
			return writeErr(cmd, err)
		}
		changed := fn(st, loc.TopicID)
		return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": loc.TopicID, "changed": changed}})
	})
}
