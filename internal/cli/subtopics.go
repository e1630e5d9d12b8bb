package cli

import (
	"errors"

	"studysheet/internal/sheet"

	"github.com/spf13/cobra"
)

func newSubTopicsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "subtopics",
		Aliases: []string{"subtopic", "sub"},
		Short:   "Sub-topic commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <topic-id>",
		Short: "List the sub-topics of a topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindTopic)
				if err != nil {
					return writeErr(cmd, err)
				}
				t, _ := findTopic(st.Topics(), loc.TopicID)
				return writeOut(cmd, app, map[string]any{"data": t.SubTopics})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <topic-id> <title>",
		Short: "Append a sub-topic to a topic",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireTitle(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindTopic)
				if err != nil {
					return writeErr(cmd, err)
				}
				id := st.AddSubTopic(loc.TopicID, title)
				if id == "" {
					return writeErr(cmd, errors.New("could not add sub-topic"))
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": id, "topicId": loc.TopicID, "title": title}})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rename <sub-topic-id> <title>",
		Aliases: []string{"update"},
		Short:   "Rename a sub-topic",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := requireTitle(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			return subTopicMutation(cmd, app, args[0], func(st *sheet.Store, loc sheet.Location) bool {
				return st.UpdateSubTopic(loc.TopicID, loc.SubTopicID, title)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <sub-topic-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a sub-topic with its questions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return subTopicMutation(cmd, app, args[0], func(st *sheet.Store, loc sheet.Location) bool {
				return st.DeleteSubTopic(loc.TopicID, loc.SubTopicID)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <sub-topic-id> <over-sub-topic-id>",
		Short: "Move a sub-topic to the position of a sibling",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				active, err := locateKind(st, args[0], sheet.KindSubTopic)
				if err != nil {
					return writeErr(cmd, err)
				}
				over, err := locateKind(st, args[1], sheet.KindSubTopic)
				if err != nil {
					return writeErr(cmd, err)
				}
				if active.TopicID != over.TopicID {
					return writeErr(cmd, errors.New("sub-topics belong to different topics"))
				}
				changed := st.ReorderSubTopics(active.TopicID, active.SubTopicID, over.SubTopicID)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": active.SubTopicID, "changed": changed}})
			})
		},
	})

	return cmd
}

func subTopicMutation(cmd *cobra.Command, app *App, id string, fn func(st *sheet.Store, loc sheet.Location) bool) error {
	return withSheet(cmd, app, func(st *sheet.Store) error {
		loc, err := locateKind(st, id, sheet.KindSubTopic)
		if err != nil {
			return writeErr(cmd, err)
		}
		changed := fn(st, loc)
		return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": loc.SubTopicID, "changed": changed}})
	})
}
