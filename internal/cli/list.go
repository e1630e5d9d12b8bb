package cli

import (
	"fmt"
	"io"
	"strings"

	"studysheet/internal/model"
	"studysheet/internal/sheet"
	"studysheet/internal/stats"
	"studysheet/internal/view"

	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var filter, sortMode, search string
	var tree bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the sheet with optional filter, search and sort",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := view.ParseFilter(filter)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := view.ParseSort(sortMode)
			if err != nil {
				return writeErr(cmd, err)
			}
			opts := view.Options{Filter: f, Sort: s, Search: search}
			return withSheet(cmd, app, func(st *sheet.Store) error {
				topics := view.Apply(st.Topics(), opts)
				if tree {
					return writeTree(cmd.OutOrStdout(), topics)
				}
				return writeOut(cmd, app, map[string]any{"data": topics})
			})
		},
	}

	cmd.Flags().StringVar(&filter, "filter", string(view.FilterAll), "Filter (all|easy|medium|hard|completed|incomplete)")
	cmd.Flags().StringVar(&sortMode, "sort", string(view.SortCustom), "Sort topics (custom|a-z|progress)")
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive match on question and sub-topic titles")
	cmd.Flags().BoolVar(&tree, "tree", false, "Print a plain-text checklist instead of structured output")
	return cmd
}

func writeTree(w io.Writer, topics []model.Topic) error {
	var b strings.Builder
	for _, t := range topics {
		p := stats.TopicProgress(t)
		fmt.Fprintf(&b, "%s  [%d/%d] %d%%  (%s)\n", t.Title, p.Completed, p.Total, p.Percent, t.ID)
		for _, st := range t.SubTopics {
			fmt.Fprintf(&b, "  %s  (%s)\n", st.Title, st.ID)
			for _, q := range st.Questions {
				box := "[ ]"
				if q.Completed {
					box = "[x]"
				}
				fmt.Fprintf(&b, "    %s %s  %s  (%s)\n", box, q.Title, q.Difficulty, q.ID)
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a topic, sub-topic or question by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				id := strings.TrimSpace(args[0])
				loc, ok := st.Locate(id)
				if !ok {
					return writeErr(cmd, errNotFound("node", id))
				}
				topics := st.Topics()
				var node any
				switch loc.Kind {
				case sheet.KindTopic:
					node, _ = findTopic(topics, loc.TopicID)
				case sheet.KindSubTopic:
					node, _ = findSubTopic(topics, loc)
				case sheet.KindQuestion:
					node, _ = st.Question(loc)
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"location": loc, "node": node}})
			})
		},
	}
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show completion statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				return writeOut(cmd, app, map[string]any{"data": st.Stats()})
			})
		},
	}
}
