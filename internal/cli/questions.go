package cli

import (
	"errors"
	"fmt"

	"studysheet/internal/model"
	"studysheet/internal/sheet"
	"studysheet/internal/tui"

	"github.com/spf13/cobra"
)

// questionFlags binds the editable question fields. Only flags the user set end up in the
// patch.
type questionFlags struct {
	title      string
	difficulty string
	link       string
	resource   string
	platform   string
	notes      string
	completed  bool
}

func (f *questionFlags) register(cmd *cobra.Command, withCompleted bool) {
	cmd.Flags().StringVar(&f.title, "title", "", "Question title")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "Difficulty (easy|medium|hard)")
	cmd.Flags().StringVar(&f.link, "link", "", "Problem link")
	cmd.Flags().StringVar(&f.resource, "resource", "", "Resource link (article, video)")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Platform name")
	cmd.Flags().StringVar(&f.notes, "notes", "", "Notes (markdown)")
	if withCompleted {
		cmd.Flags().BoolVar(&f.completed, "completed", false, "Completed state")
	}
}

func (f *questionFlags) patch(cmd *cobra.Command) (model.QuestionPatch, error) {
	var p model.QuestionPatch
	changed := cmd.Flags().Changed
	if changed("title") {
		title, err := requireTitle(f.title)
		if err != nil {
			return p, err
		}
		p.Title = model.StrPtr(title)
	}
	if changed("difficulty") {
		p.Difficulty = model.StrPtr(f.difficulty)
	}
	if changed("link") {
		p.Link = model.StrPtr(f.link)
	}
	if changed("resource") {
		p.Resource = model.StrPtr(f.resource)
	}
	if changed("platform") {
		p.Platform = model.StrPtr(f.platform)
	}
	if changed("notes") {
		p.Notes = model.StrPtr(f.notes)
	}
	if cmd.Flags().Lookup("completed") != nil && changed("completed") {
		p.Completed = model.BoolPtr(f.completed)
	}
	return p, nil
}

func newQuestionsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "questions",
		Aliases: []string{"question", "q"},
		Short:   "Question commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <sub-topic-id>",
		Short: "List the questions of a sub-topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindSubTopic)
				if err != nil {
					return writeErr(cmd, err)
				}
				sub, _ := findSubTopic(st.Topics(), loc)
				return writeOut(cmd, app, map[string]any{"data": sub.Questions})
			})
		},
	})

	cmd.AddCommand(newQuestionAddCmd(app))
	cmd.AddCommand(newQuestionUpdateCmd(app))
	cmd.AddCommand(newQuestionShowCmd(app))

	cmd.AddCommand(&cobra.Command{
		Use:     "delete <question-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a question",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindQuestion)
				if err != nil {
					return writeErr(cmd, err)
				}
				changed := st.DeleteQuestion(loc.TopicID, loc.SubTopicID, loc.QuestionID)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": loc.QuestionID, "changed": changed}})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "toggle <question-id>",
		Aliases: []string{"done"},
		Short:   "Flip a question's completed state (not recorded in undo history)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindQuestion)
				if err != nil {
					return writeErr(cmd, err)
				}
				completed := st.ToggleQuestion(loc.TopicID, loc.SubTopicID, loc.QuestionID)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": loc.QuestionID, "completed": completed}})
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reorder <question-id> <over-question-id>",
		Short: "Move a question to the position of a sibling",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				active, err := locateKind(st, args[0], sheet.KindQuestion)
				if err != nil {
					return writeErr(cmd, err)
				}
				over, err := locateKind(st, args[1], sheet.KindQuestion)
				if err != nil {
					return writeErr(cmd, err)
				}
				if active.TopicID != over.TopicID || active.SubTopicID != over.SubTopicID {
					return writeErr(cmd, errors.New("questions belong to different sub-topics"))
				}
				changed := st.ReorderQuestions(active.TopicID, active.SubTopicID, active.QuestionID, over.QuestionID)
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": active.QuestionID, "changed": changed}})
			})
		},
	})

	return cmd
}

func newQuestionAddCmd(app *App) *cobra.Command {
	var f questionFlags
	cmd := &cobra.Command{
		Use:   "add <sub-topic-id>",
		Short: "Append a question to a sub-topic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.patch(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindSubTopic)
				if err != nil {
					return writeErr(cmd, err)
				}
				id := st.AddQuestion(loc.TopicID, loc.SubTopicID, p)
				if id == "" {
					return writeErr(cmd, errors.New("could not add question"))
				}
				q, _ := st.Question(sheet.Location{Kind: sheet.KindQuestion, TopicID: loc.TopicID, SubTopicID: loc.SubTopicID, QuestionID: id})
				return writeOut(cmd, app, map[string]any{"data": q})
			})
		},
	}
	f.register(cmd, false)
	return cmd
}

func newQuestionUpdateCmd(app *App) *cobra.Command {
	var f questionFlags
	cmd := &cobra.Command{
		Use:   "update <question-id>",
		Short: "Update question fields (not recorded in undo history)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := f.patch(cmd)
			if err != nil {
				return writeErr(cmd, err)
			}
			if p.IsEmpty() {
				return writeErr(cmd, errors.New("nothing to update (pass at least one field flag)"))
			}
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindQuestion)
				if err != nil {
					return writeErr(cmd, err)
				}
				st.UpdateQuestion(loc.TopicID, loc.SubTopicID, loc.QuestionID, p)
				q, _ := st.Question(loc)
				return writeOut(cmd, app, map[string]any{"data": q})
			})
		},
	}
	f.register(cmd, true)
	return cmd
}

func newQuestionShowCmd(app *App) *cobra.Command {
	var render bool
	var width int
	cmd := &cobra.Command{
		Use:   "show <question-id>",
		Short: "Show a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSheet(cmd, app, func(st *sheet.Store) error {
				loc, err := locateKind(st, args[0], sheet.KindQuestion)
				if err != nil {
					return writeErr(cmd, err)
				}
				q, _ := st.Question(loc)
				if render {
					_, err := fmt.Fprintln(cmd.OutOrStdout(), tui.RenderMarkdown(questionMarkdown(q), width))
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": map[string]any{"question": q, "location": loc}})
			})
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "Render the question and its notes as terminal markdown")
	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for --render")
	return cmd
}

func questionMarkdown(q model.Question) string {
	box := "[ ]"
	if q.Completed {
		box = "[x]"
	}
	s := fmt.Sprintf("# %s %s\n\n**Difficulty:** %s", box, q.Title, q.Difficulty)
	if q.Platform != "" {
		s += fmt.Sprintf("  \n**Platform:** %s", q.Platform)
	}
	if q.Link != "" {
		s += fmt.Sprintf("  \n**Link:** %s", q.Link)
	}
	if q.Resource != "" {
		s += fmt.Sprintf("  \n**Resource:** %s", q.Resource)
	}
	if q.Notes != "" {
		s += "\n\n## Notes\n\n" + q.Notes
	}
	return s + "\n"
}
