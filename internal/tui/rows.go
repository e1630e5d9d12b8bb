package tui

import (
	"fmt"
	"strings"

	xansi "github.com/charmbracelet/x/ansi"

	"studysheet/internal/model"
	"studysheet/internal/sheet"
	"studysheet/internal/stats"
)

// row is one visible line of the checklist.
type row struct {
	loc      sheet.Location
	topic    model.Topic
	subTopic model.SubTopic
	question model.Question
}

func (r row) id() string {
	switch r.loc.Kind {
	case sheet.KindQuestion:
		return r.loc.QuestionID
	case sheet.KindSubTopic:
		return r.loc.SubTopicID
	default:
		return r.loc.TopicID
	}
}

// flattenRows lists the visible rows. Children of collapsed topics are hidden unless
// forceOpen is set (an active filter or search shows every match).
func flattenRows(topics []model.Topic, forceOpen bool) []row {
	var rows []row
	for _, t := range topics {
		rows = append(rows, row{loc: sheet.Location{Kind: sheet.KindTopic, TopicID: t.ID}, topic: t})
		if !t.Expanded && !forceOpen {
			continue
		}
		for _, st := range t.SubTopics {
			rows = append(rows, row{
				loc:      sheet.Location{Kind: sheet.KindSubTopic, TopicID: t.ID, SubTopicID: st.ID},
				topic:    t,
				subTopic: st,
			})
			for _, q := range st.Questions {
				rows = append(rows, row{
					loc:      sheet.Location{Kind: sheet.KindQuestion, TopicID: t.ID, SubTopicID: st.ID, QuestionID: q.ID},
					topic:    t,
					subTopic: st,
					question: q,
				})
			}
		}
	}
	return rows
}

func renderRow(r row, width int, selected, forceOpen bool) string {
	var line string
	switch r.loc.Kind {
	case sheet.KindTopic:
		arrow := "▸"
		if r.topic.Expanded || forceOpen {
			arrow = "▾"
		}
		p := stats.TopicProgress(r.topic)
		meta := styleMuted().Render(fmt.Sprintf("%d/%d  %d%%", p.Completed, p.Total, p.Percent))
		line = fmt.Sprintf("%s %s %s  %s", arrow, topicSwatch(r.topic.Color), styleTitle().Render(r.topic.Title), meta)
	case sheet.KindSubTopic:
		p := stats.SubTopicProgress(r.subTopic)
		meta := styleMuted().Render(fmt.Sprintf("%d/%d", p.Completed, p.Total))
		line = fmt.Sprintf("    %s  %s", r.subTopic.Title, meta)
	case sheet.KindQuestion:
		q := r.question
		box := "[ ]"
		title := q.Title
		if q.Completed {
			box = styleSuccess().Render("[x]")
			title = styleMuted().Render(title)
		}
		var extras []string
		extras = append(extras, difficultyStyle(q.Difficulty).Render(string(q.Difficulty)))
		if q.Platform != "" {
			extras = append(extras, styleMuted().Render(q.Platform))
		}
		if strings.TrimSpace(q.Notes) != "" {
			extras = append(extras, styleAccent().Render("✎"))
		}
		line = fmt.Sprintf("      %s %s  %s", box, title, strings.Join(extras, " "))
	}

	if width > 0 {
		line = xansi.Truncate(line, width, "…")
	}
	if selected {
		pad := width - xansi.StringWidth(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return styleSelected().Render(xansi.Strip(line))
	}
	return line
}
