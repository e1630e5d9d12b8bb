package export

import (
	"bytes"
	"fmt"
	"strings"

	"studysheet/internal/model"
	"studysheet/internal/stats"
)

// RenderMarkdown renders the tree as a checklist: one section per topic, one sub-section per
// sub-topic, one task-list line per question.
func RenderMarkdown(topics []model.Topic) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	s := stats.Compute(topics)
	writeLn("# Question sheet")
	writeLn("")
	writeLn(fmt.Sprintf("Progress: %d/%d (%d%%) · easy %d · medium %d · hard %d",
		s.CompletedQuestions, s.TotalQuestions, s.CompletionRate, s.EasyCount, s.MediumCount, s.HardCount))

	for _, t := range topics {
		p := stats.TopicProgress(t)
		writeLn("")
		writeLn(fmt.Sprintf("## %s (%d/%d)", oneLine(t.Title), p.Completed, p.Total))
		for _, st := range t.SubTopics {
			writeLn("")
			writeLn("### " + oneLine(st.Title))
			if len(st.Questions) == 0 {
				writeLn("")
				writeLn("_No questions yet._")
				continue
			}
			writeLn("")
			for _, q := range st.Questions {
				writeLn(questionLine(q))
				if notes := strings.TrimSpace(q.Notes); notes != "" {
					for _, ln := range strings.Split(notes, "\n") {
						writeLn("  > " + ln)
					}
				}
			}
		}
	}
	return buf.String()
}

func questionLine(q model.Question) string {
	box := "[ ]"
	if q.Completed {
		box = "[x]"
	}
	title := oneLine(q.Title)
	if link := strings.TrimSpace(q.Link); link != "" {
		title = "[" + title + "](" + link + ")"
	}
	meta := []string{string(q.Difficulty)}
	if p := strings.TrimSpace(q.Platform); p != "" {
		meta = append(meta, p)
	}
	if r := strings.TrimSpace(q.Resource); r != "" {
		meta = append(meta, r)
	}
	return fmt.Sprintf("- %s %s (%s)", box, title, strings.Join(meta, ", "))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
