package export

import (
	"io"

	"github.com/xuri/excelize/v2"

	"studysheet/internal/model"
	"studysheet/internal/stats"
)

const (
	questionsSheet = "Questions"
	summarySheet   = "Summary"
)

var xlsxHeader = []interface{}{"Topic", "Sub-topic", "Question", "Difficulty", "Completed", "Link", "Resource", "Platform", "Notes"}

// WriteXLSX writes a workbook with a Questions sheet (one row per question) and a Summary
// sheet with overall and per-topic progress.
func WriteXLSX(w io.Writer, topics []model.Topic) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", questionsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(questionsSheet, "A1", &xlsxHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(questionsSheet, "A1", "I1", bold); err != nil {
		return err
	}
	row := 2
	var werr error
	model.Walk(topics, func(t *model.Topic, st *model.SubTopic, q *model.Question) {
		if werr != nil {
			return
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			werr = err
			return
		}
		vals := []interface{}{t.Title, st.Title, q.Title, string(q.Difficulty), q.Completed, q.Link, q.Resource, q.Platform, q.Notes}
		werr = f.SetSheetRow(questionsSheet, cell, &vals)
		row++
	})
	if werr != nil {
		return werr
	}
	if err := f.SetColWidth(questionsSheet, "A", "C", 28); err != nil {
		return err
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	s := stats.Compute(topics)
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Topics", s.TotalTopics},
		{"Sub-topics", s.TotalSubTopics},
		{"Questions", s.TotalQuestions},
		{"Completed", s.CompletedQuestions},
		{"Completion %", s.CompletionRate},
		{"Easy", s.EasyCount},
		{"Medium", s.MediumCount},
		{"Hard", s.HardCount},
		{},
		{"Topic", "Completed", "Total", "Progress %"},
	}
	for _, t := range topics {
		p := stats.TopicProgress(t)
		summary = append(summary, []interface{}{t.Title, p.Completed, p.Total, p.Percent})
	}
	for i, vals := range summary {
		if len(vals) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		vals := vals
		if err := f.SetSheetRow(summarySheet, cell, &vals); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}

	return f.Write(w)
}
