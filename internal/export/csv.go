package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"studysheet/internal/model"
)

const csvHeader = "Topic,Sub-topic,Question,Difficulty,Completed,Link"

// WriteCSV writes one row per question in stored order. Every data field is quoted.
func WriteCSV(w io.Writer, topics []model.Topic) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(csvHeader + "\n"); err != nil {
		return err
	}
	var werr error
	model.Walk(topics, func(t *model.Topic, st *model.SubTopic, q *model.Question) {
		if werr != nil {
			return
		}
		fields := []string{t.Title, st.Title, q.Title, string(q.Difficulty), strconv.FormatBool(q.Completed), q.Link}
		for i, f := range fields {
			fields[i] = quote(f)
		}
		_, werr = bw.WriteString(strings.Join(fields, ",") + "\n")
	})
	if werr != nil {
		return werr
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
