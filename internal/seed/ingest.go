package seed

import (
	"encoding/json"
	"fmt"

	"studysheet/internal/model"
)

const (
	uncategorizedTopic = "Uncategorized"
	defaultSubTopic    = "General"
)

// ingestColors is the color cycle for ingested topics. It differs from model.Palette after the
// first eight entries and repeats its first twelve.
var ingestColors = []string{
	"#f97316", "#ea580c", "#fb923c", "#d97706", "#f59e0b",
	"#ef4444", "#e11d48", "#ec4899", "#f43f5e", "#c2410c",
	"#10b981", "#14b8a6", "#3b82f6", "#6366f1", "#8b5cf6",
	"#f97316", "#ea580c", "#fb923c", "#d97706", "#f59e0b",
	"#ef4444", "#e11d48", "#ec4899", "#f43f5e", "#c2410c",
	"#10b981", "#14b8a6",
}

func ingestColor(idx int) string {
	return ingestColors[idx%len(ingestColors)]
}

// RawDump is the flat question export the seed is built from.
type RawDump struct {
	Data struct {
		Questions []RawQuestion `json:"questions"`
	} `json:"data"`
}

type RawQuestion struct {
	Title      string          `json:"title"`
	Topic      string          `json:"topic"`
	SubTopic   string          `json:"subTopic"`
	Resource   string          `json:"resource"`
	QuestionID *RawQuestionRef `json:"questionId"`
}

type RawQuestionRef struct {
	Difficulty string `json:"difficulty"`
	ProblemURL string `json:"problemUrl"`
	Platform   string `json:"platform"`
}

func ParseRaw(b []byte) (*RawDump, error) {
	var raw RawDump
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse raw dump: %w", err)
	}
	return &raw, nil
}

// Ingest groups raw questions by topic then sub-topic in first-seen order. Questions without a
// topic land in "Uncategorized", which is left out of the result; missing sub-topics become
// "General". Total is the raw question count including dropped ones.
func Ingest(raw *RawDump) *Document {
	doc := &Document{Topics: []TopicSeed{}}
	if raw == nil {
		return doc
	}
	qs := raw.Data.Questions
	doc.Total = len(qs)

	type group struct {
		order []string
		subs  map[string][]QuestionSeed
	}
	var topicOrder []string
	groups := map[string]*group{}

	for _, q := range qs {
		topicName := q.Topic
		if topicName == "" {
			topicName = uncategorizedTopic
		}
		subName := q.SubTopic
		if subName == "" {
			subName = defaultSubTopic
		}
		g, ok := groups[topicName]
		if !ok {
			g = &group{subs: map[string][]QuestionSeed{}}
			groups[topicName] = g
			topicOrder = append(topicOrder, topicName)
		}
		if _, ok := g.subs[subName]; !ok {
			g.order = append(g.order, subName)
		}

		title := q.Title
		if title == "" {
			title = "Untitled"
		}
		seedQ := QuestionSeed{Title: title, Resource: q.Resource}
		var diff string
		if q.QuestionID != nil {
			diff = q.QuestionID.Difficulty
			seedQ.Link = q.QuestionID.ProblemURL
			seedQ.Platform = q.QuestionID.Platform
		}
		seedQ.Difficulty = string(model.ParseDifficulty(diff))
		g.subs[subName] = append(g.subs[subName], seedQ)
	}

	for _, name := range topicOrder {
		if name == uncategorizedTopic {
			continue
		}
		g := groups[name]
		ts := TopicSeed{
			Title:     name,
			Color:     ingestColor(len(doc.Topics)),
			SubTopics: make([]SubTopicSeed, 0, len(g.order)),
		}
		for _, sub := range g.order {
			ts.SubTopics = append(ts.SubTopics, SubTopicSeed{Title: sub, Questions: g.subs[sub]})
		}
		doc.Topics = append(doc.Topics, ts)
	}
	return doc
}
