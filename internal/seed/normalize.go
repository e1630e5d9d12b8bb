package seed

import (
	"strings"

	"studysheet/internal/model"
	"studysheet/internal/store"
)

// Normalize turns a seed document into a live tree: fresh ids on every node, completed=false,
// empty notes, palette colors for topics without one, collapsed topics, "Untitled" for
// questions without a title and normalized difficulties.
func Normalize(doc *Document, ids store.IDGenerator) ([]model.Topic, error) {
	if doc == nil {
		return []model.Topic{}, nil
	}
	if ids == nil {
		ids = store.RandomIDs{}
	}

	out := make([]model.Topic, 0, len(doc.Topics))
	// taken tracks every id assigned so far so generators can check collisions.
	taken := []model.Topic{}
	newID := func(prefix string) (string, error) {
		id, err := ids.NewID(prefix, taken)
		if err != nil {
			return "", err
		}
		taken = append(taken, model.Topic{ID: id})
		return id, nil
	}

	for tIdx, ts := range doc.Topics {
		tid, err := newID(store.TopicPrefix)
		if err != nil {
			return nil, err
		}
		color := strings.TrimSpace(ts.Color)
		if color == "" {
			color = model.PaletteColor(tIdx)
		}
		t := model.Topic{
			ID:        tid,
			Title:     ts.Title,
			Color:     color,
			SubTopics: make([]model.SubTopic, 0, len(ts.SubTopics)),
		}
		for _, sts := range ts.SubTopics {
			sid, err := newID(store.SubTopicPrefix)
			if err != nil {
				return nil, err
			}
			st := model.SubTopic{
				ID:        sid,
				Title:     sts.Title,
				Questions: make([]model.Question, 0, len(sts.Questions)),
			}
			for _, qs := range sts.Questions {
				qid, err := newID(store.QuestionPrefix)
				if err != nil {
					return nil, err
				}
				title := qs.Title
				if title == "" {
					title = "Untitled"
				}
				st.Questions = append(st.Questions, model.Question{
					ID:         qid,
					Title:      title,
					Difficulty: model.ParseDifficulty(qs.Difficulty),
					Link:       qs.Link,
					Resource:   qs.Resource,
					Platform:   qs.Platform,
				})
			}
			t.SubTopics = append(t.SubTopics, st)
		}
		out = append(out, t)
	}
	return out, nil
}
