package sheet

import (
	"strings"

	"studysheet/internal/model"
	"studysheet/internal/store"
)

// AddSubTopic appends an empty sub-topic and returns its id ("" when the topic is missing).
func (s *Store) AddSubTopic(topicID, title string) string {
	var id string
	s.apply("Add sub-topic", func(cur []model.Topic) ([]model.Topic, bool) {
		if topicIndex(cur, topicID) < 0 {
			return nil, false
		}
		nid, err := s.ids.NewID(store.SubTopicPrefix, cur)
		if err != nil {
			s.log.Warn("allocate sub-topic id failed", "error", err)
			return nil, false
		}
		next, ok := withTopic(cur, topicID, func(t model.Topic) (model.Topic, bool) {
			subs := make([]model.SubTopic, len(t.SubTopics), len(t.SubTopics)+1)
			copy(subs, t.SubTopics)
			t.SubTopics = append(subs, model.SubTopic{ID: nid, Title: title, Questions: []model.Question{}})
			return t, true
		})
		if ok {
			id = nid
		}
		return next, ok
	})
	return id
}

func (s *Store) UpdateSubTopic(topicID, subTopicID, title string) bool {
	return s.apply("Update sub-topic", func(cur []model.Topic) ([]model.Topic, bool) {
		return withSubTopic(cur, topicID, subTopicID, func(st model.SubTopic) (model.SubTopic, bool) {
			st.Title = strings.TrimSpace(title)
			return st, true
		})
	})
}

// DeleteSubTopic removes the sub-topic with its questions.
func (s *Store) DeleteSubTopic(topicID, subTopicID string) bool {
	return s.apply("Delete sub-topic", func(cur []model.Topic) ([]model.Topic, bool) {
		return withTopic(cur, topicID, func(t model.Topic) (model.Topic, bool) {
			j := subTopicIndex(t.SubTopics, subTopicID)
			if j < 0 {
				return t, false
			}
			subs := make([]model.SubTopic, 0, len(t.SubTopics)-1)
			subs = append(subs, t.SubTopics[:j]...)
			t.SubTopics = append(subs, t.SubTopics[j+1:]...)
			return t, true
		})
	})
}

func (s *Store) ReorderSubTopics(topicID, activeID, overID string) bool {
	return s.apply("Reorder sub-topics", func(cur []model.Topic) ([]model.Topic, bool) {
		return withTopic(cur, topicID, func(t model.Topic) (model.Topic, bool) {
			subs, ok := reorder(t.SubTopics, func(st model.SubTopic) string { return st.ID }, activeID, overID)
			if !ok {
				return t, false
			}
			t.SubTopics = subs
			return t, true
		})
	})
}
