package sheet

import (
	"studysheet/internal/model"
	"studysheet/internal/store"
)

const defaultQuestionTitle = "New Question"

// AddQuestion appends a question built from the patch and returns its id ("" when the parent
// is missing). Unset fields take their defaults; completed starts false unless the patch says
// otherwise.
func (s *Store) AddQuestion(topicID, subTopicID string, p model.QuestionPatch) string {
	var id string
	s.apply("Add question", func(cur []model.Topic) ([]model.Topic, bool) {
		ti := topicIndex(cur, topicID)
		if ti < 0 || subTopicIndex(cur[ti].SubTopics, subTopicID) < 0 {
			return nil, false
		}
		nid, err := s.ids.NewID(store.QuestionPrefix, cur)
		if err != nil {
			s.log.Warn("allocate question id failed", "error", err)
			return nil, false
		}
		q := p.Apply(model.Question{ID: nid, Difficulty: model.DifficultyMedium})
		if q.Title == "" {
			q.Title = defaultQuestionTitle
		}
		next, ok := withSubTopic(cur, topicID, subTopicID, func(st model.SubTopic) (model.SubTopic, bool) {
			qs := make([]model.Question, len(st.Questions), len(st.Questions)+1)
			copy(qs, st.Questions)
			st.Questions = append(qs, q)
			return st, true
		})
		if ok {
			id = nid
		}
		return next, ok
	})
	return id
}

// UpdateQuestion merges the patch into the question. Field edits are not recorded in the
// undo history.
func (s *Store) UpdateQuestion(topicID, subTopicID, questionID string, p model.QuestionPatch) bool {
	if p.IsEmpty() {
		return false
	}
	return s.apply("", func(cur []model.Topic) ([]model.Topic, bool) {
		return withQuestion(cur, topicID, subTopicID, questionID, p.Apply)
	})
}

func (s *Store) DeleteQuestion(topicID, subTopicID, questionID string) bool {
	return s.apply("Delete question", func(cur []model.Topic) ([]model.Topic, bool) {
		return withSubTopic(cur, topicID, subTopicID, func(st model.SubTopic) (model.SubTopic, bool) {
			k := questionIndex(st.Questions, questionID)
			if k < 0 {
				return st, false
			}
			qs := make([]model.Question, 0, len(st.Questions)-1)
			qs = append(qs, st.Questions[:k]...)
			st.Questions = append(qs, st.Questions[k+1:]...)
			return st, true
		})
	})
}

// ToggleQuestion flips completion and returns the new value (false when not found).
// Toggles are not recorded in the undo history.
func (s *Store) ToggleQuestion(topicID, subTopicID, questionID string) bool {
	var completed bool
	s.apply("", func(cur []model.Topic) ([]model.Topic, bool) {
		return withQuestion(cur, topicID, subTopicID, questionID, func(q model.Question) model.Question {
			q.Completed = !q.Completed
			completed = q.Completed
			return q
		})
	})
	return completed
}

func (s *Store) ReorderQuestions(topicID, subTopicID, activeID, overID string) bool {
	return s.apply("Reorder questions", func(cur []model.Topic) ([]model.Topic, bool) {
		return withSubTopic(cur, topicID, subTopicID, func(st model.SubTopic) (model.SubTopic, bool) {
			qs, ok := reorder(st.Questions, func(q model.Question) string { return q.ID }, activeID, overID)
			if !ok {
				return st, false
			}
			st.Questions = qs
			return st, true
		})
	})
}
