package sheet

import "studysheet/internal/model"

type Kind string

const (
	KindTopic    Kind = "topic"
	KindSubTopic Kind = "subTopic"
	KindQuestion Kind = "question"
)

// Location is the path of ids to a node.
type Location struct {
	Kind       Kind   `json:"kind"`
	TopicID    string `json:"topicId"`
	SubTopicID string `json:"subTopicId,omitempty"`
	QuestionID string `json:"questionId,omitempty"`
}

// Locate resolves an id of any kind to its path.
func (s *Store) Locate(id string) (Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return locate(s.topics, id)
}

func locate(topics []model.Topic, id string) (Location, bool) {
	if id == "" {
		return Location{}, false
	}
	for _, t := range topics {
		if t.ID == id {
			return Location{Kind: KindTopic, TopicID: t.ID}, true
		}
		for _, st := range t.SubTopics {
			if st.ID == id {
				return Location{Kind: KindSubTopic, TopicID: t.ID, SubTopicID: st.ID}, true
			}
			for _, q := range st.Questions {
				if q.ID == id {
					return Location{Kind: KindQuestion, TopicID: t.ID, SubTopicID: st.ID, QuestionID: q.ID}, true
				}
			}
		}
	}
	return Location{}, false
}

// Question returns a copy of the question at loc.
func (s *Store) Question(loc Location) (model.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ti := topicIndex(s.topics, loc.TopicID)
	if ti < 0 {
		return model.Question{}, false
	}
	sj := subTopicIndex(s.topics[ti].SubTopics, loc.SubTopicID)
	if sj < 0 {
		return model.Question{}, false
	}
	qs := s.topics[ti].SubTopics[sj].Questions
	k := questionIndex(qs, loc.QuestionID)
	if k < 0 {
		return model.Question{}, false
	}
	return qs[k], true
}
