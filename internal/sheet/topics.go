package sheet

import (
	"strings"

	"studysheet/internal/model"
	"studysheet/internal/store"
)

// AddTopic appends an expanded topic colored by its position and returns its id ("" when
// ignored).
func (s *Store) AddTopic(title string) string {
	var id string
	s.apply("Add topic", func(cur []model.Topic) ([]model.Topic, bool) {
		nid, err := s.ids.NewID(store.TopicPrefix, cur)
		if err != nil {
			s.log.Warn("allocate topic id failed", "error", err)
			return nil, false
		}
		id = nid
		out := make([]model.Topic, len(cur), len(cur)+1)
		copy(out, cur)
		return append(out, model.Topic{
			ID:        nid,
			Title:     title,
			Color:     model.PaletteColor(len(cur)),
			SubTopics: []model.SubTopic{},
			Expanded:  true,
		}), true
	})
	return id
}

func (s *Store) UpdateTopic(id, title string) bool {
	return s.apply("Update topic", func(cur []model.Topic) ([]model.Topic, bool) {
		return withTopic(cur, id, func(t model.Topic) (model.Topic, bool) {
			t.Title = strings.TrimSpace(title)
			return t, true
		})
	})
}

// DeleteTopic removes the topic with every sub-topic and question under it.
func (s *Store) DeleteTopic(id string) bool {
	return s.apply("Delete topic", func(cur []model.Topic) ([]model.Topic, bool) {
		i := topicIndex(cur, id)
		if i < 0 {
			return nil, false
		}
		out := make([]model.Topic, 0, len(cur)-1)
		out = append(out, cur[:i]...)
		return append(out, cur[i+1:]...), true
	})
}

func (s *Store) ReorderTopics(activeID, overID string) bool {
	return s.apply("Reorder topics", func(cur []model.Topic) ([]model.Topic, bool) {
		return reorder(cur, func(t model.Topic) string { return t.ID }, activeID, overID)
	})
}

func (s *Store) MoveTopicUp(id string) bool {
	return s.apply("Move topic up", func(cur []model.Topic) ([]model.Topic, bool) {
		i := topicIndex(cur, id)
		if i <= 0 {
			return nil, false
		}
		return move(cur, i, i-1), true
	})
}

func (s *Store) MoveTopicDown(id string) bool {
	return s.apply("Move topic down", func(cur []model.Topic) ([]model.Topic, bool) {
		i := topicIndex(cur, id)
		if i < 0 || i >= len(cur)-1 {
			return nil, false
		}
		return move(cur, i, i+1), true
	})
}

// MarkAllComplete completes every question under the topic.
func (s *Store) MarkAllComplete(topicID string) bool {
	return s.apply("Mark all complete", func(cur []model.Topic) ([]model.Topic, bool) {
		return withTopic(cur, topicID, func(t model.Topic) (model.Topic, bool) {
			subs := make([]model.SubTopic, len(t.SubTopics))
			for i, st := range t.SubTopics {
				qs := make([]model.Question, len(st.Questions))
				for k, q := range st.Questions {
					q.Completed = true
					qs[k] = q
				}
				st.Questions = qs
				subs[i] = st
			}
			t.SubTopics = subs
			return t, true
		})
	})
}

func (s *Store) ToggleTopicExpanded(id string) bool {
	return s.apply("", func(cur []model.Topic) ([]model.Topic, bool) {
		return withTopic(cur, id, func(t model.Topic) (model.Topic, bool) {
			t.Expanded = !t.Expanded
			return t, true
		})
	})
}

func (s *Store) ExpandAll() {
	s.setExpanded(true)
}

func (s *Store) CollapseAll() {
	s.setExpanded(false)
}

func (s *Store) setExpanded(v bool) {
	s.apply("", func(cur []model.Topic) ([]model.Topic, bool) {
		out := cloneSlice(cur)
		for i := range out {
			out[i].Expanded = v
		}
		return out, true
	})
}
