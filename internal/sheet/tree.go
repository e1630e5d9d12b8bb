package sheet

import "studysheet/internal/model"

// The helpers below copy only the path from the root to the changed node; untouched
// siblings are shared with the previous tree.

func topicIndex(topics []model.Topic, id string) int {
	for i := range topics {
		if topics[i].ID == id {
			return i
		}
	}
	return -1
}

func subTopicIndex(subs []model.SubTopic, id string) int {
	for i := range subs {
		if subs[i].ID == id {
			return i
		}
	}
	return -1
}

func questionIndex(qs []model.Question, id string) int {
	for i := range qs {
		if qs[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneSlice[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func withTopic(topics []model.Topic, id string, fn func(t model.Topic) (model.Topic, bool)) ([]model.Topic, bool) {
	i := topicIndex(topics, id)
	if i < 0 {
		return nil, false
	}
	t, ok := fn(topics[i])
	if !ok {
		return nil, false
	}
	out := cloneSlice(topics)
	out[i] = t
	return out, true
}

func withSubTopic(topics []model.Topic, topicID, subTopicID string, fn func(st model.SubTopic) (model.SubTopic, bool)) ([]model.Topic, bool) {
	return withTopic(topics, topicID, func(t model.Topic) (model.Topic, bool) {
		j := subTopicIndex(t.SubTopics, subTopicID)
		if j < 0 {
			return t, false
		}
		st, ok := fn(t.SubTopics[j])
		if !ok {
			return t, false
		}
		t.SubTopics = cloneSlice(t.SubTopics)
		t.SubTopics[j] = st
		return t, true
	})
}

func withQuestion(topics []model.Topic, topicID, subTopicID, questionID string, fn func(q model.Question) model.Question) ([]model.Topic, bool) {
	return withSubTopic(topics, topicID, subTopicID, func(st model.SubTopic) (model.SubTopic, bool) {
		k := questionIndex(st.Questions, questionID)
		if k < 0 {
			return st, false
		}
		st.Questions = cloneSlice(st.Questions)
		st.Questions[k] = fn(st.Questions[k])
		return st, true
	})
}

// move relocates items[from] to index to, shifting the elements in between.
func move[T any](items []T, from, to int) []T {
	rest := make([]T, 0, len(items)-1)
	rest = append(rest, items[:from]...)
	rest = append(rest, items[from+1:]...)

	out := make([]T, 0, len(items))
	out = append(out, rest[:to]...)
	out = append(out, items[from])
	out = append(out, rest[to:]...)
	return out
}

// reorder moves the element with id active to the position held by over.
func reorder[T any](items []T, idOf func(T) string, active, over string) ([]T, bool) {
	if active == over {
		return nil, false
	}
	from, to := -1, -1
	for i, it := range items {
		switch idOf(it) {
		case active:
			from = i
		case over:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return nil, false
	}
	return move(items, from, to), true
}
