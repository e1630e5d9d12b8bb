package cli

import (
	"strings"

	"studysheet/internal/model"
	"studysheet/internal/sheet"
)

var kindLabels = map[sheet.Kind]string{
	sheet.KindTopic:    "topic",
	sheet.KindSubTopic: "sub-topic",
	sheet.KindQuestion: "question",
}

// locateKind resolves id and checks it names a node of kind want.
func locateKind(st *sheet.Store, id string, want sheet.Kind) (sheet.Location, error) {
	id = strings.TrimSpace(id)
	loc, ok := st.Locate(id)
	if !ok {
		return sheet.Location{}, errNotFound(kindLabels[want], id)
	}
	if loc.Kind != want {
		return sheet.Location{}, kindMismatchError{want: kindLabels[want], got: kindLabels[loc.Kind], id: id}
	}
	return loc, nil
}

func findTopic(topics []model.Topic, id string) (model.Topic, bool) {
	for _, t := range topics {
		if t.ID == id {
			return t, true
		}
	}
	return model.Topic{}, false
}

func findSubTopic(topics []model.Topic, loc sheet.Location) (model.SubTopic, bool) {
	t, ok := findTopic(topics, loc.TopicID)
	if !ok {
		return model.SubTopic{}, false
	}
	for _, st := range t.SubTopics {
		if st.ID == loc.SubTopicID {
			return st, true
		}
	}
	return model.SubTopic{}, false
}
