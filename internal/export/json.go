package export

import (
	"encoding/json"
	"io"

	"studysheet/internal/model"
)

// WriteJSON writes the full Topic array, pretty-printed with two-space indentation.
func WriteJSON(w io.Writer, topics []model.Topic) error {
	b, err := json.MarshalIndent(model.Normalize(model.CloneTopics(topics)), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
