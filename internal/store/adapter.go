package store

import (
	"context"
	"encoding/json"
	"errors"

	"studysheet/internal/logger"
	"studysheet/internal/model"
)

// Adapter is the best-effort persistence layer over a Slot. Reads never fail: a missing or
// unparseable value is reported as absent and logged.
type Adapter struct {
	Slot Slot
	Log  *logger.Logger
}

// LoadTopics returns the stored Topic array. ok is false when the slot is empty, unreadable,
// unparseable or holds an empty array.
func (a Adapter) LoadTopics(ctx context.Context) (topics []model.Topic, ok bool) {
	if !a.LoadJSON(ctx, DataKey, &topics) {
		return nil, false
	}
	if len(topics) == 0 {
		return nil, false
	}
	return model.Normalize(topics), true
}

// LoadJSON decodes the value under key into v. It reports false on any failure.
func (a Adapter) LoadJSON(ctx context.Context, key string, v any) bool {
	if a.Slot == nil {
		return false
	}
	b, err := a.Slot.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrSlotEmpty) {
			a.Log.Warn("storage read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		a.Log.Warn("storage value unparseable", "key", key, "error", err)
		return false
	}
	return true
}

// SaveTopics writes the Topic array synchronously.
func (a Adapter) SaveTopics(ctx context.Context, topics []model.Topic) error {
	if a.Slot == nil {
		return nil
	}
	b, err := EncodeTopics(topics)
	if err != nil {
		return err
	}
	return a.Slot.Put(ctx, DataKey, b)
}

func EncodeTopics(topics []model.Topic) ([]byte, error) {
	return json.Marshal(model.Normalize(model.CloneTopics(topics)))
}
