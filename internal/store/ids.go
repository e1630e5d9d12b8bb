package store

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"

	"studysheet/internal/model"
)

const (
	TopicPrefix    = "top"
	SubTopicPrefix = "sub"
	QuestionPrefix = "q"
)

// IDGenerator produces fresh node ids. Implementations must never return an id that is
// already present in the tree they are given.
type IDGenerator interface {
	NewID(prefix string, existing []model.Topic) (string, error)
}

// RandomIDs is the default generator: prefix-<8 base32 chars>, retried on collision.
type RandomIDs struct{}

func (RandomIDs) NewID(prefix string, existing []model.Topic) (string, error) {
	for i := 0; i < 16; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			return "", err
		}
		if !IDExists(existing, id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate unique %s id", prefix)
}

// newRandomID returns prefix-<suffix> where suffix is 8 chars of base32 (lowercase, no padding).
func newRandomID(prefix string) (string, error) {
	var b [5]byte // 40 bits -> 8 base32 chars
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	enc := base32.StdEncoding.WithPadding(base32.NoPadding)
	suffix := strings.ToLower(enc.EncodeToString(b[:]))
	return prefix + "-" + suffix, nil
}

func IDExists(topics []model.Topic, id string) bool {
	for _, t := range topics {
		if t.ID == id {
			return true
		}
		for _, st := range t.SubTopics {
			if st.ID == id {
				return true
			}
			for _, q := range st.Questions {
				if q.ID == id {
					return true
				}
			}
		}
	}
	return false
}

// SequentialIDs yields prefix-1, prefix-2, ... and is meant for deterministic tests.
type SequentialIDs struct {
	n int
}

func (s *SequentialIDs) NewID(prefix string, existing []model.Topic) (string, error) {
	for {
		s.n++
		id := fmt.Sprintf("%s-%d", prefix, s.n)
		if !IDExists(existing, id) {
			return id, nil
		}
	}
}
