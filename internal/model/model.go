package model

import "strings"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes free-form difficulty labels.
// "easy"/"basic" => easy, "hard" => hard, anything else (including "") => medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "basic":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

type Question struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Difficulty Difficulty `json:"difficulty"`
	Link       string     `json:"link"`
	Resource   string     `json:"resource"`
	Platform   string     `json:"platform"`
	Completed  bool       `json:"completed"`
	Notes      string     `json:"notes"`
}

type SubTopic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Topic struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Color     string     `json:"color"`
	SubTopics []SubTopic `json:"subTopics"`

	// Expanded is UI state. It is persisted but not restored by undo/redo.
	Expanded bool `json:"expanded"`
}

// QuestionPatch carries optional question fields. Nil fields are left untouched
// (or take their defaults on create).
type QuestionPatch struct {
	Title      *string `json:"title,omitempty"`
	Difficulty *string `json:"difficulty,omitempty"`
	Link       *string `json:"link,omitempty"`
	Resource   *string `json:"resource,omitempty"`
	Platform   *string `json:"platform,omitempty"`
	Completed  *bool   `json:"completed,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (p QuestionPatch) IsEmpty() bool {
	return p.Title == nil && p.Difficulty == nil && p.Link == nil && p.Resource == nil &&
		p.Platform == nil && p.Completed == nil && p.Notes == nil
}

// Apply returns q with the patch merged in. The id is never touched.
func (p QuestionPatch) Apply(q Question) Question {
	if p.Title != nil {
		q.Title = *p.Title
	}
	if p.Difficulty != nil {
		q.Difficulty = ParseDifficulty(*p.Difficulty)
	}
	if p.Link != nil {
		q.Link = *p.Link
	}
	if p.Resource != nil {
		q.Resource = *p.Resource
	}
	if p.Platform != nil {
		q.Platform = *p.Platform
	}
	if p.Completed != nil {
		q.Completed = *p.Completed
	}
	if p.Notes != nil {
		q.Notes = *p.Notes
	}
	return q
}

// Palette is the fixed, cyclically indexed set of topic colors.
var Palette = []string{
	"#f97316", "#ea580c", "#fb923c", "#d97706", "#f59e0b",
	"#ef4444", "#e11d48", "#ec4899", "#10b981", "#14b8a6",
	"#3b82f6", "#6366f1", "#8b5cf6", "#c2410c", "#f43f5e",
}

func PaletteColor(idx int) string {
	if idx < 0 {
		idx = -idx
	}
	return Palette[idx%len(Palette)]
}

func CloneTopics(in []Topic) []Topic {
	if in == nil {
		return nil
	}
	out := make([]Topic, len(in))
	for i := range in {
		out[i] = CloneTopic(in[i])
	}
	return out
}

func CloneTopic(t Topic) Topic {
	if t.SubTopics != nil {
		subs := make([]SubTopic, len(t.SubTopics))
		for i := range t.SubTopics {
			subs[i] = CloneSubTopic(t.SubTopics[i])
		}
		t.SubTopics = subs
	}
	return t
}

func CloneSubTopic(st SubTopic) SubTopic {
	if st.Questions != nil {
		st.Questions = append([]Question(nil), st.Questions...)
	}
	return st
}

// Walk visits every question in stored order.
func Walk(topics []Topic, fn func(t *Topic, st *SubTopic, q *Question)) {
	for i := range topics {
		t := &topics[i]
		for j := range t.SubTopics {
			st := &t.SubTopics[j]
			for k := range st.Questions {
				fn(t, st, &st.Questions[k])
			}
		}
	}
}

// Normalize fills nil sequences and invalid difficulties so the tree serializes with
// stable shapes ([] rather than null).
func Normalize(topics []Topic) []Topic {
	if topics == nil {
		return []Topic{}
	}
	for i := range topics {
		t := &topics[i]
		if t.SubTopics == nil {
			t.SubTopics = []SubTopic{}
		}
		for j := range t.SubTopics {
			st := &t.SubTopics[j]
			if st.Questions == nil {
				st.Questions = []Question{}
			}
			for k := range st.Questions {
				q := &st.Questions[k]
				switch q.Difficulty {
				case DifficultyEasy, DifficultyMedium, DifficultyHard:
				default:
					q.Difficulty = ParseDifficulty(string(q.Difficulty))
				}
			}
		}
	}
	return topics
}

func StrPtr(s string) *string { return &s }

func BoolPtr(b bool) *bool { return &b }
