package stats

import (
	"math"

	"studysheet/internal/model"
)

type Stats struct {
	TotalTopics        int `json:"totalTopics"`
	TotalSubTopics     int `json:"totalSubTopics"`
	TotalQuestions     int `json:"totalQuestions"`
	CompletedQuestions int `json:"completedQuestions"`
	CompletionRate     int `json:"completionRate"`
	EasyCount          int `json:"easyCount"`
	MediumCount        int `json:"mediumCount"`
	HardCount          int `json:"hardCount"`
}

// Compute derives document-wide counters. Rates are rounded percentages (0 when empty).
func Compute(topics []model.Topic) Stats {
	s := Stats{TotalTopics: len(topics)}
	for _, t := range topics {
		s.TotalSubTopics += len(t.SubTopics)
		for _, st := range t.SubTopics {
			for _, q := range st.Questions {
				s.TotalQuestions++
				if q.Completed {
					s.CompletedQuestions++
				}
				switch q.Difficulty {
				case model.DifficultyEasy:
					s.EasyCount++
				case model.DifficultyMedium:
					s.MediumCount++
				default:
					s.HardCount++
				}
			}
		}
	}
	s.CompletionRate = percent(s.CompletedQuestions, s.TotalQuestions)
	return s
}

type Progress struct {
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
	Percent   int     `json:"percent"`
	Fraction  float64 `json:"fraction"`
}

// TopicProgress counts questions across every sub-topic of t.
func TopicProgress(t model.Topic) Progress {
	var p Progress
	for _, st := range t.SubTopics {
		sp := SubTopicProgress(st)
		p.Total += sp.Total
		p.Completed += sp.Completed
	}
	return finish(p)
}

func SubTopicProgress(st model.SubTopic) Progress {
	p := Progress{Total: len(st.Questions)}
	for _, q := range st.Questions {
		if q.Completed {
			p.Completed++
		}
	}
	return finish(p)
}

func finish(p Progress) Progress {
	if p.Total > 0 {
		p.Fraction = float64(p.Completed) / float64(p.Total)
	}
	p.Percent = percent(p.Completed, p.Total)
	return p
}

func percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}
