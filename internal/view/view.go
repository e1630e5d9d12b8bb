package view

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"studysheet/internal/model"
	"studysheet/internal/stats"
)

type FilterMode string

const (
	FilterAll        FilterMode = "all"
	FilterEasy       FilterMode = "easy"
	FilterMedium     FilterMode = "medium"
	FilterHard       FilterMode = "hard"
	FilterCompleted  FilterMode = "completed"
	FilterIncomplete FilterMode = "incomplete"
)

var FilterModes = []FilterMode{FilterAll, FilterEasy, FilterMedium, FilterHard, FilterCompleted, FilterIncomplete}

type SortMode string

const (
	SortCustom   SortMode = "custom"
	SortAZ       SortMode = "a-z"
	SortProgress SortMode = "progress"
)

var SortModes = []SortMode{SortCustom, SortAZ, SortProgress}

func ParseFilter(s string) (FilterMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FilterAll, nil
	}
	for _, m := range FilterModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid filter: %q (expected all|easy|medium|hard|completed|incomplete)", s)
}

func ParseSort(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "":
		return SortCustom, nil
	case "az", "alpha":
		return SortAZ, nil
	}
	for _, m := range SortModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid sort: %q (expected custom|a-z|progress)", s)
}

// Next returns the mode after m, wrapping around.
func (m FilterMode) Next() FilterMode {
	return next(FilterModes, m)
}

func (m SortMode) Next() SortMode {
	return next(SortModes, m)
}

func next[T comparable](all []T, cur T) T {
	for i, v := range all {
		if v == cur {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

type Options struct {
	Filter FilterMode
	Search string
	Sort   SortMode
}

// Active reports whether filtering or searching hides anything.
func (o Options) Active() bool {
	return (o.Filter != "" && o.Filter != FilterAll) || strings.TrimSpace(o.Search) != ""
}

// Apply returns the visible projection of topics. Sorting orders topics by their full
// contents; filtering then narrows questions and drops topics left without sub-topics.
// The input is never modified.
func Apply(topics []model.Topic, opts Options) []model.Topic {
	out := Sort(topics, opts.Sort)
	if !opts.Active() {
		return out
	}

	needle := fold(strings.TrimSpace(opts.Search))
	filtered := make([]model.Topic, 0, len(out))
	for _, t := range out {
		subs := make([]model.SubTopic, 0, len(t.SubTopics))
		for _, st := range t.SubTopics {
			subMatch := needle != "" && strings.Contains(fold(st.Title), needle)
			qs := make([]model.Question, 0, len(st.Questions))
			for _, q := range st.Questions {
				if !MatchFilter(q, opts.Filter) {
					continue
				}
				if needle != "" && !subMatch && !strings.Contains(fold(q.Title), needle) {
					continue
				}
				qs = append(qs, q)
			}
			if len(qs) > 0 || subMatch {
				st.Questions = qs
				subs = append(subs, st)
			}
		}
		if len(subs) == 0 {
			continue
		}
		t.SubTopics = subs
		filtered = append(filtered, t)
	}
	return filtered
}

func MatchFilter(q model.Question, m FilterMode) bool {
	switch m {
	case "", FilterAll:
		return true
	case FilterCompleted:
		return q.Completed
	case FilterIncomplete:
		return !q.Completed
	default:
		return string(q.Difficulty) == string(m)
	}
}

// Sort orders topics only; sub-topics and questions keep their stored order.
func Sort(topics []model.Topic, m SortMode) []model.Topic {
	out := make([]model.Topic, len(topics))
	copy(out, topics)
	switch m {
	case SortAZ:
		c := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool {
			return c.CompareString(out[i].Title, out[j].Title) < 0
		})
	case SortProgress:
		type ranked struct {
			t    model.Topic
			frac float64
		}
		rs := make([]ranked, len(out))
		for i, t := range out {
			rs[i] = ranked{t: t, frac: stats.TopicProgress(t).Fraction}
		}
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].frac > rs[j].frac })
		for i := range rs {
			out[i] = rs[i].t
		}
	}
	return out
}

func fold(s string) string {
	return cases.Fold().String(s)
}
