package sheet

import (
	"context"
	"reflect"
	"sort"
	"testing"

	"studysheet/internal/model"
)

// stripExpanded clears UI state so trees can be compared structurally.
func stripExpanded(topics []model.Topic) []model.Topic {
	out := model.CloneTopics(topics)
	for i := range out {
		out[i].Expanded = false
	}
	return out
}

func TestAddTopic_AppendsExpandedWithPaletteColor(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	id := f.s.AddTopic("Heaps")
	topics := f.s.Topics()
	last := topics[len(topics)-1]
	if last.ID != id || last.Title != "Heaps" || !last.Expanded {
		t.Fatalf("unexpected new topic: %#v", last)
	}
	if last.Color != model.PaletteColor(2) {
		t.Fatalf("expected palette color at index 2; got %q", last.Color)
	}
	if h := f.s.History(); h[len(h)-1].Description != "Add topic" {
		t.Fatalf("expected Add topic entry; got %q", h[len(h)-1].Description)
	}
	if got := stored(t, f); len(got) != 3 {
		t.Fatalf("expected persisted add; got %d topics", len(got))
	}
}

func TestUpdateTopic_TrimsAndIgnoresUnknown(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tid := f.s.Topics()[0].ID
	if !f.s.UpdateTopic(tid, "  Arrays & Strings  ") {
		t.Fatalf("expected update to apply")
	}
	if got := f.s.Topics()[0].Title; got != "Arrays & Strings" {
		t.Fatalf("expected trimmed title; got %q", got)
	}
	n := len(f.s.History())
	if f.s.UpdateTopic("top-missing", "x") {
		t.Fatalf("expected unknown id to be a no-op")
	}
	if len(f.s.History()) != n {
		t.Fatalf("expected no history entry for unknown id")
	}
}

func TestDeleteTopic_Cascades(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	victim := f.s.Topics()[0]
	if !f.s.DeleteTopic(victim.ID) {
		t.Fatalf("expected delete to apply")
	}
	remaining := allIDs(f.s.Topics())
	for _, id := range allIDs([]model.Topic{victim}) {
		for _, r := range remaining {
			if r == id {
				t.Fatalf("id %q survived topic deletion", id)
			}
		}
		if _, ok := f.s.Locate(id); ok {
			t.Fatalf("Locate still finds %q", id)
		}
	}
}

func TestDeleteSubTopic_Cascades(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	st := tp.SubTopics[0]
	if !f.s.DeleteSubTopic(tp.ID, st.ID) {
		t.Fatalf("expected delete to apply")
	}
	for _, q := range st.Questions {
		if _, ok := f.s.Locate(q.ID); ok {
			t.Fatalf("question %q survived sub-topic deletion", q.ID)
		}
	}
	if got := f.s.Topics()[0].SubTopics; len(got) != 1 {
		t.Fatalf("expected one sub-topic left; got %d", len(got))
	}
	if f.s.DeleteSubTopic("top-missing", st.ID) || f.s.DeleteSubTopic(tp.ID, "sub-missing") {
		t.Fatalf("expected missing parent/target to be a no-op")
	}
}

func TestReorder_IsPermutation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	for _, title := range []string{"C", "D"} {
		f.s.AddTopic(title)
	}
	before := f.s.Topics()
	ids := func(ts []model.Topic) []string {
		out := make([]string, len(ts))
		for i, tp := range ts {
			out[i] = tp.ID
		}
		return out
	}
	b := ids(before)

	// Move first onto third: [a b c d] -> [b c a d]
	if !f.s.ReorderTopics(b[0], b[2]) {
		t.Fatalf("expected reorder to apply")
	}
	got := ids(f.s.Topics())
	if want := []string{b[1], b[2], b[0], b[3]}; !reflect.DeepEqual(got, want) {
		t.Fatalf("reorder forward: want %v; got %v", want, got)
	}

	// Move last onto first: [b c a d] -> [d b c a]
	if !f.s.ReorderTopics(b[3], b[1]) {
		t.Fatalf("expected reorder to apply")
	}
	got = ids(f.s.Topics())
	if want := []string{b[3], b[1], b[2], b[0]}; !reflect.DeepEqual(got, want) {
		t.Fatalf("reorder backward: want %v; got %v", want, got)
	}

	sortedGot := append([]string(nil), got...)
	sortedBefore := append([]string(nil), b...)
	sort.Strings(sortedGot)
	sort.Strings(sortedBefore)
	if !reflect.DeepEqual(sortedGot, sortedBefore) {
		t.Fatalf("reorder changed the id multiset")
	}
}

func TestReorder_SameIDIsNoOpWithoutHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	st := tp.SubTopics[0]
	q := st.Questions[0]
	n := len(f.s.History())

	if f.s.ReorderTopics(tp.ID, tp.ID) ||
		f.s.ReorderSubTopics(tp.ID, st.ID, st.ID) ||
		f.s.ReorderQuestions(tp.ID, st.ID, q.ID, q.ID) {
		t.Fatalf("expected same-id reorder to be a no-op")
	}
	if f.s.ReorderTopics(tp.ID, "top-missing") {
		t.Fatalf("expected missing over id to be a no-op")
	}
	if len(f.s.History()) != n {
		t.Fatalf("expected history length unchanged; was %d now %d", n, len(f.s.History()))
	}
}

func TestReorderSubTopicsAndQuestions(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	s0, s1 := tp.SubTopics[0], tp.SubTopics[1]
	if !f.s.ReorderSubTopics(tp.ID, s1.ID, s0.ID) {
		t.Fatalf("expected sub-topic reorder")
	}
	if got := f.s.Topics()[0].SubTopics; got[0].ID != s1.ID || got[1].ID != s0.ID {
		t.Fatalf("unexpected sub-topic order")
	}

	q0, q1 := s0.Questions[0], s0.Questions[1]
	if !f.s.ReorderQuestions(tp.ID, s0.ID, q0.ID, q1.ID) {
		t.Fatalf("expected question reorder")
	}
	qs := f.s.Topics()[0].SubTopics[1].Questions
	if qs[0].ID != q1.ID || qs[1].ID != q0.ID {
		t.Fatalf("unexpected question order: %v, %v", qs[0].ID, qs[1].ID)
	}
}

func TestMoveTopicUpDown(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	b := f.s.Topics()
	if f.s.MoveTopicUp(b[0].ID) || f.s.MoveTopicDown(b[1].ID) {
		t.Fatalf("expected edge moves to be no-ops")
	}
	if !f.s.MoveTopicDown(b[0].ID) {
		t.Fatalf("expected move down")
	}
	if got := f.s.Topics(); got[0].ID != b[1].ID || got[1].ID != b[0].ID {
		t.Fatalf("unexpected order after move down")
	}
	if !f.s.MoveTopicUp(b[0].ID) {
		t.Fatalf("expected move up")
	}
	if got := f.s.Topics(); got[0].ID != b[0].ID {
		t.Fatalf("unexpected order after move up")
	}
}

func TestAddQuestion_Defaults(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[1]
	st := tp.SubTopics[0]

	id := f.s.AddQuestion(tp.ID, st.ID, model.QuestionPatch{})
	loc, ok := f.s.Locate(id)
	if !ok || loc.Kind != KindQuestion {
		t.Fatalf("expected new question to be locatable; got %#v", loc)
	}
	q, _ := f.s.Question(loc)
	want := model.Question{ID: id, Title: "New Question", Difficulty: model.DifficultyMedium}
	if q != want {
		t.Fatalf("defaults mismatch:\nwant: %#v\ngot:  %#v", want, q)
	}

	id2 := f.s.AddQuestion(tp.ID, st.ID, model.QuestionPatch{
		Title:      model.StrPtr("Dijkstra"),
		Difficulty: model.StrPtr("HARD"),
		Link:       model.StrPtr("https://example.test/dijkstra"),
	})
	loc2, _ := f.s.Locate(id2)
	q2, _ := f.s.Question(loc2)
	if q2.Title != "Dijkstra" || q2.Difficulty != model.DifficultyHard || q2.Link == "" || q2.Completed {
		t.Fatalf("unexpected patched question: %#v", q2)
	}

	if f.s.AddQuestion(tp.ID, "sub-missing", model.QuestionPatch{}) != "" {
		t.Fatalf("expected missing sub-topic to be a no-op")
	}
}

func TestToggleQuestion_NoHistoryAndReturnsNewValue(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	st := tp.SubTopics[0]
	q := st.Questions[0]
	n := len(f.s.History())

	if !f.s.ToggleQuestion(tp.ID, st.ID, q.ID) {
		t.Fatalf("expected first toggle to complete the question")
	}
	if got := stored(t, f)[0].SubTopics[0].Questions[0].Completed; !got {
		t.Fatalf("expected toggle to be persisted")
	}
	if f.s.ToggleQuestion(tp.ID, st.ID, q.ID) {
		t.Fatalf("expected second toggle to clear completion")
	}
	if len(f.s.History()) != n {
		t.Fatalf("expected toggle to leave history untouched")
	}
	if f.s.ToggleQuestion(tp.ID, st.ID, "q-missing") {
		t.Fatalf("expected unknown question toggle to report false")
	}
}

func TestUpdateQuestion_MergesWithoutHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	st := tp.SubTopics[0]
	q := st.Questions[0]
	n := len(f.s.History())

	if !f.s.UpdateQuestion(tp.ID, st.ID, q.ID, model.QuestionPatch{Notes: model.StrPtr("use a hash map")}) {
		t.Fatalf("expected update to apply")
	}
	got, _ := f.s.Question(Location{TopicID: tp.ID, SubTopicID: st.ID, QuestionID: q.ID})
	if got.Notes != "use a hash map" || got.Title != q.Title || got.Difficulty != q.Difficulty {
		t.Fatalf("expected shallow merge; got %#v", got)
	}
	if len(f.s.History()) != n {
		t.Fatalf("expected no history entry for question edits")
	}
}

func TestDeleteQuestion(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	st := tp.SubTopics[0]
	q := st.Questions[0]
	if !f.s.DeleteQuestion(tp.ID, st.ID, q.ID) {
		t.Fatalf("expected delete")
	}
	if _, ok := f.s.Locate(q.ID); ok {
		t.Fatalf("deleted question still present")
	}
	if f.s.DeleteQuestion(tp.ID, st.ID, q.ID) {
		t.Fatalf("expected second delete to be a no-op")
	}
}

func TestMarkAllComplete(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	st := tp.SubTopics[0]
	for i := 0; i < 2; i++ {
		f.s.AddQuestion(tp.ID, st.ID, model.QuestionPatch{})
	}
	// 5 questions under the topic; complete exactly one first.
	f.s.ToggleQuestion(tp.ID, st.ID, st.Questions[0].ID)

	if !f.s.MarkAllComplete(tp.ID) {
		t.Fatalf("expected mark all complete")
	}
	total, done := 0, 0
	for _, sub := range f.s.Topics()[0].SubTopics {
		for _, q := range sub.Questions {
			total++
			if q.Completed {
				done++
			}
		}
	}
	if total != 5 || done != 5 {
		t.Fatalf("expected 5/5 complete; got %d/%d", done, total)
	}
	if other := f.s.Topics()[1].SubTopics[0].Questions; other[0].Completed || other[1].Completed {
		t.Fatalf("expected other topics to be untouched")
	}
}

func TestExpandCollapse_NoHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	n := len(f.s.History())
	f.s.ExpandAll()
	for _, tp := range f.s.Topics() {
		if !tp.Expanded {
			t.Fatalf("expected every topic expanded")
		}
	}
	f.s.CollapseAll()
	tid := f.s.Topics()[1].ID
	f.s.ToggleTopicExpanded(tid)
	got := f.s.Topics()
	if got[0].Expanded || !got[1].Expanded {
		t.Fatalf("unexpected expanded flags: %v %v", got[0].Expanded, got[1].Expanded)
	}
	if len(f.s.History()) != n {
		t.Fatalf("expected UI-state changes to skip history")
	}
}

func TestUndoRedo_RoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	before := stripExpanded(f.s.Topics())
	if f.s.CanUndo() || f.s.Undo() {
		t.Fatalf("expected nothing to undo right after load")
	}

	tid := f.s.Topics()[0].ID
	f.s.DeleteTopic(tid)
	after := stripExpanded(f.s.Topics())

	if !f.s.Undo() {
		t.Fatalf("expected undo")
	}
	if got := stripExpanded(f.s.Topics()); !reflect.DeepEqual(got, before) {
		t.Fatalf("undo did not restore the previous tree")
	}
	if got := stripExpanded(stored(t, f)); !reflect.DeepEqual(got, before) {
		t.Fatalf("undo was not persisted")
	}
	if !f.s.Redo() {
		t.Fatalf("expected redo")
	}
	if got := stripExpanded(f.s.Topics()); !reflect.DeepEqual(got, after) {
		t.Fatalf("redo did not restore the post-delete tree")
	}
	if f.s.Redo() {
		t.Fatalf("expected nothing to redo at the head")
	}
}

func TestUndo_KeepsLiveExpandedFlags(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tid := f.s.Topics()[0].ID
	f.s.UpdateTopic(tid, "Renamed")
	f.s.ExpandAll()
	f.s.Undo()
	for _, tp := range f.s.Topics() {
		if !tp.Expanded {
			t.Fatalf("expected undo to keep expanded flags; %q collapsed", tp.Title)
		}
	}
}

func TestPushTruncatesRedoFuture(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tid := f.s.Topics()[0].ID
	f.s.UpdateTopic(tid, "One")
	f.s.UpdateTopic(tid, "Two")
	f.s.Undo()
	f.s.Undo()
	f.s.UpdateTopic(tid, "Three")

	if f.s.CanRedo() {
		t.Fatalf("expected new edit to drop the redo future")
	}
	h := f.s.History()
	if len(h) != 2 || f.s.HistoryIndex() != 1 || h[1].Topics[0].Title != "Three" {
		t.Fatalf("unexpected history after truncation: len=%d idx=%d", len(h), f.s.HistoryIndex())
	}
}

func TestHistory_IsBounded(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tid := f.s.Topics()[0].ID
	for i := 0; i < 40; i++ {
		f.s.UpdateTopic(tid, string(rune('a'+i%26)))
	}
	if got := len(f.s.History()); got != MaxHistory {
		t.Fatalf("expected %d entries; got %d", MaxHistory, got)
	}
	if f.s.HistoryIndex() != MaxHistory-1 {
		t.Fatalf("expected cursor at the head; got %d", f.s.HistoryIndex())
	}
	undos := 0
	for f.s.Undo() {
		undos++
	}
	if undos != MaxHistory-1 {
		t.Fatalf("expected %d undos; got %d", MaxHistory-1, undos)
	}
	// The oldest reachable state is the one after the 30th most recent edit, not the seed.
	if got := f.s.Topics()[0].Title; got == "Arrays" {
		t.Fatalf("expected evicted seed state to be unreachable")
	}
}

func TestFirstEditOnEmptyStoreIsUndoable(t *testing.T) {
	t.Parallel()

	s := New(Options{})
	_ = s.Initialize(context.Background())
	s.AddTopic("Solo")
	if !s.Undo() {
		t.Fatalf("expected undo back to the empty tree")
	}
	if len(s.Topics()) != 0 {
		t.Fatalf("expected empty tree after undo")
	}
}

func TestSnapshotsAreIsolatedFromLaterEdits(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	h0 := f.s.History()[0].Topics
	tp := f.s.Topics()[0]
	f.s.MarkAllComplete(tp.ID)
	f.s.UpdateQuestion(tp.ID, tp.SubTopics[0].ID, tp.SubTopics[0].Questions[0].ID, model.QuestionPatch{Title: model.StrPtr("changed")})

	if got := f.s.History()[0].Topics; !reflect.DeepEqual(got, h0) {
		t.Fatalf("history entry 0 was mutated by later edits")
	}
	if f.s.History()[0].Topics[0].SubTopics[0].Questions[0].Completed {
		t.Fatalf("expected snapshot to keep original completion state")
	}
}

func TestUndo_KeepsEditsOutsideHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tp := f.s.Topics()[0]
	st := tp.SubTopics[0]
	q := st.Questions[0]

	f.s.ToggleQuestion(tp.ID, st.ID, q.ID)
	f.s.UpdateQuestion(tp.ID, st.ID, q.ID, model.QuestionPatch{Notes: model.StrPtr("my notes")})
	before := stripExpanded(f.s.Topics())

	f.s.AddTopic("Heaps")
	if !f.s.Undo() {
		t.Fatalf("expected undo of add topic")
	}
	if got := stripExpanded(f.s.Topics()); !reflect.DeepEqual(got, before) {
		t.Fatalf("undo did not restore the tree as it was before the add:\n got %#v\nwant %#v", got, before)
	}
	got, _ := f.s.Question(Location{TopicID: tp.ID, SubTopicID: st.ID, QuestionID: q.ID})
	if !got.Completed || got.Notes != "my notes" {
		t.Fatalf("expected completion and notes to survive undo; got %#v", got)
	}

	if !f.s.Redo() || len(f.s.Topics()) != 3 {
		t.Fatalf("expected redo to re-add the topic")
	}
	if got, _ := f.s.Question(Location{TopicID: tp.ID, SubTopicID: st.ID, QuestionID: q.ID}); !got.Completed {
		t.Fatalf("expected redo to keep the completion")
	}
}
