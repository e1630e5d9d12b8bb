package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"studysheet/internal/seed"
	"studysheet/internal/sheet"
	"studysheet/internal/store"
	"studysheet/internal/view"
)

func testDoc() *seed.Document {
	return &seed.Document{Topics: []seed.TopicSeed{
		{Title: "Arrays", SubTopics: []seed.SubTopicSeed{{
			Title: "Basics",
			Questions: []seed.QuestionSeed{
				{Title: "Two Sum", Difficulty: "easy"},
				{Title: "3Sum", Difficulty: "medium"},
			},
		}}},
		{Title: "Trees", SubTopics: []seed.SubTopicSeed{{
			Title: "Traversal",
			Questions: []seed.QuestionSeed{
				{Title: "Inorder", Difficulty: "easy"},
				{Title: "Serialize", Difficulty: "hard"},
			},
		}}},
	}}
}

func newTestModel(t *testing.T, src seed.Source) (appModel, string) {
	t.Helper()
	dir := t.TempDir()
	st := sheet.New(sheet.Options{Source: src, IDs: &store.SequentialIDs{}})
	m := newAppModel(context.Background(), Options{Sheet: st, Dir: dir})
	err := st.Initialize(context.Background())
	mm, _ := m.Update(loadedMsg{err: err})
	return mm.(appModel), dir
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m appModel, keys ...string) appModel {
	t.Helper()
	for _, k := range keys {
		mm, _ := m.Update(keyMsg(k))
		m = mm.(appModel)
	}
	return m
}

func rowTitles(m appModel) []string {
	out := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, rowTitle(r))
	}
	return out
}

func TestLoadingView_ThenTopicRows(t *testing.T) {
	t.Parallel()

	st := sheet.New(sheet.Options{Source: seed.StaticSource{Doc: testDoc()}, IDs: &store.SequentialIDs{}})
	m := newAppModel(context.Background(), Options{Sheet: st})
	if !strings.Contains(m.View(), "Loading sheet") {
		t.Fatalf("expected loading view; got %q", m.View())
	}
	m = press(t, m, "A")
	if m.mode != modeBrowse {
		t.Fatalf("expected keys to be ignored while loading")
	}

	mm, _ := m.Update(loadedMsg{err: st.Initialize(context.Background())})
	m = mm.(appModel)
	if got := rowTitles(m); len(got) != 2 || got[0] != "Arrays" || got[1] != "Trees" {
		t.Fatalf("expected collapsed topic rows; got %v", got)
	}
	if !strings.Contains(m.View(), "0/4 done") {
		t.Fatalf("expected stats header; got %q", m.View())
	}
}

func TestToggle_ExpandsTopicAndCompletesQuestion(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "enter")
	want := []string{"Arrays", "Basics", "Two Sum", "3Sum", "Trees"}
	if got := rowTitles(m); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %v; want %v", got, want)
	}

	m = press(t, m, "j", "j", "x")
	if got := m.st.Stats().CompletedQuestions; got != 1 {
		t.Fatalf("expected one completed question; got %d", got)
	}
	if !strings.Contains(m.status, "Nice work") {
		t.Fatalf("expected celebration status; got %q", m.status)
	}
	if m.st.CanUndo() {
		t.Fatalf("expand and toggle must not record history")
	}

	m = press(t, m, "j", "x")
	if !strings.Contains(m.status, `Topic "Arrays" complete`) {
		t.Fatalf("expected topic completion status; got %q", m.status)
	}
}

func TestAddTopic_ViaInput(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "A")
	if m.mode != modeInput {
		t.Fatalf("expected input mode")
	}
	m = press(t, m, "Graphs", "enter")

	topics := m.st.Topics()
	if len(topics) != 3 || topics[2].Title != "Graphs" {
		t.Fatalf("expected Graphs appended; got %#v", topics)
	}
	if r, ok := m.selected(); !ok || r.loc.TopicID != topics[2].ID {
		t.Fatalf("expected cursor on the new topic")
	}
	if !m.st.CanUndo() {
		t.Fatalf("expected add topic to be undoable")
	}
}

func TestAddTopic_EmptyTitleRejected(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "A", "enter")
	if m.mode != modeInput || !m.statusIsErr {
		t.Fatalf("expected input to stay open with an error; mode=%v status=%q", m.mode, m.status)
	}
	m = press(t, m, "esc")
	if m.mode != modeBrowse || len(m.st.Topics()) != 2 {
		t.Fatalf("expected cancel without changes")
	}
}

func TestDelete_ConfirmThenUndo(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "d")
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode")
	}
	m = press(t, m, "n")
	if len(m.st.Topics()) != 2 {
		t.Fatalf("expected delete to be canceled")
	}

	m = press(t, m, "d", "y")
	if got := rowTitles(m); len(got) != 1 || got[0] != "Trees" {
		t.Fatalf("expected Arrays deleted; got %v", got)
	}
	m = press(t, m, "u")
	if got := rowTitles(m); len(got) != 2 || got[0] != "Arrays" {
		t.Fatalf("expected undo to restore Arrays; got %v", got)
	}
	m = press(t, m, "U")
	if len(m.st.Topics()) != 1 {
		t.Fatalf("expected redo to delete again")
	}
}

func TestFilterCycle_ShowsMatchesOpen(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "f")
	if m.filter != view.FilterEasy {
		t.Fatalf("expected easy filter; got %q", m.filter)
	}
	want := []string{"Arrays", "Basics", "Two Sum", "Trees", "Traversal", "Inorder"}
	if got := rowTitles(m); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %v; want %v", got, want)
	}
}

func TestSearch_TypeAndClear(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "/", "two")
	if m.query != "two" {
		t.Fatalf("expected query to follow input; got %q", m.query)
	}
	want := []string{"Arrays", "Basics", "Two Sum"}
	if got := rowTitles(m); strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %v; want %v", got, want)
	}

	m = press(t, m, "esc")
	if m.query != "" || len(m.rows) != 2 {
		t.Fatalf("expected esc to clear the search; query=%q rows=%d", m.query, len(m.rows))
	}
}

func TestMoveTopicDown(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "J")
	if got := rowTitles(m); got[0] != "Trees" || got[1] != "Arrays" {
		t.Fatalf("expected Arrays moved down; got %v", got)
	}
	if r, _ := m.selected(); rowTitle(r) != "Arrays" {
		t.Fatalf("expected cursor to follow the moved topic")
	}
}

func TestLoadError_ShowsMessage(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, seed.StaticSource{Err: errors.New("boom")})
	if !strings.Contains(m.View(), "Failed to load data") {
		t.Fatalf("expected load error in view; got %q", m.View())
	}
}

func TestNoData_OffersAdd(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, nil)
	if !strings.Contains(m.View(), "No data found") {
		t.Fatalf("expected empty state; got %q", m.View())
	}
	m = press(t, m, "A", "Arrays", "enter")
	if len(m.st.Topics()) != 1 {
		t.Fatalf("expected a topic to be added to the empty sheet")
	}
}

func TestQuit_SavesUIState(t *testing.T) {
	t.Parallel()

	m, dir := newTestModel(t, seed.StaticSource{Doc: testDoc()})
	m = press(t, m, "f", "s", "n")
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}

	ui, err := store.Store{Dir: dir}.LoadUIState()
	if err != nil {
		t.Fatalf("LoadUIState: %v", err)
	}
	if ui.Filter != string(view.FilterEasy) || ui.Sort != string(view.SortAZ) || !ui.ShowNotes {
		t.Fatalf("unexpected ui state: %#v", ui)
	}
}
