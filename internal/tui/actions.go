package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"studysheet/internal/model"
	"studysheet/internal/sheet"
	"studysheet/internal/stats"
	"studysheet/internal/view"
)

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	cur, hasCur := m.selected()

	switch {
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
		return m, nil
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
		return m, nil

	case key.Matches(msg, k.Toggle):
		if !hasCur {
			return m, nil
		}
		return m.toggle(cur)

	case key.Matches(msg, k.ExpandAll):
		m.st.ExpandAll()
		m.refresh()
		return m, nil
	case key.Matches(msg, k.Collapse):
		m.st.CollapseAll()
		if hasCur {
			m.cursorID = cur.loc.TopicID
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, k.Undo):
		if !m.st.Undo() {
			return m, m.setStatus("Nothing to undo", true)
		}
		m.refresh()
		return m, m.setStatus("Undone", false)
	case key.Matches(msg, k.Redo):
		if !m.st.Redo() {
			return m, m.setStatus("Nothing to redo", true)
		}
		m.refresh()
		return m, m.setStatus("Redone", false)

	case key.Matches(msg, k.Filter):
		m.filter = m.filter.Next()
		m.refresh()
		return m, m.setStatus("Filter: "+string(m.filter), false)
	case key.Matches(msg, k.Sort):
		m.sort = m.sort.Next()
		m.refresh()
		return m, m.setStatus("Sort: "+string(m.sort), false)
	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, k.AddTopic):
		return m.openInput(inputAddTopic, sheet.Location{}, "New topic: ", "")
	case key.Matches(msg, k.Add):
		if !hasCur {
			return m.openInput(inputAddTopic, sheet.Location{}, "New topic: ", "")
		}
		switch cur.loc.Kind {
		case sheet.KindTopic:
			return m.openInput(inputAddSubTopic, cur.loc, "New sub-topic: ", "")
		default:
			loc := cur.loc
			loc.Kind = sheet.KindSubTopic
			loc.QuestionID = ""
			return m.openInput(inputAddQuestion, loc, "New question: ", "")
		}
	case key.Matches(msg, k.Rename):
		if !hasCur {
			return m, nil
		}
		return m.openInput(inputRename, cur.loc, "Rename: ", rowTitle(cur))
	case key.Matches(msg, k.EditNotes):
		if !hasCur || cur.loc.Kind != sheet.KindQuestion {
			return m, nil
		}
		return m.openInput(inputNotes, cur.loc, "Notes: ", cur.question.Notes)

	case key.Matches(msg, k.Delete):
		if !hasCur {
			return m, nil
		}
		return m.confirmDelete(cur)

	case key.Matches(msg, k.MarkAll):
		if !hasCur {
			return m, nil
		}
		if !m.st.MarkAllComplete(cur.loc.TopicID) {
			return m, nil
		}
		m.refresh()
		return m, m.setStatus(fmt.Sprintf("🎉 %q marked complete", cur.topic.Title), false)

	case key.Matches(msg, k.MoveUp), key.Matches(msg, k.MoveDown):
		if !hasCur || cur.loc.Kind != sheet.KindTopic {
			return m, nil
		}
		if m.sort != view.SortCustom {
			return m, m.setStatus("Switch to custom sort to reorder", true)
		}
		var moved bool
		if key.Matches(msg, k.MoveUp) {
			moved = m.st.MoveTopicUp(cur.loc.TopicID)
		} else {
			moved = m.st.MoveTopicDown(cur.loc.TopicID)
		}
		if moved {
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, k.Notes):
		m.showNotes = !m.showNotes
		m.clampScroll()
		return m, nil
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}
	return m, nil
}

func (m appModel) toggle(cur row) (tea.Model, tea.Cmd) {
	switch cur.loc.Kind {
	case sheet.KindTopic:
		if m.viewOptions().Active() {
			return m, nil
		}
		m.st.ToggleTopicExpanded(cur.loc.TopicID)
		m.refresh()
		return m, nil
	case sheet.KindQuestion:
		done := m.st.ToggleQuestion(cur.loc.TopicID, cur.loc.SubTopicID, cur.loc.QuestionID)
		m.refresh()
		if !done {
			return m, nil
		}
		msg := celebration(cur.question)
		for _, t := range m.st.Topics() {
			if t.ID == cur.loc.TopicID {
				if p := stats.TopicProgress(t); p.Total > 0 && p.Completed == p.Total {
					msg = fmt.Sprintf("🏆 Topic %q complete!", t.Title)
				}
				break
			}
		}
		return m, m.setStatus(msg, false)
	}
	return m, nil
}

func rowTitle(r row) string {
	switch r.loc.Kind {
	case sheet.KindTopic:
		return r.topic.Title
	case sheet.KindSubTopic:
		return r.subTopic.Title
	default:
		return r.question.Title
	}
}

func (m appModel) openInput(p inputPurpose, loc sheet.Location, prompt, value string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.purpose = p
	m.target = loc
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m, m.input.Focus()
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.input.Value())
		if value == "" && m.purpose != inputNotes {
			return m, m.setStatus("Title must not be empty", true)
		}
		m.mode = modeBrowse
		m.input.Blur()
		return m.commitInput(value)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) commitInput(value string) (tea.Model, tea.Cmd) {
	loc := m.target
	var status string
	switch m.purpose {
	case inputAddTopic:
		if id := m.st.AddTopic(value); id != "" {
			m.cursorID = id
			status = fmt.Sprintf("Topic %q created", value)
		}
	case inputAddSubTopic:
		if id := m.st.AddSubTopic(loc.TopicID, value); id != "" {
			m.cursorID = id
			status = "Sub-topic added"
		}
	case inputAddQuestion:
		if id := m.st.AddQuestion(loc.TopicID, loc.SubTopicID, model.QuestionPatch{Title: model.StrPtr(value)}); id != "" {
			m.cursorID = id
			status = "Question added"
		}
	case inputRename:
		var ok bool
		switch loc.Kind {
		case sheet.KindTopic:
			ok = m.st.UpdateTopic(loc.TopicID, value)
			status = "Topic updated"
		case sheet.KindSubTopic:
			ok = m.st.UpdateSubTopic(loc.TopicID, loc.SubTopicID, value)
			status = "Sub-topic updated"
		case sheet.KindQuestion:
			ok = m.st.UpdateQuestion(loc.TopicID, loc.SubTopicID, loc.QuestionID, model.QuestionPatch{Title: model.StrPtr(value)})
			status = "Question updated"
		}
		if !ok {
			status = ""
		}
	case inputNotes:
		if m.st.UpdateQuestion(loc.TopicID, loc.SubTopicID, loc.QuestionID, model.QuestionPatch{Notes: model.StrPtr(value)}) {
			status = "Notes saved"
		}
	}
	// New children must be visible.
	if loc.TopicID != "" && (m.purpose == inputAddSubTopic || m.purpose == inputAddQuestion) {
		m.expandTopic(loc.TopicID)
	}
	m.refresh()
	if status == "" {
		return m, nil
	}
	return m, m.setStatus(status, false)
}

func (m *appModel) expandTopic(id string) {
	for _, t := range m.st.Topics() {
		if t.ID == id && !t.Expanded {
			m.st.ToggleTopicExpanded(id)
			return
		}
	}
}

func (m appModel) confirmDelete(cur row) (tea.Model, tea.Cmd) {
	loc := cur.loc
	st := m.st
	switch loc.Kind {
	case sheet.KindTopic:
		m.confirm = fmt.Sprintf("Delete topic %q and everything in it?", cur.topic.Title)
		m.onDelete = func() bool { return st.DeleteTopic(loc.TopicID) }
	case sheet.KindSubTopic:
		m.confirm = fmt.Sprintf("Delete sub-topic %q and its questions?", cur.subTopic.Title)
		m.onDelete = func() bool { return st.DeleteSubTopic(loc.TopicID, loc.SubTopicID) }
	case sheet.KindQuestion:
		m.confirm = fmt.Sprintf("Delete question %q?", cur.question.Title)
		m.onDelete = func() bool { return st.DeleteQuestion(loc.TopicID, loc.SubTopicID, loc.QuestionID) }
	}
	m.mode = modeConfirm
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeBrowse
		del := m.onDelete
		m.onDelete = nil
		if del != nil && del() {
			m.refresh()
			return m, m.setStatus("Deleted (u to undo)", false)
		}
		return m, nil
	case "n", "N", "esc", "ctrl+g":
		m.mode = modeBrowse
		m.onDelete = nil
		return m, nil
	}
	return m, nil
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.refresh()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// Search applies as you type.
	m.query = strings.TrimSpace(m.search.Value())
	m.refresh()
	return m, cmd
}
