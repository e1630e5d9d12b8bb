package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"studysheet/internal/logger"
	"studysheet/internal/model"
	"studysheet/internal/sheet"
	"studysheet/internal/store"
	"studysheet/internal/view"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeInput
	modeConfirm
)

type inputPurpose int

const (
	inputAddTopic inputPurpose = iota
	inputAddSubTopic
	inputAddQuestion
	inputRename
	inputNotes
)

type loadedMsg struct{ err error }

type statusDoneMsg struct{ seq int }

const statusTTL = 3 * time.Second

type appModel struct {
	ctx context.Context
	st  *sheet.Store
	ui  store.Store
	log *logger.Logger

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model
	search  textinput.Model

	loading bool
	width   int
	height  int

	filter    view.FilterMode
	sort      view.SortMode
	query     string
	showNotes bool

	rows     []row
	cursor   int
	offset   int
	cursorID string

	mode     mode
	purpose  inputPurpose
	target   sheet.Location
	confirm  string
	onDelete func() bool

	status      string
	statusIsErr bool
	statusSeq   int
}

func newAppModel(ctx context.Context, opts Options) appModel {
	l := opts.Log
	if l == nil {
		l = logger.Nop()
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	in := textinput.New()
	in.CharLimit = 500

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search questions and sub-topics"

	m := appModel{
		ctx:     ctx,
		st:      opts.Sheet,
		ui:      store.Store{Dir: opts.Dir},
		log:     l,
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		input:   in,
		search:  search,
		loading: true,
		filter:  view.FilterAll,
		sort:    view.SortCustom,
		width:   80,
		height:  24,
	}

	if ui, err := m.ui.LoadUIState(); err == nil {
		if f, err := view.ParseFilter(ui.Filter); err == nil {
			m.filter = f
		}
		if s, err := view.ParseSort(ui.Sort); err == nil {
			m.sort = s
		}
		m.query = ui.Search
		m.search.SetValue(ui.Search)
		m.showNotes = ui.ShowNotes
		m.cursorID = ui.Cursor
	} else {
		l.Warn("load ui state failed", "error", err)
	}
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd())
}

func (m appModel) loadCmd() tea.Cmd {
	st := m.st
	ctx := m.ctx
	return func() tea.Msg {
		return loadedMsg{err: st.Initialize(ctx)}
	}
}

func (m appModel) viewOptions() view.Options {
	return view.Options{Filter: m.filter, Search: m.query, Sort: m.sort}
}

// refresh rebuilds rows from the store. The cursor stays on cursorID when that node is still
// visible, otherwise it keeps its position.
func (m *appModel) refresh() {
	opts := m.viewOptions()
	m.rows = flattenRows(view.Apply(m.st.Topics(), opts), opts.Active())
	idx := -1
	for i, r := range m.rows {
		if r.id() == m.cursorID {
			idx = i
			break
		}
	}
	if idx < 0 {
		idx = min(m.cursor, len(m.rows)-1)
		idx = max(idx, 0)
	}
	m.cursor = idx
	if idx < len(m.rows) {
		m.cursorID = m.rows[idx].id()
	}
	m.clampScroll()
}

func (m appModel) selected() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

func (m *appModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	m.cursorID = m.rows[m.cursor].id()
	m.clampScroll()
}

func (m *appModel) listHeight() int {
	h := m.height - 6
	if m.showNotes {
		h -= m.notesHeight()
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m *appModel) notesHeight() int {
	return m.height / 3
}

func (m *appModel) clampScroll() {
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

func (m *appModel) setStatus(msg string, isErr bool) tea.Cmd {
	m.status = msg
	m.statusIsErr = isErr
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg { return statusDoneMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampScroll()
		return m, nil

	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.log.Warn("sheet load failed", "error", msg.err)
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusDoneMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusIsErr = false
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && (m.mode == modeBrowse || msg.String() == "ctrl+c") {
			m.saveUIState()
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.mode == modeInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	if m.mode == modeSearch {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) saveUIState() {
	st := &store.UIState{
		Filter:    string(m.filter),
		Sort:      string(m.sort),
		Search:    m.query,
		ShowNotes: m.showNotes,
		Cursor:    m.cursorID,
	}
	if r, ok := m.selected(); ok {
		st.Cursor = r.id()
	}
	if err := m.ui.SaveUIState(st); err != nil {
		m.log.Warn("save ui state failed", "error", err)
	}
}

func (m appModel) View() string {
	if m.loading {
		return fmt.Sprintf("\n  %s Loading sheet…\n\n  %s\n", m.spinner.View(), styleMuted().Render("q: quit"))
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if err := m.st.Err(); err != nil && !errors.Is(err, sheet.ErrNoData) {
		b.WriteString("\n  " + styleError().Render(err.Error()) + "\n")
		b.WriteString("\n  " + styleMuted().Render("q: quit") + "\n")
		return b.String()
	}

	if len(m.rows) == 0 {
		empty := "No data found. Press A to add a topic."
		if m.viewOptions().Active() {
			empty = "Nothing matches the current filter or search."
		}
		b.WriteString("\n  " + styleMuted().Render(empty) + "\n")
	} else {
		forceOpen := m.viewOptions().Active()
		end := m.offset + m.listHeight()
		if end > len(m.rows) {
			end = len(m.rows)
		}
		for i := m.offset; i < end; i++ {
			b.WriteString(renderRow(m.rows[i], m.width, i == m.cursor, forceOpen))
			b.WriteString("\n")
		}
	}

	if m.showNotes {
		b.WriteString(m.viewNotes())
	}
	b.WriteString(m.viewFooter())
	return b.String()
}

func (m appModel) viewHeader() string {
	s := m.st.Stats()
	title := styleTitle().Render("Study Sheet")
	progress := fmt.Sprintf("%d/%d done (%d%%)", s.CompletedQuestions, s.TotalQuestions, s.CompletionRate)
	counts := fmt.Sprintf("easy %d · medium %d · hard %d", s.EasyCount, s.MediumCount, s.HardCount)
	line := fmt.Sprintf("%s  %s  %s", title, progress, styleMuted().Render(counts))

	var chips []string
	if m.filter != view.FilterAll {
		chips = append(chips, "filter:"+string(m.filter))
	}
	if m.sort != view.SortCustom {
		chips = append(chips, "sort:"+string(m.sort))
	}
	if m.query != "" {
		chips = append(chips, fmt.Sprintf("search:%q", m.query))
	}
	if len(chips) > 0 {
		line += "  " + styleAccent().Render(strings.Join(chips, " "))
	}
	return line
}

func (m appModel) viewNotes() string {
	r, ok := m.selected()
	if !ok || r.loc.Kind != sheet.KindQuestion {
		return ""
	}
	q := r.question
	body := strings.TrimSpace(q.Notes)
	if body == "" {
		body = "_No notes._"
	}
	if q.Link != "" {
		body += "\n\n" + q.Link
	}
	rendered := RenderMarkdown(body, m.width-4)
	lines := strings.Split(rendered, "\n")
	if h := m.notesHeight(); len(lines) > h {
		lines = lines[:h]
	}
	sep := styleMuted().Render(strings.Repeat("─", max(m.width, 1)))
	return sep + "\n" + strings.Join(lines, "\n") + "\n"
}

func (m appModel) viewFooter() string {
	var b strings.Builder
	switch m.mode {
	case modeSearch:
		b.WriteString(m.search.View())
	case modeInput:
		b.WriteString(m.input.View())
	case modeConfirm:
		b.WriteString(styleError().Render(m.confirm) + styleMuted().Render("  y: yes  n/esc: no"))
	default:
		if m.status != "" {
			st := styleSuccess()
			if m.statusIsErr {
				st = styleError()
			}
			b.WriteString(st.Render(m.status))
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return lipgloss.NewStyle().MarginTop(1).Render(b.String())
}

func celebration(q model.Question) string {
	return fmt.Sprintf("🎉 Nice work! %q is done.", q.Title)
}
