package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ExpandAll key.Binding
	Collapse  key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Filter    key.Binding
	Sort      key.Binding
	Search    key.Binding
	Add       key.Binding
	AddTopic  key.Binding
	Rename    key.Binding
	EditNotes key.Binding
	Delete    key.Binding
	MarkAll   key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Notes     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys("enter", " ", "x"), key.WithHelp("enter/x", "toggle")),
		ExpandAll: key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
		Collapse:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
		Undo:      key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Redo:      key.NewBinding(key.WithKeys("U", "ctrl+r", "ctrl+y"), key.WithHelp("U", "redo")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add child")),
		AddTopic:  key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add topic")),
		Rename:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
		EditNotes: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit notes")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		MarkAll:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark topic done")),
		MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Notes:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notes pane")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Add, k.Undo, k.Redo, k.Filter, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.ExpandAll, k.Collapse},
		{k.Add, k.AddTopic, k.Rename, k.EditNotes, k.Delete},
		{k.MarkAll, k.MoveUp, k.MoveDown, k.Undo, k.Redo},
		{k.Filter, k.Sort, k.Search, k.Notes, k.Help, k.Quit},
	}
}
