package tui

import "github.com/charmbracelet/bubbles/key"

// todoKeyMap binds the todo manager's actions.
type todoKeyMap struct {
	Add            key.Binding
	Toggle         key.Binding
	Edit           key.Binding
	Delete         key.Binding
	Move           key.Binding
	NextFilter     key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	ClearCompleted key.Binding
	Theme          key.Binding
	Quit           key.Binding
}

func defaultTodoKeys() todoKeyMap {
	return todoKeyMap{
		Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Toggle:         key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Edit:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:         key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
		Move:           key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		NextFilter:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		FilterAll:      key.NewBinding(key.WithKeys("1")),
		FilterActive:   key.NewBinding(key.WithKeys("2")),
		FilterDone:     key.NewBinding(key.WithKeys("3")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear done")),
		Theme:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k todoKeyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Edit, k.Delete, k.Move, k.NextFilter, k.ClearCompleted, k.Theme}
}

type calcKeyMap struct {
	Quit  key.Binding
	Theme key.Binding
}

func defaultCalcKeys() calcKeyMap {
	return calcKeyMap{
		Quit:  key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Theme: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	}
}
