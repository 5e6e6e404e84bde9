package todo

import "github.com/Makepad-fr/tada/internal/model"

// Control is an affordance on a rendered row.
type Control string

const (
	ControlToggle Control = "toggle"
	ControlEdit   Control = "edit"
	ControlDelete Control = "delete"
)

// Controls lists the affordances every row exposes, in display order.
var Controls = []Control{ControlToggle, ControlEdit, ControlDelete}

// Row is one displayed item.
type Row struct {
	ID        model.ID
	Text      string
	Completed bool
}

// Action is an interaction with a row control, tagged with the row's id.
type Action struct {
	Control Control
	ID      model.ID
	// Text is the new text for ControlEdit.
	Text string
}

// Actions returns the row's controls bound to its id.
func (r Row) Actions() []Action {
	out := make([]Action, len(Controls))
	for i, ctl := range Controls {
		out[i] = Action{Control: ctl, ID: r.ID}
	}
	return out
}

// Render is a pure function of the list and the filter.
func Render(items []model.Item, filter model.Filter) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		if !filter.Match(it) {
			continue
		}
		rows = append(rows, Row{ID: it.ID, Text: it.Text, Completed: it.Completed})
	}
	return rows
}

// Dispatch routes a row interaction to the matching operation.
func (c *Collection) Dispatch(a Action) bool {
	switch a.Control {
	case ControlToggle:
		return c.Toggle(a.ID)
	case ControlEdit:
		return c.Edit(a.ID, a.Text)
	case ControlDelete:
		return c.Remove(a.ID)
	}
	return false
}
