package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// ThemeSaver persists the theme preference.
type ThemeSaver interface {
	SaveTheme(ctx context.Context, t model.Theme) error
}

// TodoOptions configures the todo manager.
type TodoOptions struct {
	Store  todo.Store
	Prefs  ThemeSaver
	Theme  model.Theme
	Filter model.Filter
	// Changes, when set, signals that the store was written elsewhere.
	Changes <-chan struct{}
	NewID   func() string
}

// listItem adapts a rendered row to bubbles/list.Item.
type listItem struct{ row todo.Row }

func (i listItem) FilterValue() string { return i.row.Text }

// rowView is the rendering substrate the collection draws into. It is shared
// by every copy of the model.
type rowView struct {
	list     list.Model
	theme    ui.Theme
	dragging model.ID
}

func (v *rowView) Render(rows []todo.Row, _ model.Filter) {
	items := make([]list.Item, len(rows))
	for i, r := range rows {
		items[i] = listItem{row: r}
	}
	v.list.SetItems(items)
	if n := len(items); n > 0 && v.list.Index() >= n {
		v.list.Select(n - 1)
	}
}

// setTheme swaps the palette, including the list's own help and pager styles.
func (v *rowView) setTheme(name model.Theme) {
	v.theme = ui.For(name)
	v.list.Styles.HelpStyle = v.theme.Help
	v.list.Styles.PaginationStyle = v.theme.Help
	v.list.Help.Styles.ShortKey = v.theme.Help
	v.list.Help.Styles.ShortDesc = v.theme.Muted
	v.list.Help.Styles.FullKey = v.theme.Help
	v.list.Help.Styles.FullDesc = v.theme.Muted
}

// Custom delegate to control how rows render (single line).
type itemDelegate struct{ view *rowView }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	th := d.view.theme
	line := ui.RowLine(th, it.row)
	prefix := "  "
	switch {
	case it.row.ID == d.view.dragging:
		prefix = th.Dragging.Render("≡ ")
	case index == m.Index():
		prefix = th.Selected.Render("> ")
	}
	if width := m.Width() - 2; width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}
	fmt.Fprintln(w, prefix+line)
}

type inputMode int

const (
	modeList inputMode = iota
	modeAdding
	modeEditing
)

type storeChangedMsg struct{}

// TodoModel is the interactive todo manager.
type TodoModel struct {
	ctx     context.Context
	coll    *todo.Collection
	view    *rowView
	prefs   ThemeSaver
	keys    todoKeyMap
	changes <-chan struct{}

	mode   inputMode
	ti     textinput.Model // shared by add and edit
	editID model.ID
	status string

	width, height int
}

// NewTodo loads the collection from opts.Store and renders it into a list.
func NewTodo(ctx context.Context, opts TodoOptions) TodoModel {
	keys := defaultTodoKeys()
	view := &rowView{theme: ui.For(opts.Theme)}

	w, h := ui.TermSize()
	l := list.New(nil, itemDelegate{view: view}, w-4, h-6)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.AdditionalShortHelpKeys = keys.short
	l.AdditionalFullHelpKeys = keys.short
	view.list = l
	view.setTheme(opts.Theme)

	coll := todo.Open(ctx, todo.Options{
		Store:  opts.Store,
		Sink:   view,
		Filter: opts.Filter,
		NewID:  opts.NewID,
	})

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	return TodoModel{
		ctx:     ctx,
		coll:    coll,
		view:    view,
		prefs:   opts.Prefs,
		keys:    keys,
		changes: opts.Changes,
		ti:      ti,
		width:   w,
		height:  h,
	}
}

// Collection exposes the underlying list.
func (m TodoModel) Collection() *todo.Collection { return m.coll }

func (m TodoModel) Init() tea.Cmd { return waitForChange(m.changes) }

func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return storeChangedMsg{}
	}
}

func (m TodoModel) selected() (todo.Row, bool) {
	it, ok := m.view.list.SelectedItem().(listItem)
	return it.row, ok
}

func (m TodoModel) selectID(id model.ID) {
	for i, it := range m.view.list.Items() {
		if li, ok := it.(listItem); ok && li.row.ID == id {
			m.view.list.Select(i)
			return
		}
	}
}

func (m TodoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.list.SetSize(msg.Width-4, m.listHeight())
		return m, nil
	case storeChangedMsg:
		m.coll.Reload()
		return m, waitForChange(m.changes)
	}

	if m.mode != modeList {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.view.dragging != "" {
			return m.updateDrag(msg)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Add):
			m.mode = modeAdding
			m.status = ""
			m.ti.SetValue("")
			m.ti.Placeholder = "New item title..."
			return m, m.ti.Focus()
		case key.Matches(msg, m.keys.Edit):
			if row, ok := m.selected(); ok {
				m.mode = modeEditing
				m.editID = row.ID
				m.ti.SetValue(row.Text)
				m.ti.CursorEnd()
				m.ti.Placeholder = "Edit item title..."
				return m, m.ti.Focus()
			}
			return m, nil
		case key.Matches(msg, m.keys.Toggle):
			if row, ok := m.selected(); ok {
				m.coll.Toggle(row.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if row, ok := m.selected(); ok {
				m.coll.Remove(row.ID)
			}
			return m, nil
		case key.Matches(msg, m.keys.Move):
			if row, ok := m.selected(); ok {
				m.view.dragging = row.ID
				m.status = fmt.Sprintf("moving %q: m/enter drops before the selected row, esc cancels", row.Text)
			}
			return m, nil
		case key.Matches(msg, m.keys.NextFilter):
			m.coll.SetFilter(m.coll.Filter().Next())
			return m, nil
		case key.Matches(msg, m.keys.FilterAll):
			m.coll.SetFilter(model.FilterAll)
			return m, nil
		case key.Matches(msg, m.keys.FilterActive):
			m.coll.SetFilter(model.FilterActive)
			return m, nil
		case key.Matches(msg, m.keys.FilterDone):
			m.coll.SetFilter(model.FilterCompleted)
			return m, nil
		case key.Matches(msg, m.keys.ClearCompleted):
			if n := m.coll.ClearCompleted(); n > 0 {
				m.status = fmt.Sprintf("cleared %d completed", n)
			}
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			next := m.view.theme.Name.Toggle()
			m.view.setTheme(next)
			if m.prefs != nil {
				_ = m.prefs.SaveTheme(m.ctx, next)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.view.list, cmd = m.view.list.Update(msg)
	return m, cmd
}

// updateDrag handles keys while a row is picked up. Navigation still moves
// the cursor so a drop target can be chosen.
func (m TodoModel) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view.dragging = ""
		m.status = ""
		return m, nil
	case "m", "enter":
		dragged := m.view.dragging
		m.view.dragging = ""
		m.status = ""
		if target, ok := m.selected(); ok && m.coll.Reorder(dragged, target.ID) {
			m.selectID(dragged)
		}
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.view.list, cmd = m.view.list.Update(msg)
	return m, cmd
}

// updateForm drives the add and edit input. Blank submissions do nothing.
func (m TodoModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			text := m.ti.Value()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			if m.mode == modeAdding {
				// Keep the form open for the next entry.
				if it, ok := m.coll.Add(text); ok {
					m.selectID(it.ID)
				}
				m.ti.SetValue("")
				return m, nil
			}
			m.coll.Edit(m.editID, text)
			m.closeForm()
			return m, nil
		case "esc":
			m.closeForm()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m *TodoModel) closeForm() {
	m.mode = modeList
	m.editID = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m TodoModel) listHeight() int {
	h := m.height - 6
	if m.mode != modeList {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	return h
}

func (m TodoModel) View() string {
	th := m.view.theme
	m.view.list.SetSize(m.width-4, m.listHeight())

	done, pending := m.coll.Stats()
	var b strings.Builder
	b.WriteString(ui.Header(th, done, pending, m.coll.Filter()))
	b.WriteString("\n")
	b.WriteString(th.Muted.Render(ui.ProgressBar(done, done+pending, 20)))
	b.WriteString("\n\n")
	if len(m.view.list.Items()) == 0 {
		b.WriteString(th.Muted.Render("  nothing here"))
		b.WriteString("\n")
	}
	b.WriteString(m.view.list.View())

	if m.mode != modeList {
		title := "Add new item"
		if m.mode == modeEditing {
			title = "Edit item"
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(th.Border).Padding(0, 1)
		b.WriteString("\n")
		b.WriteString(bar.Render(title + "\n" + m.ti.View()))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(th.Accent.Render(m.status))
	}
	return ui.Panel(th, b.String())
}
