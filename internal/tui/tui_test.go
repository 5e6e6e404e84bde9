package tui

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Makepad-fr/tada/internal/calc"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

type memStore struct {
	items []model.Item
	saves int
}

func (s *memStore) LoadTodos(context.Context) []model.Item {
	return append([]model.Item(nil), s.items...)
}

func (s *memStore) SaveTodos(_ context.Context, items []model.Item) error {
	s.saves++
	s.items = append([]model.Item(nil), items...)
	return nil
}

type themeRecorder struct{ saved []model.Theme }

func (r *themeRecorder) SaveTheme(_ context.Context, t model.Theme) error {
	r.saved = append(r.saved, t)
	return nil
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func sendTodo(t *testing.T, m TodoModel, msgs ...tea.Msg) TodoModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(TodoModel); !ok {
			t.Fatalf("unexpected model type %T", next)
		}
	}
	return m
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id%d", n)
	}
}

func newTodoModel(t *testing.T, st *memStore) (TodoModel, *themeRecorder) {
	t.Helper()
	prefs := &themeRecorder{}
	m := NewTodo(context.Background(), TodoOptions{
		Store: st,
		Prefs: prefs,
		Theme: model.ThemeDark,
		NewID: seqIDs(),
	})
	m = sendTodo(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, prefs
}

func rowTexts(rows []todo.Row) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = r.Text
	}
	return strings.Join(parts, ",")
}

func listTexts(m TodoModel) string {
	var parts []string
	for _, it := range m.view.list.Items() {
		parts = append(parts, it.(listItem).row.Text)
	}
	return strings.Join(parts, ",")
}

func TestAddFormSubmitsAndClears(t *testing.T) {
	st := &memStore{}
	m, _ := newTodoModel(t, st)

	m = sendTodo(t, m, runes("a"), runes("Buy milk"), enter)
	if m.mode != modeAdding {
		t.Fatal("form should stay open for the next entry")
	}
	if m.ti.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.ti.Value())
	}
	m = sendTodo(t, m, runes("Walk dog"), enter, runes("   "), enter, esc)

	if m.mode != modeList {
		t.Error("esc should close the form")
	}
	if got := rowTexts(m.coll.Rows()); got != "Buy milk,Walk dog" {
		t.Errorf("rows = %s", got)
	}
	if listTexts(m) != "Buy milk,Walk dog" {
		t.Errorf("list = %s", listTexts(m))
	}
	if st.saves != 2 || len(st.items) != 2 {
		t.Errorf("expected 2 saves of the list, got %d (%v)", st.saves, st.items)
	}
}

func TestToggleAndFilterScenario(t *testing.T) {
	st := &memStore{}
	m, _ := newTodoModel(t, st)
	m = sendTodo(t, m, runes("a"), runes("Buy milk"), enter, runes("Walk dog"), enter, esc)

	m.view.list.Select(0)
	m = sendTodo(t, m, space, runes("2"))

	if listTexts(m) != "Walk dog" {
		t.Errorf("active filter should show only Walk dog, got %s", listTexts(m))
	}
	if m.coll.Filter() != model.FilterActive {
		t.Errorf("filter = %s", m.coll.Filter())
	}
	m = sendTodo(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if listTexts(m) != "Buy milk" {
		t.Errorf("tab should move to completed, got %s", listTexts(m))
	}
	m = sendTodo(t, m, runes("1"))
	if listTexts(m) != "Buy milk,Walk dog" {
		t.Errorf("all filter should show both, got %s", listTexts(m))
	}
}

func TestEditSelected(t *testing.T) {
	st := &memStore{items: []model.Item{{ID: "x", Text: "Buy milk"}}}
	m, _ := newTodoModel(t, st)

	m = sendTodo(t, m, runes("e"))
	if m.mode != modeEditing || m.ti.Value() != "Buy milk" {
		t.Fatalf("expected edit form prefilled, got mode %d value %q", m.mode, m.ti.Value())
	}
	m.ti.SetValue("Buy oat milk")
	m = sendTodo(t, m, enter)

	if m.mode != modeList {
		t.Error("enter should close the edit form")
	}
	if st.items[0].Text != "Buy oat milk" {
		t.Errorf("stored text = %q", st.items[0].Text)
	}
}

func TestDeleteAndClearCompleted(t *testing.T) {
	st := &memStore{items: []model.Item{
		{ID: "a", Text: "A", Completed: true},
		{ID: "b", Text: "B"},
		{ID: "c", Text: "C", Completed: true},
	}}
	m, _ := newTodoModel(t, st)

	m.view.list.Select(1)
	m = sendTodo(t, m, runes("d"))
	if listTexts(m) != "A,C" {
		t.Fatalf("expected B deleted, got %s", listTexts(m))
	}
	m = sendTodo(t, m, runes("C"))
	if listTexts(m) != "" || len(st.items) != 0 {
		t.Errorf("expected completed cleared, got %s (%v)", listTexts(m), st.items)
	}
}

func TestDragReorder(t *testing.T) {
	st := &memStore{items: []model.Item{
		{ID: "a", Text: "A"},
		{ID: "b", Text: "B"},
		{ID: "c", Text: "C"},
	}}
	m, _ := newTodoModel(t, st)

	m.view.list.Select(0)
	m = sendTodo(t, m, runes("m"))
	if m.view.dragging != "a" {
		t.Fatalf("expected A picked up, got %q", m.view.dragging)
	}
	m.view.list.Select(2)
	m = sendTodo(t, m, enter)

	if m.view.dragging != "" {
		t.Error("drop should end the drag")
	}
	if listTexts(m) != "B,A,C" {
		t.Errorf("expected A dropped before C, got %s", listTexts(m))
	}
	if row, ok := m.selected(); !ok || row.ID != "a" {
		t.Errorf("expected the moved row selected, got %+v", row)
	}

	m = sendTodo(t, m, runes("m"), esc)
	if m.view.dragging != "" || listTexts(m) != "B,A,C" {
		t.Errorf("esc should cancel without moving, got %s", listTexts(m))
	}
}

func TestThemeToggleIsSaved(t *testing.T) {
	m, prefs := newTodoModel(t, &memStore{})
	m = sendTodo(t, m, runes("t"))
	if m.view.theme.Name != model.ThemeLight {
		t.Errorf("theme = %s", m.view.theme.Name)
	}
	if got, want := m.view.list.Styles.HelpStyle.GetForeground(), ui.For(model.ThemeLight).Help.GetForeground(); got != want {
		t.Errorf("list help foreground = %v, want the light theme's %v", got, want)
	}
	if got, want := m.view.list.Styles.PaginationStyle.GetForeground(), ui.For(model.ThemeLight).Help.GetForeground(); got != want {
		t.Errorf("pagination foreground = %v, want the light theme's %v", got, want)
	}
	m = sendTodo(t, m, runes("t"))
	if got, want := m.view.list.Styles.HelpStyle.GetForeground(), ui.For(model.ThemeDark).Help.GetForeground(); got != want {
		t.Errorf("list help foreground = %v, want the dark theme's %v", got, want)
	}
	if len(prefs.saved) != 2 || prefs.saved[0] != model.ThemeLight || prefs.saved[1] != model.ThemeDark {
		t.Errorf("saved themes = %v", prefs.saved)
	}
}

func TestStoreChangedReloads(t *testing.T) {
	st := &memStore{}
	ch := make(chan struct{}, 1)
	m := NewTodo(context.Background(), TodoOptions{Store: st, Changes: ch})
	st.items = []model.Item{{ID: "z", Text: "written elsewhere"}}

	next, cmd := m.Update(storeChangedMsg{})
	m = next.(TodoModel)
	if listTexts(m) != "written elsewhere" {
		t.Errorf("expected reload, got %s", listTexts(m))
	}
	if cmd == nil {
		t.Error("expected the watch to be re-armed")
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTodoModel(t, &memStore{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestTodoViewShowsRows(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	st := &memStore{items: []model.Item{{ID: "a", Text: "Buy milk", Completed: true}, {ID: "b", Text: "Walk dog"}}}
	m, _ := newTodoModel(t, st)

	v := m.View()
	for _, want := range []string{"Todos", "☑ Buy milk", "☐ Walk dog", "2:active"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func sendCalc(t *testing.T, m CalcModel, msgs ...tea.Msg) CalcModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(CalcModel)
	}
	return m
}

func TestCalcKeyboard(t *testing.T) {
	m := NewCalc(context.Background(), model.ThemeDark, nil)
	if m.Display() != "0" {
		t.Fatalf("initial display = %q", m.Display())
	}
	m = sendCalc(t, m, runes("1"), runes("2"), runes("+"), runes("3"), enter)
	if m.Display() != "15" {
		t.Errorf("display = %q, want 15", m.Display())
	}
	m = sendCalc(t, m, runes("5"), runes("/"), runes("0"), runes("="))
	if m.Display() != "Infinity" {
		t.Errorf("display = %q, want Infinity", m.Display())
	}
	m = sendCalc(t, m, tea.KeyMsg{Type: tea.KeyDelete})
	if m.Display() != "0" {
		t.Errorf("delete should clear, got %q", m.Display())
	}
	m = sendCalc(t, m, runes("4"), runes("2"), tea.KeyMsg{Type: tea.KeyBackspace})
	if m.Display() != "4" {
		t.Errorf("backspace should drop a digit, got %q", m.Display())
	}
}

func TestCalcMouse(t *testing.T) {
	click := func(label string) tea.MouseMsg {
		for r, row := range calc.Keypad {
			for c, b := range row {
				if b.Label == label {
					return tea.MouseMsg{
						X:      originX + c*(keyWidth+keyGap) + 1,
						Y:      keypadTopY + r,
						Action: tea.MouseActionPress,
						Button: tea.MouseButtonLeft,
					}
				}
			}
		}
		t.Fatalf("no button %q", label)
		return tea.MouseMsg{}
	}

	m := NewCalc(context.Background(), model.ThemeDark, nil)
	m = sendCalc(t, m, click("9"), click("×"), click("3"), click("="))
	if m.Display() != "27" {
		t.Errorf("display = %q, want 27", m.Display())
	}

	gap := tea.MouseMsg{X: originX + keyWidth, Y: keypadTopY, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	release := click("C")
	release.Action = tea.MouseActionRelease
	m = sendCalc(t, m, gap, release)
	if m.Display() != "27" {
		t.Errorf("gaps and releases should be ignored, got %q", m.Display())
	}
}

func TestKeypadGeometryMatchesView(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	m := NewCalc(context.Background(), model.ThemeDark, nil)
	lines := strings.Split(m.View(), "\n")

	for r, row := range calc.Keypad {
		for c, b := range row {
			x := originX + c*(keyWidth+keyGap) + keyWidth/2
			y := keypadTopY + r
			line := []rune(lines[y])
			if x >= len(line) || string(line[x]) != b.Label {
				t.Errorf("button %q not drawn at (%d,%d): %q", b.Label, x, y, lines[y])
			}
			if got, ok := buttonAt(x, y); !ok || got.Label != b.Label {
				t.Errorf("buttonAt(%d,%d) = %q, %v", x, y, got.Label, ok)
			}
		}
	}
}

func TestCalcQuitAndTheme(t *testing.T) {
	prefs := &themeRecorder{}
	m := NewCalc(context.Background(), model.ThemeLight, prefs)
	m = sendCalc(t, m, runes("t"))
	if m.theme.Name != model.ThemeDark || len(prefs.saved) != 1 {
		t.Errorf("theme = %s, saved %v", m.theme.Name, prefs.saved)
	}
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Error("expected quit")
	}
}
