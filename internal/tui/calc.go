package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Makepad-fr/tada/internal/calc"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/ui"
)

// Keypad geometry. The panel border and padding put content at column 2,
// row 1; the display and a blank line sit above the keys.
const (
	keyWidth   = 5
	keyGap     = 1
	originX    = 2
	keypadTopY = 3
	gridWidth  = 4*keyWidth + 3*keyGap
)

// screen is the calculator's display sink.
type screen struct{ text string }

func (s *screen) Show(text string) { s.text = text }

// CalcOptions configures the calculator.
type CalcOptions struct {
	Theme model.Theme
	Prefs ThemeSaver
}

// CalcModel is the interactive calculator.
type CalcModel struct {
	ctx     context.Context
	calc    *calc.Calculator
	screen  *screen
	theme   ui.Theme
	prefs   ThemeSaver
	keys    calcKeyMap
	pressed string
}

func NewCalc(ctx context.Context, theme model.Theme, prefs ThemeSaver) CalcModel {
	s := &screen{}
	return CalcModel{
		ctx:    ctx,
		calc:   calc.New(s),
		screen: s,
		theme:  ui.For(theme),
		prefs:  prefs,
		keys:   defaultCalcKeys(),
	}
}

// Display is the text currently shown.
func (m CalcModel) Display() string { return m.screen.text }

func (m CalcModel) Init() tea.Cmd { return nil }

func (m CalcModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Theme):
			next := m.theme.Name.Toggle()
			m.theme = ui.For(next)
			if m.prefs != nil {
				_ = m.prefs.SaveTheme(m.ctx, next)
			}
			return m, nil
		}
		if m.calc.Press(msg.String()) {
			m.pressed = labelForKey(msg.String())
		}
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if b, ok := buttonAt(msg.X, msg.Y); ok {
			m.calc.Click(b)
			m.pressed = b.Label
		}
	}
	return m, nil
}

// buttonAt maps a screen cell to the keypad button drawn there.
func buttonAt(x, y int) (calc.Button, bool) {
	r := y - keypadTopY
	cx := x - originX
	if r < 0 || r >= len(calc.Keypad) || cx < 0 {
		return calc.Button{}, false
	}
	c := cx / (keyWidth + keyGap)
	if cx%(keyWidth+keyGap) >= keyWidth || c >= len(calc.Keypad[r]) {
		return calc.Button{}, false
	}
	return calc.Keypad[r][c], true
}

// labelForKey finds the keypad label a keyboard key corresponds to.
func labelForKey(k string) string {
	for _, row := range calc.Keypad {
		for _, b := range row {
			switch {
			case b.Action == calc.ActionClear && (k == "c" || k == "C" || k == "delete"),
				b.Action == calc.ActionBackspace && k == "backspace",
				b.Action == calc.ActionEquals && (k == "enter" || k == "="),
				b.Value != "" && b.Value == k:
				return b.Label
			}
		}
	}
	return ""
}

func (m CalcModel) View() string {
	th := m.theme
	text := m.screen.text
	if limit := gridWidth - 2; len(text) > limit {
		text = "…" + text[len(text)-limit+1:]
	}
	lines := []string{
		th.Display.Width(gridWidth).Align(lipgloss.Right).Render(text),
		"",
	}
	for _, row := range calc.Keypad {
		cells := make([]string, len(row))
		for i, b := range row {
			st := th.Key
			if b.Action == calc.ActionOperator || b.Action == calc.ActionEquals {
				st = th.KeyOp
			}
			if b.Label == m.pressed {
				st = th.KeyPressed
			}
			cells[i] = st.Width(keyWidth).Align(lipgloss.Center).Render(b.Label)
		}
		lines = append(lines, strings.Join(cells, strings.Repeat(" ", keyGap)))
	}
	lines = append(lines, "", th.Help.Render("keys or mouse · c clear · t theme · q quit"))
	return ui.Panel(th, strings.Join(lines, "\n"))
}
