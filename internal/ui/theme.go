package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/Makepad-fr/tada/internal/model"
)

// Theme bundles palette + symbols.
// CLI printers pull from `current`; TUI models carry their own copy.
type Theme struct {
	Name model.Theme

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help, Dragging                lipgloss.Style
	Border                                        lipgloss.Color

	Display, Key, KeyOp, KeyPressed lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

var current = For(model.ThemeDark)

// For builds the styles for a theme name. Unknown names get the dark theme.
func For(name model.Theme) Theme {
	base := Theme{
		Name:         name,
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
	}
	switch name {
	case model.ThemeLight:
		base.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("25"))
		base.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		base.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
		base.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true)
		base.Dragging = lipgloss.NewStyle().Foreground(lipgloss.Color("127")).Bold(true)
		base.Border = lipgloss.Color("245")
		base.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
		base.Display = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("254")).Bold(true).Padding(0, 1)
		base.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("252"))
		base.KeyOp = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25"))
		base.KeyPressed = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("127"))
	default:
		base.Name = model.ThemeDark
		base.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		base.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		base.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		base.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		base.Dragging = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
		base.Border = lipgloss.Color("8")
		base.Help = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
		base.Display = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("236")).Bold(true).Padding(0, 1)
		base.Key = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("238"))
		base.KeyOp = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214"))
		base.KeyPressed = lipgloss.NewStyle().Foreground(lipgloss.Color("16")).Background(lipgloss.Color("42"))
	}
	return base
}

func SetTheme(name model.Theme) { current = For(name) }

// Current is the theme CLI output uses.
func Current() Theme { return current }

// DetectTheme picks the theme for a terminal with nothing saved: the
// configured name if valid, otherwise whatever matches the background.
func DetectTheme(configured string) model.Theme {
	if t, err := model.ParseTheme(configured); err == nil {
		return t
	}
	if termenv.HasDarkBackground() {
		return model.ThemeDark
	}
	return model.ThemeLight
}

// SetColorForcing overrides terminal color detection.
func SetColorForcing(force, disable bool) {
	switch {
	case disable:
		lipgloss.SetColorProfile(termenv.Ascii)
	case force:
		lipgloss.SetColorProfile(termenv.ANSI256)
	}
}
