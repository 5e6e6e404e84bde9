package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// RunTodo starts the todo manager. Changes are saved as they happen, so
// quitting needs no final write.
func RunTodo(ctx context.Context, opts TodoOptions) error {
	p := tea.NewProgram(NewTodo(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// RunCalc starts the calculator with mouse support for the keypad.
func RunCalc(ctx context.Context, opts CalcOptions) (string, error) {
	p := tea.NewProgram(NewCalc(ctx, opts.Theme, opts.Prefs),
		tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	if m, ok := final.(CalcModel); ok {
		return m.Display(), nil
	}
	return "", nil
}
