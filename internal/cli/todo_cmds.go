package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

// resolve maps a user reference to an id with a usage error on miss.
func resolve(c *todo.Collection, ref string) (model.ID, error) {
	id, err := c.Resolve(ref)
	switch {
	case errors.Is(err, todo.ErrNoMatch):
		return "", usageError("no todo matches %q (run `tada ls` to see valid numbers)", ref)
	case errors.Is(err, todo.ErrAmbiguous):
		return "", usageError("%q matches more than one todo; use more of the id", ref)
	case err != nil:
		return "", err
	}
	return id, nil
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a todo",
		Args:  between(1, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, t := a.collection(cmd.Context())
			text := strings.Join(args, " ")
			if _, ok := c.Add(text); !ok {
				return usageError("add: empty text")
			}
			if t.err != nil {
				return t.err
			}
			ui.OK(cmd.OutOrStdout(), "added")
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	var (
		plain  bool
		filter model.Filter
	)
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List todos (interactive on a terminal)",
		Args:    between(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !plain && interactive() {
				return a.runTodo(cmd.Context(), filter)
			}
			c, _ := a.collection(cmd.Context())
			c.SetFilter(filter)
			printList(cmd.OutOrStdout(), c, a.opts.Group)
			return nil
		},
	}
	cmd.Flags().BoolVar(&plain, "plain", false, "print rows instead of starting the interactive list")
	addFilterFlag(cmd.Flags(), &filter)
	return cmd
}

func (a *app) runTodo(ctx context.Context, f model.Filter) error {
	var changes <-chan struct{}
	if a.watcher != nil {
		ch, err := a.watcher.Watch(ctx, store.TodosKey)
		if err == nil {
			changes = ch
		}
	}
	return tui.RunTodo(ctx, tui.TodoOptions{
		Store:   a.store,
		Prefs:   a.store,
		Theme:   a.theme(ctx),
		Filter:  f,
		Changes: changes,
	})
}

func printList(w io.Writer, c *todo.Collection, group bool) {
	th := ui.Current()
	if c.Len() == 0 {
		ui.Hint(w, "No todos yet. Add one with: tada add \"Buy milk\"")
		return
	}
	done, pending := c.Stats()
	fmt.Fprintln(w, ui.Header(th, done, pending, c.Filter()))
	for _, line := range ui.PlainRows(th, c.Items(), c.Rows(), group) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w, th.Muted.Render(ui.ProgressBar(done, done+pending, 20)))
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "done <ref>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a todo's completed state",
		Args:    between(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, t := a.collection(cmd.Context())
			id, err := resolve(c, args[0])
			if err != nil {
				return err
			}
			c.Toggle(id)
			if t.err != nil {
				return t.err
			}
			it, _ := c.Get(id)
			if it.Completed {
				ui.OK(cmd.OutOrStdout(), "completed")
			} else {
				ui.OK(cmd.OutOrStdout(), "reopened")
			}
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <ref> <text...>",
		Short: "Replace a todo's text",
		Args:  between(2, -1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, t := a.collection(cmd.Context())
			id, err := resolve(c, args[0])
			if err != nil {
				return err
			}
			if !c.Edit(id, strings.Join(args[1:], " ")) {
				return usageError("edit: empty text")
			}
			if t.err != nil {
				return t.err
			}
			ui.OK(cmd.OutOrStdout(), "edited")
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <ref>",
		Aliases: []string{"remove"},
		Short:   "Remove a todo",
		Args:    between(1, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, t := a.collection(cmd.Context())
			id, err := resolve(c, args[0])
			if err != nil {
				return err
			}
			c.Remove(id)
			if t.err != nil {
				return t.err
			}
			ui.OK(cmd.OutOrStdout(), "removed")
			return nil
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mv <ref> <before-ref>",
		Short: "Move a todo to just before another",
		Args:  between(2, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, t := a.collection(cmd.Context())
			dragged, err := resolve(c, args[0])
			if err != nil {
				return err
			}
			target, err := resolve(c, args[1])
			if err != nil {
				return err
			}
			if !c.Reorder(dragged, target) {
				ui.Hint(cmd.OutOrStdout(), "nothing to move")
				return nil
			}
			if t.err != nil {
				return t.err
			}
			ui.OK(cmd.OutOrStdout(), "moved")
			return nil
		},
	}
}

func newClearCmd(a *app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed todo",
		Args:  between(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, t := a.collection(cmd.Context())
			done, _ := c.Stats()
			if done == 0 {
				ui.Hint(cmd.OutOrStdout(), "nothing to clear")
				return nil
			}
			if !yes && interactive() {
				if !confirm(fmt.Sprintf("Remove %d completed todo(s)?", done)) {
					ui.Hint(cmd.OutOrStdout(), "kept")
					return nil
				}
			}
			n := c.ClearCompleted()
			if t.err != nil {
				return t.err
			}
			ui.OK(cmd.OutOrStdout(), fmt.Sprintf("cleared %d", n))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question. An aborted prompt counts as no.
func confirm(title string) bool {
	var ok bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Value(&ok).
			Affirmative("Remove").
			Negative("Keep"),
	)).
		WithTheme(huh.ThemeBase16()).
		WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false
	}
	return ok
}
