package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Makepad-fr/tada/internal/calc"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/tui"
	"github.com/Makepad-fr/tada/internal/ui"
)

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or set the color theme",
		Args:  between(0, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cur := a.theme(ctx)
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cur)
				return nil
			}
			next := cur.Toggle()
			if args[0] != "toggle" {
				t, err := model.ParseTheme(args[0])
				if err != nil {
					return usageError("theme: %v", err)
				}
				next = t
			}
			if err := a.store.SaveTheme(ctx, next); err != nil {
				return fmt.Errorf("save theme: %w", err)
			}
			ui.SetTheme(next)
			ui.OK(cmd.OutOrStdout(), "theme "+string(next))
			return nil
		},
	}
}

func newCalcCmd(a *app) *cobra.Command {
	var keys string
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Run the calculator",
		Long: `Run the calculator. On a terminal it opens the keypad; with --keys it
feeds the sequence and prints the display. Named keys go in braces, e.g.
"12+3=" or "9{backspace}{enter}".`,
		Args: between(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("keys") {
				var shown string
				c := calc.New(calc.DisplayFunc(func(s string) { shown = s }))
				for _, k := range calc.Keys(keys) {
					if !c.Press(k) {
						return usageError("calc: unknown key %q", k)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), shown)
				return nil
			}
			if !interactive() {
				return usageError("calc: not a terminal; pass --keys")
			}
			shown, err := tui.RunCalc(cmd.Context(), tui.CalcOptions{Theme: a.theme(cmd.Context()), Prefs: a.store})
			if err != nil {
				return err
			}
			if shown != "" {
				fmt.Fprintln(cmd.OutOrStdout(), shown)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&keys, "keys", "k", "", "key sequence to press instead of opening the keypad")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		filter model.Filter
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print todos as JSON or YAML",
		Args:  between(0, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _ := a.collection(cmd.Context())
			var items []model.Item
			for _, it := range c.Items() {
				if filter.Match(it) {
					items = append(items, it)
				}
			}

			var (
				out []byte
				err error
			)
			switch strings.ToLower(format) {
			case "json":
				out, err = store.EncodeTodos(items)
				out = append(out, '\n')
			case "yaml", "yml":
				if items == nil {
					items = []model.Item{}
				}
				out, err = yaml.Marshal(items)
			default:
				return usageError("export: unknown format %q (json, yaml)", format)
			}
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "json or yaml")
	addFilterFlag(cmd.Flags(), &filter)
	return cmd
}
