package ui

import (
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/ids"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
)

// RowLine renders one row as "☐ text". Same row, same bytes.
func RowLine(th Theme, r todo.Row) string {
	if r.Completed {
		return th.Success.Render(th.BoxChecked) + " " + th.Done.Render(r.Text)
	}
	return th.Muted.Render(th.BoxUnchecked) + " " + r.Text
}

// PlainRows renders rows for non-interactive output, numbered by their
// position in the full list so the numbers work as references. With group
// set, pending rows come before completed ones.
func PlainRows(th Theme, items []model.Item, rows []todo.Row, group bool) []string {
	pos := make(map[model.ID]int, len(items))
	for i, it := range items {
		pos[it.ID] = i + 1
	}
	line := func(r todo.Row) string {
		return fmt.Sprintf("%3d. %s  %s", pos[r.ID], RowLine(th, r), th.Muted.Render(ids.Short(string(r.ID))))
	}

	if !group {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, line(r))
		}
		return out
	}

	var pending, done []string
	for _, r := range rows {
		if r.Completed {
			done = append(done, line(r))
		} else {
			pending = append(pending, line(r))
		}
	}
	var out []string
	if len(pending) > 0 {
		out = append(out, th.Pending.Render("Pending"))
		out = append(out, pending...)
	}
	if len(done) > 0 {
		out = append(out, th.Success.Render("Done"))
		out = append(out, done...)
	}
	return out
}

// Header is the title line with live counts.
func Header(th Theme, done, pending int, filter model.Filter) string {
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d   %s",
		th.Title.Render("Todos"),
		th.Success.Render(th.SymDone), done,
		th.Pending.Render(th.SymPending), pending,
		th.Accent.Render("Total"), done+pending,
		FilterTabs(th, filter),
	)
}

// FilterTabs shows the filters with the active one highlighted.
func FilterTabs(th Theme, active model.Filter) string {
	parts := make([]string, len(model.Filters))
	for i, f := range model.Filters {
		label := fmt.Sprintf("%d:%s", i+1, f)
		if f == active {
			parts[i] = th.Selected.Render(label)
		} else {
			parts[i] = th.Muted.Render(label)
		}
	}
	return strings.Join(parts, " ")
}
