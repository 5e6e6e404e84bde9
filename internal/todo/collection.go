// Package todo owns the ordered todo collection. Every mutation persists the
// full list and then re-renders it, in that order, before returning.
package todo

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Makepad-fr/tada/internal/ids"
	"github.com/Makepad-fr/tada/internal/model"
)

var (
	ErrNoMatch   = errors.New("no matching todo")
	ErrAmbiguous = errors.New("ambiguous todo reference")
)

// Store is the persistence boundary. Load never fails; it falls back to an
// empty list.
type Store interface {
	LoadTodos(ctx context.Context) []model.Item
	SaveTodos(ctx context.Context, items []model.Item) error
}

// Sink receives the rows to display after every change.
type Sink interface {
	Render(rows []Row, filter model.Filter)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(rows []Row, filter model.Filter)

func (f SinkFunc) Render(rows []Row, filter model.Filter) { f(rows, filter) }

type Options struct {
	// Store persists the list. Nil keeps it in memory only.
	Store Store
	// Sink is rendered to after every change. Nil renders nowhere.
	Sink   Sink
	Filter model.Filter
	NewID  func() string
	Now    func() time.Time
}

// Patch lists the fields Update merges into an item. Nil fields are kept.
type Patch struct {
	Text      *string
	Completed *bool
}

// Collection is driven from a single input loop and is not safe for
// concurrent use.
type Collection struct {
	ctx    context.Context
	items  []model.Item
	filter model.Filter
	store  Store
	sink   Sink
	newID  func() string
	now    func() time.Time
}

// New wraps items without persisting them. Items with an id already seen are
// dropped.
func New(ctx context.Context, items []model.Item, opts Options) *Collection {
	c := &Collection{
		ctx:    ctx,
		filter: opts.Filter,
		store:  opts.Store,
		sink:   opts.Sink,
		newID:  opts.NewID,
		now:    opts.Now,
	}
	if c.filter == "" {
		c.filter = model.FilterAll
	}
	if c.newID == nil {
		c.newID = ids.New
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.items = dedupe(items)
	return c
}

// Open loads the collection from opts.Store and renders it once.
func Open(ctx context.Context, opts Options) *Collection {
	var items []model.Item
	if opts.Store != nil {
		items = opts.Store.LoadTodos(ctx)
	}
	c := New(ctx, items, opts)
	c.render()
	return c
}

func dedupe(items []model.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	seen := make(map[model.ID]bool, len(items))
	for _, it := range items {
		if seen[it.ID] {
			log.Printf("todo: dropping duplicate id %q (%q)", it.ID, it.Text)
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}

// Items returns a copy of the full list in order.
func (c *Collection) Items() []model.Item { return slices.Clone(c.items) }

func (c *Collection) Len() int { return len(c.items) }

func (c *Collection) Filter() model.Filter { return c.filter }

// Rows renders the current list through the current filter.
func (c *Collection) Rows() []Row { return Render(c.items, c.filter) }

func (c *Collection) Get(id model.ID) (model.Item, bool) {
	i := c.index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return c.items[i], true
}

// Stats counts completed and pending items.
func (c *Collection) Stats() (done, pending int) {
	for _, it := range c.items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}

// Add appends a new pending item. Blank text is ignored.
func (c *Collection) Add(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	id := model.ID(c.newID())
	for c.index(id) >= 0 {
		id = model.ID(c.newID())
	}
	it := model.Item{ID: id, Text: text, CreatedAt: c.now().UTC()}
	c.items = append(c.items, it)
	c.commit()
	return it, true
}

// Update merges p into the item with the given id. A blank text is ignored so
// that no item ends up without text.
func (c *Collection) Update(id model.ID, p Patch) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	it := c.items[i]
	if p.Text != nil {
		if t := strings.TrimSpace(*p.Text); t != "" {
			it.Text = t
		}
	}
	if p.Completed != nil {
		it.Completed = *p.Completed
	}
	c.items[i] = it
	c.commit()
	return true
}

// Edit replaces the text of an item.
func (c *Collection) Edit(id model.ID, text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return c.Update(id, Patch{Text: &text})
}

func (c *Collection) Remove(id model.ID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items = slices.Delete(c.items, i, i+1)
	c.commit()
	return true
}

func (c *Collection) Toggle(id model.ID) bool {
	i := c.index(id)
	if i < 0 {
		return false
	}
	c.items[i].Completed = !c.items[i].Completed
	c.commit()
	return true
}

// Reorder moves dragged so that it sits immediately before target.
func (c *Collection) Reorder(dragged, target model.ID) bool {
	if dragged == target {
		return false
	}
	from, to := c.index(dragged), c.index(target)
	if from < 0 || to < 0 {
		return false
	}
	it := c.items[from]
	c.items = slices.Delete(c.items, from, from+1)
	if from < to {
		to--
	}
	c.items = slices.Insert(c.items, to, it)
	c.commit()
	return true
}

// ClearCompleted removes every completed item and reports how many went.
// Like every mutation it persists and renders, even when nothing was removed.
func (c *Collection) ClearCompleted() int {
	before := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(it model.Item) bool { return it.Completed })
	c.commit()
	return before - len(c.items)
}

// SetFilter changes what is rendered. The list itself is not touched.
func (c *Collection) SetFilter(f model.Filter) {
	c.filter = f
	c.render()
}

// Reload replaces the list with what the store holds now.
func (c *Collection) Reload() {
	if c.store == nil {
		return
	}
	c.items = dedupe(c.store.LoadTodos(c.ctx))
	c.render()
}

// Resolve turns a user reference into an id: a 1-based position in the full
// list, an exact id, or a unique id prefix.
func (c *Collection) Resolve(ref string) (model.ID, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", ErrNoMatch
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.items) {
		return c.items[n-1].ID, nil
	}
	if c.index(model.ID(ref)) >= 0 {
		return model.ID(ref), nil
	}
	var found []model.ID
	lower := strings.ToLower(ref)
	for _, it := range c.items {
		if strings.HasPrefix(strings.ToLower(string(it.ID)), lower) {
			found = append(found, it.ID)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNoMatch, ref)
	case 1:
		return found[0], nil
	}
	return "", fmt.Errorf("%w: %s matches %d todos", ErrAmbiguous, ref, len(found))
}

func (c *Collection) index(id model.ID) int {
	return slices.IndexFunc(c.items, func(it model.Item) bool { return it.ID == id })
}

// commit persists then renders. A failed save is logged by the store and the
// in-memory list stays authoritative.
func (c *Collection) commit() {
	if c.store != nil {
		_ = c.store.SaveTodos(c.ctx, slices.Clone(c.items))
	}
	c.render()
}

func (c *Collection) render() {
	if c.sink != nil {
		c.sink.Render(c.Rows(), c.filter)
	}
}
