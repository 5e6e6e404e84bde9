// Package store is the persistence boundary between the todo collection and
// a key-value backend.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Makepad-fr/tada/internal/model"
)

// ErrNotFound is returned by backends for keys that were never set.
var ErrNotFound = errors.New("key not found")

const (
	// TodosKey holds the JSON array of items.
	TodosKey = "todos.json"
	// ThemeKey holds the display theme name.
	ThemeKey = "theme"
)

// Backend is a string key-value store.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Adapter encodes todos and preferences onto a Backend. Read problems fall
// back to defaults and write problems are returned; both are logged.
type Adapter struct {
	backend Backend
}

func NewAdapter(b Backend) *Adapter {
	return &Adapter{backend: b}
}

func (a *Adapter) Backend() Backend { return a.backend }

func (a *Adapter) Close() error { return a.backend.Close() }

// LoadTodos returns the stored list, or an empty one if the key is missing or
// does not decode.
func (a *Adapter) LoadTodos(ctx context.Context) []model.Item {
	raw, err := a.backend.Get(ctx, TodosKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("store: load todos: %v", err)
		}
		return []model.Item{}
	}
	items, err := DecodeTodos([]byte(raw))
	if err != nil {
		log.Printf("store: decode todos: %v", err)
		return []model.Item{}
	}
	return items
}

func (a *Adapter) SaveTodos(ctx context.Context, items []model.Item) error {
	b, err := EncodeTodos(items)
	if err != nil {
		log.Printf("store: save todos: %v", err)
		return err
	}
	if err := a.backend.Set(ctx, TodosKey, string(b)); err != nil {
		err = fmt.Errorf("save todos: %w", err)
		log.Printf("store: %v", err)
		return err
	}
	return nil
}

// LoadTheme reports the stored theme, if a valid one is stored.
func (a *Adapter) LoadTheme(ctx context.Context) (model.Theme, bool) {
	raw, err := a.backend.Get(ctx, ThemeKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("store: load theme: %v", err)
		}
		return "", false
	}
	t, err := model.ParseTheme(raw)
	if err != nil {
		log.Printf("store: %v", err)
		return "", false
	}
	return t, true
}

func (a *Adapter) SaveTheme(ctx context.Context, t model.Theme) error {
	if err := a.backend.Set(ctx, ThemeKey, string(t)); err != nil {
		err = fmt.Errorf("save theme: %w", err)
		log.Printf("store: %v", err)
		return err
	}
	return nil
}

// EncodeTodos renders items as an indented JSON array. Nil encodes as [].
func EncodeTodos(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

func DecodeTodos(b []byte) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}
