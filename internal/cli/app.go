package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/config"
	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

// app holds what every subcommand shares: flags, config, and the store.
type app struct {
	opts       Options
	configPath string
	backend    string
	dataDir    string
	noColor    bool
	forceColor bool

	cfg     *config.Config
	store   *store.Adapter
	watcher watcher
	logs    io.Closer
}

// watcher is implemented by backends that can report outside writes.
type watcher interface {
	Watch(ctx context.Context, key string) (<-chan struct{}, error)
}

func (a *app) open(ctx context.Context) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Override(a.backend, a.dataDir); err != nil {
		return usageError("%v", err)
	}
	a.cfg = cfg

	logPath, err := cfg.LogPath()
	if err != nil {
		logPath = ""
	}
	a.logs = config.SetupLogging(logPath)
	ui.SetColorForcing(a.forceColor, a.noColor || os.Getenv("NO_COLOR") != "")

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	if w, ok := backend.(watcher); ok {
		a.watcher = w
	}
	a.store = store.NewAdapter(backend)
	ui.SetTheme(a.theme(ctx))
	return nil
}

func (a *app) close() error {
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	if a.logs != nil {
		a.logs.Close()
		a.logs = nil
	}
	return err
}

func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	dir := cfg.DataDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	switch cfg.Backend {
	case config.BackendSQLite:
		s, err := sqlitestore.Open(ctx, filepath.Join(dir, sqlitestore.FileName))
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	default:
		s, err := jsonstore.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("open json store: %w", err)
		}
		return s, nil
	}
}

// theme is the saved theme, or the detected one when nothing is saved.
func (a *app) theme(ctx context.Context) model.Theme {
	if t, ok := a.store.LoadTheme(ctx); ok {
		return t
	}
	return ui.DetectTheme(a.cfg.Theme)
}

// collection loads the list for a one-shot command. Mutations save
// immediately; the returned tracker holds the last save error.
func (a *app) collection(ctx context.Context) (*todo.Collection, *tracker) {
	t := &tracker{Adapter: a.store}
	return todo.New(ctx, a.store.LoadTodos(ctx), todo.Options{Store: t}), t
}

// tracker remembers a failed save so one-shot commands can exit non-zero.
type tracker struct {
	*store.Adapter
	err error
}

func (t *tracker) SaveTodos(ctx context.Context, items []model.Item) error {
	if err := t.Adapter.SaveTodos(ctx, items); err != nil {
		t.err = fmt.Errorf("save: %w", err)
		return err
	}
	return nil
}

func interactive() bool {
	return ui.IsTerminal(os.Stdout) && ui.IsTerminal(os.Stdin)
}
