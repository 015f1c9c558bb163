package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/catalog"
	"github.com/atomicstack/searchlist/internal/data/dispatcher"
	"github.com/atomicstack/searchlist/internal/logging"
	"github.com/atomicstack/searchlist/internal/logging/events"
	"github.com/atomicstack/searchlist/internal/search"
	"github.com/atomicstack/searchlist/internal/snapshot"
	"github.com/atomicstack/searchlist/internal/state"
	"github.com/atomicstack/searchlist/internal/ui"
	"github.com/atomicstack/searchlist/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Server      string
	Token       string
	UserID      int
	CatalogPath string
	Screen      string
	SnapshotDir string
	Debounce    time.Duration
	Poll        time.Duration
	Timeout     time.Duration
	Width       int
	Height      int
	ShowFooter  bool
	Verbose     bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	screen, err := cat.Screen(cfg.Screen)
	if err != nil {
		return err
	}
	client, err := backend.NewClient(cfg.Server, cfg.Token, backend.ClientOptions{Timeout: cfg.Timeout})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	sections := state.NewSectionStore()
	var saver dispatcher.Saver
	if cfg.SnapshotDir != "" {
		store, err := snapshot.Open(cfg.SnapshotDir)
		if err != nil {
			logging.Error(fmt.Errorf("open snapshots: %w", err))
		} else {
			restoreSnapshots(store, screen, sections)
			saver = store
		}
	}

	watcher := backend.NewWatcher(client, screen.Feeds(), cfg.Poll)
	defer watcher.Stop()

	model := NewModel(cfg, screen, client, sections, saver, watcher)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// Service is the remote API used by a screen: searches and item actions.
type Service interface {
	search.Searcher
	command.Poster
}

// NewModel builds the UI model of screen. watcher and saver may be nil.
func NewModel(cfg Config, screen catalog.Screen, svc Service, sections state.SectionStore, saver dispatcher.Saver, watcher *backend.Watcher) *ui.Model {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = search.DefaultTimeout
	}
	keys := screen.Keys(command.Binder(svc, timeout))
	events.App.Screen(screen.Name, len(keys))
	return ui.NewModel(ui.Config{
		Screen:     screen.Name,
		Title:      screen.Heading(),
		Keys:       keys,
		Options:    screen.Options(cfg.UserID),
		Searcher:   svc,
		Debounce:   cfg.Debounce,
		Timeout:    timeout,
		Watcher:    watcher,
		Sections:   sections,
		Snapshots:  saver,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
}

// restoreSnapshots seeds the section store with the last saved payloads so
// the screen has content before the first poll completes.
func restoreSnapshots(store *snapshot.Store, screen catalog.Screen, sections state.SectionStore) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	known := make(map[string]bool)
	for _, title := range store.Sections(ctx, screen.Name) {
		known[title] = true
	}
	for _, section := range screen.Sections {
		if !known[section.Title] {
			continue
		}
		items, ok, err := store.Load(screen.Name, section.Title)
		if err != nil {
			logging.Error(err)
			continue
		}
		if ok {
			sections.SetItems(section.Title, items)
		}
	}
}
