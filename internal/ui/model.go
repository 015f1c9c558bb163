package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/data/dispatcher"
	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging"
	"github.com/atomicstack/searchlist/internal/search"
	"github.com/atomicstack/searchlist/internal/state"
	"github.com/atomicstack/searchlist/internal/theme"
	"github.com/atomicstack/searchlist/internal/ui/command"
	uistate "github.com/atomicstack/searchlist/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type Mode int

const (
	ModeList Mode = iota
	ModeSectionPicker
	ModeFilterPicker
)

const headerSeparator = " → "

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Config wires a Model to its screen definition and collaborators.
type Config struct {
	Screen   string
	Title    string
	Keys     []display.Key
	Options  uistate.Options
	Searcher search.Searcher
	Debounce time.Duration
	Timeout  time.Duration

	Watcher   *backend.Watcher
	Sections  state.SectionStore
	Snapshots dispatcher.Saver

	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
}

// Model implements the Bubble Tea model for one list screen.
type Model struct {
	list     *uistate.List
	executor *search.Executor
	query    uistate.Query
	picker   *picker

	title  string
	screen string
	keys   []display.Key

	errMsg      string
	infoMsg     string
	infoExpire  time.Time
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	verbose     bool

	backend      *backend.Watcher
	backendState map[string]error
	sections     state.SectionStore
	dispatcher   *dispatcher.Dispatcher

	filterCursor      cursor.Model
	filterCursorDirty bool
	cursorFocused     bool

	handlers map[reflect.Type]msgHandler

	bus  *command.Bus
	mode Mode
}

// NewModel initialises the UI state from cfg.
func NewModel(cfg Config) *Model {
	sections := cfg.Sections
	if sections == nil {
		sections = state.NewSectionStore()
	}
	m := &Model{
		title:        cfg.Title,
		screen:       cfg.Screen,
		keys:         append([]display.Key(nil), cfg.Keys...),
		executor:     search.New(cfg.Searcher, search.Options{Debounce: cfg.Debounce, Timeout: cfg.Timeout}),
		backend:      cfg.Watcher,
		backendState: map[string]error{},
		sections:     sections,
		dispatcher:   dispatcher.New(cfg.Screen, sections, cfg.Snapshots),
		showFooter:   cfg.ShowFooter,
		verbose:      cfg.Verbose,
		bus:          command.New(),
		mode:         ModeList,
	}
	m.list = uistate.NewList(m.buildDisplayMap(), cfg.Options)
	if cfg.Width > 0 {
		m.width = cfg.Width
		m.fixedWidth = true
	}
	if cfg.Height > 0 {
		m.height = cfg.Height
		m.fixedHeight = true
	}
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.syncViewport()
	m.registerHandlers()
	return m
}

// List exposes the list state driven by the model.
func (m *Model) List() *uistate.List {
	return m.list
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	m.cursorFocused = true
	if cmd := m.filterCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):           m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):    m.handleWindowSizeMsg,
		reflect.TypeOf(search.DebounceMsg{}):   m.handleDebounceMsg,
		reflect.TypeOf(search.ResultMsg{}):     m.handleSearchResultMsg,
		reflect.TypeOf(command.ActionResult{}): m.handleActionResultMsg,
		reflect.TypeOf(backendEventMsg{}):      m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):       m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if m.cursorFocused {
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// buildDisplayMap binds the stored payloads of every section. Values already
// on screen are reused by identity so in-flight action state survives a
// refresh.
func (m *Model) buildDisplayMap() display.Map {
	var known map[string]*display.Value
	if m.list != nil {
		known = uistate.AssembleCache(m.list.DisplayMap())
	}
	out := make(display.Map, 0, len(m.keys))
	for _, key := range m.keys {
		raw := m.sections.Items(key.Title)
		items := make([]*display.Value, 0, len(raw))
		for _, payload := range raw {
			if id := key.Identify(key.Type, payload); id > 0 {
				if existing, ok := known[display.IdentityOf(key.Type, id)]; ok {
					existing.Payload = payload
					items = append(items, existing)
					continue
				}
			}
			items = append(items, key.Bind(key.Type, payload))
		}
		out = append(out, display.Section{Key: key, Items: items})
	}
	return out
}

// Notice implements search.Notifier.
func (m *Model) Notice(msg string) {
	m.setInfo(msg)
}

// Failure implements search.Notifier.
func (m *Model) Failure(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	m.errMsg = backend.Notification(err)
	m.forceClearInfo()
}
