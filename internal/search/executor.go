// Package search drives remote search for a list: it debounces keystrokes,
// dispatches requests off the event loop and feeds responses back into the
// list state.
package search

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/logging/events"
	uistate "github.com/atomicstack/searchlist/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultDebounce = 1500 * time.Millisecond
	DefaultTimeout  = 15 * time.Second
)

// Notifier surfaces transient notices and request failures to the user.
type Notifier interface {
	Notice(msg string)
	Failure(err error)
}

// Searcher runs one remote search.
type Searcher interface {
	Search(ctx context.Context, route string, q backend.Query) (backend.Result, error)
}

// DebounceMsg fires once input has paused. Only the message carrying the
// latest version dispatches.
type DebounceMsg struct {
	Version int
	Term    string
}

// ResultMsg carries a completed request back to the event loop.
type ResultMsg struct {
	Request uistate.Request
	Result  backend.Result
	Err     error
}

type Options struct {
	Debounce time.Duration
	Timeout  time.Duration
}

// Executor owns the debounce state of one list. Like the list itself it is
// only touched from the event loop.
type Executor struct {
	searcher Searcher
	debounce time.Duration
	timeout  time.Duration
	version  int
}

func New(searcher Searcher, opts Options) *Executor {
	e := &Executor{searcher: searcher, debounce: opts.Debounce, timeout: opts.Timeout}
	if e.debounce <= 0 {
		e.debounce = DefaultDebounce
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	return e
}

// Version returns the current input version.
func (e *Executor) Version() int {
	return e.version
}

// Cancel drops any pending debounced dispatch.
func (e *Executor) Cancel() {
	e.version++
}

// Input records the search box contents after a keystroke. Every call
// supersedes the previous one; the returned command fires a DebounceMsg once
// the debounce interval has passed. Clearing the box ends the search.
func (e *Executor) Input(l *uistate.List, term string, n Notifier) tea.Cmd {
	e.version++
	events.Search.Input(l.Selected.Title, term, e.version)
	if strings.TrimSpace(term) == "" {
		l.ClearSearch()
		return nil
	}
	if err := l.CheckSearch(term); err != nil {
		events.Search.Reject(l.Selected.Title, term, err.Error())
		n.Notice(err.Error())
		return nil
	}
	version := e.version
	return tea.Tick(e.debounce, func(time.Time) tea.Msg {
		return DebounceMsg{Version: version, Term: term}
	})
}

// HandleDebounce dispatches the search when msg is still current.
func (e *Executor) HandleDebounce(l *uistate.List, msg DebounceMsg, n Notifier) tea.Cmd {
	if msg.Version != e.version {
		return nil
	}
	req, err := l.BeginSearch(msg.Term)
	if err != nil {
		n.Notice(err.Error())
		return nil
	}
	return e.dispatch(req)
}

func (e *Executor) dispatch(req uistate.Request) tea.Cmd {
	searcher := e.searcher
	timeout := e.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := searcher.Search(ctx, req.Key.Route, backend.Query{
			Term:        req.Term,
			Filter:      req.Filter,
			IgnoreCache: req.IgnoreCache,
		})
		return ResultMsg{Request: req, Result: res, Err: err}
	}
}

// HandleResult applies a response. It reports whether the list changed.
func (e *Executor) HandleResult(l *uistate.List, msg ResultMsg, n Notifier) bool {
	switch {
	case msg.Err != nil:
		if l.ApplyFailure(msg.Request, msg.Err) {
			n.Failure(fmt.Errorf("search %q: %w", msg.Request.Term, msg.Err))
		}
		return false
	case msg.Result.Empty:
		if !l.ApplyEmpty(msg.Request) {
			return false
		}
		n.Notice(fmt.Sprintf("No matches for %q", msg.Request.Term))
		return true
	default:
		return l.ApplyResults(msg.Request, msg.Result.Items)
	}
}
