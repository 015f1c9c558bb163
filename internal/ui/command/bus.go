package command

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atomicstack/searchlist/internal/catalog"
	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates an action invocation on one item.
type Request struct {
	ID     string
	Label  string
	Action display.Action
	Value  *display.Value
}

// ActionResult reports the outcome of an item action back to the UI.
type ActionResult struct {
	Value *display.Value
	Label string
	Info  string
	Err   error
}

// Bus coordinates the execution of item actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps an item action into a Bubble Tea command while emitting trace
// logs. The item is marked pending until its ActionResult arrives; actions
// that produce no command leave it untouched.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	if req.Action == nil || req.Value == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	cmd := req.Action(req.Value)
	if cmd == nil {
		events.Command.NoOp(req.ID, req.Label)
		return nil
	}
	req.Value.Pending = true
	return func() tea.Msg {
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		result, ok := msg.(ActionResult)
		if !ok {
			result = ActionResult{Info: req.Label}
		}
		result.Value = req.Value
		if result.Label == "" {
			result.Label = req.Label
		}
		return result
	}
}

// Poster sends an action request to the service.
type Poster interface {
	Post(ctx context.Context, route string, payload interface{}) (json.RawMessage, error)
}

// Binder returns a catalog binder whose actions post {"id": <item id>} to
// the expanded action route.
func Binder(p Poster, timeout time.Duration) catalog.Binder {
	return func(def catalog.ActionDef) display.Action {
		return func(v *display.Value) tea.Cmd {
			if p == nil || v == nil || def.Route == "" {
				return nil
			}
			route := def.Expand(v)
			return func() tea.Msg {
				ctx, cancel := context.WithTimeout(context.Background(), timeout)
				defer cancel()
				_, err := p.Post(ctx, route, map[string]int{"id": v.ID})
				return ActionResult{
					Label: def.Text,
					Info:  fmt.Sprintf("%s: %s", def.Text, v.Title()),
					Err:   err,
				}
			}
		}
	}
}
