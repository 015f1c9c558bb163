package command

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/atomicstack/searchlist/internal/catalog"
	"github.com/atomicstack/searchlist/internal/display"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePoster struct {
	routes   []string
	payloads []interface{}
	err      error
}

func (f *fakePoster) Post(ctx context.Context, route string, payload interface{}) (json.RawMessage, error) {
	f.routes = append(f.routes, route)
	f.payloads = append(f.payloads, payload)
	return json.RawMessage(`{}`), f.err
}

func TestExecuteMarksPendingAndReportsResult(t *testing.T) {
	poster := &fakePoster{}
	bind := Binder(poster, time.Second)
	action := bind(catalog.ActionDef{Text: "Join", Route: "/circle/{id}/join"})
	v := display.Key{TitlePath: "name"}.Bind(display.TypeCircle, []byte(`{"circleID":4,"name":"Dawn"}`))

	cmd := New().Execute(Request{ID: "primary", Label: "Join", Action: action, Value: v})
	require.NotNil(t, cmd)
	assert.True(t, v.Pending)

	result, ok := cmd().(ActionResult)
	require.True(t, ok)
	assert.Same(t, v, result.Value)
	assert.NoError(t, result.Err)
	assert.Equal(t, "Join: Dawn", result.Info)
	assert.Equal(t, []string{"/circle/4/join"}, poster.routes)
	assert.Equal(t, map[string]int{"id": 4}, poster.payloads[0])
}

func TestExecuteSkipsUnboundActions(t *testing.T) {
	v := &display.Value{Type: display.TypeCircle, ID: 1}
	bus := New()
	assert.Nil(t, bus.Execute(Request{Value: v}))
	assert.Nil(t, bus.Execute(Request{Value: v, Action: func(*display.Value) tea.Cmd { return nil }}))
	assert.False(t, v.Pending)

	assert.Nil(t, Binder(nil, time.Second)(catalog.ActionDef{Route: "/x"})(v))
}

func TestExecuteWrapsForeignMessages(t *testing.T) {
	v := &display.Value{Type: display.TypeCircle, ID: 1}
	action := func(*display.Value) tea.Cmd {
		return func() tea.Msg { return "done" }
	}
	cmd := New().Execute(Request{Label: "Open", Action: action, Value: v})
	result, ok := cmd().(ActionResult)
	require.True(t, ok)
	assert.Equal(t, "Open", result.Label)
	assert.Same(t, v, result.Value)
}

func TestBinderPropagatesErrors(t *testing.T) {
	poster := &fakePoster{err: errors.New("denied")}
	v := &display.Value{Type: display.TypePartner, ID: 9}
	cmd := Binder(poster, time.Second)(catalog.ActionDef{Text: "Accept", Route: "/partner/{id}/accept"})(v)
	result := cmd().(ActionResult)
	assert.EqualError(t, result.Err, "denied")
}
