package app

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/catalog"
	"github.com/atomicstack/searchlist/internal/snapshot"
	"github.com/atomicstack/searchlist/internal/state"
	"github.com/atomicstack/searchlist/internal/testutil"
	"github.com/atomicstack/searchlist/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	posted []string
}

func (f *fakeService) Search(context.Context, string, backend.Query) (backend.Result, error) {
	return backend.Result{Empty: true}, nil
}

func (f *fakeService) Post(_ context.Context, route string, _ interface{}) (json.RawMessage, error) {
	f.posted = append(f.posted, route)
	return json.RawMessage(`{}`), nil
}

func circlesScreen(t *testing.T) catalog.Screen {
	t.Helper()
	cat, err := catalog.Load("")
	require.NoError(t, err)
	screen, err := cat.Screen("circles")
	require.NoError(t, err)
	return screen
}

func TestRestoreSnapshotsSeedsSections(t *testing.T) {
	screen := circlesScreen(t)
	store, err := snapshot.Open(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Save("circles", "My Circles", []json.RawMessage{json.RawMessage(`{"circleID":1,"name":"Morning Prayer"}`)}))
	require.NoError(t, store.Save("circles", "Retired", []json.RawMessage{json.RawMessage(`{"circleID":9}`)}))
	require.NoError(t, store.Save("feed", "Announcements", []json.RawMessage{json.RawMessage(`{"announcementID":3}`)}))

	sections := state.NewSectionStore()
	restoreSnapshots(store, screen, sections)

	assert.Len(t, sections.Items("My Circles"), 1)
	assert.Empty(t, sections.Items("Retired"))
	assert.Empty(t, sections.Items("Announcements"))
}

func TestNewModelBindsCatalogActions(t *testing.T) {
	screen := circlesScreen(t)
	sections := state.NewSectionStore()
	sections.SetItems("My Circles", []json.RawMessage{json.RawMessage(`{"circleID":1,"name":"Morning Prayer"}`)})
	svc := &fakeService{}

	model := NewModel(Config{Width: 80, Height: 20}, screen, svc, sections, nil, nil)
	h := ui.NewHarness(model)

	view := h.View()
	assert.True(t, strings.Contains(view, "Morning Prayer"), view)
	assert.True(t, strings.Contains(view, "[Leave]"), view)
	assert.Equal(t, "My Circles", model.List().Selected.Title)

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, []string{"/circle/1/leave"}, svc.posted)
	assert.False(t, model.List().Current().Pending)
}

func TestScreenAgainstFakeService(t *testing.T) {
	srv := testutil.StartServer(t)
	srv.SetList("/circle/joined", `{"circleID":1,"name":"Morning Prayer","memberCount":4}`)
	srv.SetList("/circle/suggested", `{"circleID":2,"name":"Evening Vespers"}`)
	srv.SetSearch("/circle/search", func(q url.Values) (int, []string) {
		if q.Get("search") == "grace" {
			return 200, []string{`{"circleID":7,"name":"Grace Fellowship","memberCount":11}`}
		}
		return 0, nil
	})

	client, err := backend.NewClient(srv.URL, "tok", backend.ClientOptions{Timeout: time.Second})
	require.NoError(t, err)
	screen := circlesScreen(t)
	sections := state.NewSectionStore()
	store, err := snapshot.Open(t.TempDir())
	require.NoError(t, err)
	watcher := backend.NewWatcher(client, screen.Feeds(), 0)
	t.Cleanup(watcher.Stop)

	cfg := Config{Debounce: time.Millisecond, Timeout: time.Second, Width: 100, Height: 20}
	model := NewModel(cfg, screen, client, sections, store, watcher)
	h := ui.NewHarness(model)
	assert.Contains(t, h.View(), "Loading")

	h.AwaitBackend()
	assert.Contains(t, h.View(), "Morning Prayer")
	assert.Contains(t, h.View(), "4 members")
	saved, ok, err := store.Load("circles", "Suggested")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, saved, 1)

	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("grace")})
	require.Len(t, srv.Searches(), 1)
	assert.Equal(t, "joined", srv.Searches()[0].Get("filter"))
	assert.Contains(t, h.View(), "Grace Fellowship")
	assert.NotContains(t, h.View(), "Morning Prayer")

	h.Send(tea.KeyMsg{Type: tea.KeyCtrlP})
	posts := srv.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "/circle/7/leave", posts[0].Route)
}
