package backend

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLister struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeLister) List(ctx context.Context, route string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[route]++
	if route == "/broken" {
		return nil, errors.New("boom")
	}
	return []json.RawMessage{json.RawMessage(`{"circleID":1}`)}, nil
}

func TestWatcherEmitsOneEventPerFeed(t *testing.T) {
	lister := &fakeLister{}
	w := NewWatcher(lister, []Feed{
		{Section: "Joined", Route: "/joined"},
		{Section: "Broken", Route: "/broken"},
		{Section: "Static"},
	}, 0)

	seen := map[string]Event{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case evt, ok := <-w.Events():
			require.True(t, ok, "events closed early")
			seen[evt.Section] = evt
		case <-timeout:
			t.Fatal("timed out waiting for events")
		}
	}
	w.Stop()
	w.Wait()

	assert.NoError(t, seen["Joined"].Err)
	assert.Len(t, seen["Joined"].Data, 1)
	assert.Error(t, seen["Broken"].Err)
	assert.NotContains(t, seen, "Static")

	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestThrottleHonoursContext(t *testing.T) {
	th := newThrottle(time.Hour)
	require.NoError(t, th.wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, th.wait(ctx))

	var none *throttle
	assert.NoError(t, none.wait(ctx))
	assert.NoError(t, newThrottle(0).wait(ctx))
}
