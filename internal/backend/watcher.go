package backend

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Feed names one section whose list route is polled.
type Feed struct {
	Section string
	Route   string
}

// Event conveys updated section data or an error from a feed poll.
type Event struct {
	Section string
	Data    []json.RawMessage
	Err     error
}

// Lister fetches the contents of a list route.
type Lister interface {
	List(ctx context.Context, route string) ([]json.RawMessage, error)
}

// Watcher polls every feed at a fixed interval and publishes events.
type Watcher struct {
	lister   Lister
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

const minPollSpacing = 250 * time.Millisecond

// NewWatcher starts one poller per feed. Feeds without a route are ignored.
func NewWatcher(lister Lister, feeds []Feed, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		lister:   lister,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	for _, feed := range feeds {
		if feed.Route == "" {
			continue
		}
		w.startPoller(feed)
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of feed events. It is closed once every poller
// has exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startPoller(feed Feed) {
	throttle := newThrottle(minPollSpacing)
	w.wg.Add(1)
	go w.poll(feed.Section, func(ctx context.Context) ([]json.RawMessage, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		return w.lister.List(ctx, feed.Route)
	})
}

func (w *Watcher) poll(section string, fetch func(context.Context) ([]json.RawMessage, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		evt := Event{Section: section, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}
	if w.interval <= 0 {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
