package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/searchlist/internal/backend"
	"github.com/atomicstack/searchlist/internal/display"
	"github.com/atomicstack/searchlist/internal/search"
	"github.com/atomicstack/searchlist/internal/state"
	"github.com/atomicstack/searchlist/internal/ui/command"
	uistate "github.com/atomicstack/searchlist/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeSearcher struct {
	routes  []string
	queries []backend.Query
	respond func(q backend.Query) (backend.Result, error)
}

func (f *fakeSearcher) Search(_ context.Context, route string, q backend.Query) (backend.Result, error) {
	f.routes = append(f.routes, route)
	f.queries = append(f.queries, q)
	if f.respond == nil {
		return backend.Result{Empty: true}, nil
	}
	return f.respond(q)
}

func raw(s string) json.RawMessage {
	return json.RawMessage(s)
}

func leaveAction(v *display.Value) tea.Cmd {
	return func() tea.Msg {
		return command.ActionResult{Info: "Left " + v.Title()}
	}
}

func circleKeys() []display.Key {
	return []display.Key{
		{
			Title:        "My Circles",
			Type:         display.TypeCircle,
			SearchType:   display.SearchCircle,
			SearchFilter: "joined",
			Route:        "/circle/search",
			TitlePath:    "name",
			DetailPath:   "description",
			Primary:      display.Binding{Text: "Leave", Action: leaveAction},
		},
		{
			Title:      "Suggested",
			Type:       display.TypeCircle,
			SearchType: display.SearchCircle,
			Route:      "/circle/search",
			TitlePath:  "name",
		},
	}
}

func isBig(item *display.Value, f uistate.Filter) bool {
	return f.Option == "Big" && item.Field("memberCount").Int() >= 10
}

func newTestModel(t *testing.T, searcher search.Searcher) *Model {
	t.Helper()
	store := state.NewSectionStore()
	store.SetItems("My Circles", []json.RawMessage{
		raw(`{"circleID":1,"name":"Morning Prayer","description":"Daily at seven","memberCount":3}`),
		raw(`{"circleID":4,"name":"Bible Study","memberCount":12}`),
	})
	store.SetItems("Suggested", []json.RawMessage{
		raw(`{"circleID":2,"name":"Evening Vespers","memberCount":1}`),
		raw(`{"circleID":3,"name":"Youth Group","memberCount":30}`),
	})
	return NewModel(Config{
		Screen: "circles",
		Title:  "Circles",
		Keys:   circleKeys(),
		Options: uistate.Options{
			DefaultTitle:  "My Circles",
			FilterOptions: []string{"Big"},
			Predicate:     isBig,
			MultiList:     true,
		},
		Searcher: searcher,
		Debounce: time.Millisecond,
		Sections: store,
		Width:    100,
		Height:   20,
		Verbose:  true,
	})
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd executes cmd and any batched commands, returning the produced messages.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func quits(cmd tea.Cmd) bool {
	for _, msg := range runCmd(cmd) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestViewShowsDefaultSectionWithTabs(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	view := h.View()
	for _, want := range []string{"Circles", "Morning Prayer", "3 members", "[Leave]", "Bible Study", "My Circles", "Suggested", "Default"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Evening Vespers") {
		t.Fatalf("expected other sections to be hidden, got:\n%s", view)
	}
}

func TestTabCyclesSections(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	h.Send(key(tea.KeyTab))
	if got := h.Model().List().Selected.Title; got != "Suggested" {
		t.Fatalf("expected Suggested after tab, got %q", got)
	}
	if view := h.View(); !strings.Contains(view, "Evening Vespers") || strings.Contains(view, "Morning Prayer") {
		t.Fatalf("unexpected view after tab:\n%s", view)
	}

	h.Send(key(tea.KeyTab))
	if !h.Model().List().Aggregate() {
		t.Fatalf("expected aggregate view after wrapping")
	}
	view := h.View()
	for _, want := range []string{"Morning Prayer", "Evening Vespers"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected aggregate view to contain %q, got:\n%s", want, view)
		}
	}

	h.Send(key(tea.KeyShiftTab))
	if got := h.Model().List().Selected.Title; got != "Suggested" {
		t.Fatalf("expected shift+tab to go back to Suggested, got %q", got)
	}
}

func TestTypingDispatchesSearch(t *testing.T) {
	searcher := &fakeSearcher{respond: func(q backend.Query) (backend.Result, error) {
		return backend.Result{Items: []json.RawMessage{raw(`{"circleID":2,"name":"Evening Vespers","memberCount":1}`)}}, nil
	}}
	h := NewHarness(newTestModel(t, searcher))
	h.Send(runes("ves"))

	if len(searcher.queries) != 1 {
		t.Fatalf("expected one search, got %d", len(searcher.queries))
	}
	q := searcher.queries[0]
	if q.Term != "ves" || q.Filter != "joined" || q.IgnoreCache {
		t.Fatalf("unexpected query %+v", q)
	}
	if searcher.routes[0] != "/circle/search" {
		t.Fatalf("unexpected route %q", searcher.routes[0])
	}
	view := h.View()
	if !strings.Contains(view, "Evening Vespers") || strings.Contains(view, "Morning Prayer") {
		t.Fatalf("expected search results only, got:\n%s", view)
	}
	if !strings.Contains(view, `search "ves"`) {
		t.Fatalf("expected search badge in header, got:\n%s", view)
	}
	if !strings.Contains(view, "» ves") {
		t.Fatalf("expected prompt to show the query, got:\n%s", view)
	}
}

func TestDebounceDispatchesLatestInputOnly(t *testing.T) {
	searcher := &fakeSearcher{}
	m := newTestModel(t, searcher)
	_, first := m.Update(runes("a"))
	_, second := m.Update(runes("b"))

	for _, msg := range runCmd(first) {
		_, cmd := m.Update(msg)
		if cmd != nil {
			t.Fatalf("expected superseded debounce to be ignored")
		}
	}
	if len(searcher.queries) != 0 {
		t.Fatalf("expected no search yet, got %d", len(searcher.queries))
	}
	for _, msg := range runCmd(second) {
		_, cmd := m.Update(msg)
		for _, res := range runCmd(cmd) {
			m.Update(res)
		}
	}
	if len(searcher.queries) != 1 || searcher.queries[0].Term != "ab" {
		t.Fatalf("expected a single search for %q, got %+v", "ab", searcher.queries)
	}
}

func TestEmptySearchOffersReset(t *testing.T) {
	searcher := &fakeSearcher{}
	h := NewHarness(newTestModel(t, searcher))
	h.Send(runes("zzz"))

	view := h.View()
	if !strings.Contains(view, noResultsText) {
		t.Fatalf("expected empty state, got:\n%s", view)
	}
	if !strings.Contains(view, `No matches for "zzz"`) {
		t.Fatalf("expected notice, got:\n%s", view)
	}

	h.Send(runes("z"))
	if len(searcher.queries) != 1 {
		t.Fatalf("expected refinement of an empty search to be skipped, got %d searches", len(searcher.queries))
	}
	if view := h.View(); !strings.Contains(view, uistate.ErrFutileRefinement.Error()) {
		t.Fatalf("expected refinement notice, got:\n%s", view)
	}

	h.Send(key(tea.KeyCtrlR))
	if h.Model().List().Searching() {
		t.Fatalf("expected reset to end the search")
	}
	if view := h.View(); !strings.Contains(view, "Morning Prayer") {
		t.Fatalf("expected section items after reset, got:\n%s", view)
	}

	h.Send(runes("zzz"))
	if len(searcher.queries) != 2 {
		t.Fatalf("expected search after reset, got %d", len(searcher.queries))
	}
	if !searcher.queries[1].IgnoreCache {
		t.Fatalf("expected the first search after reset to bypass the cache")
	}
}

func TestSearchFailureKeepsItems(t *testing.T) {
	searcher := &fakeSearcher{respond: func(backend.Query) (backend.Result, error) {
		return backend.Result{}, &backend.ResponseError{Status: 503, Notification: "Server is busy"}
	}}
	h := NewHarness(newTestModel(t, searcher))
	h.Send(runes("ves"))

	view := h.View()
	if !strings.Contains(view, "Error: Server is busy") {
		t.Fatalf("expected error line, got:\n%s", view)
	}
	if !strings.Contains(view, "Morning Prayer") {
		t.Fatalf("expected items to survive a failed search, got:\n%s", view)
	}
	if h.Model().List().Searching() {
		t.Fatalf("expected failed search to leave no active term")
	}
}

func TestFilterPickerAppliesAndClears(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	h.Send(key(tea.KeyCtrlF))
	if view := h.View(); !strings.Contains(view, "Choose filter") || !strings.Contains(view, "Big") {
		t.Fatalf("expected filter picker, got:\n%s", view)
	}
	h.Send(runes("bi"))
	h.Send(key(tea.KeyEnter))

	list := h.Model().List()
	if list.Applied == nil || list.Applied.Option != "Big" {
		t.Fatalf("expected Big filter, got %+v", list.Applied)
	}
	view := h.View()
	if !strings.Contains(view, "[Big]") || !strings.Contains(view, "Bible Study") || strings.Contains(view, "Morning Prayer") {
		t.Fatalf("unexpected filtered view:\n%s", view)
	}

	h.Send(key(tea.KeyCtrlX))
	if list.Applied != nil {
		t.Fatalf("expected filter cleared")
	}
	if view := h.View(); !strings.Contains(view, "Morning Prayer") {
		t.Fatalf("expected unfiltered items, got:\n%s", view)
	}
}

func TestSectionPickerSelectsByFuzzyMatch(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	h.Send(key(tea.KeyCtrlS))
	if h.Model().mode != ModeSectionPicker {
		t.Fatalf("expected section picker mode")
	}
	h.Send(runes("sugg"))
	h.Send(key(tea.KeyEnter))
	if h.Model().mode != ModeList {
		t.Fatalf("expected picker to close")
	}
	if got := h.Model().List().Selected.Title; got != "Suggested" {
		t.Fatalf("expected Suggested, got %q", got)
	}
}

func TestPickerEscapeKeepsSelection(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	h.Send(key(tea.KeyCtrlS))
	h.Send(key(tea.KeyDown))
	h.Send(key(tea.KeyEsc))
	if h.Model().picker != nil {
		t.Fatalf("expected picker closed")
	}
	if got := h.Model().List().Selected.Title; got != "My Circles" {
		t.Fatalf("expected selection unchanged, got %q", got)
	}
}

func TestPrimaryActionMarksItemPending(t *testing.T) {
	m := newTestModel(t, &fakeSearcher{})
	item := m.List().Current()
	_, cmd := m.Update(key(tea.KeyCtrlP))
	if !item.Pending {
		t.Fatalf("expected item to be pending")
	}
	if view := m.View(); !strings.Contains(view, pendingMarker) {
		t.Fatalf("expected pending marker, got:\n%s", view)
	}
	for _, msg := range runCmd(cmd) {
		m.Update(msg)
	}
	if item.Pending {
		t.Fatalf("expected pending state cleared")
	}
	if view := m.View(); !strings.Contains(view, "Left Morning Prayer") {
		t.Fatalf("expected action info, got:\n%s", view)
	}
}

func TestActionFailureShowsError(t *testing.T) {
	m := newTestModel(t, &fakeSearcher{})
	item := m.List().Current()
	item.Pending = true
	m.Update(command.ActionResult{Value: item, Err: errors.New("circle is full")})
	if item.Pending {
		t.Fatalf("expected pending state cleared")
	}
	if view := m.View(); !strings.Contains(view, "Error: circle is full") {
		t.Fatalf("expected error line, got:\n%s", view)
	}
}

func TestMissingBindingShowsInfo(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	h.Send(key(tea.KeyCtrlO))
	if view := h.View(); !strings.Contains(view, "No alternative action for Morning Prayer") {
		t.Fatalf("expected info, got:\n%s", view)
	}
}

func TestEnterShowsDetailWhenUnbound(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	h.Send(key(tea.KeyEnter))
	if view := h.View(); !strings.Contains(view, "Morning Prayer: Daily at seven") {
		t.Fatalf("expected detail info, got:\n%s", view)
	}
}

func TestBackendEventRefreshesAndKeepsPending(t *testing.T) {
	m := newTestModel(t, &fakeSearcher{})
	h := NewHarness(m)
	item := m.List().Current()
	item.Pending = true

	h.Send(backendEventMsg{event: backend.Event{Section: "My Circles", Data: []json.RawMessage{
		raw(`{"circleID":1,"name":"Morning Prayer Group","memberCount":4}`),
		raw(`{"circleID":5,"name":"Choir","memberCount":8}`),
	}}})

	list := h.Model().List()
	if len(list.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(list.Items))
	}
	if list.Items[0] != item || !item.Pending {
		t.Fatalf("expected the on-screen value to be reused with its pending state")
	}
	view := h.View()
	if !strings.Contains(view, "Morning Prayer Group") || !strings.Contains(view, "Choir") || strings.Contains(view, "Bible Study") {
		t.Fatalf("unexpected view after feed update:\n%s", view)
	}
}

func TestBackendErrorShowsWarning(t *testing.T) {
	h := NewHarness(newTestModel(t, &fakeSearcher{}))
	h.Send(backendEventMsg{event: backend.Event{Section: "Suggested", Err: errors.New("connection refused")}})
	if view := h.View(); !strings.Contains(view, "Feed error: Suggested: connection refused") {
		t.Fatalf("expected feed warning, got:\n%s", view)
	}
	h.Send(backendEventMsg{event: backend.Event{Section: "Suggested", Data: []json.RawMessage{raw(`{"circleID":2,"name":"Evening Vespers"}`)}}})
	if view := h.View(); strings.Contains(view, "Feed error") {
		t.Fatalf("expected warning cleared, got:\n%s", view)
	}
}

func TestEscapeClearsSearchThenQuits(t *testing.T) {
	searcher := &fakeSearcher{respond: func(backend.Query) (backend.Result, error) {
		return backend.Result{Items: []json.RawMessage{raw(`{"circleID":3,"name":"Youth Group"}`)}}, nil
	}}
	h := NewHarness(newTestModel(t, searcher))
	h.Send(runes("youth"))
	if !h.Model().List().Searching() {
		t.Fatalf("expected active search")
	}

	_, cmd := h.Model().Update(key(tea.KeyEsc))
	if quits(cmd) {
		t.Fatalf("expected first escape to clear the search, not quit")
	}
	if h.Model().List().Searching() || h.Model().query.Text != "" {
		t.Fatalf("expected search cleared")
	}
	if view := h.View(); !strings.Contains(view, "Morning Prayer") {
		t.Fatalf("expected section items again, got:\n%s", view)
	}

	_, cmd = h.Model().Update(key(tea.KeyEsc))
	if !quits(cmd) {
		t.Fatalf("expected second escape to quit")
	}
}

func TestSearchOnAggregateIsRejected(t *testing.T) {
	searcher := &fakeSearcher{}
	h := NewHarness(newTestModel(t, searcher))
	h.Send(key(tea.KeyCtrlS))
	h.Send(runes("default"))
	h.Send(key(tea.KeyEnter))
	if !h.Model().List().Aggregate() {
		t.Fatalf("expected aggregate view")
	}
	h.Send(runes("ves"))
	if len(searcher.queries) != 0 {
		t.Fatalf("expected no search on the aggregate view")
	}
	if view := h.View(); !strings.Contains(view, uistate.ErrSearchDisabled.Error()) {
		t.Fatalf("expected rejection notice, got:\n%s", view)
	}
}

func TestViewportFollowsCursor(t *testing.T) {
	store := state.NewSectionStore()
	items := make([]json.RawMessage, 0, 30)
	for i := 1; i <= 30; i++ {
		items = append(items, raw(fmt.Sprintf(`{"circleID":%d,"name":"Circle %d"}`, i, i)))
	}
	store.SetItems("Suggested", items)
	keys := circleKeys()[1:]
	m := NewModel(Config{Title: "Circles", Keys: keys, Sections: store, Searcher: &fakeSearcher{}, Width: 60, Height: 8})
	h := NewHarness(m)
	h.Send(key(tea.KeyEnd))
	view := h.View()
	if !strings.Contains(view, "Circle 30") || strings.Contains(view, "▌ Circle 2\n") {
		t.Fatalf("expected viewport at the end, got:\n%s", view)
	}
	if lines := strings.Count(view, "\n") + 1; lines > 8 {
		t.Fatalf("expected at most 8 lines, got %d", lines)
	}
}
