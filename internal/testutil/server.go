// Package testutil provides a fake list service for integration tests.
package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
)

// SearchFunc answers one search. Returning nil items with status 0 sends the
// empty signal (205).
type SearchFunc func(query url.Values) (status int, items []string)

// Post records an action request received by the server.
type Post struct {
	Route string
	Body  string
}

// Server is an httptest server speaking the list service protocol: GET list
// routes return JSON arrays, search routes are answered by a SearchFunc and
// POSTs are recorded.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	lists    map[string][]string
	searches map[string]SearchFunc
	queries  []url.Values
	posts    []Post
}

// StartServer boots a fake service that is closed when the test ends.
func StartServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{
		lists:    make(map[string][]string),
		searches: make(map[string]SearchFunc),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetList sets the payloads returned by a list route.
func (s *Server) SetList(route string, items ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[route] = items
}

// SetSearch installs the handler of a search route.
func (s *Server) SetSearch(route string, fn SearchFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches[route] = fn
}

// Posts returns the action requests received so far.
func (s *Server) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Post(nil), s.posts...)
}

// Searches returns the query parameters of every search received so far.
func (s *Server) Searches() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.queries...)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Path
	query := r.URL.Query()

	s.mu.Lock()
	items, isList := s.lists[route]
	search, isSearch := s.searches[route]
	s.mu.Unlock()

	switch {
	case r.Method == http.MethodPost:
		body, _ := io.ReadAll(r.Body)
		s.mu.Lock()
		s.posts = append(s.posts, Post{Route: route, Body: string(body)})
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, `{"status":200}`)
	case isSearch && query.Has("search"):
		s.mu.Lock()
		s.queries = append(s.queries, query)
		s.mu.Unlock()
		status, results := search(query)
		switch {
		case status == 0 && results == nil:
			w.WriteHeader(http.StatusResetContent)
		case status >= http.StatusMultipleChoices:
			writeJSON(w, status, fmt.Sprintf(`{"status":%d,"notification":"Search is unavailable"}`, status))
		default:
			writeJSON(w, http.StatusOK, array(results))
		}
	case isList:
		writeJSON(w, http.StatusOK, array(items))
	default:
		writeJSON(w, http.StatusNotFound, `{"status":404,"message":"no such route"}`)
	}
}

func array(items []string) string {
	return "[" + strings.Join(items, ",") + "]"
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
