package state

import (
	"bytes"
	"encoding/json"
	"sync"
)

// SectionStore keeps the latest raw payloads fetched for each section.
type SectionStore interface {
	Items(section string) []json.RawMessage
	// SetItems replaces a section's payloads and reports whether they differ
	// from what was stored.
	SetItems(section string, items []json.RawMessage) bool
	Sections() []string
}

type sectionStore struct {
	mu    sync.RWMutex
	order []string
	items map[string][]json.RawMessage
}

func NewSectionStore() SectionStore {
	return &sectionStore{items: make(map[string][]json.RawMessage)}
}

func (s *sectionStore) Items(section string) []json.RawMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneItems(s.items[section])
}

func (s *sectionStore) SetItems(section string, items []json.RawMessage) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, known := s.items[section]
	if !known {
		s.order = append(s.order, section)
	}
	if known && equalItems(prev, items) {
		return false
	}
	s.items[section] = cloneItems(items)
	return true
}

func (s *sectionStore) Sections() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.order...)
}

func equalItems(a, b []json.RawMessage) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !bytes.Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func cloneItems(items []json.RawMessage) []json.RawMessage {
	if items == nil {
		return nil
	}
	dup := make([]json.RawMessage, len(items))
	for i, item := range items {
		dup[i] = append(json.RawMessage(nil), item...)
	}
	return dup
}
