// Package snapshot persists the last fetched payloads of each section so a
// screen can render known data before its first poll completes.
package snapshot

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Store is a diskv-backed snapshot store. Keys are "<screen>-<section>" with
// both parts hex encoded, laid out on disk as <base>/<screen>/<section>.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates a store rooted at dir.
func Open(dir string) (*Store, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, fmt.Errorf("snapshot directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:          dir,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: dir,
	}, nil
}

// BasePath returns the directory holding the snapshots.
func (s *Store) BasePath() string {
	return s.basePath
}

// Save records the payloads of one section.
func (s *Store) Save(screen, section string, items []json.RawMessage) error {
	if items == nil {
		items = []json.RawMessage{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.d.Write(toKey(screen, section), data); err != nil {
		return fmt.Errorf("write snapshot %s/%s: %w", screen, section, err)
	}
	return nil
}

// Load returns the stored payloads of one section. The boolean is false when
// nothing was stored.
func (s *Store) Load(screen, section string) ([]json.RawMessage, bool, error) {
	key := toKey(screen, section)
	if !s.d.Has(key) {
		return nil, false, nil
	}
	data, err := s.d.Read(key)
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot %s/%s: %w", screen, section, err)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s/%s: %w", screen, section, err)
	}
	return items, true, nil
}

// Sections lists the sections stored for screen.
func (s *Store) Sections(ctx context.Context, screen string) []string {
	prefix := hex.EncodeToString([]byte(screen)) + "-"
	var out []string
	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		_, section, ok := fromKey(key)
		if ok {
			out = append(out, section)
		}
	}
	return out
}

// Clear erases every snapshot of screen.
func (s *Store) Clear(ctx context.Context, screen string) error {
	prefix := hex.EncodeToString([]byte(screen)) + "-"
	var keys []string
	for key := range s.d.KeysPrefix(prefix, ctx.Done()) {
		keys = append(keys, key)
	}
	for _, key := range keys {
		if err := s.d.Erase(key); err != nil {
			return err
		}
	}
	return nil
}

func toKey(screen, section string) string {
	return hex.EncodeToString([]byte(screen)) + "-" + hex.EncodeToString([]byte(section))
}

func fromKey(key string) (string, string, bool) {
	left, right, ok := strings.Cut(key, "-")
	if !ok {
		return "", "", false
	}
	screen, err := hex.DecodeString(left)
	if err != nil {
		return "", "", false
	}
	section, err := hex.DecodeString(right)
	if err != nil {
		return "", "", false
	}
	return string(screen), string(section), true
}

func keyToPathTransform(s string) *diskv.PathKey {
	left, right, _ := strings.Cut(s, "-")
	return &diskv.PathKey{
		Path:     []string{left},
		FileName: right,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, ""), pathKey.FileName)
}
