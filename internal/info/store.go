package info

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the data file when no explicit path is configured.
const FileName = "info_list.json"

// FormatError reports a data file that exists but is not a JSON array of
// {title, content} objects.
type FormatError struct {
	Path string
	Err  error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed info list %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// Store manages the JSON info list file. It does no locking: every call reads
// the file, and writes replace it in full.
type Store struct {
	path string
}

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// record mirrors Item with pointer fields so missing keys can be told apart
// from empty strings.
type record struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// Load returns every stored item. A missing file is an empty list.
func (s *Store) Load() ([]Item, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []Item{}, nil
		}
		return nil, fmt.Errorf("reading info list: %w", err)
	}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, &FormatError{Path: s.path, Err: errors.New("expected a JSON array, got null")}
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &FormatError{Path: s.path, Err: err}
	}

	items := make([]Item, 0, len(records))
	for i, r := range records {
		if r.Title == nil || r.Content == nil {
			return nil, &FormatError{
				Path: s.path,
				Err:  fmt.Errorf("entry %d: title and content are required", i),
			}
		}
		items = append(items, Item{Title: *r.Title, Content: *r.Content})
	}
	return items, nil
}

// Add appends item and rewrites the file. It does not check for duplicates.
func (s *Store) Add(item Item) error {
	items, err := s.Load()
	if err != nil {
		return err
	}
	items = append(items, item)
	return s.save(items)
}

// Remove drops every item whose title equals item.Title. Unknown titles are a
// no-op.
func (s *Store) Remove(item Item) error {
	items, err := s.Load()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.Title != item.Title {
			kept = append(kept, it)
		}
	}
	return s.save(kept)
}

func (s *Store) save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(items, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling info list: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}
	return os.WriteFile(s.path, data, 0o644)
}
