package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

type catalogFile struct {
	Books []Entry `json:"books"`
}

// JSONStore keeps the whole catalog in one JSON document. Every mutation
// rewrites the file through a temporary file and a rename.
type JSONStore struct {
	path  string
	mu    sync.Mutex
	books []Entry
}

// OpenJSON loads the catalog at path. A missing file is an empty catalog.
func OpenJSON(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	var doc catalogFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	s.books = doc.Books
	return s, nil
}

func (s *JSONStore) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.books), nil
}

func (s *JSONStore) Get(path string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(path)
	if i < 0 {
		return Entry{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return s.books[i], nil
}

func (s *JSONStore) Add(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index(entry.Path) >= 0 {
		return fmt.Errorf("%s: %w", entry.Path, ErrDuplicate)
	}
	return s.commit(append(slices.Clone(s.books), entry))
}

func (s *JSONStore) Update(entry Entry) error {
	return s.modify(entry.Path, func(e *Entry) { *e = entry })
}

func (s *JSONStore) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(path)
	if i < 0 {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return s.commit(slices.Delete(slices.Clone(s.books), i, i+1))
}

func (s *JSONStore) SaveProgress(path string, offset, size int64, percent float64) error {
	return s.modify(path, func(e *Entry) {
		e.Progress = offset
		e.FileSize = size
		e.ProgressPercent = percent
		e.Available = true
		e.LastRead = time.Now().UTC()
	})
}

func (s *JSONStore) Close() error { return nil }

func (s *JSONStore) modify(path string, fn func(*Entry)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(path)
	if i < 0 {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	books := slices.Clone(s.books)
	fn(&books[i])
	return s.commit(books)
}

func (s *JSONStore) index(path string) int {
	return slices.IndexFunc(s.books, func(e Entry) bool { return e.Path == path })
}

// commit writes books to disk and only then swaps them in memory.
func (s *JSONStore) commit(books []Entry) error {
	if books == nil {
		books = []Entry{}
	}
	data, err := json.MarshalIndent(catalogFile{Books: books}, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".catalog-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	s.books = books
	return nil
}
