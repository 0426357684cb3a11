// Package catalog keeps the list of known books and the reading progress of
// each one between sessions.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kk-code-lab/rbook/internal/book"
	"github.com/kk-code-lab/rbook/internal/reader"
)

var (
	ErrNotFound  = errors.New("book not in catalog")
	ErrDuplicate = errors.New("book already in catalog")
)

// Entry is a catalogued book together with its progress record.
type Entry struct {
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Path            string    `json:"path"`
	FileSize        int64     `json:"filesize"`
	Progress        int64     `json:"progress"`
	ProgressPercent float64   `json:"progress_percent"`
	Available       bool      `json:"file_available"`
	LastRead        time.Time `json:"last_read,omitzero"`
}

// Store persists catalog entries. Entries are keyed by absolute path and
// listed in insertion order.
type Store interface {
	List() ([]Entry, error)
	Get(path string) (Entry, error)
	Add(entry Entry) error
	Update(entry Entry) error
	Remove(path string) error
	SaveProgress(path string, offset, size int64, percent float64) error
	Close() error
}

// Open returns the store for driver ("json" or "sqlite") at path.
func Open(driver, path string) (Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	switch driver {
	case "json", "":
		return OpenJSON(path)
	case "sqlite":
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", driver)
	}
}

// Resolve finds an entry by its 1-based position in List or by file path.
func Resolve(store Store, ref string) (Entry, error) {
	if idx, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		entries, err := store.List()
		if err != nil {
			return Entry{}, err
		}
		if idx < 1 || idx > len(entries) {
			return Entry{}, fmt.Errorf("no book #%d (catalog has %d): %w", idx, len(entries), ErrNotFound)
		}
		return entries[idx-1], nil
	}
	abs, err := filepath.Abs(ref)
	if err != nil {
		return Entry{}, err
	}
	return store.Get(abs)
}

// Refresh re-stats every catalogued file and records its size and
// availability. The refreshed entries are returned in list order.
func Refresh(store Store) ([]Entry, error) {
	entries, err := store.List()
	if err != nil {
		return nil, err
	}
	for i := range entries {
		e := &entries[i]
		info, statErr := os.Stat(e.Path)
		available := statErr == nil && !info.IsDir()
		size := e.FileSize
		if available {
			size = info.Size()
		}
		if available == e.Available && size == e.FileSize {
			continue
		}
		e.Available = available
		e.FileSize = size
		if err := store.Update(*e); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// Seed points the entry's progress at percent of the file, snapped forward
// to a character boundary. When no boundary exists the entry restarts at the
// beginning and book.ErrBoundaryNotFound is returned alongside the change.
func Seed(e *Entry, percent float64) error {
	cursor, err := book.Open(e.Path)
	if err != nil {
		return err
	}
	defer cursor.Close()

	percent = book.ClampPercent(percent)
	offset, err := book.ResolvePercent(cursor, cursor.Size(), percent)
	e.FileSize = cursor.Size()
	e.Available = true
	if errors.Is(err, book.ErrBoundaryNotFound) {
		e.Progress = 0
		e.ProgressPercent = 0
		return err
	}
	if err != nil {
		return err
	}
	e.Progress = offset
	e.ProgressPercent = percent
	return nil
}

// ProgressSink adapts a store to the reading session's progress reports.
func ProgressSink(store Store) reader.ProgressSink {
	return sink{store: store}
}

type sink struct {
	store Store
}

func (s sink) SaveProgress(p reader.Progress) error {
	return s.store.SaveProgress(p.Path, p.Offset, p.Size, p.Percent)
}
