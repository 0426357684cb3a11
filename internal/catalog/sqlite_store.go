package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS books (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	path TEXT NOT NULL UNIQUE,
	title TEXT NOT NULL DEFAULT '',
	author TEXT NOT NULL DEFAULT '',
	filesize INTEGER NOT NULL DEFAULT 0,
	progress INTEGER NOT NULL DEFAULT 0,
	progress_percent REAL NOT NULL DEFAULT 0,
	file_available INTEGER NOT NULL DEFAULT 1,
	last_read INTEGER NOT NULL DEFAULT 0
);
`

const selectColumns = `title, author, path, filesize, progress, progress_percent, file_available, last_read`

// SQLiteStore keeps the catalog in a SQLite database, one row per book.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create books table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) List() ([]Entry, error) {
	rows, err := s.db.Query(`SELECT ` + selectColumns + ` FROM books ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Get(path string) (Entry, error) {
	row := s.db.QueryRow(`SELECT `+selectColumns+` FROM books WHERE path = ?`, path)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return e, err
}

func (s *SQLiteStore) Add(entry Entry) error {
	_, err := s.db.Exec(`
	INSERT INTO books(path, title, author, filesize, progress, progress_percent, file_available, last_read)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Path, entry.Title, entry.Author, entry.FileSize, entry.Progress,
		entry.ProgressPercent, entry.Available, unixOrZero(entry.LastRead))
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		return fmt.Errorf("%s: %w", entry.Path, ErrDuplicate)
	}
	return err
}

func (s *SQLiteStore) Update(entry Entry) error {
	res, err := s.db.Exec(`
	UPDATE books SET title = ?, author = ?, filesize = ?, progress = ?,
		progress_percent = ?, file_available = ?, last_read = ?
	WHERE path = ?`,
		entry.Title, entry.Author, entry.FileSize, entry.Progress,
		entry.ProgressPercent, entry.Available, unixOrZero(entry.LastRead), entry.Path)
	return affected(res, err, entry.Path)
}

func (s *SQLiteStore) Remove(path string) error {
	res, err := s.db.Exec(`DELETE FROM books WHERE path = ?`, path)
	return affected(res, err, path)
}

func (s *SQLiteStore) SaveProgress(path string, offset, size int64, percent float64) error {
	res, err := s.db.Exec(`
	UPDATE books SET progress = ?, filesize = ?, progress_percent = ?, file_available = 1, last_read = ?
	WHERE path = ?`, offset, size, percent, time.Now().Unix(), path)
	return affected(res, err, path)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		e        Entry
		lastRead int64
	)
	if err := row.Scan(&e.Title, &e.Author, &e.Path, &e.FileSize, &e.Progress,
		&e.ProgressPercent, &e.Available, &lastRead); err != nil {
		return Entry{}, err
	}
	if lastRead > 0 {
		e.LastRead = time.Unix(lastRead, 0).UTC()
	}
	return e, nil
}

func affected(res sql.Result, err error, path string) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return nil
}

func unixOrZero(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
