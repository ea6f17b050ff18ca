// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// ErrSave is wrapped by every error returned from a failed flush to disk.
var ErrSave = errors.New("save catalog")

// Store keeps the catalog in memory and rewrites the whole data file after
// every successful mutation. It is not safe for concurrent use.
type Store struct {
	fs    afero.Fs
	path  string
	books []Book
	log   zerolog.Logger
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load recovery and save tracing.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithClock overrides the clock used to stamp DateAdded.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Open creates a store over path on fsys and loads whatever is there.
// A missing or unreadable file yields an empty catalog; the failure is
// logged, never returned.
func Open(fsys afero.Fs, path string, opts ...Option) *Store {
	s := &Store{
		fs:   fsys,
		path: path,
		log:  zerolog.Nop(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load()
	return s
}

// Path returns the persistence location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() {
	s.books = nil

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug().Str("path", s.path).Msg("no catalog file, starting empty")
		} else {
			s.log.Warn().Err(err).Str("path", s.path).Msg("cannot read catalog, starting empty")
		}
		return
	}

	var books []Book
	if err := json.Unmarshal(data, &books); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("corrupt catalog, starting empty")
		return
	}
	s.books = books
	s.log.Debug().Str("path", s.path).Int("books", len(books)).Msg("catalog loaded")
}

// Save serializes the full catalog and replaces the data file. The new
// content is written to a sibling temp file first and renamed into place.
func (s *Store) Save() error {
	books := s.books
	if books == nil {
		books = []Book{}
	}
	data, err := json.MarshalIndent(books, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %w", ErrSave, err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("%w: create directory: %w", ErrSave, err)
	}

	tmp := fmt.Sprintf("%s.%s.tmp", s.path, uuid.NewString())
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrSave, tmp, err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("%w: rename: %w", ErrSave, err)
	}

	s.log.Debug().Str("path", s.path).Int("books", len(s.books)).Msg("catalog saved")
	return nil
}

// Add appends a new book and persists the catalog. Text fields are trimmed
// and DateAdded is stamped from the store clock. No validation is done here.
// A non-nil error is always a save failure; the book stays in memory.
func (s *Store) Add(title, author string, year int, genre string, read bool) (Book, error) {
	b := Book{
		Title:     strings.TrimSpace(title),
		Author:    strings.TrimSpace(author),
		Year:      year,
		Genre:     strings.TrimSpace(genre),
		Read:      read,
		DateAdded: s.now().Format(DateLayout),
	}
	s.books = append(s.books, b)

	if err := s.Save(); err != nil {
		return b, err
	}
	return b, nil
}

// Remove deletes every book whose title equals title, ignoring case, and
// reports how many were removed. The file is rewritten only when that count
// is non-zero.
func (s *Store) Remove(title string) (int, error) {
	before := len(s.books)
	s.books = slices.DeleteFunc(s.books, func(b Book) bool {
		return strings.EqualFold(b.Title, title)
	})
	removed := before - len(s.books)
	if removed == 0 {
		return 0, nil
	}

	s.log.Debug().Str("title", title).Int("removed", removed).Msg("books removed")
	if err := s.Save(); err != nil {
		return removed, err
	}
	return removed, nil
}

// Search returns books whose field contains term, ignoring case, in catalog
// order. An empty term matches every book. Unknown fields match nothing.
func (s *Store) Search(term string, field SearchField) []Book {
	var pick func(Book) string
	switch field {
	case FieldTitle:
		pick = func(b Book) string { return b.Title }
	case FieldAuthor:
		pick = func(b Book) string { return b.Author }
	default:
		return nil
	}

	needle := strings.ToLower(term)
	var out []Book
	for _, b := range s.books {
		if strings.Contains(strings.ToLower(pick(b)), needle) {
			out = append(out, b)
		}
	}
	return out
}

// List returns a copy of the catalog in insertion order.
func (s *Store) List() []Book {
	return slices.Clone(s.books)
}

// Statistics counts total and read books.
func (s *Store) Statistics() Stats {
	st := Stats{Total: len(s.books)}
	for _, b := range s.books {
		if b.Read {
			st.Read++
		}
	}
	if st.Total > 0 {
		st.ReadPercentage = float64(st.Read) / float64(st.Total) * 100
	}
	return st
}

// Duplicates groups books sharing a title (case-insensitive). Only groups
// with more than one member are returned, ordered by first appearance.
func (s *Store) Duplicates() [][]Book {
	index := make(map[string]int)
	var groups [][]Book
	for _, b := range s.books {
		key := strings.ToLower(b.Title)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], b)
	}

	return slices.DeleteFunc(groups, func(g []Book) bool {
		return len(g) < 2
	})
}

// DefaultPath returns the data file location used when none is configured.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "library_data.json"
	}
	return filepath.Join(home, ".config", "arc-bookshelf", "library_data.json")
}
