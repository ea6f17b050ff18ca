// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

const dataFile = "/books/library_data.json"

type harness struct {
	cfg   *config.Config
	fsys  afero.Fs
	store *library.Store
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fsys := afero.NewMemMapFs()
	return &harness{
		cfg:   &config.Config{DataFile: dataFile, Storage: config.StorageMemory, LogLevel: "warn"},
		fsys:  fsys,
		store: library.Open(fsys, dataFile),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(h.cfg, h.fsys, h.store)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func (h *harness) seed(t *testing.T) {
	t.Helper()
	h.mustRun(t, "add", "--title", "Dune", "--author", "Frank Herbert", "--year", "1965", "--genre", "Sci-Fi", "--read")
	h.mustRun(t, "add", "-t", "1984", "-a", "George Orwell", "-y", "1949", "-g", "Dystopian")
}

func TestExampleScenario(t *testing.T) {
	h := newHarness(t)
	h.seed(t)

	out := h.mustRun(t, "list", "-o", "json")
	var books []library.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "1984", books[1].Title)

	out = h.mustRun(t, "search", "orwell", "--by", "author", "-o", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "1984", books[0].Title)

	out = h.mustRun(t, "remove", "dune")
	assert.Equal(t, "Book \"dune\" removed successfully!\n", out)

	out = h.mustRun(t, "stats", "-o", "json")
	var st library.Stats
	require.NoError(t, json.Unmarshal([]byte(out), &st))
	assert.Equal(t, library.Stats{Total: 1, Read: 0, ReadPercentage: 0}, st)
}

func TestAddCommand(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "add", "-t", "  Emma ", "-a", "Jane Austen", "-y", "1815", "-g", "Classic")
	assert.Equal(t, "Book \"Emma\" added successfully!\n", out)

	books := h.store.List()
	require.Len(t, books, 1)
	assert.Equal(t, "Emma", books[0].Title)
	assert.False(t, books[0].Read)
	assert.Equal(t, time.Now().Format(library.DateLayout), books[0].DateAdded)
}

func TestAddCommandValidates(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "add", "-t", "Emma", "-a", "Jane Austen", "-g", "Classic")
	require.Error(t, err)
	assert.ErrorIs(t, err, library.ErrInvalidInput)
	assert.Contains(t, err.Error(), "year: must be at least 1000")

	_, err = h.run(t, "add", "-t", " ", "-a", "Jane Austen", "-y", "1815", "-g", "Classic")
	assert.ErrorIs(t, err, library.ErrInvalidInput)

	assert.Empty(t, h.store.List())
}

func TestRemoveCommand(t *testing.T) {
	h := newHarness(t)
	h.seed(t)
	h.mustRun(t, "add", "-t", "DUNE", "-a", "Someone", "-y", "2001", "-g", "Parody")

	out := h.mustRun(t, "remove", "Not", "Here")
	assert.Equal(t, "No book titled \"Not Here\" found.\n", out)

	out = h.mustRun(t, "remove", "dune")
	assert.Equal(t, "Removed 2 books titled \"dune\".\n", out)
	assert.Len(t, h.store.List(), 1)

	_, err := h.run(t, "remove", "  ")
	assert.ErrorContains(t, err, "title must not be empty")
}

func TestSearchCommand(t *testing.T) {
	h := newHarness(t)
	h.seed(t)

	out := h.mustRun(t, "search", "DUN")
	assert.Contains(t, out, "Found 1 result(s) for \"DUN\"")
	assert.Contains(t, out, "Frank Herbert")
	assert.NotContains(t, out, "George Orwell")

	out = h.mustRun(t, "search", "tolkien", "--by", "author")
	assert.Equal(t, "No books found!\n", out)

	out = h.mustRun(t, "search", "", "-o", "json")
	var books []library.Book
	require.NoError(t, json.Unmarshal([]byte(out), &books))
	assert.Len(t, books, 2)

	out = h.mustRun(t, "search", "nothing", "-o", "json")
	assert.JSONEq(t, "[]", out)

	_, err := h.run(t, "search", "dune", "--by", "genre")
	assert.ErrorContains(t, err, `unknown search field "genre"`)
}

func TestListCommand(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "list")
	assert.Contains(t, out, "No books in the library!")

	h.seed(t)
	out = h.mustRun(t, "list")
	assert.Contains(t, out, "Dune")
	assert.Contains(t, out, "George Orwell")
	assert.Contains(t, out, "Total: 2 book(s)")

	out = h.mustRun(t, "list", "-n", "1", "-o", "yaml")
	var books []library.Book
	require.NoError(t, yaml.Unmarshal([]byte(out), &books))
	require.Len(t, books, 1)
	assert.Equal(t, "Dune", books[0].Title)
}

func TestStatsCommand(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "stats")
	assert.Contains(t, out, "Total Books:     0")
	assert.Contains(t, out, "Percentage Read: 0.0%")

	for i, read := range []bool{true, true, false, true} {
		_, err := h.store.Add("Book", "Author", 2000+i, "Genre", read)
		require.NoError(t, err)
	}
	out = h.mustRun(t, "stats")
	assert.Contains(t, out, "Total Books:     4")
	assert.Contains(t, out, "Books Read:      3")
	assert.Contains(t, out, "Percentage Read: 75.0%")
}

func TestDuplicatesCommand(t *testing.T) {
	h := newHarness(t)
	h.seed(t)

	out := h.mustRun(t, "duplicates")
	assert.Equal(t, "No duplicate titles found.\n", out)

	h.mustRun(t, "add", "-t", "dune", "-a", "Someone", "-y", "2001", "-g", "Parody")
	out = h.mustRun(t, "duplicates")
	assert.Contains(t, out, "[1] \"Dune\" (2 books)")
	assert.Contains(t, out, "Someone, 2001, Parody")
}

func TestExportCommand(t *testing.T) {
	h := newHarness(t)
	h.seed(t)

	out := h.mustRun(t, "export", "-f", "bibtex")
	assert.Contains(t, out, "@book{herbert1965,")
	assert.Contains(t, out, "  author = {George Orwell},")
	assert.Contains(t, out, "  keywords = {Dystopian}\n}")

	out = h.mustRun(t, "export", "-f", "ris", "--read")
	assert.Contains(t, out, "TY  - BOOK\nTI  - Dune\n")
	assert.NotContains(t, out, "1984")

	out = h.mustRun(t, "export", "-f", "markdown", "--genre", "dystopian")
	assert.Contains(t, out, "## [ ] 1984")
	assert.Contains(t, out, "Total books: 1")

	out = h.mustRun(t, "export", "-f", "yaml")
	assert.Contains(t, out, "date_added:")

	path := filepath.Join(t.TempDir(), "books.json")
	out = h.mustRun(t, "export", "-f", "json", "-o", path)
	assert.Contains(t, out, "Exported 2 book(s)")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var books []library.Book
	require.NoError(t, json.Unmarshal(data, &books))
	assert.Equal(t, h.store.List(), books)

	_, err = h.run(t, "export", "-f", "csv")
	assert.ErrorContains(t, err, "unsupported format: csv")
}

func TestCitationKeyDeduplicates(t *testing.T) {
	seen := make(map[string]int)
	b := library.Book{Author: "Ursula K. Le Guin", Year: 1969}
	assert.Equal(t, "guin1969", citationKey(b, seen))
	assert.Equal(t, "guin1969a", citationKey(b, seen))
	assert.Equal(t, "unknown0", citationKey(library.Book{}, seen))
}

func TestWatchOneShot(t *testing.T) {
	h := newHarness(t)
	h.seed(t)

	out := h.mustRun(t, "watch", "--one-shot")
	assert.Contains(t, out, "Total Books:     2")

	_, err := h.run(t, "watch")
	assert.ErrorContains(t, err, "watch requires file storage")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchCatalogReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "library_data.json")
	fsys := afero.NewOsFs()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var out syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- watchCatalog(ctx, &out, path, 20*time.Millisecond, func() library.Stats {
			return library.Open(fsys, path).Statistics()
		})
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Total Books:     0")
	}, 5*time.Second, 10*time.Millisecond)

	writer := library.Open(fsys, path)
	_, err := writer.Add("Dune", "Frank Herbert", 1965, "Sci-Fi", true)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Total Books:     1")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchCatalog did not stop after cancel")
	}
}
