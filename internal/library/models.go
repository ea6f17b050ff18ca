// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

import (
	"time"
)

// DateLayout is the on-disk layout of Book.DateAdded.
const DateLayout = "2006-01-02"

// Book is a single catalog entry.
type Book struct {
	Title     string `json:"title" yaml:"title"`
	Author    string `json:"author" yaml:"author"`
	Year      int    `json:"year" yaml:"year"`
	Genre     string `json:"genre" yaml:"genre"`
	Read      bool   `json:"read" yaml:"read"`
	DateAdded string `json:"date_added" yaml:"date_added"` // YYYY-MM-DD, set once on add
}

// AddedAt parses DateAdded. Records written by hand may carry a value that
// does not parse; callers should fall back to the raw string.
func (b Book) AddedAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout, b.DateAdded, time.Local)
}

// SearchField selects which Book field Search matches against.
type SearchField string

const (
	FieldTitle  SearchField = "title"
	FieldAuthor SearchField = "author"
)

// Stats summarizes reading progress across the catalog.
type Stats struct {
	Total          int     `json:"total" yaml:"total"`
	Read           int     `json:"read" yaml:"read"`
	ReadPercentage float64 `json:"read_percentage" yaml:"read_percentage"`
}
