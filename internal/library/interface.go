// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package library

// BookStore is the surface the presentation layers depend on.
// Store is the only production implementation.
type BookStore interface {
	Add(title, author string, year int, genre string, read bool) (Book, error)
	Remove(title string) (int, error)
	Search(term string, field SearchField) []Book
	List() []Book
	Statistics() Stats
	Duplicates() [][]Book
	Path() string
}

var _ BookStore = (*Store)(nil)
