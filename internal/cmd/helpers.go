// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func readLabel(read bool) string {
	if read {
		return "Yes"
	}
	return "No"
}

// formatAdded renders DateAdded with a relative age, e.g. "2024-03-09 (2 weeks ago)".
func formatAdded(b library.Book) string {
	t, err := b.AddedAt()
	if err != nil {
		return b.DateAdded
	}
	return fmt.Sprintf("%s (%s)", b.DateAdded, humanize.Time(t))
}

func bookTable(books []library.Book) *output.Table {
	table := output.NewTable("Title", "Author", "Year", "Genre", "Read", "Added")
	for _, b := range books {
		table.AddRow(
			output.Truncate(b.Title, 40),
			output.Truncate(b.Author, 25),
			strconv.Itoa(b.Year),
			output.Truncate(b.Genre, 15),
			readLabel(b.Read),
			formatAdded(b),
		)
	}
	return table
}

func renderBooks(w io.Writer, out *output.Options, books []library.Book) error {
	if books == nil {
		books = []library.Book{}
	}
	if handled, err := out.Encode(w, books); handled {
		return err
	}
	bookTable(books).Render(w)
	return nil
}
