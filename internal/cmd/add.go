// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func newAddCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var in library.BookInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book to the catalog",
		Long: `Add a new book. Title, author and genre are required and trimmed;
the publication year must be between 1000 and the current year.

Examples:
  arc-bookshelf add --title "Dune" --author "Frank Herbert" --year 1965 --genre Sci-Fi --read
  arc-bookshelf add -t "1984" -a "George Orwell" -y 1949 -g Dystopian`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			book, err := in.AddTo(store)
			if err != nil {
				return fmt.Errorf("add book: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Book %q added successfully!\n", book.Title)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in.Title, "title", "t", "", "Book title")
	cmd.Flags().StringVarP(&in.Author, "author", "a", "", "Book author")
	cmd.Flags().IntVarP(&in.Year, "year", "y", 0, "Publication year")
	cmd.Flags().StringVarP(&in.Genre, "genre", "g", "", "Genre")
	cmd.Flags().BoolVarP(&in.Read, "read", "r", false, "Mark the book as read")

	return cmd
}
