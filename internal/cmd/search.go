// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newSearchCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options
	var by string

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search books by title or author",
		Long: `Search the catalog for books whose title (or author) contains the term, ignoring case.

Examples:
  arc-bookshelf search dune              # Search titles
  arc-bookshelf search orwell --by author
  arc-bookshelf search "" -o json        # Everything, as JSON`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			field := library.SearchField(by)
			if field != library.FieldTitle && field != library.FieldAuthor {
				return fmt.Errorf("unknown search field %q (choose title or author)", by)
			}

			query := args[0]
			books := store.Search(query, field)

			w := cmd.OutOrStdout()
			if out.Is(output.OutputTable) {
				if len(books) == 0 {
					fmt.Fprintln(w, "No books found!")
					return nil
				}
				fmt.Fprintf(w, "Found %d result(s) for %q:\n\n", len(books), query)
			}
			return renderBooks(w, &out, books)
		},
	}

	out.AddFlags(cmd, output.OutputTable)
	cmd.Flags().StringVarP(&by, "by", "b", string(library.FieldTitle), "Field to search: title or author")

	return cmd
}
