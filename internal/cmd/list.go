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

func newListCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books in the catalog",
		Long: `List all books in the order they were added.

Examples:
  arc-bookshelf list                # Table of every book
  arc-bookshelf list --limit 20     # First 20 books
  arc-bookshelf list -o yaml        # YAML output`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books := store.List()
			total := len(books)
			if limit > 0 && limit < total {
				books = books[:limit]
			}

			w := cmd.OutOrStdout()
			if out.Is(output.OutputTable) && total == 0 {
				fmt.Fprintln(w, "No books in the library!")
				fmt.Fprintln(w, "Use 'arc-bookshelf add' to add one.")
				return nil
			}

			if err := renderBooks(w, &out, books); err != nil {
				return err
			}
			if out.Is(output.OutputTable) {
				fmt.Fprintf(w, "\nTotal: %d book(s)\n", total)
			}
			return nil
		},
	}

	out.AddFlags(cmd, output.OutputTable)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Limit number of results")

	return cmd
}
