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

func newDuplicatesCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Show books that share a title",
		Long: `List groups of books whose titles are equal ignoring case.
'arc-bookshelf remove <title>' deletes every book in such a group.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			groups := store.Duplicates()
			w := cmd.OutOrStdout()

			if groups == nil {
				groups = [][]library.Book{}
			}
			if handled, err := out.Encode(w, groups); handled {
				return err
			}

			if len(groups) == 0 {
				fmt.Fprintln(w, "No duplicate titles found.")
				return nil
			}

			fmt.Fprintf(w, "Found %d title(s) shared by more than one book:\n\n", len(groups))
			for i, g := range groups {
				fmt.Fprintf(w, "[%d] %q (%d books)\n", i+1, g[0].Title, len(g))
				for _, b := range g {
					fmt.Fprintf(w, "    %s, %d, %s\n", output.Truncate(b.Author, 30), b.Year, b.Genre)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	out.AddFlags(cmd, output.OutputTable)
	return cmd
}
