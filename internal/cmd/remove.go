// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func newRemoveCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <title>",
		Short: "Remove books by title",
		Long: `Remove every book whose title matches, ignoring case.
Books sharing a title are all removed; see 'arc-bookshelf duplicates'.

Examples:
  arc-bookshelf remove dune
  arc-bookshelf remove The Left Hand of Darkness`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				return errors.New("title must not be empty")
			}

			n, err := store.Remove(title)
			if err != nil {
				return fmt.Errorf("remove book: %w", err)
			}

			out := cmd.OutOrStdout()
			switch n {
			case 0:
				fmt.Fprintf(out, "No book titled %q found.\n", title)
			case 1:
				fmt.Fprintf(out, "Book %q removed successfully!\n", title)
			default:
				fmt.Fprintf(out, "Removed %d books titled %q.\n", n, title)
			}
			return nil
		},
	}

	return cmd
}
