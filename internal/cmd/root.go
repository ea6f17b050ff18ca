// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

// NewRootCmd creates the root command for arc-bookshelf. fsys is the
// filesystem store was opened on; watch uses it to reload the catalog.
func NewRootCmd(cfg *config.Config, fsys afero.Fs, store library.BookStore) *cobra.Command {

	root := &cobra.Command{
		Use:   "arc-bookshelf",
		Short: "Manage your personal book catalog",
		Long: `Keep track of the books you own and the ones you have read.

arc-bookshelf provides tools to:
- Add and remove books
- Search by title or author
- List the catalog and show reading statistics
- Export the catalog (JSON, YAML, Markdown, BibTeX, RIS)
- Browse everything from an interactive menu`,
		SilenceUsage: true,
	}

	root.AddCommand(newAddCmd(cfg, store))
	root.AddCommand(newRemoveCmd(cfg, store))
	root.AddCommand(newSearchCmd(cfg, store))
	root.AddCommand(newListCmd(cfg, store))
	root.AddCommand(newStatsCmd(cfg, store))
	root.AddCommand(newDuplicatesCmd(cfg, store))
	root.AddCommand(newExportCmd(cfg, store))
	root.AddCommand(newWatchCmd(cfg, fsys, store))
	root.AddCommand(newMenuCmd(cfg, store))

	return root
}
