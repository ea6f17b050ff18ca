// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
	"github.com/mtreilly/arc-bookshelf/internal/output"
)

func newStatsCmd(cfg *config.Config, store library.BookStore) *cobra.Command {
	var out output.Options

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show library statistics",
		Long:  `Display how many books are in the catalog and how many of them you have read.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := store.Statistics()
			w := cmd.OutOrStdout()
			if handled, err := out.Encode(w, stats); handled {
				return err
			}
			printStats(w, stats)
			return nil
		},
	}

	out.AddFlags(cmd, output.OutputTable)
	return cmd
}

func printStats(w io.Writer, st library.Stats) {
	fmt.Fprintf(w, "Library Statistics\n")
	fmt.Fprintf(w, "==================\n\n")
	fmt.Fprintf(w, "Total Books:     %d\n", st.Total)
	fmt.Fprintf(w, "Books Read:      %d\n", st.Read)
	fmt.Fprintf(w, "Percentage Read: %.1f%%\n", st.ReadPercentage)
}
