// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func newWatchCmd(cfg *config.Config, fsys afero.Fs, store library.BookStore) *cobra.Command {
	var (
		debounceMs int
		oneShot    bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print statistics whenever the catalog file changes",
		Long: `Monitor the catalog file and print fresh statistics each time it is rewritten,
for example by another arc-bookshelf process or an editor.

Examples:
  arc-bookshelf watch
  arc-bookshelf watch --debounce 250
  arc-bookshelf watch --one-shot`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if oneShot {
				printStats(w, store.Statistics())
				return nil
			}
			if cfg.Storage != config.StorageFile {
				return errors.New("watch requires file storage")
			}

			reload := func() library.Stats {
				return library.Open(fsys, store.Path(), library.WithLogger(log.Logger)).Statistics()
			}
			return watchCatalog(cmd.Context(), w, store.Path(), time.Duration(debounceMs)*time.Millisecond, reload)
		},
	}

	cmd.Flags().IntVar(&debounceMs, "debounce", 500, "Debounce milliseconds for file events")
	cmd.Flags().BoolVar(&oneShot, "one-shot", false, "Print current statistics and exit (don't watch)")

	return cmd
}

// watchCatalog watches the directory holding path, since saves replace the
// file by rename. Bursts of events are collapsed by the debounce window.
func watchCatalog(ctx context.Context, w io.Writer, path string, debounce time.Duration, reload func() library.Stats) error {
	if ctx == nil {
		ctx = context.Background()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	log.Info().Str("path", path).Msg("watching catalog")

	printStats(w, reload())

	fire := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}

			// Reset the timer while the file is still being written.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			fmt.Fprintln(w)
			printStats(w, reload())

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("watcher error")
		}
	}
}
