// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/mtreilly/arc-bookshelf/internal/cmd"
	"github.com/mtreilly/arc-bookshelf/internal/config"
	"github.com/mtreilly/arc-bookshelf/internal/library"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-bookshelf: failed to load config: %v\n", err)
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "arc-bookshelf: invalid log level %q, using warn\n", cfg.LogLevel)
		level = zerolog.WarnLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// Storage backend selection via config (ARC_BOOKSHELF_STORAGE).
	// "file" persists to the data file; "memory" keeps the catalog for this
	// process only.
	var fsys afero.Fs
	switch cfg.Storage {
	case config.StorageFile:
		fsys = afero.NewOsFs()
	case config.StorageMemory:
		log.Warn().Msg("memory storage selected, changes will not be persisted")
		fsys = afero.NewMemMapFs()
	}

	store := library.Open(fsys, cfg.DataFile, library.WithLogger(log.Logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewRootCmd(cfg, fsys, store)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
