// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

// Package config resolves arc-bookshelf settings from defaults, an optional
// config.yaml and ARC_BOOKSHELF_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/mtreilly/arc-bookshelf/internal/library"
)

const envPrefix = "ARC_BOOKSHELF"

// Storage backends.
const (
	StorageFile   = "file"
	StorageMemory = "memory"
)

// Config holds resolved settings.
type Config struct {
	DataFile string `mapstructure:"data_file"`
	Storage  string `mapstructure:"storage"`
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration with the default search paths.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "arc-bookshelf"))
	}
	v.AddConfigPath(".")
	return load(v)
}

// LoadFile reads configuration from an explicit file path.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("data_file", library.DefaultPath())
	v.SetDefault("storage", StorageFile)
	v.SetDefault("log_level", "warn")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage {
	case StorageFile, StorageMemory:
	default:
		return fmt.Errorf("unknown storage backend %q (choose file or memory)", c.Storage)
	}
	if c.Storage == StorageFile && strings.TrimSpace(c.DataFile) == "" {
		return errors.New("data_file must not be empty")
	}
	if strings.HasPrefix(c.DataFile, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			c.DataFile = filepath.Join(home, c.DataFile[1:])
		}
	}
	return nil
}
