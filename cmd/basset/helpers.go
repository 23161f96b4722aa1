package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/syntax-framework/basset"
	"github.com/syntax-framework/basset/asset"
	"github.com/syntax-framework/basset/config"
)

const defaultEnvironment = "local"

// environment from --env, then BASSET_ENV
func environment(cmd *cobra.Command) string {
	if env, _ := cmd.Flags().GetString("env"); env != "" {
		return env
	}
	if env := os.Getenv("BASSET_ENV"); env != "" {
		return env
	}
	return defaultEnvironment
}

func newLogger(cmd *cobra.Command, stderr io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// loadBasset reads the configuration of --config for the current environment
func loadBasset(cmd *cobra.Command, stderr io.Writer) (*asset.Basset, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	options, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	logger := newLogger(cmd, stderr)
	options.Logger = logger
	return basset.New(options, environment(cmd)), logger, nil
}
