package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/speeddial/internal/config"
	"github.com/ekisa-team/speeddial/internal/env"
	"github.com/ekisa-team/speeddial/internal/envvar"
	"github.com/ekisa-team/speeddial/internal/logger"
	"github.com/ekisa-team/speeddial/internal/xfs"
)

var (
	cfgFile    string
	schemaFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "speeddial",
	Short: "Speed dial directories",
	Long: `speeddial keeps a fixed set of named directories, each mapping short
speed dial codes to phone numbers.

Commands:
  serve  - HTTP and gRPC API with live config reload
  shell  - interactive prompt
  demo   - scripted walkthrough against a fresh registry`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $SPEEDDIAL_CONFIG or <config dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&schemaFile, "schema", "", "JSON schema for the config file (default: embedded)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// configPath resolves the config file from the flag, the environment or the
// platform default, in that order.
func configPath() string {
	if cfgFile != "" {
		return xfs.ExpandTilde(cfgFile)
	}
	if p := os.Getenv(envvar.SpeeddialConfig); p != "" {
		return xfs.ExpandTilde(p)
	}

	return filepath.Join(config.DefaultConfigPath(), "config.yaml")
}

// loadConfig reads the config file. A missing file falls back to the
// built-in defaults so the tool works without any setup.
func loadConfig(path string) (cfg *config.Config, found bool, err error) {
	cfg, err = config.LoadAndValidate(path, schemaFile)
	if err == nil {
		return cfg, true, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, false, err
	}

	cfg = config.Default()
	if err := cfg.ApplyEnv(); err != nil {
		return nil, false, err
	}

	return cfg, false, nil
}

// newLogger builds the process logger and returns the level variable the
// config watcher adjusts.
func newLogger(cfg *config.Config, toFile bool) (*slog.Logger, *slog.LevelVar) {
	level := new(slog.LevelVar)
	setLevel(level, cfg.Log.Level)

	opts := []logger.Option{logger.WithLevel(level)}
	if toFile {
		opts = append(opts, logger.WithLogToFile(true), logger.WithLogFile(cfg.Log.File))
	}

	log := logger.New(env.FromEnv(), opts...)
	slog.SetDefault(log)

	return log, level
}

func setLevel(level *slog.LevelVar, name string) {
	if verbose {
		level.Set(slog.LevelDebug)
		return
	}

	parsed, err := logger.ParseLevel(name)
	if err != nil {
		slog.Warn("Unknown log level, keeping current", "level", name)
		return
	}
	level.Set(parsed)
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
}
