// Command gostt-transcribe converts one audio file to text with a local
// whisper model and prints {"transcription": "..."} on stdout.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/chaz8081/gostt-transcribe/internal/config"
	"github.com/chaz8081/gostt-transcribe/internal/models"
	"github.com/spf13/cobra"
)

func main() {
	// Diagnostics go to stderr; stdout is reserved for the JSON result.
	slog.SetDefault(newLogger("info"))

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "gostt-transcribe",
		Short: "Transcribe an audio file to JSON with a local whisper model",
		Long: `Converts the configured input audio to mono 16 kHz 16-bit PCM with ffmpeg,
transcribes it with whisper.cpp and writes {"transcription": "..."} to the
configured JSON file and, as a single line, to stdout.

Input and output paths come from the config file, a .env file or GOSTT_*
environment variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(configPath)
			if err != nil {
				return err
			}
			return runPipeline(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ~/.config/gostt-transcribe/config.yaml)")

	root.AddCommand(newModelsCmd(&configPath))
	root.AddCommand(newConfigCmd())

	return root
}

// setup loads and validates configuration and installs the configured logger.
func setup(configPath string) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	slog.SetDefault(newLogger(cfg.LogLevel))
	return cfg, nil
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	// Try default config path
	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		slog.Debug("config loaded", "path", defaultPath)
		return cfg, nil
	}

	slog.Debug("no config file found, using defaults")
	return config.Default(), nil
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(level),
	}))
}

func newDownloader(logger *slog.Logger) *models.Downloader {
	return models.NewDownloader(os.Stderr, logger)
}
