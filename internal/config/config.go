package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/chaz8081/gostt-transcribe/internal/models"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	InputAudio   string           `yaml:"input_audio"`
	ConvertedWAV string           `yaml:"converted_wav"`
	JSONOutput   string           `yaml:"json_output"`
	FFmpegPath   string           `yaml:"ffmpeg_path"`
	Transcribe   TranscribeConfig `yaml:"transcribe"`
	LogLevel     string           `yaml:"log_level"`
}

// TranscribeConfig holds model selection settings.
type TranscribeConfig struct {
	Model        string `yaml:"model"`      // "tiny", "small", "medium" or "large"
	ModelPath    string `yaml:"model_path"` // explicit ggml file, overrides model + models_dir
	ModelsDir    string `yaml:"models_dir"`
	Device       string `yaml:"device"` // "auto" or "cpu"
	AutoDownload bool   `yaml:"auto_download"`
}

// Environment variables applied on top of the config file.
const (
	EnvInputAudio   = "GOSTT_INPUT_AUDIO"
	EnvConvertedWAV = "GOSTT_CONVERTED_WAV"
	EnvJSONOutput   = "GOSTT_JSON_OUTPUT"
	EnvModel        = "GOSTT_MODEL"
	EnvModelsDir    = "GOSTT_MODELS_DIR"
	EnvAutoDownload = "GOSTT_AUTO_DOWNLOAD"
	EnvLogLevel     = "GOSTT_LOG_LEVEL"
)

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "gostt-transcribe")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultModelsDir returns the directory whisper models are cached in.
func DefaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(home, ".local", "share", "gostt-transcribe", "models")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		InputAudio:   "sample.wav",
		ConvertedWAV: "sample_fixed.wav",
		JSONOutput:   "transcription.json",
		FFmpegPath:   "ffmpeg",
		Transcribe: TranscribeConfig{
			Model:        "small",
			ModelsDir:    DefaultModelsDir(),
			Device:       "auto",
			AutoDownload: true,
		},
		LogLevel: "info",
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. Tilde (~) in paths is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.expandPaths()

	return cfg, nil
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment are not overwritten.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// ApplyEnv overrides config values with GOSTT_* environment variables.
func (c *Config) ApplyEnv() error {
	set := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}

	set(EnvInputAudio, &c.InputAudio)
	set(EnvConvertedWAV, &c.ConvertedWAV)
	set(EnvJSONOutput, &c.JSONOutput)
	set(EnvModel, &c.Transcribe.Model)
	set(EnvModelsDir, &c.Transcribe.ModelsDir)
	set(EnvLogLevel, &c.LogLevel)

	if v, ok := os.LookupEnv(EnvAutoDownload); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvAutoDownload, err)
		}
		c.Transcribe.AutoDownload = b
	}

	c.expandPaths()
	return nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	if c.InputAudio == "" {
		return fmt.Errorf("input_audio must not be empty")
	}

	if c.ConvertedWAV == "" {
		return fmt.Errorf("converted_wav must not be empty")
	}

	if filepath.Clean(c.ConvertedWAV) == filepath.Clean(c.InputAudio) {
		return fmt.Errorf("converted_wav must differ from input_audio (%q)", c.InputAudio)
	}

	if c.JSONOutput == "" {
		return fmt.Errorf("json_output must not be empty")
	}

	if c.FFmpegPath == "" {
		return fmt.Errorf("ffmpeg_path must not be empty")
	}

	if sizes := models.Names(); !lo.Contains(sizes, c.Transcribe.Model) {
		return fmt.Errorf("transcribe.model must be one of %s, got %q",
			strings.Join(sizes, ", "), c.Transcribe.Model)
	}

	if c.Transcribe.ModelPath == "" && c.Transcribe.ModelsDir == "" {
		return fmt.Errorf("transcribe.models_dir must not be empty when model_path is unset")
	}

	switch c.Transcribe.Device {
	case "auto", "cpu":
	default:
		return fmt.Errorf("transcribe.device must be \"auto\" or \"cpu\", got %q", c.Transcribe.Device)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// ParseLogLevel maps a log_level string to a slog.Level. Unknown values map to info.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const defaultConfigHeader = `# gostt-transcribe configuration
#
# input_audio is converted to converted_wav (mono, 16 kHz, 16-bit PCM),
# transcribed with the whisper model named by transcribe.model and written
# to json_output. The same JSON is printed to stdout.
#
# transcribe.model: tiny | small | medium | large
# transcribe.device: auto | cpu
# log_level: debug | info | warn | error

`

// WriteDefault writes the default config to DefaultConfigPath. If a file
// already exists there it is left untouched and ("", nil) is returned.
func WriteDefault() (string, error) {
	path := DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(defaultConfigHeader), data...), 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

func (c *Config) expandPaths() {
	c.InputAudio = expandTilde(c.InputAudio)
	c.ConvertedWAV = expandTilde(c.ConvertedWAV)
	c.JSONOutput = expandTilde(c.JSONOutput)
	c.Transcribe.ModelPath = expandTilde(c.Transcribe.ModelPath)
	c.Transcribe.ModelsDir = expandTilde(c.Transcribe.ModelsDir)
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
