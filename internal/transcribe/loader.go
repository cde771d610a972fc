package transcribe

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chaz8081/gostt-transcribe/internal/config"
	"github.com/chaz8081/gostt-transcribe/internal/models"
)

// Loader selects a device, locates the configured model and loads it.
type Loader struct {
	cfg        config.TranscribeConfig
	downloader *models.Downloader
	logger     *slog.Logger

	selectDevice func(pref string) Device
	open         func(path string, threads int) (Transcriber, error)
}

// NewLoader returns a Loader for cfg. Missing models are fetched with
// downloader when cfg.AutoDownload is set. A nil logger means slog.Default().
func NewLoader(cfg config.TranscribeConfig, downloader *models.Downloader, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		cfg:          cfg,
		downloader:   downloader,
		logger:       logger,
		selectDevice: SelectDevice,
		open: func(path string, threads int) (Transcriber, error) {
			t, err := NewWhisperTranscriber(path, threads)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	}
}

// ModelPath returns the model file to load, downloading it if needed.
func (l *Loader) ModelPath(ctx context.Context) (string, error) {
	if l.cfg.ModelPath != "" {
		if _, err := os.Stat(l.cfg.ModelPath); err != nil {
			return "", fmt.Errorf("transcribe: model file: %w", err)
		}
		return l.cfg.ModelPath, nil
	}

	m, err := models.Lookup(l.cfg.Model)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	if l.downloader == nil {
		return l.ensureLocal(m)
	}
	path, err := l.downloader.Ensure(ctx, m, l.cfg.ModelsDir, l.cfg.AutoDownload)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return path, nil
}

func (l *Loader) ensureLocal(m models.Model) (string, error) {
	path := m.Path(l.cfg.ModelsDir)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("transcribe: %w: %s", models.ErrNotDownloaded, path)
	}
	return path, nil
}

// Load returns a ready Transcriber. The caller must Close it.
func (l *Loader) Load(ctx context.Context) (Transcriber, error) {
	device := l.selectDevice(l.cfg.Device)
	if device == CPU && l.cfg.Device == string(CPU) {
		// Hide CUDA devices from a GPU-enabled whisper.cpp build.
		if err := os.Setenv("CUDA_VISIBLE_DEVICES", ""); err != nil {
			return nil, fmt.Errorf("transcribe: force cpu: %w", err)
		}
	}

	path, err := l.ModelPath(ctx)
	if err != nil {
		return nil, err
	}

	l.logger.Info("loading whisper model", "path", path, "device", device, "threads", device.Threads())
	start := time.Now()

	t, err := l.open(path, device.Threads())
	if err != nil {
		return nil, err
	}

	l.logger.Info("model loaded", "elapsed", time.Since(start).Round(time.Millisecond))
	return t, nil
}
