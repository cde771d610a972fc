package models

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ErrNotDownloaded is returned by Ensure when a model is missing and
// downloading is disabled.
var ErrNotDownloaded = errors.New("models: model not downloaded")

// Downloader fetches model files over HTTP.
type Downloader struct {
	BaseURL string
	Client  *http.Client
	// Progress receives the progress bar. Use io.Discard to hide it.
	Progress io.Writer
	// Logger receives download diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// NewDownloader returns a Downloader for DefaultBaseURL that draws its
// progress bar on progress and logs to logger.
func NewDownloader(progress io.Writer, logger *slog.Logger) *Downloader {
	return &Downloader{
		BaseURL:  DefaultBaseURL,
		Client:   http.DefaultClient,
		Progress: progress,
		Logger:   logger,
	}
}

func (d *Downloader) log() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// Ensure returns the path of m inside dir, downloading it first when it is
// missing and download is true.
func (d *Downloader) Ensure(ctx context.Context, m Model, dir string, download bool) (string, error) {
	path := m.Path(dir)
	if info, err := os.Stat(path); err == nil && info.Size() > 0 {
		return path, nil
	}
	if !download {
		return "", fmt.Errorf("%w: %s (run 'gostt-transcribe models download %s')", ErrNotDownloaded, path, m.Size)
	}
	return d.Download(ctx, m, dir)
}

// Download fetches m into dir and returns its path. An existing non-empty
// file is kept as is.
func (d *Downloader) Download(ctx context.Context, m Model, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("models: creating models dir: %w", err)
	}

	destPath := m.Path(dir)
	if info, err := os.Stat(destPath); err == nil && info.Size() > 0 {
		d.log().Debug("model already present", "path", destPath, "size_mb", info.Size()/mib)
		return destPath, nil
	}

	url := m.URL(d.BaseURL)
	d.log().Info("downloading whisper model", "model", m.Size, "url", url, "dest", destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("models: building request: %w", err)
	}

	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("models: downloading %s: %w", m.Filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("models: download %s failed: HTTP %d", m.Filename, resp.StatusCode)
	}

	// Write to temp file first, then rename (atomic)
	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return "", fmt.Errorf("models: creating temp file: %w", err)
	}

	written, err := d.copyWithProgress(ctx, f, resp.Body, resp.ContentLength, m.Filename)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("models: writing model file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("models: moving model file: %w", err)
	}

	d.log().Info("model downloaded", "path", destPath, "size_mb", written/mib)
	return destPath, nil
}

// copyWithProgress copies src to dst while drawing a progress bar. total may
// be -1 when the server does not send a Content-Length.
func (d *Downloader) copyWithProgress(ctx context.Context, dst io.Writer, src io.Reader, total int64, label string) (int64, error) {
	out := d.Progress
	if out == nil {
		out = io.Discard
	}

	p := mpb.NewWithContext(ctx, mpb.WithOutput(out), mpb.WithWidth(40))
	bar := p.New(max(total, 0),
		mpb.BarStyle(),
		mpb.PrependDecorators(
			decor.Name(label+" "),
			decor.CountersKibiByte("% .1f / % .1f"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	proxy := bar.ProxyReader(src)
	written, err := io.Copy(dst, proxy)
	proxy.Close()

	if err != nil {
		bar.Abort(false)
	} else {
		// Completes bars whose total was unknown.
		bar.SetTotal(-1, true)
	}
	p.Wait()

	return written, err
}
