// Package pipeline runs a single transcription from source audio to JSON.
//
// Stages run strictly in order: validate input, normalize audio, load the
// model, transcribe, emit. The first four fail the run; a failure to write
// the result file only logs a warning. Nothing is written to Stdout unless
// every fatal stage succeeded.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/chaz8081/gostt-transcribe/internal/audio"
	"github.com/chaz8081/gostt-transcribe/internal/result"
)

// Transcriber is a loaded model.
type Transcriber interface {
	Transcribe(wavPath string) (string, error)
	Close() error
}

// ModelLoader produces a ready Transcriber.
type ModelLoader interface {
	Load(ctx context.Context) (Transcriber, error)
}

// LoaderFunc adapts a function to ModelLoader.
type LoaderFunc func(ctx context.Context) (Transcriber, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (Transcriber, error) {
	return f(ctx)
}

// Paths are the files a run reads and writes.
type Paths struct {
	Input      string // source audio
	Normalized string // intermediate mono 16 kHz WAV
	Output     string // result JSON file
}

// Pipeline wires the stages of a run together.
type Pipeline struct {
	Paths      Paths
	Normalizer audio.Normalizer
	Loader     ModelLoader
	// Stdout receives the one-line JSON result.
	Stdout io.Writer
	Logger *slog.Logger
}

// Run executes every stage once. On success the result has been printed to
// Stdout and is also returned.
func (p *Pipeline) Run(ctx context.Context) (result.Result, error) {
	log := p.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := validateInput(p.Paths.Input); err != nil {
		return result.Result{}, fail(ErrMissingInput, err)
	}

	log.Info("converting audio", "src", p.Paths.Input, "dst", p.Paths.Normalized, "format", audio.Target)
	start := time.Now()
	if err := p.Normalizer.Normalize(p.Paths.Input, p.Paths.Normalized); err != nil {
		return result.Result{}, fail(ErrTranscode, err)
	}
	log.Debug("audio converted", "elapsed", time.Since(start).Round(time.Millisecond))

	model, err := p.Loader.Load(ctx)
	if err != nil {
		return result.Result{}, fail(ErrModelLoad, err)
	}
	defer func() {
		if err := model.Close(); err != nil {
			log.Warn("closing model", "err", err)
		}
	}()

	log.Info("transcribing", "audio", p.Paths.Normalized)
	start = time.Now()
	text, err := model.Transcribe(p.Paths.Normalized)
	if err != nil {
		return result.Result{}, fail(ErrInference, err)
	}
	if text == "" {
		log.Warn("model returned no text")
	}
	log.Info("transcribed", "elapsed", time.Since(start).Round(time.Millisecond), "chars", utf8.RuneCountInString(text))

	r := result.Result{Transcription: text}

	if err := result.WriteFile(p.Paths.Output, r); err != nil {
		log.Warn("could not write JSON file", "path", p.Paths.Output, "err", err)
	} else {
		log.Debug("result written", "path", p.Paths.Output)
	}

	out := p.Stdout
	if out == nil {
		out = os.Stdout
	}
	if err := result.Print(out, r); err != nil {
		return r, err
	}
	return r, nil
}

// validateInput requires path to be an existing regular file (or symlink to one).
func validateInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}
