package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/chaz8081/gostt-transcribe/internal/audio"
	"github.com/chaz8081/gostt-transcribe/internal/config"
	"github.com/chaz8081/gostt-transcribe/internal/pipeline"
	"github.com/chaz8081/gostt-transcribe/internal/transcribe"
)

// runPipeline builds the production pipeline for cfg and runs it once.
func runPipeline(ctx context.Context, cfg *config.Config) error {
	log := slog.Default()
	loader := transcribe.NewLoader(cfg.Transcribe, newDownloader(log), log)

	p := &pipeline.Pipeline{
		Paths: pipeline.Paths{
			Input:      cfg.InputAudio,
			Normalized: cfg.ConvertedWAV,
			Output:     cfg.JSONOutput,
		},
		Normalizer: audio.NewFFmpegNormalizer(cfg.FFmpegPath),
		Loader: pipeline.LoaderFunc(func(ctx context.Context) (pipeline.Transcriber, error) {
			return loader.Load(ctx)
		}),
		Stdout: os.Stdout,
		Logger: log,
	}

	_, err := p.Run(ctx)
	return err
}
