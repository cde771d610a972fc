package transcribe

import (
	"fmt"
	"io"
	"strings"

	"github.com/chaz8081/gostt-transcribe/internal/audio"
	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// WhisperTranscriber wraps a whisper.cpp model for speech-to-text.
type WhisperTranscriber struct {
	model   whisper.Model
	threads int
}

// NewWhisperTranscriber loads a whisper model from the given path.
// threads <= 0 leaves the whisper.cpp default.
// The caller must call Close() when done.
func NewWhisperTranscriber(modelPath string, threads int) (*WhisperTranscriber, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: load whisper model %q: %w", modelPath, err)
	}
	return &WhisperTranscriber{model: model, threads: threads}, nil
}

// Close releases the whisper model resources.
func (t *WhisperTranscriber) Close() error {
	if t.model != nil {
		err := t.model.Close()
		t.model = nil
		return err
	}
	return nil
}

// Transcribe decodes a normalized WAV file and transcribes it.
func (t *WhisperTranscriber) Transcribe(wavPath string) (string, error) {
	samples, err := audio.ReadSamples(wavPath)
	if err != nil {
		return "", fmt.Errorf("transcribe: %w", err)
	}
	return t.Process(samples)
}

// Process transcribes mono 16kHz float32 audio samples to text.
func (t *WhisperTranscriber) Process(samples []float32) (string, error) {
	if t.model == nil {
		return "", fmt.Errorf("transcribe: model is closed")
	}

	ctx, err := t.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("transcribe: create context: %w", err)
	}

	// English-only models reject SetLanguage; they need no hint.
	if t.model.IsMultilingual() {
		if err := ctx.SetLanguage(Language); err != nil {
			return "", fmt.Errorf("transcribe: set language %q: %w", Language, err)
		}
	}
	ctx.SetTranslate(false)
	if t.threads > 0 {
		ctx.SetThreads(uint(t.threads))
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("transcribe: process: %w", err)
	}

	var segments []string
	for {
		seg, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("transcribe: next segment: %w", err)
		}
		segments = append(segments, seg.Text)
	}

	return joinSegments(segments), nil
}

// joinSegments joins segment texts with single spaces and trims the result.
func joinSegments(segments []string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
