package audio

import (
	"bytes"
	"fmt"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Normalizer converts a source audio file into a mono 16 kHz 16-bit PCM WAV.
type Normalizer interface {
	// Normalize writes the normalized audio for src to dst, replacing dst if it exists.
	Normalize(src, dst string) error
}

// FFmpegNormalizer normalizes audio by running ffmpeg.
type FFmpegNormalizer struct {
	// FFmpegPath is the ffmpeg binary to run. Empty means "ffmpeg" from PATH.
	FFmpegPath string
}

// NewFFmpegNormalizer returns a Normalizer backed by the given ffmpeg binary.
func NewFFmpegNormalizer(ffmpegPath string) *FFmpegNormalizer {
	return &FFmpegNormalizer{FFmpegPath: ffmpegPath}
}

// Normalize transcodes src into dst as pcm_s16le WAV at Target's rate and channel count.
func (n *FFmpegNormalizer) Normalize(src, dst string) error {
	var stderr bytes.Buffer

	stream := ffmpeg.Input(src).
		Output(dst, ffmpeg.KwArgs{
			"ac":     Target.Channels,
			"ar":     Target.SampleRate,
			"f":      "wav",
			"acodec": "pcm_s16le",
		}).
		OverWriteOutput().
		WithErrorOutput(&stderr)

	if n.FFmpegPath != "" {
		stream = stream.SetFfmpegPath(n.FFmpegPath)
	}

	if err := stream.Run(); err != nil {
		if tail := lastLines(stderr.String(), 3); tail != "" {
			return fmt.Errorf("audio: ffmpeg %s -> %s: %w: %s", src, dst, err, tail)
		}
		return fmt.Errorf("audio: ffmpeg %s -> %s: %w", src, dst, err)
	}
	return checkNormalized(dst)
}

// checkNormalized reads the WAV header ffmpeg wrote and requires Target's layout.
func checkNormalized(path string) error {
	got, err := ReadFormat(path)
	if err != nil {
		return err
	}
	if !got.Matches(Target) {
		return fmt.Errorf("audio: %s is %s after conversion, want %s", path, got, Target)
	}
	return nil
}

// lastLines returns the final n non-empty lines of s joined by "; ".
// ffmpeg prints its banner first and the actual failure reason last.
func lastLines(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "; ")
}
