package audio

import (
	"encoding/json"
	"fmt"
	"strconv"
	"testing"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// probeOutput is the subset of `ffprobe -show_streams -of json` the tests read.
type probeOutput struct {
	Streams []struct {
		CodecType     string `json:"codec_type"`
		CodecName     string `json:"codec_name"`
		SampleRate    string `json:"sample_rate"`
		Channels      int    `json:"channels"`
		BitsPerSample int    `json:"bits_per_sample"`
	} `json:"streams"`
}

// probeFormat inspects path with ffprobe, giving an opinion on the converted
// file that is independent of the go-audio/wav header parser.
func probeFormat(path string) (Format, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return Format{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe([]byte(out))
}

func parseProbe(data []byte) (Format, error) {
	var po probeOutput
	if err := json.Unmarshal(data, &po); err != nil {
		return Format{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range po.Streams {
		if s.CodecType != "audio" {
			continue
		}
		rate, err := strconv.Atoi(s.SampleRate)
		if err != nil {
			return Format{}, fmt.Errorf("ffprobe sample_rate %q: %w", s.SampleRate, err)
		}
		return Format{
			SampleRate: rate,
			Channels:   s.Channels,
			BitDepth:   s.BitsPerSample,
		}, nil
	}
	return Format{}, fmt.Errorf("no audio stream found")
}

func TestParseProbe(t *testing.T) {
	out := `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "pcm_s16le",
     "sample_rate": "16000", "channels": 1, "bits_per_sample": 16}
  ],
  "format": {"format_name": "wav"}
}`
	got, err := parseProbe([]byte(out))
	if err != nil {
		t.Fatalf("parseProbe() error = %v", err)
	}
	if !got.Matches(Target) {
		t.Errorf("parseProbe() = %v, want %v", got, Target)
	}
}

func TestParseProbeNoAudio(t *testing.T) {
	out := `{"streams": [{"codec_type": "video", "codec_name": "h264"}]}`
	if _, err := parseProbe([]byte(out)); err == nil {
		t.Error("parseProbe() without an audio stream should return error")
	}
}

func TestParseProbeBadSampleRate(t *testing.T) {
	out := `{"streams": [{"codec_type": "audio", "sample_rate": "fast"}]}`
	if _, err := parseProbe([]byte(out)); err == nil {
		t.Error("parseProbe() with a non-numeric sample_rate should return error")
	}
}

func TestParseProbeInvalidJSON(t *testing.T) {
	if _, err := parseProbe([]byte("{")); err == nil {
		t.Error("parseProbe() on invalid JSON should return error")
	}
}
