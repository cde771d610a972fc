package audio

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

// ReadFormat reads the sample layout from a WAV file header.
func ReadFormat(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return Format{}, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return Format{}, fmt.Errorf("audio: %s is not a valid WAV file", path)
	}
	return decoderFormat(dec), nil
}

// ReadSamples decodes a normalized WAV file into mono float32 samples
// in [-1.0, 1.0]. Files that are not 16-bit PCM in the Target layout are rejected.
func ReadSamples(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audio: open %s: %w", path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("audio: %s is not a valid WAV file", path)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return nil, fmt.Errorf("audio: %s: unsupported WAV encoding %d, want PCM", path, dec.WavAudioFormat)
	}
	if got := decoderFormat(dec); !got.Matches(Target) {
		return nil, fmt.Errorf("audio: %s is %s, want %s", path, got, Target)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("audio: decode %s: %w", path, err)
	}

	// Convert int samples to float32 normalized to [-1.0, 1.0]
	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float32(s) / 32768.0
	}
	return samples, nil
}

func decoderFormat(dec *wav.Decoder) Format {
	return Format{
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
		BitDepth:   int(dec.BitDepth),
	}
}
