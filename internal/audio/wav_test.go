package audio

import (
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes a 16-bit PCM WAV with the given layout and samples.
func writeTestWAV(t *testing.T, path string, sampleRate, channels int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer func() { _ = f.Close() }()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder %s: %v", path, err)
	}
}

func TestReadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeTestWAV(t, path, 44100, 2, make([]int, 4410*2))

	got, err := ReadFormat(path)
	if err != nil {
		t.Fatalf("ReadFormat() error = %v", err)
	}
	want := Format{SampleRate: 44100, Channels: 2, BitDepth: 16}
	if got != want {
		t.Errorf("ReadFormat() = %v, want %v", got, want)
	}
}

func TestReadFormatNotWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	if err := os.WriteFile(path, []byte("definitely not RIFF"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadFormat(path); err == nil {
		t.Error("ReadFormat() on a non-WAV file should return error")
	}
}

func TestReadSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono16k.wav")
	data := []int{0, 16384, -16384, 32767, -32768}
	writeTestWAV(t, path, 16000, 1, data)

	samples, err := ReadSamples(path)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if len(samples) != len(data) {
		t.Fatalf("ReadSamples() returned %d samples, want %d", len(samples), len(data))
	}

	want := []float32{0, 0.5, -0.5, 32767.0 / 32768.0, -1}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("samples[%d] = %f, want %f", i, samples[i], want[i])
		}
	}
	for i, s := range samples {
		if s < -1.0 || s > 1.0 {
			t.Fatalf("sample[%d] = %f, out of [-1.0, 1.0] range", i, s)
		}
	}
}

func TestReadSamplesRejectsWrongLayout(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		channels   int
	}{
		{"stereo", 16000, 2},
		{"44.1kHz", 44100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "wrong.wav")
			writeTestWAV(t, path, tt.sampleRate, tt.channels, make([]int, 100*tt.channels))

			if _, err := ReadSamples(path); err == nil {
				t.Errorf("ReadSamples() on %s audio should return error", tt.name)
			}
		})
	}
}

func TestReadSamplesMissingFile(t *testing.T) {
	if _, err := ReadSamples("/nonexistent/audio.wav"); err == nil {
		t.Error("ReadSamples() on a missing file should return error")
	}
}
