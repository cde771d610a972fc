// Package audio normalizes source audio into the waveform whisper expects and
// reads it back as float32 samples.
//
// Normalization shells out to ffmpeg; format inspection uses ffprobe or the
// WAV header directly.
package audio

import "fmt"

// Format describes the sample layout of an audio file.
type Format struct {
	SampleRate int
	Channels   int
	BitDepth   int
}

// Target is the layout every normalized file must have: mono, 16 kHz, 16-bit PCM.
var Target = Format{SampleRate: 16000, Channels: 1, BitDepth: 16}

// Matches reports whether f has exactly the same layout as want.
func (f Format) Matches(want Format) bool {
	return f == want
}

func (f Format) String() string {
	return fmt.Sprintf("%dHz, %dch, %d-bit", f.SampleRate, f.Channels, f.BitDepth)
}
