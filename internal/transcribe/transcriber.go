// Package transcribe turns normalized audio files into text.
//
// The only backend is whisper.cpp via its Go bindings. Inference always runs
// with the English language hint at full precision.
package transcribe

// Language is the language hint passed to the model.
const Language = "en"

// Transcriber converts a normalized audio file to text.
type Transcriber interface {
	// Transcribe transcribes a mono 16kHz 16-bit PCM WAV file. A result with
	// no speech is an empty string, not an error.
	Transcribe(wavPath string) (string, error)
	// Close releases backend resources.
	Close() error
}
