// Package models knows which whisper ggml models exist and fetches them.
package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

// Size names a whisper model size.
type Size string

const (
	Tiny   Size = "tiny"
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
)

// DefaultBaseURL is where ggml model files are downloaded from.
const DefaultBaseURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

// Model describes a downloadable ggml model file.
type Model struct {
	Size     Size
	Filename string
	Bytes    int64 // approximate, for display only
}

const mib = 1024 * 1024

// registry lists models smallest first. The multilingual files are used so
// the language hint is honoured rather than baked into the weights.
var registry = []Model{
	{Size: Tiny, Filename: "ggml-tiny.bin", Bytes: 75 * mib},
	{Size: Small, Filename: "ggml-small.bin", Bytes: 466 * mib},
	{Size: Medium, Filename: "ggml-medium.bin", Bytes: 1533 * mib},
	{Size: Large, Filename: "ggml-large-v3.bin", Bytes: 3095 * mib},
}

// All returns every known model, smallest first.
func All() []Model {
	return append([]Model(nil), registry...)
}

// Names returns the accepted size names, smallest first.
func Names() []string {
	return lo.Map(registry, func(m Model, _ int) string { return string(m.Size) })
}

// Lookup returns the model for a size name.
func Lookup(size string) (Model, error) {
	m, ok := lo.Find(registry, func(m Model) bool { return string(m.Size) == size })
	if !ok {
		return Model{}, fmt.Errorf("models: unknown model size %q (supported: %s)", size, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Path returns where m lives inside dir.
func (m Model) Path(dir string) string {
	return filepath.Join(dir, m.Filename)
}

// URL returns the download URL for m under base.
func (m Model) URL(base string) string {
	return strings.TrimSuffix(base, "/") + "/" + m.Filename
}

// SizeMB returns the approximate size in MiB.
func (m Model) SizeMB() float64 {
	return float64(m.Bytes) / mib
}
