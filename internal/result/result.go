// Package result encodes a transcription as the JSON document callers consume.
package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Result is the single output of a run.
type Result struct {
	Transcription string `json:"transcription"`
}

// WriteFile writes r to path as indented UTF-8 JSON, replacing any existing file.
// Non-ASCII and HTML characters are written literally.
func WriteFile(path string, r Result) error {
	data, err := encode(r, "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("result: write %s: %w", path, err)
	}
	return nil
}

// Print writes r to w as one line of compact JSON.
func Print(w io.Writer, r Result) error {
	data, err := encode(r, "")
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("result: print: %w", err)
	}
	return nil
}

// ReadFile parses a result file written by WriteFile.
func ReadFile(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("result: read %s: %w", path, err)
	}
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("result: parse %s: %w", path, err)
	}
	return r, nil
}

// encode returns r as JSON followed by a newline.
func encode(r Result, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("result: encode: %w", err)
	}
	return buf.Bytes(), nil
}
