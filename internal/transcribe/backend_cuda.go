//go:build cuda

package transcribe

// cudaBuilt reports whether the linked whisper.cpp has the CUDA backend.
// Set by building with -tags cuda against a GGML_CUDA=ON library.
const cudaBuilt = true
