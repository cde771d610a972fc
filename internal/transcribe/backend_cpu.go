//go:build !cuda

package transcribe

// cudaBuilt reports whether the linked whisper.cpp has the CUDA backend.
const cudaBuilt = false
