package transcribe

import (
	"os"
	"os/exec"
	"runtime"
)

// Device is the hardware inference runs on.
type Device string

const (
	CPU   Device = "cpu"
	CUDA  Device = "cuda"
	Metal Device = "metal"
)

// Accelerated reports whether d is a hardware accelerator.
func (d Device) Accelerated() bool {
	return d == CUDA || d == Metal
}

// Threads returns the number of CPU threads inference should use on d.
// With an accelerator the CPU only feeds it.
func (d Device) Threads() int {
	n := runtime.NumCPU()
	if d.Accelerated() {
		return min(n, 4)
	}
	return n
}

// deviceProbe holds the host lookups device detection needs.
type deviceProbe struct {
	goos   string
	goarch string
	// cuda is set when the linked library can run on an NVIDIA GPU.
	cuda     bool
	stat     func(string) (os.FileInfo, error)
	lookPath func(string) (string, error)
}

func hostProbe() deviceProbe {
	return deviceProbe{
		goos:     runtime.GOOS,
		goarch:   runtime.GOARCH,
		cuda:     cudaBuilt,
		stat:     os.Stat,
		lookPath: exec.LookPath,
	}
}

// DetectDevice reports the best device available on this host that the
// linked whisper.cpp can use. An NVIDIA GPU only counts in a cuda build.
func DetectDevice() Device {
	return hostProbe().detect()
}

// SelectDevice resolves a transcribe.device setting: "cpu" forces the CPU,
// anything else uses DetectDevice.
func SelectDevice(pref string) Device {
	if pref == string(CPU) {
		return CPU
	}
	return DetectDevice()
}

func (p deviceProbe) detect() Device {
	if p.goos == "darwin" && p.goarch == "arm64" {
		return Metal
	}
	if !p.cuda {
		return CPU
	}
	if _, err := p.stat("/dev/nvidia0"); err == nil {
		return CUDA
	}
	if _, err := p.lookPath("nvidia-smi"); err == nil {
		return CUDA
	}
	return CPU
}
