package transcribe

import (
	"errors"
	"os"
	"runtime"
	"testing"
)

func missingStat(string) (os.FileInfo, error) { return nil, os.ErrNotExist }

func missingLookPath(string) (string, error) { return "", errors.New("not found") }

func TestDeviceProbeDetect(t *testing.T) {
	tests := []struct {
		name  string
		probe deviceProbe
		want  Device
	}{
		{
			name:  "apple silicon",
			probe: deviceProbe{goos: "darwin", goarch: "arm64", stat: missingStat, lookPath: missingLookPath},
			want:  Metal,
		},
		{
			name:  "intel mac",
			probe: deviceProbe{goos: "darwin", goarch: "amd64", stat: missingStat, lookPath: missingLookPath},
			want:  CPU,
		},
		{
			name: "nvidia device node",
			probe: deviceProbe{goos: "linux", goarch: "amd64", cuda: true,
				stat:     func(p string) (os.FileInfo, error) { return os.Stat(os.TempDir()) },
				lookPath: missingLookPath},
			want: CUDA,
		},
		{
			name: "nvidia-smi on PATH",
			probe: deviceProbe{goos: "linux", goarch: "amd64", cuda: true, stat: missingStat,
				lookPath: func(string) (string, error) { return "/usr/bin/nvidia-smi", nil }},
			want: CUDA,
		},
		{
			name: "nvidia device node without cuda build",
			probe: deviceProbe{goos: "linux", goarch: "amd64",
				stat:     func(p string) (os.FileInfo, error) { return os.Stat(os.TempDir()) },
				lookPath: func(string) (string, error) { return "/usr/bin/nvidia-smi", nil }},
			want: CPU,
		},
		{
			name:  "cuda build without gpu",
			probe: deviceProbe{goos: "linux", goarch: "amd64", cuda: true, stat: missingStat, lookPath: missingLookPath},
			want:  CPU,
		},
		{
			name:  "plain linux",
			probe: deviceProbe{goos: "linux", goarch: "amd64", stat: missingStat, lookPath: missingLookPath},
			want:  CPU,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.probe.detect(); got != tt.want {
				t.Errorf("detect() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHostProbeMatchesBuild(t *testing.T) {
	if got := hostProbe().cuda; got != cudaBuilt {
		t.Errorf("hostProbe().cuda = %t, want %t", got, cudaBuilt)
	}
	if !cudaBuilt && DetectDevice() == CUDA {
		t.Error("DetectDevice() = cuda in a build without the cuda tag")
	}
}

func TestSelectDeviceForcedCPU(t *testing.T) {
	if got := SelectDevice("cpu"); got != CPU {
		t.Errorf("SelectDevice(\"cpu\") = %q, want %q", got, CPU)
	}
}

func TestDeviceThreads(t *testing.T) {
	if got := CPU.Threads(); got != runtime.NumCPU() {
		t.Errorf("CPU.Threads() = %d, want %d", got, runtime.NumCPU())
	}
	for _, d := range []Device{CUDA, Metal} {
		got := d.Threads()
		if got < 1 || got > 4 {
			t.Errorf("%s.Threads() = %d, want 1..4", d, got)
		}
		if !d.Accelerated() {
			t.Errorf("%s.Accelerated() = false", d)
		}
	}
	if CPU.Accelerated() {
		t.Error("CPU.Accelerated() = true")
	}
}
