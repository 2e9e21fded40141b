package device

import (
	"os"
	"os/exec"
)

// Detect picks a concrete device for Auto. QUILL_DEVICE wins when set to a
// concrete device; otherwise CUDA_VISIBLE_DEVICES is honored the way the
// driver reads it, then local driver traces are probed.
func Detect() string {
	return detect(os.LookupEnv, hasNVIDIADriver, hasNVIDIASMI)
}

func detect(lookupEnv func(string) (string, bool), driver, smi func() bool) string {
	if v, ok := lookupEnv("QUILL_DEVICE"); ok {
		if d, err := Normalize(v); err == nil && d != Auto {
			return d
		}
	}
	if v, ok := lookupEnv("CUDA_VISIBLE_DEVICES"); ok {
		// Empty or -1 masks every GPU.
		if v == "" || v == "-1" {
			return CPU
		}
		return CUDA
	}
	if driver() || smi() {
		return CUDA
	}
	return CPU
}

func hasNVIDIADriver() bool {
	info, err := os.Stat("/proc/driver/nvidia")
	return err == nil && info.IsDir()
}

func hasNVIDIASMI() bool {
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}
