// Package device resolves where generation should be placed. The names
// travel to the inference provider verbatim; quill itself only needs them
// to decide which features a session can offer.
package device

import (
	"fmt"
	"strings"
)

const (
	CPU  = "cpu"
	CUDA = "cuda"
	Auto = "auto"
)

// Normalize validates a device name. Empty input means Auto.
func Normalize(name string) (string, error) {
	device := strings.ToLower(strings.TrimSpace(name))
	if device == "" {
		return Auto, nil
	}
	switch device {
	case CPU, CUDA, Auto:
		return device, nil
	default:
		return "", fmt.Errorf("unknown device %q (expected auto, cpu, or cuda)", device)
	}
}

// Resolve normalizes name and settles Auto to a concrete device.
func Resolve(name string) (string, error) {
	device, err := Normalize(name)
	if err != nil {
		return "", err
	}
	if device == Auto {
		device = Detect()
	}
	return device, nil
}

// Available returns a comma-separated list of usable devices.
func Available() string {
	entries := []string{CPU}
	if Detect() == CUDA {
		entries = append(entries, CUDA)
	}
	return strings.Join(entries, ",")
}
