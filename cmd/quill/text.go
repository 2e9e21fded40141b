package main

import (
	"errors"
	"io"
	"os"
	"strings"
)

// stdinIsTTY is a small seam for tests.
var stdinIsTTY = isTTY

// resolveText picks the text to operate on: the --text flag wins, then
// positional arguments, then piped stdin.
func resolveText(flagText string, args []string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(flagText) != "" {
		return flagText, nil
	}
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !stdinIsTTY() {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", err
		}
		text := strings.TrimRight(string(data), "\r\n")
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	return "", errors.New("no text given; pass --text, an argument, or pipe stdin")
}

func isTTY() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}

func stdoutIsTTY() bool {
	st, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}
