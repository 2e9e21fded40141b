//go:build !linux

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

var plainStdin *bufio.Reader

func readInteractiveLine(prompt string) (string, error) {
	if stdinIsTTY() {
		fmt.Print(prompt)
	}
	if plainStdin == nil {
		plainStdin = bufio.NewReader(os.Stdin)
	}
	s, err := plainStdin.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	if err == io.EOF && s == "" {
		return "", io.EOF
	}
	return trimTrailingNewline(s), nil
}

func trimTrailingNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if len(s) > 0 && s[len(s)-1] == '\r' {
		s = s[:len(s)-1]
	}
	return s
}
