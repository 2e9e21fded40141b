package main

import (
	"bytes"
	"strings"
	"testing"
)

func swapTTY(t *testing.T, tty bool) {
	t.Helper()
	prev := stdinIsTTY
	stdinIsTTY = func() bool { return tty }
	t.Cleanup(func() { stdinIsTTY = prev })
}

func TestResolveText(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		swapTTY(t, false)
		got, err := resolveText("from flag", []string{"from", "args"}, strings.NewReader("from stdin\n"))
		if err != nil {
			t.Fatalf("resolveText returned error: %v", err)
		}
		if got != "from flag" {
			t.Fatalf("unexpected text: got %q", got)
		}
	})

	t.Run("arguments join with spaces", func(t *testing.T) {
		swapTTY(t, true)
		got, err := resolveText("", []string{"He", "went", "home."}, strings.NewReader(""))
		if err != nil {
			t.Fatalf("resolveText returned error: %v", err)
		}
		if got != "He went home." {
			t.Fatalf("unexpected text: got %q", got)
		}
	})

	t.Run("piped stdin is read", func(t *testing.T) {
		swapTTY(t, false)
		got, err := resolveText("", nil, strings.NewReader("piped text\n"))
		if err != nil {
			t.Fatalf("resolveText returned error: %v", err)
		}
		if got != "piped text" {
			t.Fatalf("unexpected text: got %q", got)
		}
	})

	t.Run("inner newlines survive", func(t *testing.T) {
		swapTTY(t, false)
		got, err := resolveText("", nil, strings.NewReader("one\ntwo\n"))
		if err != nil {
			t.Fatalf("resolveText returned error: %v", err)
		}
		if got != "one\ntwo" {
			t.Fatalf("unexpected text: got %q", got)
		}
	})

	t.Run("tty without input errors", func(t *testing.T) {
		swapTTY(t, true)
		if _, err := resolveText("", nil, bytes.NewBuffer(nil)); err == nil {
			t.Fatal("expected error when no text is available")
		}
	})

	t.Run("blank stdin errors", func(t *testing.T) {
		swapTTY(t, false)
		if _, err := resolveText("", nil, strings.NewReader("  \n")); err == nil {
			t.Fatal("expected error for blank stdin")
		}
	})
}
