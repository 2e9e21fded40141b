package main

import (
	"bytes"
	"testing"
)

func TestParseStreamMode(t *testing.T) {
	tests := []struct {
		in      string
		want    StreamMode
		wantErr bool
	}{
		{"instant", StreamInstant, false},
		{"typewriter", StreamTypewriter, false},
		{"quiet", StreamQuiet, false},
		{"", StreamInstant, false},
		{"smooth", "", true},
	}
	for _, tc := range tests {
		got, err := ParseStreamMode(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseStreamMode(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseStreamMode(%q) returned error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseStreamMode(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestStreamWriterInstant(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(StreamInstant, &buf)

	w.Write("Hello ")
	if buf.String() != "Hello " {
		t.Fatalf("instant mode must print immediately: got %q", buf.String())
	}
	w.Write("world")

	if got := w.Flush(); got != "Hello world" {
		t.Fatalf("Flush: got %q", got)
	}
	if buf.String() != "Hello world" {
		t.Fatalf("output: got %q", buf.String())
	}
}

func TestStreamWriterQuietHoldsUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(StreamQuiet, &buf)

	w.Write("Hello ")
	w.Write("world")
	if buf.Len() != 0 {
		t.Fatalf("quiet mode printed early: %q", buf.String())
	}

	if got := w.Flush(); got != "Hello world" {
		t.Fatalf("Flush: got %q", got)
	}
	if buf.String() != "Hello world" {
		t.Fatalf("output: got %q", buf.String())
	}
}

func TestStreamWriterTypewriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewStreamWriter(StreamTypewriter, &buf)
	w.delay = 0

	w.Write("héllo\n")
	if got := w.Flush(); got != "héllo\n" {
		t.Fatalf("Flush: got %q", got)
	}
	if buf.String() != "héllo\n" {
		t.Fatalf("output: got %q", buf.String())
	}
}
