package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

type StreamMode string

const (
	StreamInstant    StreamMode = "instant"
	StreamTypewriter StreamMode = "typewriter"
	StreamQuiet      StreamMode = "quiet"
)

// typewriterDelay is the reveal speed of the typewriter mode.
const typewriterDelay = 10 * time.Millisecond

func ParseStreamMode(s string) (StreamMode, error) {
	switch mode := StreamMode(s); mode {
	case StreamInstant, StreamTypewriter, StreamQuiet:
		return mode, nil
	case "":
		return StreamInstant, nil
	default:
		return "", fmt.Errorf("unknown stream mode %q (expected instant, typewriter, or quiet)", s)
	}
}

// StreamWriter presents generated text on a terminal. Instant prints a chunk
// as soon as it arrives, typewriter reveals it rune by rune, quiet holds
// everything back until Flush.
type StreamWriter struct {
	mode  StreamMode
	out   *bufio.Writer
	delay time.Duration

	mu    sync.Mutex
	accum strings.Builder
}

func NewStreamWriter(mode StreamMode, out io.Writer) *StreamWriter {
	return &StreamWriter{
		mode:  mode,
		out:   bufio.NewWriterSize(out, 4096),
		delay: typewriterDelay,
	}
}

// Write presents one chunk of generated text.
func (w *StreamWriter) Write(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.accum.WriteString(text)

	switch w.mode {
	case StreamTypewriter:
		for _, r := range text {
			_, _ = w.out.WriteRune(r)
			_ = w.out.Flush()
			if w.delay > 0 {
				time.Sleep(w.delay)
			}
		}
	case StreamQuiet:
		// Accumulate only.
	default:
		_, _ = w.out.WriteString(text)
		_ = w.out.Flush()
	}
}

// Flush drains buffered output and returns everything written so far.
// In quiet mode this is where the accumulated text finally prints.
func (w *StreamWriter) Flush() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	result := w.accum.String()
	if w.mode == StreamQuiet {
		_, _ = w.out.WriteString(result)
	}
	_ = w.out.Flush()
	return result
}
