//go:build linux

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

var editHistory []string

// readInteractiveLine reads one line in raw mode with emacs-style editing
// and history. When stdin is not a terminal it degrades to a buffered read.
func readInteractiveLine(prompt string) (string, error) {
	if !stdinIsTTY() {
		return readPlainLine()
	}

	fd := int(os.Stdin.Fd())
	saved, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return "", err
	}
	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return "", err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, unix.TCSETS, saved)
	}()

	line := &rawLine{prompt: prompt, histPos: len(editHistory)}
	fmt.Print(prompt)

	var buf [16]byte
	for {
		n, err := os.Stdin.Read(buf[:])
		if err != nil {
			return "", err
		}
		for i := 0; i < n; i++ {
			done, out, err := line.feed(buf[i])
			if err != nil {
				return "", err
			}
			if done {
				if strings.TrimSpace(out) != "" {
					editHistory = append(editHistory, out)
				}
				return out, nil
			}
		}
	}
}

// rawLine is the state of one line being edited: the bytes, the cursor, any
// pending escape sequence, and the history browse position.
type rawLine struct {
	prompt string
	buf    []byte
	cursor int

	esc    int // 0 none, 1 after ESC, 2 inside a CSI sequence
	escSeq strings.Builder

	histPos  int
	browsing bool
	draft    string
}

// feed consumes one input byte. done is true once the line is finished.
func (l *rawLine) feed(b byte) (done bool, out string, err error) {
	if l.esc != 0 {
		l.feedEscape(b)
		return false, "", nil
	}

	switch b {
	case 27: // ESC
		l.esc = 1
	case '\r', '\n':
		fmt.Print("\r\n")
		return true, string(l.buf), nil
	case 3: // Ctrl+C
		fmt.Print("^C\r\n")
		return false, "", io.EOF
	case 4: // Ctrl+D
		if len(l.buf) == 0 {
			fmt.Print("\r\n")
			return false, "", io.EOF
		}
	case 127, 8: // backspace
		l.backspace()
	case 1: // Ctrl+A
		l.cursor = 0
		l.redraw()
	case 5: // Ctrl+E
		l.cursor = len(l.buf)
		l.redraw()
	case 23: // Ctrl+W
		l.killWordBack()
	default:
		if b >= 32 {
			l.insert(b)
		}
	}
	return false, "", nil
}

func (l *rawLine) feedEscape(b byte) {
	switch l.esc {
	case 1:
		switch {
		case b == '[':
			l.esc = 2
			l.escSeq.Reset()
		case b == 'b' || b == 'B': // Alt+b
			l.esc = 0
			l.wordLeft()
		case b == 'f' || b == 'F': // Alt+f
			l.esc = 0
			l.wordRight()
		case b == 127: // Alt+Backspace
			l.esc = 0
			l.killWordBack()
		default:
			l.esc = 0
		}
	case 2:
		l.escSeq.WriteByte(b)
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			l.esc = 0
			l.handleCSI(l.escSeq.String())
		}
	}
}

func (l *rawLine) handleCSI(seq string) {
	switch seq {
	case "A": // up
		l.historyPrev()
	case "B": // down
		l.historyNext()
	case "D":
		if l.cursor > 0 {
			l.cursor--
			l.redraw()
		}
	case "C":
		if l.cursor < len(l.buf) {
			l.cursor++
			l.redraw()
		}
	case "H":
		l.cursor = 0
		l.redraw()
	case "F":
		l.cursor = len(l.buf)
		l.redraw()
	case "3~": // Delete
		if l.cursor < len(l.buf) {
			l.buf = append(l.buf[:l.cursor], l.buf[l.cursor+1:]...)
			l.redraw()
		}
	case "1;5D", "5D": // Ctrl+Left
		l.wordLeft()
	case "1;5C", "5C": // Ctrl+Right
		l.wordRight()
	case "3;5~": // Ctrl+Delete
		l.killWordForward()
	}
}

func (l *rawLine) insert(b byte) {
	if l.cursor == len(l.buf) {
		l.buf = append(l.buf, b)
	} else {
		l.buf = append(l.buf, 0)
		copy(l.buf[l.cursor+1:], l.buf[l.cursor:])
		l.buf[l.cursor] = b
	}
	l.cursor++
	l.redraw()
}

func (l *rawLine) backspace() {
	if l.cursor == 0 {
		return
	}
	l.buf = append(l.buf[:l.cursor-1], l.buf[l.cursor:]...)
	l.cursor--
	l.redraw()
}

func (l *rawLine) wordLeft() {
	for l.cursor > 0 && isWordSpace(l.buf[l.cursor-1]) {
		l.cursor--
	}
	for l.cursor > 0 && !isWordSpace(l.buf[l.cursor-1]) {
		l.cursor--
	}
	l.redraw()
}

func (l *rawLine) wordRight() {
	for l.cursor < len(l.buf) && isWordSpace(l.buf[l.cursor]) {
		l.cursor++
	}
	for l.cursor < len(l.buf) && !isWordSpace(l.buf[l.cursor]) {
		l.cursor++
	}
	l.redraw()
}

func (l *rawLine) killWordBack() {
	if l.cursor == 0 {
		return
	}
	start := l.cursor
	for start > 0 && isWordSpace(l.buf[start-1]) {
		start--
	}
	for start > 0 && !isWordSpace(l.buf[start-1]) {
		start--
	}
	l.buf = append(l.buf[:start], l.buf[l.cursor:]...)
	l.cursor = start
	l.redraw()
}

func (l *rawLine) killWordForward() {
	if l.cursor >= len(l.buf) {
		return
	}
	end := l.cursor
	for end < len(l.buf) && isWordSpace(l.buf[end]) {
		end++
	}
	for end < len(l.buf) && !isWordSpace(l.buf[end]) {
		end++
	}
	l.buf = append(l.buf[:l.cursor], l.buf[end:]...)
	l.redraw()
}

func (l *rawLine) historyPrev() {
	if len(editHistory) == 0 {
		return
	}
	if !l.browsing {
		l.draft = string(l.buf)
		l.browsing = true
		l.histPos = len(editHistory)
	}
	if l.histPos > 0 {
		l.histPos--
		l.setLine(editHistory[l.histPos])
	}
}

func (l *rawLine) historyNext() {
	if !l.browsing {
		return
	}
	if l.histPos < len(editHistory)-1 {
		l.histPos++
		l.setLine(editHistory[l.histPos])
	} else {
		l.histPos = len(editHistory)
		l.browsing = false
		l.setLine(l.draft)
	}
}

func (l *rawLine) setLine(s string) {
	l.buf = append(l.buf[:0], s...)
	l.cursor = len(l.buf)
	l.redraw()
}

func (l *rawLine) redraw() {
	fmt.Printf("\r%s%s\x1b[K", l.prompt, string(l.buf))
	if l.cursor < len(l.buf) {
		fmt.Printf("\r%s%s", l.prompt, string(l.buf[:l.cursor]))
	}
}

func isWordSpace(b byte) bool {
	return b == ' ' || b == '\t'
}

var plainStdin *bufio.Reader

func readPlainLine() (string, error) {
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
