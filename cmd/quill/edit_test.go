package main

import (
	"context"
	"strings"
	"testing"

	"github.com/quill-lm/quill/internal/assist"
	"github.com/quill-lm/quill/internal/hub"
	"github.com/quill-lm/quill/internal/session"
)

func TestParseEditCommand(t *testing.T) {
	tests := []struct {
		line     string
		wantName string
		wantArg  string
	}{
		{":quit", "quit", ""},
		{":accept 3", "accept", "3"},
		{":task  formal", "task", "formal"},
		{":TASK formal", "task", "formal"},
		{":decoding stochastic", "decoding", "stochastic"},
		{":", "", ""},
	}
	for _, tc := range tests {
		name, arg := parseEditCommand(tc.line)
		if name != tc.wantName || arg != tc.wantArg {
			t.Fatalf("parseEditCommand(%q): got (%q, %q), want (%q, %q)",
				tc.line, name, arg, tc.wantName, tc.wantArg)
		}
	}
}

type canned struct {
	outs []string
}

func (c canned) Generate(_ context.Context, inputs []string, _ hub.Params) ([]string, error) {
	return c.outs, nil
}

type wordCounter struct{}

func (wordCounter) Count(s string) int { return len(strings.Fields(s)) }

func newTestEditor(t *testing.T, text string) *editor {
	t.Helper()
	return &editor{
		state:     session.New(text),
		suggester: assist.NewSuggester(canned{}, wordCounter{}, 50256),
		task:      assist.TaskGrammar,
		strategy:  assist.StrategyGreedy,
		maxLength: 200,
		count:     5,
		tokensPer: 1,
	}
}

func TestHandleCommandSettings(t *testing.T) {
	ctx := context.Background()
	ed := newTestEditor(t, "Hello")

	if _, err := ed.handleCommand(ctx, ":task formal"); err != nil {
		t.Fatalf("set task: %v", err)
	}
	if ed.task != assist.TaskFormal {
		t.Fatalf("task: got %q", ed.task)
	}

	if _, err := ed.handleCommand(ctx, ":task bogus"); err == nil {
		t.Fatal("expected error for unknown task")
	}
	if ed.task != assist.TaskFormal {
		t.Fatalf("failed set must not change the task: got %q", ed.task)
	}

	if _, err := ed.handleCommand(ctx, ":decoding stochastic"); err != nil {
		t.Fatalf("set decoding: %v", err)
	}
	if ed.strategy != assist.StrategyStochastic {
		t.Fatalf("strategy: got %q", ed.strategy)
	}

	if _, err := ed.handleCommand(ctx, ":count 3"); err != nil {
		t.Fatalf("set count: %v", err)
	}
	if ed.count != 3 {
		t.Fatalf("count: got %d", ed.count)
	}
	if _, err := ed.handleCommand(ctx, ":count zero"); err == nil {
		t.Fatal("expected error for non-numeric count")
	}
	if _, err := ed.handleCommand(ctx, ":tokens 4"); err != nil {
		t.Fatalf("set tokens: %v", err)
	}
	if ed.tokensPer != 4 {
		t.Fatalf("tokensPer: got %d", ed.tokensPer)
	}
}

func TestHandleCommandQuit(t *testing.T) {
	ctx := context.Background()
	ed := newTestEditor(t, "Hello")

	for _, line := range []string{":q", ":quit", ":exit"} {
		quit, err := ed.handleCommand(ctx, line)
		if err != nil {
			t.Fatalf("%s: %v", line, err)
		}
		if !quit {
			t.Fatalf("%s must quit", line)
		}
	}

	if _, err := ed.handleCommand(ctx, ":bogus"); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestHandleCommandAccept(t *testing.T) {
	ctx := context.Background()
	ed := newTestEditor(t, "He went")
	ed.state.SetSuggestions([]string{" home", "\n"})

	if _, err := ed.handleCommand(ctx, ":accept 1"); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if ed.state.Text != "He went home" {
		t.Fatalf("text after accept: got %q", ed.state.Text)
	}

	if _, err := ed.handleCommand(ctx, ":accept 9"); err == nil {
		t.Fatal("expected error for out-of-range suggestion")
	}
	if _, err := ed.handleCommand(ctx, ":accept one"); err == nil {
		t.Fatal("expected error for non-numeric suggestion")
	}
}

func TestHandleCommandReplace(t *testing.T) {
	ctx := context.Background()
	ed := newTestEditor(t, "He go to school.")

	if _, err := ed.handleCommand(ctx, ":replace"); err == nil {
		t.Fatal("expected error when no rewrite is pending")
	}

	ed.lastRewrite = "He goes to school."
	if _, err := ed.handleCommand(ctx, ":replace"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if ed.state.Text != "He goes to school." {
		t.Fatalf("text after replace: got %q", ed.state.Text)
	}
	if ed.lastRewrite != "" {
		t.Fatal("replace must consume the pending rewrite")
	}
	if !ed.state.WantSuggestions {
		t.Fatal("replace must resume suggestions")
	}
}

func TestRewriteWithoutAccelerator(t *testing.T) {
	ctx := context.Background()
	ed := newTestEditor(t, "Hello")

	if _, err := ed.handleCommand(ctx, ":rewrite"); err == nil {
		t.Fatal("expected error when no rewriter is configured")
	}
}
