package session

import "testing"

func TestNewWantsSuggestions(t *testing.T) {
	t.Parallel()

	s := New(DefaultText)
	if s.Text != DefaultText {
		t.Fatalf("text: got %q", s.Text)
	}
	if !s.WantSuggestions {
		t.Fatal("new sessions must want suggestions")
	}
	if s.Revision != 0 {
		t.Fatalf("revision: got %d, want 0", s.Revision)
	}
}

func TestSetTextRequestsSuggestions(t *testing.T) {
	t.Parallel()

	s := New("old")
	s.PauseSuggestions()

	s.SetText("new")
	if s.Text != "new" {
		t.Fatalf("text: got %q", s.Text)
	}
	if !s.WantSuggestions {
		t.Fatal("text change must re-enable suggestions")
	}
}

func TestRewriteAcceptCycle(t *testing.T) {
	t.Parallel()

	s := New("He go to school.")

	// A completed rewrite pauses suggestions until the user decides.
	s.PauseSuggestions()
	if s.WantSuggestions {
		t.Fatal("pause did not stick")
	}

	// Accepting the rewrite swaps the text and re-enables suggestions.
	s.Replace("He goes to school.")
	if s.Text != "He goes to school." {
		t.Fatalf("text: got %q", s.Text)
	}
	if !s.WantSuggestions {
		t.Fatal("replace must re-enable suggestions")
	}
}

func TestAcceptSuggestionAppendsVerbatim(t *testing.T) {
	t.Parallel()

	s := New("He went")
	s.SetSuggestions([]string{" home", "\n", " to the store"})

	if !s.AcceptSuggestion(1) {
		t.Fatal("accept rejected a valid index")
	}
	if s.Text != "He went\n" {
		t.Fatalf("text: got %q, want %q", s.Text, "He went\n")
	}

	if !s.AcceptSuggestion(0) {
		t.Fatal("accept rejected a valid index")
	}
	if s.Text != "He went\n home" {
		t.Fatalf("text: got %q, want %q", s.Text, "He went\n home")
	}
}

func TestAcceptSuggestionBounds(t *testing.T) {
	t.Parallel()

	s := New("x")
	if s.AcceptSuggestion(0) {
		t.Fatal("accept with no suggestions must fail")
	}

	s.SetSuggestions([]string{"a"})
	if s.AcceptSuggestion(-1) {
		t.Fatal("negative index must fail")
	}
	if s.AcceptSuggestion(1) {
		t.Fatal("out of range index must fail")
	}
	if s.Text != "x" {
		t.Fatalf("failed accepts must not touch text: %q", s.Text)
	}
}

func TestSetSuggestionsKeepsWantFlag(t *testing.T) {
	t.Parallel()

	s := New("x")
	s.SetSuggestions([]string{"a"})
	if !s.WantSuggestions {
		t.Fatal("installing suggestions must not clear the want flag")
	}

	s.PauseSuggestions()
	s.SetSuggestions([]string{"b"})
	if s.WantSuggestions {
		t.Fatal("installing suggestions must not set the want flag either")
	}
}

func TestRevisionCountsMutations(t *testing.T) {
	t.Parallel()

	s := New("x")
	before := s.Revision
	s.SetText("y")
	s.SetSuggestions([]string{"a"})
	s.AcceptSuggestion(0)
	s.PauseSuggestions()
	s.RequestSuggestions()
	if s.Revision != before+5 {
		t.Fatalf("revision: got %d, want %d", s.Revision, before+5)
	}
}

func TestPlaceholder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"\n", "<newline>"},
		{" ", "<space>"},
		{" home", " home"},
		{"", ""},
		{"  ", "  "},
	}
	for _, tc := range tests {
		if got := Placeholder(tc.in); got != tc.want {
			t.Errorf("Placeholder(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
