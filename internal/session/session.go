// Package session holds the state of one interactive editing session. The
// state is an explicit value owned by whichever surface drives the session;
// the generation operations themselves never see it.
package session

// DefaultText seeds sessions that start without any text.
const DefaultText = "Talk like Yoda I will. Very wise he was. Strong with the force he was."

// State is one editor session. Not safe for concurrent use; each session
// belongs to a single driver.
type State struct {
	// Text is the working document.
	Text string
	// Suggestions is the last suggestion batch shown to the user. It
	// survives until the next SetSuggestions so stale entries remain
	// clickable while fresh ones are generated.
	Suggestions []string
	// WantSuggestions marks that the next cycle should regenerate
	// suggestions. Generating does not clear it; only an explicit pause
	// does, so a session keeps refreshing as the text evolves.
	WantSuggestions bool
	// Revision counts mutations, for surfaces that need cheap change
	// detection.
	Revision int
}

// New starts a session with the given text. Suggestions are wanted from
// the first cycle.
func New(text string) *State {
	return &State{
		Text:            text,
		WantSuggestions: true,
	}
}

// SetText replaces the working text, as when the user edits the document
// directly. Any text change makes fresh suggestions wanted.
func (s *State) SetText(text string) {
	s.Text = text
	s.WantSuggestions = true
	s.Revision++
}

// Replace swaps in a rewritten version of the document and re-enables
// suggestions that a rewrite had paused.
func (s *State) Replace(rewritten string) {
	s.SetText(rewritten)
}

// AcceptSuggestion appends suggestion i to the text verbatim, including
// any whitespace it carries.
func (s *State) AcceptSuggestion(i int) bool {
	if i < 0 || i >= len(s.Suggestions) {
		return false
	}
	s.SetText(s.Text + s.Suggestions[i])
	return true
}

// SetSuggestions installs a fresh suggestion batch. The want flag is left
// alone.
func (s *State) SetSuggestions(suggestions []string) {
	s.Suggestions = suggestions
	s.Revision++
}

// RequestSuggestions asks the next cycle to regenerate.
func (s *State) RequestSuggestions() {
	s.WantSuggestions = true
	s.Revision++
}

// PauseSuggestions stops regeneration, as after a completed rewrite whose
// result is still pending the user's accept or discard.
func (s *State) PauseSuggestions() {
	s.WantSuggestions = false
	s.Revision++
}

// Placeholder returns a visible label for a suggestion. Bare whitespace
// suggestions are real and accepted verbatim, but they need a name to be
// clickable.
func Placeholder(suggestion string) string {
	switch suggestion {
	case "\n":
		return "<newline>"
	case " ":
		return "<space>"
	default:
		return suggestion
	}
}
