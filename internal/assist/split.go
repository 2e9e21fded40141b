package assist

import "regexp"

// sentenceBoundary is a period followed by exactly one whitespace character.
// The match is consumed, so the period and that whitespace do not appear in
// any fragment.
var sentenceBoundary = regexp.MustCompile(`\.\s`)

// SplitSentences cuts text into fragments at each sentence boundary. The
// heuristic is deliberately crude and its quirks are contract: abbreviations
// split ("Dr. No" becomes "Dr" and "No"), decimals do not, '!' and '?' never
// split, and a trailing period with nothing after it stays attached to the
// last fragment. Empty input yields a single empty fragment.
func SplitSentences(text string) []string {
	return sentenceBoundary.Split(text, -1)
}
