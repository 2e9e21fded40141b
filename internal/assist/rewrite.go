package assist

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/quill-lm/quill/internal/hub"
)

// generatedMarker prefixes the joined model output before the final strip.
// Keeping the prefix-then-strip pipeline means model outputs that volunteer
// their own "generated" marker are cleaned the same way.
const generatedMarker = "Generated: "

var generatedMarkerRe = regexp.MustCompile(`(?i)^generated[:.]?\s*`)

// RewriteRequest describes one rewrite call. Strategy and LowMemory are
// forwarded as given; MaxLength is the provider's absolute sequence cap.
type RewriteRequest struct {
	Task      Task
	Text      string
	Strategy  string
	MaxLength int
	LowMemory bool
}

// Rewriter rewrites whole texts under a task instruction using a seq2seq
// model. It holds no per-call state; one Rewriter serves concurrent calls.
type Rewriter struct {
	gen Generator
	eos int
}

// NewRewriter binds a generator and the model's end-of-sequence id. The
// same id doubles as the pad id, a deliberate simplification the default
// model tolerates.
func NewRewriter(gen Generator, eosTokenID int) *Rewriter {
	return &Rewriter{gen: gen, eos: eosTokenID}
}

// Rewrite splits the text into sentence fragments, prompts the model once
// per fragment in a single batch, and reassembles the outputs in input
// order. Provider failures fail the whole call; there are no retries and
// no per-fragment recovery.
func (r *Rewriter) Rewrite(ctx context.Context, req RewriteRequest) (string, error) {
	fragments := SplitSentences(req.Text)
	prompts := make([]string, len(fragments))
	for i, fragment := range fragments {
		prompts[i] = req.Task.Prompt(fragment)
	}

	params := hub.Params{
		MaxLength:  req.MaxLength,
		EOSTokenID: r.eos,
		PadTokenID: r.eos,
		LowMemory:  req.LowMemory,
	}
	if Stochastic(req.Strategy) {
		params.DoSample = true
		params.TopP = nucleusTopP
	} else {
		params.NumBeams = 1
	}

	outs, err := r.gen.Generate(ctx, prompts, params)
	if err != nil {
		return "", fmt.Errorf("rewrite: %w", err)
	}

	return stripGeneratedMarker(generatedMarker + strings.Join(outs, " ")), nil
}

// stripGeneratedMarker removes leading "generated" markers, case
// insensitively, until none remains. The result never begins with the
// marker regardless of how many the model emitted.
func stripGeneratedMarker(s string) string {
	for {
		stripped := generatedMarkerRe.ReplaceAllString(s, "")
		if stripped == s {
			return s
		}
		s = stripped
	}
}
