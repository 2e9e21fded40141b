package assist

import (
	"context"
	"fmt"
	"strings"

	"github.com/quill-lm/quill/internal/hub"
)

// suggestInstruction prefixes the user's text when asking a causal model
// for continuations.
const suggestInstruction = "Complete the sentences keeping the context intact: "

// TokenCounter counts text in the suggestion model's vocabulary.
// *tokens.Counter satisfies it.
type TokenCounter interface {
	Count(text string) int
}

// SuggestRequest describes one suggestion call. Count is forwarded as the
// number of returned sequences even when out of range; range checks belong
// to the caller.
type SuggestRequest struct {
	Text      string
	Count     int
	TokensPer int
	Strategy  string
	LowMemory bool
}

// Suggester produces short continuation candidates for a text using a
// causal model. Stateless; one Suggester serves concurrent calls.
type Suggester struct {
	gen     Generator
	counter TokenCounter
	eos     int
}

func NewSuggester(gen Generator, counter TokenCounter, eosTokenID int) *Suggester {
	return &Suggester{gen: gen, counter: counter, eos: eosTokenID}
}

// Suggest asks for Count continuations of roughly TokensPer tokens each.
// The length cap sent to the provider is an absolute sequence length, the
// prompt's token count plus TokensPer, so long prompts squeeze the budget.
// Decoded sequences have the prompt text removed wherever it appears, then
// duplicates and empties are dropped; fewer than Count survivors is normal.
func (s *Suggester) Suggest(ctx context.Context, req SuggestRequest) ([]string, error) {
	prompt := suggestInstruction + req.Text

	params := hub.Params{
		MaxLength:          s.counter.Count(prompt) + req.TokensPer,
		NumReturnSequences: req.Count,
		NoRepeatNgramSize:  2,
		EOSTokenID:         s.eos,
		PadTokenID:         s.eos,
		LowMemory:          req.LowMemory,
	}
	if Stochastic(req.Strategy) {
		params.DoSample = true
		params.TopP = nucleusTopP
	} else {
		params.NumBeams = req.Count
	}

	outs, err := s.gen.Generate(ctx, []string{prompt}, params)
	if err != nil {
		return nil, fmt.Errorf("suggest: %w", err)
	}

	seen := make(map[string]struct{}, len(outs))
	suggestions := make([]string, 0, len(outs))
	for _, out := range outs {
		candidate := strings.ReplaceAll(out, prompt, "")
		if candidate == "" {
			continue
		}
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		suggestions = append(suggestions, candidate)
	}
	return suggestions, nil
}
