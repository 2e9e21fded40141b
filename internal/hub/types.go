// Package hub talks to a hosted text-generation service. The service owns
// the models, the tokenizers, and the decode loop; quill only assembles
// prompts and generation parameters and ships them over HTTP.
package hub

import "errors"

var (
	// ErrMissingModel is returned when a request names no model.
	ErrMissingModel = errors.New("hub: model is required")
	// ErrEmptyInputs is returned when a request carries no prompts.
	ErrEmptyInputs = errors.New("hub: at least one input is required")
)

// Params are generation kwargs the provider consumes verbatim. Field names
// on the wire match the provider's own vocabulary, so nothing here is
// renamed or reinterpreted client side.
//
// DoSample and NumBeams describe mutually exclusive decoding modes; callers
// set one or the other, never both.
type Params struct {
	DoSample           bool    `json:"do_sample"`
	TopP               float64 `json:"top_p,omitempty"`
	NumBeams           int     `json:"num_beams,omitempty"`
	MaxLength          int     `json:"max_length,omitempty"`
	NumReturnSequences int     `json:"num_return_sequences,omitempty"`
	NoRepeatNgramSize  int     `json:"no_repeat_ngram_size,omitempty"`
	EOSTokenID         int     `json:"eos_token_id,omitempty"`
	PadTokenID         int     `json:"pad_token_id,omitempty"`

	// LowMemory travels in the request options block, not the generation
	// parameters. It is forwarded opaquely.
	LowMemory bool `json:"-"`
}

// GenerateRequest is one inference call. Inputs keeps prompt order; the
// whole batch succeeds or fails together.
type GenerateRequest struct {
	Model  string
	Device string
	Inputs []string
	Params Params
}

// GenerateResponse carries the decoded sequences in input-major,
// sequence-minor order: all sequences for Inputs[0] first, then Inputs[1],
// and so on. Special tokens are already stripped by the provider.
type GenerateResponse struct {
	Texts []string
}
