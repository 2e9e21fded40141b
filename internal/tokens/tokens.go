// Package tokens counts text in model vocabulary tokens. Counting happens
// client side so length caps can be computed before a prompt ever reaches
// the inference provider.
package tokens

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

const (
	// GPT2Encoding is the BPE used by gpt2 and the older GPT-3 models.
	GPT2Encoding = "r50k_base"

	gpt2EOSID = 50256
)

// Counter counts tokens under a fixed BPE encoding.
type Counter struct {
	encoding *tiktoken.Tiktoken
	name     string
	eosID    int
}

// NewCounter loads the named encoding. Loading can pull the BPE ranks from
// the network on first use, so failures are reported instead of deferred.
func NewCounter(encodingName string) (*Counter, error) {
	encoding, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("tokens: load encoding %q: %w", encodingName, err)
	}
	return &Counter{
		encoding: encoding,
		name:     encodingName,
		eosID:    eosFor(encodingName),
	}, nil
}

// NewGPT2 loads the GPT-2 vocabulary, the one the default suggestion model
// decodes with.
func NewGPT2() (*Counter, error) {
	return NewCounter(GPT2Encoding)
}

// Count returns the number of tokens in text. Empty text counts as zero.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.encoding.Encode(text, nil, nil))
}

// Name returns the encoding name.
func (c *Counter) Name() string {
	return c.name
}

// EOSID returns the end-of-text id of the encoding.
func (c *Counter) EOSID() int {
	return c.eosID
}

func eosFor(encodingName string) int {
	switch encodingName {
	case "cl100k_base":
		return 100257
	default:
		// r50k_base and p50k_base share <|endoftext|>.
		return gpt2EOSID
	}
}
