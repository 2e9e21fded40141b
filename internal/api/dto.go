package api

import "fmt"

// Request bounds mirror the classic editor controls: length caps between 50
// and 500, suggestion counts and budgets between 1 and 10.
const (
	MaxTextLength = 10000

	MinMaxLength     = 50
	MaxMaxLength     = 500
	DefaultMaxLength = 200

	MinSuggestions     = 1
	MaxSuggestions     = 10
	DefaultSuggestions = 5

	MinTokensPer     = 1
	MaxTokensPer     = 10
	DefaultTokensPer = 1
)

// RewriteRequest is the body of POST /v1/rewrite. Task and decoding are
// passed through to the operation, including its unknown-value fallbacks.
type RewriteRequest struct {
	Text      string `json:"text"`
	Task      string `json:"task"`
	Decoding  string `json:"decoding,omitempty"`
	MaxLength int    `json:"max_length,omitempty"`
	LowMemory *bool  `json:"low_memory,omitempty"`
}

func (r *RewriteRequest) validate() error {
	if r.Text == "" {
		return newInvalidRequest("text is required")
	}
	if len(r.Text) > MaxTextLength {
		return newInvalidRequest(fmt.Sprintf("text exceeds %d characters", MaxTextLength))
	}
	if r.MaxLength != 0 && (r.MaxLength < MinMaxLength || r.MaxLength > MaxMaxLength) {
		return newInvalidRequest(fmt.Sprintf("max_length must be between %d and %d", MinMaxLength, MaxMaxLength))
	}
	return nil
}

func (r *RewriteRequest) applyDefaults() {
	if r.MaxLength == 0 {
		r.MaxLength = DefaultMaxLength
	}
	if r.LowMemory == nil {
		lowMemory := true
		r.LowMemory = &lowMemory
	}
}

// RewriteResponse echoes the resolved task so clients can show what was
// actually applied after an unknown task fell back.
type RewriteResponse struct {
	Text      string `json:"text"`
	Task      string `json:"task"`
	Model     string `json:"model"`
	Device    string `json:"device"`
	ElapsedMS int64  `json:"elapsed_ms"`
}

// SuggestRequest is the body of POST /v1/suggest.
type SuggestRequest struct {
	Text      string `json:"text"`
	Count     int    `json:"count,omitempty"`
	TokensPer int    `json:"tokens_per,omitempty"`
	Decoding  string `json:"decoding,omitempty"`
	LowMemory *bool  `json:"low_memory,omitempty"`
}

func (r *SuggestRequest) validate() error {
	if r.Text == "" {
		return newInvalidRequest("text is required")
	}
	if len(r.Text) > MaxTextLength {
		return newInvalidRequest(fmt.Sprintf("text exceeds %d characters", MaxTextLength))
	}
	if r.Count != 0 && (r.Count < MinSuggestions || r.Count > MaxSuggestions) {
		return newInvalidRequest(fmt.Sprintf("count must be between %d and %d", MinSuggestions, MaxSuggestions))
	}
	if r.TokensPer != 0 && (r.TokensPer < MinTokensPer || r.TokensPer > MaxTokensPer) {
		return newInvalidRequest(fmt.Sprintf("tokens_per must be between %d and %d", MinTokensPer, MaxTokensPer))
	}
	return nil
}

func (r *SuggestRequest) applyDefaults() {
	if r.Count == 0 {
		r.Count = DefaultSuggestions
	}
	if r.TokensPer == 0 {
		r.TokensPer = DefaultTokensPer
	}
	if r.LowMemory == nil {
		lowMemory := true
		r.LowMemory = &lowMemory
	}
}

// Suggestion pairs the raw continuation with a display label; whitespace
// continuations get placeholder labels.
type Suggestion struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Label string `json:"label"`
}

type SuggestResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
	Model       string       `json:"model"`
	Device      string       `json:"device"`
	ElapsedMS   int64        `json:"elapsed_ms"`
}

// TaskInfo describes one rewrite task for pickers.
type TaskInfo struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Instruction string `json:"instruction"`
}

type TasksResponse struct {
	Tasks            []TaskInfo `json:"tasks"`
	RewriteAvailable bool       `json:"rewrite_available"`
	Device           string     `json:"device"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Device  string `json:"device"`
	Version string `json:"version"`
}

// ResponseError is the error envelope payload.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
}
