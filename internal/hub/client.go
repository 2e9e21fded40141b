package hub

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/quill-lm/quill/internal/version"
)

// DefaultBaseURL points at a provider on the local machine.
const DefaultBaseURL = "http://127.0.0.1:8090"

const warmPrompt = "Hello"

// ClientConfig configures a Client. The zero value targets DefaultBaseURL
// with no auth and no client-side timeout.
type ClientConfig struct {
	BaseURL string
	// Token is sent as a bearer credential when set.
	Token string
	// Timeout bounds a single request. Zero means the caller's context is
	// the only deadline.
	Timeout time.Duration
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client issues generation calls against one provider endpoint.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{
		baseURL: baseURL,
		token:   cfg.Token,
		http:    httpClient,
	}
}

// wire shapes

type generateBody struct {
	Inputs     any             `json:"inputs"`
	Parameters Params          `json:"parameters"`
	Options    generateOptions `json:"options"`
}

type generateOptions struct {
	Device       string `json:"device,omitempty"`
	LowMemory    bool   `json:"low_memory,omitempty"`
	UseCache     bool   `json:"use_cache"`
	WaitForModel bool   `json:"wait_for_model"`
}

type generatedSequence struct {
	GeneratedText string `json:"generated_text"`
}

type errorBody struct {
	Error string `json:"error"`
}

// Generate runs one inference call. A single input is sent as a string and
// answered with one array of sequences; a larger batch is sent as an array
// and answered with one inner array per input. Either way the texts come
// back flattened in input-major, sequence-minor order.
//
// Provider failures are returned as errors without retries or translation.
func (c *Client) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if strings.TrimSpace(req.Model) == "" {
		return nil, ErrMissingModel
	}
	if len(req.Inputs) == 0 {
		return nil, ErrEmptyInputs
	}

	var inputs any = req.Inputs
	if len(req.Inputs) == 1 {
		inputs = req.Inputs[0]
	}
	body, err := json.Marshal(generateBody{
		Inputs:     inputs,
		Parameters: req.Params,
		Options: generateOptions{
			Device:       req.Device,
			LowMemory:    req.Params.LowMemory,
			UseCache:     false,
			WaitForModel: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("hub: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.modelURL(req.Model), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("hub: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", version.UserAgent())
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("hub: %s: %w", req.Model, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("hub: %s: read response: %w", req.Model, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.Unmarshal(payload, &eb); err == nil && eb.Error != "" {
			return nil, fmt.Errorf("hub: %s: status %d: %s", req.Model, resp.StatusCode, eb.Error)
		}
		return nil, fmt.Errorf("hub: %s: unexpected status %d", req.Model, resp.StatusCode)
	}

	texts, err := decodeTexts(payload, len(req.Inputs))
	if err != nil {
		return nil, fmt.Errorf("hub: %s: %w", req.Model, err)
	}
	return &GenerateResponse{Texts: texts}, nil
}

// Warm asks the provider to load the model's weights so the first real
// request does not pay the load. The generated text is discarded.
func (c *Client) Warm(ctx context.Context, model, device string) error {
	_, err := c.Generate(ctx, &GenerateRequest{
		Model:  model,
		Device: device,
		Inputs: []string{warmPrompt},
		Params: Params{NumBeams: 1, MaxLength: 8},
	})
	return err
}

func (c *Client) modelURL(model string) string {
	return c.baseURL + "/models/" + model
}

func decodeTexts(payload []byte, inputCount int) ([]string, error) {
	if inputCount == 1 {
		var seqs []generatedSequence
		if err := json.Unmarshal(payload, &seqs); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		texts := make([]string, len(seqs))
		for i, s := range seqs {
			texts[i] = s.GeneratedText
		}
		return texts, nil
	}

	var batches [][]generatedSequence
	if err := json.Unmarshal(payload, &batches); err != nil {
		return nil, fmt.Errorf("decode batch response: %w", err)
	}
	if len(batches) != inputCount {
		return nil, fmt.Errorf("decode batch response: got %d batches for %d inputs", len(batches), inputCount)
	}
	var texts []string
	for _, seqs := range batches {
		for _, s := range seqs {
			texts = append(texts, s.GeneratedText)
		}
	}
	return texts, nil
}
