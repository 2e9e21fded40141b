package hub

import (
	"context"
	"sync"
)

// Provider hands out Handles, one per (model, device) pair, memoized for
// the life of the process. Concurrent sessions share handles safely; only
// warm-up is serialized.
type Provider struct {
	client *Client
	mu     sync.Mutex
	cache  map[handleKey]*Handle
}

type handleKey struct {
	model  string
	device string
}

func NewProvider(client *Client) *Provider {
	return &Provider{
		client: client,
		cache:  make(map[handleKey]*Handle),
	}
}

// Handle returns the memoized handle for model on device, creating it on
// first use. Creation is cheap; weights load provider-side on Warm or on
// the first generation.
func (p *Provider) Handle(model, device string) *Handle {
	key := handleKey{model: model, device: device}

	p.mu.Lock()
	defer p.mu.Unlock()
	if h, ok := p.cache[key]; ok {
		return h
	}
	h := &Handle{
		model:  model,
		device: device,
		client: p.client,
	}
	p.cache[key] = h
	return h
}

// Handle is a pinned (model, device) view of the provider. Requests through
// a handle may run concurrently; results are never shared between calls.
type Handle struct {
	model  string
	device string
	client *Client

	mu     sync.Mutex
	warmed bool
}

func (h *Handle) Model() string  { return h.model }
func (h *Handle) Device() string { return h.device }

// Generate runs one call with the handle's model and device.
func (h *Handle) Generate(ctx context.Context, inputs []string, params Params) ([]string, error) {
	resp, err := h.client.Generate(ctx, &GenerateRequest{
		Model:  h.model,
		Device: h.device,
		Inputs: inputs,
		Params: params,
	})
	if err != nil {
		return nil, err
	}
	return resp.Texts, nil
}

// Warm loads the model provider-side. It runs at most once per handle;
// later calls return immediately.
func (h *Handle) Warm(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.warmed {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := h.client.Warm(ctx, h.model, h.device); err != nil {
		return err
	}
	h.warmed = true
	return nil
}
