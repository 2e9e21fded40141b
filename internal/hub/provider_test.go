package hub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

func newCountingServer(t *testing.T, calls *atomic.Int64, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`[{"generated_text":"ok"}]`))
	}))
}

func TestHandleMemoized(t *testing.T) {
	t.Parallel()

	p := NewProvider(NewClient(ClientConfig{}))

	a := p.Handle("gpt2", "cpu")
	b := p.Handle("gpt2", "cpu")
	if a != b {
		t.Fatal("same model and device must return the same handle")
	}

	c := p.Handle("gpt2", "cuda")
	if a == c {
		t.Fatal("different device must return a different handle")
	}
	d := p.Handle("grammarly/coedit-large", "cpu")
	if a == d {
		t.Fatal("different model must return a different handle")
	}

	if a.Model() != "gpt2" || a.Device() != "cpu" {
		t.Fatalf("handle identity: got %q/%q", a.Model(), a.Device())
	}
}

func TestHandleMemoizedConcurrent(t *testing.T) {
	t.Parallel()

	p := NewProvider(NewClient(ClientConfig{}))

	const n = 32
	handles := make([]*Handle, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = p.Handle("gpt2", "cpu")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if handles[i] != handles[0] {
			t.Fatal("concurrent Handle calls returned distinct handles")
		}
	}
}

func TestWarmRunsOnce(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := newCountingServer(t, &calls, http.StatusOK)
	defer srv.Close()

	p := NewProvider(NewClient(ClientConfig{BaseURL: srv.URL}))
	h := p.Handle("gpt2", "cpu")

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = h.Warm(context.Background())
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("Warm[%d]: %v", i, err)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("warm requests: got %d, want 1", got)
	}
}

func TestWarmRetriesAfterFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := newCountingServer(t, &calls, http.StatusServiceUnavailable)
	defer srv.Close()

	p := NewProvider(NewClient(ClientConfig{BaseURL: srv.URL}))
	h := p.Handle("gpt2", "cpu")

	if err := h.Warm(context.Background()); err == nil {
		t.Fatal("expected warm failure")
	}
	if err := h.Warm(context.Background()); err == nil {
		t.Fatal("expected warm failure to repeat while provider is down")
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("failed warms must not latch: got %d calls, want 2", got)
	}
}

func TestHandleGenerate(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := newCountingServer(t, &calls, http.StatusOK)
	defer srv.Close()

	p := NewProvider(NewClient(ClientConfig{BaseURL: srv.URL}))
	h := p.Handle("gpt2", "cpu")

	texts, err := h.Generate(context.Background(), []string{"prompt"}, Params{NumBeams: 1})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(texts) != 1 || texts[0] != "ok" {
		t.Fatalf("texts: got %v, want [ok]", texts)
	}
}
