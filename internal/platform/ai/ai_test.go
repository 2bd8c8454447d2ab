package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// stubProvider is a scripted Summarizer for chain tests.
type stubProvider struct {
	name    string
	summary string
	err     error
	calls   int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Summarize(ctx context.Context, text string) (string, error) {
	s.calls++
	return s.summary, s.err
}

func TestInputHash(t *testing.T) {
	h1 := InputHash("WBC 11.2 x10^9/L")
	h2 := InputHash("WBC 11.2 x10^9/L")
	h3 := InputHash("WBC 4.0 x10^9/L")

	if len(h1) != 40 {
		t.Errorf("expected 40-char hash, got %d chars", len(h1))
	}
	if h1 != h2 {
		t.Error("expected identical input to hash identically")
	}
	if h1 == h3 {
		t.Error("expected different inputs to hash differently")
	}
}

func TestChain_FirstProviderWins(t *testing.T) {
	primary := &stubProvider{name: "gemini", summary: "Elevated WBC count."}
	fallback := &stubProvider{name: "grok", summary: "unused"}
	chain := NewChain(zerolog.Nop(), nil, primary, fallback)

	res, err := chain.Summarize(context.Background(), "WBC 11.2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Summary != "Elevated WBC count." {
		t.Errorf("unexpected summary %q", res.Summary)
	}
	if res.Provider != "gemini" {
		t.Errorf("expected provider gemini, got %q", res.Provider)
	}
	if res.Cached {
		t.Error("expected fresh result, got cached")
	}
	if fallback.calls != 0 {
		t.Errorf("expected fallback untouched, got %d calls", fallback.calls)
	}
}

func TestChain_FallsBackOnError(t *testing.T) {
	primary := &stubProvider{name: "gemini", err: errors.New("429 rate limited")}
	fallback := &stubProvider{name: "grok", summary: "Within normal limits."}
	chain := NewChain(zerolog.Nop(), nil, primary, fallback)

	res, err := chain.Summarize(context.Background(), "Hb 14.1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Provider != "grok" {
		t.Errorf("expected fallback provider, got %q", res.Provider)
	}
	if primary.calls != 1 {
		t.Errorf("expected primary tried once, got %d", primary.calls)
	}
}

func TestChain_EmptySummaryTreatedAsFailure(t *testing.T) {
	primary := &stubProvider{name: "gemini", summary: "   "}
	fallback := &stubProvider{name: "grok", summary: "ok"}
	chain := NewChain(zerolog.Nop(), nil, primary, fallback)

	res, err := chain.Summarize(context.Background(), "Na 140")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Provider != "grok" {
		t.Errorf("expected fallback after blank summary, got %q", res.Provider)
	}
}

func TestChain_AllProvidersFail(t *testing.T) {
	primary := &stubProvider{name: "gemini", err: errors.New("quota exceeded")}
	fallback := &stubProvider{name: "grok", err: errors.New("503 unavailable")}
	chain := NewChain(zerolog.Nop(), nil, primary, fallback)

	_, err := chain.Summarize(context.Background(), "K 4.1")
	if err == nil {
		t.Fatal("expected error when every provider fails")
	}
	if !strings.Contains(err.Error(), "gemini") || !strings.Contains(err.Error(), "grok") {
		t.Errorf("expected both provider names in error, got %q", err.Error())
	}
}

func TestChain_NoProviders(t *testing.T) {
	chain := NewChain(zerolog.Nop(), nil)
	_, err := chain.Summarize(context.Background(), "text")
	if !errors.Is(err, ErrNoProviders) {
		t.Errorf("expected ErrNoProviders, got %v", err)
	}
}

func TestChain_BlankInput(t *testing.T) {
	chain := NewChain(zerolog.Nop(), nil, &stubProvider{name: "gemini", summary: "x"})
	_, err := chain.Summarize(context.Background(), "  \n\t ")
	if err == nil {
		t.Fatal("expected error for blank input")
	}
}

func TestChain_CacheHitSkipsProviders(t *testing.T) {
	cache := NewMemoryCache()
	provider := &stubProvider{name: "gemini", summary: "Summary one."}
	chain := NewChain(zerolog.Nop(), cache, provider)

	first, err := chain.Summarize(context.Background(), "Glucose 5.4 mmol/L")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Error("first call should not be cached")
	}

	second, err := chain.Summarize(context.Background(), "Glucose 5.4 mmol/L")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Error("second call should hit the cache")
	}
	if second.Summary != first.Summary || second.Provider != first.Provider {
		t.Error("cached result should match the original")
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

func TestChain_TrimsInputBeforeHashing(t *testing.T) {
	cache := NewMemoryCache()
	provider := &stubProvider{name: "gemini", summary: "Stable."}
	chain := NewChain(zerolog.Nop(), cache, provider)

	if _, err := chain.Summarize(context.Background(), "CRP 3 mg/L"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := chain.Summarize(context.Background(), "  CRP 3 mg/L \n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Cached {
		t.Error("whitespace-padded input should hit the same cache entry")
	}
}

func TestMemoryCache_Roundtrip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, _, ok, err := cache.Get(ctx, "missing")
	if err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.Put(ctx, "abc", "summary text", "gemini"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	summary, provider, ok, err := cache.Get(ctx, "abc")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if summary != "summary text" || provider != "gemini" {
		t.Errorf("unexpected entry (%q, %q)", summary, provider)
	}
}
