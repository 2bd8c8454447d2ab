package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func geminiOK(text string) string {
	resp := map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGemini_Summarize(t *testing.T) {
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(geminiOK("Mild anemia noted.")))
	}))
	defer srv.Close()

	g := NewGeminiClient("test-key")
	g.endpoint = srv.URL

	summary, err := g.Summarize(context.Background(), "Hb 10.9 g/dL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Mild anemia noted." {
		t.Errorf("unexpected summary %q", summary)
	}
	if gotBody.GenerationConfig.MaxOutputTokens != 280 {
		t.Errorf("expected maxOutputTokens 280, got %d", gotBody.GenerationConfig.MaxOutputTokens)
	}
	if gotBody.GenerationConfig.Temperature != 0.3 {
		t.Errorf("expected temperature 0.3, got %f", gotBody.GenerationConfig.Temperature)
	}
	if len(gotBody.Contents) != 1 || !strings.Contains(gotBody.Contents[0].Parts[0].Text, "Hb 10.9") {
		t.Error("expected report text in request body")
	}
}

func TestGemini_RetriesOnThrottle(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(geminiOK("Recovered.")))
	}))
	defer srv.Close()

	g := NewGeminiClient("test-key")
	g.endpoint = srv.URL

	summary, err := g.Summarize(context.Background(), "text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Recovered." {
		t.Errorf("unexpected summary %q", summary)
	}
	if calls.Load() != 2 {
		t.Errorf("expected 2 attempts, got %d", calls.Load())
	}
}

func TestGemini_NoRetryOnBadRequest(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"invalid argument"}}`))
	}))
	defer srv.Close()

	g := NewGeminiClient("test-key")
	g.endpoint = srv.URL

	if _, err := g.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 attempt for non-retryable error, got %d", calls.Load())
	}
}

func TestGemini_TruncatesLongInput(t *testing.T) {
	var gotBody geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(geminiOK("ok")))
	}))
	defer srv.Close()

	g := NewGeminiClient("test-key")
	g.endpoint = srv.URL

	long := strings.Repeat("x", geminiMaxInputChars+500)
	if _, err := g.Summarize(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sent := gotBody.Contents[0].Parts[0].Text
	if len(sent) > len(summaryPrompt)+geminiMaxInputChars {
		t.Errorf("expected input truncated to %d chars, got %d", geminiMaxInputChars, len(sent)-len(summaryPrompt))
	}
}

func TestGemini_MissingKey(t *testing.T) {
	g := NewGeminiClient("")
	if _, err := g.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestGrok_Summarize(t *testing.T) {
	var gotBody grokRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token, got %q", r.Header.Get("Authorization"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"Potassium within range."}}]}`))
	}))
	defer srv.Close()

	g := NewGrokClient("test-key")
	g.endpoint = srv.URL

	summary, err := g.Summarize(context.Background(), "K 4.1 mmol/L")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Potassium within range." {
		t.Errorf("unexpected summary %q", summary)
	}
	if gotBody.Model != "grok-beta" {
		t.Errorf("expected model grok-beta, got %q", gotBody.Model)
	}
	if gotBody.MaxTokens != 300 {
		t.Errorf("expected max_tokens 300, got %d", gotBody.MaxTokens)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Error("expected system prompt followed by user message")
	}
	if gotBody.Messages[1].Content != "K 4.1 mmol/L" {
		t.Errorf("unexpected user content %q", gotBody.Messages[1].Content)
	}
}

func TestGrok_TruncatesLongInput(t *testing.T) {
	var gotBody grokRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	g := NewGrokClient("test-key")
	g.endpoint = srv.URL

	long := strings.Repeat("y", grokMaxInputChars+100)
	if _, err := g.Summarize(context.Background(), long); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotBody.Messages[1].Content) != grokMaxInputChars {
		t.Errorf("expected input truncated to %d chars, got %d", grokMaxInputChars, len(gotBody.Messages[1].Content))
	}
}

func TestGrok_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	g := NewGrokClient("test-key")
	g.endpoint = srv.URL

	if _, err := g.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestGrok_MissingKey(t *testing.T) {
	g := NewGrokClient("")
	if _, err := g.Summarize(context.Background(), "text"); err == nil {
		t.Fatal("expected error without api key")
	}
}
