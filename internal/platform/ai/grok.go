package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	grokDefaultEndpoint = "https://api.x.ai/v1/chat/completions"
	grokMaxInputChars   = 8000
	grokTimeout         = 30 * time.Second
)

// GrokClient summarizes text via the xAI chat-completions API. It serves as
// the fallback provider and makes a single attempt per call.
type GrokClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGrokClient creates a Grok-backed summarizer.
func NewGrokClient(apiKey string) *GrokClient {
	return &GrokClient{
		apiKey:   apiKey,
		endpoint: grokDefaultEndpoint,
		client:   &http.Client{Timeout: grokTimeout},
	}
}

func (g *GrokClient) Name() string { return "grok" }

type grokRequest struct {
	Model       string        `json:"model"`
	Messages    []grokMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type grokMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type grokResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (g *GrokClient) Summarize(ctx context.Context, text string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("grok api key not configured")
	}
	if len(text) > grokMaxInputChars {
		text = text[:grokMaxInputChars]
	}

	body := grokRequest{
		Model: "grok-beta",
		Messages: []grokMessage{
			{
				Role: "system",
				Content: "You summarize clinical lab reports for physicians. " +
					"Reply with at most three sentences and keep units as written.",
			},
			{Role: "user", Content: text},
		},
		MaxTokens:   300,
		Temperature: 0.3,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("grok: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("grok: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("grok: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("grok: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("grok: status %d: %s", resp.StatusCode, truncateForError(data))
	}

	var parsed grokResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("grok: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("grok: no choices in response")
	}
	return parsed.Choices[0].Message.Content, nil
}
