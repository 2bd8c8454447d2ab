package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

const (
	geminiDefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"
	geminiMaxInputChars   = 12000
	geminiMaxAttempts     = 3
	geminiTimeout         = 30 * time.Second
)

const summaryPrompt = "Summarize the following clinical lab report for a physician " +
	"in at most three sentences. Highlight abnormal values and keep units as written.\n\n"

// retryablePattern matches provider errors worth retrying: throttling and
// transient upstream failures.
var retryablePattern = regexp.MustCompile(`(?i)(429|503|rate|timeout)`)

// GeminiClient summarizes text via the Google Gemini generateContent API.
type GeminiClient struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewGeminiClient creates a Gemini-backed summarizer.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:   apiKey,
		endpoint: geminiDefaultEndpoint,
		client:   &http.Client{Timeout: geminiTimeout},
	}
}

func (g *GeminiClient) Name() string { return "gemini" }

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Summarize calls generateContent, retrying transient failures with a short
// linear backoff.
func (g *GeminiClient) Summarize(ctx context.Context, text string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("gemini api key not configured")
	}
	if len(text) > geminiMaxInputChars {
		text = text[:geminiMaxInputChars]
	}

	body := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: summaryPrompt + text}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.3,
			MaxOutputTokens: 280,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < geminiMaxAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(300+attempt*600) * time.Millisecond
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
		}

		summary, err := g.doRequest(ctx, payload)
		if err == nil {
			return summary, nil
		}
		lastErr = err
		if !retryablePattern.MatchString(err.Error()) {
			break
		}
	}
	return "", lastErr
}

func (g *GeminiClient) doRequest(ctx context.Context, payload []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("gemini: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, truncateForError(data))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini: api error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no candidates in response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

func truncateForError(data []byte) string {
	const max = 200
	if len(data) > max {
		return string(data[:max])
	}
	return string(data)
}
