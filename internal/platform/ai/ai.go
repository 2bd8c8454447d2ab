// Package ai provides clinical text summarization for service test reports.
// Providers are chained: each is tried in order and the first successful
// summary wins. Summaries are cached by a hash of the input text so repeated
// requests for the same report body never hit a provider twice.
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNoProviders is returned when a chain is constructed without providers.
var ErrNoProviders = errors.New("ai: no summarization providers configured")

// Summarizer produces a short clinical summary of free-form report text.
type Summarizer interface {
	Name() string
	Summarize(ctx context.Context, text string) (string, error)
}

// Result is a completed summarization, including where it came from.
type Result struct {
	Summary  string `json:"summary"`
	Provider string `json:"provider"`
	Cached   bool   `json:"cached"`
	Hash     string `json:"hash"`
}

// Cache stores summaries keyed by input hash. Implementations must be safe
// for concurrent use.
type Cache interface {
	Get(ctx context.Context, hash string) (summary, provider string, ok bool, err error)
	Put(ctx context.Context, hash, summary, provider string) error
}

// InputHash derives the cache key for a piece of report text. The key is the
// first 40 hex characters of the SHA-256 digest, enough to make collisions
// a non-concern while keeping the column short.
func InputHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])[:40]
}

// Chain tries each provider in order and caches the first success.
type Chain struct {
	providers []Summarizer
	cache     Cache
	logger    zerolog.Logger
}

// NewChain creates a provider chain. The cache may be nil, in which case
// every call goes to a provider.
func NewChain(logger zerolog.Logger, cache Cache, providers ...Summarizer) *Chain {
	return &Chain{
		providers: providers,
		cache:     cache,
		logger:    logger,
	}
}

// Summarize returns a summary for the given text, from cache when possible.
// When all providers fail, the errors are joined so the caller sees every
// failure reason.
func (c *Chain) Summarize(ctx context.Context, text string) (*Result, error) {
	if len(c.providers) == 0 {
		return nil, ErrNoProviders
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("ai: nothing to summarize")
	}

	hash := InputHash(text)

	if c.cache != nil {
		summary, provider, ok, err := c.cache.Get(ctx, hash)
		if err != nil {
			c.logger.Warn().Err(err).Str("hash", hash).Msg("ai cache lookup failed")
		} else if ok {
			return &Result{Summary: summary, Provider: provider, Cached: true, Hash: hash}, nil
		}
	}

	var errs []error
	for _, p := range c.providers {
		summary, err := p.Summarize(ctx, text)
		if err != nil {
			c.logger.Warn().Err(err).Str("provider", p.Name()).Msg("summarization provider failed")
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		summary = strings.TrimSpace(summary)
		if summary == "" {
			errs = append(errs, fmt.Errorf("%s: empty summary", p.Name()))
			continue
		}

		if c.cache != nil {
			if err := c.cache.Put(ctx, hash, summary, p.Name()); err != nil {
				c.logger.Warn().Err(err).Str("hash", hash).Msg("ai cache store failed")
			}
		}
		return &Result{Summary: summary, Provider: p.Name(), Hash: hash}, nil
	}

	return nil, fmt.Errorf("ai: all providers failed: %w", errors.Join(errs...))
}
