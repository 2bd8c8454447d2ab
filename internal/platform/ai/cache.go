package ai

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// MemoryCache is an in-memory summary cache, used in tests and as a
// fallback when the database is unavailable.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	summary  string
	provider string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (m *MemoryCache) Get(_ context.Context, hash string) (string, string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[hash]
	if !ok {
		return "", "", false, nil
	}
	return e.summary, e.provider, true, nil
}

func (m *MemoryCache) Put(_ context.Context, hash, summary, provider string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[hash] = memoryEntry{summary: summary, provider: provider}
	return nil
}

// PGCache persists summaries in the ai_summary_cache table.
type PGCache struct {
	pool *pgxpool.Pool
}

// NewPGCache creates a database-backed summary cache.
func NewPGCache(pool *pgxpool.Pool) *PGCache {
	return &PGCache{pool: pool}
}

func (p *PGCache) Get(ctx context.Context, hash string) (string, string, bool, error) {
	var summary, provider string
	err := p.pool.QueryRow(ctx,
		`SELECT summary, provider FROM ai_summary_cache WHERE input_hash = $1`,
		hash,
	).Scan(&summary, &provider)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, fmt.Errorf("ai cache get: %w", err)
	}
	return summary, provider, true, nil
}

func (p *PGCache) Put(ctx context.Context, hash, summary, provider string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO ai_summary_cache (input_hash, summary, provider)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (input_hash) DO UPDATE
		 SET summary = EXCLUDED.summary, provider = EXCLUDED.provider`,
		hash, summary, provider,
	)
	if err != nil {
		return fmt.Errorf("ai cache put: %w", err)
	}
	return nil
}
