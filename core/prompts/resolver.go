// Package prompts resolves agent prompt templates: a persisted override
// wins, the compiled-in default is the floor. Resolution never fails.
package prompts

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/adalundhe/atlas/core/storage"
)

const (
	defaultNumCounters = 1e4
	defaultMaxCost     = 1 << 20 // 1MB of template text
	defaultBufferItems = 64
	defaultTTL         = time.Minute
)

// Store is the template-store port: it returns the active template body
// for (agentType, promptName) or storage.ErrNotFound.
type Store interface {
	FindActivePrompt(ctx context.Context, agentType, promptName string) (string, error)
}

// Seeder persists a default prompt without overwriting an existing row.
type Seeder interface {
	SeedPrompt(ctx context.Context, agentType, promptName, template string, variables map[string]string) error
}

// Resolver reads prompt templates through a small cache. A nil store,
// a store error, or a missing row all fall back to the compiled-in
// default for the pair.
type Resolver struct {
	store  Store
	cache  *ristretto.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// ResolverConfig configures a Resolver.
type ResolverConfig struct {
	Store    Store         // Optional; nil means builtin defaults only
	CacheTTL time.Duration // Optional, defaults to 1 minute
	Logger   *slog.Logger  // Optional, uses slog.Default() if nil
}

// NewResolver creates a resolver with a ristretto read-through cache.
func NewResolver(cfg ResolverConfig) (*Resolver, error) {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaultTTL
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: defaultNumCounters,
		MaxCost:     defaultMaxCost,
		BufferItems: defaultBufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt cache: %w", err)
	}

	return &Resolver{
		store:  cfg.Store,
		cache:  cache,
		ttl:    cfg.CacheTTL,
		logger: cfg.Logger,
	}, nil
}

// Resolve returns the template body for (agentType, promptName). The
// persisted active override wins; otherwise the compiled-in default.
// Unknown combinations resolve to the empty string.
func (r *Resolver) Resolve(ctx context.Context, agentType, promptName string) string {
	key := cacheKey(agentType, promptName)
	if cached, ok := r.cache.Get(key); ok {
		if body, ok := cached.(string); ok {
			return body
		}
	}

	if r.store != nil {
		body, err := r.store.FindActivePrompt(ctx, agentType, promptName)
		switch {
		case err == nil:
			r.cache.SetWithTTL(key, body, int64(len(body)), r.ttl)
			return body
		case err == storage.ErrNotFound:
			// fall through to the builtin
		default:
			r.logger.Warn("prompt store unavailable, using builtin default",
				"agent_type", agentType,
				"prompt_name", promptName,
				"error", err,
			)
		}
	}

	body, ok := Default(agentType, promptName)
	if !ok {
		r.logger.Error("no builtin prompt for pair",
			"agent_type", agentType,
			"prompt_name", promptName,
		)
		return ""
	}
	return body
}

// Invalidate drops the cached body for (agentType, promptName). Call
// after updating an override so the next resolve sees it.
func (r *Resolver) Invalidate(agentType, promptName string) {
	r.cache.Del(cacheKey(agentType, promptName))
}

// Close releases the cache.
func (r *Resolver) Close() {
	r.cache.Close()
}

// SeedDefaults writes every compiled-in prompt into the store without
// overwriting existing overrides. This is a setup operation, not part
// of the decision path.
func (r *Resolver) SeedDefaults(ctx context.Context, seeder Seeder) error {
	for agentType, agent := range builtins {
		for promptName, body := range agent {
			vars := DefaultVariables(agentType, promptName)
			if err := seeder.SeedPrompt(ctx, agentType, promptName, body, vars); err != nil {
				return fmt.Errorf("failed to seed %s/%s: %w", agentType, promptName, err)
			}
		}
	}
	return nil
}

func cacheKey(agentType, promptName string) string {
	return agentType + "/" + promptName
}
