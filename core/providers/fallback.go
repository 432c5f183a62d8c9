package providers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// FallbackChain tries each backend in order and returns the first
// usable completion. It replaces per-call client introspection: the
// chain is fixed at construction time.
type FallbackChain struct {
	providers []Provider
	logger    *slog.Logger
}

// NewFallbackChain creates a chain over the given providers, primary
// first.
func NewFallbackChain(logger *slog.Logger, chain ...Provider) (*FallbackChain, error) {
	if len(chain) == 0 {
		return nil, fmt.Errorf("fallback chain requires at least one provider")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FallbackChain{providers: chain, logger: logger}, nil
}

// Name returns the chain identifier
func (c *FallbackChain) Name() string {
	return "fallback"
}

// Generate tries each provider in order. Context cancellation stops the
// chain immediately; other failures move on to the next backend.
func (c *FallbackChain) Generate(ctx context.Context, req *Request) (*Response, error) {
	var errs []error

	for _, provider := range c.providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		resp, err := provider.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		c.logger.Warn("provider failed, trying next",
			"provider", provider.Name(),
			"error", err,
		)
		errs = append(errs, fmt.Errorf("%s: %w", provider.Name(), err))
	}

	return nil, fmt.Errorf("all providers failed: %w", errors.Join(errs...))
}
