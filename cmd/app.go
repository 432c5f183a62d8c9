package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/adalundhe/atlas/agents/coach"
	"github.com/adalundhe/atlas/agents/manager"
	"github.com/adalundhe/atlas/agents/orchestrator"
	"github.com/adalundhe/atlas/core/config"
	"github.com/adalundhe/atlas/core/kpi"
	"github.com/adalundhe/atlas/core/prompts"
	"github.com/adalundhe/atlas/core/providers"
	"github.com/adalundhe/atlas/core/quiet"
	"github.com/adalundhe/atlas/core/storage"
	"github.com/adalundhe/atlas/core/templates"
)

// app bundles the wired components a command needs.
type app struct {
	cfg      *config.Config
	store    *storage.Store
	kpis     *kpi.Service
	resolver *prompts.Resolver
	manager  *manager.Manager
	logger   *slog.Logger
}

// buildApp wires storage, prompt resolution, the provider chain and the
// engines from the config file plus API-key environment variables.
func buildApp() (*app, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	store, err := storage.NewStore(storage.StoreConfig{Path: cfg.Storage.Path})
	if err != nil {
		return nil, err
	}

	kpis, err := kpi.NewService(kpi.ServiceConfig{Store: store, Logger: logger})
	if err != nil {
		store.Close()
		return nil, err
	}

	resolver, err := prompts.NewResolver(prompts.ResolverConfig{
		Store:    store,
		CacheTTL: cfg.Prompts.CacheTTL,
		Logger:   logger,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	provider := buildProvider(cfg, logger)
	selector := templates.NewSelector(templates.SelectorConfig{Logger: logger})
	gate := quiet.NewGate(cfg.QuietPolicy(), nil)

	coachEngine, err := coach.New(coach.EngineConfig{
		Provider:    provider,
		Prompts:     resolver,
		Selector:    selector,
		Gate:        gate,
		Logger:      logger,
		MaxTokens:   cfg.Agents.CoachMaxTokens,
		Temperature: cfg.Agents.Temperature,
		Timeout:     cfg.Agents.Timeout,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	planEngine, err := orchestrator.New(orchestrator.EngineConfig{
		Provider:    provider,
		Prompts:     resolver,
		Logger:      logger,
		MaxTokens:   cfg.Agents.PlannerMaxTokens,
		Temperature: cfg.Agents.Temperature,
		Timeout:     cfg.Agents.Timeout,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	mgr, err := manager.New(manager.ManagerConfig{
		Coach:        coachEngine,
		Orchestrator: planEngine,
		Logger:       logger,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	return &app{
		cfg:      cfg,
		store:    store,
		kpis:     kpis,
		resolver: resolver,
		manager:  mgr,
		logger:   logger,
	}, nil
}

// buildProvider assembles the fallback chain from the configured
// provider order, skipping backends without an API key. No usable
// backend means generation is disabled and the engines run on canned
// templates alone.
func buildProvider(cfg *config.Config, logger *slog.Logger) providers.Provider {
	var chain []providers.Provider

	for _, name := range cfg.LLM.Providers {
		switch name {
		case "openai":
			key := os.Getenv("OPENAI_API_KEY")
			if key == "" {
				continue
			}
			p, err := providers.NewOpenAIProvider(providers.OpenAIConfig{
				APIKey: key,
				Model:  cfg.LLM.OpenAIModel,
			})
			if err != nil {
				logger.Warn("skipping openai provider", "error", err)
				continue
			}
			chain = append(chain, p)
		case "anthropic":
			key := os.Getenv("ANTHROPIC_API_KEY")
			if key == "" {
				continue
			}
			p, err := providers.NewAnthropicProvider(providers.AnthropicConfig{
				APIKey: key,
				Model:  cfg.LLM.AnthropicModel,
			})
			if err != nil {
				logger.Warn("skipping anthropic provider", "error", err)
				continue
			}
			chain = append(chain, p)
		default:
			logger.Warn("unknown provider in config", "provider", name)
		}
	}

	if len(chain) == 0 {
		logger.Info("no generation providers configured, using template fallback only")
		return nil
	}

	fallback, err := providers.NewFallbackChain(logger, chain...)
	if err != nil {
		return nil
	}
	return fallback
}

func (a *app) Close() {
	a.resolver.Close()
	if err := a.store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close store: %v\n", err)
	}
}
