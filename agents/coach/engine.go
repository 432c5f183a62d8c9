// Package coach implements the coaching decision engine: given a
// subject's latest performance sample it decides whether a coaching
// message should be sent and composes its text. The engine never
// returns an error — every dependency failure degrades to the canned
// template catalogue.
package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adalundhe/atlas/core/kpi"
	"github.com/adalundhe/atlas/core/prompts"
	"github.com/adalundhe/atlas/core/providers"
	"github.com/adalundhe/atlas/core/quiet"
	"github.com/adalundhe/atlas/core/templates"
)

const (
	// DefaultMaxTokens bounds coaching completions; messages are short.
	DefaultMaxTokens = 200

	// DefaultTimeout caps the generation call. A timeout is treated the
	// same as a generation failure.
	DefaultTimeout = 30 * time.Second

	defaultTemperature = 0.7
)

// PromptResolver is the prompt-template port.
type PromptResolver interface {
	Resolve(ctx context.Context, agentType, promptName string) string
}

// Engine composes the drift calculator, quiet gate, prompt resolver,
// generation port and template selector into one decision.
type Engine struct {
	config   EngineConfig
	provider providers.Provider
	prompts  PromptResolver
	selector *templates.Selector
	gate     *quiet.Gate
	clock    quiet.Clock
	logger   *slog.Logger
}

// EngineConfig configures the coach engine.
type EngineConfig struct {
	// Provider is the generation port. Nil means generation is disabled
	// and every sendable decision renders from the template catalogue.
	Provider providers.Provider

	// Prompts resolves the system and user prompt templates. Nil falls
	// back to the compiled-in defaults via an internal resolver.
	Prompts PromptResolver

	// Selector renders canned messages. Nil uses the stock catalogue.
	Selector *templates.Selector

	// Gate applies the quiet-mode policy. Nil uses the default policy.
	Gate *quiet.Gate

	Clock       quiet.Clock  // Optional, system clock if nil
	Logger      *slog.Logger // Optional, uses slog.Default() if nil
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// New creates a coach engine.
func New(cfg EngineConfig) (*Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = quiet.SystemClock{}
	}
	if cfg.Selector == nil {
		cfg.Selector = templates.NewSelector(templates.SelectorConfig{Logger: cfg.Logger})
	}
	if cfg.Gate == nil {
		cfg.Gate = quiet.NewGate(quiet.DefaultPolicy(), cfg.Clock)
	}
	if cfg.Prompts == nil {
		resolver, err := prompts.NewResolver(prompts.ResolverConfig{Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("failed to create prompt resolver: %w", err)
		}
		cfg.Prompts = resolver
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Engine{
		config:   cfg,
		provider: cfg.Provider,
		prompts:  cfg.Prompts,
		selector: cfg.Selector,
		gate:     cfg.Gate,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
	}, nil
}

// Decide runs the decision state machine for one subject. It always
// produces a decision; dependency failures are absorbed.
func (e *Engine) Decide(ctx context.Context, req *Request) *Decision {
	now := e.clock.Now()
	decision := &Decision{
		ID:        uuid.New().String(),
		DecidedAt: now,
	}

	// No sample means drift 0: nothing to coach on.
	if req.Sample == nil {
		decision.Tier = kpi.TierExcellent
		decision.Reason = ReasonNoData
		return decision
	}

	drift, tier := kpi.Evaluate(req.Sample.Target, req.Sample.Actual)
	decision.Tier = tier

	// Excellent performers are never messaged, regardless of quiet-mode
	// or cooldown state.
	if tier == kpi.TierExcellent {
		decision.Reason = ReasonTierExcellent
		return decision
	}

	if allowed, reason := e.gate.Evaluate(now, req.LastSend); !allowed {
		decision.Reason = reason
		e.logger.Info("coach message suppressed",
			"tier", tier,
			"reason", reason,
		)
		return decision
	}

	text, source := e.compose(ctx, req, tier, now)

	decision.ShouldSend = true
	decision.Text = text
	decision.Source = source

	e.logger.Info("coach decision",
		"tier", tier,
		"drift", drift,
		"source", source,
	)
	return decision
}

// compose resolves the prompts, attempts generation and falls back to
// the template catalogue on any failure.
func (e *Engine) compose(ctx context.Context, req *Request, tier kpi.Tier, now time.Time) (string, Source) {
	text, err := e.generate(ctx, req, tier, now)
	if err != nil {
		e.logger.Warn("generation failed, using template fallback",
			"tier", tier,
			"department", req.Department,
			"error", err,
		)
		return e.selector.Render(tier, req.Department), SourceTemplate
	}
	return text, SourceGenerated
}

func (e *Engine) generate(ctx context.Context, req *Request, tier kpi.Tier, now time.Time) (string, error) {
	if e.provider == nil {
		return "", fmt.Errorf("no generation provider configured")
	}

	systemPrompt := e.prompts.Resolve(ctx, prompts.AgentCoach, prompts.PromptSystem)
	userTemplate := e.prompts.Resolve(ctx, prompts.AgentCoach, prompts.PromptUserTemplate)

	vars := map[string]string{
		"name":              req.Name,
		"role":              req.Role,
		"department":        req.Department,
		"performance_level": string(tier),
		"summary":           req.Summary,
		"current_time":      now.Format("15:04"),
	}
	userPrompt, _ := templates.Format(userTemplate, vars)

	genCtx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	temperature := e.config.Temperature
	resp, err := e.provider.Generate(genCtx, &providers.Request{
		SystemPrompt: systemPrompt,
		Messages:     []providers.Message{{Role: providers.RoleUser, Content: userPrompt}},
		MaxTokens:    e.config.MaxTokens,
		Temperature:  &temperature,
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", providers.ErrEmptyCompletion
	}
	return text, nil
}
