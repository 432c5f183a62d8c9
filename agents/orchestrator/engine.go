// Package orchestrator implements the goal-decomposition engine: a
// free-text goal becomes a structured project plan, via text generation
// when available and keyword-matched canned templates otherwise. The
// engine never returns an error to its caller.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/adalundhe/atlas/core/prompts"
	"github.com/adalundhe/atlas/core/providers"
	"github.com/adalundhe/atlas/core/templates"
)

const (
	// DefaultMaxTokens is larger than the coaching path; planning text
	// is longer.
	DefaultMaxTokens = 1000

	// DefaultTimeout caps the generation call.
	DefaultTimeout = 60 * time.Second

	defaultTemperature = 0.7
	unspecified        = "unspecified"
)

// DefaultDepartments is the stock department list offered to the
// planner when the request carries none.
var DefaultDepartments = []string{"sales", "marketing", "tech", "general"}

// PromptResolver is the prompt-template port.
type PromptResolver interface {
	Resolve(ctx context.Context, agentType, promptName string) string
}

// Engine turns goals into project plans.
type Engine struct {
	config   EngineConfig
	provider providers.Provider
	prompts  PromptResolver
	logger   *slog.Logger
}

// EngineConfig configures the orchestrator engine.
type EngineConfig struct {
	// Provider is the generation port. Nil disables generation; every
	// plan comes from the canned templates.
	Provider providers.Provider

	// Prompts resolves the system and user prompt templates. Nil falls
	// back to the compiled-in defaults via an internal resolver.
	Prompts PromptResolver

	Logger      *slog.Logger // Optional, uses slog.Default() if nil
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// New creates an orchestrator engine.
func New(cfg EngineConfig) (*Engine, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
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
		logger:   cfg.Logger,
	}, nil
}

// Decompose turns a goal into a project plan. Generation or parse
// failures fall back to the keyword-matched canned templates, so the
// result is always a usable plan.
func (e *Engine) Decompose(ctx context.Context, req *GoalRequest) *ProjectPlan {
	plan, err := e.generatePlan(ctx, req)
	if err != nil {
		e.logger.Warn("plan generation failed, using template fallback",
			"goal", req.Goal,
			"error", err,
		)
		plan = classifyGoal(req.Goal).materialize(req.Goal)
	}

	plan.ID = uuid.New().String()
	plan.CreatedAt = time.Now()

	e.logger.Info("goal decomposed",
		"source", plan.Source,
		"tasks", len(plan.Tasks),
	)
	return plan
}

func (e *Engine) generatePlan(ctx context.Context, req *GoalRequest) (*ProjectPlan, error) {
	if e.provider == nil {
		return nil, fmt.Errorf("no generation provider configured")
	}

	systemPrompt := e.prompts.Resolve(ctx, prompts.AgentOrchestrator, prompts.PromptSystem)
	userTemplate := e.prompts.Resolve(ctx, prompts.AgentOrchestrator, prompts.PromptUserTemplate)

	departments := req.Departments
	if len(departments) == 0 {
		departments = DefaultDepartments
	}

	vars := map[string]string{
		"goal_text":             req.Goal,
		"timeline":              orDefault(req.Timeline, unspecified),
		"available_departments": strings.Join(departments, ", "),
		"budget":                orDefault(req.Budget, unspecified),
		"special_requirements":  orDefault(req.SpecialRequirements, "none"),
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
		return nil, err
	}

	plan, err := parsePlan(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse generated plan: %w", err)
	}

	plan.Source = SourceGenerated
	return plan, nil
}

// parsePlan extracts the JSON object from generated text and validates
// the minimum plan shape.
func parsePlan(text string) (*ProjectPlan, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, fmt.Errorf("no JSON object in completion")
	}

	var plan ProjectPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, err
	}

	if plan.Title == "" || len(plan.Tasks) == 0 {
		return nil, fmt.Errorf("plan missing title or tasks")
	}

	if plan.DurationDays == 0 {
		for _, task := range plan.Tasks {
			plan.DurationDays += task.EstimatedDays
		}
	}

	return &plan, nil
}

// extractJSON strips code fences and returns the outermost {...} slice.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
