// Package manager wires the coach and orchestrator engines behind one
// registry with per-agent request stats, a health report and the two
// cross-agent coordination flows. Engines are injected at construction;
// there is no ambient registry.
package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/adalundhe/atlas/agents/coach"
	"github.com/adalundhe/atlas/agents/orchestrator"
	"github.com/adalundhe/atlas/core/quiet"
)

const (
	AgentCoach        = "coach"
	AgentOrchestrator = "orchestrator"
)

// HealthLevel grades an agent by its recent success rate.
type HealthLevel string

const (
	LevelExcellent HealthLevel = "excellent" // >= 90%
	LevelGood      HealthLevel = "good"      // >= 75%
	LevelWarning   HealthLevel = "warning"   // >= 50%
	LevelCritical  HealthLevel = "critical"  // < 50%
	LevelUnknown   HealthLevel = "unknown"   // no requests yet
)

// AgentStats tracks request volume and latency for one agent.
type AgentStats struct {
	TotalRequests   int           `json:"total_requests"`
	Successful      int           `json:"successful_requests"`
	Failed          int           `json:"failed_requests"`
	Degraded        int           `json:"degraded_requests"` // fallback path taken
	LastActivity    time.Time     `json:"last_activity"`
	AvgResponseTime time.Duration `json:"average_response_time"`
}

// AgentHealth is one agent's entry in the health report.
type AgentHealth struct {
	Level         HealthLevel   `json:"status"`
	SuccessRate   float64       `json:"success_rate"`
	TotalRequests int           `json:"total_requests"`
	AvgResponse   time.Duration `json:"average_response_time"`
	LastActivity  time.Time     `json:"last_activity,omitempty"`
}

// HealthReport summarizes all agents.
type HealthReport struct {
	Healthy   bool                   `json:"healthy"`
	Agents    map[string]AgentHealth `json:"agents"`
	Timestamp time.Time              `json:"timestamp"`
}

// CoordinationResult bundles the outputs of a coordination flow.
type CoordinationResult struct {
	Type       string                    `json:"coordination_type"`
	Plan       *orchestrator.ProjectPlan `json:"project_plan,omitempty"`
	Motivation *coach.Decision           `json:"motivation_message,omitempty"`
}

// Manager is the agent registry.
type Manager struct {
	coach        *coach.Engine
	orchestrator *orchestrator.Engine
	clock        quiet.Clock
	logger       *slog.Logger

	mu    sync.Mutex
	stats map[string]*AgentStats
}

// ManagerConfig configures the manager.
type ManagerConfig struct {
	Coach        *coach.Engine
	Orchestrator *orchestrator.Engine
	Clock        quiet.Clock  // Optional, system clock if nil
	Logger       *slog.Logger // Optional, uses slog.Default() if nil
}

// New creates a manager over the given engines.
func New(cfg ManagerConfig) (*Manager, error) {
	if cfg.Coach == nil {
		return nil, fmt.Errorf("manager requires a coach engine")
	}
	if cfg.Orchestrator == nil {
		return nil, fmt.Errorf("manager requires an orchestrator engine")
	}
	if cfg.Clock == nil {
		cfg.Clock = quiet.SystemClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Manager{
		coach:        cfg.Coach,
		orchestrator: cfg.Orchestrator,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
		stats: map[string]*AgentStats{
			AgentCoach:        {},
			AgentOrchestrator: {},
		},
	}, nil
}

// CoachMessage runs the coach engine and tracks its stats.
func (m *Manager) CoachMessage(ctx context.Context, req *coach.Request) *coach.Decision {
	start := m.clock.Now()
	decision := m.coach.Decide(ctx, req)
	m.record(AgentCoach, start, decision.Source == coach.SourceTemplate)
	return decision
}

// ExpandGoal runs the orchestrator engine and tracks its stats.
func (m *Manager) ExpandGoal(ctx context.Context, req *orchestrator.GoalRequest) *orchestrator.ProjectPlan {
	start := m.clock.Now()
	plan := m.orchestrator.Decompose(ctx, req)
	m.record(AgentOrchestrator, start, plan.Source == orchestrator.SourceTemplate)
	return plan
}

// ProjectWithCoaching decomposes a goal and produces a motivation
// message for the subject in one flow.
func (m *Manager) ProjectWithCoaching(ctx context.Context, goal *orchestrator.GoalRequest, subject *coach.Request) *CoordinationResult {
	return &CoordinationResult{
		Type:       "project_with_coaching",
		Plan:       m.ExpandGoal(ctx, goal),
		Motivation: m.CoachMessage(ctx, subject),
	}
}

// PerformanceAnalysis produces a motivation message plus an improvement
// plan derived from the subject's name and department.
func (m *Manager) PerformanceAnalysis(ctx context.Context, subject *coach.Request) *CoordinationResult {
	decision := m.CoachMessage(ctx, subject)

	goal := &orchestrator.GoalRequest{
		Goal: fmt.Sprintf("Improve %s's performance in the %s department", subject.Name, subject.Department),
	}

	return &CoordinationResult{
		Type:       "performance_analysis",
		Motivation: decision,
		Plan:       m.ExpandGoal(ctx, goal),
	}
}

// Stats returns a copy of one agent's stats.
func (m *Manager) Stats(agentType string) (AgentStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stats, ok := m.stats[agentType]
	if !ok {
		return AgentStats{}, false
	}
	return *stats, true
}

// AllStats returns a copy of every agent's stats.
func (m *Manager) AllStats() map[string]AgentStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]AgentStats, len(m.stats))
	for agentType, stats := range m.stats {
		all[agentType] = *stats
	}
	return all
}

// Restart resets the stats for one agent. The engines themselves are
// stateless per request, so a restart is a bookkeeping reset.
func (m *Manager) Restart(agentType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stats[agentType]; !ok {
		return fmt.Errorf("unknown agent type: %s", agentType)
	}
	m.stats[agentType] = &AgentStats{}
	m.logger.Info("agent stats reset", "agent_type", agentType)
	return nil
}

// Health grades every agent by success rate. An agent with no traffic
// reports LevelUnknown and does not affect the overall verdict.
func (m *Manager) Health() *HealthReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	report := &HealthReport{
		Healthy:   true,
		Agents:    make(map[string]AgentHealth, len(m.stats)),
		Timestamp: m.clock.Now(),
	}

	for agentType, stats := range m.stats {
		health := AgentHealth{
			TotalRequests: stats.TotalRequests,
			AvgResponse:   stats.AvgResponseTime,
			LastActivity:  stats.LastActivity,
		}

		if stats.TotalRequests == 0 {
			health.Level = LevelUnknown
		} else {
			rate := float64(stats.Successful) / float64(stats.TotalRequests) * 100
			health.SuccessRate = rate
			switch {
			case rate >= 90:
				health.Level = LevelExcellent
			case rate >= 75:
				health.Level = LevelGood
			case rate >= 50:
				health.Level = LevelWarning
			default:
				health.Level = LevelCritical
				report.Healthy = false
			}
		}

		report.Agents[agentType] = health
	}

	return report
}

// record updates one agent's counters. The engines never fail, so every
// request counts as successful; degraded tracks the fallback path.
func (m *Manager) record(agentType string, start time.Time, degraded bool) {
	elapsed := m.clock.Now().Sub(start)

	m.mu.Lock()
	defer m.mu.Unlock()

	stats := m.stats[agentType]
	stats.TotalRequests++
	stats.Successful++
	if degraded {
		stats.Degraded++
	}
	stats.LastActivity = m.clock.Now()

	if stats.AvgResponseTime == 0 {
		stats.AvgResponseTime = elapsed
	} else {
		stats.AvgResponseTime = (stats.AvgResponseTime + elapsed) / 2
	}
}
