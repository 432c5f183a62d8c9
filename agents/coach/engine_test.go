package coach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/atlas/core/kpi"
	"github.com/adalundhe/atlas/core/providers"
	"github.com/adalundhe/atlas/core/quiet"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// workday returns a Wednesday (2025-06-11) at the given time, UTC.
func workday(hour, minute int) time.Time {
	return time.Date(2025, 6, 11, hour, minute, 0, 0, time.UTC)
}

func newTestEngine(t *testing.T, provider providers.Provider, now time.Time) *Engine {
	t.Helper()

	clock := fixedClock{now: now}
	engine, err := New(EngineConfig{
		Provider: provider,
		Gate:     quiet.NewGate(quiet.Policy{Location: time.UTC}, clock),
		Clock:    clock,
	})
	require.NoError(t, err, "New")
	return engine
}

func sampleWith(target, actual float64) *kpi.PerformanceSample {
	return &kpi.PerformanceSample{
		UserID:     "u1",
		Department: "sales",
		Month:      "2025-06",
		Target:     target,
		Actual:     actual,
	}
}

func TestDecide_NoSampleSuppresses(t *testing.T) {
	engine := newTestEngine(t, nil, workday(11, 0))

	decision := engine.Decide(context.Background(), &Request{Name: "omar"})

	assert.False(t, decision.ShouldSend)
	assert.Equal(t, kpi.TierExcellent, decision.Tier)
	assert.Equal(t, ReasonNoData, decision.Reason)
	assert.NotEmpty(t, decision.ID)
}

func TestDecide_ExcellentSuppressedBeforeGate(t *testing.T) {
	engine := newTestEngine(t, nil, workday(11, 0))

	// Last send 30 minutes ago: the cooldown would block, but the tier
	// check runs first and wins.
	lastSend := workday(10, 30)
	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "sales",
		Sample:     sampleWith(10, 10),
		LastSend:   &lastSend,
	})

	assert.False(t, decision.ShouldSend)
	assert.Equal(t, kpi.TierExcellent, decision.Tier)
	assert.Equal(t, ReasonTierExcellent, decision.Reason)
}

func TestDecide_QuietHoursBlock(t *testing.T) {
	engine := newTestEngine(t, nil, workday(2, 0))

	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "sales",
		Sample:     sampleWith(10, 8),
	})

	assert.False(t, decision.ShouldSend)
	assert.Equal(t, kpi.TierGood, decision.Tier)
	assert.Equal(t, quiet.ReasonBeforeWork, decision.Reason)
	assert.Empty(t, decision.Text, "no text is composed for a blocked send")
}

func TestDecide_CooldownBlocks(t *testing.T) {
	engine := newTestEngine(t, nil, workday(11, 0))

	lastSend := workday(9, 0)
	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "sales",
		Sample:     sampleWith(10, 8),
		LastSend:   &lastSend,
	})

	assert.False(t, decision.ShouldSend)
	assert.Equal(t, quiet.ReasonCooldown, decision.Reason)
}

func TestDecide_SendableWithoutProviderUsesTemplate(t *testing.T) {
	engine := newTestEngine(t, nil, workday(11, 0))

	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "sales",
		Sample:     sampleWith(10, 8),
	})

	assert.True(t, decision.ShouldSend)
	assert.Equal(t, SourceTemplate, decision.Source)
	assert.NotEmpty(t, decision.Text)
	assert.NotContains(t, decision.Text, "{", "template must render fully")
}

func TestDecide_GenerationFailureFallsBackToTemplate(t *testing.T) {
	stub := &providers.StubProvider{Err: errors.New("backend down")}
	engine := newTestEngine(t, stub, workday(11, 0))

	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "marketing",
		Sample:     sampleWith(10, 3),
	})

	assert.True(t, decision.ShouldSend, "generation failure never suppresses a sendable decision")
	assert.Equal(t, kpi.TierCritical, decision.Tier)
	assert.Equal(t, SourceTemplate, decision.Source)
	assert.NotEmpty(t, decision.Text)
	assert.Equal(t, 1, stub.Calls())
}

func TestDecide_EmptyCompletionFallsBackToTemplate(t *testing.T) {
	stub := &providers.StubProvider{Content: "   "}
	engine := newTestEngine(t, stub, workday(11, 0))

	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "sales",
		Sample:     sampleWith(10, 7),
	})

	assert.True(t, decision.ShouldSend)
	assert.Equal(t, SourceTemplate, decision.Source)
	assert.NotEmpty(t, decision.Text)
}

func TestDecide_GeneratedTextUsedVerbatim(t *testing.T) {
	stub := &providers.StubProvider{Content: "خطوة صغيرة اليوم توصلك لهدفك 🚀"}
	engine := newTestEngine(t, stub, workday(11, 0))

	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "sales",
		Sample:     sampleWith(10, 8),
	})

	assert.True(t, decision.ShouldSend)
	assert.Equal(t, SourceGenerated, decision.Source)
	assert.Equal(t, "خطوة صغيرة اليوم توصلك لهدفك 🚀", decision.Text)
}

func TestDecide_PromptReceivesSubjectContext(t *testing.T) {
	stub := &providers.StubProvider{Content: "ok"}
	engine := newTestEngine(t, stub, workday(11, 30))

	engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Role:       "account executive",
		Department: "sales",
		Summary:    "closed two deals",
		Sample:     sampleWith(10, 7),
	})

	req := stub.LastRequest()
	require.NotNil(t, req)
	require.Len(t, req.Messages, 1)
	assert.NotEmpty(t, req.SystemPrompt)
	assert.Contains(t, req.Messages[0].Content, "omar")
	assert.Contains(t, req.Messages[0].Content, "account executive")
	assert.Contains(t, req.Messages[0].Content, "needs_improvement")
	assert.Contains(t, req.Messages[0].Content, "closed two deals")
	assert.Contains(t, req.Messages[0].Content, "11:30")
	assert.Equal(t, DefaultMaxTokens, req.MaxTokens)
}

func TestDecide_TierMatchesDrift(t *testing.T) {
	engine := newTestEngine(t, nil, workday(11, 0))

	decision := engine.Decide(context.Background(), &Request{
		Name:       "omar",
		Department: "sales",
		Sample:     sampleWith(10, 3),
	})

	assert.Equal(t, kpi.TierCritical, decision.Tier)
	assert.True(t, decision.ShouldSend)
}
