package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDrift_BasicShortfall(t *testing.T) {
	assert.InDelta(t, 0.2, Drift(10, 8), 1e-9)
}

func TestDrift_MetOrExceededTargetIsZero(t *testing.T) {
	tests := []struct {
		name           string
		target, actual float64
	}{
		{"exactly met", 10, 10},
		{"exceeded", 10, 12},
		{"far exceeded", 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Zero(t, Drift(tt.target, tt.actual), "over-performance never counts against the subject")
		})
	}
}

func TestDrift_ZeroTarget(t *testing.T) {
	assert.Zero(t, Drift(0, 5), "no target means no drift")
	assert.Zero(t, Drift(0, 0))
}

func TestDrift_NeverNegative(t *testing.T) {
	cases := [][2]float64{{10, 8}, {10, 10}, {10, 15}, {0, 3}, {100, 0}, {1, 0.5}}
	for _, c := range cases {
		assert.GreaterOrEqual(t, Drift(c[0], c[1]), 0.0, "drift(%v, %v)", c[0], c[1])
	}
}

func TestDrift_Idempotent(t *testing.T) {
	first, firstTier := Evaluate(10, 7)
	second, secondTier := Evaluate(10, 7)

	assert.Equal(t, first, second)
	assert.Equal(t, firstTier, secondTier)
}

func TestTierFor_Boundaries(t *testing.T) {
	// Boundary values are inclusive to the higher tier.
	tests := []struct {
		drift float64
		want  Tier
	}{
		{0.0, TierExcellent},
		{0.14, TierExcellent},
		{0.15, TierGood},
		{0.24, TierGood},
		{0.25, TierNeedsImprovement},
		{0.34, TierNeedsImprovement},
		{0.35, TierCritical},
		{0.7, TierCritical},
		{1.0, TierCritical},
	}

	for _, tt := range tests {
		got := TierFor(tt.drift)
		assert.Equal(t, tt.want, got, "tier for drift %v", tt.drift)
		assert.True(t, got.Valid(), "tier must be one of the four values")
	}
}

func TestEvaluate_Scenarios(t *testing.T) {
	// target=10, actual=8 -> drift 0.2, good
	drift, tier := Evaluate(10, 8)
	assert.InDelta(t, 0.2, drift, 1e-9)
	assert.Equal(t, TierGood, tier)

	// target=10, actual=10 -> drift 0, excellent
	drift, tier = Evaluate(10, 10)
	assert.Zero(t, drift)
	assert.Equal(t, TierExcellent, tier)

	// target=10, actual=3 -> drift 0.7, critical
	drift, tier = Evaluate(10, 3)
	assert.InDelta(t, 0.7, drift, 1e-9)
	assert.Equal(t, TierCritical, tier)
}

func TestTier_Valid(t *testing.T) {
	assert.False(t, Tier("no_data").Valid())
	assert.False(t, Tier("").Valid())
}
