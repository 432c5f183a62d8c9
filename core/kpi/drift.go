package kpi

// Tier is a discretized performance bucket derived from drift. It drives
// both message suppression and fallback template selection.
type Tier string

const (
	TierExcellent        Tier = "excellent"
	TierGood             Tier = "good"
	TierNeedsImprovement Tier = "needs_improvement"
	TierCritical         Tier = "critical"
)

// Tier thresholds. Half-open intervals, ascending, first match wins.
// A boundary value belongs to the higher tier: drift 0.15 is good,
// drift 0.25 is needs_improvement, drift 0.35 is critical.
const (
	excellentBelow        = 0.15
	goodBelow             = 0.25
	needsImprovementBelow = 0.35
)

// Drift returns the normalized shortfall of actual performance below
// target. Over-performance (actual > target) clamps to 0 — it never
// counts against the subject. A non-positive target yields 0.
func Drift(target, actual float64) float64 {
	if target <= 0 {
		return 0
	}
	d := (target - actual) / target
	if d < 0 {
		return 0
	}
	return d
}

// TierFor maps a drift value to its performance tier.
func TierFor(drift float64) Tier {
	switch {
	case drift < excellentBelow:
		return TierExcellent
	case drift < goodBelow:
		return TierGood
	case drift < needsImprovementBelow:
		return TierNeedsImprovement
	default:
		return TierCritical
	}
}

// Evaluate computes drift and tier for a target/actual pair in one call.
func Evaluate(target, actual float64) (float64, Tier) {
	d := Drift(target, actual)
	return d, TierFor(d)
}

// Valid reports whether t is one of the defined tiers.
func (t Tier) Valid() bool {
	switch t {
	case TierExcellent, TierGood, TierNeedsImprovement, TierCritical:
		return true
	}
	return false
}
