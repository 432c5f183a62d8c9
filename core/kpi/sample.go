package kpi

// PerformanceSample is a single target/actual pair for a subject and
// period. At most one live sample exists per (subject, month) pair;
// submitting a new pair for the same month replaces the old one.
type PerformanceSample struct {
	UserID     string  `json:"user_id"`
	Department string  `json:"department"`
	Month      string  `json:"month"` // YYYY-MM
	Target     float64 `json:"target"`
	Actual     float64 `json:"actual"`
	Drift      float64 `json:"drift"`
}

// Tier returns the performance tier for the sample's drift.
func (s *PerformanceSample) Tier() Tier {
	return TierFor(s.Drift)
}
