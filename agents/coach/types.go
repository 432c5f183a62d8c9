package coach

import (
	"time"

	"github.com/adalundhe/atlas/core/kpi"
)

// Source identifies where a decision's text came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceTemplate  Source = "template"
)

// Suppression reasons that originate in the engine itself; gate block
// reasons come from the quiet package.
const (
	ReasonNoData        = "no performance data"
	ReasonTierExcellent = "tier excellent"
)

// Request carries one subject's inputs into a coaching decision.
type Request struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
	Summary    string `json:"summary"`

	// Sample is the subject's latest performance sample, or nil when
	// none exists (treated as drift 0).
	Sample *kpi.PerformanceSample `json:"sample,omitempty"`

	// LastSend is the time of the most recent message to this subject,
	// or nil. Feeds the cooldown check.
	LastSend *time.Time `json:"last_send,omitempty"`
}

// Decision is the engine's output. Ephemeral: produced per request,
// never persisted by the engine itself.
type Decision struct {
	ID         string    `json:"id"`
	ShouldSend bool      `json:"should_send"`
	Tier       kpi.Tier  `json:"tier"`
	Text       string    `json:"text"`
	Reason     string    `json:"reason,omitempty"`
	Source     Source    `json:"source,omitempty"`
	DecidedAt  time.Time `json:"decided_at"`
}
