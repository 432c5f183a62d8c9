// Package quiet implements the message-suppression policy: rest days,
// off-hours and a per-subject cooldown window. The gate is a pure
// function of (now, last send) — no I/O, no mutation.
package quiet

import (
	"time"
)

// Clock supplies the current time. Injectable for tests.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation of Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Block reasons reported by Evaluate and Reason.
const (
	ReasonRestDay    = "rest day"
	ReasonBeforeWork = "before work hours"
	ReasonAfterWork  = "after work hours"
	ReasonCooldown   = "cooldown active"
	ReasonNone       = "not active"
)

// Policy defines when proactive messages are suppressed.
type Policy struct {
	// RestDays are full no-send days. Defaults to Thursday and Friday,
	// the weekend of the target locale.
	RestDays []time.Weekday

	// StartHour and EndHour bound the daily send window, half-open:
	// [StartHour, EndHour). The EndHour boundary itself blocks.
	StartHour int
	EndHour   int

	// Cooldown is the minimum gap between messages to the same subject.
	// A gap strictly less than Cooldown blocks.
	Cooldown time.Duration

	// Location is the timezone the hour checks run in.
	Location *time.Location
}

// DefaultPolicy returns the stock policy: Thursday/Friday rest days,
// 09:00–18:00 window, 4 hour cooldown, local time.
func DefaultPolicy() Policy {
	return Policy{
		RestDays:  []time.Weekday{time.Thursday, time.Friday},
		StartHour: 9,
		EndHour:   18,
		Cooldown:  4 * time.Hour,
		Location:  time.Local,
	}
}

// Gate evaluates the quiet-mode policy.
type Gate struct {
	policy Policy
	clock  Clock
}

// NewGate creates a gate with the given policy. Zero policy fields fall
// back to DefaultPolicy values; a nil clock uses the system clock.
func NewGate(policy Policy, clock Clock) *Gate {
	policy = applyPolicyDefaults(policy)
	if clock == nil {
		clock = SystemClock{}
	}
	return &Gate{policy: policy, clock: clock}
}

func applyPolicyDefaults(policy Policy) Policy {
	def := DefaultPolicy()
	if policy.RestDays == nil {
		policy.RestDays = def.RestDays
	}
	if policy.StartHour == 0 && policy.EndHour == 0 {
		policy.StartHour = def.StartHour
		policy.EndHour = def.EndHour
	}
	if policy.Cooldown == 0 {
		policy.Cooldown = def.Cooldown
	}
	if policy.Location == nil {
		policy.Location = def.Location
	}
	return policy
}

// Policy returns the gate's effective policy.
func (g *Gate) Policy() Policy {
	return g.policy
}

// Allowed reports whether a message may be sent now. lastSend is the
// time of the most recent message to the same subject, or nil.
func (g *Gate) Allowed(lastSend *time.Time) bool {
	allowed, _ := g.Evaluate(g.clock.Now(), lastSend)
	return allowed
}

// Evaluate runs all three checks against an explicit now. Any failing
// check blocks; the first failing check names the reason.
func (g *Gate) Evaluate(now time.Time, lastSend *time.Time) (bool, string) {
	if reason := g.quietReason(now); reason != ReasonNone {
		return false, reason
	}

	if lastSend != nil && now.Sub(*lastSend) < g.policy.Cooldown {
		return false, ReasonCooldown
	}

	return true, ReasonNone
}

// Reason returns the quiet-time diagnostic for now, ignoring cooldown.
func (g *Gate) Reason(now time.Time) string {
	return g.quietReason(now)
}

func (g *Gate) quietReason(now time.Time) string {
	local := now.In(g.policy.Location)

	for _, day := range g.policy.RestDays {
		if local.Weekday() == day {
			return ReasonRestDay
		}
	}

	if local.Hour() < g.policy.StartHour {
		return ReasonBeforeWork
	}
	if local.Hour() >= g.policy.EndHour {
		return ReasonAfterWork
	}

	return ReasonNone
}
