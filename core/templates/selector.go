// Package templates holds the canned coaching-message catalogue and the
// deterministic fallback selector used when text generation is
// unavailable or returns unusable output.
package templates

import (
	"log/slog"
	"math/rand"

	"github.com/adalundhe/atlas/core/kpi"
)

// PickFunc chooses an index in [0, n). Injectable so tests can pin the
// selection; the default is uniformly random.
type PickFunc func(n int) int

// Selector renders a canned message for a (tier, department) pair.
type Selector struct {
	templates map[kpi.Tier][]string
	fillers   map[string]map[string]string
	pick      PickFunc
	logger    *slog.Logger
}

// SelectorConfig configures a Selector.
type SelectorConfig struct {
	Pick   PickFunc     // Optional, defaults to rand.Intn
	Logger *slog.Logger // Optional, uses slog.Default() if nil
}

// NewSelector creates a selector over the built-in catalogue.
func NewSelector(cfg SelectorConfig) *Selector {
	if cfg.Pick == nil {
		cfg.Pick = rand.Intn
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Selector{
		templates: performanceTemplates,
		fillers:   departmentVariables,
		pick:      cfg.Pick,
		logger:    cfg.Logger,
	}
}

// Render picks a candidate template for the tier and substitutes the
// department's fillers. A tier outside the catalogue uses the good-tier
// candidates; an unknown department uses the default department's
// fillers. Render always returns a non-empty string: on a missing
// placeholder the template is returned unrendered.
func (s *Selector) Render(tier kpi.Tier, department string) string {
	candidates, ok := s.templates[tier]
	if !ok || len(candidates) == 0 {
		candidates = s.templates[kpi.TierGood]
	}

	template := candidates[s.pick(len(candidates))]

	vars, ok := s.fillers[department]
	if !ok {
		vars = s.fillers[DefaultDepartment]
	}

	rendered, complete := Format(template, vars)
	if !complete {
		s.logger.Warn("template has unfilled placeholders, returning unrendered",
			"tier", tier,
			"department", department,
		)
	}
	return rendered
}
