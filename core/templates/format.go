package templates

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// Placeholders returns the placeholder names referenced by a template,
// in order of first appearance.
func Placeholders(template string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(template, -1)
	seen := make(map[string]bool, len(matches))
	var names []string
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Format substitutes {name}-style placeholders from vars. If any
// placeholder the template references is missing from vars, the
// template is returned unrendered — a bad template must never block
// message delivery. The second return reports whether rendering
// happened.
func Format(template string, vars map[string]string) (string, bool) {
	names := Placeholders(template)
	if len(names) == 0 {
		return template, true
	}

	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		value, ok := vars[name]
		if !ok {
			return template, false
		}
		pairs = append(pairs, "{"+name+"}", value)
	}

	return strings.NewReplacer(pairs...).Replace(template), true
}
