package text

import (
	"regexp"
	"strings"
)

// Rule is one ordered rewrite step. Rules are pure text transformations:
// the same input always yields the same output, and applying a rule to
// its own output changes nothing.
type Rule struct {
	Name  string
	Steps []Step
}

// Step pairs a compiled pattern with its replacement template.
type Step struct {
	Pattern *regexp.Regexp
	Replace string
}

// Apply runs every step of the rule over content in order.
func (r Rule) Apply(content string) string {
	for _, s := range r.Steps {
		content = s.Pattern.ReplaceAllString(content, s.Replace)
	}
	return content
}

// step compiles a pattern/replacement pair. Catalogue patterns are built
// from validated config, so compile failures are programmer errors.
func step(pattern, replace string) Step {
	return Step{Pattern: regexp.MustCompile(pattern), Replace: replace}
}

// templateEscape makes a literal string safe for use in a replacement
// template, where $ introduces group references.
func templateEscape(s string) string {
	return strings.ReplaceAll(s, "$", "$$")
}
