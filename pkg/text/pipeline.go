package text

import (
	"context"

	"github.com/rs/zerolog"
)

// Result captures what a pipeline run did to one piece of content.
type Result struct {
	OriginalContent string
	ModifiedContent string
	WasModified     bool
	AppliedRules    []string
}

// Pipeline applies an ordered rule list to content. A pipeline holds no
// per-run state and is safe for concurrent use.
type Pipeline struct {
	rules []Rule
}

// NewPipeline creates a pipeline from an ordered rule list.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: rules}
}

// RuleNames returns the names of the configured rules in order.
func (p *Pipeline) RuleNames() []string {
	names := make([]string, 0, len(p.rules))
	for _, r := range p.rules {
		names = append(names, r.Name)
	}
	return names
}

// Run applies every rule in order and reports which ones changed the
// content. Each rule sees the output of the rules before it.
func (p *Pipeline) Run(ctx context.Context, content string) *Result {
	logger := zerolog.Ctx(ctx)

	result := &Result{
		OriginalContent: content,
		ModifiedContent: content,
	}

	current := content
	for _, rule := range p.rules {
		next := rule.Apply(current)
		if next != current {
			result.AppliedRules = append(result.AppliedRules, rule.Name)
			logger.Trace().Str("rule", rule.Name).Msg("rule applied")
		}
		current = next
	}

	result.ModifiedContent = current
	result.WasModified = current != content
	return result
}
