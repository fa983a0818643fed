package normalizer

import (
	"github.com/baditaflorin/go_sms_normalizer/internal/core/rules"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
)

// DefaultNormalizer implements the default text normalization strategy:
// every rule of the set runs, in order, on every text.
type DefaultNormalizer struct {
	rules *rules.RuleSet
}

// NewDefaultNormalizer creates a new default normalizer over the given rule set.
func NewDefaultNormalizer(set *rules.RuleSet) ports.Normalizer {
	return &DefaultNormalizer{rules: set}
}

// Normalize replaces entities with placeholders and tidies whitespace.
func (n *DefaultNormalizer) Normalize(text string) string {
	return n.rules.Apply(text)
}
