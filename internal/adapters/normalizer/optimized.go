package normalizer

import (
	"github.com/baditaflorin/go_sms_normalizer/internal/core/rules"
	"github.com/baditaflorin/go_sms_normalizer/internal/ports"
)

// GuardedNormalizer skips rules whose guard bytes are absent from the text.
// Its output is identical to DefaultNormalizer; short messages without
// digits, '@' or punctuation avoid most regexp scans.
type GuardedNormalizer struct {
	rules []rules.Rule
}

// NewGuardedNormalizer creates a guarded normalizer over the given rule set.
func NewGuardedNormalizer(set *rules.RuleSet) ports.Normalizer {
	return &GuardedNormalizer{rules: set.Rules()}
}

// Normalize replaces entities with placeholders and tidies whitespace.
func (n *GuardedNormalizer) Normalize(text string) string {
	// Fast path for empty strings
	if len(text) == 0 {
		return ""
	}

	for _, r := range n.rules {
		if !r.MayMatch(text) {
			continue
		}
		text = r.Apply(text)
	}
	return text
}

// NormalizerFactory creates normalizers sharing one rule set.
type NormalizerFactory struct {
	rules *rules.RuleSet
}

// NewNormalizerFactory creates a new normalizer factory. A nil set selects
// the default rule sequence.
func NewNormalizerFactory(set *rules.RuleSet) *NormalizerFactory {
	if set == nil {
		set = rules.Default()
	}
	return &NormalizerFactory{rules: set}
}

// NormalizerType represents different normalizer implementations
type NormalizerType int

const (
	// DefaultNormalizerType applies every rule unconditionally
	DefaultNormalizerType NormalizerType = iota
	// GuardedNormalizerType skips rules that cannot match
	GuardedNormalizerType
)

// String returns the configuration name of the normalizer type.
func (t NormalizerType) String() string {
	switch t {
	case GuardedNormalizerType:
		return "guarded"
	default:
		return "default"
	}
}

// ParseNormalizerType maps a configuration name to a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, bool) {
	switch name {
	case "", "default":
		return DefaultNormalizerType, true
	case "guarded":
		return GuardedNormalizerType, true
	default:
		return DefaultNormalizerType, false
	}
}

// Rules returns the rule set shared by the factory's normalizers.
func (f *NormalizerFactory) Rules() *rules.RuleSet {
	return f.rules
}

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case GuardedNormalizerType:
		return NewGuardedNormalizer(f.rules)
	default:
		return NewDefaultNormalizer(f.rules)
	}
}
