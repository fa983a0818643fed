package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
)

// Rule is a single ordered pattern/replacement step.
type Rule struct {
	// Name identifies the rule in traces, logs and the try tooling.
	Name string
	// Order is the rule's position in the sequence. Orders must be strictly increasing.
	Order int
	// Pattern is the compiled matcher.
	Pattern *regexp.Regexp
	// Replacement is substituted literally for every match.
	Replacement string
	// Guard holds bytes of which at least one must occur in the text for
	// Pattern to match. Empty means the rule always runs.
	Guard string
}

// Apply rewrites every match of the rule in text.
func (r Rule) Apply(text string) string {
	return r.Pattern.ReplaceAllLiteralString(text, r.Replacement)
}

// MayMatch reports whether the rule's guard allows a match in text.
func (r Rule) MayMatch(text string) bool {
	return r.Guard == "" || strings.ContainsAny(text, r.Guard)
}

// RuleSet is an immutable, ordered list of rules.
// It is safe for concurrent use.
type RuleSet struct {
	rules  []Rule
	byName map[string]int
}

// NewRuleSet validates and freezes the given rules.
// Rules must have non-empty unique names, compiled patterns and strictly
// increasing orders; the set never reorders them.
func NewRuleSet(rules ...Rule) (*RuleSet, error) {
	set := &RuleSet{
		rules:  make([]Rule, 0, len(rules)),
		byName: make(map[string]int, len(rules)),
	}
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("%w: rule at index %d has no name", domain.ErrInvalidPattern, i)
		}
		if r.Pattern == nil {
			return nil, fmt.Errorf("%w: rule %q has no pattern", domain.ErrInvalidPattern, r.Name)
		}
		if _, dup := set.byName[r.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate rule %q", domain.ErrRuleOrder, r.Name)
		}
		if i > 0 && r.Order <= rules[i-1].Order {
			return nil, fmt.Errorf("%w: rule %q (order %d) follows order %d",
				domain.ErrRuleOrder, r.Name, r.Order, rules[i-1].Order)
		}
		set.byName[r.Name] = i
		set.rules = append(set.rules, r)
	}
	return set, nil
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Rules returns a copy of the rules in application order.
func (s *RuleSet) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Rule looks a rule up by name.
func (s *RuleSet) Rule(name string) (Rule, error) {
	i, ok := s.byName[name]
	if !ok {
		return Rule{}, fmt.Errorf("%w: %q", domain.ErrUnknownRule, name)
	}
	return s.rules[i], nil
}

// Apply runs every rule in order over text.
func (s *RuleSet) Apply(text string) string {
	for _, r := range s.rules {
		text = r.Apply(text)
	}
	return text
}
