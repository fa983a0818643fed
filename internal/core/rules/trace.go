package rules

import (
	"fmt"
	"regexp"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
)

// tryReplacement marks matches in Try output.
const tryReplacement = "OK"

// Step records a rule that changed the text.
type Step struct {
	Order  int
	Rule   string
	Before string
	After  string
}

// Trace applies the rules like Apply and returns every step that changed the text.
func (s *RuleSet) Trace(text string) []Step {
	var steps []Step
	for _, r := range s.rules {
		next := r.Apply(text)
		if next != text {
			steps = append(steps, Step{Order: r.Order, Rule: r.Name, Before: text, After: next})
		}
		text = next
	}
	return steps
}

// TryResult is the outcome of running a single pattern over one word.
type TryResult struct {
	Input   string
	Output  string
	Matched bool
}

// String renders the result as "input --> output".
func (t TryResult) String() string {
	return t.Input + " --> " + t.Output
}

// Try replaces every match of pattern in each word with "OK".
// It is meant for checking a pattern against hand-collected samples.
func Try(pattern string, words []string) ([]TryResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidPattern, err)
	}
	return try(re, words), nil
}

// TryRule runs Try with the pattern of the named rule.
func (s *RuleSet) TryRule(name string, words []string) ([]TryResult, error) {
	r, err := s.Rule(name)
	if err != nil {
		return nil, err
	}
	return try(r.Pattern, words), nil
}

func try(re *regexp.Regexp, words []string) []TryResult {
	results := make([]TryResult, 0, len(words))
	for _, w := range words {
		results = append(results, TryResult{
			Input:   w,
			Output:  re.ReplaceAllLiteralString(w, tryReplacement),
			Matched: re.MatchString(w),
		})
	}
	return results
}
