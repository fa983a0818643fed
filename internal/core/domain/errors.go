package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInputNotFound indicates the input file does not exist or cannot be opened.
	ErrInputNotFound = errors.New("smsnormalizer: input file not found")

	// ErrMalformedRow indicates an input row without exactly two fields.
	ErrMalformedRow = errors.New("smsnormalizer: malformed row")

	// ErrUnknownRule indicates a rule name that is not part of the rule set.
	ErrUnknownRule = errors.New("smsnormalizer: unknown rule")

	// ErrRuleOrder indicates rules whose order values are not strictly increasing.
	ErrRuleOrder = errors.New("smsnormalizer: rules out of order")

	// ErrInvalidPattern indicates a pattern that does not compile.
	ErrInvalidPattern = errors.New("smsnormalizer: invalid pattern")

	// ErrOutputLocked indicates another run holds the lock on the output file.
	ErrOutputLocked = errors.New("smsnormalizer: output file is locked")
)

// RowError reports a malformed input row.
type RowError struct {
	Line   int
	Fields int
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: expected 2 tab-separated fields, got %d", e.Line, e.Fields)
}

// Unwrap lets errors.Is match ErrMalformedRow.
func (e *RowError) Unwrap() error {
	return ErrMalformedRow
}
