package smsnormalizer

import "github.com/baditaflorin/go_sms_normalizer/internal/core/domain"

// Errors returned by the normalizer. Check them with errors.Is.
var (
	ErrInputNotFound  = domain.ErrInputNotFound
	ErrMalformedRow   = domain.ErrMalformedRow
	ErrUnknownRule    = domain.ErrUnknownRule
	ErrRuleOrder      = domain.ErrRuleOrder
	ErrInvalidPattern = domain.ErrInvalidPattern
	ErrOutputLocked   = domain.ErrOutputLocked
)

// RowError reports the line and field count of a malformed input row.
type RowError = domain.RowError
