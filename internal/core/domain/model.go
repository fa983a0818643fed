package domain

import "time"

// Placeholder tokens substituted for recognized entities.
const (
	PlaceholderEmail    = "email_address"
	PlaceholderURL      = "url_address"
	PlaceholderMoney    = "money_expression"
	PlaceholderCode     = "code_expression"
	PlaceholderPhone    = "phone_number"
	PlaceholderEmoticon = "emoji_expression"
	PlaceholderAge      = "age_required"
)

// Placeholders lists every placeholder token in rule order.
func Placeholders() []string {
	return []string{
		PlaceholderEmail,
		PlaceholderURL,
		PlaceholderMoney,
		PlaceholderCode,
		PlaceholderPhone,
		PlaceholderEmoticon,
		PlaceholderAge,
	}
}

// Record is one labeled message flowing through the pipeline.
type Record struct {
	// Label is the class attribute. It is passed through unchanged.
	Label string
	// Text is the message body, the only field the normalizer rewrites.
	Text string
	// Line is the 1-based source line the record was read from (0 if unknown).
	Line int
}

// Stats holds the outcome of processing a record stream.
type Stats struct {
	Records   int
	Rewritten int
	Skipped   int
	Duration  time.Duration
}
