package rules

import (
	"regexp"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
)

// Rule names of the default sequence.
const (
	NameQuoteStrip         = "quote_strip"
	NameErrorSymbolStrip   = "error_symbol_strip"
	NameEmail              = "email"
	NameURL                = "url"
	NameMoney              = "money"
	NameCode               = "code"
	NamePhone              = "phone"
	NameEmoticon           = "emoticon"
	NameAgeMarker          = "age_marker"
	NameSpacingAsterisk    = "symbol_spacing_asterisk"
	NameSpacingAmpersand   = "symbol_spacing_ampersand"
	NameSpacingPlus        = "symbol_spacing_plus"
	NameSpacingHyphen      = "symbol_spacing_hyphen"
	NameSpacingHash        = "symbol_spacing_hash"
	NameWhitespaceCollapse = "whitespace_collapse"
	NameTrim               = "trim"
)

const digits = "0123456789"

// currency is a single-character class. It reads like an alternation of
// symbols and abbreviations but only ever matches one of £ | $ g b p ? G B P.
const currency = `[£|\$|gbp?|GBP?]`

// space covers ASCII whitespace plus every Unicode separator, matching unicode.IsSpace.
const space = `[[:space:]\p{Z}\x{85}]`

var (
	emailPattern = `\b[A-Za-z0-9_]+@\s?[A-Za-z0-9_\.]+($|\s|\.|,|\b|\W)`

	urlPattern = `(?:(?:https?)?[://]*)?(?:www\.)?[a-zA-Z0-9@:%._\-\+~#=]+\.(com|org|co|net|gr|COM)(\s|$|[^a-zA-Z0-9]\S*)`

	moneyPattern = `(` +
		// 1.50pm, £1.50perWKsub, £33:50ppm
		`((` + currency + `?\d+[\.|,]\d+|` + currency + `\d+:\d+)(ppm|pm|p\/[a-zA-Z]+|per\w+|p|P|\spounds))` +
		// £2,000
		`|((` + currency + `\d+[\.|,|\s.]\d+))` +
		// 150p, 20p/min, 10ppm, 500 gbp
		`|(` + currency + `?\d+(ppm|p\/[a-zA-Z]+|per\w+|p|P|\spounds|\s?gbp?|\s?GBP?))` +
		// £1000, £5/month
		`|(` + currency + `\d+(/[a-zA-Z]*)?)` +
		`)`

	codePattern = `([A-Z]+[a-zA-Z]*\d+[a-zA-Z0-9]*[A-Z]+\d*|(Code|code|CODE):?\s?\d{4,5}|\d{4,5}(Code|code|CODE))`

	phonePattern = `(\b\d{9,12}|\b\d{5}\b|\d{3,4}(\s|(\s?-\s?))?\d{3,4}(\s|(\s?-\s?))?\d{3,4})`

	emoticonPattern = `:\s\-\sP|:\-D|;\-\)|:\-\)|:\)|;\)|:\(`

	// Read as "1 followed by one or more 6 (or 8)", not "16 or older".
	// Kept as authored: "18+" leaves the plus behind and "166" matches.
	agePattern = `16+|18+`
)

// Default builds the fixed normalization sequence. Callers construct it once
// and share the returned set; it never changes after construction.
func Default() *RuleSet {
	table := []struct {
		name, pattern, replacement, guard string
	}{
		{NameQuoteStrip, `['"]`, " ", `'"`},
		{NameErrorSymbolStrip, `(&lt;#&gt;|&lt;3|&lt;\w+&gt;)`, " ", "&"},
		{NameEmail, emailPattern, placeholder(domain.PlaceholderEmail), "@"},
		{NameURL, urlPattern, placeholder(domain.PlaceholderURL), "."},
		{NameMoney, moneyPattern, placeholder(domain.PlaceholderMoney), digits},
		{NameCode, codePattern, placeholder(domain.PlaceholderCode), digits},
		{NamePhone, phonePattern, placeholder(domain.PlaceholderPhone), digits},
		{NameEmoticon, emoticonPattern, placeholder(domain.PlaceholderEmoticon), ":;"},
		{NameAgeMarker, agePattern, placeholder(domain.PlaceholderAge), "1"},
		{NameSpacingAsterisk, `\s*\*\s*`, " * ", "*"},
		{NameSpacingAmpersand, `\s*&\s*`, " & ", "&"},
		{NameSpacingPlus, `\s*\+\s*`, " + ", "+"},
		{NameSpacingHyphen, `\s*\-\s*`, " - ", "-"},
		{NameSpacingHash, `\s*\#\s*`, " # ", "#"},
		{NameWhitespaceCollapse, space + `+`, " ", ""},
		{NameTrim, `^` + space + `+|` + space + `+$`, "", ""},
	}

	list := make([]Rule, 0, len(table))
	for i, s := range table {
		list = append(list, Rule{
			Name:        s.name,
			Order:       i + 1,
			Pattern:     regexp.MustCompile(s.pattern),
			Replacement: s.replacement,
			Guard:       s.guard,
		})
	}

	set, err := NewRuleSet(list...)
	if err != nil {
		// The table above is static; a failure here is a programming error.
		panic(err)
	}
	return set
}

func placeholder(token string) string {
	return " " + token + " "
}
