package rules

import (
	"regexp"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/baditaflorin/go_sms_normalizer/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultApply(t *testing.T) {
	set := Default()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"plain text", "see you later", "see you later"},
		{"email", "Dorothy@kiefer.com", "email_address"},
		{"email in sentence", "mail me at bob@x.com now", "mail me at email_address now"},
		{"money with rate", "£1.50pm", "money_expression"},
		{"money symbol only", "£1250", "money_expression"},
		{"money five digits", "£12345", "money_expression"},
		{"phone eleven digits", "09061104283", "phone_number"},
		{"url with country suffix", "www.areyouunique.co.uk", "url_address"},
		{"golden", "I'm *so* happy :) call 0800 169 6031", "I m * so * happy emoji_expression call phone_number"},
		{"quotes", `"Hi" 'there'`, "Hi there"},
		{"escaped heart", "I &lt;3 u", "I u"},
		{"escaped word", "Pay &lt;DECIMAL&gt; now", "Pay now"},
		{"escaped hash", "x&lt;#&gt;y", "x y"},
		{"age marker keeps plus", "18+ only", "age_required + only"},
		{"age marker repeated digit", "166", "age_required"},
		{"asterisk", "x*y", "x * y"},
		{"ampersand", "rock&roll", "rock & roll"},
		{"hyphen", "a  -b", "a - b"},
		{"hash", "#1", "# 1"},
		{"whitespace", "  a \t\n b  ", "a b"},
		{"unicode whitespace", "\u00a0a\u2003b\u3000", "a b"},
		{"spaced emoticon", ": - P", "emoji_expression"},
		{"mixed entities", "82242 Hlp 08712317606 Msg150p", "phone_number Hlp phone_number Ms money_expression"},
		{"short code stays", "K52", "K52"},
		{"not a url", "Si.como", "Si.como"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, set.Apply(tc.input))
		})
	}
}

func TestDefaultSamples(t *testing.T) {
	set := Default()

	expect := map[string]string{
		NameEmail:    domain.PlaceholderEmail,
		NameURL:      domain.PlaceholderURL,
		NamePhone:    domain.PlaceholderPhone,
		NameEmoticon: domain.PlaceholderEmoticon,
		NameCode:     domain.PlaceholderCode,
	}
	// Samples kept to show where the rules stop short.
	exceptions := map[string]string{
		"Si.como":                       "Si.como",
		"K52":                           "K52",
		"82242 Hlp 08712317606 Msg150p": "phone_number Hlp phone_number Ms money_expression",
	}

	for rule, placeholder := range expect {
		for _, word := range Samples(rule) {
			t.Run(rule+"/"+word, func(t *testing.T) {
				want := placeholder
				if w, ok := exceptions[word]; ok {
					want = w
				}
				assert.Equal(t, want, set.Apply(word))
			})
		}
	}
}

func TestDefaultMoneySamples(t *testing.T) {
	set := Default()

	whole := []string{
		"20p/min", "£1000", "150p", "10p/min", "$700", "£100", "150P", "£1.50pm", "150ppm",
		"£1250", "$50", "£1.50perWKsub", "£2,000", "25p", "£5/month", "150p/Msg", "150p/day",
		"20,000 pounds", "10ppm",
	}
	for _, word := range whole {
		assert.Equal(t, domain.PlaceholderMoney, set.Apply(word), word)
	}

	// Partial matches leave trailing punctuation behind.
	assert.Equal(t, "money_expression .", set.Apply("150p/meg."))
	assert.Equal(t, "money_expression :50", set.Apply("£33:50"))
	assert.Equal(t, "max money_expression . 50", set.Apply("max£7. 50"))
}

func TestPermissiveMoney(t *testing.T) {
	// Any of g, b, p, G, B, P directly before digits counts as a currency marker.
	assert.Equal(t, "u money_expression", Default().Apply("up2"))
}

func TestPlaceholdersAreStable(t *testing.T) {
	set := Default()
	for _, p := range domain.Placeholders() {
		assert.Equal(t, p, set.Apply(p))
		assert.Equal(t, p, set.Apply(" "+p+" "))
	}

	normalized := []string{
		"I m * so * happy emoji_expression call phone_number",
		"phone_number Hlp phone_number Ms money_expression",
		"age_required + only",
		"mail me at email_address now",
		"url_address code_expression money_expression",
	}
	for _, s := range normalized {
		assert.Equal(t, s, set.Apply(s))
	}
}

func TestRuleOrderMoneyBeforePhone(t *testing.T) {
	set := Default()
	require.Equal(t, domain.PlaceholderMoney, set.Apply("£12345"))

	list := set.Rules()
	money, phone := -1, -1
	for i, r := range list {
		switch r.Name {
		case NameMoney:
			money = i
		case NamePhone:
			phone = i
		}
	}
	require.Less(t, money, phone)

	list[money], list[phone] = list[phone], list[money]
	for i := range list {
		list[i].Order = i + 1
	}
	swapped, err := NewRuleSet(list...)
	require.NoError(t, err)

	assert.Equal(t, "£ phone_number", swapped.Apply("£12345"))
}

func TestDefaultOrder(t *testing.T) {
	want := []string{
		NameQuoteStrip, NameErrorSymbolStrip, NameEmail, NameURL, NameMoney, NameCode, NamePhone,
		NameEmoticon, NameAgeMarker, NameSpacingAsterisk, NameSpacingAmpersand, NameSpacingPlus,
		NameSpacingHyphen, NameSpacingHash, NameWhitespaceCollapse, NameTrim,
	}
	list := Default().Rules()
	require.Len(t, list, len(want))
	for i, r := range list {
		assert.Equal(t, want[i], r.Name)
		assert.Equal(t, i+1, r.Order)
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	set := Default()
	list := set.Rules()
	list[0].Replacement = "changed"
	assert.Equal(t, "a b", set.Apply("a'b"))
}

func TestNewRuleSetValidation(t *testing.T) {
	re := regexp.MustCompile("a")

	_, err := NewRuleSet(Rule{Name: "a", Order: 2, Pattern: re}, Rule{Name: "b", Order: 1, Pattern: re})
	assert.ErrorIs(t, err, domain.ErrRuleOrder)

	_, err = NewRuleSet(Rule{Name: "a", Order: 1, Pattern: re}, Rule{Name: "a", Order: 2, Pattern: re})
	assert.ErrorIs(t, err, domain.ErrRuleOrder)

	_, err = NewRuleSet(Rule{Name: "a", Order: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)

	_, err = NewRuleSet(Rule{Order: 1, Pattern: re})
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)

	set, err := NewRuleSet()
	require.NoError(t, err)
	assert.Equal(t, "unchanged", set.Apply("unchanged"))
}

func TestGuardsNeverHideMatches(t *testing.T) {
	inputs := []string{
		"", "plain", "I'm *so* happy :) call 0800 169 6031", "x&lt;#&gt;y", "18+ only",
		"www.txt82228.com.", "£33:50", "code 3100", "a b",
	}
	for _, rule := range SampleRules() {
		inputs = append(inputs, Samples(rule)...)
	}

	for _, r := range Default().Rules() {
		for _, in := range inputs {
			if !r.MayMatch(in) {
				assert.False(t, r.Pattern.MatchString(in), "rule %s guard hides a match in %q", r.Name, in)
			}
		}
	}
}

func TestTrace(t *testing.T) {
	steps := Default().Trace("£1.50pm")
	require.Len(t, steps, 2)
	assert.Equal(t, NameMoney, steps[0].Rule)
	assert.Equal(t, "£1.50pm", steps[0].Before)
	assert.Equal(t, " money_expression ", steps[0].After)
	assert.Equal(t, NameTrim, steps[1].Rule)
	assert.Equal(t, "money_expression", steps[1].After)

	assert.Empty(t, Default().Trace("nothing to do"))
}

func TestTry(t *testing.T) {
	results, err := Try(`\d{5}`, []string{"84025", "hello"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "OK", results[0].Output)
	assert.True(t, results[0].Matched)
	assert.Equal(t, "84025 --> OK", results[0].String())
	assert.Equal(t, "hello", results[1].Output)
	assert.False(t, results[1].Matched)

	_, err = Try(`(`, []string{"x"})
	assert.ErrorIs(t, err, domain.ErrInvalidPattern)
}

func TestTryRule(t *testing.T) {
	set := Default()

	results, err := set.TryRule(NameEmoticon, []string{"hi :)", "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi OK", results[0].Output)
	assert.Equal(t, "hi", results[1].Output)

	_, err = set.TryRule("nope", nil)
	assert.ErrorIs(t, err, domain.ErrUnknownRule)
}

func TestSamplesCopy(t *testing.T) {
	words := Samples(NameEmoticon)
	words[0] = "changed"
	assert.Equal(t, ":-D", Samples(NameEmoticon)[0])
	assert.Nil(t, Samples("unknown"))
	assert.Contains(t, SampleRules(), NameMoney)
}

func FuzzApply(f *testing.F) {
	f.Add("I'm *so* happy :) call 0800 169 6031")
	f.Add("  \t\v\u0085   ")
	f.Add("£1.50pm www.getzed.co.uk yijue@hotmail.com")
	f.Add("\xff\xfe 18+ &lt;3")

	set := Default()
	f.Fuzz(func(t *testing.T, input string) {
		out := set.Apply(input)
		if out != set.Apply(input) {
			t.Fatalf("non-deterministic output for %q", input)
		}
		if strings.Contains(out, "  ") {
			t.Fatalf("double space in %q", out)
		}
		if out == "" {
			return
		}
		first, _ := utf8.DecodeRuneInString(out)
		last, _ := utf8.DecodeLastRuneInString(out)
		if unicode.IsSpace(first) || unicode.IsSpace(last) {
			t.Fatalf("untrimmed output %q", out)
		}
	})
}
