package rules

import "sort"

// Hand-collected samples used to tune the entity rules.
var samples = map[string][]string{
	NameURL: {
		"www.areyouunique.co.uk", "Si.como", "www.getzed.co.uk", "www.07781482378.com",
		"www.smsco.net", "www.100percent-real.com", "lucozade.co.uk/wrc", "sextextuk.com",
		"www.txt82228.com.", "fullonsms.com", "WAY2SMS.COM",
	},
	NameEmail: {
		"Dorothy@kiefer.com", "yijue@hotmail.com", "tddnewsletter@emc1.co.uk", "info@vipclub4u",
		"customersqueries@netvision.uk.com", "info@vipclub4u.", "olowoyey@ usc.edu", "info@txt82228.co.uk",
	},
	NameMoney: {
		"20p/min", "£1000", "150p", "10p/min", "$700", "£100", "150P", "£1.50pm", "150ppm",
		"max£7. 50", "£1250", "$50", "150p", "£1.50perWKsub", "£2,000", "25p", "£5/month",
		"150p/Msg", "150p/meg.", "150p/day", "20,000 pounds", "10ppm", "£33:50",
	},
	NamePhone: {
		"82242 Hlp 08712317606 Msg150p", "0871 - 4719 - 523", "02073162414", "0800 169 6031",
		"84025", "09061104283", "087018728737", "0871-872-9758", "07821230901",
	},
	NameEmoticon: {":-D", ";-)", ":-)", ":)", ";)", ":("},
	NameCode:     {"PoBox75LDNS7", "K52", "BOX95QU", "M221BP", "W111WX", "W1J6HL", "CR01327BT", "code 3100"},
}

// Samples returns the sample words collected for a rule, or nil if there are none.
func Samples(rule string) []string {
	words, ok := samples[rule]
	if !ok {
		return nil
	}
	out := make([]string, len(words))
	copy(out, words)
	return out
}

// SampleRules lists the rules that have samples.
func SampleRules() []string {
	names := make([]string, 0, len(samples))
	for name := range samples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
