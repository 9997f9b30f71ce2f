package domain

import "strings"

// FilterState holds the display filters picked during the guided walkthrough.
// An empty field means "any". The filters are only forwarded to the display;
// they never constrain course resolution.
type FilterState struct {
	Period    string `json:"period"`
	Credits   string `json:"credits"`
	Programme string `json:"programme"`
}

func (f *FilterState) Reset() {
	*f = FilterState{}
}

func (f FilterState) IsZero() bool {
	return f == FilterState{}
}

// creditFilters lists the credit values offered by the course listing, in
// match order. 7.5 is checked first so "7.5" never reads as something else.
var creditFilters = []struct {
	needles []string
	value   string
}{
	{[]string{"7.5", "seven"}, "7.5"},
	{[]string{"6", "six"}, "6.0"},
	{[]string{"9", "nine"}, "9.0"},
	{[]string{"15", "fifteen"}, "15.0"},
	{[]string{"30", "thirty"}, "30.0"},
}

// ParseCreditFilter maps an answer like "seven and a half" or "6 credits" to
// one of the canonical credit filter values.
func ParseCreditFilter(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, cf := range creditFilters {
		for _, n := range cf.needles {
			if strings.Contains(lower, n) {
				return cf.value, true
			}
		}
	}
	return "", false
}
