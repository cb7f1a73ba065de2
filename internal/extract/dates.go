package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

// dateToken matches 22-FEB-25, 22/02/2025, 22 FEB 2025 and similar.
const dateToken = `(\d{1,2})[\s/\-.]+(\p{L}{3,4}\.?|\d{1,2})[\s/\-.]+(\d{4}|\d{2})\b`

var reShortDate = regexp.MustCompile(dateToken)

// AssembleDate builds YYYY-MM-DD from a day, a numeric or named month and a
// two- or four-digit year. Two-digit years are in the 2000s. Returns "" when
// the parts do not form a real date.
func AssembleDate(day, month, year string) string {
	month = strings.TrimSuffix(strings.TrimSpace(month), ".")
	if _, err := strconv.Atoi(month); err != nil {
		n := normalize.MonthNumber(month)
		if n == 0 {
			return ""
		}
		month = strconv.Itoa(n)
	}
	out, ok := normalize.BuildDate(year, month, day)
	if !ok {
		return ""
	}
	return out
}

// ParseShortDate returns the first date found in s, or "".
func ParseShortDate(s string) string {
	for _, m := range reShortDate.FindAllStringSubmatch(s, -1) {
		if d := AssembleDate(m[1], m[2], m[3]); d != "" {
			return d
		}
	}
	return ""
}

// LabeledDate compiles a pattern for a date preceded by one of labels. Labels
// are regular expressions and are matched case-insensitively.
func LabeledDate(labels ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + strings.Join(labels, "|") + `)\s*[:.]?\s*` + dateToken)
}

// MatchDate returns the first labeled date across patterns built by LabeledDate.
func MatchDate(text string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if d := AssembleDate(m[1], m[2], m[3]); d != "" {
				return d
			}
		}
	}
	return ""
}
