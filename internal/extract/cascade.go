package extract

import (
	"regexp"
	"strings"
)

// Field binds a destination to an ordered list of candidate patterns. The
// first capture group of the first matching pattern wins.
type Field struct {
	Dst      *string
	Patterns []*regexp.Regexp
}

// FirstMatch returns the first non-empty capture group 1 across patterns, in order.
func FirstMatch(text string, patterns ...*regexp.Regexp) string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if len(m) < 2 {
			continue
		}
		if v := Clean(m[1]); v != "" {
			return v
		}
	}
	return ""
}

// Fill runs each field cascade against text, leaving fields that already hold
// a value untouched. Calling it with page 1 and then the full text gives page 1
// precedence.
func Fill(text string, fields []Field) {
	for _, f := range fields {
		if *f.Dst != "" {
			continue
		}
		*f.Dst = FirstMatch(text, f.Patterns...)
	}
}

// Clean collapses whitespace and trims label punctuation left around a value.
func Clean(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " :;,|")
}

// LineAfter returns the line following the first line that matches re, or "".
func LineAfter(text string, re *regexp.Regexp) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if re.MatchString(l) && i+1 < len(lines) {
			return Clean(lines[i+1])
		}
	}
	return ""
}
