package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reISODate     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reNumericDate = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})$`)
	reMonthDate   = regexp.MustCompile(`^(\d{1,2})[\s/\-.]+([\p{L}]{3,10})\.?[\s/\-.]+(\d{4}|\d{2})$`)
	reVerbalDate  = regexp.MustCompile(`(?i)^(\d{1,2})\s+(?:de|of)\s+([\p{L}]+)\s+(?:de|del|of)\s+(\d{4})$`)
)

var monthNames = map[string]int{
	"ENERO": 1, "FEBRERO": 2, "MARZO": 3, "ABRIL": 4, "MAYO": 5, "JUNIO": 6, "JULIO": 7,
	"AGOSTO": 8, "SEPTIEMBRE": 9, "SETIEMBRE": 9, "OCTUBRE": 10, "NOVIEMBRE": 11, "DICIEMBRE": 12,
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4, "MAY": 5, "JUNE": 6, "JULY": 7,
	"AUGUST": 8, "SEPTEMBER": 9, "OCTOBER": 10, "NOVEMBER": 11, "DECEMBER": 12,
}

var monthAbbrev = map[string]int{
	"ENE": 1, "JAN": 1, "FEB": 2, "MAR": 3, "ABR": 4, "APR": 4, "MAY": 5, "JUN": 6, "JUL": 7,
	"AGO": 8, "AUG": 8, "SEP": 9, "SET": 9, "OCT": 10, "NOV": 11, "DIC": 12, "DEC": 12,
}

// MonthNumber resolves a Spanish or English month name or abbreviation; 0 when unknown.
func MonthNumber(tok string) int {
	t := strings.Trim(Fold(strings.TrimSpace(tok)), ".")
	if n, ok := monthNames[t]; ok {
		return n
	}
	if t == "SEPT" {
		return 9
	}
	if len(t) == 3 {
		return monthAbbrev[t]
	}
	return 0
}

// IsISODate reports whether s is shaped YYYY-MM-DD.
func IsISODate(s string) bool {
	return reISODate.MatchString(s)
}

// Date converts DD/MM/YYYY, DD-MON-YY(YY) and verbal "D de MES de YYYY" forms
// to YYYY-MM-DD. Input is trimmed; ISO or unreadable input is otherwise returned unchanged.
func Date(s string) string {
	t := strings.TrimSpace(s)
	if t == "" || IsISODate(t) {
		return t
	}
	if m := reNumericDate.FindStringSubmatch(t); m != nil {
		if out, ok := BuildDate(m[3], m[2], m[1]); ok {
			return out
		}
		return t
	}
	if m := reVerbalDate.FindStringSubmatch(t); m != nil {
		if out, ok := BuildDate(m[3], strconv.Itoa(MonthNumber(m[2])), m[1]); ok {
			return out
		}
		return t
	}
	if m := reMonthDate.FindStringSubmatch(t); m != nil {
		if out, ok := BuildDate(m[3], strconv.Itoa(MonthNumber(m[2])), m[1]); ok {
			return out
		}
	}
	return t
}

// BuildDate assembles an ISO date from numeric parts. Two-digit years are
// read as 20YY. It rejects impossible dates such as 31/02.
func BuildDate(year, month, day string) (string, bool) {
	y, err1 := strconv.Atoi(strings.TrimSpace(year))
	mo, err2 := strconv.Atoi(strings.TrimSpace(month))
	d, err3 := strconv.Atoi(strings.TrimSpace(day))
	if err1 != nil || err2 != nil || err3 != nil {
		return "", false
	}
	if len(strings.TrimSpace(year)) == 2 {
		y += 2000
	}
	if mo < 1 || mo > 12 || d < 1 || d > 31 || y < 1900 || y > 2199 {
		return "", false
	}
	tm := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if tm.Day() != d {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, mo, d), true
}
