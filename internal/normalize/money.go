package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	reCurrencyWords = regexp.MustCompile(`(?i)M\.\s?N\.?|\b(?:MXN|MXP|USD|PESOS?|DLLS?)\b`)
	reNonMoney      = regexp.MustCompile(`[^0-9.\-]`)
	reMoneyShaped   = regexp.MustCompile(`^[\s$]*-?(?:[\d,]+(?:\.\d+)?|\.\d+)\s*$`)
	rePercentShaped = regexp.MustCompile(`\d(?:[.,]\d+)?\s*%`)
)

// Money returns a fixed two-decimal amount with no symbols or thousands
// separators, or "" when s holds no readable number.
func Money(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = reCurrencyWords.ReplaceAllString(s, "")
	s = reNonMoney.ReplaceAllString(s, "")
	s = strings.TrimRight(s, ".")
	// a lone leading point is a decimal point (".50"); with more points it is label punctuation
	digits := strings.TrimPrefix(s, "-")
	if strings.HasPrefix(digits, ".") {
		if strings.Count(digits, ".") == 1 {
			s = strings.TrimSuffix(s, digits) + "0" + digits
		} else {
			s = strings.TrimSuffix(s, digits) + strings.TrimLeft(digits, ".")
		}
	}
	if s == "" || s == "-" {
		return ""
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ""
	}
	return d.StringFixed(2)
}

// Deductible keeps percentage values as written and treats anything else as money.
func Deductible(s string) string {
	t := strings.TrimSpace(s)
	if rePercentShaped.MatchString(t) {
		return t
	}
	return Money(t)
}

// InsuredAmount folds the AMPARADA spellings, formats plain amounts and
// upper-cases descriptive bases such as VALOR COMERCIAL.
func InsuredAmount(s string) string {
	t := strings.Join(strings.Fields(s), " ")
	if t == "" {
		return ""
	}
	if strings.HasPrefix(Fold(t), "AMPARAD") {
		return Amparada
	}
	if reMoneyShaped.MatchString(reCurrencyWords.ReplaceAllString(t, "")) {
		return Money(t)
	}
	return strings.ToUpper(t)
}

// Amparada marks a coverage that is included without a stated sum.
const Amparada = "AMPARADA"
