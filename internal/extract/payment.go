package extract

import (
	"strings"

	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

type planRule struct {
	tokens    []string
	frequency string
}

// Longer tokens precede the ones they contain: SEMIANNUAL before ANNUAL,
// CUATRIMESTRAL before TRIMESTRAL, BIMONTHLY before MONTHLY.
var planRules = []planRule{
	{[]string{"SEMESTRAL", "SEMIANNUAL", "SEMI-ANNUAL"}, "semiannual"},
	{[]string{"CUATRIMESTRAL"}, "four-monthly"},
	{[]string{"TRIMESTRAL", "QUARTERLY"}, "quarterly"},
	{[]string{"BIMESTRAL", "BIMONTHLY"}, "bimonthly"},
	{[]string{"MENSUAL", "MONTHLY"}, "monthly"},
}

var singlePaymentTokens = []string{"ANUAL", "ANNUAL", "CONTADO", "UNICO", "SINGLE"}

// DerivePaymentPlan maps a printed payment form to payment_type and
// installment_frequency. Annual and single-payment forms collapse into a
// single payment with no frequency.
func DerivePaymentPlan(token string) (paymentType, frequency string) {
	t := normalize.Fold(token)
	if t == "" {
		return "", ""
	}
	for _, r := range planRules {
		for _, tok := range r.tokens {
			if strings.Contains(t, tok) {
				return "installment", r.frequency
			}
		}
	}
	for _, tok := range singlePaymentTokens {
		if strings.Contains(t, tok) {
			return "single", ""
		}
	}
	return "", ""
}
