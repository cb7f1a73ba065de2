package normalize

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
)

var (
	reNonDigit = regexp.MustCompile(`\D`)
	reYear     = regexp.MustCompile(`\b(19|20)\d{2}\b`)
)

// Record returns rec with every field in canonical form. It is the single exit
// point for all extraction paths and is idempotent.
func Record(rec entity.PolicyRecord) entity.PolicyRecord {
	for _, p := range textFields(&rec) {
		*p = strings.Join(strings.Fields(*p), " ")
	}

	rec.TaxID = TaxID(rec.TaxID)
	rec.NationalID = strings.ToUpper(strings.ReplaceAll(rec.NationalID, " ", ""))
	rec.Email = strings.ToLower(rec.Email)
	rec.MobilePhone = reNonDigit.ReplaceAllString(rec.MobilePhone, "")
	rec.PostalCode = reNonDigit.ReplaceAllString(rec.PostalCode, "")
	rec.GracePeriodDays = reNonDigit.ReplaceAllString(rec.GracePeriodDays, "")
	rec.Issuer = strings.ToUpper(rec.Issuer)
	if rec.Product != "" {
		if p, ok := constants.CanonicalizeProduct(rec.Product); ok {
			rec.Product = string(p)
		} else {
			rec.Product = strings.ToLower(rec.Product)
		}
	}
	rec.PaymentType = paymentType(rec.PaymentType)
	rec.InstallmentFrequency = strings.ToLower(rec.InstallmentFrequency)

	for _, p := range []*string{&rec.IssueDate, &rec.EffectiveStart, &rec.EffectiveEnd} {
		*p = Date(*p)
		if !IsISODate(*p) {
			*p = ""
		}
	}
	for _, p := range moneyFields(&rec) {
		*p = Money(*p)
	}

	if rec.Year != "" {
		rec.Year = reYear.FindString(rec.Year)
	}
	rec.Plates = strings.ToUpper(strings.ReplaceAll(rec.Plates, " ", ""))
	rec.SerialNumber = strings.ToUpper(strings.ReplaceAll(rec.SerialNumber, " ", ""))

	rec.Coverages = Coverages(rec.Coverages)
	Persona(&rec)
	return rec
}

// Coverages drops unnamed rows and normalizes the amounts of the rest. The
// result is never nil.
func Coverages(in []entity.Coverage) []entity.Coverage {
	out := make([]entity.Coverage, 0, len(in))
	for _, c := range in {
		name := strings.Join(strings.Fields(c.Name), " ")
		if name == "" {
			continue
		}
		out = append(out, entity.Coverage{
			Name:          strings.ToUpper(name),
			InsuredAmount: InsuredAmount(c.InsuredAmount),
			Deductible:    Deductible(c.Deductible),
			Premium:       Money(c.Premium),
		})
	}
	return out
}

func paymentType(s string) string {
	switch Fold(s) {
	case "":
		return ""
	case "SINGLE", "CONTADO", "UNICO", "PAGO UNICO", "ANUAL", "ANNUAL":
		return "single"
	case "INSTALLMENT", "INSTALLMENTS", "FRACCIONADO", "PARCIALIDADES":
		return "installment"
	default:
		return strings.ToLower(s)
	}
}

func textFields(r *entity.PolicyRecord) []*string {
	return []*string{
		&r.GivenName, &r.PaternalSurname, &r.MaternalSurname, &r.LegalName, &r.TaxID, &r.NationalID,
		&r.Email, &r.MobilePhone, &r.Street, &r.Locality, &r.Region, &r.PostalCode,
		&r.Issuer, &r.Product, &r.PolicyNumber, &r.Endorsement, &r.Plan, &r.AgentCode, &r.AgentName,
		&r.IssueDate, &r.EffectiveStart, &r.EffectiveEnd, &r.PaymentType, &r.InstallmentFrequency,
		&r.GracePeriodDays, &r.Make, &r.Model, &r.Year, &r.SerialNumber, &r.Plates, &r.Color, &r.UsageClass,
	}
}

func moneyFields(r *entity.PolicyRecord) []*string {
	return []*string{
		&r.NetPremium, &r.InstallmentSurcharge, &r.IssuanceFee, &r.Tax, &r.Subtotal, &r.Total,
		&r.FirstInstallmentAmount, &r.SubsequentInstallmentAmount,
	}
}
