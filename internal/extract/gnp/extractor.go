// Package gnp parses Grupo Nacional Provincial auto policies. Labels and values
// are separated by column whitespace rather than colons.
package gnp

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

const money = `(\$?\s?[\d,]+\.\d{2})`

var (
	rePolicy      = regexp.MustCompile(`(?i)No\.?\s*de\s*P[oó]liza\s+(\d{6,})`)
	reVersion     = regexp.MustCompile(`(?i)Versi[oó]n\s+(\d+)`)
	reHolder      = regexp.MustCompile(`(?im)^\s*Contratante\s{2,}(.+?)\s*$`)
	reTaxID       = regexp.MustCompile(`(?im)^\s*R\.?F\.?C\.?\s{2,}([A-ZÑ&]{3,4}\d{6}[A-Z\d]{3})`)
	reNationalID  = regexp.MustCompile(`(?im)^\s*CURP\s{2,}([A-Z]{4}\d{6}[A-Z]{6}[A-Z\d]\d)`)
	reStreet      = regexp.MustCompile(`(?im)^\s*Domicilio\s{2,}(.+?)\s*$`)
	rePostal      = regexp.MustCompile(`(?i)C\.P\.\s*(\d{5})`)
	reEmail       = regexp.MustCompile(`(?i)Correo electr[oó]nico\s+(\S+@\S+)`)
	rePhone       = regexp.MustCompile(`(?i)Celular\s+([\d ()-]{8,})`)
	reVigencia    = regexp.MustCompile(`(?i)Vigencia\s+Del\s+(\d{1,2}/\d{1,2}/\d{4})\s+al\s+(\d{1,2}/\d{1,2}/\d{4})`)
	reIssued      = regexp.MustCompile(`(?i)Fecha de expedici[oó]n\s+(\d{1,2}/\d{1,2}/\d{4})`)
	reVehicle     = regexp.MustCompile(`(?im)^\s*Veh[ií]culo\s{2,}(\p{L}+)\s+(.+?)\s+(\d{4})(?:\s{2,}|$)`)
	reSerial      = regexp.MustCompile(`(?i)Serie\s+([A-Z\d]{11,17})`)
	rePlates      = regexp.MustCompile(`(?i)Placas\s+([A-Z\d-]{5,10})`)
	reUsage       = regexp.MustCompile(`(?im)^\s*Uso\s{2,}(\p{L}+)`)
	rePlan        = regexp.MustCompile(`(?im)^\s*Plan\s{2,}(.+?)\s*$`)
	reNetPremium  = regexp.MustCompile(`(?i)Prima Neta\s+` + money)
	reSurcharge   = regexp.MustCompile(`(?i)Recargo por pago fraccionado\s+` + money)
	reFee         = regexp.MustCompile(`(?i)Gastos de expedici[oó]n\s+` + money)
	reTax         = regexp.MustCompile(`(?i)\bIVA\s+` + money)
	reTotal       = regexp.MustCompile(`(?i)Importe Total\s+` + money)
	rePayment     = regexp.MustCompile(`(?i)Forma de pago\s+(\p{L}+)`)
	reFirstPay    = regexp.MustCompile(`(?i)Primer pago\s+` + money)
	reNextPay     = regexp.MustCompile(`(?i)Pagos subsecuentes\s+` + money)
	reGrace       = regexp.MustCompile(`(?i)Periodo de gracia\s+(\d+)`)
	reAgent       = regexp.MustCompile(`(?im)^\s*Agente\s+Clave\s+(\d+)\s+(.+?)\s*$`)

	layout = extract.CoverageLayout{
		Start: regexp.MustCompile(`(?im)^\s*Coberturas\s{2,}Suma Asegurada.*$`),
		End:   regexp.MustCompile(`(?i)Prima Neta`),
	}
)

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Issuer() constants.Issuer { return constants.IssuerGNP }

func (e *Extractor) Extract(doc entity.DocumentText) entity.PolicyRecord {
	rec := entity.PolicyRecord{Issuer: string(constants.IssuerGNP)}
	text := doc.FullText

	extract.Fill(text, []extract.Field{
		{Dst: &rec.PolicyNumber, Patterns: []*regexp.Regexp{rePolicy}},
		{Dst: &rec.Endorsement, Patterns: []*regexp.Regexp{reVersion}},
		{Dst: &rec.TaxID, Patterns: []*regexp.Regexp{reTaxID}},
		{Dst: &rec.NationalID, Patterns: []*regexp.Regexp{reNationalID}},
		{Dst: &rec.PostalCode, Patterns: []*regexp.Regexp{rePostal}},
		{Dst: &rec.Email, Patterns: []*regexp.Regexp{reEmail}},
		{Dst: &rec.MobilePhone, Patterns: []*regexp.Regexp{rePhone}},
		{Dst: &rec.SerialNumber, Patterns: []*regexp.Regexp{reSerial}},
		{Dst: &rec.Plates, Patterns: []*regexp.Regexp{rePlates}},
		{Dst: &rec.UsageClass, Patterns: []*regexp.Regexp{reUsage}},
		{Dst: &rec.Plan, Patterns: []*regexp.Regexp{rePlan}},
		{Dst: &rec.NetPremium, Patterns: []*regexp.Regexp{reNetPremium}},
		{Dst: &rec.InstallmentSurcharge, Patterns: []*regexp.Regexp{reSurcharge}},
		{Dst: &rec.IssuanceFee, Patterns: []*regexp.Regexp{reFee}},
		{Dst: &rec.Tax, Patterns: []*regexp.Regexp{reTax}},
		{Dst: &rec.Total, Patterns: []*regexp.Regexp{reTotal}},
		{Dst: &rec.FirstInstallmentAmount, Patterns: []*regexp.Regexp{reFirstPay}},
		{Dst: &rec.SubsequentInstallmentAmount, Patterns: []*regexp.Regexp{reNextPay}},
		{Dst: &rec.GracePeriodDays, Patterns: []*regexp.Regexp{reGrace}},
	})

	extract.ApplyHolderName(&rec, extract.FirstMatch(text, reHolder), normalize.GivenFirst)
	applyAddress(&rec, text)

	if m := reVigencia.FindStringSubmatch(text); m != nil {
		rec.EffectiveStart = normalize.Date(m[1])
		rec.EffectiveEnd = normalize.Date(m[2])
	}
	rec.IssueDate = normalize.Date(extract.FirstMatch(text, reIssued))

	if m := reVehicle.FindStringSubmatch(text); m != nil {
		rec.Make, rec.Model, rec.Year = m[1], extract.Clean(m[2]), m[3]
	}

	rec.PaymentType, rec.InstallmentFrequency = extract.DerivePaymentPlan(extract.FirstMatch(text, rePayment))

	if m := reAgent.FindStringSubmatch(text); m != nil {
		rec.AgentCode = m[1]
		rec.AgentName = extract.Clean(m[2])
	}

	rec.Coverages = extract.ParseCoverages(text, layout)
	return rec
}

// applyAddress reads "Domicilio  STREET" and its continuation line
// "LOCALITY, CITY, REGION C.P. 00000".
func applyAddress(rec *entity.PolicyRecord, text string) {
	street := extract.FirstMatch(text, reStreet)
	if street == "" {
		return
	}
	cont := rePostal.ReplaceAllString(extract.LineAfter(text, reStreet), "")
	parts := strings.Split(cont, ",")
	for i := range parts {
		parts[i] = extract.Clean(parts[i])
	}
	var locality string
	if len(parts) > 0 {
		locality = parts[0]
	}
	if len(parts) > 1 {
		rec.Region = parts[len(parts)-1]
	}
	rec.Street, rec.Locality = extract.ReattachLocalityArticle(street, locality)
}
