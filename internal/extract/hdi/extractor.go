// Package hdi parses HDI Seguros auto policies.
package hdi

import (
	"regexp"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

const money = `(\$?\s?[\d,]+\.\d{2})`

var (
	rePolicy     = regexp.MustCompile(`(?im)^\s*P[oó]liza\s+(HDI-\d+|\d{8,})`)
	reHolder     = regexp.MustCompile(`(?im)^\s*Nombre del Asegurado\s+(.+?)\s*$`)
	reTaxID      = regexp.MustCompile(`(?im)^\s*RFC\s+([A-ZÑ&]{3,4}\d{6}[A-Z\d]{3})`)
	reStreet     = regexp.MustCompile(`(?im)^\s*Calle y n[uú]mero\s+(.+?)\s*$`)
	reLocality   = regexp.MustCompile(`(?im)^\s*Colonia\s+(.+?)(?:\s{2,}|$)`)
	rePostal     = regexp.MustCompile(`(?i)C[oó]digo Postal\s+(\d{5})`)
	reRegion     = regexp.MustCompile(`(?im)^\s*Estado\s+(.+?)\s*$`)
	reVigencia   = regexp.MustCompile(`(?i)Vigencia\s+desde\s+(\S+)\s+hasta\s+(\S+)`)
	reVehicle    = regexp.MustCompile(`(?im)^\s*Veh[ií]culo\s+(\p{L}+)\s+(.+?)\s+Modelo\s+(\d{4})`)
	reSerial     = regexp.MustCompile(`(?i)N[uú]mero de serie\s+([A-Z\d]{11,17})`)
	rePlates     = regexp.MustCompile(`(?i)Placas\s+([A-Z\d-]{5,10})`)
	reNetPremium = regexp.MustCompile(`(?i)Prima neta\s+` + money)
	reFee        = regexp.MustCompile(`(?i)Derecho de p[oó]liza\s+` + money)
	reSurcharge  = regexp.MustCompile(`(?i)Recargo financiero\s+` + money)
	reTax        = regexp.MustCompile(`(?i)I\.V\.A\.\s+(?:\d+%\s+)?` + money)
	reTotal      = regexp.MustCompile(`(?i)Prima total\s+` + money)
	rePayment    = regexp.MustCompile(`(?i)Forma de pago\s+(\p{L}+)`)
	reFirstPay   = regexp.MustCompile(`(?i)Primer recibo\s+` + money)
	reNextPay    = regexp.MustCompile(`(?i)Recibos subsecuentes\s+` + money)
	reGrace      = regexp.MustCompile(`(?i)Periodo de gracia\s+(\d+)`)
	reAgentCode  = regexp.MustCompile(`(?i)Clave agente\s+(\w+)`)
	reAgentName  = regexp.MustCompile(`(?im)^\s*Nombre agente\s+(.+?)\s*$`)

	reIssued = extract.LabeledDate(`Fecha de emisi[oó]n`)

	layout = extract.CoverageLayout{
		Start: regexp.MustCompile(`(?im)^\s*Cobertura\s*\|.*$`),
		End:   regexp.MustCompile(`(?i)Prima neta`),
		Lines: []*regexp.Regexp{
			// Daños Materiales | Valor Comercial | 5% | $3,456.00
			regexp.MustCompile(`^\s*(?P<name>[^|]+?)\s*\|\s*(?P<insured>[^|]*?)\s*\|\s*(?P<deductible>[^|]*?)\s*\|\s*(?P<premium>[^|]*?)\s*$`),
		},
	}
)

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Issuer() constants.Issuer { return constants.IssuerHDI }

func (e *Extractor) Extract(doc entity.DocumentText) entity.PolicyRecord {
	rec := entity.PolicyRecord{Issuer: string(constants.IssuerHDI)}
	text := doc.FullText

	extract.Fill(text, []extract.Field{
		{Dst: &rec.PolicyNumber, Patterns: []*regexp.Regexp{rePolicy}},
		{Dst: &rec.TaxID, Patterns: []*regexp.Regexp{reTaxID}},
		{Dst: &rec.PostalCode, Patterns: []*regexp.Regexp{rePostal}},
		{Dst: &rec.Region, Patterns: []*regexp.Regexp{reRegion}},
		{Dst: &rec.SerialNumber, Patterns: []*regexp.Regexp{reSerial}},
		{Dst: &rec.Plates, Patterns: []*regexp.Regexp{rePlates}},
		{Dst: &rec.NetPremium, Patterns: []*regexp.Regexp{reNetPremium}},
		{Dst: &rec.IssuanceFee, Patterns: []*regexp.Regexp{reFee}},
		{Dst: &rec.InstallmentSurcharge, Patterns: []*regexp.Regexp{reSurcharge}},
		{Dst: &rec.Tax, Patterns: []*regexp.Regexp{reTax}},
		{Dst: &rec.Total, Patterns: []*regexp.Regexp{reTotal}},
		{Dst: &rec.FirstInstallmentAmount, Patterns: []*regexp.Regexp{reFirstPay}},
		{Dst: &rec.SubsequentInstallmentAmount, Patterns: []*regexp.Regexp{reNextPay}},
		{Dst: &rec.GracePeriodDays, Patterns: []*regexp.Regexp{reGrace}},
		{Dst: &rec.AgentCode, Patterns: []*regexp.Regexp{reAgentCode}},
		{Dst: &rec.AgentName, Patterns: []*regexp.Regexp{reAgentName}},
	})

	extract.ApplyHolderName(&rec, extract.FirstMatch(text, reHolder), normalize.SurnamesFirst)
	rec.Street, rec.Locality = extract.ReattachLocalityArticle(
		extract.FirstMatch(text, reStreet), extract.FirstMatch(text, reLocality))

	if m := reVigencia.FindStringSubmatch(text); m != nil {
		rec.EffectiveStart = extract.ParseShortDate(m[1])
		rec.EffectiveEnd = extract.ParseShortDate(m[2])
	}
	rec.IssueDate = extract.MatchDate(text, reIssued)

	if m := reVehicle.FindStringSubmatch(text); m != nil {
		rec.Make, rec.Model, rec.Year = m[1], extract.Clean(m[2]), m[3]
	}

	rec.PaymentType, rec.InstallmentFrequency = extract.DerivePaymentPlan(extract.FirstMatch(text, rePayment))
	rec.Coverages = extract.ParseCoverages(text, layout)
	return rec
}
