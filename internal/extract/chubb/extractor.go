// Package chubb parses Chubb Seguros commercial property and liability
// policies. Amounts carry an MXN prefix and the insured is usually a company.
package chubb

import (
	"regexp"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

const money = `((?:MXN|USD)?\s?[\d,]+\.\d{2})`

var (
	rePolicy     = regexp.MustCompile(`(?i)N[uú]mero de p[oó]liza\s*:?\s*([A-Z\d-]{6,})`)
	reEndorse    = regexp.MustCompile(`(?i)Endoso\s*:?\s*(\d+)`)
	reHolder     = regexp.MustCompile(`(?im)^\s*(?:Contratante|Asegurado)\s*:\s*(.+?)\s*$`)
	reTaxID      = regexp.MustCompile(`(?i)RFC\s*:\s*([A-ZÑ&]{3,4}\d{6}[A-Z\d]{3})`)
	reEmail      = regexp.MustCompile(`(?i)Correo\s*:\s*(\S+@\S+)`)
	reStreet     = regexp.MustCompile(`(?im)^\s*Ubicaci[oó]n del riesgo\s*:\s*(.+?)\s*$`)
	reLocality   = regexp.MustCompile(`(?im)^\s*Colonia\s*:\s*(.+?)(?:\s{2,}|$)`)
	rePostal     = regexp.MustCompile(`(?i)C\.P\.\s*:?\s*(\d{5})`)
	reRegion     = regexp.MustCompile(`(?im)Entidad\s*:\s*(.+?)(?:\s{2,}|$)`)
	rePlan       = regexp.MustCompile(`(?im)^\s*Producto\s*:\s*(.+?)\s*$`)
	reVigencia   = regexp.MustCompile(`(?i)Vigencia\s*:?\s*Del\s+(\S+)\s+al\s+(\S+)`)
	reIssued     = regexp.MustCompile(`(?i)Fecha de emisi[oó]n\s*:?\s*(\S+)`)
	reNetPremium = regexp.MustCompile(`(?i)Prima Neta\s*:?\s*` + money)
	reFee        = regexp.MustCompile(`(?i)Gastos de Expedici[oó]n\s*:?\s*` + money)
	reSurcharge  = regexp.MustCompile(`(?i)Recargo por Pago Fraccionado\s*:?\s*` + money)
	reTax        = regexp.MustCompile(`(?i)\bIVA\s*:?\s*` + money)
	reTotal      = regexp.MustCompile(`(?i)Prima Total\s*:?\s*` + money)
	rePayment    = regexp.MustCompile(`(?i)Periodicidad de pago\s*:?\s*(\p{L}+)`)
	reAgentCode  = regexp.MustCompile(`(?i)Intermediario\s*:\s*(\d+)`)
	reAgentName  = regexp.MustCompile(`(?im)Intermediario\s*:\s*\d+\s*-\s*(.+?)\s*$`)

	layout = extract.CoverageLayout{
		Start: regexp.MustCompile(`(?im)^\s*Secci[oó]n / Cobertura.*$`),
		End:   regexp.MustCompile(`(?i)Prima Neta`),
		Lines: []*regexp.Regexp{
			// Incendio Edificio   MXN 5,000,000.00   2% S.V.   MXN 9,000.00
			regexp.MustCompile(`(?i)^\s*(?P<name>\p{L}[\p{L} ,./-]*?)\s{2,}MXN\s?(?P<insured>[\d,]+\.\d{2})\s{2,}(?P<deductible>\S.*?)\s{2,}MXN\s?(?P<premium>[\d,]+\.\d{2})\s*$`),
			// Remoción de Escombros   AMPARADA   MXN 350.00
			regexp.MustCompile(`(?i)^\s*(?P<name>\p{L}[\p{L} ,./-]*?)\s{2,}(?P<insured>AMPARAD[AO])\s{2,}MXN\s?(?P<premium>[\d,]+\.\d{2})\s*$`),
		},
	}
)

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Issuer() constants.Issuer { return constants.IssuerChubb }

func (e *Extractor) Extract(doc entity.DocumentText) entity.PolicyRecord {
	rec := entity.PolicyRecord{Issuer: string(constants.IssuerChubb)}
	text := doc.FullText

	fields := []extract.Field{
		{Dst: &rec.PolicyNumber, Patterns: []*regexp.Regexp{rePolicy}},
		{Dst: &rec.Endorsement, Patterns: []*regexp.Regexp{reEndorse}},
		{Dst: &rec.TaxID, Patterns: []*regexp.Regexp{reTaxID}},
		{Dst: &rec.Email, Patterns: []*regexp.Regexp{reEmail}},
		{Dst: &rec.PostalCode, Patterns: []*regexp.Regexp{rePostal}},
		{Dst: &rec.Region, Patterns: []*regexp.Regexp{reRegion}},
		{Dst: &rec.Plan, Patterns: []*regexp.Regexp{rePlan}},
		{Dst: &rec.NetPremium, Patterns: []*regexp.Regexp{reNetPremium}},
		{Dst: &rec.IssuanceFee, Patterns: []*regexp.Regexp{reFee}},
		{Dst: &rec.InstallmentSurcharge, Patterns: []*regexp.Regexp{reSurcharge}},
		{Dst: &rec.Tax, Patterns: []*regexp.Regexp{reTax}},
		{Dst: &rec.Total, Patterns: []*regexp.Regexp{reTotal}},
		{Dst: &rec.AgentCode, Patterns: []*regexp.Regexp{reAgentCode}},
	}
	extract.Fill(doc.Page1, fields)
	extract.Fill(text, fields)

	extract.ApplyHolderName(&rec, extract.FirstMatch(text, reHolder), normalize.GivenFirst)
	rec.Street, rec.Locality = extract.ReattachLocalityArticle(
		extract.FirstMatch(text, reStreet), extract.FirstMatch(text, reLocality))

	if m := reVigencia.FindStringSubmatch(text); m != nil {
		rec.EffectiveStart = normalize.Date(m[1])
		rec.EffectiveEnd = normalize.Date(m[2])
	}
	rec.IssueDate = normalize.Date(extract.FirstMatch(text, reIssued))

	rec.AgentName = extract.FirstMatch(text, reAgentName)

	rec.PaymentType, rec.InstallmentFrequency = extract.DerivePaymentPlan(extract.FirstMatch(text, rePayment))
	rec.Coverages = extract.ParseCoverages(text, layout)
	return rec
}

