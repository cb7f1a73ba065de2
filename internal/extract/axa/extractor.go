// Package axa parses AXA Seguros auto policies, including the bilingual
// commercial-fleet layout whose coverage rows print the premium before the
// deductible.
package axa

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
	rePolicy      = regexp.MustCompile(`(?i)(?:P[oó]liza|Policy)\s*(?:No\.?)?\s*:\s*([A-Z]{0,3}-?\d[\d-]+)`)
	reEndorsement = regexp.MustCompile(`(?i)(?:Endoso|Endorsement)\s*:\s*(\d+)`)
	reHolder      = regexp.MustCompile(`(?im)^\s*(?:Asegurado|Insured)\s*:\s*(.+?)\s*$`)
	reTaxID       = regexp.MustCompile(`(?i)R\.?F\.?C\.?\s*:\s*([A-ZÑ&]{3,4}\d{6}[A-Z\d]{3})`)
	reAddress     = regexp.MustCompile(`(?im)^\s*(?:Direcci[oó]n|Address)\s*:\s*(.+?)\s*$`)
	reEmail       = regexp.MustCompile(`(?i)(?:E-?mail|Correo)\s*:\s*(\S+@\S+)`)
	rePhone       = regexp.MustCompile(`(?i)(?:Tel\.?|Tel[eé]fono|Phone)\s*:\s*([\d ()-]{8,})`)
	reVigencia    = regexp.MustCompile(`(?i)Vigencia\s*:\s*(.+?)\s+al\s+(.+?)\s*$`)
	reIssued      = regexp.MustCompile(`(?i)(?:Emisi[oó]n|Issued)\s*:\s*(\S+)`)
	reMake        = regexp.MustCompile(`(?im)Marca\s*:\s*(\p{L}[\p{L} -]*?)(?:\s{2,}|$)`)
	reModel       = regexp.MustCompile(`(?im)Submarca\s*:\s*(.+?)(?:\s{2,}|$)`)
	reYear        = regexp.MustCompile(`(?i)A[ñn]o\s*:\s*(\d{4})`)
	reSerial      = regexp.MustCompile(`(?i)No\.?\s*Serie\s*:\s*([A-Z\d]{11,17})`)
	rePlates      = regexp.MustCompile(`(?i)Placas\s*:\s*([A-Z\d-]{5,10})`)
	reColor       = regexp.MustCompile(`(?i)Color\s*:\s*(\p{L}+)`)
	reUsage       = regexp.MustCompile(`(?im)Uso\s*:\s*(\p{L}[\p{L} ]*?)(?:\s{2,}|$)`)
	rePlan        = regexp.MustCompile(`(?im)Plan\s*:\s*(.+?)(?:\s{2,}|$)`)
	reNetPremium  = regexp.MustCompile(`(?i)Prima Neta\s*:\s*` + money)
	reSurcharge   = regexp.MustCompile(`(?i)Recargo\s*:\s*` + money)
	reFee         = regexp.MustCompile(`(?i)Gastos de Expedici[oó]n\s*:\s*` + money)
	reTax         = regexp.MustCompile(`(?i)I\.?V\.?A\.?\s*:\s*` + money)
	reTotal       = regexp.MustCompile(`(?i)Prima Total\s*:\s*` + money)
	rePayment     = regexp.MustCompile(`(?i)(?:Forma de Pago|Payment)\s*:\s*(\p{L}[\p{L} -]*)`)
	reAgent       = regexp.MustCompile(`(?im)^\s*Agente\s*:\s*(.+?)\s*$`)
	reAgentCode   = regexp.MustCompile(`(?i)Clave de Agente\s*:\s*(\w+)`)

	layout = extract.CoverageLayout{
		Start: regexp.MustCompile(`(?im)^\s*(?:Coberturas|Coverages)\b.*$`),
		End:   regexp.MustCompile(`(?i)Prima Neta`),
	}
)

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Issuer() constants.Issuer { return constants.IssuerAXA }

func (e *Extractor) Extract(doc entity.DocumentText) entity.PolicyRecord {
	rec := entity.PolicyRecord{Issuer: string(constants.IssuerAXA)}
	text := doc.FullText

	fields := []extract.Field{
		{Dst: &rec.PolicyNumber, Patterns: []*regexp.Regexp{rePolicy}},
		{Dst: &rec.Endorsement, Patterns: []*regexp.Regexp{reEndorsement}},
		{Dst: &rec.TaxID, Patterns: []*regexp.Regexp{reTaxID}},
		{Dst: &rec.Email, Patterns: []*regexp.Regexp{reEmail}},
		{Dst: &rec.MobilePhone, Patterns: []*regexp.Regexp{rePhone}},
		{Dst: &rec.Make, Patterns: []*regexp.Regexp{reMake}},
		{Dst: &rec.Model, Patterns: []*regexp.Regexp{reModel}},
		{Dst: &rec.Year, Patterns: []*regexp.Regexp{reYear}},
		{Dst: &rec.SerialNumber, Patterns: []*regexp.Regexp{reSerial}},
		{Dst: &rec.Plates, Patterns: []*regexp.Regexp{rePlates}},
		{Dst: &rec.Color, Patterns: []*regexp.Regexp{reColor}},
		{Dst: &rec.UsageClass, Patterns: []*regexp.Regexp{reUsage}},
		{Dst: &rec.Plan, Patterns: []*regexp.Regexp{rePlan}},
		{Dst: &rec.NetPremium, Patterns: []*regexp.Regexp{reNetPremium}},
		{Dst: &rec.InstallmentSurcharge, Patterns: []*regexp.Regexp{reSurcharge}},
		{Dst: &rec.IssuanceFee, Patterns: []*regexp.Regexp{reFee}},
		{Dst: &rec.Tax, Patterns: []*regexp.Regexp{reTax}},
		{Dst: &rec.Total, Patterns: []*regexp.Regexp{reTotal}},
		{Dst: &rec.AgentCode, Patterns: []*regexp.Regexp{reAgentCode}},
	}
	extract.Fill(doc.Page1, fields)
	extract.Fill(text, fields)

	extract.ApplyHolderName(&rec, extract.FirstMatch(text, reHolder), normalize.GivenFirst)
	applyAddress(&rec, extract.FirstMatch(text, reAddress))

	for _, line := range strings.Split(text, "\n") {
		if m := reVigencia.FindStringSubmatch(line); m != nil {
			rec.EffectiveStart = policyDate(m[1])
			rec.EffectiveEnd = policyDate(m[2])
			break
		}
	}
	rec.IssueDate = policyDate(extract.FirstMatch(text, reIssued))

	rec.PaymentType, rec.InstallmentFrequency = extract.DerivePaymentPlan(extract.FirstMatch(text, rePayment))

	// "Agente: 7788 JUAN PEREZ" or a separate "Clave de Agente" line.
	if agent := extract.FirstMatch(text, reAgent); agent != "" {
		code, name, found := strings.Cut(agent, " ")
		if found && strings.IndexFunc(code, func(r rune) bool { return r < '0' || r > '9' }) < 0 {
			rec.AgentCode, rec.AgentName = code, extract.Clean(name)
		} else {
			rec.AgentName = agent
		}
	}

	rec.Coverages = extract.ParseCoverages(text, layout)
	return rec
}

// policyDate accepts both the verbal and the abbreviated date styles AXA prints.
func policyDate(s string) string {
	if d := normalize.Date(s); normalize.IsISODate(d) {
		return d
	}
	return extract.ParseShortDate(s)
}

// applyAddress splits "STREET, CITY, REGION, 00000".
func applyAddress(rec *entity.PolicyRecord, addr string) {
	if addr == "" {
		return
	}
	parts := strings.Split(addr, ",")
	for i := range parts {
		parts[i] = extract.Clean(parts[i])
	}
	if n := len(parts); n > 1 && isPostal(parts[n-1]) {
		rec.PostalCode = parts[n-1]
		parts = parts[:n-1]
	}
	rec.Street = parts[0]
	if len(parts) > 2 {
		rec.Locality = parts[1]
		rec.Region = parts[len(parts)-1]
	} else if len(parts) == 2 {
		rec.Region = parts[1]
	}
}

func isPostal(s string) bool {
	if len(s) != 5 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
