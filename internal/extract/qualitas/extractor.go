// Package qualitas parses Quálitas auto policies. The carrier prints holder
// names surname first and dates as DD-MON-YY.
package qualitas

import (
	"regexp"
	"strings"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/extract"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

var (
	rePolicy      = regexp.MustCompile(`(?i)P[OÓ]LIZA\s*(?:No\.?)?\s*:\s*(\d[\d-]+)`)
	reEndorsement = regexp.MustCompile(`(?i)ENDOSO\s*:\s*(\d+)`)
	reHolder      = regexp.MustCompile(`(?im)^\s*(?:NOMBRE|ASEGURADO)\s*:\s*(.+?)\s*$`)
	reTaxID       = regexp.MustCompile(`(?i)R\.?\s?F\.?\s?C\.?\s*:\s*([A-ZÑ&]{3,4}[\s-]?\d{6}[\s-]?[A-Z\d]{3})`)
	reCURP        = regexp.MustCompile(`(?i)C\.?U\.?R\.?P\.?\s*:\s*([A-Z]{4}\d{6}[A-Z]{6}[A-Z\d]\d)`)
	reStreet      = regexp.MustCompile(`(?im)^\s*DOMICILIO\s*:\s*(.+?)\s*$`)
	rePostal      = regexp.MustCompile(`(?i)C\.P\.\s*:?\s*(\d{5})`)
	reRegion      = regexp.MustCompile(`(?im)ESTADO\s*:\s*(.+?)(?:\s{2,}|$)`)
	rePhone       = regexp.MustCompile(`(?i)TEL[EÉ]FONO\s*:\s*([\d ()-]{8,})`)
	reEmail       = regexp.MustCompile(`(?i)CORREO\s*:\s*(\S+@\S+)`)
	reDescription = regexp.MustCompile(`(?im)DESCRIPCI[OÓ]N\s*:\s*(.+?)(?:\s{2,}|$)`)
	reYear        = regexp.MustCompile(`(?i)MODELO\s*:\s*(\d{4})`)
	reSerial      = regexp.MustCompile(`(?i)SERIE\s*:\s*([A-Z\d]{11,17})`)
	rePlates      = regexp.MustCompile(`(?i)PLACAS\s*:\s*([A-Z\d-]{5,10})`)
	reColor       = regexp.MustCompile(`(?i)\bCOLOR\s*:\s*(\p{L}+)`)
	reUsage       = regexp.MustCompile(`(?i)\bUSO\s*:\s*(\p{L}+)`)
	rePlan        = regexp.MustCompile(`(?im)PAQUETE\s*:\s*(\p{L}[\p{L} ]*?)(?:\s{2,}|$)`)
	reNetPremium  = regexp.MustCompile(`(?i)PRIMA NETA\s*:\s*(\$?\s?[\d,]+\.\d{2})`)
	reSurcharge   = regexp.MustCompile(`(?i)RECARGO[\p{L} ]*:\s*(\$?\s?[\d,]+\.\d{2})`)
	reFee         = regexp.MustCompile(`(?i)DERECHOS? DE P[OÓ]LIZA\s*:\s*(\$?\s?[\d,]+\.\d{2})`)
	reTax         = regexp.MustCompile(`(?i)I\.?V\.?A\.?\s*:\s*(\$?\s?[\d,]+\.\d{2})`)
	reTotal       = regexp.MustCompile(`(?i)PRIMA TOTAL\s*:\s*(\$?\s?[\d,]+\.\d{2})`)
	rePayment     = regexp.MustCompile(`(?i)FORMA DE PAGO\s*:\s*(\p{L}[\p{L} ]*)`)
	reFirstPay    = regexp.MustCompile(`(?i)PRIMER RECIBO\s*:\s*(\$?\s?[\d,]+\.\d{2})`)
	reNextPay     = regexp.MustCompile(`(?i)SUBSECUENTES\s*:\s*(\$?\s?[\d,]+\.\d{2})`)
	reAgent       = regexp.MustCompile(`(?im)^\s*AGENTE\s*:\s*(\d+)\s+(.+?)\s*$`)

	reIssued = extract.LabeledDate(`FECHA DE EMISI[OÓ]N`)
	reFrom   = extract.LabeledDate(`DESDE`)
	reTo     = extract.LabeledDate(`HASTA`)

	layout = extract.CoverageLayout{
		Start: regexp.MustCompile(`(?im)^\s*COBERTURAS.*$`),
		End:   regexp.MustCompile(`(?i)PRIMA NETA`),
	}
)

type Extractor struct{}

func New() *Extractor { return &Extractor{} }

func (e *Extractor) Issuer() constants.Issuer { return constants.IssuerQualitas }

func (e *Extractor) Extract(doc entity.DocumentText) entity.PolicyRecord {
	rec := entity.PolicyRecord{Issuer: string(constants.IssuerQualitas)}
	fields := []extract.Field{
		{Dst: &rec.PolicyNumber, Patterns: []*regexp.Regexp{rePolicy}},
		{Dst: &rec.Endorsement, Patterns: []*regexp.Regexp{reEndorsement}},
		{Dst: &rec.TaxID, Patterns: []*regexp.Regexp{reTaxID}},
		{Dst: &rec.NationalID, Patterns: []*regexp.Regexp{reCURP}},
		{Dst: &rec.PostalCode, Patterns: []*regexp.Regexp{rePostal}},
		{Dst: &rec.Region, Patterns: []*regexp.Regexp{reRegion}},
		{Dst: &rec.MobilePhone, Patterns: []*regexp.Regexp{rePhone}},
		{Dst: &rec.Email, Patterns: []*regexp.Regexp{reEmail}},
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
		{Dst: &rec.FirstInstallmentAmount, Patterns: []*regexp.Regexp{reFirstPay}},
		{Dst: &rec.SubsequentInstallmentAmount, Patterns: []*regexp.Regexp{reNextPay}},
	}
	extract.Fill(doc.Page1, fields)
	extract.Fill(doc.FullText, fields)

	extract.ApplyHolderName(&rec, extract.FirstMatch(doc.FullText, reHolder), normalize.SurnamesFirst)

	// The locality wraps onto the line under DOMICILIO.
	street := extract.FirstMatch(doc.FullText, reStreet)
	locality := extract.LineAfter(doc.FullText, reStreet)
	if strings.Contains(locality, ":") {
		locality = ""
	}
	rec.Street, rec.Locality = extract.ReattachLocalityArticle(street, locality)

	rec.IssueDate = extract.MatchDate(doc.FullText, reIssued)
	rec.EffectiveStart = extract.MatchDate(doc.FullText, reFrom)
	rec.EffectiveEnd = extract.MatchDate(doc.FullText, reTo)

	if desc := extract.FirstMatch(doc.FullText, reDescription); desc != "" {
		parts := strings.SplitN(desc, " ", 2)
		rec.Make = parts[0]
		if len(parts) == 2 {
			rec.Model = parts[1]
		}
	}

	rec.PaymentType, rec.InstallmentFrequency = extract.DerivePaymentPlan(extract.FirstMatch(doc.FullText, rePayment))

	if m := reAgent.FindStringSubmatch(doc.FullText); m != nil {
		rec.AgentCode = m[1]
		rec.AgentName = extract.Clean(m[2])
	}

	rec.Coverages = extract.ParseCoverages(doc.FullText, layout)
	return rec
}
