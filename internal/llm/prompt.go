package llm

import (
	"encoding/json"
	"strings"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
)

// SystemPrompt is sent with every fallback extraction, in both modes.
const SystemPrompt = "You extract data from Mexican insurance policy documents. " +
	"Return ONLY a JSON object matching the provided JSON Schema, with no prose and no markdown. " +
	"Omit fields that are not present; never output null. " +
	"Dates must be YYYY-MM-DD. Money amounts are plain decimals without currency symbols or thousands separators. " +
	"persona_type is 'physical' for individuals (13-character RFC) and 'moral' for companies (12-character RFC). " +
	"For individuals fill given_name, paternal_surname and maternal_surname; for companies fill legal_name. " +
	"payment_type is 'single' for annual or one-time payment, otherwise 'installment' with installment_frequency " +
	"(monthly, bimonthly, quarterly, four-monthly, semiannual). " +
	"List every coverage row under 'coverages'; use AMPARADA as insured_amount when the document says so. " +
	"Keep deductibles expressed as percentages as they appear (e.g. '5%')."

// SchemaInstruction renders the schema as an extra instruction block for
// providers without native structured output.
func SchemaInstruction(schema map[string]any) string {
	b, _ := json.MarshalIndent(schema, "", "  ")
	return "JSON Schema:\n" + string(b)
}

// BuildTextPrompt packages the classification hint and the first maxChars
// characters of the document text.
func BuildTextPrompt(text string, cls entity.ClassificationResult, maxChars int) string {
	var b strings.Builder
	writeHints(&b, cls)
	b.WriteString("\nPolicy document text:\n")
	b.WriteString(Truncate(text, maxChars))
	return b.String()
}

// BuildImagePrompt is the user message that accompanies a page image.
func BuildImagePrompt(cls entity.ClassificationResult) string {
	var b strings.Builder
	writeHints(&b, cls)
	b.WriteString("\nThe attached image is the first page of the policy. Read it and extract the fields.")
	return b.String()
}

func writeHints(b *strings.Builder, cls entity.ClassificationResult) {
	if cls.Issuer != "" && cls.Issuer != constants.IssuerUnknown {
		b.WriteString("Issuer hint: ")
		b.WriteString(string(cls.Issuer))
		b.WriteString("\n")
	}
	if cls.Product != "" && cls.Product != constants.ProductUnknown {
		b.WriteString("Product hint: ")
		b.WriteString(string(cls.Product))
		b.WriteString("\n")
	}
}

// Truncate keeps the first n characters (runes) of s. n <= 0 means no limit.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
