package llm

import "github.com/joseph-ayodele/policy-intake/constants"

var policyStringFields = []string{
	"given_name", "paternal_surname", "maternal_surname", "legal_name", "tax_id", "national_id",
	"email", "mobile_phone", "street", "locality", "region", "postal_code",
	"issuer", "product", "policy_number", "endorsement", "plan", "agent_code", "agent_name",
	"issue_date", "effective_start", "effective_end",
	"net_premium", "installment_surcharge", "issuance_fee", "tax", "subtotal", "total",
	"installment_frequency", "first_installment_amount", "subsequent_installment_amount", "grace_period_days",
	"make", "model", "year", "serial_number", "plates", "color", "usage_class",
}

var coverageFields = []string{"name", "insured_amount", "deductible", "premium"}

// PolicyJSONSchema returns the JSON Schema the model output must satisfy. Every
// field is optional; unknown keys are rejected.
func PolicyJSONSchema() map[string]any {
	props := make(map[string]any, len(policyStringFields)+3)
	for _, k := range policyStringFields {
		props[k] = map[string]any{"type": "string"}
	}
	props["persona_type"] = map[string]any{"type": "string", "enum": []string{"", "physical", "moral"}}
	props["payment_type"] = map[string]any{"type": "string", "enum": []string{"", "single", "installment"}}
	props["product"] = map[string]any{"type": "string", "enum": append([]string{""}, constants.ProductsAsStringSlice()...)}

	covProps := make(map[string]any, len(coverageFields))
	for _, k := range coverageFields {
		covProps[k] = map[string]any{"type": "string"}
	}
	props["coverages"] = map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           covProps,
			"required":             []string{"name"},
		},
	}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
}
