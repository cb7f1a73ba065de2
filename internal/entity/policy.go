package entity

// PersonaType distinguishes natural persons from legal entities.
type PersonaType string

const (
	PersonaPhysical PersonaType = "physical"
	PersonaMoral    PersonaType = "moral"
)

// PolicyRecord is the canonical shape every extraction path produces.
// All scalar fields are strings and default to "".
type PolicyRecord struct {
	PersonaType     PersonaType `json:"persona_type"`
	GivenName       string      `json:"given_name"`
	PaternalSurname string      `json:"paternal_surname"`
	MaternalSurname string      `json:"maternal_surname"`
	LegalName       string      `json:"legal_name"`
	TaxID           string      `json:"tax_id"`
	NationalID      string      `json:"national_id"`
	Email           string      `json:"email"`
	MobilePhone     string      `json:"mobile_phone"`
	Street          string      `json:"street"`
	Locality        string      `json:"locality"`
	Region          string      `json:"region"`
	PostalCode      string      `json:"postal_code"`

	Issuer       string `json:"issuer"`
	Product      string `json:"product"`
	PolicyNumber string `json:"policy_number"`
	Endorsement  string `json:"endorsement"`
	Plan         string `json:"plan"`
	AgentCode    string `json:"agent_code"`
	AgentName    string `json:"agent_name"`

	IssueDate      string `json:"issue_date"`      // YYYY-MM-DD
	EffectiveStart string `json:"effective_start"` // YYYY-MM-DD
	EffectiveEnd   string `json:"effective_end"`   // YYYY-MM-DD

	NetPremium                  string `json:"net_premium"`
	InstallmentSurcharge        string `json:"installment_surcharge"`
	IssuanceFee                 string `json:"issuance_fee"`
	Tax                         string `json:"tax"`
	Subtotal                    string `json:"subtotal"`
	Total                       string `json:"total"`
	PaymentType                 string `json:"payment_type"` // single | installment
	InstallmentFrequency        string `json:"installment_frequency"`
	FirstInstallmentAmount      string `json:"first_installment_amount"`
	SubsequentInstallmentAmount string `json:"subsequent_installment_amount"`
	GracePeriodDays             string `json:"grace_period_days"`

	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         string `json:"year"`
	SerialNumber string `json:"serial_number"`
	Plates       string `json:"plates"`
	Color        string `json:"color"`
	UsageClass   string `json:"usage_class"`

	Coverages []Coverage `json:"coverages"`
}

// Coverage is one row of the coverage table. InsuredAmount is either a
// money string, the literal AMPARADA, or a descriptive basis such as VALOR COMERCIAL.
type Coverage struct {
	Name          string `json:"name"`
	InsuredAmount string `json:"insured_amount"`
	Deductible    string `json:"deductible"`
	Premium       string `json:"premium"`
}

// HolderName returns the display name of the policy holder for either persona.
func (r PolicyRecord) HolderName() string {
	if r.LegalName != "" {
		return r.LegalName
	}
	name := r.GivenName
	for _, part := range []string{r.PaternalSurname, r.MaternalSurname} {
		if part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += part
	}
	return name
}
