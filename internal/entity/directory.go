package entity

import "strings"

// ClientRef is a directory client as seen by reconciliation.
type ClientRef struct {
	ID              string `json:"id"`
	PersonaType     string `json:"persona_type"`
	GivenName       string `json:"given_name"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname"`
	LegalName       string `json:"legal_name"`
	TaxID           string `json:"tax_id"`
	NationalID      string `json:"national_id"`
}

// TeamMember is a roster entry in the agent directory.
type TeamMember struct {
	ID              string `json:"id"`
	Role            string `json:"role"`
	Active          bool   `json:"active"`
	ShortName       string `json:"short_name"`
	GivenName       string `json:"given_name"`
	PaternalSurname string `json:"paternal_surname"`
	MaternalSurname string `json:"maternal_surname"`
}

// FullName joins the name parts that are present.
func (m TeamMember) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{m.GivenName, m.PaternalSurname, m.MaternalSurname} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// RoleAgent is the roster role eligible for agent matching.
const RoleAgent = "agent"

// AgentRef is the matched roster entry.
type AgentRef struct {
	ID        string `json:"id"`
	ShortName string `json:"short_name"`
	FullName  string `json:"full_name"`
}
