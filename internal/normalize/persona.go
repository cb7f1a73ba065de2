package normalize

import (
	"strings"
	"unicode/utf8"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
)

const (
	moralTaxIDLen    = 12
	physicalTaxIDLen = 13
)

// TaxID upper-cases an RFC and removes spaces, hyphens and dots.
func TaxID(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", ".", "", "\t", "")
	return strings.ToUpper(r.Replace(strings.TrimSpace(s)))
}

// Persona enforces that the tax id length in characters decides the persona type. A 13
// character RFC makes the holder a natural person, a 12 character RFC a legal
// entity, and the name fields are rebuilt to match. Other lengths leave the
// extractor's guess in place.
func Persona(rec *entity.PolicyRecord) {
	switch utf8.RuneCountInString(TaxID(rec.TaxID)) {
	case physicalTaxIDLen:
		rec.PersonaType = entity.PersonaPhysical
		if rec.GivenName == "" && rec.PaternalSurname == "" && rec.LegalName != "" {
			rec.GivenName, rec.PaternalSurname, rec.MaternalSurname = SplitPersonName(rec.LegalName, GivenFirst)
		}
		rec.LegalName = ""
	case moralTaxIDLen:
		rec.PersonaType = entity.PersonaMoral
		if rec.LegalName == "" {
			rec.LegalName = strings.Join(strings.Fields(strings.Join(
				[]string{rec.GivenName, rec.PaternalSurname, rec.MaternalSurname}, " ")), " ")
		}
		rec.GivenName, rec.PaternalSurname, rec.MaternalSurname = "", "", ""
	default:
		if rec.PersonaType != "" {
			return
		}
		switch {
		case rec.GivenName != "":
			rec.PersonaType = entity.PersonaPhysical
		case rec.LegalName != "":
			rec.PersonaType = entity.PersonaMoral
		}
	}
}
