package extract

import (
	"regexp"
	"unicode/utf8"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

var reLegalEntity = regexp.MustCompile(`(?i)\bS\.?\s?A\.?\s?(?:B\.?\s?)?DE\s?C\.?\s?V\.?|\bS\.?\s?DE\s?R\.?\s?L\.?|\bS\.?\s?A\.?\s?P\.?\s?I\.?\b|\bSAPI\b|\bA\.\s?C\.|\bS\.\s?C\.|\bSOCIEDAD\b|\bCOMPA[NÑ][IÍ]A\b|\bCORPORATIVO\b|\bGRUPO\b|\bINDUSTRIAS\b|\bTRANSPORTES\b|\bSERVICIOS\b|\bCOMERCIALIZADORA\b|\bCONSTRUCTORA\b|\bINMOBILIARIA\b|\bDISTRIBUIDORA\b|\bASOCIACI[OÓ]N\b`)

// LooksLikeLegalEntity reports whether name carries a company suffix or keyword.
func LooksLikeLegalEntity(name string) bool {
	return reLegalEntity.MatchString(name)
}

// ApplyHolderName fills the identity fields from a printed holder name. The
// tax id, when already set, decides the persona; otherwise company keywords do.
func ApplyHolderName(rec *entity.PolicyRecord, full string, order normalize.NameOrder) {
	full = Clean(full)
	if full == "" {
		return
	}
	moral := LooksLikeLegalEntity(full)
	switch utf8.RuneCountInString(normalize.TaxID(rec.TaxID)) {
	case 12:
		moral = true
	case 13:
		moral = false
	}
	if moral {
		rec.PersonaType = entity.PersonaMoral
		rec.LegalName = full
		return
	}
	rec.PersonaType = entity.PersonaPhysical
	rec.GivenName, rec.PaternalSurname, rec.MaternalSurname = normalize.SplitPersonName(full, order)
}
