package extract

import (
	"strings"

	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

var localityArticles = map[string]struct{}{
	"LA": {}, "EL": {}, "LOS": {}, "LAS": {}, "DEL": {}, "DE": {}, "LO": {}, "SAN": {}, "SANTA": {},
}

// ReattachLocalityArticle moves an article that a line break left at the end of
// the street onto the front of the locality: ("CALLE 5 COL. LAS", "FLORES")
// becomes ("CALLE 5 COL.", "LAS FLORES").
func ReattachLocalityArticle(street, locality string) (string, string) {
	street, locality = Clean(street), Clean(locality)
	if locality == "" {
		return street, locality
	}
	toks := strings.Fields(street)
	if len(toks) < 2 {
		return street, locality
	}
	last := toks[len(toks)-1]
	if _, ok := localityArticles[normalize.Fold(last)]; !ok {
		return street, locality
	}
	return strings.Join(toks[:len(toks)-1], " "), last + " " + locality
}
