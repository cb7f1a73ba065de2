package constants

import "strings"

// Issuer is the stable key of an insurance carrier. The registry, the classifier
// and the exports all use these exact strings.
type Issuer string

const (
	IssuerQualitas Issuer = "QUALITAS"
	IssuerGNP      Issuer = "GNP"
	IssuerAXA      Issuer = "AXA"
	IssuerHDI      Issuer = "HDI"
	IssuerChubb    Issuer = "CHUBB"
	IssuerMapfre   Issuer = "MAPFRE"
	IssuerBanorte  Issuer = "BANORTE"
	IssuerZurich   Issuer = "ZURICH"
	IssuerANA      Issuer = "ANA"
	IssuerAfirme   Issuer = "AFIRME"
	IssuerAllianz  Issuer = "ALLIANZ"
	IssuerSura     Issuer = "SURA"
	IssuerMetLife  Issuer = "METLIFE"
	IssuerUnknown  Issuer = "UNKNOWN"
)

var allIssuers = []Issuer{
	IssuerQualitas, IssuerGNP, IssuerAXA, IssuerHDI, IssuerChubb, IssuerMapfre, IssuerBanorte,
	IssuerZurich, IssuerANA, IssuerAfirme, IssuerAllianz, IssuerSura, IssuerMetLife,
}

// IssuersAsStringSlice lists every carrier the classifier knows about.
func IssuersAsStringSlice() []string {
	out := make([]string, len(allIssuers))
	for i, is := range allIssuers {
		out[i] = string(is)
	}
	return out
}

// ParseIssuer accepts a key in any case; unknown input maps to IssuerUnknown.
func ParseIssuer(s string) Issuer {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, is := range allIssuers {
		if s == string(is) {
			return is
		}
	}
	return IssuerUnknown
}
