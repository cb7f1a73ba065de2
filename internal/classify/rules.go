package classify

import (
	"regexp"

	"github.com/joseph-ayodele/policy-intake/constants"
)

type issuerRule struct {
	issuer  constants.Issuer
	pattern *regexp.Regexp
}

type productRule struct {
	product constants.Product
	pattern *regexp.Regexp
	// onlyFor restricts the rule to documents already attributed to this issuer.
	onlyFor constants.Issuer
}

// Patterns run against folded text (upper case, no diacritics).
// Specific signatures come before bare brand words so a Quálitas policy that
// names a bank as beneficiary is still attributed to Quálitas.
var issuerRules = []issuerRule{
	{constants.IssuerQualitas, regexp.MustCompile(`QUALITAS COMPANIA DE SEGUROS|QUALITAS\.COM\.MX|800[\s-]?800[\s-]?2880`)},
	{constants.IssuerGNP, regexp.MustCompile(`GRUPO NACIONAL PROVINCIAL|GNP\.COM\.MX|GNP SEGUROS`)},
	{constants.IssuerAXA, regexp.MustCompile(`AXA SEGUROS|AXA\.COM\.MX|800[\s-]?900[\s-]?1292`)},
	{constants.IssuerHDI, regexp.MustCompile(`HDI SEGUROS|HDI\.COM\.MX|800[\s-]?019[\s-]?6000`)},
	{constants.IssuerChubb, regexp.MustCompile(`CHUBB SEGUROS|CHUBB\.COM|ABA SEGUROS`)},
	{constants.IssuerMapfre, regexp.MustCompile(`MAPFRE MEXICO|MAPFRE\.COM\.MX`)},
	{constants.IssuerBanorte, regexp.MustCompile(`SEGUROS BANORTE|BANORTE\.COM`)},
	{constants.IssuerZurich, regexp.MustCompile(`ZURICH ASEGURADORA|ZURICH\.COM\.MX`)},
	{constants.IssuerANA, regexp.MustCompile(`ANA COMPANIA DE SEGUROS|ANASEGUROS\.COM\.MX`)},
	{constants.IssuerAfirme, regexp.MustCompile(`SEGUROS AFIRME|AFIRME\.COM`)},
	{constants.IssuerAllianz, regexp.MustCompile(`ALLIANZ MEXICO|ALLIANZ\.COM\.MX`)},
	{constants.IssuerSura, regexp.MustCompile(`SEGUROS SURA|SEGUROSSURA\.COM\.MX`)},
	{constants.IssuerMetLife, regexp.MustCompile(`METLIFE MEXICO|METLIFE\.COM\.MX`)},

	{constants.IssuerQualitas, regexp.MustCompile(`\bQUALITAS\b`)},
	{constants.IssuerGNP, regexp.MustCompile(`\bGNP\b`)},
	{constants.IssuerAXA, regexp.MustCompile(`\bAXA\b`)},
	{constants.IssuerHDI, regexp.MustCompile(`\bHDI\b`)},
	{constants.IssuerChubb, regexp.MustCompile(`\bCHUBB\b`)},
	{constants.IssuerMapfre, regexp.MustCompile(`\bMAPFRE\b`)},
	{constants.IssuerBanorte, regexp.MustCompile(`\bBANORTE\b`)},
	{constants.IssuerZurich, regexp.MustCompile(`\bZURICH\b`)},
	{constants.IssuerAfirme, regexp.MustCompile(`\bAFIRME\b`)},
	{constants.IssuerAllianz, regexp.MustCompile(`\bALLIANZ\b`)},
	{constants.IssuerSura, regexp.MustCompile(`\bSURA\b`)},
	{constants.IssuerMetLife, regexp.MustCompile(`\bMETLIFE\b`)},
}

// Auto precedes medical and liability because vehicle policies list
// GASTOS MEDICOS OCUPANTES and RESPONSABILIDAD CIVIL among their coverages.
var productRules = []productRule{
	{product: constants.ProductCargo, pattern: regexp.MustCompile(`TRANSPORTE DE MERCANCIAS|TRANSPORTE DE CARGA|MERCANCIA TRANSPORTADA|CARGO INSURANCE`)},
	{product: constants.ProductAuto, pattern: regexp.MustCompile(`NO\.? DE SERIE|NUMERO DE SERIE|\bPLACAS\b|\bVEHICULO\b|\bAUTOMOVIL|\bAUTOS?\b`)},
	{product: constants.ProductAuto, pattern: regexp.MustCompile(`\bAMPLIA\b|\bLIMITADA\b|RC OBLIGATORIO`), onlyFor: constants.IssuerQualitas},
	{product: constants.ProductMedical, pattern: regexp.MustCompile(`GASTOS MEDICOS|\bSALUD\b|HEALTH`)},
	{product: constants.ProductLife, pattern: regexp.MustCompile(`SEGURO DE VIDA|\bVIDA\b|LIFE INSURANCE`)},
	{product: constants.ProductLiability, pattern: regexp.MustCompile(`RESPONSABILIDAD CIVIL (?:GENERAL|PROFESIONAL)|\bRC GENERAL\b`)},
	{product: constants.ProductProperty, pattern: regexp.MustCompile(`\bHOGAR\b|INCENDIO|TERREMOTO|EMPRESARIAL|CASA HABITACION|DANOS AL INMUEBLE`)},
}
