package extract

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

func TestFirstMatch(t *testing.T) {
	primary := regexp.MustCompile(`P[OÓ]LIZA:\s*(\S+)`)
	secondary := regexp.MustCompile(`No\. de p[oó]liza\s+(\S+)`)

	assert.Equal(t, "123", FirstMatch("PÓLIZA: 123", primary, secondary))
	assert.Equal(t, "456", FirstMatch("No. de póliza 456", primary, secondary))
	assert.Equal(t, "", FirstMatch("nada", primary, secondary))
}

func TestFillKeepsEarlierValues(t *testing.T) {
	re := regexp.MustCompile(`RFC:\s*(\w+)`)
	var rfc string
	Fill("RFC: PAGEONE", []Field{{Dst: &rfc, Patterns: []*regexp.Regexp{re}}})
	Fill("RFC: FULLTEXT", []Field{{Dst: &rfc, Patterns: []*regexp.Regexp{re}}})
	assert.Equal(t, "PAGEONE", rfc)
}

func TestDates(t *testing.T) {
	desde := LabeledDate(`Desde`)
	hasta := LabeledDate(`Hasta`)
	text := "Vigencia  Desde: 22-FEB-25 12:00 hrs.   Hasta: 22-FEB-26 12:00 hrs."

	assert.Equal(t, "2025-02-22", MatchDate(text, desde))
	assert.Equal(t, "2026-02-22", MatchDate(text, hasta))
	assert.Equal(t, "2025-02-22", ParseShortDate(text))
	assert.Equal(t, "2025-12-07", AssembleDate("7", "DIC", "2025"))
	assert.Equal(t, "", AssembleDate("30", "FEB", "25"))
	assert.Equal(t, "", AssembleDate("1", "XYZ", "25"))
}

func TestApplyHolderName(t *testing.T) {
	t.Run("company keyword", func(t *testing.T) {
		var rec entity.PolicyRecord
		ApplyHolderName(&rec, "COMERCIALIZADORA DEL BAJIO SA DE CV", normalize.GivenFirst)
		assert.Equal(t, entity.PersonaMoral, rec.PersonaType)
		assert.Equal(t, "COMERCIALIZADORA DEL BAJIO SA DE CV", rec.LegalName)
	})
	t.Run("person in surnames-first order", func(t *testing.T) {
		var rec entity.PolicyRecord
		ApplyHolderName(&rec, "PEREZ LOPEZ JUAN CARLOS", normalize.SurnamesFirst)
		assert.Equal(t, entity.PersonaPhysical, rec.PersonaType)
		assert.Equal(t, "JUAN CARLOS", rec.GivenName)
		assert.Equal(t, "PEREZ", rec.PaternalSurname)
		assert.Equal(t, "LOPEZ", rec.MaternalSurname)
	})
	t.Run("tax id with enye is counted in characters", func(t *testing.T) {
		rec := entity.PolicyRecord{TaxID: "PEÑA800101AB1"}
		ApplyHolderName(&rec, "JUAN PEÑA SERVICIOS", normalize.GivenFirst)
		assert.Equal(t, entity.PersonaPhysical, rec.PersonaType)
		assert.Equal(t, "JUAN", rec.GivenName)

		moral := entity.PolicyRecord{TaxID: "ÑAB800101AB1"}
		ApplyHolderName(&moral, "ÑANDU ALIMENTOS", normalize.GivenFirst)
		assert.Equal(t, entity.PersonaMoral, moral.PersonaType)
		assert.Equal(t, "ÑANDU ALIMENTOS", moral.LegalName)
	})
	t.Run("tax id overrides keyword", func(t *testing.T) {
		rec := entity.PolicyRecord{TaxID: "SEGJ800101AB1"}
		ApplyHolderName(&rec, "JUAN SERVICIOS GARCIA", normalize.GivenFirst)
		assert.Equal(t, entity.PersonaPhysical, rec.PersonaType)
		assert.Equal(t, "JUAN", rec.GivenName)
	})
}

func TestReattachLocalityArticle(t *testing.T) {
	street, loc := ReattachLocalityArticle("AV INSURGENTES SUR 1234 COL. DEL", "VALLE")
	assert.Equal(t, "AV INSURGENTES SUR 1234 COL.", street)
	assert.Equal(t, "DEL VALLE", loc)

	street, loc = ReattachLocalityArticle("CALLE ROBLE 45", "CENTRO")
	assert.Equal(t, "CALLE ROBLE 45", street)
	assert.Equal(t, "CENTRO", loc)

	street, loc = ReattachLocalityArticle("CALLE LA", "")
	assert.Equal(t, "CALLE LA", street)
	assert.Equal(t, "", loc)
}

func TestDerivePaymentPlan(t *testing.T) {
	cases := []struct {
		in, kind, freq string
	}{
		{"CONTADO", "single", ""},
		{"Anual", "single", ""},
		{"SEMESTRAL", "installment", "semiannual"},
		{"Semi-Annual", "installment", "semiannual"},
		{"CUATRIMESTRAL", "installment", "four-monthly"},
		{"TRIMESTRAL", "installment", "quarterly"},
		{"BIMESTRAL", "installment", "bimonthly"},
		{"PAGO MENSUAL", "installment", "monthly"},
		{"", "", ""},
		{"OTRO", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			kind, freq := DerivePaymentPlan(tc.in)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, tc.freq, freq)
		})
	}
}

func TestParseCoverages(t *testing.T) {
	t.Run("premium then percentage then basis", func(t *testing.T) {
		got := ParseCoverages("LIABILITY  $ 5,809.44  3.00%  COMMERCIAL VALUE", CoverageLayout{})
		require.Len(t, got, 1)
		assert.Equal(t, "LIABILITY", got[0].Name)
		assert.Equal(t, "3.00%", got[0].Deductible)
		assert.Equal(t, "5809.44", normalize.Money(got[0].Premium))
		assert.Equal(t, "COMMERCIAL VALUE", got[0].InsuredAmount)
	})

	t.Run("table inside section markers", func(t *testing.T) {
		text := `PAQUETE: AMPLIA
COBERTURAS                SUMA ASEGURADA       DEDUCIBLE      PRIMA
DAÑOS MATERIALES          VALOR COMERCIAL      5%             $ 4,500.00
RESPONSABILIDAD CIVIL     $ 3,000,000.00       0              $ 850.00
ASISTENCIA VIAL           AMPARADA
PRIMA NETA: $ 6,850.00`
		layout := CoverageLayout{
			Start: regexp.MustCompile(`(?m)^COBERTURAS.*$`),
			End:   regexp.MustCompile(`PRIMA NETA`),
		}
		got := ParseCoverages(text, layout)
		require.Len(t, got, 3)
		assert.Equal(t, entity.Coverage{Name: "DAÑOS MATERIALES", InsuredAmount: "VALOR COMERCIAL", Deductible: "5%", Premium: "$ 4,500.00"}, got[0])
		assert.Equal(t, entity.Coverage{Name: "RESPONSABILIDAD CIVIL", InsuredAmount: "$ 3,000,000.00", Deductible: "0", Premium: "$ 850.00"}, got[1])
		assert.Equal(t, entity.Coverage{Name: "ASISTENCIA VIAL", InsuredAmount: "AMPARADA"}, got[2])
	})

	t.Run("known names when no row shape matches", func(t *testing.T) {
		text := "Se cubren: Robo Total hasta $ 250,000.00 y Extensión de Responsabilidad Civil amparada."
		got := ParseCoverages(text, CoverageLayout{})
		require.Len(t, got, 2)
		assert.Equal(t, "ROBO TOTAL", got[0].Name)
		assert.Equal(t, "$ 250,000.00", got[0].InsuredAmount)
		assert.Equal(t, "EXTENSION DE RESPONSABILIDAD CIVIL", got[1].Name)
		assert.Equal(t, "AMPARADA", got[1].InsuredAmount)
	})

	t.Run("missing section yields empty list", func(t *testing.T) {
		got := ParseCoverages("sin tabla", CoverageLayout{Start: regexp.MustCompile(`COBERTURAS`)})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
