package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
)

func TestPersona(t *testing.T) {
	t.Run("thirteen character rfc forces physical and splits legal name", func(t *testing.T) {
		rec := entity.PolicyRecord{
			PersonaType: entity.PersonaMoral,
			LegalName:   "JUAN PEREZ LOPEZ",
			TaxID:       "PELJ-800101-AB1",
		}
		Persona(&rec)
		assert.Equal(t, entity.PersonaPhysical, rec.PersonaType)
		assert.Equal(t, "JUAN", rec.GivenName)
		assert.Equal(t, "PEREZ", rec.PaternalSurname)
		assert.Equal(t, "LOPEZ", rec.MaternalSurname)
		assert.Empty(t, rec.LegalName)
	})

	t.Run("twelve character rfc forces moral and builds legal name", func(t *testing.T) {
		rec := entity.PolicyRecord{
			PersonaType:     entity.PersonaPhysical,
			GivenName:       "TRANSPORTES",
			PaternalSurname: "DEL NORTE",
			TaxID:           "TNO010101AB1",
		}
		Persona(&rec)
		assert.Equal(t, entity.PersonaMoral, rec.PersonaType)
		assert.Equal(t, "TRANSPORTES DEL NORTE", rec.LegalName)
		assert.Empty(t, rec.GivenName)
		assert.Empty(t, rec.PaternalSurname)
	})

	t.Run("rfc with enye counts characters", func(t *testing.T) {
		rec := entity.PolicyRecord{
			PersonaType: entity.PersonaMoral,
			LegalName:   "JUAN PEÑA LOPEZ",
			TaxID:       "peña800101ab1",
		}
		Persona(&rec)
		assert.Equal(t, entity.PersonaPhysical, rec.PersonaType)
		assert.Equal(t, "PEÑA800101AB1", TaxID(rec.TaxID))
		assert.Equal(t, "JUAN", rec.GivenName)
		assert.Equal(t, "PEÑA", rec.PaternalSurname)
		assert.Empty(t, rec.LegalName)

		moral := entity.PolicyRecord{PersonaType: entity.PersonaPhysical, GivenName: "ÑANDU", PaternalSurname: "ALIMENTOS", TaxID: "ÑAB800101AB1"}
		Persona(&moral)
		assert.Equal(t, entity.PersonaMoral, moral.PersonaType)
		assert.Equal(t, "ÑANDU ALIMENTOS", moral.LegalName)
	})

	t.Run("other lengths keep the guess", func(t *testing.T) {
		rec := entity.PolicyRecord{PersonaType: entity.PersonaMoral, LegalName: "ACME SA DE CV", TaxID: "XXX"}
		Persona(&rec)
		assert.Equal(t, entity.PersonaMoral, rec.PersonaType)
		assert.Equal(t, "ACME SA DE CV", rec.LegalName)
	})
}

func TestSplitPersonName(t *testing.T) {
	cases := []struct {
		name                      string
		full                      string
		order                     NameOrder
		given, paternal, maternal string
	}{
		{"given first", "MARIA DE LA LUZ GARCIA LOPEZ", GivenFirst, "MARIA DE LA LUZ", "GARCIA", "LOPEZ"},
		{"particle surname", "JUAN DE LA TORRE PEREZ", GivenFirst, "JUAN", "DE LA TORRE", "PEREZ"},
		{"two tokens", "JUAN PEREZ", GivenFirst, "JUAN", "PEREZ", ""},
		{"single token", "JUAN", GivenFirst, "JUAN", "", ""},
		{"surnames first", "GARCIA LOPEZ MARIA FERNANDA", SurnamesFirst, "MARIA FERNANDA", "GARCIA", "LOPEZ"},
		{"surnames first particle", "DE LA TORRE PEREZ JUAN", SurnamesFirst, "JUAN", "DE LA TORRE", "PEREZ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, p, m := SplitPersonName(tc.full, tc.order)
			assert.Equal(t, tc.given, g)
			assert.Equal(t, tc.paternal, p)
			assert.Equal(t, tc.maternal, m)
		})
	}
}

func TestFold(t *testing.T) {
	assert.Equal(t, "QUALITAS", Fold("Quálitas"))
	assert.Equal(t, "JOSE MUNOZ", NameKey("  José   Muñoz "))
}
