package chubb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

const policy = `Chubb Seguros México, S.A.
Producto: PAQUETE EMPRESARIAL PYME
Número de póliza: EMP-00451278   Endoso: 1
Contratante: INDUSTRIAS METALICAS DEL NORTE S.A. DE C.V.
RFC: IMN0505059K2
Correo: seguros@imnorte.com.mx
Ubicación del riesgo: AV. CONSTITUCION 1500 PONIENTE
Colonia: CENTRO   C.P. 64000   Entidad: NUEVO LEON
Vigencia: Del 01/06/2025 al 01/06/2026
Fecha de emisión: 28/05/2025
Sección / Cobertura          Suma Asegurada         Deducible      Prima
Incendio Edificio            MXN 5,000,000.00       2% S.V.        MXN 9,000.00
Incendio Contenidos          MXN 1,200,000.00       2% S.V.        MXN 2,400.00
Remoción de Escombros        AMPARADA               MXN 350.00
Responsabilidad Civil General   MXN 3,000,000.00    MXN 5,000.00   MXN 4,100.00
Prima Neta: MXN 15,850.00
Gastos de Expedición: MXN 900.00
IVA: MXN 2,680.00
Prima Total: MXN 19,430.00
Periodicidad de pago: ANUAL
Intermediario: 30211 - CORREDURIA DE SEGUROS MONTERREY`

func TestExtract(t *testing.T) {
	e := New()
	assert.Equal(t, constants.IssuerChubb, e.Issuer())

	rec := normalize.Record(e.Extract(entity.NewDocumentText([]string{policy})))

	assert.Equal(t, "CHUBB", rec.Issuer)
	assert.Equal(t, "EMP-00451278", rec.PolicyNumber)
	assert.Equal(t, "1", rec.Endorsement)
	assert.Equal(t, "PAQUETE EMPRESARIAL PYME", rec.Plan)
	assert.Equal(t, entity.PersonaMoral, rec.PersonaType)
	assert.Equal(t, "INDUSTRIAS METALICAS DEL NORTE S.A. DE C.V.", rec.LegalName)
	assert.Equal(t, "IMN0505059K2", rec.TaxID)
	assert.Equal(t, "AV. CONSTITUCION 1500 PONIENTE", rec.Street)
	assert.Equal(t, "CENTRO", rec.Locality)
	assert.Equal(t, "64000", rec.PostalCode)
	assert.Equal(t, "NUEVO LEON", rec.Region)
	assert.Equal(t, "2025-06-01", rec.EffectiveStart)
	assert.Equal(t, "2026-06-01", rec.EffectiveEnd)
	assert.Equal(t, "2025-05-28", rec.IssueDate)

	assert.Equal(t, "15850.00", rec.NetPremium)
	assert.Equal(t, "900.00", rec.IssuanceFee)
	assert.Equal(t, "2680.00", rec.Tax)
	assert.Equal(t, "19430.00", rec.Total)
	assert.Equal(t, "single", rec.PaymentType)
	assert.Equal(t, "30211", rec.AgentCode)
	assert.Equal(t, "CORREDURIA DE SEGUROS MONTERREY", rec.AgentName)

	require.Len(t, rec.Coverages, 4)
	assert.Equal(t, entity.Coverage{Name: "INCENDIO EDIFICIO", InsuredAmount: "5000000.00", Deductible: "2% S.V.", Premium: "9000.00"}, rec.Coverages[0])
	assert.Equal(t, entity.Coverage{Name: "REMOCIÓN DE ESCOMBROS", InsuredAmount: "AMPARADA", Premium: "350.00"}, rec.Coverages[2])
	assert.Equal(t, entity.Coverage{Name: "RESPONSABILIDAD CIVIL GENERAL", InsuredAmount: "3000000.00", Deductible: "5000.00", Premium: "4100.00"}, rec.Coverages[3])
}
