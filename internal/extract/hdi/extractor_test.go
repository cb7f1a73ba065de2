package hdi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

var pages = []string{
	`HDI Seguros, S.A. de C.V.
Póliza  HDI-5544332211
Fecha de emisión 02-MAY-2025
Nombre del Asegurado  RAMIREZ SOTO PEDRO
RFC  RASP850505MN2
Calle y número  PRIVADA FRESNO 12 INT 3
Colonia  SANTA ANITA   Código Postal 44300
Estado  JALISCO
Vigencia desde 05-MAY-2025 hasta 05-MAY-2026
Vehículo  TOYOTA COROLLA LE  Modelo 2023
Número de serie JTDBR32E230123456  Placas JAL4455`,
	`Cobertura | Suma Asegurada | Deducible | Prima
Daños Materiales | Valor Comercial | 5% | $3,456.00
Robo Total | Valor Comercial | 10% | $1,100.00
Responsabilidad Civil | $2,000,000.00 | 0 | $900.00
Prima neta $ 5,456.00
Recargo financiero $ 327.36
Derecho de póliza $ 500.00
I.V.A. 16% $ 1,005.34
Prima total $ 7,288.70
Forma de pago SEMESTRAL
Primer recibo $ 3,894.35   Recibos subsecuentes $ 3,394.35
Periodo de gracia 30 días
Clave agente A1029
Nombre agente LUIS HERNANDEZ MORA`,
}

func TestExtract(t *testing.T) {
	rec := normalize.Record(New().Extract(entity.NewDocumentText(pages)))

	assert.Equal(t, "HDI", rec.Issuer)
	assert.Equal(t, "HDI-5544332211", rec.PolicyNumber)
	assert.Equal(t, "PEDRO", rec.GivenName)
	assert.Equal(t, "RAMIREZ", rec.PaternalSurname)
	assert.Equal(t, "SOTO", rec.MaternalSurname)
	assert.Equal(t, "RASP850505MN2", rec.TaxID)
	assert.Equal(t, "PRIVADA FRESNO 12 INT 3", rec.Street)
	assert.Equal(t, "SANTA ANITA", rec.Locality)
	assert.Equal(t, "44300", rec.PostalCode)
	assert.Equal(t, "JALISCO", rec.Region)
	assert.Equal(t, "2025-05-02", rec.IssueDate)
	assert.Equal(t, "2025-05-05", rec.EffectiveStart)
	assert.Equal(t, "2026-05-05", rec.EffectiveEnd)
	assert.Equal(t, "TOYOTA", rec.Make)
	assert.Equal(t, "COROLLA LE", rec.Model)
	assert.Equal(t, "2023", rec.Year)
	assert.Equal(t, "JTDBR32E230123456", rec.SerialNumber)
	assert.Equal(t, "JAL4455", rec.Plates)

	assert.Equal(t, "5456.00", rec.NetPremium)
	assert.Equal(t, "327.36", rec.InstallmentSurcharge)
	assert.Equal(t, "500.00", rec.IssuanceFee)
	assert.Equal(t, "1005.34", rec.Tax)
	assert.Equal(t, "7288.70", rec.Total)
	assert.Equal(t, "installment", rec.PaymentType)
	assert.Equal(t, "semiannual", rec.InstallmentFrequency)
	assert.Equal(t, "3894.35", rec.FirstInstallmentAmount)
	assert.Equal(t, "3394.35", rec.SubsequentInstallmentAmount)
	assert.Equal(t, "30", rec.GracePeriodDays)
	assert.Equal(t, "A1029", rec.AgentCode)
	assert.Equal(t, "LUIS HERNANDEZ MORA", rec.AgentName)

	require.Len(t, rec.Coverages, 3)
	assert.Equal(t, entity.Coverage{Name: "DAÑOS MATERIALES", InsuredAmount: "VALOR COMERCIAL", Deductible: "5%", Premium: "3456.00"}, rec.Coverages[0])
	assert.Equal(t, entity.Coverage{Name: "RESPONSABILIDAD CIVIL", InsuredAmount: "2000000.00", Deductible: "0.00", Premium: "900.00"}, rec.Coverages[2])
}
