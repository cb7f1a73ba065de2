package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/policy-intake/constants"
	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/ingest"
)

func TestPoliciesXLSX(t *testing.T) {
	results := []ingest.FileResult{
		{
			Path:  "/in/qualitas.pdf",
			State: constants.StateValidatingEntities,
			Outcome: &entity.ExtractionOutcome{
				Method: constants.MethodStructured,
				Record: entity.PolicyRecord{
					Issuer:          "QUALITAS",
					Product:         "auto",
					PolicyNumber:    "7010012345",
					GivenName:       "JUAN",
					PaternalSurname: "PEREZ",
					Total:           "12345.60",
					Coverages:       []entity.Coverage{
						{Name: "DANOS MATERIALES", InsuredAmount: "VALOR COMERCIAL", Deductible: "5.00%", Premium: "4100.00"},
						{Name: "GASTOS LEGALES", InsuredAmount: "AMPARADA"},
					},
				},
				MatchedClient: &entity.ClientRef{ID: "client-1"},
			},
		},
		{Path: "/in/broken.pdf", State: constants.StateError, Err: "extract failed: pdftotext: exit 1"},
	}

	data, err := NewService(nil).PoliciesXLSX(results)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{PoliciesSheet, CoveragesSheet}, f.GetSheetList())

	rows, err := f.GetRows(PoliciesSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, policyHeaders, rows[0])
	assert.Equal(t, "/in/qualitas.pdf", rows[1][0])
	assert.Equal(t, "structured", rows[1][2])
	assert.Equal(t, "7010012345", rows[1][5])
	assert.Equal(t, "JUAN PEREZ", rows[1][6])
	assert.Equal(t, "12345.6", rows[1][12])
	assert.Equal(t, "client-1", rows[1][13])
	assert.Equal(t, "error", rows[2][1])
	assert.Equal(t, "extract failed: pdftotext: exit 1", rows[2][16])

	cov, err := f.GetRows(CoveragesSheet)
	require.NoError(t, err)
	require.Len(t, cov, 3)
	assert.Equal(t, []string{"/in/qualitas.pdf", "7010012345", "DANOS MATERIALES", "VALOR COMERCIAL", "5.00%", "4100"}, cov[1])
	assert.Equal(t, "AMPARADA", cov[2][3])
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "", money(""))
	assert.Equal(t, 1234.5, money("1234.50"))
	assert.Equal(t, "AMPARADA", money("AMPARADA"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
}
