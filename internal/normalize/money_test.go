package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"$1,234.50 MXN":   "1234.50",
		"1234.5":          "1234.50",
		"$ 5,809.44":      "5809.44",
		"12,000 M.N.":     "12000.00",
		"USD 99":          "99.00",
		"n/a":             "",
		"":                "",
		"-":               "",
		"1.234.56":        "",
		"  $0.00  ":       "0.00",
		"-150.25 pesos":   "-150.25",
		"1234.50":         "1234.50",
		"$ 1,000,000.999": "1000001.00",
		".50":             "0.50",
		"$ .5":            "0.50",
		"$.50":            "0.50",
		"-.25":            "-0.25",
		"1,200.":          "1200.00",
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			got := Money(in)
			assert.Equal(t, want, got)
			assert.Equal(t, got, Money(got), "money must be idempotent")
		})
	}
}

func TestDeductible(t *testing.T) {
	t.Run("percentage passes through", func(t *testing.T) {
		assert.Equal(t, "3.00%", Deductible(" 3.00% "))
		assert.Equal(t, "5 % S.A.", Deductible("5 % S.A."))
	})
	t.Run("amount delegates to money", func(t *testing.T) {
		assert.Equal(t, "2500.00", Deductible("$2,500"))
	})
	t.Run("idempotent", func(t *testing.T) {
		for _, in := range []string{"10%", "$1,000.00", "NO APLICA"} {
			once := Deductible(in)
			assert.Equal(t, once, Deductible(once))
		}
	})
}

func TestInsuredAmount(t *testing.T) {
	assert.Equal(t, Amparada, InsuredAmount("Amparada"))
	assert.Equal(t, Amparada, InsuredAmount("AMPARADO"))
	assert.Equal(t, "350000.00", InsuredAmount("$350,000.00"))
	assert.Equal(t, "0.50", InsuredAmount("$.50"))
	assert.Equal(t, "VALOR COMERCIAL", InsuredAmount("valor  comercial"))
	assert.Equal(t, "", InsuredAmount("   "))
}
