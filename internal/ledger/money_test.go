package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsharma/sellsathi/internal/ledger"
)

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{name: "Integer", input: "10", want: 1000},
		{name: "TwoDecimals", input: "10.50", want: 1050},
		{name: "OneDecimal", input: "0.1", want: 10},
		{name: "DecimalComma", input: "10,50", want: 1050},
		{name: "EuropeanThousands", input: "1.234,56", want: 123456},
		{name: "Zero", input: "0", want: 0},
		{name: "Negative", input: "-2.25", want: -225},
		{name: "ThreeDecimals", input: "1.005", wantErr: true},
		{name: "Garbage", input: "abc", wantErr: true},
		{name: "Empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ledger.ParseAmount(tt.input)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", ledger.FormatAmount(0))
	assert.Equal(t, "0.05", ledger.FormatAmount(5))
	assert.Equal(t, "10.50", ledger.FormatAmount(1050))
	assert.Equal(t, "1234.56", ledger.FormatAmount(123456))
	assert.Equal(t, "-2.25", ledger.FormatAmount(-225))
}

// Summing a price that is not exactly representable in binary floating
// point must stay exact in minor units.
func TestAmountArithmeticNoDrift(t *testing.T) {
	unit, err := ledger.ParseAmount("0.10")
	require.NoError(t, err)

	var total int64
	for i := 0; i < 1000; i++ {
		total += unit
	}

	assert.Equal(t, "100.00", ledger.FormatAmount(total))
}
