package indicators

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"momentumScope/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesFunctions_MatchConstructors(t *testing.T) {
	for _, fillna := range []bool{false, true} {
		bars := randomBars(rand.New(rand.NewSource(21)), 90)
		want := computeAll(t, bars, fillna)

		got := map[string]func() ([]float64, error){
			"ROC": func() ([]float64, error) { return ROCSeries(bars.close, 12, fillna) },
			"RSI": func() ([]float64, error) { return RSISeries(bars.close, 14, fillna) },
			"MFI": func() ([]float64, error) {
				return MFISeries(bars.high, bars.low, bars.close, bars.volume, 14, fillna)
			},
			"UO": func() ([]float64, error) {
				return UOSeries(bars.high, bars.low, bars.close, 7, 14, 28, 4, 2, 1, fillna)
			},
			"STOCH": func() ([]float64, error) { return StochSeries(bars.high, bars.low, bars.close, 14, 3, fillna) },
			"STOCH_SIGNAL": func() ([]float64, error) {
				return StochSignalSeries(bars.high, bars.low, bars.close, 14, 3, fillna)
			},
			"WILLR": func() ([]float64, error) { return WilliamsRSeries(bars.high, bars.low, bars.close, 14, fillna) },
			"KAMA":  func() ([]float64, error) { return KAMASeries(bars.close, 10, 2, 30, fillna) },
			"TSI":   func() ([]float64, error) { return TSISeries(bars.close, 25, 13, fillna) },
		}

		for name, call := range got {
			values, err := call()
			require.NoErrorf(t, err, "%s fillna=%v", name, fillna)
			require.Lenf(t, values, len(want[name]), "%s", name)
			for i := range values {
				assert.Equalf(t, math.Float64bits(want[name][i]), math.Float64bits(values[i]), "%s fillna=%v index %d", name, fillna, i)
			}
		}
	}
}

func TestSeriesFunctions_ReturnValidationErrors(t *testing.T) {
	close := []float64{1, 2, 3}
	tests := []struct {
		name string
		call func() ([]float64, error)
	}{
		{name: "roc", call: func() ([]float64, error) { return ROCSeries(close, 0, false) }},
		{name: "rsi", call: func() ([]float64, error) { return RSISeries(nil, 14, false) }},
		{name: "mfi", call: func() ([]float64, error) { return MFISeries(close, close, close, close[:2], 14, false) }},
		{name: "uo", call: func() ([]float64, error) { return UOSeries(close, close, close, 7, 14, 28, 0, 0, 0, false) }},
		{name: "stoch", call: func() ([]float64, error) { return StochSeries(close, close, close, 14, 0, false) }},
		{name: "stoch signal", call: func() ([]float64, error) { return StochSignalSeries(close, close, close, -1, 3, false) }},
		{name: "williams", call: func() ([]float64, error) { return WilliamsRSeries(close, close, close, 0, true) }},
		{name: "kama", call: func() ([]float64, error) { return KAMASeries(close, 10, 0, 30, false) }},
		{name: "tsi", call: func() ([]float64, error) { return TSISeries(close, 25, 0, false) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := tt.call()
			require.Error(t, err)
			assert.Nil(t, values)
			assert.True(t, errors.Is(err, ports.ErrInvalidInput))
		})
	}
}
