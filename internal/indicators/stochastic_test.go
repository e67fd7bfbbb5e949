package indicators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStochastic_Calculate(t *testing.T) {
	nan := math.NaN()
	high := []float64{10, 11, 12, 11, 13}
	low := []float64{8, 9, 10, 9, 11}
	close := []float64{9, 10, 11, 10, 12}

	stoch, err := NewStochastic(high, low, close, StochasticConfig{
		IndicatorConfig: IndicatorConfig{Period: 3},
		SignalPeriod:    2,
	})
	require.NoError(t, err)

	k := []float64{nan, nan, 75, 100.0 / 3.0, 75}
	d := []float64{nan, nan, nan, (75 + 100.0/3.0) / 2, (75 + 100.0/3.0) / 2}
	assertSeriesInDelta(t, k, stoch.Stoch(), 1e-9)
	assertSeriesInDelta(t, d, stoch.StochSignal(), 1e-9)
	assert.Equal(t, 4, stoch.RequiredDataPoints())
}

func TestStochastic_ZeroRange(t *testing.T) {
	flat := constant(10, 3)
	stoch, err := NewStochastic(flat, flat, flat, StochasticConfig{
		IndicatorConfig: IndicatorConfig{Period: 4},
		SignalPeriod:    3,
	})
	require.NoError(t, err)
	for _, v := range stoch.Stoch()[3:] {
		assert.Equal(t, 50.0, v)
	}
	for _, v := range stoch.StochSignal()[5:] {
		assert.Equal(t, 50.0, v)
	}
}

func TestStochastic_SignalAveragesFilledK(t *testing.T) {
	nan := math.NaN()
	high := []float64{nan, 12, 13}
	low := []float64{nan, 10, 11}
	close := []float64{11, 11.5, 12}

	stoch, err := NewStochastic(high, low, close, StochasticConfig{
		IndicatorConfig: IndicatorConfig{Period: 2, FillNA: true},
		SignalPeriod:    2,
	})
	require.NoError(t, err)

	// the first bar has no range and is filled with 50 before %D is taken
	assertSeriesInDelta(t, []float64{50, 75, 200.0 / 3.0}, stoch.Stoch(), 1e-9)
	assertSeriesInDelta(t, []float64{50, 62.5, (75 + 200.0/3.0) / 2}, stoch.StochSignal(), 1e-9)
}

func TestStochastic_BoundedAndFilled(t *testing.T) {
	bars := randomBars(rand.New(rand.NewSource(5)), 250)
	cfg := DefaultStochasticConfig()
	cfg.FillNA = true
	stoch, err := NewStochastic(bars.high, bars.low, bars.close, cfg)
	require.NoError(t, err)

	for _, series := range [][]float64{stoch.Stoch(), stoch.StochSignal()} {
		for i, v := range series {
			assert.Falsef(t, math.IsNaN(v), "index %d not filled", i)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
}

func TestStochastic_Validation(t *testing.T) {
	series := []float64{1, 2, 3}
	_, err := NewStochastic(series, series, series, StochasticConfig{IndicatorConfig: IndicatorConfig{Period: 3}})
	assert.Error(t, err, "signal period 0 must be rejected")

	_, err = NewStochastic(series, series, []float64{}, DefaultStochasticConfig())
	assert.Error(t, err)
}
