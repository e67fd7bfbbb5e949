package indicators

import (
	"math/rand"
	"testing"

	"github.com/markcheno/go-talib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TA-Lib writes zeros where a value is undefined, so only the fully warmed-up tail is compared.
func assertTailInDelta(t *testing.T, expected, actual []float64, from int, delta float64) {
	t.Helper()
	require.Equal(t, len(expected), len(actual))
	for i := from; i < len(expected); i++ {
		assert.InDeltaf(t, expected[i], actual[i], delta, "index %d", i)
	}
}

func TestROC_AgreesWithTALib(t *testing.T) {
	close := randomWalk(rand.New(rand.NewSource(101)), 300, 100)
	roc, err := NewROC(close, DefaultROCConfig())
	require.NoError(t, err)
	assertTailInDelta(t, talib.Roc(close, 12), roc.ROC(), 12, 1e-9)
}

func TestWilliamsR_AgreesWithTALib(t *testing.T) {
	bars := randomBars(rand.New(rand.NewSource(102)), 300)
	wr, err := NewWilliamsR(bars.high, bars.low, bars.close, DefaultWilliamsRConfig())
	require.NoError(t, err)
	assertTailInDelta(t, talib.WillR(bars.high, bars.low, bars.close, 14), wr.WilliamsR(), 13, 1e-9)
}

func TestStochastic_AgreesWithTALib(t *testing.T) {
	bars := randomBars(rand.New(rand.NewSource(103)), 300)
	stoch, err := NewStochastic(bars.high, bars.low, bars.close, DefaultStochasticConfig())
	require.NoError(t, err)

	k, d := talib.StochF(bars.high, bars.low, bars.close, 14, 3, talib.SMA)
	assertTailInDelta(t, k, stoch.Stoch(), 15, 1e-9)
	assertTailInDelta(t, d, stoch.StochSignal(), 15, 1e-9)
}

func TestSMA_AgreesWithTALib(t *testing.T) {
	close := randomWalk(rand.New(rand.NewSource(104)), 200, 50)
	ma, err := NewMovingAverage(close, MovingAverageConfig{
		IndicatorConfig: IndicatorConfig{Period: 20},
		Type:            SimpleMovingAverage,
	})
	require.NoError(t, err)
	assertTailInDelta(t, talib.Sma(close, 20), ma.Values(), 19, 1e-9)
}
