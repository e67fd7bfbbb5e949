package indicators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRSI_Calculate(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name     string
		close    []float64
		config   RSIConfig
		expected []float64
	}{
		{
			name:   "alternating moves",
			close:  []float64{1, 2, 1, 2},
			config: RSIConfig{IndicatorConfig: IndicatorConfig{Period: 2}},
			// avg gain 0, .5, .25, .625; avg loss 0, 0, .5, .25 with alpha 1/2
			expected: []float64{nan, 100, 100 - 100/1.5, 100 - 100/3.5},
		},
		{
			name:     "all gains",
			close:    []float64{100, 102, 104, 106},
			config:   RSIConfig{IndicatorConfig: IndicatorConfig{Period: 3}},
			expected: []float64{nan, nan, 100, 100},
		},
		{
			name:     "all losses",
			close:    []float64{106, 104, 102, 100},
			config:   RSIConfig{IndicatorConfig: IndicatorConfig{Period: 3}},
			expected: []float64{nan, nan, 0, 0},
		},
		{
			name:     "flat prices count as no loss",
			close:    []float64{10, 10, 10},
			config:   RSIConfig{IndicatorConfig: IndicatorConfig{Period: 2}},
			expected: []float64{nan, 100, 100},
		},
		{
			name:     "fillna uses the neutral level only where undefined",
			close:    []float64{100, 99, 98},
			config:   RSIConfig{IndicatorConfig: IndicatorConfig{Period: 5, FillNA: true}},
			expected: []float64{100, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rsi, err := NewRSI(tt.close, tt.config)
			require.NoError(t, err)
			assertSeriesInDelta(t, tt.expected, rsi.RSI(), 1e-9)
		})
	}
}

func TestRSI_Bounded(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	close := randomWalk(r, 500, 100)

	rsi, err := NewRSI(close, DefaultRSIConfig())
	require.NoError(t, err)
	for i, v := range rsi.RSI() {
		if i < 13 {
			assert.True(t, math.IsNaN(v), "index %d should be undefined", i)
			continue
		}
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestRSI_IsOverboughtOversold(t *testing.T) {
	rsi, err := NewRSI([]float64{1, 2, 3}, DefaultRSIConfig())
	require.NoError(t, err)

	tests := []struct {
		name         string
		value        float64
		isOverbought bool
		isOversold   bool
	}{
		{name: "Overbought condition", value: 75.0, isOverbought: true},
		{name: "Oversold condition", value: 25.0, isOversold: true},
		{name: "Neutral condition", value: 50.0},
		{name: "Exact overbought threshold", value: 70.0, isOverbought: true},
		{name: "Exact oversold threshold", value: 30.0, isOversold: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if overbought := rsi.IsOverbought(tt.value); overbought != tt.isOverbought {
				t.Errorf("IsOverbought(%f) = %v, want %v", tt.value, overbought, tt.isOverbought)
			}
			if oversold := rsi.IsOversold(tt.value); oversold != tt.isOversold {
				t.Errorf("IsOversold(%f) = %v, want %v", tt.value, oversold, tt.isOversold)
			}
		})
	}
}

func TestRSI_Validation(t *testing.T) {
	_, err := NewRSI(nil, DefaultRSIConfig())
	assert.Error(t, err)

	_, err = NewRSI([]float64{1, 2}, RSIConfig{IndicatorConfig: IndicatorConfig{Period: 0}})
	assert.Error(t, err)
}

func TestRSI_Name(t *testing.T) {
	rsi, err := NewRSI([]float64{1}, DefaultRSIConfig())
	require.NoError(t, err)
	if name := rsi.Name(); name != "RSI" {
		t.Errorf("Expected name 'RSI', got '%s'", name)
	}
}
