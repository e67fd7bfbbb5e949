package indicators

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bruteForce recomputes a window aggregate from scratch at every index.
func bruteForce(values []float64, period, minPeriods int, agg func(w []float64) float64) []float64 {
	minPeriods = atLeastOne(minPeriods)
	out := make([]float64, len(values))
	for i := range values {
		start := i - period + 1
		if start < 0 {
			start = 0
		}
		var window []float64
		for _, v := range values[start : i+1] {
			if !math.IsNaN(v) {
				window = append(window, v)
			}
		}
		if len(window) < minPeriods {
			out[i] = math.NaN()
			continue
		}
		out[i] = agg(window)
	}
	return out
}

func randomWithGaps(r *rand.Rand, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		if r.Intn(10) == 0 {
			values[i] = math.NaN()
			continue
		}
		values[i] = r.Float64()*100 - 50
	}
	return values
}

func assertSeriesInDelta(t *testing.T, expected, actual []float64, delta float64) {
	t.Helper()
	require.Len(t, actual, len(expected))
	for i := range expected {
		if math.IsNaN(expected[i]) {
			assert.Truef(t, math.IsNaN(actual[i]), "index %d: expected NaN, got %v", i, actual[i])
			continue
		}
		assert.InDeltaf(t, expected[i], actual[i], delta, "index %d", i)
	}
}

func TestRollingAggregates(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	values := randomWithGaps(r, 300)

	sum := func(w []float64) float64 {
		s := 0.0
		for _, v := range w {
			s += v
		}
		return s
	}
	mean := func(w []float64) float64 { return sum(w) / float64(len(w)) }
	minimum := func(w []float64) float64 {
		m := w[0]
		for _, v := range w[1:] {
			m = math.Min(m, v)
		}
		return m
	}
	maximum := func(w []float64) float64 {
		m := w[0]
		for _, v := range w[1:] {
			m = math.Max(m, v)
		}
		return m
	}

	tests := []struct {
		name       string
		period     int
		minPeriods int
	}{
		{name: "full window", period: 7, minPeriods: 7},
		{name: "partial window", period: 7, minPeriods: 0},
		{name: "single element window", period: 1, minPeriods: 1},
		{name: "window longer than series", period: 500, minPeriods: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSeriesInDelta(t, bruteForce(values, tt.period, tt.minPeriods, sum), rollingSum(values, tt.period, tt.minPeriods), 1e-9)
			assertSeriesInDelta(t, bruteForce(values, tt.period, tt.minPeriods, mean), rollingMean(values, tt.period, tt.minPeriods), 1e-9)
			assertSeriesInDelta(t, bruteForce(values, tt.period, tt.minPeriods, minimum), rollingMin(values, tt.period, tt.minPeriods), 0)
			assertSeriesInDelta(t, bruteForce(values, tt.period, tt.minPeriods, maximum), rollingMax(values, tt.period, tt.minPeriods), 0)
		})
	}
}

func TestRollingSum_ZeroWindowIsExact(t *testing.T) {
	values := []float64{0.1, 0.7, 0.3, 0, 0, 0}
	sums := rollingSum(values, 3, 3)
	assert.Equal(t, 0.0, sums[5], "a window of zeros must sum to exactly zero")
}

func TestEWM(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		alpha      float64
		minPeriods int
		expected   []float64
	}{
		{
			name:       "seeded with first value",
			values:     []float64{2, 4, 8},
			alpha:      0.5,
			minPeriods: 0,
			expected:   []float64{2, 3, 5.5},
		},
		{
			name:       "leading NaN skipped",
			values:     []float64{math.NaN(), 2, 4},
			alpha:      0.5,
			minPeriods: 1,
			expected:   []float64{math.NaN(), 2, 3},
		},
		{
			name:       "min periods masks early values",
			values:     []float64{2, 4, 8, 8},
			alpha:      0.5,
			minPeriods: 3,
			expected:   []float64{math.NaN(), math.NaN(), 5.5, 6.75},
		},
		{
			name:       "interior NaN decays the old weight",
			values:     []float64{2, math.NaN(), 4},
			alpha:      0.5,
			minPeriods: 1,
			// old weight 0.25 after the gap: (0.25*2 + 0.5*4) / 0.75
			expected: []float64{2, 2, 10.0 / 3.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSeriesInDelta(t, tt.expected, ewm(tt.values, tt.alpha, tt.minPeriods), 1e-12)
		})
	}
}
