package indicators

import (
	"fmt"
	"math"
)

// UltimateOscillatorConfig holds the three windows and their weights
type UltimateOscillatorConfig struct {
	Short        int
	Medium       int
	Long         int
	WeightShort  float64
	WeightMedium float64
	WeightLong   float64
	FillNA       bool
}

// DefaultUltimateOscillatorConfig returns Williams' 7/14/28 windows weighted 4/2/1.
func DefaultUltimateOscillatorConfig() UltimateOscillatorConfig {
	return UltimateOscillatorConfig{
		Short:        7,
		Medium:       14,
		Long:         28,
		WeightShort:  4,
		WeightMedium: 2,
		WeightLong:   1,
	}
}

// UltimateOscillator blends buying pressure relative to true range over three horizons.
type UltimateOscillator struct {
	config UltimateOscillatorConfig
	values []float64
}

// NewUltimateOscillator validates the inputs and computes the oscillator series
func NewUltimateOscillator(high, low, close []float64, config UltimateOscillatorConfig) (*UltimateOscillator, error) {
	if err := validateInputs("UO", input{"close", close}, input{"high", high}, input{"low", low}); err != nil {
		return nil, err
	}
	windows := []struct {
		field  string
		period int
		weight float64
	}{
		{"short", config.Short, config.WeightShort},
		{"medium", config.Medium, config.WeightMedium},
		{"long", config.Long, config.WeightLong},
	}
	for _, w := range windows {
		if err := validatePeriod("UO", w.field, w.period); err != nil {
			return nil, err
		}
		if w.weight < 0 || math.IsNaN(w.weight) {
			return nil, &ValidationError{Indicator: "UO", Field: w.field + " weight", Reason: fmt.Sprintf("must be >= 0, got %v", w.weight)}
		}
	}
	weightSum := config.WeightShort + config.WeightMedium + config.WeightLong
	if weightSum <= 0 {
		return nil, &ValidationError{Indicator: "UO", Field: "weights", Reason: "must not all be zero"}
	}

	u := &UltimateOscillator{config: config}
	buyingPressure, trueRange := trueRangeParts(high, low, close)

	average := func(period int) []float64 {
		minPeriods := period
		if config.FillNA {
			minPeriods = 0
		}
		bp := rollingSum(buyingPressure, period, minPeriods)
		tr := rollingSum(trueRange, period, minPeriods)
		out := make([]float64, len(bp))
		for i := range bp {
			switch {
			case math.IsNaN(bp[i]) || math.IsNaN(tr[i]):
				out[i] = math.NaN()
			case tr[i] == 0:
				// no range at all in the window: neutral
				out[i] = 0.5
			default:
				out[i] = bp[i] / tr[i]
			}
		}
		return out
	}
	short, medium, long := average(config.Short), average(config.Medium), average(config.Long)

	values := make([]float64, len(close))
	for i := range values {
		values[i] = 100.0 * (config.WeightShort*short[i] + config.WeightMedium*medium[i] + config.WeightLong*long[i]) / weightSum
	}
	u.values = fill(values, config.FillNA, 50)
	return u, nil
}

// Name returns the name of the indicator
func (u *UltimateOscillator) Name() string {
	return "UO"
}

// RequiredDataPoints is the longest window plus the bar that supplies the first previous close
func (u *UltimateOscillator) RequiredDataPoints() int {
	longest := u.config.Short
	if u.config.Medium > longest {
		longest = u.config.Medium
	}
	if u.config.Long > longest {
		longest = u.config.Long
	}
	return longest + 1
}

// UltimateOscillator returns a copy of the oscillator series
func (u *UltimateOscillator) UltimateOscillator() []float64 {
	return clone(u.values)
}
