package indicators

import "math"

// TSIConfig holds configuration for the True Strength Index
type TSIConfig struct {
	// LongPeriod is the span of the first smoothing pass (r), ShortPeriod of the second (s).
	LongPeriod  int
	ShortPeriod int
	FillNA      bool
}

// DefaultTSIConfig returns TSI(25, 13).
func DefaultTSIConfig() TSIConfig {
	return TSIConfig{LongPeriod: 25, ShortPeriod: 13}
}

// TSI implements the True Strength Index: double-smoothed momentum over double-smoothed
// absolute momentum, scaled to [-100, 100].
type TSI struct {
	config TSIConfig
	values []float64
}

// NewTSI validates the inputs and computes the TSI series
func NewTSI(close []float64, config TSIConfig) (*TSI, error) {
	if err := validateInputs("TSI", input{"close", close}); err != nil {
		return nil, err
	}
	if err := validatePeriod("TSI", "long period", config.LongPeriod); err != nil {
		return nil, err
	}
	if err := validatePeriod("TSI", "short period", config.ShortPeriod); err != nil {
		return nil, err
	}

	t := &TSI{config: config}
	momentum := make([]float64, len(close))
	absMomentum := make([]float64, len(close))
	momentum[0], absMomentum[0] = math.NaN(), math.NaN()
	for i := 1; i < len(close); i++ {
		momentum[i] = close[i] - close[i-1]
		absMomentum[i] = math.Abs(momentum[i])
	}

	smoothed := t.doubleSmooth(momentum)
	smoothedAbs := t.doubleSmooth(absMomentum)

	values := make([]float64, len(close))
	for i := range values {
		switch {
		case math.IsNaN(smoothed[i]) || math.IsNaN(smoothedAbs[i]):
			values[i] = math.NaN()
		case smoothedAbs[i] == 0:
			// no movement at all over the horizon
			values[i] = 0
		default:
			values[i] = 100 * smoothed[i] / smoothedAbs[i]
		}
	}
	t.values = fill(values, config.FillNA, 0)
	return t, nil
}

// doubleSmooth applies EMA(LongPeriod) then EMA(ShortPeriod); the second pass starts at the
// first value the first pass defines.
func (t *TSI) doubleSmooth(values []float64) []float64 {
	longMin, shortMin := t.config.LongPeriod, t.config.ShortPeriod
	if t.config.FillNA {
		longMin, shortMin = 0, 0
	}
	return EMA(EMA(values, t.config.LongPeriod, longMin), t.config.ShortPeriod, shortMin)
}

// Name returns the name of the indicator
func (t *TSI) Name() string {
	return "TSI"
}

// RequiredDataPoints returns the inputs needed for the first defined value
func (t *TSI) RequiredDataPoints() int {
	return t.config.LongPeriod + t.config.ShortPeriod
}

// TSI returns a copy of the true strength index series
func (t *TSI) TSI() []float64 {
	return clone(t.values)
}
