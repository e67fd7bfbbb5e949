package indicators

import "math"

// StochasticConfig holds configuration for the Stochastic Oscillator
type StochasticConfig struct {
	IndicatorConfig
	// SignalPeriod is the SMA window of the %D signal line.
	SignalPeriod int
}

// DefaultStochasticConfig returns the 14-period %K with a 3-period %D.
func DefaultStochasticConfig() StochasticConfig {
	return StochasticConfig{
		IndicatorConfig: IndicatorConfig{Period: 14},
		SignalPeriod:    3,
	}
}

// Stochastic implements the fast Stochastic Oscillator (%K) and its signal line (%D).
type Stochastic struct {
	BaseIndicator
	config StochasticConfig
	k      []float64
	d      []float64
}

// NewStochastic validates the inputs and computes %K and %D
func NewStochastic(high, low, close []float64, config StochasticConfig) (*Stochastic, error) {
	if err := validateInputs("STOCH", input{"close", close}, input{"high", high}, input{"low", low}); err != nil {
		return nil, err
	}
	if err := validatePeriod("STOCH", "period", config.Period); err != nil {
		return nil, err
	}
	if err := validatePeriod("STOCH", "signal period", config.SignalPeriod); err != nil {
		return nil, err
	}

	s := &Stochastic{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
	lowest := rollingMin(low, config.Period, s.minPeriods(config.Period))
	highest := rollingMax(high, config.Period, s.minPeriods(config.Period))

	// a flat window (highest == lowest) puts %K at mid-range
	k := priceLocation(close, lowest, highest, func(c, lo, hi float64) float64 {
		return 100 * (c - lo) / (hi - lo)
	}, 50)
	// %D averages %K after filling, so with fillna a filled 50 counts toward the signal
	s.k = fill(k, config.FillNA, 50)
	d := SMA(s.k, config.SignalPeriod, s.minPeriods(config.SignalPeriod))
	s.d = fill(d, config.FillNA, 50)
	return s, nil
}

// Name returns the name of the indicator
func (s *Stochastic) Name() string {
	return "STOCH"
}

// RequiredDataPoints returns the inputs needed for the first signal value
func (s *Stochastic) RequiredDataPoints() int {
	return s.Config.Period + s.config.SignalPeriod - 1
}

// Stoch returns a copy of the %K series
func (s *Stochastic) Stoch() []float64 {
	return clone(s.k)
}

// StochSignal returns a copy of the %D series
func (s *Stochastic) StochSignal() []float64 {
	return clone(s.d)
}

// priceLocation places each close inside its window's [lowest, highest] range with locate,
// substituting flat for windows with no range.
func priceLocation(close, lowest, highest []float64, locate func(c, lo, hi float64) float64, flat float64) []float64 {
	out := make([]float64, len(close))
	for i := range close {
		lo, hi := lowest[i], highest[i]
		switch {
		case math.IsNaN(lo) || math.IsNaN(hi):
			out[i] = math.NaN()
		case hi == lo:
			out[i] = flat
		default:
			out[i] = locate(close[i], lo, hi)
		}
	}
	return out
}
