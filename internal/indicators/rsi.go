package indicators

import "math"

// RSIConfig holds configuration for the RSI indicator
type RSIConfig struct {
	IndicatorConfig
	Overbought float64
	Oversold   float64
}

// DefaultRSIConfig returns the 14-period RSI with 70/30 zones.
func DefaultRSIConfig() RSIConfig {
	return RSIConfig{
		IndicatorConfig: IndicatorConfig{Period: 14},
		Overbought:      70,
		Oversold:        30,
	}
}

// RSI implements the Relative Strength Index.
//
// Average gain and loss are exponentially weighted with alpha = 1/Period starting from the
// first bar. There is no SMA seed over the first Period changes, so early values differ
// slightly from Wilder's original table but converge to it.
type RSI struct {
	BaseIndicator
	config RSIConfig
	values []float64
}

// NewRSI validates the inputs and computes the RSI series
func NewRSI(close []float64, config RSIConfig) (*RSI, error) {
	if err := validateInputs("RSI", input{"close", close}); err != nil {
		return nil, err
	}
	if err := validatePeriod("RSI", "period", config.Period); err != nil {
		return nil, err
	}

	r := &RSI{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}

	// the first bar has no change and counts as neither gain nor loss
	gains := make([]float64, len(close))
	losses := make([]float64, len(close))
	for i := 1; i < len(close); i++ {
		change := close[i] - close[i-1]
		if math.IsNaN(change) {
			gains[i], losses[i] = math.NaN(), math.NaN()
			continue
		}
		gains[i] = math.Max(change, 0)
		losses[i] = math.Max(-change, 0)
	}

	alpha := 1.0 / float64(config.Period)
	minPeriods := r.minPeriods(config.Period)
	avgGain := ewm(gains, alpha, minPeriods)
	avgLoss := ewm(losses, alpha, minPeriods)

	// avgLoss == 0 means only gains over the smoothing horizon: RSI is 100
	r.values = fill(oscillator(avgGain, avgLoss), config.FillNA, 50)
	return r, nil
}

// Name returns the name of the indicator
func (r *RSI) Name() string {
	return "RSI"
}

// RSI returns a copy of the relative strength index series
func (r *RSI) RSI() []float64 {
	return clone(r.values)
}

// IsOverbought checks if the RSI value indicates an overbought condition
func (r *RSI) IsOverbought(value float64) bool {
	return value >= r.config.Overbought
}

// IsOversold checks if the RSI value indicates an oversold condition
func (r *RSI) IsOversold(value float64) bool {
	return value <= r.config.Oversold
}
