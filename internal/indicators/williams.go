package indicators

// WilliamsRConfig holds configuration for Williams %R
type WilliamsRConfig struct {
	IndicatorConfig
}

// DefaultWilliamsRConfig returns the 14-period lookback.
func DefaultWilliamsRConfig() WilliamsRConfig {
	return WilliamsRConfig{IndicatorConfig: IndicatorConfig{Period: 14}}
}

// WilliamsR implements Williams %R, ranging from -100 (close at the low) to 0 (close at the high).
type WilliamsR struct {
	BaseIndicator
	values []float64
}

// NewWilliamsR validates the inputs and computes the %R series
func NewWilliamsR(high, low, close []float64, config WilliamsRConfig) (*WilliamsR, error) {
	if err := validateInputs("WILLR", input{"close", close}, input{"high", high}, input{"low", low}); err != nil {
		return nil, err
	}
	if err := validatePeriod("WILLR", "lookback period", config.Period); err != nil {
		return nil, err
	}

	w := &WilliamsR{BaseIndicator: BaseIndicator{Config: config.IndicatorConfig}}
	lowest := rollingMin(low, config.Period, w.minPeriods(config.Period))
	highest := rollingMax(high, config.Period, w.minPeriods(config.Period))

	values := priceLocation(close, lowest, highest, func(c, lo, hi float64) float64 {
		return -100 * (hi - c) / (hi - lo)
	}, -50)
	w.values = fill(values, config.FillNA, -50)
	return w, nil
}

// Name returns the name of the indicator
func (w *WilliamsR) Name() string {
	return "WILLR"
}

// WilliamsR returns a copy of the %R series
func (w *WilliamsR) WilliamsR() []float64 {
	return clone(w.values)
}
