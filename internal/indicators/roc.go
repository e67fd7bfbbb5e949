package indicators

// ROCConfig holds configuration for the Rate of Change indicator
type ROCConfig struct {
	IndicatorConfig
}

// DefaultROCConfig returns the conventional 12-period setup.
func DefaultROCConfig() ROCConfig {
	return ROCConfig{IndicatorConfig: IndicatorConfig{Period: 12}}
}

// ROC implements the Rate of Change momentum oscillator:
// the percentage change between the current close and the close Period steps back.
type ROC struct {
	BaseIndicator
	values []float64
}

// NewROC validates the inputs and computes the ROC series
func NewROC(close []float64, config ROCConfig) (*ROC, error) {
	if err := validateInputs("ROC", input{"close", close}); err != nil {
		return nil, err
	}
	if err := validatePeriod("ROC", "period", config.Period); err != nil {
		return nil, err
	}

	r := &ROC{BaseIndicator: BaseIndicator{Config: config.IndicatorConfig}}
	n := config.Period
	values := nanSeries(len(close))
	for i := n; i < len(close); i++ {
		prev := close[i-n]
		// prev == 0 gives ±Inf (or NaN for 0/0); fillna turns both into 0
		values[i] = (close[i] - prev) / prev * 100
	}
	r.values = fill(values, config.FillNA, 0)
	return r, nil
}

// Name returns the name of the indicator
func (r *ROC) Name() string {
	return "ROC"
}

// RequiredDataPoints returns Period+1: the first value needs a close Period steps back
func (r *ROC) RequiredDataPoints() int {
	return r.Config.Period + 1
}

// ROC returns a copy of the rate of change series
func (r *ROC) ROC() []float64 {
	return clone(r.values)
}
