package indicators

// MFIConfig holds configuration for the Money Flow Index
type MFIConfig struct {
	IndicatorConfig
}

// DefaultMFIConfig returns the 14-period MFI.
func DefaultMFIConfig() MFIConfig {
	return MFIConfig{IndicatorConfig: IndicatorConfig{Period: 14}}
}

// MFI implements the Money Flow Index, a volume-weighted RSI over the typical price.
type MFI struct {
	BaseIndicator
	values []float64
}

// NewMFI validates the inputs and computes the MFI series
func NewMFI(high, low, close, volume []float64, config MFIConfig) (*MFI, error) {
	err := validateInputs("MFI",
		input{"close", close}, input{"high", high}, input{"low", low}, input{"volume", volume})
	if err != nil {
		return nil, err
	}
	if err := validatePeriod("MFI", "period", config.Period); err != nil {
		return nil, err
	}

	m := &MFI{BaseIndicator: BaseIndicator{Config: config.IndicatorConfig}}

	typical := make([]float64, len(close))
	for i := range close {
		typical[i] = (high[i] + low[i] + close[i]) / 3.0
	}

	// raw money flow goes to the positive or negative side by the typical price move;
	// an unchanged typical price (and the first bar) feeds neither
	positive := make([]float64, len(close))
	negative := make([]float64, len(close))
	for i := 1; i < len(close); i++ {
		flow := typical[i] * volume[i]
		switch {
		case typical[i] > typical[i-1]:
			positive[i] = flow
		case typical[i] < typical[i-1]:
			negative[i] = flow
		}
	}

	minPeriods := m.minPeriods(config.Period)
	positiveSum := rollingSum(positive, config.Period, minPeriods)
	negativeSum := rollingSum(negative, config.Period, minPeriods)

	// negativeSum == 0 gives 100
	m.values = fill(oscillator(positiveSum, negativeSum), config.FillNA, 50)
	return m, nil
}

// Name returns the name of the indicator
func (m *MFI) Name() string {
	return "MFI"
}

// MoneyFlowIndex returns a copy of the money flow index series
func (m *MFI) MoneyFlowIndex() []float64 {
	return clone(m.values)
}
