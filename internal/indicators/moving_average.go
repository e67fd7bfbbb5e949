package indicators

import "fmt"

// MovingAverageType defines the type of moving average
type MovingAverageType string

const (
	// SimpleMovingAverage represents a simple moving average
	SimpleMovingAverage MovingAverageType = "SMA"
	// ExponentialMovingAverage represents an exponential moving average
	ExponentialMovingAverage MovingAverageType = "EMA"
)

// MovingAverageConfig holds configuration for moving average indicators
type MovingAverageConfig struct {
	IndicatorConfig
	Type MovingAverageType
}

// MovingAverage implements both SMA and EMA over a value series
type MovingAverage struct {
	BaseIndicator
	config MovingAverageConfig
	values []float64
}

// NewMovingAverage validates the inputs and computes the moving average series
func NewMovingAverage(values []float64, config MovingAverageConfig) (*MovingAverage, error) {
	name := string(config.Type)
	if err := validateInputs(name, input{"values", values}); err != nil {
		return nil, err
	}
	if err := validatePeriod(name, "period", config.Period); err != nil {
		return nil, err
	}
	m := &MovingAverage{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
	switch config.Type {
	case SimpleMovingAverage:
		m.values = SMA(values, config.Period, m.minPeriods(config.Period))
	case ExponentialMovingAverage:
		m.values = EMA(values, config.Period, m.minPeriods(config.Period))
	default:
		return nil, &ValidationError{Indicator: "MA", Field: "type", Reason: fmt.Sprintf("unsupported moving average type %q", config.Type)}
	}
	return m, nil
}

// Name returns the name of the indicator
func (m *MovingAverage) Name() string {
	return string(m.config.Type)
}

// Values returns a copy of the moving average series
func (m *MovingAverage) Values() []float64 {
	return clone(m.values)
}

// SMA is the rolling arithmetic mean over period values.
func SMA(values []float64, period, minPeriods int) []float64 {
	return rollingMean(values, period, minPeriods)
}

// EMA is the exponential moving average with span period, alpha = 2/(period+1),
// seeded with the first observation instead of an SMA.
func EMA(values []float64, period, minPeriods int) []float64 {
	return ewm(values, spanAlpha(period), minPeriods)
}

// spanAlpha converts an EMA span to its smoothing factor. The sum is taken in float64
// so the largest int span still yields a small positive alpha.
func spanAlpha(span int) float64 {
	return 2.0 / (float64(span) + 1)
}
