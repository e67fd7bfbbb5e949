package indicators

import (
	"fmt"
	"math"

	"momentumScope/internal/ports"
)

// Indicator represents a technical indicator computed over a whole price series.
type Indicator interface {
	// Name returns the name of the indicator
	Name() string

	// RequiredDataPoints returns the number of inputs needed before the first defined value
	RequiredDataPoints() int
}

// IndicatorConfig holds common configuration for indicators
type IndicatorConfig struct {
	Period int
	// FillNA replaces undefined leading and degenerate values with the indicator's neutral value.
	FillNA bool
}

// BaseIndicator provides common functionality for indicators
type BaseIndicator struct {
	Config IndicatorConfig
}

// RequiredDataPoints returns the minimum number of inputs needed for a defined value
func (b *BaseIndicator) RequiredDataPoints() int {
	return b.Config.Period
}

// minPeriods mirrors the min_periods rule: a full window normally, a single observation with fillna.
func (b *BaseIndicator) minPeriods(period int) int {
	if b.Config.FillNA {
		return 0
	}
	return period
}

// ValidationError reports inputs or parameters an indicator refuses to work with.
type ValidationError struct {
	Indicator string
	Field     string
	Reason    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Indicator, e.Field, e.Reason)
}

// Unwrap lets callers match validation failures with errors.Is(err, ports.ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ports.ErrInvalidInput
}

// input names one of an indicator's aligned series.
type input struct {
	name   string
	values []float64
}

func validateInputs(indicator string, inputs ...input) error {
	if len(inputs) == 0 {
		return &ValidationError{Indicator: indicator, Field: "input", Reason: "no series given"}
	}
	n := len(inputs[0].values)
	for _, in := range inputs {
		if len(in.values) == 0 {
			return &ValidationError{Indicator: indicator, Field: in.name, Reason: "series is empty"}
		}
		if len(in.values) != n {
			return &ValidationError{
				Indicator: indicator,
				Field:     in.name,
				Reason:    fmt.Sprintf("length %d does not match %s length %d", len(in.values), inputs[0].name, n),
			}
		}
	}
	return nil
}

func validatePeriod(indicator, field string, period int) error {
	if period < 1 {
		return &ValidationError{Indicator: indicator, Field: field, Reason: fmt.Sprintf("window must be >= 1, got %d", period)}
	}
	return nil
}

// fill replaces NaN and ±Inf with value in place when enabled.
func fill(values []float64, enabled bool, value float64) []float64 {
	if !enabled {
		return values
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			values[i] = value
		}
	}
	return values
}

func nanSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func clone(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)
	return out
}

// oscillator turns a ratio series into 100 - 100/(1+ratio), which is 100 when the denominator is zero.
func oscillator(numerator, denominator []float64) []float64 {
	out := make([]float64, len(numerator))
	for i := range numerator {
		num, den := numerator[i], denominator[i]
		switch {
		case math.IsNaN(num) || math.IsNaN(den):
			out[i] = math.NaN()
		case den == 0:
			out[i] = 100
		default:
			out[i] = 100 - 100/(1+num/den)
		}
	}
	return out
}
