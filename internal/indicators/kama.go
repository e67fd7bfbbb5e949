package indicators

import (
	"fmt"
	"math"
)

// KAMAConfig holds configuration for Kaufman's Adaptive Moving Average
type KAMAConfig struct {
	IndicatorConfig
	// FastPeriod and SlowPeriod are the EMA spans bounding the smoothing constant.
	FastPeriod int
	SlowPeriod int
}

// DefaultKAMAConfig returns KAMA(10, 2, 30).
func DefaultKAMAConfig() KAMAConfig {
	return KAMAConfig{
		IndicatorConfig: IndicatorConfig{Period: 10},
		FastPeriod:      2,
		SlowPeriod:      30,
	}
}

// KAMA implements Kaufman's Adaptive Moving Average.
//
// Each value depends on the previous KAMA, so the series is a strict left-to-right fold
// and cannot be computed window by window.
type KAMA struct {
	BaseIndicator
	config KAMAConfig
	values []float64
}

// NewKAMA validates the inputs and computes the KAMA series
func NewKAMA(close []float64, config KAMAConfig) (*KAMA, error) {
	if err := validateInputs("KAMA", input{"close", close}); err != nil {
		return nil, err
	}
	if err := validatePeriod("KAMA", "period", config.Period); err != nil {
		return nil, err
	}
	if config.FastPeriod < 1 || config.SlowPeriod < 1 {
		return nil, &ValidationError{
			Indicator: "KAMA",
			Field:     "fast/slow period",
			Reason:    fmt.Sprintf("must be >= 1, got %d/%d", config.FastPeriod, config.SlowPeriod),
		}
	}

	k := &KAMA{
		BaseIndicator: BaseIndicator{Config: config.IndicatorConfig},
		config:        config,
	}
	k.values = k.compute(close)
	if config.FillNA {
		// undefined values fall back to the close itself
		for i, v := range k.values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				k.values[i] = close[i]
			}
		}
	}
	return k, nil
}

func (k *KAMA) compute(close []float64) []float64 {
	n := k.Config.Period
	fast := spanAlpha(k.config.FastPeriod)
	slow := spanAlpha(k.config.SlowPeriod)

	changes := make([]float64, len(close))
	changes[0] = math.NaN()
	for i := 1; i < len(close); i++ {
		changes[i] = math.Abs(close[i] - close[i-1])
	}
	volatility := rollingSum(changes, n, k.minPeriods(n))

	values := nanSeries(len(close))
	// a full window seeds at n-1; with fillna the first close seeds and early
	// efficiency ratios use the history available so far
	seed := n - 1
	if k.Config.FillNA {
		seed = 0
	}
	if seed >= len(close) {
		return values
	}

	prev := close[seed]
	values[seed] = prev
	for i := seed + 1; i < len(close); i++ {
		lookback := n
		if i < n {
			lookback = i
		}
		er := efficiencyRatio(math.Abs(close[i]-close[i-lookback]), volatility[i])
		sc := smoothingConstant(er, fast, slow)
		prev = kamaStep(prev, close[i], sc)
		values[i] = prev
	}
	return values
}

// Name returns the name of the indicator
func (k *KAMA) Name() string {
	return "KAMA"
}

// KAMA returns a copy of the adaptive moving average series
func (k *KAMA) KAMA() []float64 {
	return clone(k.values)
}

// efficiencyRatio is net change over total path length; a motionless window has ratio 0.
func efficiencyRatio(direction, volatility float64) float64 {
	if volatility == 0 {
		return 0
	}
	return direction / volatility
}

func smoothingConstant(er, fast, slow float64) float64 {
	sc := er*(fast-slow) + slow
	return sc * sc
}

func kamaStep(prev, close, sc float64) float64 {
	return prev + sc*(close-prev)
}
