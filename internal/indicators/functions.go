package indicators

// One-call forms of each indicator. They build the indicator with the given windows and
// return its output series directly.

// ROCSeries returns the rate of change of close over n periods.
func ROCSeries(close []float64, n int, fillna bool) ([]float64, error) {
	r, err := NewROC(close, ROCConfig{IndicatorConfig: IndicatorConfig{Period: n, FillNA: fillna}})
	if err != nil {
		return nil, err
	}
	return r.ROC(), nil
}

// RSISeries returns the relative strength index of close over n periods.
func RSISeries(close []float64, n int, fillna bool) ([]float64, error) {
	cfg := DefaultRSIConfig()
	cfg.Period, cfg.FillNA = n, fillna
	r, err := NewRSI(close, cfg)
	if err != nil {
		return nil, err
	}
	return r.RSI(), nil
}

// MFISeries returns the money flow index over n periods.
func MFISeries(high, low, close, volume []float64, n int, fillna bool) ([]float64, error) {
	m, err := NewMFI(high, low, close, volume, MFIConfig{IndicatorConfig: IndicatorConfig{Period: n, FillNA: fillna}})
	if err != nil {
		return nil, err
	}
	return m.MoneyFlowIndex(), nil
}

// UOSeries returns the ultimate oscillator for three windows and their weights.
func UOSeries(high, low, close []float64, short, medium, long int, weightShort, weightMedium, weightLong float64, fillna bool) ([]float64, error) {
	u, err := NewUltimateOscillator(high, low, close, UltimateOscillatorConfig{
		Short: short, Medium: medium, Long: long,
		WeightShort: weightShort, WeightMedium: weightMedium, WeightLong: weightLong,
		FillNA: fillna,
	})
	if err != nil {
		return nil, err
	}
	return u.UltimateOscillator(), nil
}

func newStochastic(high, low, close []float64, n, d int, fillna bool) (*Stochastic, error) {
	return NewStochastic(high, low, close, StochasticConfig{
		IndicatorConfig: IndicatorConfig{Period: n, FillNA: fillna},
		SignalPeriod:    d,
	})
}

// StochSeries returns the stochastic %K over n periods. d is validated like the signal
// window even though %K does not use it.
func StochSeries(high, low, close []float64, n, d int, fillna bool) ([]float64, error) {
	s, err := newStochastic(high, low, close, n, d, fillna)
	if err != nil {
		return nil, err
	}
	return s.Stoch(), nil
}

// StochSignalSeries returns the d-period SMA of the n-period stochastic %K.
func StochSignalSeries(high, low, close []float64, n, d int, fillna bool) ([]float64, error) {
	s, err := newStochastic(high, low, close, n, d, fillna)
	if err != nil {
		return nil, err
	}
	return s.StochSignal(), nil
}

// WilliamsRSeries returns Williams %R over lbp periods.
func WilliamsRSeries(high, low, close []float64, lbp int, fillna bool) ([]float64, error) {
	w, err := NewWilliamsR(high, low, close, WilliamsRConfig{IndicatorConfig: IndicatorConfig{Period: lbp, FillNA: fillna}})
	if err != nil {
		return nil, err
	}
	return w.WilliamsR(), nil
}

// KAMASeries returns the adaptive moving average with efficiency window n and EMA spans
// fast and slow.
func KAMASeries(close []float64, n, fast, slow int, fillna bool) ([]float64, error) {
	k, err := NewKAMA(close, KAMAConfig{
		IndicatorConfig: IndicatorConfig{Period: n, FillNA: fillna},
		FastPeriod:      fast,
		SlowPeriod:      slow,
	})
	if err != nil {
		return nil, err
	}
	return k.KAMA(), nil
}

// TSISeries returns the true strength index smoothed by EMA(long) then EMA(short).
func TSISeries(close []float64, long, short int, fillna bool) ([]float64, error) {
	t, err := NewTSI(close, TSIConfig{LongPeriod: long, ShortPeriod: short, FillNA: fillna})
	if err != nil {
		return nil, err
	}
	return t.TSI(), nil
}
