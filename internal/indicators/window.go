package indicators

import "math"

// Rolling aggregates over the trailing period values. NaN inputs are skipped and do not count
// as observations; an output is defined once the window holds at least minPeriods observations
// (minPeriods <= 0 means one). All helpers are single-pass.

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// windowSum keeps a running sum with add/subtract at the window boundaries.
type windowSum struct {
	sum     float64
	count   int
	nonzero int
}

func (w *windowSum) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	w.count++
	if v != 0 {
		w.nonzero++
		w.sum += v
	}
}

func (w *windowSum) remove(v float64) {
	if math.IsNaN(v) {
		return
	}
	w.count--
	if v != 0 {
		w.nonzero--
		w.sum -= v
	}
	// an all-zero window sums to exactly zero, free of subtraction residue
	if w.nonzero == 0 {
		w.sum = 0
	}
}

func rollingAggregate(values []float64, period, minPeriods int, result func(w *windowSum) float64) []float64 {
	minPeriods = atLeastOne(minPeriods)
	out := make([]float64, len(values))
	var w windowSum
	for i, v := range values {
		w.add(v)
		if i >= period {
			w.remove(values[i-period])
		}
		if w.count >= minPeriods {
			out[i] = result(&w)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func rollingSum(values []float64, period, minPeriods int) []float64 {
	return rollingAggregate(values, period, minPeriods, func(w *windowSum) float64 { return w.sum })
}

func rollingMean(values []float64, period, minPeriods int) []float64 {
	return rollingAggregate(values, period, minPeriods, func(w *windowSum) float64 {
		return w.sum / float64(w.count)
	})
}

func rollingMin(values []float64, period, minPeriods int) []float64 {
	return rollingExtreme(values, period, minPeriods, func(a, b float64) bool { return a < b })
}

func rollingMax(values []float64, period, minPeriods int) []float64 {
	return rollingExtreme(values, period, minPeriods, func(a, b float64) bool { return a > b })
}

// rollingExtreme keeps a monotonic deque of indices whose values are strictly better than
// everything behind them, so the front is always the window extreme.
func rollingExtreme(values []float64, period, minPeriods int, better func(a, b float64) bool) []float64 {
	minPeriods = atLeastOne(minPeriods)
	out := make([]float64, len(values))
	deque := make([]int, 0, min(period, len(values)))
	count := 0
	for i, v := range values {
		if !math.IsNaN(v) {
			count++
			for len(deque) > 0 && !better(values[deque[len(deque)-1]], v) {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, i)
		}
		if i >= period && !math.IsNaN(values[i-period]) {
			count--
		}
		for len(deque) > 0 && deque[0] <= i-period {
			deque = deque[1:]
		}
		if count >= minPeriods && len(deque) > 0 {
			out[i] = values[deque[0]]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// ewm is an exponentially weighted mean without bias adjustment:
// y[first] = x[first], y[t] = (1-alpha)*y[t-1] + alpha*x[t].
// Leading NaN are skipped; an interior NaN decays the old weight once more.
func ewm(values []float64, alpha float64, minPeriods int) []float64 {
	minPeriods = atLeastOne(minPeriods)
	out := make([]float64, len(values))
	weighted := math.NaN()
	oldWeight := 1.0
	observations := 0
	for i, x := range values {
		observed := !math.IsNaN(x)
		if observed {
			observations++
		}
		switch {
		case !math.IsNaN(weighted):
			oldWeight *= 1 - alpha
			if observed {
				weighted = (oldWeight*weighted + alpha*x) / (oldWeight + alpha)
				oldWeight = 1
			}
		case observed:
			weighted = x
		}
		if observations >= minPeriods {
			out[i] = weighted
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}
