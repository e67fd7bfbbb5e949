package indicators

import (
	"math"
	"math/rand"
)

// randomWalk returns n closes starting at start with unit-ish steps, kept positive.
func randomWalk(r *rand.Rand, n int, start float64) []float64 {
	close := make([]float64, n)
	price := start
	for i := range close {
		price = math.Max(1, price+r.NormFloat64())
		close[i] = price
	}
	return close
}

type ohlcv struct {
	high, low, close, volume []float64
}

// randomBars wraps a random walk into bars whose high/low enclose the close.
func randomBars(r *rand.Rand, n int) ohlcv {
	bars := ohlcv{close: randomWalk(r, n, 100)}
	bars.high = make([]float64, n)
	bars.low = make([]float64, n)
	bars.volume = make([]float64, n)
	for i, c := range bars.close {
		bars.high[i] = c + r.Float64()*2
		bars.low[i] = c - r.Float64()*2
		bars.volume[i] = 1000 + float64(r.Intn(9000))
	}
	return bars
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
