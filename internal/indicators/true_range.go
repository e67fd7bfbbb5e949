package indicators

import (
	"math"
)

// trueRangeParts computes buying pressure and true range against the previous close.
// Index 0 has no previous close and stays NaN in both series.
func trueRangeParts(high, low, close []float64) (buyingPressure, trueRange []float64) {
	buyingPressure = make([]float64, len(close))
	trueRange = make([]float64, len(close))
	buyingPressure[0] = math.NaN()
	trueRange[0] = math.NaN()

	for i := 1; i < len(close); i++ {
		prevClose := close[i-1]
		trueLow := math.Min(low[i], prevClose)
		trueHigh := math.Max(high[i], prevClose)

		buyingPressure[i] = close[i] - trueLow
		// greatest of high-low, |high-prevClose| and |low-prevClose|
		trueRange[i] = trueHigh - trueLow
	}
	return buyingPressure, trueRange
}
