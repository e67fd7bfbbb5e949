package domain

import (
	"errors"
	"fmt"
	"time"
)

// Series is the column-oriented, index-aligned input of the indicators.
// Every slice has the same length; Times may be nil when the caller has no timestamps.
type Series struct {
	Symbol   string
	Interval string
	Times    []time.Time
	High     []float64
	Low      []float64
	Close    []float64
	Volume   []float64
}

// NewSeriesFromKlines splits candles into aligned columns.
// Klines must already be ordered by open time.
func NewSeriesFromKlines(symbol, interval string, klines []*Kline) (*Series, error) {
	if len(klines) == 0 {
		return nil, errors.New("no klines to build series from")
	}
	s := &Series{
		Symbol:   symbol,
		Interval: interval,
		Times:    make([]time.Time, len(klines)),
		High:     make([]float64, len(klines)),
		Low:      make([]float64, len(klines)),
		Close:    make([]float64, len(klines)),
		Volume:   make([]float64, len(klines)),
	}
	for i, k := range klines {
		if k == nil {
			return nil, fmt.Errorf("nil kline at index %d", i)
		}
		if i > 0 && !k.OpenTime.After(klines[i-1].OpenTime) {
			return nil, fmt.Errorf("klines not strictly ordered at index %d (%s after %s)",
				i, k.OpenTime.Format(time.RFC3339), klines[i-1].OpenTime.Format(time.RFC3339))
		}
		s.Times[i] = k.OpenTime
		s.High[i] = k.High
		s.Low[i] = k.Low
		s.Close[i] = k.Close
		s.Volume[i] = k.Volume
	}
	return s, nil
}

// Len returns the number of time steps.
func (s *Series) Len() int {
	return len(s.Close)
}

// Validate checks that the series is non-empty and every column is aligned.
func (s *Series) Validate() error {
	n := len(s.Close)
	if n == 0 {
		return errors.New("series has no close values")
	}
	cols := []struct {
		name string
		len  int
	}{{"high", len(s.High)}, {"low", len(s.Low)}, {"volume", len(s.Volume)}}
	for _, c := range cols {
		if c.len != n {
			return fmt.Errorf("series column %s has %d values, close has %d", c.name, c.len, n)
		}
	}
	if s.Times != nil && len(s.Times) != n {
		return fmt.Errorf("series has %d timestamps for %d values", len(s.Times), n)
	}
	return nil
}
