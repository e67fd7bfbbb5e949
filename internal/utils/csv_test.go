package utils

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"momentumScope/internal/domain"
	"momentumScope/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKlinesCSV_WriteThenRead(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	klines := []*domain.Kline{
		{OpenTime: start, CloseTime: start.Add(time.Hour - time.Second), Symbol: "BTCUSDT", Interval: "1h", Open: 1, High: 3, Low: 0.5, Close: 2, Volume: 10},
		{OpenTime: start.Add(time.Hour), CloseTime: start.Add(2*time.Hour - time.Second), Symbol: "BTCUSDT", Interval: "1h", Open: 2, High: 4, Low: 1.5, Close: 3.25, Volume: 12.5},
	}
	filename := filepath.Join(t.TempDir(), "nested", "klines.csv")
	require.NoError(t, WriteKlinesToCSV(klines, filename))

	read, err := ReadKlinesFromCSV(filename, "IGNORED", "1d")
	require.NoError(t, err)
	require.Len(t, read, 2)
	for i, want := range klines {
		got := read[i]
		assert.True(t, want.OpenTime.Equal(got.OpenTime), "row %d open time", i)
		assert.True(t, want.CloseTime.Equal(got.CloseTime), "row %d close time", i)
		assert.Equal(t, want.Symbol, got.Symbol)
		assert.Equal(t, want.Interval, got.Interval)
		assert.Equal(t, []float64{want.Open, want.High, want.Low, want.Close, want.Volume},
			[]float64{got.Open, got.High, got.Low, got.Close, got.Volume})
	}
}

func TestReadKlines_FlexibleHeader(t *testing.T) {
	input := `Date,Open,High,Low,Close
2024-01-02,10,11,9,10.5
01/03/2024,10.5,12,10,11.75
`
	klines, err := ReadKlines(strings.NewReader(input), "AAPL", "1d")
	require.NoError(t, err)
	require.Len(t, klines, 2)

	assert.True(t, time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC).Equal(klines[1].OpenTime), "got %v", klines[1].OpenTime)
	assert.Equal(t, "AAPL", klines[1].Symbol)
	assert.Equal(t, "1d", klines[1].Interval)
	assert.Equal(t, 11.75, klines[1].Close)
	assert.Zero(t, klines[1].Volume, "missing volume column reads as zero")
}

func TestReadKlines_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "no time column", input: "high,low,close\n1,1,1\n"},
		{name: "no close column", input: "date,high,low\n2024-01-01,1,1\n"},
		{name: "bad number", input: "date,high,low,close\n2024-01-01,1,x,1\n"},
		{name: "bad date", input: "date,high,low,close\nnot-a-date,1,1,1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadKlines(strings.NewReader(tt.input), "X", "1d")
			require.Error(t, err)
			assert.True(t, errors.Is(err, ports.ErrMalformedData), "got %v", err)
		})
	}
}

func TestGroupSeries(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return start.Add(time.Duration(h) * time.Hour) }
	klines := []*domain.Kline{
		{OpenTime: at(1), Symbol: "ETHUSDT", Interval: "1h", Close: 21},
		{OpenTime: at(0), Symbol: "BTCUSDT", Interval: "1h", Close: 10},
		{OpenTime: at(0), Symbol: "ETHUSDT", Interval: "1h", Close: 20},
		{OpenTime: at(1), Symbol: "BTCUSDT", Interval: "1h", Close: 11},
	}

	series, err := GroupSeries(klines)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "ETHUSDT", series[0].Symbol)
	assert.Equal(t, []float64{20, 21}, series[0].Close)
	assert.Equal(t, "BTCUSDT", series[1].Symbol)
	assert.Equal(t, []float64{10, 11}, series[1].Close)

	_, err = GroupSeries(append(klines, &domain.Kline{OpenTime: at(1), Symbol: "BTCUSDT", Interval: "1h"}))
	assert.Error(t, err, "duplicate open time")
}

func TestFilterSeries(t *testing.T) {
	series := []*domain.Series{{Symbol: "BTCUSDT"}, {Symbol: "ETHUSDT"}, {Symbol: "SOLUSDT"}}
	symbolsOf := func(in []*domain.Series) []string {
		out := []string{}
		for _, s := range in {
			out = append(out, s.Symbol)
		}
		return out
	}

	tests := []struct {
		name    string
		symbols []string
		want    []string
	}{
		{name: "no selection keeps all", symbols: nil, want: []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"}},
		{name: "single symbol", symbols: []string{"ETHUSDT"}, want: []string{"ETHUSDT"}},
		{name: "several symbols", symbols: []string{"SOLUSDT", "BTCUSDT"}, want: []string{"BTCUSDT", "SOLUSDT"}},
		{name: "unknown symbol", symbols: []string{"XRPUSDT"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, symbolsOf(FilterSeries(series, tt.symbols)))
		})
	}
	assert.Len(t, series, 3, "input slice untouched")
	assert.Equal(t, "BTCUSDT", series[0].Symbol)
}

func TestWriteFrame(t *testing.T) {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	frame := &domain.Frame{Symbol: "BTCUSDT", Times: []time.Time{start, start.Add(time.Hour)}}
	frame.Add("ROC", []float64{math.NaN(), 1.5})
	frame.Add("RSI", []float64{50, 62.25})

	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, frame))

	expected := "time,ROC,RSI\n" +
		"2024-05-01T00:00:00Z,,50\n" +
		"2024-05-01T01:00:00Z,1.5,62.25\n"
	assert.Equal(t, expected, buf.String())
}
