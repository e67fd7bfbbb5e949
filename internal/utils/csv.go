package utils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"momentumScope/internal/domain"
	"momentumScope/internal/ports"

	"github.com/araddon/dateparse"
)

var klineHeader = []string{"open_time", "close_time", "symbol", "interval", "open", "high", "low", "close", "volume"}

// timeColumns are the accepted names of the bar timestamp column, in order of preference.
var timeColumns = []string{"open_time", "date", "time", "timestamp"}

// WriteKlinesToCSV writes candles with the header open_time,close_time,symbol,interval,open,high,low,close,volume.
func WriteKlinesToCSV(klines []*domain.Kline, filename string) error {
	file, err := createFile(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(klineHeader); err != nil {
		return err
	}
	for _, k := range klines {
		if err := writer.Write([]string{
			k.OpenTime.Format(time.RFC3339),
			k.CloseTime.Format(time.RFC3339),
			k.Symbol,
			k.Interval,
			formatFloat(k.Open),
			formatFloat(k.High),
			formatFloat(k.Low),
			formatFloat(k.Close),
			formatFloat(k.Volume),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// ReadKlinesFromCSV loads candles from a header-driven CSV file. Column names are matched
// case-insensitively; symbol and interval columns are optional and fall back to the given values.
func ReadKlinesFromCSV(filename, symbol, interval string) ([]*domain.Kline, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open kline csv '%s': %w", filename, err)
	}
	defer file.Close()

	klines, err := ReadKlines(file, symbol, interval)
	if err != nil {
		return nil, fmt.Errorf("failed to read kline csv '%s': %w", filename, err)
	}
	return klines, nil
}

// ReadKlines parses candles from r. The time column may use any layout dateparse understands,
// including unix milliseconds. High, low and close are required; a missing volume column reads as 0.
func ReadKlines(r io.Reader, symbol, interval string) ([]*domain.Kline, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty file: %w", ports.ErrMalformedData)
		}
		return nil, fmt.Errorf("reading header: %w: %w", ports.ErrMalformedData, err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	timeCol := -1
	for _, name := range timeColumns {
		if i, ok := index[name]; ok {
			timeCol = i
			break
		}
	}
	if timeCol < 0 {
		return nil, fmt.Errorf("no time column (want one of %v): %w", timeColumns, ports.ErrMalformedData)
	}
	for _, required := range []string{"high", "low", "close"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing required column %q: %w", required, ports.ErrMalformedData)
		}
	}

	var klines []*domain.Kline
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %w", line, ports.ErrMalformedData, err)
		}

		k := &domain.Kline{Symbol: symbol, Interval: interval}
		k.OpenTime, err = dateparse.ParseIn(strings.TrimSpace(record[timeCol]), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("line %d: parsing time '%s': %w: %w", line, record[timeCol], ports.ErrMalformedData, err)
		}
		if i, ok := index["close_time"]; ok && record[i] != "" {
			if k.CloseTime, err = dateparse.ParseIn(strings.TrimSpace(record[i]), time.UTC); err != nil {
				return nil, fmt.Errorf("line %d: parsing close_time '%s': %w: %w", line, record[i], ports.ErrMalformedData, err)
			}
		}
		if i, ok := index["symbol"]; ok && record[i] != "" {
			k.Symbol = record[i]
		}
		if i, ok := index["interval"]; ok && record[i] != "" {
			k.Interval = record[i]
		}

		fields := []struct {
			name string
			dst  *float64
		}{
			{"open", &k.Open},
			{"high", &k.High},
			{"low", &k.Low},
			{"close", &k.Close},
			{"volume", &k.Volume},
		}
		for _, f := range fields {
			i, ok := index[f.name]
			if !ok {
				continue
			}
			v, err := parseFloat(record[i])
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing %s '%s': %w: %w", line, f.name, record[i], ports.ErrMalformedData, err)
			}
			*f.dst = v
		}
		klines = append(klines, k)
	}
	return klines, nil
}

// GroupSeries splits candles by symbol and interval, orders each group by open time and
// builds one Series per group. Groups keep the order in which they first appear.
func GroupSeries(klines []*domain.Kline) ([]*domain.Series, error) {
	type key struct{ symbol, interval string }
	var order []key
	groups := make(map[key][]*domain.Kline)
	for _, k := range klines {
		id := key{k.Symbol, k.Interval}
		if _, seen := groups[id]; !seen {
			order = append(order, id)
		}
		groups[id] = append(groups[id], k)
	}

	series := make([]*domain.Series, 0, len(order))
	for _, id := range order {
		group := groups[id]
		sort.SliceStable(group, func(i, j int) bool { return group[i].OpenTime.Before(group[j].OpenTime) })
		s, err := domain.NewSeriesFromKlines(id.symbol, id.interval, group)
		if err != nil {
			return nil, fmt.Errorf("symbol %s: %w: %w", id.symbol, ports.ErrMalformedData, err)
		}
		series = append(series, s)
	}
	return series, nil
}

// FilterSeries keeps the series whose symbol is listed. An empty list keeps everything.
func FilterSeries(series []*domain.Series, symbols []string) []*domain.Series {
	if len(symbols) == 0 {
		return series
	}
	wanted := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		wanted[s] = true
	}
	kept := make([]*domain.Series, 0, len(series))
	for _, s := range series {
		if wanted[s.Symbol] {
			kept = append(kept, s)
		}
	}
	return kept
}

// WriteFrameToCSV writes a frame as time,<column>... with undefined values as empty cells.
func WriteFrameToCSV(frame *domain.Frame, filename string) error {
	file, err := createFile(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteFrame(file, frame); err != nil {
		return fmt.Errorf("failed to write frame csv '%s': %w", filename, err)
	}
	return nil
}

// WriteFrame writes frame to w in the WriteFrameToCSV layout.
func WriteFrame(w io.Writer, frame *domain.Frame) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(append([]string{"time"}, frame.Names()...)); err != nil {
		return err
	}

	rows := 0
	for _, c := range frame.Columns {
		if len(c.Values) > rows {
			rows = len(c.Values)
		}
	}
	record := make([]string, len(frame.Columns)+1)
	for i := 0; i < rows; i++ {
		record[0] = strconv.Itoa(i)
		if i < len(frame.Times) {
			record[0] = frame.Times[i].Format(time.RFC3339)
		}
		for j, c := range frame.Columns {
			record[j+1] = ""
			if i < len(c.Values) && !math.IsNaN(c.Values[i]) {
				record[j+1] = formatFloat(c.Values[i])
			}
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func createFile(filename string) (*os.File, error) {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}
	return os.Create(filename)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}
