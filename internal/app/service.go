package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"momentumScope/internal/domain"
	"momentumScope/internal/indicators"
	"momentumScope/internal/metrics"
	"momentumScope/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Column names of a computed frame, in output order.
const (
	ColumnROC         = "ROC"
	ColumnRSI         = "RSI"
	ColumnMFI         = "MFI"
	ColumnUO          = "UO"
	ColumnStoch       = "STOCH"
	ColumnStochSignal = "STOCH_SIGNAL"
	ColumnWilliamsR   = "WILLR"
	ColumnKAMA        = "KAMA"
	ColumnTSI         = "TSI"
)

// Config selects the parameters of every indicator and the batch parallelism.
type Config struct {
	ROC       indicators.ROCConfig
	RSI       indicators.RSIConfig
	MFI       indicators.MFIConfig
	UO        indicators.UltimateOscillatorConfig
	Stoch     indicators.StochasticConfig
	WilliamsR indicators.WilliamsRConfig
	KAMA      indicators.KAMAConfig
	TSI       indicators.TSIConfig
	// Workers bounds the number of series computed concurrently; <= 0 means GOMAXPROCS.
	Workers int
}

// DefaultConfig returns the reference parameters of every indicator.
func DefaultConfig(fillna bool) Config {
	cfg := Config{
		ROC:       indicators.DefaultROCConfig(),
		RSI:       indicators.DefaultRSIConfig(),
		MFI:       indicators.DefaultMFIConfig(),
		UO:        indicators.DefaultUltimateOscillatorConfig(),
		Stoch:     indicators.DefaultStochasticConfig(),
		WilliamsR: indicators.DefaultWilliamsRConfig(),
		KAMA:      indicators.DefaultKAMAConfig(),
		TSI:       indicators.DefaultTSIConfig(),
	}
	cfg.SetFillNA(fillna)
	return cfg
}

// SetFillNA switches fillna on or off for every indicator.
func (c *Config) SetFillNA(fillna bool) {
	c.ROC.FillNA = fillna
	c.RSI.FillNA = fillna
	c.MFI.FillNA = fillna
	c.UO.FillNA = fillna
	c.Stoch.FillNA = fillna
	c.WilliamsR.FillNA = fillna
	c.KAMA.FillNA = fillna
	c.TSI.FillNA = fillna
}

// step computes the columns of one indicator over a series.
type step struct {
	name string
	run  func(s *domain.Series) ([]domain.Column, error)
}

// ComputeService runs the configured indicator set over price series.
type ComputeService struct {
	cfg     Config
	logger  ports.Logger
	repo    ports.KlineRepository
	metrics *metrics.Metrics
	steps   []step
}

// NewComputeService creates a compute service. repo and m may be nil when stored
// series and metrics are not needed.
func NewComputeService(cfg Config, logger ports.Logger, repo ports.KlineRepository, m *metrics.Metrics) (*ComputeService, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for ComputeService")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	s := &ComputeService{cfg: cfg, logger: logger, repo: repo, metrics: m}
	s.steps = s.buildSteps()

	// a one-bar sample runs every constructor's parameter checks before any real data arrives
	sample := &domain.Series{High: []float64{1}, Low: []float64{1}, Close: []float64{1}, Volume: []float64{1}}
	for _, st := range s.steps {
		if _, err := st.run(sample); err != nil {
			return nil, fmt.Errorf("invalid %s configuration: %w: %w", st.name, ports.ErrConfigurationError, err)
		}
	}
	return s, nil
}

func (s *ComputeService) buildSteps() []step {
	cfg := s.cfg
	return []step{
		{name: ColumnROC, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewROC(in.Close, cfg.ROC)
			if err != nil {
				return nil, err
			}
			return []domain.Column{{Name: ColumnROC, Values: ind.ROC()}}, nil
		}},
		{name: ColumnRSI, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewRSI(in.Close, cfg.RSI)
			if err != nil {
				return nil, err
			}
			return []domain.Column{{Name: ColumnRSI, Values: ind.RSI()}}, nil
		}},
		{name: ColumnMFI, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewMFI(in.High, in.Low, in.Close, in.Volume, cfg.MFI)
			if err != nil {
				return nil, err
			}
			return []domain.Column{{Name: ColumnMFI, Values: ind.MoneyFlowIndex()}}, nil
		}},
		{name: ColumnUO, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewUltimateOscillator(in.High, in.Low, in.Close, cfg.UO)
			if err != nil {
				return nil, err
			}
			return []domain.Column{{Name: ColumnUO, Values: ind.UltimateOscillator()}}, nil
		}},
		{name: ColumnStoch, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewStochastic(in.High, in.Low, in.Close, cfg.Stoch)
			if err != nil {
				return nil, err
			}
			return []domain.Column{
				{Name: ColumnStoch, Values: ind.Stoch()},
				{Name: ColumnStochSignal, Values: ind.StochSignal()},
			}, nil
		}},
		{name: ColumnWilliamsR, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewWilliamsR(in.High, in.Low, in.Close, cfg.WilliamsR)
			if err != nil {
				return nil, err
			}
			return []domain.Column{{Name: ColumnWilliamsR, Values: ind.WilliamsR()}}, nil
		}},
		{name: ColumnKAMA, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewKAMA(in.Close, cfg.KAMA)
			if err != nil {
				return nil, err
			}
			return []domain.Column{{Name: ColumnKAMA, Values: ind.KAMA()}}, nil
		}},
		{name: ColumnTSI, run: func(in *domain.Series) ([]domain.Column, error) {
			ind, err := indicators.NewTSI(in.Close, cfg.TSI)
			if err != nil {
				return nil, err
			}
			return []domain.Column{{Name: ColumnTSI, Values: ind.TSI()}}, nil
		}},
	}
}

// Compute runs every indicator over series and returns the columns in a fixed order:
// ROC, RSI, MFI, UO, STOCH, STOCH_SIGNAL, WILLR, KAMA, TSI.
func (s *ComputeService) Compute(ctx context.Context, series *domain.Series) (*domain.Frame, error) {
	if series == nil {
		return nil, fmt.Errorf("nil series: %w", ports.ErrInvalidInput)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("series %s: %w: %w", series.Symbol, ports.ErrInvalidInput, err)
	}

	frame := &domain.Frame{
		Symbol:   series.Symbol,
		Interval: series.Interval,
		Times:    series.Times,
	}
	for _, st := range s.steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("compute %s canceled: %w: %w", series.Symbol, ports.ErrContextCanceled, err)
		}
		start := time.Now()
		columns, err := st.run(series)
		if err != nil {
			s.metrics.IndicatorFailed(st.name)
			s.logger.Error(ctx, err, "Indicator computation failed", map[string]interface{}{"symbol": series.Symbol, "indicator": st.name})
			return nil, fmt.Errorf("series %s: %s: %w", series.Symbol, st.name, err)
		}
		elapsed := time.Since(start)
		for _, c := range columns {
			s.metrics.ObserveIndicator(c.Name, elapsed, definedCount(c.Values))
			frame.Add(c.Name, c.Values)
		}
	}

	s.metrics.SeriesDone()
	s.logger.Debug(ctx, "Series computed", map[string]interface{}{"symbol": series.Symbol, "bars": series.Len()})
	return frame, nil
}

// ComputeBatch computes every series concurrently, bounded by Workers. Frames keep the
// order of the input; the first failure cancels the remaining work.
func (s *ComputeService) ComputeBatch(ctx context.Context, series []*domain.Series) ([]*domain.Frame, error) {
	frames := make([]*domain.Frame, len(series))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)

	for i, in := range series {
		i, in := i, in
		g.Go(func() error {
			frame, err := s.Compute(gctx, in)
			if err != nil {
				return err
			}
			frames[i] = frame
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch canceled: %w: %w", ports.ErrContextCanceled, err)
	}

	s.logger.Info(ctx, "Batch computed", map[string]interface{}{"series": len(series), "workers": s.cfg.Workers})
	return frames, nil
}

// ComputeStored loads each symbol's candles for interval from the repository and computes
// them as a batch. An empty symbol list means every symbol stored for the interval.
func (s *ComputeService) ComputeStored(ctx context.Context, symbols []string, interval string) ([]*domain.Frame, error) {
	if s.repo == nil {
		return nil, fmt.Errorf("no kline repository configured: %w", ports.ErrConfigurationError)
	}
	if len(symbols) == 0 {
		stored, err := s.repo.Symbols(ctx, interval)
		if err != nil {
			return nil, fmt.Errorf("listing stored symbols: %w", err)
		}
		if len(stored) == 0 {
			return nil, fmt.Errorf("no symbols stored for interval %s: %w", interval, ports.ErrNotFound)
		}
		symbols = stored
	}

	series := make([]*domain.Series, 0, len(symbols))
	for _, symbol := range symbols {
		klines, err := s.repo.FindKlines(ctx, symbol, interval, time.Time{}, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("loading %s/%s: %w", symbol, interval, err)
		}
		if len(klines) == 0 {
			return nil, fmt.Errorf("no klines stored for %s/%s: %w", symbol, interval, ports.ErrNotFound)
		}
		in, err := domain.NewSeriesFromKlines(symbol, interval, klines)
		if err != nil {
			return nil, fmt.Errorf("building series %s/%s: %w: %w", symbol, interval, ports.ErrMalformedData, err)
		}
		series = append(series, in)
	}
	return s.ComputeBatch(ctx, series)
}

// IsCanceled reports whether err stems from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, ports.ErrContextCanceled) || errors.Is(err, context.Canceled)
}

func definedCount(values []float64) int {
	n := 0
	for _, v := range values {
		if !math.IsNaN(v) {
			n++
		}
	}
	return n
}
