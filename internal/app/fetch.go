package app

import (
	"context"
	"fmt"
	"time"

	"momentumScope/internal/domain"
	"momentumScope/internal/ports"
)

// FetchRequest selects which candles to download for one symbol. A positive Limit takes
// the latest Limit candles and ignores the time range.
type FetchRequest struct {
	Symbol   string
	Interval string
	Start    time.Time
	End      time.Time
	Limit    int
}

// FetchService copies candles from a remote source into the kline store.
type FetchService struct {
	source ports.KlineSource
	repo   ports.KlineRepository
	logger ports.Logger
}

// NewFetchService creates a fetch service. All dependencies are required.
func NewFetchService(source ports.KlineSource, repo ports.KlineRepository, logger ports.Logger) (*FetchService, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for FetchService")
	}
	if source == nil {
		return nil, fmt.Errorf("kline source is required: %w", ports.ErrConfigurationError)
	}
	if repo == nil {
		return nil, fmt.Errorf("kline repository is required: %w", ports.ErrConfigurationError)
	}
	return &FetchService{source: source, repo: repo, logger: logger}, nil
}

// Fetch downloads the requested candles, stores them and returns them in time order.
func (s *FetchService) Fetch(ctx context.Context, req FetchRequest) ([]*domain.Kline, error) {
	fields := map[string]interface{}{"symbol": req.Symbol, "interval": req.Interval}

	var (
		klines []*domain.Kline
		err    error
	)
	if req.Limit > 0 {
		fields["limit"] = req.Limit
		klines, err = s.source.GetKlines(ctx, req.Symbol, req.Interval, req.Limit)
	} else {
		if !req.End.After(req.Start) {
			return nil, fmt.Errorf("fetch range %s..%s is empty: %w", req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339), ports.ErrInvalidInput)
		}
		fields["from"] = req.Start.Format(time.RFC3339)
		fields["to"] = req.End.Format(time.RFC3339)
		klines, err = s.source.GetKlinesRange(ctx, req.Symbol, req.Interval, req.Start, req.End)
	}
	if err != nil {
		s.logger.Error(ctx, err, "Error fetching klines", fields)
		return nil, fmt.Errorf("fetching %s/%s: %w", req.Symbol, req.Interval, err)
	}
	if len(klines) == 0 {
		return nil, fmt.Errorf("source returned no klines for %s/%s: %w", req.Symbol, req.Interval, ports.ErrNotFound)
	}

	saved, err := s.repo.SaveKlines(ctx, klines)
	if err != nil {
		s.logger.Error(ctx, err, "Error storing klines", fields)
		return nil, fmt.Errorf("storing %s/%s: %w", req.Symbol, req.Interval, err)
	}

	fields["stored"] = saved
	s.logger.Info(ctx, "Klines fetched", fields)
	return klines, nil
}
