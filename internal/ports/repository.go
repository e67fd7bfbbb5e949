package ports

import (
	"context"
	"time"

	"momentumScope/internal/domain"
)

// KlineRepository stores historical candles so indicator runs do not refetch them.
type KlineRepository interface {
	// SaveKlines inserts or replaces candles keyed by (symbol, interval, open time).
	// Returns the number of rows written.
	SaveKlines(ctx context.Context, klines []*domain.Kline) (int, error)
	// FindKlines returns candles for symbol/interval ordered by open time ascending.
	// A zero from or to leaves that side of the range open.
	FindKlines(ctx context.Context, symbol, interval string, from, to time.Time) ([]*domain.Kline, error)
	// Symbols lists the distinct symbols stored for an interval.
	Symbols(ctx context.Context, interval string) ([]string, error)
}
