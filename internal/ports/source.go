package ports

import (
	"context"
	"time"

	"momentumScope/internal/domain"
)

// KlineSource defines a remote provider of historical candlestick data.
type KlineSource interface {
	// Ping checks the connectivity to the provider.
	Ping(ctx context.Context) error

	// GetKlines retrieves the most recent klines for the given symbol, up to limit.
	GetKlines(ctx context.Context, symbol, interval string, limit int) ([]*domain.Kline, error)

	// GetKlinesRange pages through all klines between start and end.
	GetKlinesRange(ctx context.Context, symbol, interval string, start, end time.Time) ([]*domain.Kline, error)
}
