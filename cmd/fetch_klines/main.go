package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"momentumScope/config"
	"momentumScope/internal/adapters/binanceclient"
	"momentumScope/internal/adapters/logger"
	"momentumScope/internal/adapters/sqlite"
	"momentumScope/internal/app"
	"momentumScope/internal/domain"
	"momentumScope/internal/ports"
	"momentumScope/internal/utils"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}
	if len(cfg.Symbols) == 0 {
		log.Fatalf("FATAL: SYMBOLS must name at least one symbol to fetch")
	}

	// 2. Initialize Logger
	appLogger := logger.NewLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Kline Source (Binance Adapter)
	var source ports.KlineSource
	source, err = binanceclient.New(binanceclient.Config{
		APIKey:     cfg.APIKey,
		SecretKey:  cfg.SecretKey,
		UseTestnet: cfg.IsTestnet,
		Logger:     appLogger,
	})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize Binance client")
		log.Fatalf("FATAL: Failed to initialize Binance client: %v", err)
	}
	if err := source.Ping(ctx); err != nil {
		log.Fatalf("FATAL: Binance API unreachable: %v", err)
	}

	// 4. Initialize Repository (Database Adapter)
	repo, err := sqlite.NewRepository(sqlite.Config{
		DBPath: cfg.DBPath,
		Logger: appLogger,
	})
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize database repository: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			appLogger.Error(context.Background(), err, "Error closing database repository")
		}
	}()

	// 5. Initialize Fetch Service
	fetcher, err := app.NewFetchService(source, repo, appLogger)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize fetch service: %v", err)
	}

	// 6. Fetch, store and export each symbol
	end := time.Now().UTC()
	start := end.AddDate(0, 0, -cfg.FetchDays)
	for _, symbol := range cfg.Symbols {
		req := app.FetchRequest{Symbol: symbol, Interval: cfg.Interval, Start: start, End: end, Limit: cfg.FetchLimit}
		klines, err := fetcher.Fetch(ctx, req)
		if err != nil {
			log.Fatalf("Error fetching klines for %s: %v", symbol, err)
		}

		filename := filepath.Join(cfg.OutputDir, exportName(symbol, cfg.Interval, klines))
		if err := utils.WriteKlinesToCSV(klines, filename); err != nil {
			appLogger.Error(ctx, err, "Error writing CSV", map[string]interface{}{"symbol": symbol})
			log.Fatalf("Error writing CSV: %v", err)
		}
		appLogger.Info(ctx, "Exported klines", map[string]interface{}{"symbol": symbol, "count": len(klines), "filename": filename})
	}
}

// exportName names a CSV export after the span of candles it holds.
func exportName(symbol, interval string, klines []*domain.Kline) string {
	first, last := klines[0].OpenTime, klines[len(klines)-1].OpenTime
	return fmt.Sprintf("%s_%s_%s_to_%s.csv", symbol, interval, first.Format("20060102"), last.Format("20060102"))
}
