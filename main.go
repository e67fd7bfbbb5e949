package main

import (
	"context"
	"fmt"
	"log" // Use standard log only for initial fatal errors before logger is set up
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"momentumScope/config"
	"momentumScope/internal/adapters/logger"
	"momentumScope/internal/adapters/sqlite"
	"momentumScope/internal/app"
	"momentumScope/internal/domain"
	"momentumScope/internal/metrics"
	"momentumScope/internal/ports"
	"momentumScope/internal/utils"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewLogger(cfg.LogLevel)
	appLogger.Info(context.Background(), "Logger initialized", map[string]interface{}{"level": cfg.LogLevel.String()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Initialize Metrics
	m := metrics.NewMetrics()
	if cfg.MetricsAddr != "" {
		server := metrics.NewServer(cfg.MetricsAddr, m, appLogger)
		server.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				appLogger.Error(context.Background(), err, "Error stopping metrics server")
			}
		}()
	}

	// 4. Initialize Repository (only when candles come from the store)
	var repo *sqlite.Repository
	if cfg.InputCSV == "" {
		repo, err = sqlite.NewRepository(sqlite.Config{
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
	}

	// 5. Initialize Application Service
	var service *app.ComputeService
	if repo != nil {
		service, err = app.NewComputeService(cfg.ComputeConfig(), appLogger, repo, m)
	} else {
		service, err = app.NewComputeService(cfg.ComputeConfig(), appLogger, nil, m)
	}
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to initialize compute service")
		log.Fatalf("FATAL: Failed to initialize compute service: %v", err)
	}

	// 6. Compute
	frames, err := compute(ctx, cfg, service)
	if err != nil {
		if app.IsCanceled(err) {
			appLogger.Warn(context.Background(), "Computation interrupted")
			return
		}
		appLogger.Error(context.Background(), err, "Computation failed")
		log.Fatalf("FATAL: Computation failed: %v", err)
	}

	// 7. Write one CSV per series
	for _, frame := range frames {
		filename := filepath.Join(cfg.OutputDir, fmt.Sprintf("%s_%s_momentum.csv", frame.Symbol, frame.Interval))
		if err := utils.WriteFrameToCSV(frame, filename); err != nil {
			appLogger.Error(context.Background(), err, "Error writing indicator CSV", map[string]interface{}{"symbol": frame.Symbol})
			log.Fatalf("FATAL: Error writing indicator CSV: %v", err)
		}
		appLogger.Info(ctx, "Saved to", map[string]interface{}{"filename": filename, "rows": len(frame.Times)})
	}

	appLogger.Info(context.Background(), "Application finished gracefully.")
}

// compute runs the service over the input CSV when one is configured, otherwise over the store.
func compute(ctx context.Context, cfg *config.Config, service *app.ComputeService) ([]*domain.Frame, error) {
	if cfg.InputCSV == "" {
		return service.ComputeStored(ctx, cfg.Symbols, cfg.Interval)
	}

	// rows without a symbol column are labelled after the file
	symbol := strings.TrimSuffix(filepath.Base(cfg.InputCSV), filepath.Ext(cfg.InputCSV))
	if len(cfg.Symbols) == 1 {
		symbol = cfg.Symbols[0]
	}
	klines, err := utils.ReadKlinesFromCSV(cfg.InputCSV, symbol, cfg.Interval)
	if err != nil {
		return nil, err
	}
	series, err := utils.GroupSeries(klines)
	if err != nil {
		return nil, err
	}
	selected := utils.FilterSeries(series, cfg.Symbols)
	if len(selected) == 0 {
		return nil, fmt.Errorf("no series in %s match SYMBOLS %v: %w", cfg.InputCSV, cfg.Symbols, ports.ErrNotFound)
	}
	return service.ComputeBatch(ctx, selected)
}
