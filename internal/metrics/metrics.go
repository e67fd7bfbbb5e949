package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"momentumScope/internal/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for indicator computation.
type Metrics struct {
	ComputeDuration *prometheus.HistogramVec // labels: indicator
	ValuesTotal     *prometheus.CounterVec   // labels: indicator
	SeriesProcessed prometheus.Counter
	ComputeErrors   *prometheus.CounterVec // labels: indicator
	gatherer        prometheus.Gatherer
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return NewMetricsWith(reg, reg)
}

// NewMetricsWith registers the collectors on reg; gatherer backs the /metrics handler.
func NewMetricsWith(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		ComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "momentum_indicator_compute_duration_seconds",
			Help:    "Indicator compute latency per series",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"indicator"}),
		ValuesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "momentum_indicator_values_total",
			Help: "Total defined indicator values computed",
		}, []string{"indicator"}),
		SeriesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "momentum_series_processed_total",
			Help: "Total input series run through the indicator set",
		}),
		ComputeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "momentum_compute_errors_total",
			Help: "Indicator computations rejected by validation",
		}, []string{"indicator"}),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.ComputeDuration,
		m.ValuesTotal,
		m.SeriesProcessed,
		m.ComputeErrors,
	)
	return m
}

// ObserveIndicator records one indicator run over a series.
func (m *Metrics) ObserveIndicator(indicator string, elapsed time.Duration, defined int) {
	if m == nil {
		return
	}
	m.ComputeDuration.WithLabelValues(indicator).Observe(elapsed.Seconds())
	m.ValuesTotal.WithLabelValues(indicator).Add(float64(defined))
}

// IndicatorFailed counts a rejected indicator computation.
func (m *Metrics) IndicatorFailed(indicator string) {
	if m == nil {
		return
	}
	m.ComputeErrors.WithLabelValues(indicator).Inc()
}

// SeriesDone counts a fully processed series.
func (m *Metrics) SeriesDone() {
	if m == nil {
		return
	}
	m.SeriesProcessed.Inc()
}

// Handler exposes the registered collectors in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Server runs an HTTP server exposing /metrics.
type Server struct {
	addr   string
	srv    *http.Server
	logger ports.Logger
}

// NewServer creates a metrics server for m.
func NewServer(addr string, m *Metrics, logger ports.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &Server{
		addr:   addr,
		logger: logger,
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.logger.Info(context.Background(), "Metrics server listening", map[string]interface{}{"addr": s.addr})
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error(context.Background(), err, "Metrics server stopped")
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
