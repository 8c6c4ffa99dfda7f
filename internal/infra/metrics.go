package infra

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	BlockDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "stopwatch_block_duration_seconds",
		Help:    "Duration of timed blocks in seconds; repeated runs report the per-iteration average",
		Buckets: prometheus.ExponentialBuckets(1e-7, 10, 10),
	}, []string{"block"})

	ProbeRoundsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stopwatch_probe_rounds_total",
		Help: "Total number of completed probe rounds",
	})
	ProbeFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stopwatch_probe_failures_total",
		Help: "Probe checks whose result contradicted the expected behaviour",
	}, []string{"probe"})

	registerOnce sync.Once
)

func init() {
	InitMetrics()
}

// InitMetrics registers all collectors with the default registry.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			BlockDurationSeconds,
			ProbeRoundsTotal,
			ProbeFailuresTotal,
		)
	})
}

// Observer returns the histogram child for block. It satisfies stopwatch.Observer.
func Observer(block string) prometheus.Observer {
	InitMetrics()
	return BlockDurationSeconds.WithLabelValues(block)
}

func IncProbeRounds() {
	InitMetrics()
	ProbeRoundsTotal.Inc()
}

func IncProbeFailure(probe string) {
	InitMetrics()
	ProbeFailuresTotal.WithLabelValues(probe).Inc()
}

func Handler() http.Handler {
	InitMetrics()
	return promhttp.Handler()
}

// StartMetricsServer serves /metrics on port until ctx is done. An empty
// port disables the server and returns a nil address.
func StartMetricsServer(ctx context.Context, port string, logger *Logger) (net.Addr, error) {
	if port == "" {
		return nil, nil
	}
	InitMetrics()

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", port))
	if err != nil {
		return nil, fmt.Errorf("metrics listen on port %s: %w", port, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf(ctx, "metrics server shutdown error: %v", err)
		}
	}()

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf(ctx, "metrics server error: %v", err)
		}
	}()

	logger.Printf(ctx, "metrics server listening on %s", listener.Addr())
	return listener.Addr(), nil
}
