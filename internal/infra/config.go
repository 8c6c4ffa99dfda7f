package infra

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"stopwatch/pkg/stopwatch"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	ServiceName     string
	MetricsPort     string
	ProbeSleepMS    int
	ProbeReps       int
	ProbeIntervalMS int
	ProbeUnit       string
}

func LoadConfig() Config {
	return Config{
		ServiceName:     getEnv("SERVICE_NAME", "stopwatch-probe"),
		MetricsPort:     os.Getenv("METRICS_PORT"),
		ProbeSleepMS:    getEnvInt("PROBE_SLEEP_MS", 10),
		ProbeReps:       getEnvInt("PROBE_REPS", 1000),
		ProbeIntervalMS: getEnvInt("PROBE_INTERVAL_MS", 0),
		ProbeUnit:       getEnv("PROBE_UNIT", "ms"),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.ProbeSleepMS < 0 {
		errs = append(errs, fmt.Errorf("%w: PROBE_SLEEP_MS=%d must not be negative", ErrInvalidConfig, c.ProbeSleepMS))
	}
	if c.ProbeReps < 0 {
		errs = append(errs, fmt.Errorf("%w: PROBE_REPS=%d must not be negative", ErrInvalidConfig, c.ProbeReps))
	}
	if c.ProbeIntervalMS < 0 {
		errs = append(errs, fmt.Errorf("%w: PROBE_INTERVAL_MS=%d must not be negative", ErrInvalidConfig, c.ProbeIntervalMS))
	}
	if _, err := stopwatch.ParseUnit(c.ProbeUnit); err != nil {
		errs = append(errs, fmt.Errorf("%w: PROBE_UNIT: %w", ErrInvalidConfig, err))
	}
	return errors.Join(errs...)
}

func (c Config) Unit() stopwatch.Unit {
	unit, err := stopwatch.ParseUnit(c.ProbeUnit)
	if err != nil {
		return stopwatch.Millisecond
	}
	return unit
}

func (c Config) ProbeSleep() time.Duration {
	return time.Duration(c.ProbeSleepMS) * time.Millisecond
}

func (c Config) ProbeInterval() time.Duration {
	return time.Duration(c.ProbeIntervalMS) * time.Millisecond
}

func LogConfig(ctx context.Context, logger *Logger, cfg Config) {
	logger.Printf(ctx, "SERVICE_NAME=%s", cfg.ServiceName)
	logger.Printf(ctx, "METRICS_PORT=%s", emptyFallback(cfg.MetricsPort, "(disabled)"))
	logger.Printf(ctx, "PROBE_SLEEP_MS=%d", cfg.ProbeSleepMS)
	logger.Printf(ctx, "PROBE_REPS=%d", cfg.ProbeReps)
	if cfg.ProbeIntervalMS > 0 {
		logger.Printf(ctx, "PROBE_INTERVAL_MS=%d", cfg.ProbeIntervalMS)
	} else {
		logger.Println(ctx, "PROBE_INTERVAL_MS not set, running a single round")
	}
	logger.Printf(ctx, "PROBE_UNIT=%s", cfg.ProbeUnit)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func emptyFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
