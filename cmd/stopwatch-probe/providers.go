package main

import (
	"fmt"
	"io"

	"stopwatch/internal/infra"
	"stopwatch/internal/probe"
	"stopwatch/pkg/stopwatch"
)

func provideConfig() (infra.Config, error) {
	cfg := infra.LoadConfig()
	if err := cfg.Validate(); err != nil {
		return infra.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func provideLogger(out io.Writer, cfg infra.Config) *infra.Logger {
	return infra.NewLogger(out, cfg.ServiceName)
}

func provideStopwatch(logger *infra.Logger) *stopwatch.Stopwatch {
	return stopwatch.New(stopwatch.WithLogger(logger))
}

func provideProbeConfig(cfg infra.Config) probe.Config {
	return probe.Config{
		Interval: cfg.ProbeInterval(),
		Sleep:    cfg.ProbeSleep(),
		Reps:     cfg.ProbeReps,
		Unit:     cfg.Unit(),
	}
}

func provideProber(cfg probe.Config, sw *stopwatch.Stopwatch, logger *infra.Logger) *probe.Prober {
	return probe.NewProber(cfg, sw, logger)
}
