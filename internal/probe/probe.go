// Package probe periodically times a few reference blocks with the
// stopwatch and reports the results to the log and to Prometheus.
package probe

import (
	"context"
	"time"

	"stopwatch/internal/infra"
	"stopwatch/pkg/stopwatch"
)

const (
	StageSleep   = "sleep"
	StageCounter = "counter"
	StageAverage = "average"
	StageByValue = "by_value"
)

type Config struct {
	Interval time.Duration
	Sleep    time.Duration
	Reps     int
	Unit     stopwatch.Unit
	// Sleeper blocks for the given duration; time.Sleep when nil.
	Sleeper func(time.Duration)
}

// Result holds one round. Sleep is in the configured unit, the other
// durations are nanoseconds.
type Result struct {
	Sleep           float64
	SleepSeconds    float64
	CounterTotalNs  float64
	Counter         int
	AverageNs       float64
	ByValueTotalNs  int64
	ByValueOriginal int
	Failures        []string
}

type Prober struct {
	cfg    Config
	sw     *stopwatch.Stopwatch
	logger Logger
}

func NewProber(cfg Config, sw *stopwatch.Stopwatch, logger Logger) *Prober {
	if cfg.Sleep < 0 {
		cfg.Sleep = 0
	}
	if cfg.Reps < 0 {
		cfg.Reps = 0
	}
	if cfg.Sleeper == nil {
		cfg.Sleeper = time.Sleep
	}
	if sw == nil {
		sw = stopwatch.Default()
	}
	return &Prober{cfg: cfg, sw: sw, logger: logger}
}

// Run executes one round, then one more every Interval until ctx is done.
// A non-positive Interval runs a single round.
func (p *Prober) Run(ctx context.Context) {
	p.RunRound(ctx)
	if p.cfg.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log(ctx, "probe: остановлен (context cancelled): %v", ctx.Err())
			return
		case <-ticker.C:
		}
		p.RunRound(ctx)
	}
}

func (p *Prober) RunRound(ctx context.Context) Result {
	var res Result

	p.sleepStage(ctx, &res)
	p.counterStage(ctx, &res)
	p.averageStage(ctx, &res)
	p.byValueStage(ctx, &res)

	infra.IncProbeRounds()
	p.log(ctx, "probe: round done, %d failures", len(res.Failures))
	return res
}

func (p *Prober) sleepStage(ctx context.Context, res *Result) {
	sw, ctx := p.stage(ctx, StageSleep)

	elapsed := sw.Measure(func() { p.cfg.Sleeper(p.cfg.Sleep) })
	res.Sleep = p.cfg.Unit.FromDuration(elapsed)
	res.SleepSeconds = stopwatch.Second.FromDuration(elapsed)

	p.log(ctx, "probe: slept %s, measured %.3f%s (%.6fs)", p.cfg.Sleep, res.Sleep, p.cfg.Unit, res.SleepSeconds)
	if elapsed < p.cfg.Sleep {
		p.fail(ctx, res, StageSleep, "measured %s below requested %s", elapsed, p.cfg.Sleep)
	}
}

func (p *Prober) counterStage(ctx context.Context, res *Result) {
	sw, ctx := p.stage(ctx, StageCounter)

	counter := 0
	res.CounterTotalNs = sw.Reps(p.cfg.Reps, func() { counter++ })
	res.Counter = counter

	p.log(ctx, "probe: %d reps took %.0fns", p.cfg.Reps, res.CounterTotalNs)
	if counter != p.cfg.Reps {
		p.fail(ctx, res, StageCounter, "counter ended at %d, want %d", counter, p.cfg.Reps)
	}
}

func (p *Prober) averageStage(ctx context.Context, res *Result) {
	if p.cfg.Reps == 0 {
		return
	}
	sw, ctx := p.stage(ctx, StageAverage)

	counter := 0
	res.AverageNs = sw.Average(p.cfg.Reps, func() { counter++ })

	p.log(ctx, "probe: average %.2fns over %d reps", res.AverageNs, p.cfg.Reps)
	if counter != p.cfg.Reps {
		p.fail(ctx, res, StageAverage, "counter ended at %d, want %d", counter, p.cfg.Reps)
	}
}

type hits struct {
	n int
}

func (p *Prober) byValueStage(ctx context.Context, res *Result) {
	sw, ctx := p.stage(ctx, StageByValue)

	original := hits{}
	res.ByValueTotalNs = stopwatch.RepsByValueWith(sw, original, p.cfg.Reps, func(h hits) { h.n++ })
	res.ByValueOriginal = original.n

	p.log(ctx, "probe: %d by-value reps took %dns", p.cfg.Reps, res.ByValueTotalNs)
	if original.n != 0 {
		p.fail(ctx, res, StageByValue, "caller state changed to %d", original.n)
	}
}

func (p *Prober) stage(ctx context.Context, name string) (*stopwatch.Stopwatch, context.Context) {
	ctx = infra.WithProbe(ctx, name)
	return p.sw.With(
		stopwatch.WithLabel(name),
		stopwatch.WithObserver(infra.Observer(name)),
		stopwatch.WithContext(ctx),
	), ctx
}

func (p *Prober) fail(ctx context.Context, res *Result, stage, format string, v ...any) {
	res.Failures = append(res.Failures, stage)
	infra.IncProbeFailure(stage)
	p.log(ctx, "probe: "+stage+" check failed: "+format, v...)
}

func (p *Prober) log(ctx context.Context, format string, v ...any) {
	if p.logger != nil {
		p.logger.Printf(ctx, format, v...)
	}
}
