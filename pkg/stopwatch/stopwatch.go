// Package stopwatch times blocks of code against a monotonic clock.
package stopwatch

import (
	"context"
	"time"
)

// Stopwatch measures how long caller-supplied blocks take to run. It holds
// configuration only and is safe for concurrent use.
type Stopwatch struct {
	clock    Clock
	logger   Logger
	observer Observer
	label    string
	ctx      context.Context
}

// Option configures a Stopwatch.
type Option func(*Stopwatch)

// WithClock replaces the real clock, mostly for tests with a fake clock.
func WithClock(c Clock) Option {
	return func(s *Stopwatch) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithLogger reports completed measurements and clock faults to logger.
func WithLogger(logger Logger) Option {
	return func(s *Stopwatch) {
		s.logger = logger
	}
}

// WithObserver forwards every completed measurement, in seconds, to o.
// Repeated runs forward the per-iteration average.
func WithObserver(o Observer) Option {
	return func(s *Stopwatch) {
		s.observer = o
	}
}

// WithLabel names the measured block in log lines.
func WithLabel(label string) Option {
	return func(s *Stopwatch) {
		s.label = label
	}
}

// WithContext sets the context passed to the logger (correlation ids).
func WithContext(ctx context.Context) Option {
	return func(s *Stopwatch) {
		if ctx != nil {
			s.ctx = ctx
		}
	}
}

func New(opts ...Option) *Stopwatch {
	s := &Stopwatch{
		clock: NewRealClock(),
		ctx:   context.Background(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With returns a copy of s with opts applied on top.
func (s *Stopwatch) With(opts ...Option) *Stopwatch {
	clone := *s
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Measure runs block once on the calling goroutine and returns the time it
// took. A panic in block propagates and nothing is recorded.
func (s *Stopwatch) Measure(block func()) time.Duration {
	start := s.clock.Now()
	block()
	elapsed := s.elapsed(start)

	s.observe(elapsed)
	s.log("took %s", elapsed)
	return elapsed
}

// MeasureNs is Measure as a float64 count of nanoseconds.
func (s *Stopwatch) MeasureNs(block func()) float64 {
	return float64(s.Measure(block).Nanoseconds())
}

func (s *Stopwatch) MeasureUs(block func()) float64 {
	return s.MeasureIn(Microsecond, block)
}

func (s *Stopwatch) MeasureMs(block func()) float64 {
	return s.MeasureIn(Millisecond, block)
}

func (s *Stopwatch) MeasureS(block func()) float64 {
	return s.MeasureIn(Second, block)
}

// MeasureIn returns MeasureNs divided by the unit's power of ten.
func (s *Stopwatch) MeasureIn(unit Unit, block func()) float64 {
	return unit.FromNanoseconds(s.MeasureNs(block))
}

// Reps runs block reps times in a row and returns the total nanoseconds.
// block is a closure, so every iteration sees the previous one's writes.
// reps <= 0 never runs block.
func (s *Stopwatch) Reps(reps int, block func()) float64 {
	return float64(s.repeat(reps, block).Nanoseconds())
}

// Average is Reps divided by reps. reps == 0 is not guarded and yields
// NaN or +Inf.
func (s *Stopwatch) Average(reps int, block func()) float64 {
	return s.Reps(reps, block) / float64(reps)
}

func (s *Stopwatch) repeat(reps int, block func()) time.Duration {
	start := s.clock.Now()
	for i := 0; i < reps; i++ {
		block()
	}
	total := s.elapsed(start)

	if reps > 0 {
		s.observe(total / time.Duration(reps))
	}
	s.log("%d reps took %s", reps, total)
	return total
}

func (s *Stopwatch) elapsed(start time.Time) time.Duration {
	d := s.clock.Since(start)
	if d < 0 {
		s.log("clock went backwards by %s, clamping to zero", -d)
		return 0
	}
	return d
}

func (s *Stopwatch) observe(d time.Duration) {
	if s.observer != nil {
		s.observer.Observe(d.Seconds())
	}
}

func (s *Stopwatch) log(format string, v ...any) {
	if s.logger == nil {
		return
	}
	if s.label != "" {
		format = "stopwatch " + s.label + ": " + format
	} else {
		format = "stopwatch: " + format
	}
	s.logger.Printf(s.ctx, format, v...)
}
