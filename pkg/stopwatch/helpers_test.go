package stopwatch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
)

type stubLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *stubLogger) Printf(_ context.Context, format string, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, v...))
}

func (l *stubLogger) Println(_ context.Context, v ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprint(v...))
}

func (l *stubLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

type recordingObserver struct {
	mu     sync.Mutex
	values []float64
}

func (o *recordingObserver) Observe(v float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.values = append(o.values, v)
}

func (o *recordingObserver) observed() []float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]float64(nil), o.values...)
}

// backwardsClock moves back by step on every Since call.
type backwardsClock struct {
	now  time.Time
	step time.Duration
}

func (c *backwardsClock) Now() time.Time { return c.now }

func (c *backwardsClock) Since(t time.Time) time.Duration {
	return c.now.Add(-c.step).Sub(t)
}

func newFakeStopwatch(opts ...Option) (*Stopwatch, *fakeclock.FakeClock) {
	fc := fakeclock.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	return New(append([]Option{WithClock(fc)}, opts...)...), fc
}
