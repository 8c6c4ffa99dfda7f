package stopwatch

import "context"

type Logger interface {
	Printf(ctx context.Context, format string, v ...any)
	Println(ctx context.Context, v ...any)
}

// Observer receives completed measurements in seconds.
// prometheus.Observer satisfies it.
type Observer interface {
	Observe(seconds float64)
}
