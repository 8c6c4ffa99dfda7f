package stopwatch

import "time"

var std = New()

// Default returns the stopwatch behind the package-level functions: the
// real clock with no logger and no observer.
func Default() *Stopwatch { return std }

func Measure(block func()) time.Duration { return std.Measure(block) }

func MeasureNs(block func()) float64 { return std.MeasureNs(block) }

func MeasureUs(block func()) float64 { return std.MeasureUs(block) }

func MeasureMs(block func()) float64 { return std.MeasureMs(block) }

func MeasureS(block func()) float64 { return std.MeasureS(block) }

func MeasureIn(unit Unit, block func()) float64 { return std.MeasureIn(unit, block) }

func Reps(reps int, block func()) float64 { return std.Reps(reps, block) }

func Average(reps int, block func()) float64 { return std.Average(reps, block) }

func RepsByValue[T any](state T, reps int, block func(T)) int64 {
	return RepsByValueWith(std, state, reps, block)
}

func AverageByValue[T any](state T, reps int, block func(T)) float64 {
	return AverageByValueWith(std, state, reps, block)
}
