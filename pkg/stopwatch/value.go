package stopwatch

// Cloner is implemented by state that needs a deep copy to be isolated
// between iterations, typically because it holds maps, slices or pointers.
type Cloner[T any] interface {
	Clone() T
}

// RepsByValueWith runs block reps times, handing each iteration its own copy
// of state, and returns the total nanoseconds. Writes made by one iteration
// are invisible to the next and the caller's state is left untouched.
//
// state is copied with Go assignment unless it implements Cloner[T]; shared
// references inside a plain struct are not isolated.
func RepsByValueWith[T any](s *Stopwatch, state T, reps int, block func(T)) int64 {
	if s == nil {
		s = Default()
	}
	next := copier(state)
	return s.repeat(reps, func() { block(next()) }).Nanoseconds()
}

// AverageByValueWith is RepsByValueWith divided by reps, in nanoseconds.
func AverageByValueWith[T any](s *Stopwatch, state T, reps int, block func(T)) float64 {
	return float64(RepsByValueWith(s, state, reps, block)) / float64(reps)
}

func copier[T any](state T) func() T {
	if c, ok := any(state).(Cloner[T]); ok {
		return c.Clone
	}
	return func() T { return state }
}
