package stopwatch

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidUnit = errors.New("invalid unit")

// Unit is a power-of-ten divisor applied to a nanosecond count.
type Unit int

const (
	Nanosecond Unit = iota
	Microsecond
	Millisecond
	Second
)

var unitDivisors = [...]float64{
	Nanosecond:  1,
	Microsecond: 1e3,
	Millisecond: 1e6,
	Second:      1e9,
}

var unitNames = [...]string{
	Nanosecond:  "ns",
	Microsecond: "us",
	Millisecond: "ms",
	Second:      "s",
}

func (u Unit) valid() bool {
	return u >= Nanosecond && u <= Second
}

// Divisor returns how many nanoseconds make up one u.
func (u Unit) Divisor() float64 {
	if !u.valid() {
		return 1
	}
	return unitDivisors[u]
}

func (u Unit) String() string {
	if !u.valid() {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// FromNanoseconds converts a nanosecond count into u without rounding compensation.
func (u Unit) FromNanoseconds(ns float64) float64 {
	return ns / u.Divisor()
}

// FromDuration converts d into u.
func (u Unit) FromDuration(d time.Duration) float64 {
	return u.FromNanoseconds(float64(d.Nanoseconds()))
}

// ParseUnit accepts the short unit names (ns, us, µs, ms, s) case-insensitively.
func ParseUnit(name string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ns", "nanosecond", "nanoseconds":
		return Nanosecond, nil
	case "us", "µs", "microsecond", "microseconds":
		return Microsecond, nil
	case "ms", "millisecond", "milliseconds":
		return Millisecond, nil
	case "s", "second", "seconds":
		return Second, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, name)
}
