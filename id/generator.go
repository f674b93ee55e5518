package id

import "time"

// Generator produces fresh raw identifier values. Implementations must be
// safe for concurrent use and must never return colliding values within
// their uniqueness domain. A failing entropy or clock source is reported as
// an error, never as a degraded value.
type Generator[R comparable] interface {
	Generate() (R, error)
}

// TimedGenerator is implemented by generators that encode a timestamp in the
// raw value. GenerateAt reports the exact instant that was encoded.
type TimedGenerator[R comparable] interface {
	Generator[R]
	GenerateAt() (R, time.Time, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc[R comparable] func() (R, error)

// Generate calls f.
func (f GeneratorFunc[R]) Generate() (R, error) {
	return f()
}
