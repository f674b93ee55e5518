// Package generator provides the built-in identifier generation strategies.
// Every generator satisfies id.Generator and is safe for concurrent use.
package generator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/weiawesome/typedid/id"
)

// ErrClockRegression matches a clock observed moving backwards relative to
// the last generated value.
var ErrClockRegression = errors.New("clock moved backwards")

// ClockRegressionError carries the offending clock readings in unix ms.
type ClockRegressionError struct {
	Last int64
	Now  int64
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("clock moved backwards: current=%d, last=%d", e.Now, e.Last)
}

func (e *ClockRegressionError) Is(target error) bool { return target == ErrClockRegression }

// Clock returns the current time. Generators read time only through it.
type Clock func() time.Time

// ClockPolicy decides what a time-ordered generator does when the clock
// moves backwards.
type ClockPolicy int

const (
	// ClockFail returns a ClockRegressionError immediately.
	ClockFail ClockPolicy = iota
	// ClockWait blocks until the clock catches up with the last generated
	// timestamp, for at most the generator's max clock wait, then fails.
	ClockWait
)

func (p ClockPolicy) String() string {
	switch p {
	case ClockFail:
		return "fail"
	case ClockWait:
		return "wait"
	default:
		return fmt.Sprintf("ClockPolicy(%d)", int(p))
	}
}

// ParseClockPolicy parses "fail" or "wait".
func ParseClockPolicy(s string) (ClockPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return ClockFail, nil
	case "wait":
		return ClockWait, nil
	}
	return ClockFail, fmt.Errorf("unknown clock policy %q", s)
}

// DefaultMaxClockWait bounds every blocking wait for the clock to advance.
const DefaultMaxClockWait = 50 * time.Millisecond

// ParseResult holds the fields decoded from a raw identifier.
type ParseResult struct {
	TimestampMs   int64  // Snowflake/ULID/KSUID: absolute unix ms
	MachineID     int64  // Snowflake only
	NodeID        int64  // Snowflake only
	Sequence      int64  // Snowflake only
	UUIDVersion   int32  // UUID only
	UUIDVariant   string // UUID only ("RFC4122")
	RandomPayload string // ULID/KSUID: hex-encoded random bytes
	IDLength      int32  // NanoID/CUID2/pretty: ID string length
	Alphabet      string // NanoID: character set used
}

// Inspector decodes and validates raw values produced by a generator.
type Inspector[R comparable] interface {
	Inspect(raw R) (*ParseResult, error)
}

// Batch draws n values from g, stopping at the first failure.
func Batch[R comparable](g id.Generator[R], n int) ([]R, error) {
	if n < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", n)
	}
	out := make([]R, 0, n)
	for i := 0; i < n; i++ {
		v, err := g.Generate()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// waitFor polls clock until it reaches target ms or maxWait real time has
// elapsed. It returns the last reading.
func waitFor(clock Clock, target int64, maxWait time.Duration) (int64, bool) {
	start := time.Now()
	now := clock().UnixMilli()
	for now < target {
		if time.Since(start) >= maxWait {
			return now, false
		}
		gap := time.Duration(target-now) * time.Millisecond
		if remaining := maxWait - time.Since(start); gap > remaining {
			gap = remaining
		}
		if gap > time.Millisecond {
			gap = time.Millisecond
		}
		time.Sleep(gap)
		now = clock().UnixMilli()
	}
	return now, true
}
