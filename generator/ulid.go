package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ULIDOption configures a ULIDGenerator.
type ULIDOption func(*ULIDGenerator)

// WithULIDClock replaces the wall clock.
func WithULIDClock(clock Clock) ULIDOption {
	return func(g *ULIDGenerator) { g.clock = clock }
}

// WithEntropy replaces crypto/rand as the entropy source.
func WithEntropy(r io.Reader) ULIDOption {
	return func(g *ULIDGenerator) { g.source = r }
}

// ULIDGenerator generates ULID (Universally Unique Lexicographically Sortable
// Identifier) IDs. IDs from one generator never decrease: within the same
// millisecond the random part is incremented.
type ULIDGenerator struct {
	mu      sync.Mutex
	source  io.Reader
	entropy *ulid.MonotonicEntropy
	clock   Clock
	lastMs  uint64
}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator(opts ...ULIDOption) *ULIDGenerator {
	g := &ULIDGenerator{
		source: rand.Reader,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.entropy = ulid.Monotonic(g.source, 0)
	return g
}

// Generate returns the next ULID.
func (g *ULIDGenerator) Generate() (ulid.ULID, error) {
	id, _, err := g.GenerateAt()
	return id, err
}

// GenerateAt returns the next ULID and the instant encoded in it.
func (g *ULIDGenerator) GenerateAt() (ulid.ULID, time.Time, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := ulid.Timestamp(g.clock())
	if ms < g.lastMs {
		return ulid.ULID{}, time.Time{}, &ClockRegressionError{Last: int64(g.lastMs), Now: int64(ms)}
	}
	id, err := ulid.New(ms, g.entropy)
	if err != nil {
		return ulid.ULID{}, time.Time{}, fmt.Errorf("failed to generate ULID: %w", err)
	}
	g.lastMs = ms
	return id, ulid.Time(ms).UTC(), nil
}

// Inspect decodes the timestamp and entropy of a ULID.
func (g *ULIDGenerator) Inspect(id ulid.ULID) (*ParseResult, error) {
	if id.Compare(ulid.ULID{}) == 0 {
		return nil, fmt.Errorf("invalid ULID: zero value")
	}
	return &ParseResult{
		TimestampMs:   int64(id.Time()),
		RandomPayload: hex.EncodeToString(id.Entropy()),
	}, nil
}
