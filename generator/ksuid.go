package generator

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/segmentio/ksuid"
)

// KSUIDGenerator generates KSUID (K-Sortable Unique IDentifier) IDs.
// KSUIDs sort by second, not within a second.
type KSUIDGenerator struct {
	clock Clock
}

// KSUIDOption configures a KSUIDGenerator.
type KSUIDOption func(*KSUIDGenerator)

// WithKSUIDClock replaces the wall clock.
func WithKSUIDClock(clock Clock) KSUIDOption {
	return func(g *KSUIDGenerator) { g.clock = clock }
}

// NewKSUIDGenerator creates a new KSUIDGenerator.
func NewKSUIDGenerator(opts ...KSUIDOption) *KSUIDGenerator {
	g := &KSUIDGenerator{clock: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *KSUIDGenerator) Generate() (ksuid.KSUID, error) {
	id, _, err := g.GenerateAt()
	return id, err
}

// GenerateAt returns the next KSUID and the instant encoded in it.
func (g *KSUIDGenerator) GenerateAt() (ksuid.KSUID, time.Time, error) {
	id, err := ksuid.NewRandomWithTime(g.clock())
	if err != nil {
		return ksuid.Nil, time.Time{}, fmt.Errorf("failed to generate KSUID: %w", err)
	}
	return id, id.Time().UTC(), nil
}

func (g *KSUIDGenerator) Inspect(id ksuid.KSUID) (*ParseResult, error) {
	if id.IsNil() {
		return nil, fmt.Errorf("invalid KSUID: nil value")
	}
	return &ParseResult{
		TimestampMs:   id.Time().UnixMilli(),
		RandomPayload: hex.EncodeToString(id.Payload()),
	}, nil
}
