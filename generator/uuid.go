package generator

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UUIDGenerator generates UUID v4 IDs.
type UUIDGenerator struct{}

// NewUUIDGenerator creates a new UUIDGenerator.
func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() (uuid.UUID, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to generate UUID: %w", err)
	}
	return id, nil
}

func (g *UUIDGenerator) Inspect(id uuid.UUID) (*ParseResult, error) {
	if id.Version() != 4 {
		return nil, fmt.Errorf("expected UUID v4, got v%d", id.Version())
	}
	return inspectUUID(id), nil
}

// UUIDv7Generator generates time-ordered UUID v7 IDs.
type UUIDv7Generator struct{}

// NewUUIDv7Generator creates a new UUIDv7Generator.
func NewUUIDv7Generator() *UUIDv7Generator {
	return &UUIDv7Generator{}
}

func (g *UUIDv7Generator) Generate() (uuid.UUID, error) {
	id, _, err := g.GenerateAt()
	return id, err
}

// GenerateAt returns the next UUID v7 and the instant encoded in it.
func (g *UUIDv7Generator) GenerateAt() (uuid.UUID, time.Time, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, time.Time{}, fmt.Errorf("failed to generate UUIDv7: %w", err)
	}
	sec, nsec := id.Time().UnixTime()
	return id, time.Unix(sec, nsec).UTC(), nil
}

func (g *UUIDv7Generator) Inspect(id uuid.UUID) (*ParseResult, error) {
	if id.Version() != 7 {
		return nil, fmt.Errorf("expected UUID v7, got v%d", id.Version())
	}
	res := inspectUUID(id)
	sec, nsec := id.Time().UnixTime()
	res.TimestampMs = time.Unix(sec, nsec).UnixMilli()
	return res, nil
}

func inspectUUID(id uuid.UUID) *ParseResult {
	var variantStr string
	switch id.Variant() {
	case uuid.RFC4122:
		variantStr = "RFC4122"
	case uuid.Reserved:
		variantStr = "Reserved"
	case uuid.Microsoft:
		variantStr = "Microsoft"
	case uuid.Future:
		variantStr = "Future"
	default:
		variantStr = "Unknown"
	}

	return &ParseResult{
		UUIDVersion: int32(id.Version()),
		UUIDVariant: variantStr,
	}
}
