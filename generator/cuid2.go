package generator

import (
	"fmt"
	"sync"

	"github.com/nrednav/cuid2"
)

const (
	DefaultCUID2Length = 24

	minCUID2Length = 2
	maxCUID2Length = 32
)

// CUID2Option configures a CUID2Generator.
type CUID2Option func(*cuid2Settings)

type cuid2Settings struct {
	fingerprint string
}

// WithCUID2Fingerprint mixes fp into every id instead of the host-derived
// default, e.g. to tell replicas apart.
func WithCUID2Fingerprint(fp string) CUID2Option {
	return func(s *cuid2Settings) { s.fingerprint = fp }
}

// CUID2Generator produces collision-resistant ids of a fixed length.
type CUID2Generator struct {
	length int

	// the cuid2 closure advances an unsynchronised session counter
	mu   sync.Mutex
	next func() string
}

// NewCUID2Generator checks that length is in [2, 32].
func NewCUID2Generator(length int, opts ...CUID2Option) (*CUID2Generator, error) {
	if length < minCUID2Length || length > maxCUID2Length {
		return nil, fmt.Errorf("cuid2 length must be between %d and %d, got %d", minCUID2Length, maxCUID2Length, length)
	}

	var s cuid2Settings
	for _, opt := range opts {
		opt(&s)
	}
	initOpts := []cuid2.Option{cuid2.WithLength(length)}
	if s.fingerprint != "" {
		initOpts = append(initOpts, cuid2.WithFingerprint(s.fingerprint))
	}

	next, err := cuid2.Init(initOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to init CUID2 generator: %w", err)
	}
	return &CUID2Generator{length: length, next: next}, nil
}

func (g *CUID2Generator) Generate() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.next(), nil
}

func (g *CUID2Generator) Inspect(id string) (*ParseResult, error) {
	if len(id) != g.length {
		return nil, fmt.Errorf("invalid CUID2: expected length %d, got %d", g.length, len(id))
	}
	if !cuid2.IsCuid(id) {
		return nil, fmt.Errorf("invalid CUID2 %q", id)
	}
	return &ParseResult{IDLength: int32(g.length)}, nil
}
