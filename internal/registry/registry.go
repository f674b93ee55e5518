// Package registry exposes every configured generator behind a string API so
// the CLI can mint identifiers for labels chosen at run time.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/weiawesome/typedid/audit"
	"github.com/weiawesome/typedid/envelope"
	"github.com/weiawesome/typedid/generator"
	"github.com/weiawesome/typedid/generator/pretty"
	"github.com/weiawesome/typedid/id"
	"github.com/weiawesome/typedid/internal/config"
	pkglog "github.com/weiawesome/typedid/pkg/log"
)

// Kind names a generation strategy.
type Kind string

const (
	KindCUID2     Kind = "cuid2"
	KindUUID      Kind = "uuid"
	KindUUIDv7    Kind = "uuidv7"
	KindULID      Kind = "ulid"
	KindSnowflake Kind = "snowflake"
	KindPretty    Kind = "pretty"
	KindKSUID     Kind = "ksuid"
	KindNanoID    Kind = "nanoid"
)

// ParseKind accepts a kind name in any case.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindCUID2, KindUUID, KindUUIDv7, KindULID, KindSnowflake, KindPretty, KindKSUID, KindNanoID:
		return k, nil
	}
	return "", fmt.Errorf("unknown id kind %q", s)
}

// untyped stands in for the entity type when the label is only known at run
// time. It is unlabeled.
type untyped struct{}

func (untyped) Label() string { return "" }

// Source is a generator whose raw values travel as text.
type Source interface {
	Kind() Kind
	// Generate returns the text form of a new raw value and its creation time.
	Generate() (string, time.Time, error)
	// Inspect decodes the text form of a raw value.
	Inspect(raw string) (*generator.ParseResult, error)
}

type source[R comparable] struct {
	kind      Kind
	gen       id.Generator[R]
	inspector generator.Inspector[R]
}

func newSource[R comparable, G interface {
	id.Generator[R]
	generator.Inspector[R]
}](kind Kind, g G) Source {
	return &source[R]{kind: kind, gen: g, inspector: g}
}

func (s *source[R]) Kind() Kind { return s.kind }

func (s *source[R]) Generate() (string, time.Time, error) {
	env, err := envelope.NewFrom[untyped](s.gen)
	if err != nil {
		return "", time.Time{}, err
	}
	rec, err := audit.FromEnvelope(env)
	if err != nil {
		return "", time.Time{}, err
	}
	return rec.ID, rec.CreatedAt, nil
}

func (s *source[R]) Inspect(raw string) (*generator.ParseResult, error) {
	i, err := id.Parse[untyped, R](raw)
	if err != nil {
		return nil, err
	}
	return s.inspector.Inspect(i.Raw())
}

// Registry maps kinds to sources.
type Registry struct {
	sources map[Kind]Source
}

// New builds a registry from already constructed sources.
func New(sources ...Source) *Registry {
	r := &Registry{sources: make(map[Kind]Source, len(sources))}
	for _, s := range sources {
		r.sources[s.Kind()] = s
	}
	return r
}

// Build constructs every generator from cfg, logging the parameters of each.
func Build(cfg *config.Config, logger zerolog.Logger) (*Registry, error) {
	policy, err := generator.ParseClockPolicy(cfg.Snowflake.ClockPolicy)
	if err != nil {
		return nil, err
	}
	node, err := generator.NewMachineNode(cfg.Snowflake.MachineID, cfg.Snowflake.NodeID)
	if err != nil {
		return nil, err
	}
	snowflake, err := generator.NewDistributedSnowflakeGenerator(node, cfg.Snowflake.Epoch,
		generator.WithClockPolicy(policy),
		generator.WithMaxClockWait(cfg.Snowflake.MaxClockWait),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create snowflake generator: %w", err)
	}
	logger.Debug().
		Int64(pkglog.FieldMachineID, node.MachineID).
		Int64(pkglog.FieldNodeID, node.NodeID).
		Int64(pkglog.FieldWorkerID, node.WorkerID()).
		Int64(pkglog.FieldEpoch, cfg.Snowflake.Epoch).
		Stringer(pkglog.FieldClockPolicy, policy).
		Msg("snowflake generator initialized")

	prettifier, err := pretty.New(
		pretty.WithPartsSize(cfg.Pretty.PartsSize),
		pretty.WithDelimiter(cfg.Pretty.Delimiter),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create prettifier: %w", err)
	}
	prettyGen, err := generator.NewPrettySnowflakeGenerator(snowflake, prettifier)
	if err != nil {
		return nil, err
	}
	logger.Debug().Int("parts_size", cfg.Pretty.PartsSize).Str("delimiter", cfg.Pretty.Delimiter).Msg("pretty generator initialized")

	nanoidGen, err := generator.NewNanoIDGenerator(cfg.NanoID.Size, cfg.NanoID.Alphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to create nanoid generator: %w", err)
	}
	logger.Debug().Int("size", cfg.NanoID.Size).Msg("nanoid generator initialized")

	var cuid2Opts []generator.CUID2Option
	if cfg.CUID2.Fingerprint != "" {
		cuid2Opts = append(cuid2Opts, generator.WithCUID2Fingerprint(cfg.CUID2.Fingerprint))
	}
	cuid2Gen, err := generator.NewCUID2Generator(cfg.CUID2.Length, cuid2Opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cuid2 generator: %w", err)
	}
	logger.Debug().Int("length", cfg.CUID2.Length).Bool("fingerprint", cfg.CUID2.Fingerprint != "").Msg("cuid2 generator initialized")

	return New(
		newSource[int64](KindSnowflake, snowflake),
		newSource[string](KindPretty, prettyGen),
		newSource[uuid.UUID](KindUUID, generator.NewUUIDGenerator()),
		newSource[uuid.UUID](KindUUIDv7, generator.NewUUIDv7Generator()),
		newSource[ulid.ULID](KindULID, generator.NewULIDGenerator()),
		newSource[ksuid.KSUID](KindKSUID, generator.NewKSUIDGenerator()),
		newSource[string](KindNanoID, nanoidGen),
		newSource[string](KindCUID2, cuid2Gen),
	), nil
}

// Source returns the source registered for kind.
func (r *Registry) Source(kind Kind) (Source, error) {
	s, ok := r.sources[kind]
	if !ok {
		return nil, fmt.Errorf("no generator registered for kind %q", kind)
	}
	return s, nil
}

// Kinds lists the registered kinds in name order.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, 0, len(r.sources))
	for k := range r.sources {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Mint generates n records for label with the source of kind.
func (r *Registry) Mint(kind Kind, label string, n int) ([]audit.Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("count must not be negative, got %d", n)
	}
	s, err := r.Source(kind)
	if err != nil {
		return nil, err
	}
	out := make([]audit.Record, 0, n)
	for i := 0; i < n; i++ {
		raw, at, err := s.Generate()
		if err != nil {
			return nil, err
		}
		out = append(out, audit.Record{Label: label, ID: raw, CreatedAt: at})
	}
	return out, nil
}
