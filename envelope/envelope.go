// Package envelope pairs an identifier with the moment it was minted, for
// audit trails and logs.
package envelope

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/weiawesome/typedid/id"
)

// Map keys understood by FromMap and produced by ToMap.
const (
	CorrelationIDKey = "correlation_id"
	RecvTimestampKey = "recv_timestamp"
)

var errNoTimestamp = errors.New("missing creation timestamp")

// Envelope is an identifier plus its creation time and optional string
// metadata. It is immutable; With returns a modified copy.
type Envelope[E any, R comparable] struct {
	id        id.ID[E, R]
	createdAt time.Time
	metadata  map[string]string
}

// New mints an identifier for E with the generator E declares and stamps it
// in the same step.
func New[E id.Entity[R], R comparable]() (Envelope[E, R], error) {
	var e E
	return NewFrom[E](e.IDGenerator())
}

// NewFrom mints an identifier for E with gen and stamps it in the same step.
func NewFrom[E any, R comparable](gen id.Generator[R]) (Envelope[E, R], error) {
	i, at, err := id.NextAt[E](gen)
	if err != nil {
		return Envelope[E, R]{}, err
	}
	return Envelope[E, R]{id: i, createdAt: at.UTC()}, nil
}

// FromParts rebuilds an envelope from stored parts. metadata is copied.
func FromParts[E any, R comparable](i id.ID[E, R], createdAt time.Time, metadata map[string]string) Envelope[E, R] {
	return Envelope[E, R]{id: i, createdAt: createdAt.UTC(), metadata: maps.Clone(metadata)}
}

// FromMap reads an envelope from string key/values, e.g. message headers.
// CorrelationIDKey holds the raw id and RecvTimestampKey an RFC 3339
// timestamp; other keys become metadata. Missing or malformed values are
// errors, never silently regenerated.
func FromMap[E any, R comparable](m map[string]string) (Envelope[E, R], error) {
	rawID, ok := m[CorrelationIDKey]
	if !ok {
		return Envelope[E, R]{}, &id.FormatError{Label: id.LabelOf[E](), Err: fmt.Errorf("missing %s", CorrelationIDKey)}
	}
	i, err := id.Parse[E, R](rawID)
	if err != nil {
		return Envelope[E, R]{}, err
	}

	ts, ok := m[RecvTimestampKey]
	if !ok {
		return Envelope[E, R]{}, &id.FormatError{Label: id.LabelOf[E](), Input: rawID, Err: errNoTimestamp}
	}
	createdAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return Envelope[E, R]{}, &id.FormatError{Label: id.LabelOf[E](), Input: ts, Err: err}
	}

	var metadata map[string]string
	for k, v := range m {
		if k == CorrelationIDKey || k == RecvTimestampKey {
			continue
		}
		if metadata == nil {
			metadata = make(map[string]string)
		}
		metadata[k] = v
	}
	return Envelope[E, R]{id: i, createdAt: createdAt.UTC(), metadata: metadata}, nil
}

// Relabel moves an envelope to another entity type, keeping id and time.
func Relabel[B any, E any, R comparable](env Envelope[E, R]) Envelope[B, R] {
	return Envelope[B, R]{id: id.Relabel[B](env.id), createdAt: env.createdAt, metadata: env.metadata}
}

func (e Envelope[E, R]) ID() id.ID[E, R] { return e.id }

func (e Envelope[E, R]) CreatedAt() time.Time { return e.createdAt }

// Get returns one metadata value.
func (e Envelope[E, R]) Get(key string) (string, bool) {
	v, ok := e.metadata[key]
	return v, ok
}

// Metadata returns a copy of the metadata.
func (e Envelope[E, R]) Metadata() map[string]string {
	return maps.Clone(e.metadata)
}

// With returns a copy of e with key set to value.
func (e Envelope[E, R]) With(key, value string) Envelope[E, R] {
	metadata := make(map[string]string, len(e.metadata)+1)
	maps.Copy(metadata, e.metadata)
	metadata[key] = value
	e.metadata = metadata
	return e
}

// ToMap flattens the envelope into string key/values readable by FromMap.
func (e Envelope[E, R]) ToMap() (map[string]string, error) {
	raw, err := e.id.MarshalText()
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(e.metadata)+2)
	maps.Copy(m, e.metadata)
	m[CorrelationIDKey] = string(raw)
	m[RecvTimestampKey] = e.createdAt.Format(time.RFC3339Nano)
	return m, nil
}

// Equal compares id, time and metadata.
func (e Envelope[E, R]) Equal(other Envelope[E, R]) bool {
	return e.id == other.id && e.createdAt.Equal(other.createdAt) && maps.Equal(e.metadata, other.metadata)
}

// String renders "Label::raw @ <RFC 3339 time>".
func (e Envelope[E, R]) String() string {
	return fmt.Sprintf("%s @ %s", e.id, e.createdAt.Format(time.RFC3339Nano))
}

// MarshalZerologObject logs the envelope's id, time and metadata.
func (e Envelope[E, R]) MarshalZerologObject(ev *zerolog.Event) {
	ev.EmbedObject(e.id).Time("created_at", e.createdAt)
	if len(e.metadata) > 0 {
		d := zerolog.Dict()
		for k, v := range e.metadata {
			d.Str(k, v)
		}
		ev.Dict("metadata", d)
	}
}

type wire[E any, R comparable] struct {
	ID        *id.ID[E, R]      `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (e Envelope[E, R]) MarshalJSON() ([]byte, error) {
	return json.Marshal(wire[E, R]{ID: &e.id, CreatedAt: e.createdAt, Metadata: e.metadata})
}

func (e *Envelope[E, R]) UnmarshalJSON(data []byte) error {
	var w wire[E, R]
	if err := json.Unmarshal(data, &w); err != nil {
		var fe *id.FormatError
		if errors.As(err, &fe) {
			return err
		}
		return &id.FormatError{Label: id.LabelOf[E](), Input: string(data), Err: err}
	}
	if w.ID == nil {
		return &id.FormatError{Label: id.LabelOf[E](), Input: string(data), Err: errors.New("missing id")}
	}
	if w.CreatedAt.IsZero() {
		return &id.FormatError{Label: id.LabelOf[E](), Input: string(data), Err: errNoTimestamp}
	}
	*e = Envelope[E, R]{id: *w.ID, createdAt: w.CreatedAt.UTC(), metadata: w.Metadata}
	return nil
}

type yamlWire[E any, R comparable] struct {
	ID        *id.ID[E, R]      `yaml:"id"`
	CreatedAt string            `yaml:"created_at"`
	Metadata  map[string]string `yaml:"metadata,omitempty"`
}

func (e Envelope[E, R]) MarshalYAML() (any, error) {
	return yamlWire[E, R]{ID: &e.id, CreatedAt: e.createdAt.Format(time.RFC3339Nano), Metadata: e.metadata}, nil
}

func (e *Envelope[E, R]) UnmarshalYAML(value *yaml.Node) error {
	var w yamlWire[E, R]
	if err := value.Decode(&w); err != nil {
		var fe *id.FormatError
		if errors.As(err, &fe) {
			return err
		}
		return &id.FormatError{Label: id.LabelOf[E](), Input: value.Value, Err: err}
	}
	if w.ID == nil {
		return &id.FormatError{Label: id.LabelOf[E](), Err: errors.New("missing id")}
	}
	if w.CreatedAt == "" {
		return &id.FormatError{Label: id.LabelOf[E](), Err: errNoTimestamp}
	}
	createdAt, err := time.Parse(time.RFC3339Nano, w.CreatedAt)
	if err != nil {
		return &id.FormatError{Label: id.LabelOf[E](), Input: w.CreatedAt, Err: err}
	}
	*e = Envelope[E, R]{id: *w.ID, createdAt: createdAt.UTC(), metadata: w.Metadata}
	return nil
}
