// Package audit records minted identifiers to logs, Redis and SQL stores.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/weiawesome/typedid/envelope"
	"github.com/weiawesome/typedid/id"
	pkglog "github.com/weiawesome/typedid/pkg/log"
)

// Record is the untyped form of an envelope as it leaves the process.
type Record struct {
	Label     string            `json:"label"`
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// FromEnvelope flattens env. The raw value is rendered in its text form.
func FromEnvelope[E any, R comparable](env envelope.Envelope[E, R]) (Record, error) {
	raw, err := env.ID().MarshalText()
	if err != nil {
		return Record{}, fmt.Errorf("failed to render %s id: %w", env.ID().Label(), err)
	}
	return Record{
		Label:     env.ID().Label(),
		ID:        string(raw),
		CreatedAt: env.CreatedAt(),
		Metadata:  env.Metadata(),
	}, nil
}

// Display renders the record like an envelope: "Label::raw @ time".
func (r Record) Display() string {
	return id.Join(r.Label, r.ID) + " @ " + r.CreatedAt.Format(time.RFC3339Nano)
}

func (r Record) MarshalZerologObject(e *zerolog.Event) {
	if r.Label != "" {
		e.Str(pkglog.FieldLabel, r.Label)
	}
	e.Str(pkglog.FieldRawID, r.ID).Time(pkglog.FieldCreatedAt, r.CreatedAt)
	if len(r.Metadata) > 0 {
		d := zerolog.Dict()
		for k, v := range r.Metadata {
			d.Str(k, v)
		}
		e.Dict(pkglog.FieldMetadata, d)
	}
}

// Sink persists or forwards audit records.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, rec Record) error

func (f SinkFunc) Write(ctx context.Context, rec Record) error { return f(ctx, rec) }

// Recorder fans records out to its sinks concurrently. Every sink is
// attempted and failures are joined.
type Recorder struct {
	sinks []Sink
}

// NewRecorder creates a recorder. Nil sinks are ignored.
func NewRecorder(sinks ...Sink) *Recorder {
	r := &Recorder{}
	for _, s := range sinks {
		if s != nil {
			r.sinks = append(r.sinks, s)
		}
	}
	return r
}

// Write sends rec to every sink and waits for all of them.
func (r *Recorder) Write(ctx context.Context, rec Record) error {
	errs := make([]error, len(r.sinks))
	var g errgroup.Group
	for i, s := range r.sinks {
		i, s := i, s
		g.Go(func() error {
			errs[i] = s.Write(ctx, rec)
			return nil
		})
	}
	g.Wait()
	return errors.Join(errs...)
}

// Mint creates an envelope for E with E's generator and records it. The
// envelope is returned even when recording fails.
func Mint[E id.Entity[R], R comparable](ctx context.Context, r *Recorder) (envelope.Envelope[E, R], error) {
	var e E
	return MintFrom[E](ctx, r, e.IDGenerator())
}

// MintFrom creates an envelope for E with gen and records it.
func MintFrom[E any, R comparable](ctx context.Context, r *Recorder, gen id.Generator[R]) (envelope.Envelope[E, R], error) {
	env, err := envelope.NewFrom[E](gen)
	if err != nil {
		return env, err
	}
	return env, RecordEnvelope(ctx, r, env)
}

// RecordEnvelope records an existing envelope.
func RecordEnvelope[E any, R comparable](ctx context.Context, r *Recorder, env envelope.Envelope[E, R]) error {
	rec, err := FromEnvelope(env)
	if err != nil {
		return err
	}
	return r.Write(ctx, rec)
}
