package audit

import (
	"context"
	"fmt"

	"github.com/weiawesome/typedid/pkg/pubsub"
)

// PubSubSink publishes records on the per-label audit channel.
type PubSubSink struct {
	publisher pubsub.Publisher
}

func NewPubSubSink(publisher pubsub.Publisher) *PubSubSink {
	return &PubSubSink{publisher: publisher}
}

func (s *PubSubSink) Write(ctx context.Context, rec Record) error {
	event, err := pubsub.NewEvent(pubsub.EventIDMinted, rec.Label, rec)
	if err != nil {
		return fmt.Errorf("failed to build audit event: %w", err)
	}
	return s.publisher.Publish(ctx, pubsub.AuditChannel(rec.Label), event)
}

// Tail streams the records published for label, or for every label when
// label is "*". The channel closes when ctx is done.
func Tail(ctx context.Context, sub pubsub.Subscriber, label string) (<-chan Record, error) {
	var (
		events <-chan *pubsub.Event
		err    error
	)
	if label == "*" {
		events, err = sub.SubscribePattern(ctx, pubsub.ChannelAuditAll)
	} else {
		events, err = sub.Subscribe(ctx, pubsub.AuditChannel(label))
	}
	if err != nil {
		return nil, err
	}

	out := make(chan Record)
	go func() {
		defer close(out)
		for event := range events {
			rec, ok := RecordFromEvent(event)
			if !ok {
				continue
			}
			select {
			case out <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// RecordFromEvent decodes an audit event. Events of other types are skipped.
func RecordFromEvent(event *pubsub.Event) (Record, bool) {
	if event == nil || event.Type != pubsub.EventIDMinted {
		return Record{}, false
	}
	var rec Record
	if err := event.Decode(&rec); err != nil {
		return Record{}, false
	}
	return rec, true
}
