package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/weiawesome/typedid/pkg/pubsub"
	"github.com/weiawesome/typedid/pkg/storage"
)

// DefaultArchivePrefix is the key prefix used when none is configured.
const DefaultArchivePrefix = "audit"

// ArchiveSink stores every record as a JSON object keyed
// "<prefix>/<label>/<raw id>.json" in an object store.
type ArchiveSink struct {
	store  storage.Storage
	prefix string
}

// NewArchiveSink writes into store under prefix. An empty prefix selects
// DefaultArchivePrefix.
func NewArchiveSink(store storage.Storage, prefix string) *ArchiveSink {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		prefix = DefaultArchivePrefix
	}
	return &ArchiveSink{store: store, prefix: prefix}
}

// Key returns the object key of the record with label and rawID.
func (s *ArchiveSink) Key(label, rawID string) string {
	return path.Join(s.labelDir(label), rawID+".json")
}

func (s *ArchiveSink) labelDir(label string) string {
	if label == "" {
		label = pubsub.UnlabeledChannelKey
	}
	return path.Join(s.prefix, label)
}

func (s *ArchiveSink) Write(ctx context.Context, rec Record) error {
	if rec.ID == "" || strings.ContainsAny(rec.ID, "/\\") {
		return fmt.Errorf("cannot archive record with id %q", rec.ID)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	key := s.Key(rec.Label, rec.ID)
	if err := s.store.Write(ctx, key, bytes.NewReader(data), int64(len(data)), "application/json"); err != nil {
		return fmt.Errorf("failed to archive %s: %w", rec.Display(), err)
	}
	return nil
}

// Load reads back one archived record.
func (s *ArchiveSink) Load(ctx context.Context, label, rawID string) (Record, error) {
	rc, err := s.store.Read(ctx, s.Key(label, rawID))
	if err != nil {
		return Record{}, err
	}
	defer rc.Close()

	var rec Record
	if err := json.NewDecoder(rc).Decode(&rec); err != nil {
		return Record{}, fmt.Errorf("failed to decode archived record: %w", err)
	}
	return rec, nil
}

// List returns the raw ids archived for label.
func (s *ArchiveSink) List(ctx context.Context, label string) ([]string, error) {
	dir := s.labelDir(label) + "/"
	objects, err := s.store.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(objects))
	for _, o := range objects {
		name := strings.TrimPrefix(o.Key, dir)
		if strings.Contains(name, "/") || !strings.HasSuffix(name, ".json") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ".json"))
	}
	return ids, nil
}
