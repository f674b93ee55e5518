package audit

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/weiawesome/typedid/pkg/database"
)

// Entry is the table row behind GormSink.
type Entry struct {
	Seq       uint64             `gorm:"primaryKey;autoIncrement"`
	Label     string             `gorm:"size:64;index:idx_audit_label_id"`
	RawID     string             `gorm:"column:raw_id;size:128;index:idx_audit_label_id"`
	CreatedAt time.Time          `gorm:"index"`
	Metadata  database.StringMap `gorm:"type:text"`
}

func (Entry) TableName() string { return "id_audit_entries" }

func entryFromRecord(rec Record) Entry {
	return Entry{
		Label:     rec.Label,
		RawID:     rec.ID,
		CreatedAt: rec.CreatedAt,
		Metadata:  database.StringMap(rec.Metadata),
	}
}

func (e Entry) Record() Record {
	return Record{Label: e.Label, ID: e.RawID, CreatedAt: e.CreatedAt.UTC(), Metadata: e.Metadata}
}

// GormSink stores records in a SQL table.
type GormSink struct {
	db *gorm.DB
}

// NewGormSink migrates the audit table and returns the sink.
func NewGormSink(db *gorm.DB) (*GormSink, error) {
	if err := database.AutoMigrate(db, &Entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate audit table: %w", err)
	}
	return &GormSink{db: db}, nil
}

func (s *GormSink) Write(ctx context.Context, rec Record) error {
	entry := entryFromRecord(rec)
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to store audit entry for %s: %w", rec.Display(), err)
	}
	return nil
}

// Find returns the entries stored for a label and raw id, oldest first.
func (s *GormSink) Find(ctx context.Context, label, rawID string) ([]Record, error) {
	var entries []Entry
	err := s.db.WithContext(ctx).
		Where("label = ? AND raw_id = ?", label, rawID).
		Order("seq").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query audit entries: %w", err)
	}
	out := make([]Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record()
	}
	return out, nil
}
