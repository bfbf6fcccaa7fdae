package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditEntry records who changed what, with before/after snapshots.
// Append-only: entries are never mutated or deleted.
type AuditEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Date     string    `gorm:"not null"` // ISO-8601
	Actor    *string
	Entity   string     `gorm:"not null;index"`
	EntityID *uuid.UUID `gorm:"type:uuid;index"`
	Action   string     `gorm:"not null"`
	// JSON snapshots of the entity before/after the mutation.
	Before    *string `gorm:"type:text"`
	After     *string `gorm:"type:text"`
	CreatedAt time.Time
}

// TableName overrides GORM's pluralization (audit_entries -> audit_log).
func (AuditEntry) TableName() string { return "audit_log" }

func (e *AuditEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
