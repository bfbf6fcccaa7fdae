package repository

import (
	"context"

	"trastienda/internal/model"

	"gorm.io/gorm"
)

type AuditRepository interface {
	// RecordTx appends an audit entry inside the caller's transaction.
	// Called as the last step of every mutating operation, so a failure
	// here rolls back the whole unit.
	RecordTx(tx *gorm.DB, e *model.AuditEntry) error
	ListByEntity(ctx context.Context, entity string) ([]model.AuditEntry, error)
}

type auditRepo struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) AuditRepository { return &auditRepo{db: db} }

func (r *auditRepo) RecordTx(tx *gorm.DB, e *model.AuditEntry) error {
	return tx.Create(e).Error
}

func (r *auditRepo) ListByEntity(ctx context.Context, entity string) ([]model.AuditEntry, error) {
	var entries []model.AuditEntry
	err := r.db.WithContext(ctx).
		Where("entity = ?", entity).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}
