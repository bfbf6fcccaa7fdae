package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Provider represents a supplier.
type Provider struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	TaxID     *string   `gorm:"column:tax_id"`
	Contact   *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Provider) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
