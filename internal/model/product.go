package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a catalog entry. Stock is not tracked here: each sellable
// combination of attributes is a Variant with its own counter.
type Product struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"index;not null"`
	Model *string
	// Price tiers as kept by the shop: list, cash, transfer.
	Cost          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ListPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CashPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TransferPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Active        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Variants []Variant `gorm:"foreignKey:ProductID"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Variant is the stock-keeping unit: a product in a concrete color/size.
// Stock is mutated only by purchase intake and sale creation or
// cancellation, never written directly by callers.
type Variant struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Color     *string
	Size      *string
	SKU       *string `gorm:"column:sku"`
	Stock     int     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (v *Variant) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
