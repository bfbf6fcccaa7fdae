package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment methods accepted at the counter.
const (
	PaymentCash        = "cash"
	PaymentCard        = "card"
	PaymentTransfer    = "transfer"
	PaymentStoreCredit = "store_credit"
)

// Sale statuses. The only transition is confirmed -> cancelled, exactly once.
const (
	SaleConfirmed = "confirmed"
	SaleCancelled = "cancelled"
)

// CashRouted reports whether the method settles through the register
// (as opposed to the customer's credit account).
func CashRouted(method string) bool {
	return method == PaymentCash || method == PaymentCard || method == PaymentTransfer
}

// Sale is a confirmed or cancelled counter transaction.
// Everything except Status is immutable after creation.
type Sale struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Date          string          `gorm:"not null"` // ISO-8601
	CustomerID    *uuid.UUID      `gorm:"type:uuid;index"`
	Actor         string          `gorm:"not null"`
	PaymentMethod string          `gorm:"type:varchar(20);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status        string          `gorm:"type:varchar(20);not null;default:'confirmed'"`
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Items []SaleItem `gorm:"foreignKey:SaleID"`
}

func (s *Sale) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Variant *Variant `gorm:"foreignKey:VariantID"`
}

func (i *SaleItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
