package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Register session statuses. At most one session is "open" at any time.
const (
	RegisterOpen   = "open"
	RegisterClosed = "closed"
)

// Cash movement kinds.
const (
	MovementSale           = "sale"
	MovementCancellation   = "cancellation"
	MovementAccountPayment = "account_payment"
)

// RegisterSession is one open/closed period of the single cash register.
// Each per-method total always equals the signed sum of the session's
// movements for that method; totals freeze at close.
type RegisterSession struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OpenedAt     string          `gorm:"not null"` // ISO-8601
	OpenedBy     string          `gorm:"not null"`
	OpeningFloat decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status       string          `gorm:"type:varchar(20);not null;default:'open'"`

	CashTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CardTotal     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TransferTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	ClosedAt  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Movements []CashMovement `gorm:"foreignKey:SessionID"`
}

func (s *RegisterSession) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// MethodTotal returns the running total for one payment method.
func (s *RegisterSession) MethodTotal(method string) decimal.Decimal {
	switch method {
	case PaymentCash:
		return s.CashTotal
	case PaymentCard:
		return s.CardTotal
	case PaymentTransfer:
		return s.TransferTotal
	}
	return decimal.Zero
}

// CashMovement is an immutable event in the register ledger. Amount is
// signed: cancellations append the inverse entry, nothing is rewritten.
type CashMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        string          `gorm:"not null"` // ISO-8601
	Kind        string          `gorm:"type:varchar(20);not null"`
	Method      string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	RefKind     *string         `gorm:"column:ref_kind"`
	RefID       *uuid.UUID      `gorm:"column:ref_id;type:uuid"`
	Description string          `gorm:"not null"`
	CreatedAt   time.Time
}

func (m *CashMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
