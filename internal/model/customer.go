package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Customer is a person the shop sells to, optionally on store credit.
type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName string    `gorm:"not null"`
	LastName  *string
	Phone     *string
	DocID     *string `gorm:"column:doc_id"`
	Points    int     `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Account *CustomerAccount `gorm:"foreignKey:CustomerID"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CustomerAccount carries the running store-credit balance for one customer.
// Positive balance = the customer owes the shop. Created alongside the
// customer; Balance always equals SUM(debit) - SUM(credit) of its movements.
type CustomerAccount struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	Balance    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Movements []AccountMovement `gorm:"foreignKey:AccountID"`
}

func (CustomerAccount) TableName() string { return "customer_accounts" }

func (a *CustomerAccount) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Reference kinds recorded on account movements.
const (
	AccountRefSale       = "sale"
	AccountRefSaleCancel = "sale_cancel"
	AccountRefPayment    = "account_payment"
)

// AccountMovement is one row in a customer's credit ledger.
// Movements are never modified or deleted; corrections create new entries.
type AccountMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AccountID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Date        string          `gorm:"not null"` // ISO-8601
	Description string          `gorm:"not null"`
	Debit       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Credit      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RefKind     *string         `gorm:"column:ref_kind"`
	RefID       *uuid.UUID      `gorm:"column:ref_id;type:uuid"`
	CreatedAt   time.Time
}

func (m *AccountMovement) BeforeCreate(*gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
