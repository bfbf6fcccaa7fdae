package repository

import (
	"context"

	"trastienda/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	// CreateTx inserts the customer and its account row in one transaction.
	CreateTx(tx *gorm.DB, c *model.Customer, acc *model.CustomerAccount) error
	List(ctx context.Context) ([]model.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	FindAccountByCustomer(ctx context.Context, customerID uuid.UUID) (*model.CustomerAccount, error)
	FindAccountByCustomerTx(tx *gorm.DB, customerID uuid.UUID) (*model.CustomerAccount, error)

	CreateMovementTx(tx *gorm.DB, m *model.AccountMovement) error
	// AdjustBalanceTx applies a signed delta to the account balance.
	AdjustBalanceTx(tx *gorm.DB, accountID uuid.UUID, delta decimal.Decimal) error
	ListMovements(ctx context.Context, accountID uuid.UUID) ([]model.AccountMovement, error)

	DB() *gorm.DB
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) DB() *gorm.DB { return r.db }

func (r *customerRepo) CreateTx(tx *gorm.DB, c *model.Customer, acc *model.CustomerAccount) error {
	if err := tx.Create(c).Error; err != nil {
		return err
	}
	acc.CustomerID = c.ID
	return tx.Create(acc).Error
}

func (r *customerRepo) List(ctx context.Context) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *customerRepo) FindAccountByCustomer(ctx context.Context, customerID uuid.UUID) (*model.CustomerAccount, error) {
	var acc model.CustomerAccount
	err := r.db.WithContext(ctx).First(&acc, "customer_id = ?", customerID).Error
	return &acc, err
}

func (r *customerRepo) FindAccountByCustomerTx(tx *gorm.DB, customerID uuid.UUID) (*model.CustomerAccount, error) {
	var acc model.CustomerAccount
	err := tx.First(&acc, "customer_id = ?", customerID).Error
	return &acc, err
}

func (r *customerRepo) CreateMovementTx(tx *gorm.DB, m *model.AccountMovement) error {
	return tx.Create(m).Error
}

func (r *customerRepo) AdjustBalanceTx(tx *gorm.DB, accountID uuid.UUID, delta decimal.Decimal) error {
	res := tx.Model(&model.CustomerAccount{}).
		Where("id = ?", accountID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *customerRepo) ListMovements(ctx context.Context, accountID uuid.UUID) ([]model.AccountMovement, error) {
	var movs []model.AccountMovement
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&movs).Error
	return movs, err
}
