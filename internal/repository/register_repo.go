package repository

import (
	"context"

	"trastienda/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterRepository interface {
	CreateSession(ctx context.Context, s *model.RegisterSession) error
	CreateSessionTx(tx *gorm.DB, s *model.RegisterSession) error
	FindOpenSession(ctx context.Context) (*model.RegisterSession, error)
	// FindOpenSessionTx resolves the open session inside the caller's
	// transaction. Core operations resolve once at the start of the unit and
	// carry the ID, so a session closed mid-operation cannot slip through.
	FindOpenSessionTx(tx *gorm.DB) (*model.RegisterSession, error)
	FindLatestSession(ctx context.Context) (*model.RegisterSession, error)
	UpdateSessionTx(tx *gorm.DB, s *model.RegisterSession) error

	CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error
	ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error)
	// AddTotalTx bumps the session's running total for one payment method.
	AddTotalTx(tx *gorm.DB, sessionID uuid.UUID, method string, amount decimal.Decimal) error
	SumMovementsByMethod(ctx context.Context, sessionID uuid.UUID) (map[string]decimal.Decimal, error)

	DB() *gorm.DB
}

type registerRepo struct{ db *gorm.DB }

func NewRegisterRepository(db *gorm.DB) RegisterRepository { return &registerRepo{db: db} }

func (r *registerRepo) DB() *gorm.DB { return r.db }

func (r *registerRepo) CreateSession(ctx context.Context, s *model.RegisterSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *registerRepo) CreateSessionTx(tx *gorm.DB, s *model.RegisterSession) error {
	return tx.Create(s).Error
}

func (r *registerRepo) FindOpenSession(ctx context.Context) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).
		Where("status = ?", model.RegisterOpen).
		Order("created_at DESC").
		First(&s).Error
	return &s, err
}

func (r *registerRepo) FindOpenSessionTx(tx *gorm.DB) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := tx.Where("status = ?", model.RegisterOpen).
		Order("created_at DESC").
		First(&s).Error
	return &s, err
}

func (r *registerRepo) FindLatestSession(ctx context.Context) (*model.RegisterSession, error) {
	var s model.RegisterSession
	err := r.db.WithContext(ctx).Order("created_at DESC").First(&s).Error
	return &s, err
}

func (r *registerRepo) UpdateSessionTx(tx *gorm.DB, s *model.RegisterSession) error {
	return tx.Save(s).Error
}

func (r *registerRepo) CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error {
	return tx.Create(m).Error
}

func (r *registerRepo) ListMovements(ctx context.Context, sessionID uuid.UUID) ([]model.CashMovement, error) {
	var movs []model.CashMovement
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Find(&movs).Error
	return movs, err
}

// totalColumn maps a payment method to its running-total column.
func totalColumn(method string) string {
	switch method {
	case model.PaymentCard:
		return "card_total"
	case model.PaymentTransfer:
		return "transfer_total"
	default:
		return "cash_total"
	}
}

func (r *registerRepo) AddTotalTx(tx *gorm.DB, sessionID uuid.UUID, method string, amount decimal.Decimal) error {
	col := totalColumn(method)
	res := tx.Model(&model.RegisterSession{}).
		Where("id = ?", sessionID).
		UpdateColumn(col, gorm.Expr(col+" + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *registerRepo) SumMovementsByMethod(ctx context.Context, sessionID uuid.UUID) (map[string]decimal.Decimal, error) {
	type row struct {
		Method string
		Total  decimal.Decimal
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.CashMovement{}).
		Select("method, SUM(amount) AS total").
		Where("session_id = ?", sessionID).
		Group("method").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	sums := map[string]decimal.Decimal{
		model.PaymentCash:     decimal.Zero,
		model.PaymentCard:     decimal.Zero,
		model.PaymentTransfer: decimal.Zero,
	}
	for _, rw := range rows {
		sums[rw.Method] = rw.Total
	}
	return sums, nil
}
