package service

import (
	"context"
	"errors"

	"trastienda/internal/apperror"
	"trastienda/internal/model"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RegisterPaymentRequest struct {
	CustomerID uuid.UUID `validate:"required"`
	Amount     decimal.Decimal
	// Only cash-routed methods make sense here: the payment always lands in
	// the register. Store credit cannot pay down store credit.
	Method      string `validate:"required,oneof=cash card transfer"`
	Description *string
	Actor       string `validate:"required"`
}

// AccountStatement is a customer's account with its movement history,
// most recent first.
type AccountStatement struct {
	Account   model.CustomerAccount
	Movements []model.AccountMovement
}

type AccountService interface {
	RegisterPayment(ctx context.Context, req RegisterPaymentRequest) error
	ListMovements(ctx context.Context, customerID uuid.UUID) (*AccountStatement, error)
}

type accountService struct {
	customers repository.CustomerRepository
	register  repository.RegisterRepository
	audit     repository.AuditRepository
	validate  *validator.Validate
	log       *logger.Logger
}

func NewAccountService(
	customers repository.CustomerRepository,
	register repository.RegisterRepository,
	audit repository.AuditRepository,
	log *logger.Logger,
) AccountService {
	return &accountService{
		customers: customers,
		register:  register,
		audit:     audit,
		validate:  validator.New(),
		log:       log,
	}
}

// RegisterPayment settles part of a customer's debt: the account is credited
// and the money enters the open register session, all in one unit.
func (s *accountService) RegisterPayment(ctx context.Context, req RegisterPaymentRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return apperror.Validation(err.Error())
	}
	if !req.Amount.IsPositive() {
		return apperror.Validation("payment amount must be positive")
	}

	description := "Account payment"
	if req.Description != nil && *req.Description != "" {
		description = *req.Description
	}

	txErr := runTx(ctx, s.customers.DB(), func(tx *gorm.DB) error {
		acc, err := s.customers.FindAccountByCustomerTx(tx, req.CustomerID)
		if err != nil {
			return apperror.NotFound("customer has no credit account")
		}

		sess, err := s.register.FindOpenSessionTx(tx)
		if err != nil {
			return apperror.InvalidState("no open register session")
		}

		now := nowISO()
		mov := &model.AccountMovement{
			AccountID:   acc.ID,
			Date:        now,
			Description: description,
			Debit:       decimal.Zero,
			Credit:      req.Amount,
			RefKind:     strPtr(model.AccountRefPayment),
		}
		if err := s.customers.CreateMovementTx(tx, mov); err != nil {
			return err
		}
		if err := s.customers.AdjustBalanceTx(tx, acc.ID, req.Amount.Neg()); err != nil {
			return err
		}

		cashMov := &model.CashMovement{
			SessionID:   sess.ID,
			Date:        now,
			Kind:        model.MovementAccountPayment,
			Method:      req.Method,
			Amount:      req.Amount,
			RefKind:     strPtr(model.AccountRefPayment),
			RefID:       &acc.ID,
			Description: description,
		}
		if err := s.register.CreateMovementTx(tx, cashMov); err != nil {
			return err
		}
		if err := s.register.AddTotalTx(tx, sess.ID, req.Method, req.Amount); err != nil {
			return err
		}

		after, err := snapshot(mov)
		if err != nil {
			return err
		}
		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     now,
			Actor:    strPtr(req.Actor),
			Entity:   "customer_accounts",
			EntityID: &acc.ID,
			Action:   "payment",
			After:    after,
		})
	})
	if txErr != nil {
		return txErr
	}

	s.log.Info().
		Str("customer_id", req.CustomerID.String()).
		Str("amount", req.Amount.String()).
		Str("method", req.Method).
		Msg("account payment registered")

	return nil
}

func (s *accountService) ListMovements(ctx context.Context, customerID uuid.UUID) (*AccountStatement, error) {
	acc, err := s.customers.FindAccountByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("customer has no credit account")
		}
		return nil, err
	}
	movs, err := s.customers.ListMovements(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	return &AccountStatement{Account: *acc, Movements: movs}, nil
}
