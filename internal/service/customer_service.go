package service

import (
	"context"

	"trastienda/internal/apperror"
	"trastienda/internal/model"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type CreateCustomerRequest struct {
	FirstName string `validate:"required"`
	LastName  *string
	Phone     *string
	DocID     *string
	Actor     string `validate:"required"`
}

type CustomerService interface {
	// CreateCustomer creates the customer together with its zero-balance
	// credit account; the two rows always exist as a pair.
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
}

type customerService struct {
	repo     repository.CustomerRepository
	audit    repository.AuditRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewCustomerService(repo repository.CustomerRepository, audit repository.AuditRepository, log *logger.Logger) CustomerService {
	return &customerService{repo: repo, audit: audit, validate: validator.New(), log: log}
}

func (s *customerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*model.Customer, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	customer := model.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		DocID:     req.DocID,
	}
	account := model.CustomerAccount{}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &customer, &account); err != nil {
			return err
		}
		after, err := snapshot(customer)
		if err != nil {
			return err
		}
		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     nowISO(),
			Actor:    strPtr(req.Actor),
			Entity:   "customers",
			EntityID: &customer.ID,
			Action:   "create",
			After:    after,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	customer.Account = &account
	return &customer, nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.repo.List(ctx)
}
