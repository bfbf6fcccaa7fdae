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

type CreateProviderRequest struct {
	Name    string `validate:"required"`
	TaxID   *string
	Contact *string
	Notes   *string
	Actor   string `validate:"required"`
}

type ProviderService interface {
	CreateProvider(ctx context.Context, req CreateProviderRequest) (*model.Provider, error)
	ListProviders(ctx context.Context) ([]model.Provider, error)
}

type providerService struct {
	repo     repository.ProviderRepository
	audit    repository.AuditRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewProviderService(repo repository.ProviderRepository, audit repository.AuditRepository, log *logger.Logger) ProviderService {
	return &providerService{repo: repo, audit: audit, validate: validator.New(), log: log}
}

func (s *providerService) CreateProvider(ctx context.Context, req CreateProviderRequest) (*model.Provider, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	provider := model.Provider{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Contact: req.Contact,
		Notes:   req.Notes,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &provider); err != nil {
			return err
		}
		after, err := snapshot(provider)
		if err != nil {
			return err
		}
		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     nowISO(),
			Actor:    strPtr(req.Actor),
			Entity:   "providers",
			EntityID: &provider.ID,
			Action:   "create",
			After:    after,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return &provider, nil
}

func (s *providerService) ListProviders(ctx context.Context) ([]model.Provider, error) {
	return s.repo.List(ctx)
}
