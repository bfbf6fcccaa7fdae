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

type CreateProductRequest struct {
	Name          string `validate:"required"`
	Model         *string
	Cost          decimal.Decimal
	ListPrice     decimal.Decimal
	CashPrice     decimal.Decimal
	TransferPrice decimal.Decimal
	Actor         string `validate:"required"`
}

type CreateVariantRequest struct {
	ProductID uuid.UUID `validate:"required"`
	Color     *string
	Size      *string
	SKU       *string
	// InitialStock seeds the counter; later changes go through purchases
	// and sales only.
	InitialStock int    `validate:"gte=0"`
	Actor        string `validate:"required"`
}

// CatalogService covers plain product/variant CRUD. No multi-entity
// invariant lives here; creations are still audited.
type CatalogService interface {
	CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	CreateVariant(ctx context.Context, req CreateVariantRequest) (*model.Variant, error)
	ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
}

type catalogService struct {
	repo     repository.CatalogRepository
	audit    repository.AuditRepository
	validate *validator.Validate
	log      *logger.Logger
}

func NewCatalogService(repo repository.CatalogRepository, audit repository.AuditRepository, log *logger.Logger) CatalogService {
	return &catalogService{repo: repo, audit: audit, validate: validator.New(), log: log}
}

func (s *catalogService) CreateProduct(ctx context.Context, req CreateProductRequest) (*model.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}

	product := model.Product{
		Name:          req.Name,
		Model:         req.Model,
		Cost:          req.Cost,
		ListPrice:     req.ListPrice,
		CashPrice:     req.CashPrice,
		TransferPrice: req.TransferPrice,
		Active:        true,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateProductTx(tx, &product); err != nil {
			return err
		}
		after, err := snapshot(product)
		if err != nil {
			return err
		}
		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     nowISO(),
			Actor:    strPtr(req.Actor),
			Entity:   "products",
			EntityID: &product.ID,
			Action:   "create",
			After:    after,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return &product, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]model.Product, error) {
	return s.repo.ListProducts(ctx, false)
}

func (s *catalogService) CreateVariant(ctx context.Context, req CreateVariantRequest) (*model.Variant, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	if _, err := s.repo.FindProductByID(ctx, req.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("product not found")
		}
		return nil, err
	}

	variant := model.Variant{
		ProductID: req.ProductID,
		Color:     req.Color,
		Size:      req.Size,
		SKU:       req.SKU,
		Stock:     req.InitialStock,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateVariantTx(tx, &variant); err != nil {
			return err
		}
		after, err := snapshot(variant)
		if err != nil {
			return err
		}
		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     nowISO(),
			Actor:    strPtr(req.Actor),
			Entity:   "variants",
			EntityID: &variant.ID,
			Action:   "create",
			After:    after,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return &variant, nil
}

func (s *catalogService) ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	return s.repo.ListVariantsByProduct(ctx, productID)
}
