package service

import (
	"context"

	"trastienda/internal/apperror"
	"trastienda/internal/model"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PurchaseItemRequest struct {
	VariantID uuid.UUID `validate:"required"`
	Quantity  int       `validate:"required,gt=0"`
	UnitCost  decimal.Decimal
}

type CreatePurchaseRequest struct {
	ProviderID uuid.UUID `validate:"required"`
	Date       string    // ISO-8601; empty means "now"
	Notes      *string
	Items      []PurchaseItemRequest `validate:"required,min=1,dive"`
	Actor      string                `validate:"required"`
}

type PurchaseService interface {
	CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (uuid.UUID, error)
	ListPurchases(ctx context.Context) ([]model.Purchase, error)
}

type purchaseService struct {
	purchases repository.PurchaseRepository
	catalog   repository.CatalogRepository
	audit     repository.AuditRepository
	validate  *validator.Validate
	log       *logger.Logger
}

func NewPurchaseService(
	purchases repository.PurchaseRepository,
	catalog repository.CatalogRepository,
	audit repository.AuditRepository,
	log *logger.Logger,
) PurchaseService {
	return &purchaseService{
		purchases: purchases,
		catalog:   catalog,
		audit:     audit,
		validate:  validator.New(),
		log:       log,
	}
}

// CreatePurchase records a provider intake and increments stock per line item
// in one unit. Purchases carry no payment effect; they are settled with the
// provider out of band.
func (s *purchaseService) CreatePurchase(ctx context.Context, req CreatePurchaseRequest) (uuid.UUID, error) {
	if err := s.validate.Struct(req); err != nil {
		return uuid.Nil, apperror.Validation(err.Error())
	}
	for _, it := range req.Items {
		if it.UnitCost.IsNegative() {
			return uuid.Nil, apperror.Validation("unit cost must not be negative")
		}
	}

	date := req.Date
	if date == "" {
		date = nowISO()
	}

	purchase := model.Purchase{
		ProviderID: req.ProviderID,
		Date:       date,
		Notes:      req.Notes,
	}
	for _, it := range req.Items {
		purchase.Items = append(purchase.Items, model.PurchaseItem{
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitCost:  it.UnitCost,
		})
	}

	txErr := runTx(ctx, s.purchases.DB(), func(tx *gorm.DB) error {
		if err := s.purchases.CreateTx(tx, &purchase); err != nil {
			return err
		}
		for _, it := range purchase.Items {
			if err := s.catalog.AdjustStockTx(tx, it.VariantID, it.Quantity); err != nil {
				return err
			}
		}

		after, err := snapshot(purchase)
		if err != nil {
			return err
		}
		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     nowISO(),
			Actor:    strPtr(req.Actor),
			Entity:   "purchases",
			EntityID: &purchase.ID,
			Action:   "create",
			After:    after,
		})
	})
	if txErr != nil {
		return uuid.Nil, txErr
	}

	s.log.Info().
		Str("purchase_id", purchase.ID.String()).
		Int("items", len(purchase.Items)).
		Msg("purchase recorded")

	return purchase.ID, nil
}

func (s *purchaseService) ListPurchases(ctx context.Context) ([]model.Purchase, error) {
	return s.purchases.List(ctx)
}
