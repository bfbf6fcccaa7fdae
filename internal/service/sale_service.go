package service

import (
	"context"
	"errors"
	"fmt"

	"trastienda/internal/apperror"
	"trastienda/internal/model"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaleItemRequest is one line of a sale.
type SaleItemRequest struct {
	VariantID uuid.UUID `validate:"required"`
	Quantity  int       `validate:"required,gt=0"`
	UnitPrice decimal.Decimal
}

type CreateSaleRequest struct {
	CustomerID    *uuid.UUID
	Actor         string            `validate:"required"`
	PaymentMethod string            `validate:"required,oneof=cash card transfer store_credit"`
	Items         []SaleItemRequest `validate:"required,min=1,dive"`
	Notes         *string
}

type SaleReceipt struct {
	SaleID uuid.UUID
	Total  decimal.Decimal
}

type SaleService interface {
	CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleReceipt, error)
	// CancelSale is idempotent: cancelling an already-cancelled sale is a no-op.
	CancelSale(ctx context.Context, saleID uuid.UUID) error
	ListSales(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error)
}

type saleService struct {
	sales     repository.SaleRepository
	catalog   repository.CatalogRepository
	customers repository.CustomerRepository
	register  repository.RegisterRepository
	audit     repository.AuditRepository
	validate  *validator.Validate
	log       *logger.Logger
}

func NewSaleService(
	sales repository.SaleRepository,
	catalog repository.CatalogRepository,
	customers repository.CustomerRepository,
	register repository.RegisterRepository,
	audit repository.AuditRepository,
	log *logger.Logger,
) SaleService {
	return &saleService{
		sales:     sales,
		catalog:   catalog,
		customers: customers,
		register:  register,
		audit:     audit,
		validate:  validator.New(),
		log:       log,
	}
}

// CreateSale runs the full sale unit: persist sale + items, decrement stock,
// route the payment to the register or the customer's credit account, record
// the audit entry. All of it commits or none of it does.
//
// Stock is decremented without a floor check: the shop tolerates oversell and
// reconciles negative counters from the stock report.
func (s *saleService) CreateSale(ctx context.Context, req CreateSaleRequest) (*SaleReceipt, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperror.Validation(err.Error())
	}
	for _, it := range req.Items {
		if it.UnitPrice.IsNegative() {
			return nil, apperror.Validation("unit price must not be negative")
		}
	}
	if req.PaymentMethod == model.PaymentStoreCredit && req.CustomerID == nil {
		return nil, apperror.Validation("store-credit sale requires a customer")
	}

	// Totals are fixed before the transaction starts; prices come from the
	// request, not the catalog, so no pre-flight product resolution is needed.
	total := decimal.Zero
	items := make([]model.SaleItem, 0, len(req.Items))
	for _, it := range req.Items {
		subtotal := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(subtotal)
		items = append(items, model.SaleItem{
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  subtotal,
		})
	}

	sale := model.Sale{
		Date:          nowISO(),
		CustomerID:    req.CustomerID,
		Actor:         req.Actor,
		PaymentMethod: req.PaymentMethod,
		Total:         total,
		Status:        model.SaleConfirmed,
		Notes:         req.Notes,
		Items:         items,
	}

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		// Resolve the payment destination first, inside the unit, so the
		// guard and the movement it guards cannot be split by a concurrent
		// close (see the register repository).
		var account *model.CustomerAccount
		var session *model.RegisterSession

		if req.PaymentMethod == model.PaymentStoreCredit {
			acc, err := s.customers.FindAccountByCustomerTx(tx, *req.CustomerID)
			if err != nil {
				return apperror.NotFound("customer has no credit account")
			}
			account = acc
		} else {
			sess, err := s.register.FindOpenSessionTx(tx)
			if err != nil {
				return apperror.InvalidState("no open register session")
			}
			session = sess
		}

		if err := s.sales.CreateTx(tx, &sale); err != nil {
			return err
		}

		for _, it := range sale.Items {
			if err := s.catalog.AdjustStockTx(tx, it.VariantID, -it.Quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperror.NotFound(fmt.Sprintf("variant %s not found", it.VariantID))
				}
				return err
			}
		}

		if account != nil {
			mov := &model.AccountMovement{
				AccountID:   account.ID,
				Date:        sale.Date,
				Description: "Sale on store credit",
				Debit:       total,
				Credit:      decimal.Zero,
				RefKind:     strPtr(model.AccountRefSale),
				RefID:       &sale.ID,
			}
			if err := s.customers.CreateMovementTx(tx, mov); err != nil {
				return err
			}
			if err := s.customers.AdjustBalanceTx(tx, account.ID, total); err != nil {
				return err
			}
		} else {
			mov := &model.CashMovement{
				SessionID:   session.ID,
				Date:        sale.Date,
				Kind:        model.MovementSale,
				Method:      req.PaymentMethod,
				Amount:      total,
				RefKind:     strPtr("sale"),
				RefID:       &sale.ID,
				Description: "Merchandise sale",
			}
			if err := s.register.CreateMovementTx(tx, mov); err != nil {
				return err
			}
			if err := s.register.AddTotalTx(tx, session.ID, req.PaymentMethod, total); err != nil {
				return err
			}
		}

		after, err := snapshot(sale)
		if err != nil {
			return err
		}
		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     nowISO(),
			Actor:    strPtr(req.Actor),
			Entity:   "sales",
			EntityID: &sale.ID,
			Action:   "create",
			After:    after,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	s.log.Info().
		Str("sale_id", sale.ID.String()).
		Str("method", req.PaymentMethod).
		Str("total", total.String()).
		Msg("sale created")

	return &SaleReceipt{SaleID: sale.ID, Total: total}, nil
}

// CancelSale reverses a confirmed sale: stock is restored and the payment is
// reversed with inverse ledger entries. The confirmed -> cancelled transition
// happens exactly once; a second call returns success without touching state.
func (s *saleService) CancelSale(ctx context.Context, saleID uuid.UUID) error {
	var cancelled bool

	txErr := runTx(ctx, s.sales.DB(), func(tx *gorm.DB) error {
		sale, err := s.sales.FindByIDTx(tx, saleID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("sale not found")
			}
			return err
		}
		if sale.Status == model.SaleCancelled {
			return nil
		}

		before, err := snapshot(sale)
		if err != nil {
			return err
		}

		for _, it := range sale.Items {
			if err := s.catalog.AdjustStockTx(tx, it.VariantID, it.Quantity); err != nil {
				return err
			}
		}

		now := nowISO()
		if sale.PaymentMethod == model.PaymentStoreCredit {
			acc, err := s.customers.FindAccountByCustomerTx(tx, *sale.CustomerID)
			if err != nil {
				return apperror.NotFound("customer has no credit account")
			}
			mov := &model.AccountMovement{
				AccountID:   acc.ID,
				Date:        now,
				Description: "Sale cancellation",
				Debit:       decimal.Zero,
				Credit:      sale.Total,
				RefKind:     strPtr(model.AccountRefSaleCancel),
				RefID:       &sale.ID,
			}
			if err := s.customers.CreateMovementTx(tx, mov); err != nil {
				return err
			}
			if err := s.customers.AdjustBalanceTx(tx, acc.ID, sale.Total.Neg()); err != nil {
				return err
			}
		} else {
			sess, err := s.register.FindOpenSessionTx(tx)
			if err != nil {
				return apperror.InvalidState("no open register session")
			}
			mov := &model.CashMovement{
				SessionID:   sess.ID,
				Date:        now,
				Kind:        model.MovementCancellation,
				Method:      sale.PaymentMethod,
				Amount:      sale.Total.Neg(),
				RefKind:     strPtr("sale"),
				RefID:       &sale.ID,
				Description: "Sale cancellation",
			}
			if err := s.register.CreateMovementTx(tx, mov); err != nil {
				return err
			}
			if err := s.register.AddTotalTx(tx, sess.ID, sale.PaymentMethod, sale.Total.Neg()); err != nil {
				return err
			}
		}

		if err := s.sales.UpdateStatusTx(tx, sale.ID, model.SaleCancelled); err != nil {
			return err
		}
		cancelled = true

		return s.audit.RecordTx(tx, &model.AuditEntry{
			Date:     now,
			Actor:    strPtr(sale.Actor),
			Entity:   "sales",
			EntityID: &sale.ID,
			Action:   "cancel",
			Before:   before,
		})
	})
	if txErr != nil {
		return txErr
	}

	if cancelled {
		s.log.Info().Str("sale_id", saleID.String()).Msg("sale cancelled")
	}
	return nil
}

func (s *saleService) ListSales(ctx context.Context, filter repository.SaleFilter) ([]model.Sale, error) {
	return s.sales.List(ctx, filter)
}
