package repository

import (
	"context"

	"trastienda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogRepository interface {
	CreateProductTx(tx *gorm.DB, p *model.Product) error
	ListProducts(ctx context.Context, includeInactive bool) ([]model.Product, error)
	FindProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	CreateVariantTx(tx *gorm.DB, v *model.Variant) error
	ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error)
	FindVariantByID(ctx context.Context, id uuid.UUID) (*model.Variant, error)

	// AdjustStockTx applies a signed stock delta inside the caller's
	// transaction. Deliberately no floor check; see the sale service.
	AdjustStockTx(tx *gorm.DB, variantID uuid.UUID, delta int) error

	// StockReport returns every active product with its variants.
	StockReport(ctx context.Context) ([]model.Product, error)

	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) DB() *gorm.DB { return r.db }

func (r *catalogRepo) CreateProductTx(tx *gorm.DB, p *model.Product) error {
	return tx.Create(p).Error
}

func (r *catalogRepo) ListProducts(ctx context.Context, includeInactive bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeInactive {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *catalogRepo) FindProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *catalogRepo) CreateVariantTx(tx *gorm.DB, v *model.Variant) error {
	return tx.Create(v).Error
}

func (r *catalogRepo) ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]model.Variant, error) {
	var variants []model.Variant
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&variants).Error
	return variants, err
}

func (r *catalogRepo) FindVariantByID(ctx context.Context, id uuid.UUID) (*model.Variant, error) {
	var v model.Variant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	return &v, err
}

func (r *catalogRepo) AdjustStockTx(tx *gorm.DB, variantID uuid.UUID, delta int) error {
	res := tx.Model(&model.Variant{}).
		Where("id = ?", variantID).
		UpdateColumn("stock", gorm.Expr("stock + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepo) StockReport(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Preload("Variants").
		Order("created_at DESC").
		Find(&products).Error
	return products, err
}
