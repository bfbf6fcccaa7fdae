package repository

import (
	"context"

	"trastienda/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProviderRepository interface {
	CreateTx(tx *gorm.DB, p *model.Provider) error
	List(ctx context.Context) ([]model.Provider, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Provider, error)
	DB() *gorm.DB
}

type providerRepo struct{ db *gorm.DB }

func NewProviderRepository(db *gorm.DB) ProviderRepository { return &providerRepo{db: db} }

func (r *providerRepo) DB() *gorm.DB { return r.db }

func (r *providerRepo) CreateTx(tx *gorm.DB, p *model.Provider) error {
	return tx.Create(p).Error
}

func (r *providerRepo) List(ctx context.Context) ([]model.Provider, error) {
	var providers []model.Provider
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&providers).Error
	return providers, err
}

func (r *providerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Provider, error) {
	var p model.Provider
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}
