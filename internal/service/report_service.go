package service

import (
	"context"

	"trastienda/internal/model"
	"trastienda/internal/repository"

	"github.com/google/uuid"
)

// StockRow is one variant line in the stock report.
type StockRow struct {
	ProductID   uuid.UUID
	ProductName string
	VariantID   uuid.UUID
	Color       *string
	Size        *string
	Stock       int
}

// ReportService exposes the read-only queries: plain joins and filters
// over committed state.
type ReportService interface {
	StockReport(ctx context.Context) ([]StockRow, error)
	SalesByPeriod(ctx context.Context, from, to string) ([]model.Sale, error)
}

type reportService struct {
	catalog repository.CatalogRepository
	sales   repository.SaleRepository
}

func NewReportService(catalog repository.CatalogRepository, sales repository.SaleRepository) ReportService {
	return &reportService{catalog: catalog, sales: sales}
}

func (s *reportService) StockReport(ctx context.Context) ([]StockRow, error) {
	products, err := s.catalog.StockReport(ctx)
	if err != nil {
		return nil, err
	}

	var rows []StockRow
	for _, p := range products {
		for _, v := range p.Variants {
			rows = append(rows, StockRow{
				ProductID:   p.ID,
				ProductName: p.Name,
				VariantID:   v.ID,
				Color:       v.Color,
				Size:        v.Size,
				Stock:       v.Stock,
			})
		}
	}
	return rows, nil
}

func (s *reportService) SalesByPeriod(ctx context.Context, from, to string) ([]model.Sale, error) {
	return s.sales.List(ctx, repository.SaleFilter{From: from, To: to})
}
