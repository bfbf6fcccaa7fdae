package service

import (
	"context"
	"testing"

	"trastienda/internal/infra"
	"trastienda/internal/model"
	"trastienda/internal/repository"
	"trastienda/pkg/logger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fixture wires every repository and service against an isolated in-memory
// SQLite database, so the transactional paths run for real and rollbacks
// are observable.
type fixture struct {
	db *gorm.DB

	catalogRepo  repository.CatalogRepository
	providerRepo repository.ProviderRepository
	purchaseRepo repository.PurchaseRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	registerRepo repository.RegisterRepository
	auditRepo    repository.AuditRepository
	userRepo     repository.UserRepository

	sales     SaleService
	purchases PurchaseService
	accounts  AccountService
	register  RegisterService
	catalog   CatalogService
	providers ProviderService
	customers CustomerService
	auth      AuthService
	reports   ReportService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := infra.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = infra.Close(db) })

	f := &fixture{
		db:           db,
		catalogRepo:  repository.NewCatalogRepository(db),
		providerRepo: repository.NewProviderRepository(db),
		purchaseRepo: repository.NewPurchaseRepository(db),
		customerRepo: repository.NewCustomerRepository(db),
		saleRepo:     repository.NewSaleRepository(db),
		registerRepo: repository.NewRegisterRepository(db),
		auditRepo:    repository.NewAuditRepository(db),
		userRepo:     repository.NewUserRepository(db),
	}

	log := logger.Nop()
	f.sales = NewSaleService(f.saleRepo, f.catalogRepo, f.customerRepo, f.registerRepo, f.auditRepo, log)
	f.purchases = NewPurchaseService(f.purchaseRepo, f.catalogRepo, f.auditRepo, log)
	f.accounts = NewAccountService(f.customerRepo, f.registerRepo, f.auditRepo, log)
	f.register = NewRegisterService(f.registerRepo, log)
	f.catalog = NewCatalogService(f.catalogRepo, f.auditRepo, log)
	f.providers = NewProviderService(f.providerRepo, f.auditRepo, log)
	f.customers = NewCustomerService(f.customerRepo, f.auditRepo, log)
	f.auth = NewAuthService(f.userRepo, log)
	f.reports = NewReportService(f.catalogRepo, f.saleRepo)

	return f
}

func (f *fixture) seedVariant(t *testing.T, stock int) *model.Variant {
	t.Helper()
	ctx := context.Background()

	product, err := f.catalog.CreateProduct(ctx, CreateProductRequest{
		Name:  "T-shirt",
		Actor: "test",
	})
	require.NoError(t, err)

	variant, err := f.catalog.CreateVariant(ctx, CreateVariantRequest{
		ProductID:    product.ID,
		Color:        strPtr("black"),
		Size:         strPtr("M"),
		InitialStock: stock,
		Actor:        "test",
	})
	require.NoError(t, err)
	return variant
}

func (f *fixture) seedCustomer(t *testing.T) *model.Customer {
	t.Helper()
	customer, err := f.customers.CreateCustomer(context.Background(), CreateCustomerRequest{
		FirstName: "Ana",
		Actor:     "test",
	})
	require.NoError(t, err)
	return customer
}

func (f *fixture) openRegister(t *testing.T, openingFloat int64) *model.RegisterSession {
	t.Helper()
	sess, err := f.register.Open(context.Background(), decimal.NewFromInt(openingFloat), "test")
	require.NoError(t, err)
	return sess
}

func (f *fixture) variantStock(t *testing.T, v *model.Variant) int {
	t.Helper()
	fresh, err := f.catalogRepo.FindVariantByID(context.Background(), v.ID)
	require.NoError(t, err)
	return fresh.Stock
}

func (f *fixture) openSession(t *testing.T) *model.RegisterSession {
	t.Helper()
	sess, err := f.registerRepo.FindOpenSession(context.Background())
	require.NoError(t, err)
	return sess
}

func requireDecimalEqual(t *testing.T, want int64, got decimal.Decimal) {
	t.Helper()
	require.True(t, got.Equal(decimal.NewFromInt(want)), "want %d, got %s", want, got)
}
