package service

import (
	"context"
	"testing"

	"trastienda/internal/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePurchaseIncrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 3)
	provider, err := f.providers.CreateProvider(ctx, CreateProviderRequest{Name: "Acme", Actor: "test"})
	require.NoError(t, err)

	id, err := f.purchases.CreatePurchase(ctx, CreatePurchaseRequest{
		ProviderID: provider.ID,
		Notes:      strPtr("winter restock"),
		Actor:      "admin",
		Items: []PurchaseItemRequest{
			{VariantID: variant.ID, Quantity: 12, UnitCost: decimal.NewFromInt(80)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 15, f.variantStock(t, variant))

	purchase, err := f.purchaseRepo.FindByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, purchase.Items, 1)
	assert.Equal(t, 12, purchase.Items[0].Quantity)
	assert.NotEmpty(t, purchase.Date)

	// Intake never touches the register.
	_, err = f.registerRepo.FindOpenSession(ctx)
	require.Error(t, err)

	entries, err := f.auditRepo.ListByEntity(ctx, "purchases")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "create", entries[0].Action)
}

func TestCreatePurchaseRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 3)
	provider, err := f.providers.CreateProvider(ctx, CreateProviderRequest{Name: "Acme", Actor: "test"})
	require.NoError(t, err)

	for _, qty := range []int{0, -4} {
		_, err := f.purchases.CreatePurchase(ctx, CreatePurchaseRequest{
			ProviderID: provider.ID,
			Actor:      "admin",
			Items: []PurchaseItemRequest{
				{VariantID: variant.ID, Quantity: qty, UnitCost: decimal.NewFromInt(80)},
			},
		})
		require.Error(t, err)
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	}

	_, err = f.purchases.CreatePurchase(ctx, CreatePurchaseRequest{
		ProviderID: provider.ID,
		Actor:      "admin",
		Items: []PurchaseItemRequest{
			{VariantID: variant.ID, Quantity: 1, UnitCost: decimal.NewFromInt(-1)},
		},
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	assert.Equal(t, 3, f.variantStock(t, variant))
}

func TestCreatePurchaseRequiresItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	provider, err := f.providers.CreateProvider(ctx, CreateProviderRequest{Name: "Acme", Actor: "test"})
	require.NoError(t, err)

	_, err = f.purchases.CreatePurchase(ctx, CreatePurchaseRequest{
		ProviderID: provider.ID,
		Actor:      "admin",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreatePurchaseMultipleItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	v1 := f.seedVariant(t, 0)
	v2 := f.seedVariant(t, 5)
	provider, err := f.providers.CreateProvider(ctx, CreateProviderRequest{Name: "Acme", Actor: "test"})
	require.NoError(t, err)

	_, err = f.purchases.CreatePurchase(ctx, CreatePurchaseRequest{
		ProviderID: provider.ID,
		Actor:      "admin",
		Items: []PurchaseItemRequest{
			{VariantID: v1.ID, Quantity: 10, UnitCost: decimal.NewFromInt(50)},
			{VariantID: v2.ID, Quantity: 2, UnitCost: decimal.NewFromInt(120)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, f.variantStock(t, v1))
	assert.Equal(t, 7, f.variantStock(t, v2))
}

// Purchases stay invisible to the register even when one is open.
func TestCreatePurchaseLeavesOpenRegisterUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 0)
	provider, err := f.providers.CreateProvider(ctx, CreateProviderRequest{Name: "Acme", Actor: "test"})
	require.NoError(t, err)
	f.openRegister(t, 500)

	_, err = f.purchases.CreatePurchase(ctx, CreatePurchaseRequest{
		ProviderID: provider.ID,
		Actor:      "admin",
		Items: []PurchaseItemRequest{
			{VariantID: variant.ID, Quantity: 4, UnitCost: decimal.NewFromInt(25)},
		},
	})
	require.NoError(t, err)

	sess := f.openSession(t)
	requireDecimalEqual(t, 0, sess.CashTotal)
	movs, err := f.registerRepo.ListMovements(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}
