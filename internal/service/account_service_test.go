package service

import (
	"context"
	"testing"

	"trastienda/internal/apperror"
	"trastienda/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreditThenPaymentScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 10)
	customer := f.seedCustomer(t)

	// Customer buys on store credit for 300 and now owes 300.
	_, err := f.sales.CreateSale(ctx, CreateSaleRequest{
		CustomerID:    &customer.ID,
		Actor:         "clerk",
		PaymentMethod: model.PaymentStoreCredit,
		Items:         []SaleItemRequest{saleItem(variant, 1, 300)},
	})
	require.NoError(t, err)

	f.openRegister(t, 0)

	// Pays 300 cash: balance back to zero, cash enters the register.
	err = f.accounts.RegisterPayment(ctx, RegisterPaymentRequest{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(300),
		Method:     model.PaymentCash,
		Actor:      "clerk",
	})
	require.NoError(t, err)

	acc, err := f.customerRepo.FindAccountByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, 0, acc.Balance)

	sess := f.openSession(t)
	requireDecimalEqual(t, 300, sess.CashTotal)

	movs, err := f.registerRepo.ListMovements(ctx, sess.ID)
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, model.MovementAccountPayment, movs[0].Kind)
	requireDecimalEqual(t, 300, movs[0].Amount)
}

func TestRegisterPaymentWithoutAccount(t *testing.T) {
	f := newFixture(t)
	f.openRegister(t, 0)

	err := f.accounts.RegisterPayment(context.Background(), RegisterPaymentRequest{
		CustomerID: uuid.New(),
		Amount:     decimal.NewFromInt(100),
		Method:     model.PaymentCash,
		Actor:      "clerk",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestRegisterPaymentRequiresOpenRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	customer := f.seedCustomer(t)

	err := f.accounts.RegisterPayment(ctx, RegisterPaymentRequest{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(100),
		Method:     model.PaymentCash,
		Actor:      "clerk",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidState, apperror.KindOf(err))

	// The account credit recorded before the guard must have rolled back.
	acc, err := f.customerRepo.FindAccountByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	requireDecimalEqual(t, 0, acc.Balance)

	movs, err := f.customerRepo.ListMovements(ctx, acc.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRegisterPaymentValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	customer := f.seedCustomer(t)
	f.openRegister(t, 0)

	// Store credit cannot pay down store credit.
	err := f.accounts.RegisterPayment(ctx, RegisterPaymentRequest{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(100),
		Method:     model.PaymentStoreCredit,
		Actor:      "clerk",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	err = f.accounts.RegisterPayment(ctx, RegisterPaymentRequest{
		CustomerID: customer.ID,
		Amount:     decimal.Zero,
		Method:     model.PaymentCash,
		Actor:      "clerk",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestListMovementsOrderedMostRecentFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	variant := f.seedVariant(t, 10)
	customer := f.seedCustomer(t)
	f.openRegister(t, 0)

	_, err := f.sales.CreateSale(ctx, CreateSaleRequest{
		CustomerID:    &customer.ID,
		Actor:         "clerk",
		PaymentMethod: model.PaymentStoreCredit,
		Items:         []SaleItemRequest{saleItem(variant, 1, 500)},
	})
	require.NoError(t, err)

	err = f.accounts.RegisterPayment(ctx, RegisterPaymentRequest{
		CustomerID: customer.ID,
		Amount:     decimal.NewFromInt(200),
		Method:     model.PaymentTransfer,
		Actor:      "clerk",
	})
	require.NoError(t, err)

	st, err := f.accounts.ListMovements(ctx, customer.ID)
	require.NoError(t, err)
	require.Len(t, st.Movements, 2)

	// Payment (the later movement) comes first.
	requireDecimalEqual(t, 200, st.Movements[0].Credit)
	requireDecimalEqual(t, 500, st.Movements[1].Debit)
	requireDecimalEqual(t, 300, st.Account.Balance)
}

func TestListMovementsWithoutAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.accounts.ListMovements(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
