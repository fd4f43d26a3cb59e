package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/paper-broker/internal/instruments"
	"github.com/camuig/paper-broker/internal/marketdata"
	"github.com/camuig/paper-broker/internal/storage"
)

func TestBuy_MarketOrderFills(t *testing.T) {
	svc, repo := newTestService(t)
	stock := seedStock(t, repo)
	currency := seedCurrency(t, repo)
	seedQuote(t, repo, stock.ID, "2023-07-14", "263.00")
	seedCash(t, repo, currency.ID, 1, 100000)

	order, err := svc.SubmitOrder(CreateOrderRequest{
		UserID:       1,
		InstrumentID: stock.ID,
		Side:         storage.SideBuy,
		Type:         storage.OrderTypeMarket,
		Size:         sizeOf(10),
	})
	require.NoError(t, err)

	assert.Equal(t, storage.StatusFilled, order.Status)
	assert.Equal(t, int64(10), order.Size)
	require.True(t, order.Price.Valid)
	assert.Equal(t, "263", order.Price.Decimal.String())
	assert.NotZero(t, order.ID)
}

func TestBuy_LimitOrderIsAcceptedAsNew(t *testing.T) {
	svc, repo := newTestService(t)
	stock := seedStock(t, repo)
	currency := seedCurrency(t, repo)
	seedCash(t, repo, currency.ID, 1, 100000)

	order, err := svc.SubmitOrder(CreateOrderRequest{
		UserID:       1,
		InstrumentID: stock.ID,
		Side:         storage.SideBuy,
		Type:         storage.OrderTypeLimit,
		Size:         sizeOf(5),
		Price:        amountOf("250.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, storage.StatusNew, order.Status)
	assert.Equal(t, "250", order.Price.Decimal.String())
}

func TestBuy_InsufficientFundsIsSoftRejected(t *testing.T) {
	svc, repo := newTestService(t)
	stock := seedStock(t, repo)
	currency := seedCurrency(t, repo)
	seedQuote(t, repo, stock.ID, "2023-07-14", "1000.00")
	seedCash(t, repo, currency.ID, 1, 500)

	order, err := svc.SubmitOrder(CreateOrderRequest{
		UserID:       1,
		InstrumentID: stock.ID,
		Side:         storage.SideBuy,
		Type:         storage.OrderTypeMarket,
		Size:         sizeOf(1),
	})
	require.NoError(t, err, "a rejection is a result, not an error")

	assert.Equal(t, storage.StatusRejected, order.Status)
	assert.Equal(t, int64(1), order.Size)
	assert.Equal(t, "1000", order.Price.Decimal.String())

	// The rejected order is part of the history but never counts toward
	// balances.
	stored, err := repo.GetOrder(order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, storage.StatusRejected, stored.Status)
}

func TestBuy_ExactCostBoundarySettles(t *testing.T) {
	svc, repo := newTestService(t)
	stock := seedStock(t, repo)
	currency := seedCurrency(t, repo)
	seedQuote(t, repo, stock.ID, "2023-07-14", "250.00")
	seedCash(t, repo, currency.ID, 1, 1000)

	// 4 × 250 spends exactly the available cash.
	order, err := svc.SubmitOrder(CreateOrderRequest{
		UserID:       1,
		InstrumentID: stock.ID,
		Side:         storage.SideBuy,
		Type:         storage.OrderTypeMarket,
		Size:         sizeOf(4),
	})
	require.NoError(t, err)
	assert.Equal(t, storage.StatusFilled, order.Status)
}

func TestBuy_InvestmentAmountDerivesSize(t *testing.T) {
	svc, repo := newTestService(t)
	stock := seedStock(t, repo)
	currency := seedCurrency(t, repo)
	seedQuote(t, repo, stock.ID, "2023-07-14", "263.00")
	seedCash(t, repo, currency.ID, 1, 100000)

	order, err := svc.SubmitOrder(CreateOrderRequest{
		UserID:           1,
		InstrumentID:     stock.ID,
		Side:             storage.SideBuy,
		Type:             storage.OrderTypeMarket,
		InvestmentAmount: amountOf("1000.00"),
	})
	require.NoError(t, err)

	// floor(1000 / 263) = 3
	assert.Equal(t, storage.StatusFilled, order.Status)
	assert.Equal(t, int64(3), order.Size)
}

func TestBuy_AmountBelowPriceRejectsWithZeroSize(t *testing.T) {
	svc, repo := newTestService(t)
	stock := seedStock(t, repo)
	currency := seedCurrency(t, repo)
	seedQuote(t, repo, stock.ID, "2023-07-14", "1000.00")
	seedCash(t, repo, currency.ID, 1, 100000)

	order, err := svc.SubmitOrder(CreateOrderRequest{
		UserID:           1,
		InstrumentID:     stock.ID,
		Side:             storage.SideBuy,
		Type:             storage.OrderTypeMarket,
		InvestmentAmount: amountOf("500.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, storage.StatusRejected, order.Status)
	assert.Equal(t, int64(0), order.Size)
	assert.Equal(t, "1000", order.Price.Decimal.String())
}

func TestBuy_ModeValidation(t *testing.T) {
	tests := []struct {
		name             string
		size             *int64
		investmentAmount string
	}{
		{name: "both size and amount", size: sizeOf(1), investmentAmount: "100"},
		{name: "neither size nor amount"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newTestService(t)
			stock := seedStock(t, repo)
			seedQuote(t, repo, stock.ID, "2023-07-14", "263.00")

			req := CreateOrderRequest{
				UserID:       1,
				InstrumentID: stock.ID,
				Side:         storage.SideBuy,
				Type:         storage.OrderTypeMarket,
				Size:         tt.size,
			}
			if tt.investmentAmount != "" {
				req.InvestmentAmount = amountOf(tt.investmentAmount)
			}

			_, err := svc.SubmitOrder(req)
			require.ErrorIs(t, err, ErrInvalidRequest)
			assert.Zero(t, orderCount(t, repo, 1), "hard failures must not create orders")
		})
	}
}

func TestBuy_HardFailuresCreateNothing(t *testing.T) {
	t.Run("unknown instrument", func(t *testing.T) {
		svc, repo := newTestService(t)
		_, err := svc.SubmitOrder(CreateOrderRequest{
			UserID:       1,
			InstrumentID: 42,
			Side:         storage.SideBuy,
			Type:         storage.OrderTypeMarket,
			Size:         sizeOf(1),
		})
		require.ErrorIs(t, err, instruments.ErrNotFound)
		assert.Zero(t, orderCount(t, repo, 1))
	})

	t.Run("currency instrument", func(t *testing.T) {
		svc, repo := newTestService(t)
		currency := seedCurrency(t, repo)
		_, err := svc.SubmitOrder(CreateOrderRequest{
			UserID:       1,
			InstrumentID: currency.ID,
			Side:         storage.SideBuy,
			Type:         storage.OrderTypeMarket,
			Size:         sizeOf(1),
		})
		require.ErrorIs(t, err, instruments.ErrNonTradable)
		assert.Zero(t, orderCount(t, repo, 1))
	})

	t.Run("no market price", func(t *testing.T) {
		svc, repo := newTestService(t)
		stock := seedStock(t, repo)
		_, err := svc.SubmitOrder(CreateOrderRequest{
			UserID:       1,
			InstrumentID: stock.ID,
			Side:         storage.SideBuy,
			Type:         storage.OrderTypeMarket,
			Size:         sizeOf(1),
		})
		require.ErrorIs(t, err, marketdata.ErrNoMarketPrice)
		assert.Zero(t, orderCount(t, repo, 1))
	})
}
