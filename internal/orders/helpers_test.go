package orders

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/camuig/paper-broker/internal/config"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/storage"
)

func newTestService(t *testing.T) (*Service, *storage.Repository) {
	t.Helper()
	db, err := storage.NewDatabase(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	repo := storage.NewRepository(db)
	return NewService(repo, nil, logger.New("error")), repo
}

func seedStock(t *testing.T, repo *storage.Repository) storage.Instrument {
	t.Helper()
	stock := storage.Instrument{Ticker: "DYCA", Name: "Dycasa S.A.", Type: storage.InstrumentTypeStock}
	require.NoError(t, repo.CreateInstrument(&stock))
	return stock
}

func seedCurrency(t *testing.T, repo *storage.Repository) storage.Instrument {
	t.Helper()
	currency := storage.Instrument{Ticker: "ARS", Name: "PESOS", Type: storage.InstrumentTypeCurrency}
	require.NoError(t, repo.CreateInstrument(&currency))
	return currency
}

func seedQuote(t *testing.T, repo *storage.Repository, instrumentID uint, date, close string) {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	require.NoError(t, err)
	c := decimal.RequireFromString(close)
	require.NoError(t, repo.CreateMarketData(&storage.MarketData{
		InstrumentID:  instrumentID,
		Date:          d,
		Open:          c,
		High:          c,
		Low:           c,
		Close:         c,
		PreviousClose: c,
	}))
}

func seedCash(t *testing.T, repo *storage.Repository, currencyID, userID uint, amount int64) {
	t.Helper()
	require.NoError(t, repo.CreateOrder(&storage.Order{
		UserID:       userID,
		InstrumentID: currencyID,
		Side:         storage.SideCashIn,
		Type:         storage.OrderTypeMarket,
		Size:         amount,
		Price:        decimal.NewNullDecimal(decimal.NewFromInt(1)),
		Status:       storage.StatusFilled,
	}))
}

func sizeOf(v int64) *int64 { return &v }

func amountOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func orderCount(t *testing.T, repo *storage.Repository, userID uint) int {
	t.Helper()
	history, err := repo.GetOrders(userID)
	require.NoError(t, err)
	return len(history)
}
