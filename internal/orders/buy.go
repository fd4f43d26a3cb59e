package orders

import (
	"github.com/shopspring/decimal"

	"github.com/camuig/paper-broker/internal/instruments"
	"github.com/camuig/paper-broker/internal/ledger"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/marketdata"
	"github.com/camuig/paper-broker/internal/storage"
)

type BuyStrategy struct {
	catalog *instruments.Service
	prices  *marketdata.Service
	ledger  *ledger.Service
	repo    *storage.Repository
	logger  *logger.Logger
}

func NewBuyStrategy(repo *storage.Repository, log *logger.Logger) *BuyStrategy {
	return &BuyStrategy{
		catalog: instruments.NewService(repo),
		prices:  marketdata.NewService(repo),
		ledger:  ledger.NewService(repo),
		repo:    repo,
		logger:  log,
	}
}

func (st *BuyStrategy) Execute(req CreateOrderRequest) (*storage.Order, error) {
	if err := req.validateMode(); err != nil {
		return nil, err
	}

	instrument, err := st.catalog.ResolveTradable(req.InstrumentID)
	if err != nil {
		return nil, err
	}

	price, err := st.prices.ExecutionPrice(req.InstrumentID, req.Type, req.Price)
	if err != nil {
		return nil, err
	}

	size := req.deriveSize(price)
	if size == 0 {
		st.logger.Info("buy rejected: amount buys zero shares",
			"ticker", instrument.Ticker, "price", price)
		return persistOrder(st.repo, req, price, 0, storage.StatusRejected)
	}

	totalCost := price.Mul(decimal.NewFromInt(size))
	availableCash, err := st.ledger.AvailableCash(req.UserID)
	if err != nil {
		return nil, err
	}

	// Boundary is inclusive: an order that costs exactly the available cash
	// settles.
	if totalCost.GreaterThan(availableCash) {
		st.logger.Info("buy rejected: insufficient funds",
			"ticker", instrument.Ticker,
			"total_cost", totalCost, "available_cash", availableCash)
		return persistOrder(st.repo, req, price, size, storage.StatusRejected)
	}

	status := settlementStatus(req.Type)
	st.logger.Info("buy accepted",
		"ticker", instrument.Ticker, "size", size, "price", price, "status", status)
	return persistOrder(st.repo, req, price, size, status)
}
