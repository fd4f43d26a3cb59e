package orders

import (
	"github.com/camuig/paper-broker/internal/instruments"
	"github.com/camuig/paper-broker/internal/ledger"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/marketdata"
	"github.com/camuig/paper-broker/internal/storage"
)

type SellStrategy struct {
	catalog *instruments.Service
	prices  *marketdata.Service
	ledger  *ledger.Service
	repo    *storage.Repository
	logger  *logger.Logger
}

func NewSellStrategy(repo *storage.Repository, log *logger.Logger) *SellStrategy {
	return &SellStrategy{
		catalog: instruments.NewService(repo),
		prices:  marketdata.NewService(repo),
		ledger:  ledger.NewService(repo),
		repo:    repo,
		logger:  log,
	}
}

func (st *SellStrategy) Execute(req CreateOrderRequest) (*storage.Order, error) {
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
		st.logger.Info("sell rejected: amount sells zero shares",
			"ticker", instrument.Ticker, "price", price)
		return persistOrder(st.repo, req, price, 0, storage.StatusRejected)
	}

	availableShares, err := st.ledger.AvailableShares(req.UserID, req.InstrumentID)
	if err != nil {
		return nil, err
	}

	if size > availableShares {
		st.logger.Info("sell rejected: size exceeds available shares",
			"ticker", instrument.Ticker,
			"size", size, "available_shares", availableShares)
		return persistOrder(st.repo, req, price, size, storage.StatusRejected)
	}

	status := settlementStatus(req.Type)
	st.logger.Info("sell accepted",
		"ticker", instrument.Ticker, "size", size, "price", price, "status", status)
	return persistOrder(st.repo, req, price, size, status)
}
