package marketdata

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/camuig/paper-broker/internal/storage"
)

var ErrNoMarketPrice = errors.New("no market price found for the instrument")

type Service struct {
	repo *storage.Repository
}

func NewService(repo *storage.Repository) *Service {
	return &Service{repo: repo}
}

// ExecutionPrice resolves the price an order executes at: the caller's price
// for LIMIT orders, the latest known close for MARKET orders. A missing or
// zero close is ErrNoMarketPrice.
func (s *Service) ExecutionPrice(instrumentID uint, orderType string, limitPrice *decimal.Decimal) (decimal.Decimal, error) {
	if orderType == storage.OrderTypeLimit {
		// Presence and positivity are enforced by request validation.
		return *limitPrice, nil
	}

	quote, err := s.repo.GetLatestQuote(instrumentID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get latest quote: %w", err)
	}
	if quote == nil || quote.Close.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: id %d", ErrNoMarketPrice, instrumentID)
	}
	return quote.Close, nil
}
