// Package ledger derives cash and share balances from FILLED order history.
// Balances are a pure fold over the history, recomputed on every call; there
// is no stored balance to drift out of sync.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/camuig/paper-broker/internal/storage"
)

type Service struct {
	repo *storage.Repository
}

func NewService(repo *storage.Repository) *Service {
	return &Service{repo: repo}
}

// AvailableCash sums signed size×price over the user's FILLED orders:
// SELL and CASH_IN add, BUY and CASH_OUT subtract. Zero for empty history.
//
// The fold runs in Go rather than as SQL SUM because sqlite coerces decimal
// columns to float inside aggregates, which would break fixed-point
// arithmetic.
func (s *Service) AvailableCash(userID uint) (decimal.Decimal, error) {
	orders, err := s.repo.GetFilledOrders(userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("get filled orders: %w", err)
	}

	cash := decimal.Zero
	for _, o := range orders {
		if !o.Price.Valid {
			continue
		}
		amount := o.Price.Decimal.Mul(decimal.NewFromInt(o.Size))
		switch o.Side {
		case storage.SideSell, storage.SideCashIn:
			cash = cash.Add(amount)
		case storage.SideBuy, storage.SideCashOut:
			cash = cash.Sub(amount)
		}
	}
	return cash, nil
}

// AvailableShares sums signed size over the user's FILLED orders for one
// instrument: BUY adds, SELL subtracts. Zero for empty history.
func (s *Service) AvailableShares(userID, instrumentID uint) (int64, error) {
	orders, err := s.repo.GetFilledOrdersForInstrument(userID, instrumentID)
	if err != nil {
		return 0, fmt.Errorf("get filled orders: %w", err)
	}

	var shares int64
	for _, o := range orders {
		switch o.Side {
		case storage.SideBuy:
			shares += o.Size
		case storage.SideSell:
			shares -= o.Size
		}
	}
	return shares, nil
}
