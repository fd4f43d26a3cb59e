package orders

import (
	"fmt"

	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/storage"
)

// Notifier receives every persisted order outcome. Implementations must be
// best-effort; a failed notification never fails the submission.
type Notifier interface {
	NotifyOrder(order *storage.Order)
}

type Service struct {
	repo     *storage.Repository
	notifier Notifier
	logger   *logger.Logger
}

func NewService(repo *storage.Repository, notifier Notifier, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   log,
	}
}

// SubmitOrder dispatches the request to the strategy for its side. The
// strategy's check-then-settle sequence runs inside one transaction so the
// balance it validated against cannot be consumed by a concurrent submission
// before the order commits.
func (s *Service) SubmitOrder(req CreateOrderRequest) (*storage.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var order *storage.Order
	err := s.repo.Transaction(func(tx *storage.Repository) error {
		strategy, err := s.strategyFor(req.Side, tx)
		if err != nil {
			return err
		}
		order, err = strategy.Execute(req)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyOrder(order)
	}
	return order, nil
}

// strategyFor is a total switch over the side enumeration. The cash movement
// sides exist in stored history but are never accepted here; they fail the
// same way an unknown side does, carrying the offending value.
func (s *Service) strategyFor(side string, repo *storage.Repository) (Strategy, error) {
	switch side {
	case storage.SideBuy:
		return NewBuyStrategy(repo, s.logger), nil
	case storage.SideSell:
		return NewSellStrategy(repo, s.logger), nil
	case storage.SideCashIn, storage.SideCashOut:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedSide, side)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSide, side)
	}
}
