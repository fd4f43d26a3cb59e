package orders

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/camuig/paper-broker/internal/storage"
)

// Strategy validates and settles one order for a single side. Hard failures
// (bad request, unknown instrument, no price) return an error and create
// nothing; business rejections persist and return a REJECTED order.
type Strategy interface {
	Execute(req CreateOrderRequest) (*storage.Order, error)
}

func settlementStatus(orderType string) string {
	if orderType == storage.OrderTypeMarket {
		return storage.StatusFilled
	}
	return storage.StatusNew
}

func persistOrder(repo *storage.Repository, req CreateOrderRequest, price decimal.Decimal, size int64, status string) (*storage.Order, error) {
	order := &storage.Order{
		UserID:       req.UserID,
		InstrumentID: req.InstrumentID,
		Side:         req.Side,
		Type:         req.Type,
		Size:         size,
		Price:        decimal.NewNullDecimal(price),
		Status:       status,
	}
	if err := repo.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return order, nil
}
