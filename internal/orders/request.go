package orders

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/camuig/paper-broker/internal/storage"
)

var (
	ErrInvalidRequest  = errors.New("invalid order request")
	ErrUnsupportedSide = errors.New("order side not supported")
)

// CreateOrderRequest carries one order submission. Exactly one of Size and
// InvestmentAmount must be set; Price is required for LIMIT orders and
// ignored for MARKET orders.
type CreateOrderRequest struct {
	UserID           uint             `json:"userId"`
	InstrumentID     uint             `json:"instrumentId"`
	Side             string           `json:"side"`
	Type             string           `json:"type"`
	Size             *int64           `json:"size,omitempty"`
	InvestmentAmount *decimal.Decimal `json:"investmentAmount,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
}

// Validate covers field-level checks. Mode validation (size vs
// investmentAmount) belongs to the strategies.
func (r CreateOrderRequest) Validate() error {
	if r.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	}
	if r.InstrumentID == 0 {
		return fmt.Errorf("%w: instrumentId is required", ErrInvalidRequest)
	}
	switch r.Type {
	case storage.OrderTypeMarket:
	case storage.OrderTypeLimit:
		if r.Price == nil || !r.Price.IsPositive() {
			return fmt.Errorf("%w: LIMIT orders require a positive price", ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown order type %q", ErrInvalidRequest, r.Type)
	}
	if r.Size != nil && *r.Size <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidRequest)
	}
	if r.InvestmentAmount != nil && !r.InvestmentAmount.IsPositive() {
		return fmt.Errorf("%w: investmentAmount must be positive", ErrInvalidRequest)
	}
	return nil
}

// validateMode enforces that exactly one sizing mode is present.
func (r CreateOrderRequest) validateMode() error {
	hasSize := r.Size != nil
	hasAmount := r.InvestmentAmount != nil
	if hasSize && hasAmount {
		return fmt.Errorf("%w: provide either size or investmentAmount, not both", ErrInvalidRequest)
	}
	if !hasSize && !hasAmount {
		return fmt.Errorf("%w: either size or investmentAmount is required", ErrInvalidRequest)
	}
	return nil
}

// deriveSize returns the requested size, or the whole number of shares the
// investment amount buys at the execution price.
func (r CreateOrderRequest) deriveSize(price decimal.Decimal) int64 {
	if r.Size != nil {
		return *r.Size
	}
	return r.InvestmentAmount.Div(price).Floor().IntPart()
}
