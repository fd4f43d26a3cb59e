package storage

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Transaction runs fn with a repository scoped to a single database
// transaction. Order submission uses this so that the balance check and the
// order insert commit atomically.
func (r *Repository) Transaction(fn func(tx *Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Instruments

func (r *Repository) GetInstrument(id uint) (*Instrument, error) {
	var instrument Instrument
	err := r.db.First(&instrument, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &instrument, nil
}

func (r *Repository) GetInstruments(ids []uint) ([]Instrument, error) {
	var instruments []Instrument
	err := r.db.Where("id IN ?", ids).Find(&instruments).Error
	return instruments, err
}

// SearchInstruments matches ticker or name case-insensitively, excluding the
// currency pseudo-instrument.
func (r *Repository) SearchInstruments(term string) ([]Instrument, error) {
	pattern := "%" + strings.ToLower(term) + "%"
	var instruments []Instrument
	err := r.db.
		Where("type <> ?", InstrumentTypeCurrency).
		Where("LOWER(ticker) LIKE ? OR LOWER(name) LIKE ?", pattern, pattern).
		Order("id").
		Find(&instruments).Error
	return instruments, err
}

// Orders

func (r *Repository) CreateOrder(order *Order) error {
	return r.db.Create(order).Error
}

func (r *Repository) GetOrder(id uint) (*Order, error) {
	var order Order
	err := r.db.First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrders returns the user's full order history, oldest first.
func (r *Repository) GetOrders(userID uint) ([]Order, error) {
	var orders []Order
	err := r.db.
		Where("user_id = ?", userID).
		Order("id").
		Find(&orders).Error
	return orders, err
}

func (r *Repository) GetFilledOrders(userID uint) ([]Order, error) {
	var orders []Order
	err := r.db.
		Where("user_id = ? AND status = ?", userID, StatusFilled).
		Order("id").
		Find(&orders).Error
	return orders, err
}

func (r *Repository) GetFilledOrdersForInstrument(userID, instrumentID uint) ([]Order, error) {
	var orders []Order
	err := r.db.
		Where("user_id = ? AND instrument_id = ? AND status = ?", userID, instrumentID, StatusFilled).
		Order("id").
		Find(&orders).Error
	return orders, err
}

// Market data

// GetLatestQuote returns the max-date candle for one instrument, or nil when
// the instrument has no price history.
func (r *Repository) GetLatestQuote(instrumentID uint) (*MarketData, error) {
	var quote MarketData
	err := r.db.
		Where("instrument_id = ?", instrumentID).
		Order("date DESC").
		First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// GetLatestTradingDate returns the most recent date present anywhere in the
// price series. ok is false when the series is empty.
func (r *Repository) GetLatestTradingDate() (time.Time, bool, error) {
	var quote MarketData
	err := r.db.Order("date DESC").First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	return quote.Date, true, nil
}

// GetQuotesAt returns the candles of the given instruments on one date,
// keyed by instrument id.
func (r *Repository) GetQuotesAt(date time.Time, instrumentIDs []uint) (map[uint]MarketData, error) {
	var quotes []MarketData
	err := r.db.
		Where("date = ? AND instrument_id IN ?", date, instrumentIDs).
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}

	byInstrument := make(map[uint]MarketData, len(quotes))
	for _, q := range quotes {
		byInstrument[q.InstrumentID] = q
	}
	return byInstrument, nil
}

// CreateInstrument and CreateMarketData exist for seeding; in production the
// catalog and price series are maintained by external processes.

func (r *Repository) CreateInstrument(instrument *Instrument) error {
	return r.db.Create(instrument).Error
}

func (r *Repository) CreateMarketData(quote *MarketData) error {
	return r.db.Create(quote).Error
}
