package storage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order sides. CASH_IN and CASH_OUT are cash movements recorded by an
// external process; the order engine reads them for the cash ledger but
// never creates them.
const (
	SideBuy     = "BUY"
	SideSell    = "SELL"
	SideCashIn  = "CASH_IN"
	SideCashOut = "CASH_OUT"
)

const (
	OrderTypeMarket = "MARKET"
	OrderTypeLimit  = "LIMIT"
)

const (
	StatusNew       = "NEW"
	StatusFilled    = "FILLED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// Instrument types. MONEDA is the currency pseudo-instrument and cannot be
// traded directly.
const (
	InstrumentTypeStock    = "ACCIONES"
	InstrumentTypeCurrency = "MONEDA"
)

type Instrument struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Ticker string `gorm:"index;not null" json:"ticker"`
	Name   string `gorm:"not null" json:"name"`
	Type   string `gorm:"not null" json:"type"`
}

func (Instrument) TableName() string { return "instruments" }

// Order rows are append-only: once created they are never updated or
// deleted. Cash and share balances are always recomputed from the FILLED
// history, never stored.
type Order struct {
	ID           uint                `gorm:"primarykey" json:"id"`
	UserID       uint                `gorm:"index;not null" json:"userId"`
	InstrumentID uint                `gorm:"index;not null" json:"instrumentId"`
	Side         string              `gorm:"not null" json:"side"`
	Type         string              `gorm:"not null" json:"type"`
	Size         int64               `gorm:"not null" json:"size"`
	Price        decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"price"`
	Status       string              `gorm:"not null" json:"status"`
	CreatedAt    time.Time           `json:"datetime"`
}

func (Order) TableName() string { return "orders" }

// MarketData holds one daily candle per instrument per date, appended by an
// external price-ingestion process and read-only here.
type MarketData struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	InstrumentID  uint            `gorm:"index;not null" json:"instrumentId"`
	Date          time.Time       `gorm:"type:date;index;not null" json:"date"`
	Open          decimal.Decimal `gorm:"type:decimal(12,2)" json:"open"`
	High          decimal.Decimal `gorm:"type:decimal(12,2)" json:"high"`
	Low           decimal.Decimal `gorm:"type:decimal(12,2)" json:"low"`
	Close         decimal.Decimal `gorm:"type:decimal(12,2)" json:"close"`
	PreviousClose decimal.Decimal `gorm:"type:decimal(12,2);column:previous_close" json:"previousClose"`
}

func (MarketData) TableName() string { return "marketdata" }
