// Command seed loads a JSON fixture of instruments, daily candles and
// starting cash into the database. It stands in for the external catalog and
// price-ingestion processes during development; the server itself never
// writes those tables.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/camuig/paper-broker/internal/config"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/storage"
)

type fixture struct {
	Instruments []fixtureInstrument `json:"instruments"`
	MarketData  []fixtureCandle     `json:"marketdata"`
	Cash        []fixtureCash       `json:"cash"`
}

type fixtureInstrument struct {
	Ticker string `json:"ticker"`
	Name   string `json:"name"`
	Type   string `json:"type"`
}

type fixtureCandle struct {
	Ticker        string          `json:"ticker"`
	Date          string          `json:"date"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Close         decimal.Decimal `json:"close"`
	PreviousClose decimal.Decimal `json:"previousClose"`
}

type fixtureCash struct {
	UserID uint  `json:"userId"`
	Amount int64 `json:"amount"`
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	fixturePath := flag.String("fixture", "fixtures/seed.json", "path to fixture file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	db, err := storage.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	repo := storage.NewRepository(db)

	data, err := os.ReadFile(*fixturePath)
	if err != nil {
		log.Fatalf("read fixture: %v", err)
	}

	var fix fixture
	if err := json.Unmarshal(data, &fix); err != nil {
		log.Fatalf("parse fixture: %v", err)
	}

	instrumentIDs := make(map[string]uint, len(fix.Instruments))
	var currencyID uint
	for _, fi := range fix.Instruments {
		instrument := &storage.Instrument{
			Ticker: fi.Ticker,
			Name:   fi.Name,
			Type:   fi.Type,
		}
		if err := repo.CreateInstrument(instrument); err != nil {
			log.Fatalf("create instrument %s: %v", fi.Ticker, err)
		}
		instrumentIDs[fi.Ticker] = instrument.ID
		if fi.Type == storage.InstrumentTypeCurrency {
			currencyID = instrument.ID
		}
	}
	log.Info("instruments seeded", "count", len(fix.Instruments))

	for _, fc := range fix.MarketData {
		id, ok := instrumentIDs[fc.Ticker]
		if !ok {
			log.Fatalf("marketdata references unknown ticker %s", fc.Ticker)
		}
		date, err := time.ParseInLocation("2006-01-02", fc.Date, time.UTC)
		if err != nil {
			log.Fatalf("parse date %q: %v", fc.Date, err)
		}
		quote := &storage.MarketData{
			InstrumentID:  id,
			Date:          date,
			Open:          fc.Open,
			High:          fc.High,
			Low:           fc.Low,
			Close:         fc.Close,
			PreviousClose: fc.PreviousClose,
		}
		if err := repo.CreateMarketData(quote); err != nil {
			log.Fatalf("create marketdata %s %s: %v", fc.Ticker, fc.Date, err)
		}
	}
	log.Info("marketdata seeded", "count", len(fix.MarketData))

	// Starting balances are ordinary CASH_IN orders against the currency
	// instrument; the cash ledger derives everything from them.
	if len(fix.Cash) > 0 && currencyID == 0 {
		log.Fatalf("cash fixture requires an instrument of type %s", storage.InstrumentTypeCurrency)
	}
	for _, c := range fix.Cash {
		order := &storage.Order{
			UserID:       c.UserID,
			InstrumentID: currencyID,
			Side:         storage.SideCashIn,
			Type:         storage.OrderTypeMarket,
			Size:         c.Amount,
			Price:        decimal.NewNullDecimal(decimal.NewFromInt(1)),
			Status:       storage.StatusFilled,
		}
		if err := repo.CreateOrder(order); err != nil {
			log.Fatalf("create cash order for user %d: %v", c.UserID, err)
		}
	}
	log.Info("cash seeded", "count", len(fix.Cash))
}
