package portfolio

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/camuig/paper-broker/internal/ledger"
	"github.com/camuig/paper-broker/internal/logger"
	"github.com/camuig/paper-broker/internal/storage"
)

// Currency is the single accounting currency of the whole ledger.
const Currency = "ARS"

type Position struct {
	InstrumentID uint            `json:"instrumentId"`
	Ticker       string          `json:"ticker"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Quantity     int64           `json:"quantity"`
	MarketValue  decimal.Decimal `json:"marketValue"`
	// DailyReturnPercent is null when the previous close is missing or zero,
	// which leaves the ratio undefined.
	DailyReturnPercent *decimal.Decimal `json:"dailyReturnPercent"`
}

type Report struct {
	Currency          string          `json:"currency"`
	AvailableCash     decimal.Decimal `json:"availableCash"`
	TotalAccountValue decimal.Decimal `json:"totalAccountValue"`
	Positions         []Position      `json:"positions"`
}

type Service struct {
	repo   *storage.Repository
	ledger *ledger.Service
	logger *logger.Logger
}

func NewService(repo *storage.Repository, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		ledger: ledger.NewService(repo),
		logger: log,
	}
}

// GetPortfolio values the user's account: available cash plus every net
// positive position priced at the most recent trading date in the series.
// The report is a pure function of stored state and is never persisted.
func (s *Service) GetPortfolio(userID uint) (*Report, error) {
	availableCash, err := s.ledger.AvailableCash(userID)
	if err != nil {
		return nil, fmt.Errorf("available cash: %w", err)
	}

	report := &Report{
		Currency:      Currency,
		AvailableCash: availableCash,
		Positions:     []Position{},
	}

	quantities, err := s.netQuantities(userID)
	if err != nil {
		return nil, err
	}
	if len(quantities) == 0 {
		report.TotalAccountValue = availableCash
		return report, nil
	}

	ids := make([]uint, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	instruments, err := s.repo.GetInstruments(ids)
	if err != nil {
		return nil, fmt.Errorf("get instruments: %w", err)
	}
	byID := make(map[uint]storage.Instrument, len(instruments))
	for _, inst := range instruments {
		byID[inst.ID] = inst
	}

	// One reporting date for the whole report: the latest date anywhere in
	// the price series, not each instrument's own latest row.
	quotes := map[uint]storage.MarketData{}
	reportingDate, ok, err := s.repo.GetLatestTradingDate()
	if err != nil {
		return nil, fmt.Errorf("latest trading date: %w", err)
	}
	if ok {
		quotes, err = s.repo.GetQuotesAt(reportingDate, ids)
		if err != nil {
			return nil, fmt.Errorf("quotes at %s: %w", reportingDate.Format("2006-01-02"), err)
		}
	}

	totalValue := availableCash
	for _, id := range ids {
		instrument, found := byID[id]
		if !found || instrument.Type == storage.InstrumentTypeCurrency {
			continue
		}

		position := Position{
			InstrumentID: id,
			Ticker:       instrument.Ticker,
			Name:         instrument.Name,
			Type:         instrument.Type,
			Quantity:     quantities[id],
		}

		quote, priced := quotes[id]
		if priced {
			position.MarketValue = quote.Close.Mul(decimal.NewFromInt(position.Quantity))
			position.DailyReturnPercent = dailyReturn(quote)
			totalValue = totalValue.Add(position.MarketValue)
		} else {
			s.logger.Warn("position has no quote at reporting date",
				"ticker", instrument.Ticker, "instrument_id", id)
		}

		report.Positions = append(report.Positions, position)
	}

	report.TotalAccountValue = totalValue
	return report, nil
}

// netQuantities folds the user's FILLED orders into signed share counts per
// instrument and keeps the strictly positive ones.
func (s *Service) netQuantities(userID uint) (map[uint]int64, error) {
	orders, err := s.repo.GetFilledOrders(userID)
	if err != nil {
		return nil, fmt.Errorf("get filled orders: %w", err)
	}

	net := make(map[uint]int64)
	for _, o := range orders {
		switch o.Side {
		case storage.SideBuy:
			net[o.InstrumentID] += o.Size
		case storage.SideSell:
			net[o.InstrumentID] -= o.Size
		}
	}
	for id, qty := range net {
		if qty <= 0 {
			delete(net, id)
		}
	}
	return net, nil
}

func dailyReturn(quote storage.MarketData) *decimal.Decimal {
	if !quote.PreviousClose.IsPositive() {
		return nil
	}
	pct := quote.Close.Sub(quote.PreviousClose).
		Div(quote.PreviousClose).
		Mul(decimal.NewFromInt(100)).
		Round(2)
	return &pct
}
