package instruments

import (
	"errors"
	"fmt"

	"github.com/camuig/paper-broker/internal/storage"
)

var (
	ErrNotFound    = errors.New("instrument does not exist")
	ErrNonTradable = errors.New("instrument cannot be traded directly")
)

type Service struct {
	repo *storage.Repository
}

func NewService(repo *storage.Repository) *Service {
	return &Service{repo: repo}
}

// ResolveTradable resolves an instrument id and rejects the currency
// pseudo-instrument.
func (s *Service) ResolveTradable(instrumentID uint) (*storage.Instrument, error) {
	instrument, err := s.repo.GetInstrument(instrumentID)
	if err != nil {
		return nil, fmt.Errorf("get instrument: %w", err)
	}
	if instrument == nil {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, instrumentID)
	}
	if instrument.Type == storage.InstrumentTypeCurrency {
		return nil, fmt.Errorf("%w: %s", ErrNonTradable, instrument.Ticker)
	}
	return instrument, nil
}

// Search finds tradable instruments whose ticker or name matches the term.
func (s *Service) Search(term string) ([]storage.Instrument, error) {
	return s.repo.SearchInstruments(term)
}
