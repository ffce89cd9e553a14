package cache

import (
	"errors"
	"strings"
	"sync"

	"watchlist/models"
)

// ErrStockExists is returned when a symbol is added twice.
var ErrStockExists = errors.New("stock already in watchlist")

// WatchlistStore keeps the stock records of one page session in insertion order.
type WatchlistStore struct {
	mu      sync.RWMutex
	records []models.StockRecord
}

func NewWatchlistStore() *WatchlistStore {
	return &WatchlistStore{}
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Add appends data, or a placeholder when data is nil, under the normalized symbol.
func (s *WatchlistStore) Add(symbol string, data *models.StockRecord) (models.StockRecord, error) {
	symbol = NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexOf(symbol) >= 0 {
		return models.StockRecord{}, ErrStockExists
	}

	record := models.PlaceholderRecord(symbol)
	if data != nil {
		record = *data
		record.Symbol = symbol
	}
	s.records = append(s.records, record)
	return record, nil
}

// Remove drops the record for symbol. It reports whether anything was removed.
func (s *WatchlistStore) Remove(symbol string) bool {
	symbol = NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(symbol)
	if i < 0 {
		return false
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	return true
}

func (s *WatchlistStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// Update replaces the fields of an existing record in place, keeping its key.
func (s *WatchlistStore) Update(symbol string, data models.StockRecord) bool {
	symbol = NormalizeSymbol(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(symbol)
	if i < 0 {
		return false
	}
	data.Symbol = symbol
	s.records[i] = data
	return true
}

func (s *WatchlistStore) Get(symbol string) (models.StockRecord, bool) {
	symbol = NormalizeSymbol(symbol)

	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(symbol)
	if i < 0 {
		return models.StockRecord{}, false
	}
	return s.records[i], true
}

func (s *WatchlistStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Records returns a copy of the records in display order.
func (s *WatchlistStore) Records() []models.StockRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StockRecord, len(s.records))
	copy(out, s.records)
	return out
}

func (s *WatchlistStore) Symbols() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r.Symbol)
	}
	return out
}

func (s *WatchlistStore) indexOf(symbol string) int {
	for i, r := range s.records {
		if r.Symbol == symbol {
			return i
		}
	}
	return -1
}
