package models

import "time"

// PlaceholderName is shown while a freshly added symbol waits for its quote.
const PlaceholderName = "Loading..."

// StockRecord is one watchlist row as returned by the quote API.
type StockRecord struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	CurrentPrice  float64 `json:"currentPrice"`
	PreviousClose float64 `json:"previousClose"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// PlaceholderRecord returns the zero-priced record stored until data arrives.
func PlaceholderRecord(symbol string) StockRecord {
	return StockRecord{Symbol: symbol, Name: PlaceholderName}
}

// NotificationKind selects the notification styling.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a transient message shown above the watchlist.
type Notification struct {
	Message   string
	Kind      NotificationKind
	ExpiresAt time.Time
}

// Expired returns true once the notification should no longer be shown.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}
