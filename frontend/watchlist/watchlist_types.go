package watchlist

import (
	"time"

	"watchlist/models"
)

const (
	RefreshDebounceWindow = 300 * time.Millisecond
	NotificationLifetime  = 3 * time.Second
	DefaultCurrency       = "₹"
)

// Recommendation is a one-click suggestion card.
type Recommendation struct {
	Symbol string
	Name   string
}

// Options tunes a page session. Zero fields fall back to the package defaults.
type Options struct {
	Currency        string
	Recommendations []Recommendation
	DebounceWindow  time.Duration
	NotificationTTL time.Duration
}

func (o Options) withDefaults() Options {
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.DebounceWindow <= 0 {
		o.DebounceWindow = RefreshDebounceWindow
	}
	if o.NotificationTTL <= 0 {
		o.NotificationTTL = NotificationLifetime
	}
	return o
}

// RowView is one rendered table row.
type RowView struct {
	Symbol        string
	Name          string
	Price         string
	PreviousClose string
	Change        string
	ChangePercent string
	ChangeClass   string
	RemoveAction  string
}

// TableView is the render-ready projection of the store.
type TableView struct {
	ShowEmptyState bool
	ShowTable      bool
	Count          int
	Rows           []RowView
}

type PageData struct {
	Table           TableView
	Notification    *models.Notification
	DismissAfter    time.Duration
	ConfirmClear    bool
	Recommendations []Recommendation
}
