package watchlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"watchlist/infrastructure/cache"
	"watchlist/infrastructure/stockapi"
	"watchlist/models"
)

var (
	ErrInvalidSymbol     = errors.New("invalid symbol")
	ErrClearNotConfirmed = errors.New("clear not confirmed")
	ErrWatchlistEmpty    = errors.New("watchlist is empty")
)

const (
	msgStockExists      = "Stock already in watchlist"
	msgNothingToRefresh = "No stocks to refresh"
	msgRefreshed        = "Watchlist refreshed successfully"
	msgRefreshFailed    = "Failed to refresh watchlist"
	msgAlreadyEmpty     = "Watchlist is already empty"
	msgCleared          = "Watchlist cleared"
)

// QuoteFetcher is the subset of the quote API client the controller needs.
type QuoteFetcher interface {
	FetchOne(ctx context.Context, symbol string) (models.StockRecord, error)
	FetchMany(ctx context.Context, symbols []string) ([]models.StockRecord, error)
}

// Controller applies user actions to one watchlist.
type Controller struct {
	store    *cache.WatchlistStore
	api      QuoteFetcher
	notifier Notifier
	refresh  *Debouncer
}

func NewController(store *cache.WatchlistStore, api QuoteFetcher, notifier Notifier, debounceWindow time.Duration) *Controller {
	c := &Controller{store: store, api: api, notifier: notifier}
	c.refresh = NewDebouncer(debounceWindow, c.refreshAll)
	return c
}

// Add validates input, stores a placeholder and fills it from the quote API.
func (c *Controller) Add(ctx context.Context, input string) error {
	symbol, err := c.addPlaceholder(input)
	if err != nil {
		return err
	}
	return c.fetchInto(ctx, symbol)
}

// AddRecommendation is Add for a suggestion card, confirming success to the user.
func (c *Controller) AddRecommendation(ctx context.Context, symbol string) error {
	symbol, err := c.addPlaceholder(symbol)
	if err != nil {
		return err
	}
	c.notifier.Notify(symbol+" added to watchlist", models.NotificationSuccess)
	return c.fetchInto(ctx, symbol)
}

func (c *Controller) Remove(symbol string) bool {
	return c.store.Remove(symbol)
}

// Refresh schedules a debounced re-fetch of every symbol.
func (c *Controller) Refresh() <-chan error {
	return c.refresh.Trigger()
}

// Clear empties the watchlist once the user has confirmed.
func (c *Controller) Clear(confirmed bool) error {
	if c.store.Count() == 0 {
		c.notifier.Notify(msgAlreadyEmpty, models.NotificationError)
		return ErrWatchlistEmpty
	}
	if !confirmed {
		return ErrClearNotConfirmed
	}
	c.store.Clear()
	c.notifier.Notify(msgCleared, models.NotificationSuccess)
	return nil
}

// Close cancels any pending refresh.
func (c *Controller) Close() {
	c.refresh.Cancel()
}

func (c *Controller) addPlaceholder(input string) (string, error) {
	res := Validate(input)
	if !res.Valid {
		c.notifier.Notify(res.Message, models.NotificationError)
		return "", fmt.Errorf("%w: %s", ErrInvalidSymbol, res.Message)
	}
	rec, err := c.store.Add(input, nil)
	if err != nil {
		if errors.Is(err, cache.ErrStockExists) {
			c.notifier.Notify(msgStockExists, models.NotificationError)
		}
		return "", err
	}
	return rec.Symbol, nil
}

func (c *Controller) fetchInto(ctx context.Context, symbol string) error {
	rec, err := c.api.FetchOne(ctx, symbol)
	if err != nil {
		log.Warn().Err(err).Str("symbol", symbol).Msg("fetch stock data failed")
		c.notifier.Notify(errorMessage(err, stockapi.DefaultErrorMessage), models.NotificationError)
		return err
	}
	// the symbol may have been removed while the request was in flight
	c.store.Update(symbol, rec)
	return nil
}

func (c *Controller) refreshAll() error {
	symbols := c.store.Symbols()
	if len(symbols) == 0 {
		c.notifier.Notify(msgNothingToRefresh, models.NotificationError)
		return ErrWatchlistEmpty
	}

	recs, err := c.api.FetchMany(context.Background(), symbols)
	if err != nil {
		log.Warn().Err(err).Strs("symbols", symbols).Msg("refresh watchlist failed")
		c.notifier.Notify(errorMessage(err, msgRefreshFailed), models.NotificationError)
		return err
	}
	for _, rec := range recs {
		c.store.Update(rec.Symbol, rec)
	}
	c.notifier.Notify(msgRefreshed, models.NotificationSuccess)
	return nil
}

func errorMessage(err error, fallback string) string {
	var apiErr *stockapi.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
