package watchlist

import (
	"watchlist/infrastructure/cache"
)

// PageSession is the state behind one browser page session.
type PageSession struct {
	ID         string
	Store      *cache.WatchlistStore
	Notifier   *FlashNotifier
	Controller *Controller
	Options    Options
}

func NewPageSession(id string, api QuoteFetcher, opts Options) *PageSession {
	opts = opts.withDefaults()
	store := cache.NewWatchlistStore()
	notifier := NewFlashNotifier(opts.NotificationTTL)
	return &PageSession{
		ID:         id,
		Store:      store,
		Notifier:   notifier,
		Controller: NewController(store, api, notifier, opts.DebounceWindow),
		Options:    opts,
	}
}

// Close releases the session's scheduled work.
func (p *PageSession) Close() {
	p.Controller.Close()
}

// PageData snapshots the session for rendering.
func (p *PageSession) PageData(confirmClear bool) PageData {
	data := PageData{
		Table:           BuildTableView(p.Store.Records(), p.Options.Currency),
		DismissAfter:    p.Options.NotificationTTL,
		ConfirmClear:    confirmClear && p.Store.Count() > 0,
		Recommendations: p.Options.Recommendations,
	}
	if note, ok := p.Notifier.Current(); ok {
		data.Notification = &note
	}
	return data
}
