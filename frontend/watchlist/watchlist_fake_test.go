package watchlist

import (
	"context"
	"sync"

	"watchlist/infrastructure/stockapi"
	"watchlist/models"
)

type fakeFetcher struct {
	mu        sync.Mutex
	quotes    map[string]models.StockRecord
	err       error
	oneCalls  []string
	manyCalls [][]string
}

func newFakeFetcher(quotes ...models.StockRecord) *fakeFetcher {
	f := &fakeFetcher{quotes: make(map[string]models.StockRecord)}
	for _, q := range quotes {
		f.quotes[q.Symbol] = q
	}
	return f
}

func (f *fakeFetcher) FetchOne(_ context.Context, symbol string) (models.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.oneCalls = append(f.oneCalls, symbol)
	if f.err != nil {
		return models.StockRecord{}, f.err
	}
	q, ok := f.quotes[symbol]
	if !ok {
		return models.StockRecord{}, &stockapi.Error{StatusCode: 200, Message: "No data found for " + symbol}
	}
	return q, nil
}

func (f *fakeFetcher) FetchMany(_ context.Context, symbols []string) ([]models.StockRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.manyCalls = append(f.manyCalls, append([]string(nil), symbols...))
	if f.err != nil {
		return nil, f.err
	}
	var out []models.StockRecord
	for _, s := range symbols {
		if q, ok := f.quotes[s]; ok {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeFetcher) calls() ([]string, [][]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.oneCalls...), append([][]string(nil), f.manyCalls...)
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []models.Notification
}

func (n *recordingNotifier) Notify(message string, kind models.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notes = append(n.notes, models.Notification{Message: message, Kind: kind})
}

func (n *recordingNotifier) last() (models.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.notes) == 0 {
		return models.Notification{}, false
	}
	return n.notes[len(n.notes)-1], true
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.notes)
}
