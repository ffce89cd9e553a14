package watchlist

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"

	"watchlist/frontend/shared/html"
	"watchlist/models"
)

const (
	classPositive = "price-positive"
	classNegative = "price-negative"
	classNeutral  = "price-neutral"
)

// Renderer turns page state into markup.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, data PageData) error
}

// HTMLRenderer renders the full watchlist page.
type HTMLRenderer struct{}

func (HTMLRenderer) Render(ctx context.Context, w io.Writer, data PageData) error {
	return WatchlistPage(data).Render(ctx, w)
}

// BuildTableView projects records into display rows. It depends only on its inputs.
func BuildTableView(records []models.StockRecord, currency string) TableView {
	view := TableView{
		ShowEmptyState: len(records) == 0,
		ShowTable:      len(records) > 0,
		Count:          len(records),
		Rows:           make([]RowView, 0, len(records)),
	}
	for _, rec := range records {
		view.Rows = append(view.Rows, RowView{
			Symbol:        rec.Symbol,
			Name:          rec.Name,
			Price:         currency + formatMoney(rec.CurrentPrice),
			PreviousClose: currency + formatMoney(rec.PreviousClose),
			Change:        formatSigned(rec.Change, ""),
			ChangePercent: formatSigned(rec.ChangePercent, "%"),
			ChangeClass:   changeClass(rec.Change),
			RemoveAction:  RemoveAction(rec.Symbol),
		})
	}
	return view
}

// RemoveAction is the form target removing symbol from the watchlist.
func RemoveAction(symbol string) string {
	return "/watchlist/stocks/" + url.PathEscape(symbol) + "/remove"
}

func changeClass(change float64) string {
	switch {
	case change > 0:
		return classPositive
	case change < 0:
		return classNegative
	default:
		return classNeutral
	}
}

// formatMoney rounds half away from zero on the shortest decimal form of v.
// Negative values keep their sign even when they round to zero.
func formatMoney(v float64) string {
	s := decimal.NewFromFloat(v).StringFixed(2)
	if v < 0 && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return s
}

func formatSigned(v float64, suffix string) string {
	s := formatMoney(v)
	if v >= 0 {
		s = "+" + s
	}
	return s + suffix
}

// WatchlistPage is the page component.
func WatchlistPage(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, html.RenderLayout("Stock Watchlist", renderBody(data)))
		return err
	})
}

func renderBody(data PageData) string {
	var b strings.Builder
	esc := templ.EscapeString

	b.WriteString(`<main class="watchlist">`)
	fmt.Fprintf(&b, `<header class="watchlist-header"><h1>Stock Watchlist</h1><span class="stock-count">Stocks: <span id="stockCount">%d</span></span></header>`, data.Table.Count)

	if n := data.Notification; n != nil {
		fmt.Fprintf(&b, `<div id="notification" class="notification %s show" role="status" data-dismiss-ms="%d">%s</div>`,
			esc(string(n.Kind)), data.DismissAfter.Milliseconds(), esc(n.Message))
	} else {
		b.WriteString(`<div id="notification" class="notification" role="status"></div>`)
	}

	b.WriteString(`<form id="addStockForm" class="add-form" method="post" action="/watchlist/stocks">`)
	b.WriteString(`<input id="stockInput" name="symbol" type="text" autocomplete="off" placeholder="Enter stock symbol (e.g. RELIANCE.NS)">`)
	b.WriteString(`<button id="addStockBtn" class="btn btn-add" type="submit">Add Stock</button></form>`)

	b.WriteString(`<div class="toolbar">`)
	b.WriteString(`<form method="post" action="/watchlist/refresh"><button id="refreshAllBtn" class="btn btn-refresh" type="submit"><span class="btn-text">Refresh All</span></button></form>`)
	b.WriteString(`<form method="post" action="/watchlist/clear"><button id="clearAllBtn" class="btn btn-clear" type="submit">Clear All</button></form>`)
	b.WriteString(`<a class="btn btn-export" href="/watchlist/export.pdf">Export PDF</a>`)
	b.WriteString(`</div>`)

	if data.ConfirmClear {
		b.WriteString(`<div id="confirmClear" class="confirm"><p>Are you sure you want to clear all stocks from the watchlist?</p>`)
		b.WriteString(`<form method="post" action="/watchlist/clear"><input type="hidden" name="confirm" value="yes"><button class="btn btn-danger" type="submit">Yes, clear all</button></form>`)
		b.WriteString(`<a class="btn" href="/watchlist">Cancel</a></div>`)
	}

	fmt.Fprintf(&b, `<div id="emptyState" class="empty-state" style="display: %s"><p>No stocks in your watchlist. Add a symbol to get started.</p></div>`, display(data.Table.ShowEmptyState, "block"))
	fmt.Fprintf(&b, `<table id="watchlistTable" class="watchlist-table" style="display: %s">`, display(data.Table.ShowTable, "table"))
	b.WriteString(`<thead><tr><th>Symbol</th><th>Name</th><th>Current Price</th><th>Previous Close</th><th>Change</th><th>Change %</th><th>Action</th></tr></thead><tbody id="watchlistBody">`)
	for _, row := range data.Table.Rows {
		fmt.Fprintf(&b, `<tr><td class="stock-symbol">%s</td><td class="stock-name">%s</td><td>%s</td><td>%s</td><td class="%s">%s</td><td class="%s">%s</td>`,
			esc(row.Symbol), esc(row.Name), esc(row.Price), esc(row.PreviousClose),
			row.ChangeClass, esc(row.Change), row.ChangeClass, esc(row.ChangePercent))
		fmt.Fprintf(&b, `<td><form method="post" action="%s"><button class="btn btn-remove" type="submit">Remove</button></form></td></tr>`, esc(row.RemoveAction))
	}
	b.WriteString(`</tbody></table>`)

	if len(data.Recommendations) > 0 {
		b.WriteString(`<section class="recommendations"><h2>Recommended Stocks</h2><div class="recommendation-grid">`)
		for _, rec := range data.Recommendations {
			fmt.Fprintf(&b, `<form class="recommendation-card" method="post" action="/watchlist/recommendations/%s" data-symbol="%s"><button type="submit"><span class="rec-symbol">%s</span><span class="rec-name">%s</span></button></form>`,
				esc(url.PathEscape(rec.Symbol)), esc(rec.Symbol), esc(rec.Symbol), esc(rec.Name))
		}
		b.WriteString(`</div></section>`)
	}

	b.WriteString(`</main>`)
	return b.String()
}

func display(visible bool, shown string) string {
	if visible {
		return shown
	}
	return "none"
}
