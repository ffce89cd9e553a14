package stockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"watchlist/models"
)

const (
	stocksPath = "/api/stocks"

	// DefaultErrorMessage is used when the quote API gives no message of its own.
	DefaultErrorMessage = "Failed to fetch stock data"
)

// Error is returned for every failed quote request.
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

type stocksResponse struct {
	Stocks   []models.StockRecord `json:"stocks"`
	DemoMode bool                 `json:"demo_mode"`
	Error    string               `json:"error"`
}

// Client fetches quotes from the watchlist backend.
type Client struct {
	client *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")

	return &Client{client: client}
}

// FetchOne returns the quote for a single symbol.
func (c *Client) FetchOne(ctx context.Context, symbol string) (models.StockRecord, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	stocks, err := c.fetch(ctx, symbol)
	if err != nil {
		return models.StockRecord{}, err
	}
	if len(stocks) == 0 {
		return models.StockRecord{}, &Error{StatusCode: http.StatusOK, Message: "No data found for " + symbol}
	}
	return stocks[0], nil
}

// FetchMany requests every symbol in one batched call. An empty list sends nothing.
func (c *Client) FetchMany(ctx context.Context, symbols []string) ([]models.StockRecord, error) {
	if len(symbols) == 0 {
		return nil, nil
	}
	upper := make([]string, 0, len(symbols))
	for _, s := range symbols {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(s)))
	}
	joined := strings.Join(upper, ",")

	stocks, err := c.fetch(ctx, joined)
	if err != nil {
		return nil, err
	}
	if len(stocks) == 0 {
		return nil, &Error{StatusCode: http.StatusOK, Message: "No data found for " + joined}
	}
	return stocks, nil
}

func (c *Client) fetch(ctx context.Context, symbols string) ([]models.StockRecord, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("symbols", symbols).
		Get(stocksPath)
	if err != nil {
		return nil, &Error{Message: DefaultErrorMessage, Err: err}
	}

	var body stocksResponse
	decodeErr := json.Unmarshal(resp.Body(), &body)

	if !resp.IsSuccess() {
		msg := DefaultErrorMessage
		if decodeErr == nil && strings.TrimSpace(body.Error) != "" {
			msg = body.Error
		}
		return nil, &Error{StatusCode: resp.StatusCode(), Message: msg}
	}
	if decodeErr != nil {
		return nil, &Error{StatusCode: resp.StatusCode(), Message: "Invalid response from stock service", Err: decodeErr}
	}

	if body.DemoMode {
		log.Debug().Str("symbols", symbols).Msg("quote api answered in demo mode")
	}
	return body.Stocks, nil
}
