package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"watchlist/frontend/shared/html"
	"watchlist/frontend/watchlist"
	"watchlist/infrastructure/cache"
	"watchlist/infrastructure/stockapi"
	"watchlist/models"
)

type integrationEnv struct {
	server   *httptest.Server
	upstream *httptest.Server

	mu      sync.Mutex
	queries []string
	prices  map[string]float64
}

func (e *integrationEnv) upstreamHandler(w http.ResponseWriter, r *http.Request) {
	symbols := r.URL.Query().Get("symbols")
	e.mu.Lock()
	e.queries = append(e.queries, symbols)
	e.mu.Unlock()

	if symbols == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "No symbols provided"})
		return
	}
	if symbols == "BROKEN" {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Quote provider unavailable"})
		return
	}

	var stocks []models.StockRecord
	for _, sym := range strings.Split(symbols, ",") {
		e.mu.Lock()
		price := e.prices[sym]
		e.mu.Unlock()
		stocks = append(stocks, models.StockRecord{
			Symbol:        sym,
			Name:          sym + " Ltd",
			CurrentPrice:  price,
			PreviousClose: 100,
			Change:        price - 100,
			ChangePercent: price - 100,
		})
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"stocks": stocks, "demo_mode": true})
}

func (e *integrationEnv) upstreamQueries() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.queries...)
}

func setupIntegrationServer(t *testing.T) (*integrationEnv, *http.Client) {
	t.Helper()
	env := &integrationEnv{prices: map[string]float64{"AAPL": 101.5, "MSFT": 99.25}}
	env.upstream = httptest.NewServer(http.HandlerFunc(env.upstreamHandler))

	quotes := stockapi.NewClient(env.upstream.URL, 2*time.Second)
	sessions := cache.NewPageSessionCache[*watchlist.PageSession](time.Hour)
	s := NewServer("127.0.0.1:0", quotes, sessions, watchlist.Options{
		DebounceWindow:  100 * time.Millisecond,
		Recommendations: []watchlist.Recommendation{{Symbol: "MSFT", Name: "Microsoft"}},
	})
	env.server = httptest.NewServer(s.router)
	t.Cleanup(func() {
		env.server.Close()
		env.upstream.Close()
	})

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar, Timeout: 5 * time.Second}
	return env, client
}

func getPage(t *testing.T, env *integrationEnv, client *http.Client) string {
	t.Helper()
	resp, err := client.Get(env.server.URL + "/watchlist")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func csrfToken(t *testing.T, env *integrationEnv, client *http.Client) string {
	t.Helper()
	u, _ := url.Parse(env.server.URL)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == html.CSRFCookieName {
			return c.Value
		}
	}
	t.Fatalf("csrf cookie missing")
	return ""
}

func postForm(t *testing.T, env *integrationEnv, client *http.Client, path string, form url.Values) string {
	t.Helper()
	form.Set("_csrf", csrfToken(t, env, client))
	resp, err := client.PostForm(env.server.URL+path, form)
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 after redirect for %s, got %d", path, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}

func TestIntegration_EmptyPageOnFirstLoad(t *testing.T) {
	env, client := setupIntegrationServer(t)

	body := getPage(t, env, client)
	if !strings.Contains(body, `id="emptyState" class="empty-state" style="display: block"`) {
		t.Fatalf("expected empty state on first load")
	}
	if !strings.Contains(body, `<span id="stockCount">0</span>`) {
		t.Fatalf("expected zero stock count")
	}
}

func TestIntegration_AddRefreshRemoveClearFlow(t *testing.T) {
	env, client := setupIntegrationServer(t)
	getPage(t, env, client)

	body := postForm(t, env, client, "/watchlist/stocks", url.Values{"symbol": {"aapl"}})
	if !strings.Contains(body, `<td class="stock-symbol">AAPL</td>`) || !strings.Contains(body, "₹101.50") {
		t.Fatalf("expected AAPL row with fetched price:\n%s", body)
	}

	body = postForm(t, env, client, "/watchlist/stocks", url.Values{"symbol": {"AAPL"}})
	if !strings.Contains(body, "Stock already in watchlist") {
		t.Fatalf("expected duplicate notification")
	}

	postForm(t, env, client, "/watchlist/recommendations/MSFT", url.Values{})

	env.mu.Lock()
	env.prices["AAPL"] = 105
	env.mu.Unlock()

	body = postForm(t, env, client, "/watchlist/refresh", url.Values{})
	if !strings.Contains(body, "Watchlist refreshed successfully") || !strings.Contains(body, "₹105.00") {
		t.Fatalf("expected refreshed prices:\n%s", body)
	}
	queries := env.upstreamQueries()
	if queries[len(queries)-1] != "AAPL,MSFT" {
		t.Fatalf("expected batched refresh AAPL,MSFT, got %v", queries)
	}

	body = postForm(t, env, client, "/watchlist/stocks/MSFT/remove", url.Values{})
	if strings.Contains(body, `<td class="stock-symbol">MSFT</td>`) {
		t.Fatalf("expected MSFT removed")
	}

	body = postForm(t, env, client, "/watchlist/clear", url.Values{})
	if !strings.Contains(body, `id="confirmClear"`) || !strings.Contains(body, `<td class="stock-symbol">AAPL</td>`) {
		t.Fatalf("expected confirmation prompt with unchanged list")
	}

	body = postForm(t, env, client, "/watchlist/clear", url.Values{"confirm": {"yes"}})
	if !strings.Contains(body, "Watchlist cleared") || !strings.Contains(body, `style="display: block"`) {
		t.Fatalf("expected cleared watchlist")
	}
}

func TestIntegration_UpstreamErrorSurfacesMessage(t *testing.T) {
	env, client := setupIntegrationServer(t)
	getPage(t, env, client)

	body := postForm(t, env, client, "/watchlist/stocks", url.Values{"symbol": {"broken"}})
	if !strings.Contains(body, "Quote provider unavailable") {
		t.Fatalf("expected upstream error message:\n%s", body)
	}
	if !strings.Contains(body, "Loading...") {
		t.Fatalf("expected placeholder row to remain")
	}
}

func TestIntegration_RapidRefreshCollapses(t *testing.T) {
	env, client := setupIntegrationServer(t)
	getPage(t, env, client)
	postForm(t, env, client, "/watchlist/stocks", url.Values{"symbol": {"AAPL"}})
	before := len(env.upstreamQueries())

	token := csrfToken(t, env, client)
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := client.PostForm(env.server.URL+"/watchlist/refresh", url.Values{"_csrf": {token}})
			if err != nil {
				t.Errorf("refresh: %v", err)
				return
			}
			resp.Body.Close()
		}()
	}
	wg.Wait()

	if got := len(env.upstreamQueries()) - before; got != 1 {
		t.Fatalf("expected one upstream call for the burst, got %d", got)
	}
}

func TestIntegration_PostWithoutCSRFIsRejected(t *testing.T) {
	env, client := setupIntegrationServer(t)
	getPage(t, env, client)

	resp, err := client.PostForm(env.server.URL+"/watchlist/stocks", url.Values{"symbol": {"AAPL"}})
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestIntegration_HealthAndRootRedirect(t *testing.T) {
	env, client := setupIntegrationServer(t)

	resp, err := client.Get(env.server.URL + "/health")
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected health response %d %q", resp.StatusCode, body)
	}

	resp, err = client.Get(env.server.URL + "/")
	if err != nil {
		t.Fatalf("root: %v", err)
	}
	resp.Body.Close()
	if resp.Request.URL.Path != "/watchlist" {
		t.Fatalf("expected redirect to /watchlist, got %s", resp.Request.URL.Path)
	}
}

func TestIntegration_SessionsAreIsolated(t *testing.T) {
	env, client := setupIntegrationServer(t)
	getPage(t, env, client)
	postForm(t, env, client, "/watchlist/stocks", url.Values{"symbol": {"AAPL"}})

	jar, _ := cookiejar.New(nil)
	other := &http.Client{Jar: jar, Timeout: 5 * time.Second}
	body := getPage(t, env, other)
	if strings.Contains(body, `<td class="stock-symbol">AAPL</td>`) {
		t.Fatalf("expected a fresh page session to start empty")
	}
}
