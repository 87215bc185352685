package api

// EXCHANGE RATES CLIENT

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Client fetches the latest exchange rates from a Frankfurter-compatible
// API (GET /latest?from=USD&to=BRL). Rates are kept in memory for cacheTTL.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
	cacheTTL   time.Duration

	mu    sync.Mutex
	cache map[string]cachedRate
}

type cachedRate struct {
	rate    float64
	fetched time.Time
}

type latestResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

func NewClient(baseURL, token string, timeout, cacheTTL time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:   logger,
		cacheTTL: cacheTTL,
		cache:    make(map[string]cachedRate),
	}
}

// LatestRate returns how many units of to one unit of from buys.
func (c *Client) LatestRate(ctx context.Context, from, to string) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	key := from + ":" + to

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok && time.Since(cached.fetched) < c.cacheTTL {
		return cached.rate, nil
	}

	rate, err := c.fetch(ctx, from, to)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	c.cache[key] = cachedRate{rate: rate, fetched: time.Now()}
	c.mu.Unlock()

	c.logger.Debug("Fetched exchange rate",
		zap.String("from", from),
		zap.String("to", to),
		zap.Float64("rate", rate))

	return rate, nil
}

func (c *Client) fetch(ctx context.Context, from, to string) (float64, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/latest?%s", c.baseURL, query.Encode()),
		nil,
	)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, fmt.Errorf("decode response: %w", err)
	}

	rate, ok := result.Rates[to]
	if !ok || rate <= 0 {
		return 0, fmt.Errorf("no %s rate for %s in response", to, from)
	}

	return rate, nil
}
