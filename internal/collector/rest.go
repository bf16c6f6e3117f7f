package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockBacktest/internal/model"
)

// RestFetcher implements Fetcher against a self-hosted market-data REST API.
// It is selected when the config provides a base URL.
type RestFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewRestFetcher creates a new fetcher with optional proxy support.
func NewRestFetcher(baseURL, apiKey, proxyURL string) *RestFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &RestFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *RestFetcher) Name() string { return "rest" }

// restBar is the expected JSON shape of one daily bar from the API.
type restBar struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

func (f *RestFetcher) FetchDailyCloses(ctx context.Context, symbol string, start, end time.Time) (*model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&start=%s&end=%s",
		f.BaseURL, url.QueryEscape(symbol),
		start.Format("2006-01-02"), end.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rest fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("rest read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("rest %s: %w", symbol, model.ErrNoData)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rest: status %d, body: %s", resp.StatusCode, string(body))
	}

	var bars []restBar
	if err := json.Unmarshal(body, &bars); err != nil {
		return nil, fmt.Errorf("rest decode: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("rest %s: %w", symbol, model.ErrNoData)
	}

	points := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		d, err := time.Parse("2006-01-02", b.Date)
		if err != nil {
			return nil, fmt.Errorf("rest parse date %q: %w", b.Date, err)
		}
		if b.Close <= 0 {
			continue
		}
		points = append(points, model.PricePoint{Date: d, Close: b.Close})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("rest %s: %w", symbol, model.ErrNoData)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return model.NewPriceSeries(symbol, points), nil
}
