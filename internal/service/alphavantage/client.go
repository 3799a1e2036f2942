// Package alphavantage reads daily equity closes from Alpha Vantage.
package alphavantage

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"SignalStories/internal/domain"
	"SignalStories/internal/domain/models"
	"SignalStories/internal/service/ratelimit"
	xhttp "SignalStories/pkg/http"
)

const (
	ProviderName   = "alphavantage"
	DefaultBaseURL = "https://www.alphavantage.co/query"

	keyClose = "4. close"
)

// Client implements repository.DailySeriesProvider.
type Client struct {
	http    *xhttp.Client
	apiKey  string
	baseURL string
	limiter *ratelimit.Limiter
}

// New builds a client. limiter guards the provider quota locally and may be nil.
func New(httpClient *xhttp.Client, apiKey, baseURL string, limiter *ratelimit.Limiter) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: httpClient, apiKey: apiKey, baseURL: baseURL, limiter: limiter}
}

func (c *Client) Name() string { return ProviderName }

func (c *Client) Configured() bool { return c.apiKey != "" }

type dailyDoc struct {
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
	ErrorMessage string                       `json:"Error Message"`
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
}

// FetchDaily returns the compact daily close series for symbol, oldest first.
func (c *Client) FetchDaily(ctx context.Context, symbol string) (*models.DailySeries, error) {
	if !c.Configured() {
		return nil, &domain.ConfigurationError{Missing: []string{ProviderName}}
	}
	if !c.limiter.Allow(ProviderName) {
		return nil, &domain.RateLimitError{
			Provider: ProviderName,
			Message:  "Alpha Vantage request quota reached, try again shortly",
			Local:    true,
		}
	}

	var doc dailyDoc
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"function":   {"TIME_SERIES_DAILY"},
			"symbol":     {symbol},
			"outputsize": {"compact"},
			"apikey":     {c.apiKey},
		},
	}, &doc)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			return nil, &domain.ProviderError{
				Provider: ProviderName,
				Status:   se.Status,
				Message:  "Alpha Vantage API error",
				Body:     se.Body,
			}
		}
		return nil, &domain.ProviderError{Provider: ProviderName, Message: err.Error(), Err: err}
	}

	return parseDaily(strings.ToUpper(symbol), &doc)
}

func parseDaily(symbol string, doc *dailyDoc) (*models.DailySeries, error) {
	if msg := firstNonEmpty(doc.Note, doc.Information); msg != "" {
		return nil, &domain.RateLimitError{Provider: ProviderName, Message: msg}
	}
	if doc.ErrorMessage != "" {
		return nil, &domain.ProviderError{
			Provider: ProviderName,
			Status:   http.StatusBadRequest,
			Message:  doc.ErrorMessage,
		}
	}
	if len(doc.TimeSeries) == 0 {
		return nil, &domain.ProviderError{
			Provider: ProviderName,
			Status:   http.StatusInternalServerError,
			Message:  "Unexpected response format",
		}
	}

	dates := make([]string, 0, len(doc.TimeSeries))
	for d := range doc.TimeSeries {
		dates = append(dates, d)
	}
	// ISO dates sort chronologically as strings.
	sort.Strings(dates)

	points := make([]models.PricePoint, 0, len(dates))
	for _, d := range dates {
		px, err := decimal.NewFromString(doc.TimeSeries[d][keyClose])
		if err != nil {
			continue
		}
		points = append(points, models.PricePoint{Date: d, Close: px})
	}
	if len(points) == 0 {
		return nil, &domain.ProviderError{
			Provider: ProviderName,
			Status:   http.StatusInternalServerError,
			Message:  "Unexpected response format",
		}
	}

	return &models.DailySeries{Symbol: symbol, Points: points}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
