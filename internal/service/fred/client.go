// Package fred reads economic series observations from the FRED API.
package fred

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"SignalStories/internal/domain"
	"SignalStories/internal/domain/models"
	xhttp "SignalStories/pkg/http"
)

const (
	ProviderName   = "fred"
	DefaultBaseURL = "https://api.stlouisfed.org/fred/series/observations"
	errorMessage   = "FRED API error"
)

// Client implements repository.SeriesProvider.
type Client struct {
	http    *xhttp.Client
	apiKey  string
	baseURL string
}

func New(httpClient *xhttp.Client, apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: httpClient, apiKey: apiKey, baseURL: baseURL}
}

func (c *Client) Name() string { return ProviderName }

func (c *Client) Configured() bool { return c.apiKey != "" }

type observationsDoc struct {
	Observations []models.Observation `json:"observations"`
}

// FetchSeries returns the series observations in ascending date order with
// missing values removed.
func (c *Client) FetchSeries(ctx context.Context, q models.SeriesQuery) ([]models.Observation, error) {
	raw, err := c.FetchRaw(ctx, q)
	if err != nil {
		return nil, err
	}

	var doc observationsDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &domain.ProviderError{
			Provider: ProviderName,
			Status:   502,
			Message:  errorMessage,
			Err:      fmt.Errorf("decode observations for %s: %w", q.SeriesID, err),
		}
	}

	out := make([]models.Observation, 0, len(doc.Observations))
	for _, o := range doc.Observations {
		if o.Value == models.MissingValue {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

// FetchRaw returns the provider document unmodified.
func (c *Client) FetchRaw(ctx context.Context, q models.SeriesQuery) (json.RawMessage, error) {
	if !c.Configured() {
		return nil, &domain.ConfigurationError{Missing: []string{ProviderName}}
	}

	params := map[string][]string{
		"series_id":  {q.SeriesID},
		"api_key":    {c.apiKey},
		"file_type":  {"json"},
		"sort_order": {"asc"},
	}
	if q.ObservationStart != "" {
		params["observation_start"] = []string{q.ObservationStart}
	}
	if q.Units != "" {
		params["units"] = []string{q.Units}
	}

	var body []byte
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL,
		QueryParams: params,
	}, &body)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			return nil, &domain.ProviderError{
				Provider: ProviderName,
				Status:   se.Status,
				Message:  errorMessage,
				Body:     se.Body,
			}
		}
		return nil, &domain.ProviderError{Provider: ProviderName, Message: err.Error(), Err: err}
	}

	if !json.Valid(body) {
		return nil, &domain.ProviderError{
			Provider: ProviderName,
			Status:   502,
			Message:  errorMessage,
			Body:     truncate(string(body), 512),
		}
	}
	return body, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
