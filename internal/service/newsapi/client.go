// Package newsapi searches recent headlines on NewsAPI.
package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"SignalStories/internal/domain"
	"SignalStories/internal/domain/models"
	xhttp "SignalStories/pkg/http"
)

const (
	ProviderName   = "newsapi"
	DefaultBaseURL = "https://newsapi.org/v2/everything"
	errorMessage   = "News API error"
)

// Client implements repository.NewsProvider.
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

type article struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	PublishedAt string `json:"publishedAt"`
}

type searchDoc struct {
	Status   string    `json:"status"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

// Search returns English articles for query, newest first.
func (c *Client) Search(ctx context.Context, query string, pageSize int) ([]models.Headline, error) {
	if !c.Configured() {
		return nil, &domain.ConfigurationError{Missing: []string{ProviderName}}
	}

	var doc searchDoc
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL,
		QueryParams: map[string][]string{
			"q":        {query},
			"language": {"en"},
			"sortBy":   {"publishedAt"},
			"pageSize": {strconv.Itoa(pageSize)},
			"apiKey":   {c.apiKey},
		},
	}, &doc)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			// Error envelopes arrive with a non-2xx status; surface their message.
			_ = json.Unmarshal([]byte(se.Body), &doc)
			return nil, &domain.ProviderError{Provider: ProviderName, Message: messageOr(doc.Message), Body: se.Body}
		}
		return nil, &domain.ProviderError{Provider: ProviderName, Message: err.Error(), Err: err}
	}

	if doc.Status != "ok" {
		return nil, &domain.ProviderError{Provider: ProviderName, Message: messageOr(doc.Message)}
	}

	out := make([]models.Headline, 0, len(doc.Articles))
	for _, a := range doc.Articles {
		out = append(out, models.Headline{
			Title:       a.Title,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
		})
	}
	return out, nil
}

func messageOr(msg string) string {
	if msg == "" {
		return errorMessage
	}
	return msg
}
