package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalStories/internal/domain/models"
	"SignalStories/internal/middleware"
	"SignalStories/internal/service/alphavantage"
	"SignalStories/internal/service/anthropic"
	"SignalStories/internal/service/fred"
	"SignalStories/internal/service/newsapi"
	"SignalStories/internal/usecase"
	xhttp "SignalStories/pkg/http"
	"SignalStories/pkg/logger"
)

// upstream answers outbound calls by host and counts them.
type upstream struct {
	mu     sync.Mutex
	calls  int
	routes map[string]func(*http.Request) (int, string)
}

func (u *upstream) RoundTrip(r *http.Request) (*http.Response, error) {
	u.mu.Lock()
	u.calls++
	route := u.routes[r.URL.Host]
	u.mu.Unlock()
	if route == nil {
		return nil, errors.New("no route to " + r.URL.Host)
	}
	status, body := route(r)
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    r,
	}, nil
}

func (u *upstream) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.calls
}

type keys struct{ fred, av, news, llm string }

type tokenVerifier struct{}

func (tokenVerifier) Verify(_ context.Context, token string) (*models.AuthenticatedUser, error) {
	if token != "valid" {
		return nil, errors.New("bad token")
	}
	return &models.AuthenticatedUser{UID: "u1"}, nil
}

func newServer(t *testing.T, k keys, up *upstream) *echo.Echo {
	t.Helper()
	log := logger.Nop()
	client := xhttp.NewClient(xhttp.WithTransport(up))

	fredClient := fred.New(client, k.fred, "http://fred.test/fred/series/observations")
	avClient := alphavantage.New(client, k.av, "http://av.test/query", nil)
	newsClient := newsapi.New(client, k.news, "http://news.test/v2/everything")
	llm := anthropic.New(client.HTTPClient(), anthropic.Config{APIKey: k.llm, BaseURL: "http://llm.test/"})

	summarizer := usecase.NewIndicatorSummarizer(fredClient, nil, log)
	equity := usecase.NewEquityService(avClient, nil, nil, usecase.EquityConfig{}, log)
	h := NewDashboardHandler(log,
		usecase.NewSeriesService(fredClient, summarizer, "2024-01-01"),
		equity,
		usecase.NewTopicService(newsClient, fredClient, llm, summarizer, nil, usecase.TopicConfig{PageSize: 10, MaxHeadlines: 6, StartDate: "2024-01-01"}, log),
		usecase.NewCommentaryService(fredClient, llm, equity, summarizer, nil, 0, "2024-01-01", log),
		middleware.RequireUser(tokenVerifier{}, false, log),
	)

	e := echo.New()
	e.HTTPErrorHandler = xhttp.HTTPErrorHandler
	h.RegisterRoutes(e)
	return e
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer valid")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var protected = []string{
	"/api/fred?series_id=MSPUS",
	"/api/stocks?symbol=ITB",
	"/api/summary",
	"/api/labor-summary",
	"/api/inflation-summary",
	"/api/gdp-summary",
	"/api/consumer-summary",
	"/api/stock-commentary",
}

func TestKeysUnsetEveryEndpointFailsWithoutOutboundCalls(t *testing.T) {
	up := &upstream{}
	e := newServer(t, keys{}, up)

	for _, target := range protected {
		t.Run(target, func(t *testing.T) {
			rec := get(e, target)
			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.JSONEq(t, `{"error":"API keys not configured"}`, rec.Body.String())
		})
	}
	assert.Zero(t, up.count())
}

func TestEndpointsRequireToken(t *testing.T) {
	e := newServer(t, keys{}, &upstream{})
	for _, target := range append(protected, "/api/indicators", "/api/stock-groups") {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
	}
}

func TestMissingQueryParams(t *testing.T) {
	e := newServer(t, keys{fred: "f", av: "a"}, &upstream{})

	rec := get(e, "/api/fred")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"series_id is required"}`, rec.Body.String())

	rec = get(e, "/api/stocks")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"symbol is required"}`, rec.Body.String())
}

func TestSeriesPassthrough(t *testing.T) {
	doc := `{"observations":[{"date":"2024-01-01","value":"400000"},{"date":"2024-02-01","value":"."}]}`
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"fred.test": func(r *http.Request) (int, string) {
			if r.URL.Query().Get("units") != "pc1" {
				return http.StatusBadRequest, "bad units"
			}
			return http.StatusOK, doc
		},
	}}
	e := newServer(t, keys{fred: "f"}, up)

	rec := get(e, "/api/fred?series_id=CPIAUCSL&units=pc1&observation_start=2024-01-01")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, doc, rec.Body.String())
	assert.Equal(t, xhttp.CacheSeries, rec.Header().Get(echo.HeaderCacheControl))
}

func TestSeriesUpstreamError(t *testing.T) {
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"fred.test": func(*http.Request) (int, string) { return http.StatusBadRequest, "Bad Request. Series does not exist." },
	}}
	e := newServer(t, keys{fred: "f"}, up)

	rec := get(e, "/api/fred?series_id=NOPE")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"FRED API error","status":400,"details":"Bad Request. Series does not exist."}`, rec.Body.String())
}

func TestQuote(t *testing.T) {
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"av.test": func(*http.Request) (int, string) {
			return http.StatusOK, `{"Time Series (Daily)":{
				"2025-01-03":{"4. close":"105.0000"},
				"2025-01-02":{"4. close":"100.0000"}
			}}`
		},
	}}
	e := newServer(t, keys{av: "a"}, up)

	rec := get(e, "/api/stocks?symbol=itb")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"symbol":"ITB","price":105,"change":5,"changePercent":5,"history":[
		{"date":"2025-01-02","close":100},{"date":"2025-01-03","close":105}]}`, rec.Body.String())
	assert.Equal(t, xhttp.CacheEquity, rec.Header().Get(echo.HeaderCacheControl))
}

func TestQuoteRateLimited(t *testing.T) {
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"av.test": func(*http.Request) (int, string) {
			return http.StatusOK, `{"Note":"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`
		},
	}}
	e := newServer(t, keys{av: "a"}, up)

	rec := get(e, "/api/stocks?symbol=ITB")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error":"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`, rec.Body.String())
}

func TestQuoteUnknownSymbol(t *testing.T) {
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"av.test": func(*http.Request) (int, string) {
			return http.StatusOK, `{"Error Message":"Invalid API call."}`
		},
	}}
	e := newServer(t, keys{av: "a"}, up)

	rec := get(e, "/api/stocks?symbol=ZZZZ")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid API call."}`, rec.Body.String())
}

func TestTopicSummaryNewsError(t *testing.T) {
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"news.test": func(*http.Request) (int, string) {
			return http.StatusOK, `{"status":"error","message":"Your API key is invalid."}`
		},
	}}
	e := newServer(t, keys{fred: "f", news: "n", llm: "l"}, up)

	rec := get(e, "/api/inflation-summary")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Your API key is invalid."}`, rec.Body.String())
}

func TestIndicatorsCatalog(t *testing.T) {
	e := newServer(t, keys{}, &upstream{})

	rec := get(e, "/api/indicators?topic=labor")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"UNRATE"`)
	assert.Empty(t, rec.Header().Get(echo.HeaderCacheControl))

	rec = get(e, "/api/indicators?topic=weather")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"topic must be one of: housing, labor, inflation, gdp, consumer"}`, rec.Body.String())

	rec = get(e, "/api/indicators?topic=labor&with_latest=true")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"API keys not configured"}`, rec.Body.String())
}

func TestIndicatorsWithLatest(t *testing.T) {
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"fred.test": func(r *http.Request) (int, string) {
			if r.URL.Query().Get("series_id") != "MSPUS" {
				return http.StatusInternalServerError, "down"
			}
			return http.StatusOK, `{"observations":[{"date":"2024-04-01","value":"412300"},{"date":"2024-07-01","value":"419300"}]}`
		},
	}}
	e := newServer(t, keys{fred: "f"}, up)

	rec := get(e, "/api/indicators?with_latest=true")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `"formatted":"$419,300"`)
	assert.Contains(t, body, `"trend":"up"`)
	assert.Contains(t, body, `"summary":{"latest":"419300","previous":"412300","date":"2024-07-01"}`)
}

func TestStockGroups(t *testing.T) {
	e := newServer(t, keys{}, &upstream{})

	rec := get(e, "/api/stock-groups")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"symbol":"ITB"`)
}

func TestCommentaryPartialData(t *testing.T) {
	var prompt string
	up := &upstream{routes: map[string]func(*http.Request) (int, string){
		"fred.test": func(*http.Request) (int, string) {
			return http.StatusOK, `{"observations":[{"date":"2024-07-01","value":"419300"}]}`
		},
		"av.test": func(r *http.Request) (int, string) {
			if r.URL.Query().Get("symbol") == "VNQ" {
				return http.StatusOK, `{"Information":"rate limited"}`
			}
			return http.StatusOK, `{"Time Series (Daily)":{"2025-01-02":{"4. close":"10"},"2025-01-03":{"4. close":"11"}}}`
		},
		"llm.test": func(r *http.Request) (int, string) {
			b, _ := io.ReadAll(r.Body)
			prompt = string(b)
			return http.StatusOK, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-3-haiku-20240307",
				"content":[{"type":"text","text":"Builders lead."}],"stop_reason":"end_turn",
				"usage":{"input_tokens":10,"output_tokens":3}}`
		},
	}}
	e := newServer(t, keys{fred: "f", av: "a", llm: "l"}, up)
	start := time.Now()

	rec := get(e, "/api/stock-commentary")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"commentary":"Builders lead."`)
	assert.Contains(t, prompt, "ITB (iShares Home Construction ETF): $11.00, daily 10.00%, weekly 10.00%")
	assert.NotContains(t, prompt, "VNQ (")
	assert.Less(t, time.Since(start), 5*time.Second)
}
