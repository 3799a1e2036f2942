package alphavantage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SignalStories/internal/domain"
	"SignalStories/internal/service/ratelimit"
	xhttp "SignalStories/pkg/http"
)

func serve(t *testing.T, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		q := r.URL.Query()
		assert.Equal(t, "TIME_SERIES_DAILY", q.Get("function"))
		assert.Equal(t, "compact", q.Get("outputsize"))
		assert.Equal(t, "av-key", q.Get("apikey"))
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestFetchDailySortsAscending(t *testing.T) {
	srv, _ := serve(t, `{"Time Series (Daily)":{
		"2024-06-03":{"4. close":"101.50"},
		"2024-05-31":{"4. close":"100.00"},
		"2024-06-04":{"4. close":"99.25"}
	}}`)

	s, err := New(xhttp.NewClient(), "av-key", srv.URL, nil).FetchDaily(context.Background(), "itb")
	require.NoError(t, err)

	assert.Equal(t, "ITB", s.Symbol)
	require.Len(t, s.Points, 3)
	assert.Equal(t, "2024-05-31", s.Points[0].Date)
	assert.Equal(t, "2024-06-04", s.Points[2].Date)
	assert.Equal(t, "99.25", s.Points[2].Close.String())
}

func TestFetchDailyRateLimitMarkers(t *testing.T) {
	for _, key := range []string{"Note", "Information"} {
		srv, _ := serve(t, fmt.Sprintf(`{%q:"Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`, key))

		_, err := New(xhttp.NewClient(), "av-key", srv.URL, nil).FetchDaily(context.Background(), "ITB")

		var rl *domain.RateLimitError
		require.True(t, errors.As(err, &rl), key)
		assert.True(t, strings.HasPrefix(rl.Message, "Thank you"))
	}
}

func TestFetchDailyErrorMessage(t *testing.T) {
	srv, _ := serve(t, `{"Error Message":"Invalid API call."}`)

	_, err := New(xhttp.NewClient(), "av-key", srv.URL, nil).FetchDaily(context.Background(), "NOPE")

	var pe *domain.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusBadRequest, pe.HTTPStatus())
	assert.Equal(t, "Invalid API call.", pe.Message)
}

func TestFetchDailyUnexpectedFormat(t *testing.T) {
	srv, _ := serve(t, `{"Meta Data":{}}`)

	_, err := New(xhttp.NewClient(), "av-key", srv.URL, nil).FetchDaily(context.Background(), "ITB")

	var pe *domain.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusInternalServerError, pe.HTTPStatus())
	assert.Equal(t, "Unexpected response format", pe.Message)
}

func TestLocalQuotaShortCircuits(t *testing.T) {
	srv, calls := serve(t, `{"Time Series (Daily)":{"2024-06-03":{"4. close":"1"}}}`)

	c := New(xhttp.NewClient(), "av-key", srv.URL, ratelimit.PerMinute(1))
	_, err := c.FetchDaily(context.Background(), "ITB")
	require.NoError(t, err)

	_, err = c.FetchDaily(context.Background(), "VNQ")
	assert.True(t, domain.IsRateLimited(err))
	assert.EqualValues(t, 1, calls.Load())
}

func TestUnconfigured(t *testing.T) {
	srv, calls := serve(t, `{}`)
	_, err := New(xhttp.NewClient(), "", srv.URL, nil).FetchDaily(context.Background(), "ITB")

	var ce *domain.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Zero(t, calls.Load())
}
