package api

import (
	"github.com/labstack/echo/v4"

	"SignalStories/internal/domain/catalog"
	"SignalStories/internal/domain/models"
	"SignalStories/internal/usecase"
	xhttp "SignalStories/pkg/http"
	xlogger "SignalStories/pkg/logger"
)

// DashboardHandler serves the dashboard API under /api.
type DashboardHandler struct {
	logger     *xlogger.Logger
	series     *usecase.SeriesService
	equity     *usecase.EquityService
	topics     *usecase.TopicService
	commentary *usecase.CommentaryService
	guard      []echo.MiddlewareFunc
}

// NewDashboardHandler builds the handler. guard runs in front of every route.
func NewDashboardHandler(
	logger *xlogger.Logger,
	series *usecase.SeriesService,
	equity *usecase.EquityService,
	topics *usecase.TopicService,
	commentary *usecase.CommentaryService,
	guard ...echo.MiddlewareFunc,
) *DashboardHandler {
	return &DashboardHandler{
		logger:     logger.With("api"),
		series:     series,
		equity:     equity,
		topics:     topics,
		commentary: commentary,
		guard:      guard,
	}
}

func (h *DashboardHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api", h.guard...)
	g.GET("/fred", h.Series)
	g.GET("/stocks", h.Quote)
	g.GET("/stock-commentary", h.Commentary)
	g.GET("/indicators", h.Indicators)
	g.GET("/stock-groups", h.StockGroups)
	for _, key := range catalog.Topics() {
		topic, _ := usecase.LookupTopic(key)
		g.GET(topic.Path[len("/api"):], h.Topic(key))
	}
}

func (h *DashboardHandler) fail(c echo.Context, op string, err error) error {
	mapped := toAppError(err)
	if appErr, ok := mapped.(*xhttp.AppError); ok && appErr.Status >= 500 {
		h.logger.Error(op+" failed", xlogger.Error(err))
	} else {
		h.logger.Warn(op+" failed", xlogger.Error(err))
	}
	return xhttp.AppErrorResponse(c, mapped)
}

// Series passes a FRED observations document through unchanged.
func (h *DashboardHandler) Series(c echo.Context) error {
	req := &models.SeriesRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	raw, err := h.series.Raw(c.Request().Context(), *req)
	if err != nil {
		return h.fail(c, "series", err)
	}
	return xhttp.RawResponse(c, xhttp.CacheSeries, raw)
}

func (h *DashboardHandler) Quote(c echo.Context) error {
	req := &models.QuoteRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	q, err := h.equity.Quote(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.fail(c, "quote", err)
	}
	return xhttp.CachedResponse(c, xhttp.CacheEquity, q)
}

// Topic returns the handler of one narrative summary route.
func (h *DashboardHandler) Topic(key string) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := h.topics.Summary(c.Request().Context(), key)
		if err != nil {
			return h.fail(c, key+" summary", err)
		}
		return xhttp.CachedResponse(c, xhttp.CacheSummary, res)
	}
}

func (h *DashboardHandler) Commentary(c echo.Context) error {
	res, err := h.commentary.Commentary(c.Request().Context())
	if err != nil {
		return h.fail(c, "commentary", err)
	}
	return xhttp.CachedResponse(c, xhttp.CacheSummary, res)
}

func (h *DashboardHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if err := xhttp.ReadAndValidateRequest(c, req); err != nil {
		return xhttp.AppErrorResponse(c, err)
	}
	cards, err := h.series.Cards(c.Request().Context(), req.Topic, req.WithLatest)
	if err != nil {
		return h.fail(c, "indicators", err)
	}
	cc := ""
	if req.WithLatest {
		cc = xhttp.CacheSeries
	}
	return xhttp.CachedResponse(c, cc, cards)
}

func (h *DashboardHandler) StockGroups(c echo.Context) error {
	return xhttp.CachedResponse(c, "", catalog.HousingStockGroups())
}
