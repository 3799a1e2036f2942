package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"SignalStories/internal/domain"
	"SignalStories/internal/domain/catalog"
	"SignalStories/internal/domain/models"
	domrepo "SignalStories/internal/domain/repository"
	"SignalStories/pkg/cache"
	"SignalStories/pkg/logger"
)

const historyLength = 30

var hundred = decimal.NewFromInt(100)

// EquityConfig tunes EquityService.
type EquityConfig struct {
	// StaggerDelay separates consecutive outbound calls of a batch.
	StaggerDelay time.Duration
	// TTL of cached daily series. Zero disables the cache.
	TTL time.Duration
}

// EquityService reads daily closes and derives quotes and snapshots.
type EquityService struct {
	stocks  domrepo.DailySeriesProvider
	cache   domrepo.Cache
	metrics domrepo.Metrics
	cfg     EquityConfig
	log     *logger.Logger
	wait    func(ctx context.Context, d time.Duration) error
}

func NewEquityService(stocks domrepo.DailySeriesProvider, c domrepo.Cache, m domrepo.Metrics, cfg EquityConfig, log *logger.Logger) *EquityService {
	return &EquityService{
		stocks:  stocks,
		cache:   c,
		metrics: m,
		cfg:     cfg,
		log:     log.With("equity"),
		wait:    sleepCtx,
	}
}

// Quote returns the latest close of symbol with its daily move and the last
// 30 closes.
func (s *EquityService) Quote(ctx context.Context, symbol string) (*models.EquityQuote, error) {
	if err := domain.RequireConfigured(s.stocks); err != nil {
		return nil, err
	}
	series, _, err := s.daily(ctx, symbol)
	if err != nil {
		if domain.IsRateLimited(err) {
			s.recordRateLimited()
		}
		return nil, err
	}
	return BuildQuote(series), nil
}

// BuildQuote derives the quote body from a non-empty series.
func BuildQuote(series *models.DailySeries) *models.EquityQuote {
	pts := series.Points
	latest := pts[len(pts)-1].Close
	previous := latest
	if len(pts) > 1 {
		previous = pts[len(pts)-2].Close
	}
	change := latest.Sub(previous)

	tail := pts[max(len(pts)-historyLength, 0):]
	history := make([]models.HistoryPoint, len(tail))
	for i, p := range tail {
		history[i] = models.HistoryPoint{Date: p.Date, Close: p.Close.InexactFloat64()}
	}

	return &models.EquityQuote{
		Symbol:        series.Symbol,
		Price:         latest.InexactFloat64(),
		Change:        change.InexactFloat64(),
		ChangePercent: percentChange(latest, previous).InexactFloat64(),
		History:       history,
	}
}

// Snapshot summarizes a non-empty series. Previous falls back to the latest
// close; the weekly reference is the sixth close from the end, or the first.
func Snapshot(series *models.DailySeries, name string) models.EquitySnapshot {
	pts := series.Points
	n := len(pts)
	latest := pts[n-1].Close
	previous := latest
	if n > 1 {
		previous = pts[n-2].Close
	}
	weekAgo := pts[max(n-6, 0)].Close

	return models.EquitySnapshot{
		Symbol:       series.Symbol,
		Name:         name,
		Price:        latest,
		DailyChange:  percentChange(latest, previous),
		WeeklyChange: percentChange(latest, weekAgo),
	}
}

// percentChange is (latest-ref)/ref*100 rounded to 2 decimals. A zero
// reference yields zero.
func percentChange(latest, ref decimal.Decimal) decimal.Decimal {
	if ref.IsZero() {
		return decimal.Zero
	}
	return latest.Sub(ref).Div(ref).Mul(hundred).Round(2)
}

// SnapshotBatch fetches tickers one after another, pausing between outbound
// calls. Tickers that fail or are throttled are left out.
func (s *EquityService) SnapshotBatch(ctx context.Context, tickers []models.Ticker) []models.EquitySnapshot {
	out := make([]models.EquitySnapshot, 0, len(tickers))
	called := false
	for _, t := range tickers {
		if called && s.cfg.StaggerDelay > 0 {
			if err := s.wait(ctx, s.cfg.StaggerDelay); err != nil {
				break
			}
		}

		series, hit, err := s.daily(ctx, t.Symbol)
		called = !hit
		if err != nil {
			if domain.IsRateLimited(err) {
				s.recordRateLimited()
				s.log.Warn("ticker throttled", logger.String("symbol", t.Symbol))
			} else {
				s.log.Warn("ticker fetch failed", logger.String("symbol", t.Symbol), logger.Error(err))
			}
			if s.metrics != nil {
				s.metrics.RecordDropped("ticker")
			}
			if ctx.Err() != nil {
				break
			}
			continue
		}
		out = append(out, Snapshot(series, t.Name))
	}
	return out
}

// daily returns the series of symbol, from cache when possible. hit reports
// whether no outbound call was made.
func (s *EquityService) daily(ctx context.Context, symbol string) (*models.DailySeries, bool, error) {
	key := cache.GenerateKey("equity", strings.ToUpper(symbol))
	if s.cache != nil && s.cfg.TTL > 0 {
		var cached models.DailySeries
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		}
		if hit && len(cached.Points) > 0 {
			return &cached, true, nil
		}
	}

	series, err := s.stocks.FetchDaily(ctx, symbol)
	if err != nil {
		var rl *domain.RateLimitError
		// A local quota denial never reaches the provider.
		return nil, errors.As(err, &rl) && rl.Local, err
	}

	if s.cache != nil && s.cfg.TTL > 0 {
		if err := s.cache.Set(ctx, key, series, s.cfg.TTL); err != nil {
			s.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
		}
	}
	return series, false, nil
}

func (s *EquityService) recordRateLimited() {
	if s.metrics != nil {
		s.metrics.RecordRateLimited(s.stocks.Name())
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// CommentaryService writes the housing equity commentary.
type CommentaryService struct {
	fred       domrepo.SeriesProvider
	llm        domrepo.TextGenerator
	equity     *EquityService
	summarizer *IndicatorSummarizer
	composer   *Composer
	cache      domrepo.Cache
	ttl        time.Duration
	startDate  string
	log        *logger.Logger
	now        func() time.Time
}

func NewCommentaryService(
	fred domrepo.SeriesProvider,
	llm domrepo.TextGenerator,
	equity *EquityService,
	summarizer *IndicatorSummarizer,
	c domrepo.Cache,
	ttl time.Duration,
	startDate string,
	log *logger.Logger,
) *CommentaryService {
	return &CommentaryService{
		fred:       fred,
		llm:        llm,
		equity:     equity,
		summarizer: summarizer,
		composer:   NewComposer(llm),
		cache:      c,
		ttl:        ttl,
		startDate:  startDate,
		log:        log.With("commentary"),
		now:        time.Now,
	}
}

var commentaryKey = cache.GenerateKey("commentary", catalog.TopicHousing)

// Commentary relates housing indicators to the sector tickers.
func (s *CommentaryService) Commentary(ctx context.Context) (*models.Commentary, error) {
	if err := domain.RequireConfigured(s.fred, s.equity.stocks, s.llm); err != nil {
		return nil, err
	}

	if s.cache != nil && s.ttl > 0 {
		var cached models.Commentary
		hit, err := s.cache.Get(ctx, commentaryKey, &cached)
		if err != nil {
			s.log.Warn("cache read failed", logger.Error(err))
		}
		if hit {
			return &cached, nil
		}
	}

	defs, _ := catalog.Indicators(catalog.TopicHousing)
	data := s.summarizer.Summarize(ctx, defs, s.startDate)
	stocks := s.equity.SnapshotBatch(ctx, catalog.CommentaryTickers())

	text, err := s.composer.Compose(ctx, CommentaryPrompt(data, stocks))
	if err != nil {
		return nil, err
	}
	out := &models.Commentary{Commentary: text, GeneratedAt: s.now().UTC()}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.Set(ctx, commentaryKey, out, s.ttl); err != nil {
			s.log.Warn("cache write failed", logger.Error(err))
		}
	}
	return out, nil
}
