package di

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"SignalStories/internal/domain/repository"
	"SignalStories/internal/handler/api"
	mid "SignalStories/internal/middleware"
	"SignalStories/internal/service/alphavantage"
	"SignalStories/internal/service/anthropic"
	"SignalStories/internal/service/fred"
	"SignalStories/internal/service/identity"
	"SignalStories/internal/service/newsapi"
	"SignalStories/internal/service/ratelimit"
	"SignalStories/internal/usecase"
	"SignalStories/pkg/cache"
	"SignalStories/pkg/config"
	xhttp "SignalStories/pkg/http"
	"SignalStories/pkg/logger"
	"SignalStories/pkg/metrics"
	"SignalStories/pkg/server"
)

// ProvideLogger creates the root logger from the log section.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideRegistry creates the Prometheus registry served on the metrics path.
func ProvideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideRecorder creates the metrics recorder on reg.
func ProvideRecorder(reg *prometheus.Registry) *metrics.Recorder {
	return metrics.New(reg)
}

// ProvideHTTPClient creates the outbound client shared by all providers.
func ProvideHTTPClient(cfg *config.Config, rec *metrics.Recorder) *xhttp.Client {
	return xhttp.NewClient(
		xhttp.WithTimeout(cfg.HTTPClient.Timeout),
		xhttp.WithRecorder(rec),
	)
}

// ProvideCacheService creates the cache backend. The cleanup closes it.
func ProvideCacheService(cfg *config.Config, log *logger.Logger) (cache.Service, func(), error) {
	memOpts := []cache.MemoryOption{
		cache.WithMemoryMaxSize(cfg.Cache.MaxEntries),
		cache.WithMemoryDefaultTTL(cfg.Cache.SummaryTTL),
	}

	var svc cache.Service
	switch cfg.Cache.Backend {
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		rc, err := cache.NewRedisCache(ctx,
			cache.WithRedisAddr(cfg.Cache.Redis.Addr),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
			cache.WithRedisPool(cfg.Cache.Redis.PoolSize, 2, 5*time.Second),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("redis cache: %w", err)
		}
		svc = cache.NewLayeredCache(rc, cache.WithLayeredMemorySize(cfg.Cache.MaxEntries))
		log.Info("cache ready", logger.String("backend", "redis"), logger.String("addr", cfg.Cache.Redis.Addr))
	default:
		svc = cache.NewMemoryCache(memOpts...)
		log.Info("cache ready", logger.String("backend", "memory"), logger.Int("max_entries", cfg.Cache.MaxEntries))
	}

	cleanup := func() {
		if err := svc.Close(); err != nil {
			log.Warn("cache close error", logger.Error(err))
		}
	}
	return svc, cleanup, nil
}

// ProvideCache scopes the cache service for the dashboard and records lookups.
func ProvideCache(svc cache.Service, rec *metrics.Recorder) repository.Cache {
	return cache.NewNamed(svc, "dashboard", rec)
}

func ProvideFred(cfg *config.Config, client *xhttp.Client) *fred.Client {
	return fred.New(client, cfg.Fred.APIKey, cfg.Fred.BaseURL)
}

func ProvideAlphaVantage(cfg *config.Config, client *xhttp.Client) *alphavantage.Client {
	return alphavantage.New(client, cfg.AlphaVantage.APIKey, cfg.AlphaVantage.BaseURL,
		ratelimit.PerMinute(cfg.AlphaVantage.RequestsPerMinute))
}

func ProvideNewsAPI(cfg *config.Config, client *xhttp.Client) *newsapi.Client {
	return newsapi.New(client, cfg.NewsAPI.APIKey, cfg.NewsAPI.BaseURL)
}

func ProvideAnthropic(cfg *config.Config, client *xhttp.Client) *anthropic.Client {
	return anthropic.New(client.HTTPClient(), anthropic.Config{
		APIKey:    cfg.Anthropic.APIKey,
		BaseURL:   cfg.Anthropic.BaseURL,
		Model:     cfg.Anthropic.Model,
		MaxTokens: cfg.Anthropic.MaxTokens,
	})
}

// openAuth reports whether requests are admitted without verification.
func openAuth(cfg *config.Config) bool {
	return !cfg.Auth.Firebase.Configured() && cfg.Auth.AllowOpen
}

// ProvideIdentity creates the token verifier, or the open verifier when
// authentication is explicitly disabled.
func ProvideIdentity(cfg *config.Config, log *logger.Logger) (repository.IdentityVerifier, error) {
	if openAuth(cfg) {
		log.Warn("authentication is DISABLED: every request is served as the anonymous user; do not expose this instance publicly",
			logger.Bool("auth.allow_open", true))
		return identity.OpenVerifier{}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	v, err := identity.NewFirebase(ctx, identity.FirebaseConfig{
		ProjectID:   cfg.Auth.Firebase.ProjectID,
		ClientEmail: cfg.Auth.Firebase.ClientEmail,
		PrivateKey:  cfg.Auth.Firebase.PrivateKey,
	})
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	return v, nil
}

func ProvideIndicatorSummarizer(series repository.SeriesProvider, m repository.Metrics, log *logger.Logger) *usecase.IndicatorSummarizer {
	return usecase.NewIndicatorSummarizer(series, m, log)
}

func ProvideSeriesService(cfg *config.Config, series repository.SeriesProvider, s *usecase.IndicatorSummarizer) *usecase.SeriesService {
	return usecase.NewSeriesService(series, s, cfg.Fred.ObservationStart)
}

func ProvideEquityService(cfg *config.Config, stocks repository.DailySeriesProvider, c repository.Cache, m repository.Metrics, log *logger.Logger) *usecase.EquityService {
	return usecase.NewEquityService(stocks, c, m, usecase.EquityConfig{
		StaggerDelay: cfg.AlphaVantage.StaggerDelay,
		TTL:          cfg.AlphaVantage.CacheTTL,
	}, log)
}

func ProvideTopicService(
	cfg *config.Config,
	news repository.NewsProvider,
	series repository.SeriesProvider,
	llm repository.TextGenerator,
	s *usecase.IndicatorSummarizer,
	c repository.Cache,
	log *logger.Logger,
) *usecase.TopicService {
	return usecase.NewTopicService(news, series, llm, s, c, usecase.TopicConfig{
		PageSize:     cfg.NewsAPI.PageSize,
		MaxHeadlines: cfg.NewsAPI.MaxHeadlines,
		StartDate:    cfg.Fred.ObservationStart,
		TTL:          cfg.Cache.SummaryTTL,
	}, log)
}

func ProvideCommentaryService(
	cfg *config.Config,
	series repository.SeriesProvider,
	llm repository.TextGenerator,
	equity *usecase.EquityService,
	s *usecase.IndicatorSummarizer,
	c repository.Cache,
	log *logger.Logger,
) *usecase.CommentaryService {
	return usecase.NewCommentaryService(series, llm, equity, s, c, cfg.Cache.SummaryTTL, cfg.Fred.ObservationStart, log)
}

// ProvideDashboardHandler creates the API handler behind the auth and
// per-user rate limit middleware.
func ProvideDashboardHandler(
	cfg *config.Config,
	log *logger.Logger,
	verifier repository.IdentityVerifier,
	m repository.Metrics,
	series *usecase.SeriesService,
	equity *usecase.EquityService,
	topics *usecase.TopicService,
	commentary *usecase.CommentaryService,
) *api.DashboardHandler {
	limiter := ratelimit.New(cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillPerSec)
	return api.NewDashboardHandler(log, series, equity, topics, commentary,
		mid.RequireUser(verifier, openAuth(cfg), log),
		mid.RateLimit(limiter, m),
	)
}

// ProvideHTTPServer creates the echo server with the page gate and routes.
func ProvideHTTPServer(
	cfg *config.Config,
	log *logger.Logger,
	rec *metrics.Recorder,
	reg *prometheus.Registry,
	handler *api.DashboardHandler,
) *xhttp.Server {
	opts := []xhttp.ServerOption{
		xhttp.WithHost(cfg.Server.Host),
		xhttp.WithPort(cfg.Server.Port),
		xhttp.WithTimeouts(cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, cfg.Server.ShutdownTimeout),
		xhttp.WithSlowThreshold(cfg.Server.SlowThreshold),
		xhttp.WithAllowOrigins(cfg.Server.AllowOrigins...),
		xhttp.WithStaticDir(cfg.Server.StaticDir),
		xhttp.WithHandlers(handler),
	}
	if cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetrics(cfg.Metrics.Path, reg))
	}
	if !openAuth(cfg) {
		var extra []string
		if cfg.Metrics.Enabled {
			extra = append(extra, cfg.Metrics.Path)
		}
		opts = append(opts, xhttp.WithMiddleware(mid.PageGate(mid.GateConfig{
			LoginPath:      cfg.Auth.LoginPath,
			CookieName:     cfg.Auth.CookieName,
			PublicPrefixes: mid.PublicPrefixes(extra...),
		})))
	}
	return xhttp.NewServer(log, rec, opts...)
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, log *logger.Logger, srv *xhttp.Server) *server.App {
	return server.New(cfg, log, srv)
}
