package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SignalStories/internal/domain"
	"SignalStories/internal/domain/catalog"
	"SignalStories/internal/domain/models"
	domrepo "SignalStories/internal/domain/repository"
	"SignalStories/pkg/cache"
	"SignalStories/pkg/logger"
)

// Topic is the static description of a narrative page.
type Topic struct {
	Key       string
	Path      string
	NewsQuery string
	Keywords  []string
	Prompt    PromptBuilder
}

var topics = map[string]Topic{
	catalog.TopicHousing: {
		Key:       catalog.TopicHousing,
		Path:      "/api/summary",
		NewsQuery: `"housing market" OR "home prices" OR "mortgage rates" OR "home sales" OR "real estate market"`,
		Keywords:  []string{"home", "hous", "mortgage", "real estate", "property", "rent"},
		Prompt:    HousingPrompt,
	},
	catalog.TopicLabor: {
		Key:       catalog.TopicLabor,
		Path:      "/api/labor-summary",
		NewsQuery: `"labor market" OR "unemployment" OR "jobs report" OR "nonfarm payrolls" OR "jobless claims"`,
		Keywords:  []string{"job", "employ", "labor", "labour", "wage", "hiring", "layoff", "payroll", "workforce"},
		Prompt:    LaborPrompt,
	},
	catalog.TopicInflation: {
		Key:       catalog.TopicInflation,
		Path:      "/api/inflation-summary",
		NewsQuery: `"inflation" OR "CPI" OR "consumer prices" OR "price index" OR "Federal Reserve rates"`,
		Keywords:  []string{"inflation", "cpi", "price", "fed", "interest rate", "pce", "gas"},
		Prompt:    InflationPrompt,
	},
	catalog.TopicGDP: {
		Key:       catalog.TopicGDP,
		Path:      "/api/gdp-summary",
		NewsQuery: `"GDP" OR "economic growth" OR "recession" OR "manufacturing PMI" OR "industrial production"`,
		Keywords:  []string{"gdp", "econom", "recession", "growth", "manufactur", "industrial", "pmi"},
		Prompt:    GDPPrompt,
	},
	catalog.TopicConsumer: {
		Key:       catalog.TopicConsumer,
		Path:      "/api/consumer-summary",
		NewsQuery: `"consumer spending" OR "retail sales" OR "consumer sentiment" OR "consumer confidence" OR "credit card debt"`,
		Keywords:  []string{"consumer", "retail", "spending", "sentiment", "confidence", "credit", "saving"},
		Prompt:    ConsumerPrompt,
	},
}

// LookupTopic returns the topic registered under key.
func LookupTopic(key string) (Topic, bool) {
	t, ok := topics[key]
	return t, ok
}

// FilterRelevant keeps headlines whose title contains any keyword, ignoring
// case, and returns at most limit of them in their original order.
func FilterRelevant(headlines []models.Headline, keywords []string, limit int) []models.Headline {
	out := make([]models.Headline, 0, max(limit, 0))
	for _, h := range headlines {
		if len(out) == limit {
			break
		}
		title := strings.ToLower(h.Title)
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				out = append(out, h)
				break
			}
		}
	}
	return out
}

// TopicConfig tunes TopicService.
type TopicConfig struct {
	PageSize     int
	MaxHeadlines int
	StartDate    string
	TTL          time.Duration
}

// TopicService produces the narrative summary of a topic page.
type TopicService struct {
	news       domrepo.NewsProvider
	fred       domrepo.SeriesProvider
	llm        domrepo.TextGenerator
	composer   *Composer
	summarizer *IndicatorSummarizer
	cache      domrepo.Cache
	cfg        TopicConfig
	log        *logger.Logger
	now        func() time.Time
}

func NewTopicService(
	news domrepo.NewsProvider,
	fred domrepo.SeriesProvider,
	llm domrepo.TextGenerator,
	summarizer *IndicatorSummarizer,
	c domrepo.Cache,
	cfg TopicConfig,
	log *logger.Logger,
) *TopicService {
	return &TopicService{
		news:       news,
		fred:       fred,
		llm:        llm,
		composer:   NewComposer(llm),
		summarizer: summarizer,
		cache:      c,
		cfg:        cfg,
		log:        log.With("topics"),
		now:        time.Now,
	}
}

// Summary fetches headlines and indicators for topic and asks the LLM for a
// narrative. Results are cached for the configured TTL.
func (s *TopicService) Summary(ctx context.Context, key string) (*models.TopicSummary, error) {
	topic, ok := LookupTopic(key)
	if !ok {
		return nil, fmt.Errorf("unknown topic %q", key)
	}
	if err := domain.RequireConfigured(s.news, s.llm, s.fred); err != nil {
		return nil, err
	}

	cacheKey := cache.GenerateKey("summary", key)
	var cached models.TopicSummary
	if s.lookup(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	articles, err := s.news.Search(ctx, topic.NewsQuery, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("news for %s: %w", key, err)
	}
	headlines := FilterRelevant(articles, topic.Keywords, s.cfg.MaxHeadlines)

	defs, _ := catalog.Indicators(key)
	data := s.summarizer.Summarize(ctx, defs, s.cfg.StartDate)

	text, err := s.composer.Compose(ctx, topic.Prompt(data, headlines))
	if err != nil {
		return nil, fmt.Errorf("narrative for %s: %w", key, err)
	}

	out := &models.TopicSummary{
		Summary:     text,
		Headlines:   headlines,
		GeneratedAt: s.now().UTC(),
	}
	s.store(ctx, cacheKey, out)
	return out, nil
}

func (s *TopicService) lookup(ctx context.Context, key string, dest any) bool {
	if s.cache == nil || s.cfg.TTL <= 0 {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.Warn("cache read failed", logger.String("key", key), logger.Error(err))
		return false
	}
	return hit
}

func (s *TopicService) store(ctx context.Context, key string, value any) {
	if s.cache == nil || s.cfg.TTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.TTL); err != nil {
		s.log.Warn("cache write failed", logger.String("key", key), logger.Error(err))
	}
}
