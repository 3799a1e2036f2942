//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"SignalStories/internal/domain/repository"
	"SignalStories/internal/service/alphavantage"
	"SignalStories/internal/service/anthropic"
	"SignalStories/internal/service/fred"
	"SignalStories/internal/service/newsapi"
	"SignalStories/internal/usecase"
	"SignalStories/pkg/config"
	"SignalStories/pkg/metrics"
	"SignalStories/pkg/server"
)

var infraSet = wire.NewSet(
	ProvideLogger,
	ProvideRegistry,
	ProvideRecorder,
	wire.Bind(new(repository.Metrics), new(*metrics.Recorder)),
	ProvideHTTPClient,
	ProvideCacheService,
	ProvideCache,
)

var providerSet = wire.NewSet(
	ProvideFred,
	wire.Bind(new(repository.SeriesProvider), new(*fred.Client)),
	ProvideAlphaVantage,
	wire.Bind(new(repository.DailySeriesProvider), new(*alphavantage.Client)),
	ProvideNewsAPI,
	wire.Bind(new(repository.NewsProvider), new(*newsapi.Client)),
	ProvideAnthropic,
	wire.Bind(new(repository.TextGenerator), new(*anthropic.Client)),
)

var usecaseSet = wire.NewSet(
	ProvideIndicatorSummarizer,
	ProvideSeriesService,
	ProvideEquityService,
	ProvideTopicService,
	ProvideCommentaryService,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		infraSet,
		providerSet,
		usecaseSet,
		ProvideIdentity,
		ProvideDashboardHandler,
		ProvideHTTPServer,
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeTopicService wires the topic summary use case for one-shot CLI runs.
func InitializeTopicService(cfg *config.Config) (*usecase.TopicService, func(), error) {
	wire.Build(
		infraSet,
		providerSet,
		ProvideIndicatorSummarizer,
		ProvideTopicService,
	)
	return nil, nil, nil
}
