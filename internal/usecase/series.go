package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"SignalStories/internal/domain"
	"SignalStories/internal/domain/catalog"
	"SignalStories/internal/domain/models"
	domrepo "SignalStories/internal/domain/repository"
	"SignalStories/pkg/format"
)

// SeriesService backs the series passthrough and indicator catalog endpoints.
type SeriesService struct {
	fred       domrepo.SeriesProvider
	summarizer *IndicatorSummarizer
	startDate  string
}

func NewSeriesService(fred domrepo.SeriesProvider, summarizer *IndicatorSummarizer, startDate string) *SeriesService {
	return &SeriesService{fred: fred, summarizer: summarizer, startDate: startDate}
}

// Raw returns the provider document for one series, unmodified.
func (s *SeriesService) Raw(ctx context.Context, req models.SeriesRequest) (json.RawMessage, error) {
	if err := domain.RequireConfigured(s.fred); err != nil {
		return nil, err
	}
	return s.fred.FetchRaw(ctx, models.SeriesQuery{
		SeriesID:         req.SeriesID,
		ObservationStart: req.ObservationStart,
		Units:            req.Units,
	})
}

// Cards returns the catalog of a topic. With withLatest set every card also
// carries its latest reading; indicators that failed to fetch keep only
// their metadata.
func (s *SeriesService) Cards(ctx context.Context, topic string, withLatest bool) ([]models.IndicatorCard, error) {
	defs, ok := catalog.Indicators(topic)
	if !ok {
		return nil, fmt.Errorf("unknown topic %q", topic)
	}

	cards := make([]models.IndicatorCard, len(defs))
	for i, def := range defs {
		cards[i] = models.IndicatorCard{IndicatorDefinition: def}
	}
	if !withLatest {
		return cards, nil
	}

	if err := domain.RequireConfigured(s.fred); err != nil {
		return nil, err
	}
	data := s.summarizer.Summarize(ctx, defs, s.startDate)
	for i := range cards {
		sum, ok := data[cards[i].ID]
		if !ok {
			continue
		}
		cards[i].Summary = &sum
		cards[i].Formatted = format.Value(sum.LatestOr("0"), cards[i].Format)

		trend := format.CalculateTrend(summaryObservations(sum))
		cards[i].Trend = trend.Direction
		cards[i].Change = trend.Change
	}
	return cards, nil
}

func summaryObservations(sum models.IndicatorSummary) []models.Observation {
	var obs []models.Observation
	if sum.Previous != nil {
		obs = append(obs, models.Observation{Value: *sum.Previous})
	}
	if sum.Latest != nil {
		obs = append(obs, models.Observation{Value: *sum.Latest})
	}
	return obs
}
