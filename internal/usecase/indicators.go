package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"SignalStories/internal/domain/models"
	domrepo "SignalStories/internal/domain/repository"
	"SignalStories/pkg/logger"
)

// IndicatorSummarizer fetches a batch of series concurrently and keeps the
// ones that succeeded.
type IndicatorSummarizer struct {
	series  domrepo.SeriesProvider
	metrics domrepo.Metrics
	log     *logger.Logger
}

func NewIndicatorSummarizer(series domrepo.SeriesProvider, m domrepo.Metrics, log *logger.Logger) *IndicatorSummarizer {
	return &IndicatorSummarizer{series: series, metrics: m, log: log.With("indicators")}
}

// Summarize returns one entry per indicator that fetched at least one
// observation. Failed or empty indicators are left out.
func (s *IndicatorSummarizer) Summarize(ctx context.Context, defs []models.IndicatorDefinition, startDate string) Indicators {
	slots := make([][]models.Observation, len(defs))

	var g errgroup.Group
	for i, def := range defs {
		i, def := i, def
		g.Go(func() error {
			obs, err := s.series.FetchSeries(ctx, models.SeriesQuery{
				SeriesID:         def.ID,
				ObservationStart: startDate,
				Units:            def.APIUnits,
			})
			if err != nil {
				s.log.Warn("indicator fetch failed", logger.String("series_id", def.ID), logger.Error(err))
				if s.metrics != nil {
					s.metrics.RecordDropped("indicator")
				}
				return nil
			}
			slots[i] = obs
			return nil
		})
	}
	_ = g.Wait()

	out := make(Indicators, len(defs))
	for i, def := range defs {
		if sum, ok := Reduce(slots[i]); ok {
			out[def.ID] = sum
		}
	}
	return out
}

// Reduce keeps the last two observations of a series. It reports false for
// an empty series.
func Reduce(obs []models.Observation) (models.IndicatorSummary, bool) {
	if len(obs) == 0 {
		return models.IndicatorSummary{}, false
	}
	last := obs[len(obs)-1]
	sum := models.IndicatorSummary{Latest: &last.Value, Date: &last.Date}
	if len(obs) > 1 {
		prev := obs[len(obs)-2].Value
		sum.Previous = &prev
	}
	return sum, true
}
