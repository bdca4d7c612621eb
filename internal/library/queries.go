package library

import (
	"context"
	"sort"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"episodic/internal/cache"
	"episodic/internal/catalog"
	"episodic/internal/domain"
)

// SeriesInfo returns the main-info document of a series, served from the
// cache once fetched.
func (s *Service) SeriesInfo(ctx context.Context, seriesID int64) (*catalog.Series, error) {
	data, err := s.cache.Get(ctx, cache.SeriesInfo(seriesID), func(ctx context.Context) ([]byte, error) {
		return s.catalog.SeriesInfo(ctx, seriesID)
	})
	if err != nil {
		s.logger.Error("failed to load series info", "error", err, "seriesID", seriesID)
		return nil, err
	}
	return catalog.DecodeSeries(data)
}

// Seasons returns the season list of a series.
func (s *Service) Seasons(ctx context.Context, seriesID int64) ([]catalog.Season, error) {
	data, err := s.cache.Get(ctx, cache.SeasonsList(seriesID), func(ctx context.Context) ([]byte, error) {
		return s.catalog.SeasonsList(ctx, seriesID)
	})
	if err != nil {
		s.logger.Error("failed to load seasons", "error", err, "seriesID", seriesID)
		return nil, err
	}
	return catalog.DecodeSeasons(data)
}

// Episodes returns the full episode list of a series.
func (s *Service) Episodes(ctx context.Context, seriesID int64) ([]catalog.Episode, error) {
	data, err := s.cache.Get(ctx, cache.EpisodeList(seriesID), func(ctx context.Context) ([]byte, error) {
		return s.catalog.EpisodeList(ctx, seriesID)
	})
	if err != nil {
		s.logger.Error("failed to load episodes", "error", err, "seriesID", seriesID)
		return nil, err
	}
	return catalog.DecodeEpisodes(data)
}

// Cast returns the cast of a series.
func (s *Service) Cast(ctx context.Context, seriesID int64) ([]catalog.CastCredit, error) {
	data, err := s.cache.Get(ctx, cache.ShowCast(seriesID), func(ctx context.Context) ([]byte, error) {
		return s.catalog.ShowCast(ctx, seriesID)
	})
	if err != nil {
		s.logger.Error("failed to load cast", "error", err, "seriesID", seriesID)
		return nil, err
	}
	return catalog.DecodeCast(data)
}

// Schedule returns the airing schedule for a civil date.
func (s *Service) Schedule(ctx context.Context, day time.Time) ([]catalog.ScheduleEntry, error) {
	data, err := s.cache.Get(ctx, cache.ScheduleByDate(day), func(ctx context.Context) ([]byte, error) {
		return s.catalog.ScheduleByDate(ctx, day)
	})
	if err != nil {
		s.logger.Error("failed to load schedule", "error", err, "date", day.Format("2006-01-02"))
		return nil, err
	}
	return catalog.DecodeSchedule(data)
}

// Tracked returns the tracked collection ordered by series id.
func (s *Service) Tracked() ([]domain.TrackedSeries, error) {
	return s.store.All()
}

// SearchCatalog queries the remote catalog for series matching a name.
// Results are not cached; only per-series documents are.
func (s *Service) SearchCatalog(ctx context.Context, query string) ([]catalog.SearchResult, error) {
	return s.catalog.SearchSeries(ctx, query)
}

// SearchTracked fuzzy-matches the tracked collection by name.
func (s *Service) SearchTracked(query string) ([]domain.TrackedSeries, error) {
	if query == "" {
		return nil, nil
	}

	all, err := s.store.All()
	if err != nil {
		return nil, err
	}

	names := make([]string, len(all))
	for i, series := range all {
		names[i] = series.Name
	}

	matches := fuzzy.RankFindFold(query, names)

	// Sort by score (lower is better)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	results := make([]domain.TrackedSeries, 0, len(matches))
	for _, match := range matches {
		results = append(results, all[match.OriginalIndex])
	}
	return results, nil
}
