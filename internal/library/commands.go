package library

import (
	"context"
	"errors"
	"fmt"
	"time"

	"episodic/internal/domain"
)

// Track adds a series to the collection, naming the record from the
// catalog's main-info document. Tracking an already-tracked series
// returns the existing record unchanged.
func (s *Service) Track(ctx context.Context, seriesID int64) (*domain.TrackedSeries, error) {
	existing, err := s.store.Get(seriesID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrSeriesNotTracked) {
		return nil, err
	}

	info, err := s.SeriesInfo(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	series := &domain.TrackedSeries{
		ID:        seriesID,
		Name:      info.Name,
		Premiered: info.Premiered,
		Status:    info.Status,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.store.Put(series); err != nil {
		s.logger.Error("failed to save series record", "error", err, "seriesID", seriesID)
		return nil, err
	}

	s.logger.Info("tracking series", "seriesID", seriesID, "name", series.Name)
	return series, nil
}

// Untrack removes a series from the collection.
func (s *Service) Untrack(seriesID int64) error {
	if err := s.store.Delete(seriesID); err != nil {
		return err
	}
	s.logger.Info("untracked series", "seriesID", seriesID)
	return nil
}

// MarkEpisodeWatched records one episode as seen.
func (s *Service) MarkEpisodeWatched(seriesID int64, season, episode int) (*domain.TrackedSeries, error) {
	series, err := s.store.Get(seriesID)
	if err != nil {
		return nil, err
	}
	series.MarkWatched(season, episode)
	if err := s.store.Put(series); err != nil {
		return nil, err
	}
	s.logger.Debug("marked episode watched", "seriesID", seriesID, "episode", domain.EpisodeCode(season, episode))
	return series, nil
}

// MarkEpisodeUnwatched removes one episode from the seen set.
func (s *Service) MarkEpisodeUnwatched(seriesID int64, season, episode int) (*domain.TrackedSeries, error) {
	series, err := s.store.Get(seriesID)
	if err != nil {
		return nil, err
	}
	series.MarkUnwatched(season, episode)
	if err := s.store.Put(series); err != nil {
		return nil, err
	}
	s.logger.Debug("marked episode unwatched", "seriesID", seriesID, "episode", domain.EpisodeCode(season, episode))
	return series, nil
}

// MarkSeasonWatched records every episode of a season as seen, using the
// cached episode list for the season's episode numbers.
func (s *Service) MarkSeasonWatched(ctx context.Context, seriesID int64, season int) (*domain.TrackedSeries, error) {
	series, err := s.store.Get(seriesID)
	if err != nil {
		return nil, err
	}

	episodes, err := s.Episodes(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	marked := 0
	for _, ep := range episodes {
		if ep.Season != season {
			continue
		}
		series.MarkWatched(ep.Season, ep.Number)
		marked++
	}
	if marked == 0 {
		return nil, fmt.Errorf("series %d has no episodes in season %d", seriesID, season)
	}

	if err := s.store.Put(series); err != nil {
		return nil, err
	}
	s.logger.Info("marked season watched", "seriesID", seriesID, "season", season, "episodes", marked)
	return series, nil
}

// SetNotify flips new-episode notifications for a series.
func (s *Service) SetNotify(seriesID int64, notify bool) (*domain.TrackedSeries, error) {
	series, err := s.store.Get(seriesID)
	if err != nil {
		return nil, err
	}
	series.Notify = notify
	if err := s.store.Put(series); err != nil {
		return nil, err
	}
	s.logger.Debug("set notify", "seriesID", seriesID, "notify", notify)
	return series, nil
}
