package library

import (
	"context"
	"log/slog"
	"time"

	"episodic/internal/cache"
	"episodic/internal/catalog"
	"episodic/internal/datastore"
)

// Catalog is the slice of the remote catalog client the service uses.
type Catalog interface {
	SeriesInfo(ctx context.Context, seriesID int64) ([]byte, error)
	SeasonsList(ctx context.Context, seriesID int64) ([]byte, error)
	EpisodeList(ctx context.Context, seriesID int64) ([]byte, error)
	ShowCast(ctx context.Context, seriesID int64) ([]byte, error)
	ScheduleByDate(ctx context.Context, day time.Time) ([]byte, error)
	SearchSeries(ctx context.Context, query string) ([]catalog.SearchResult, error)
}

// Service orchestrates catalog fetches, the document cache, and the
// tracked-series collection.
type Service struct {
	store   *datastore.Store
	cache   *cache.Store
	catalog Catalog
	logger  *slog.Logger
}

// NewService creates a new library service.
func NewService(store *datastore.Store, cacheStore *cache.Store, cat Catalog, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, cache: cacheStore, catalog: cat, logger: logger}
}

// InvalidateSeries drops every cached document of one series.
func (s *Service) InvalidateSeries(seriesID int64) error {
	resources := []cache.Resource{
		cache.SeriesInfo(seriesID),
		cache.SeasonsList(seriesID),
		cache.EpisodeList(seriesID),
		cache.ShowCast(seriesID),
	}
	for _, res := range resources {
		if err := s.cache.Invalidate(res); err != nil {
			return err
		}
	}
	s.logger.Info("invalidated series cache", "seriesID", seriesID)
	return nil
}
