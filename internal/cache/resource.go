package cache

import (
	"path/filepath"
	"strconv"
	"time"
)

// Kind identifies a category of cacheable catalog document.
type Kind int

const (
	KindSeriesInfo Kind = iota
	KindSeasonsList
	KindEpisodeList
	KindShowCast
	KindSchedule
)

// dir returns the subdirectory a kind's documents live under.
// Each kind has its own directory, so keys never collide across kinds.
func (k Kind) dir() string {
	switch k {
	case KindSeriesInfo:
		return "series_info"
	case KindSeasonsList:
		return "seasons_list"
	case KindEpisodeList:
		return "episode_list"
	case KindShowCast:
		return "show_cast"
	case KindSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// String returns a human-readable kind name for logs
func (k Kind) String() string {
	return k.dir()
}

// Resource identifies one cacheable document.
type Resource struct {
	Kind Kind
	Key  string
}

// SeriesInfo identifies the main-info document of a series.
func SeriesInfo(seriesID int64) Resource {
	return Resource{Kind: KindSeriesInfo, Key: strconv.FormatInt(seriesID, 10)}
}

// SeasonsList identifies the season list of a series.
func SeasonsList(seriesID int64) Resource {
	return Resource{Kind: KindSeasonsList, Key: strconv.FormatInt(seriesID, 10)}
}

// EpisodeList identifies the full episode list of a series.
func EpisodeList(seriesID int64) Resource {
	return Resource{Kind: KindEpisodeList, Key: strconv.FormatInt(seriesID, 10)}
}

// ShowCast identifies the cast document of a series.
func ShowCast(seriesID int64) Resource {
	return Resource{Kind: KindShowCast, Key: strconv.FormatInt(seriesID, 10)}
}

// ScheduleByDate identifies the airing schedule of a civil date.
func ScheduleByDate(day time.Time) Resource {
	return Resource{Kind: KindSchedule, Key: day.Format("2006-01-02")}
}

func (r Resource) String() string {
	return r.Kind.String() + "/" + r.Key
}

// relPath returns the document path relative to the cache root.
// The mapping is pure: the same resource always yields the same path.
func (r Resource) relPath() string {
	return filepath.Join(r.Kind.dir(), r.Key+".json")
}
