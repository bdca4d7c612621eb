package domain

import (
	"fmt"
	"sort"
	"strconv"
	"time"
)

// TrackedSeries is one entry in the user's tracked collection.
type TrackedSeries struct {
	ID        int64     `json:"id"`        // Catalog series identifier
	Name      string    `json:"name"`      // Display name
	Premiered string    `json:"premiered"` // First air date (YYYY-MM-DD), may be empty
	Status    string    `json:"status"`    // "Running", "Ended", etc.
	AddedAt   time.Time `json:"added_at"`  // When the series was first tracked
	Notify    bool      `json:"notify"`    // Notify about new episodes

	// Watch progress keyed by season number (0 = specials)
	Seasons map[int]*SeasonProgress `json:"seasons,omitempty"`
}

// SeasonProgress records which episodes of a season have been seen.
type SeasonProgress struct {
	Watched []int `json:"watched"` // Episode numbers, kept sorted
}

// MarkWatched records an episode as seen. Idempotent.
func (t *TrackedSeries) MarkWatched(season, episode int) {
	if t.Seasons == nil {
		t.Seasons = make(map[int]*SeasonProgress)
	}
	sp := t.Seasons[season]
	if sp == nil {
		sp = &SeasonProgress{}
		t.Seasons[season] = sp
	}
	sp.mark(episode)
}

// MarkUnwatched removes an episode from the seen set. Empty seasons are pruned.
func (t *TrackedSeries) MarkUnwatched(season, episode int) {
	sp := t.Seasons[season]
	if sp == nil {
		return
	}
	sp.unmark(episode)
	if len(sp.Watched) == 0 {
		delete(t.Seasons, season)
	}
}

// IsWatched reports whether an episode has been seen.
func (t *TrackedSeries) IsWatched(season, episode int) bool {
	sp := t.Seasons[season]
	if sp == nil {
		return false
	}
	i := sort.SearchInts(sp.Watched, episode)
	return i < len(sp.Watched) && sp.Watched[i] == episode
}

// WatchedCount returns the total number of watched episodes across all seasons.
func (t *TrackedSeries) WatchedCount() int {
	n := 0
	for _, sp := range t.Seasons {
		if sp != nil {
			n += len(sp.Watched)
		}
	}
	return n
}

// Progress returns the watched-episode count per season.
func (t *TrackedSeries) Progress() map[int]int {
	out := make(map[int]int, len(t.Seasons))
	for season, sp := range t.Seasons {
		if sp != nil {
			out[season] = len(sp.Watched)
		}
	}
	return out
}

// PremiereYear returns the first-air year, or 0 if unknown.
func (t *TrackedSeries) PremiereYear() int {
	if len(t.Premiered) < 4 {
		return 0
	}
	year, err := strconv.Atoi(t.Premiered[:4])
	if err != nil {
		return 0
	}
	return year
}

func (p *SeasonProgress) mark(episode int) {
	i := sort.SearchInts(p.Watched, episode)
	if i < len(p.Watched) && p.Watched[i] == episode {
		return
	}
	p.Watched = append(p.Watched, 0)
	copy(p.Watched[i+1:], p.Watched[i:])
	p.Watched[i] = episode
}

func (p *SeasonProgress) unmark(episode int) {
	i := sort.SearchInts(p.Watched, episode)
	if i >= len(p.Watched) || p.Watched[i] != episode {
		return
	}
	p.Watched = append(p.Watched[:i], p.Watched[i+1:]...)
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func EpisodeCode(season, episode int) string {
	return fmt.Sprintf("S%02dE%02d", season, episode)
}
