package catalog

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Series represents a series main-info document
type Series struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type,omitempty"`
	Language     string   `json:"language,omitempty"`
	Genres       []string `json:"genres,omitempty"`
	Status       string   `json:"status,omitempty"`
	Runtime      int      `json:"runtime,omitempty"`
	Premiered    string   `json:"premiered,omitempty"`
	Ended        string   `json:"ended,omitempty"`
	OfficialSite string   `json:"officialSite,omitempty"`
	Rating       Rating   `json:"rating,omitempty"`
	Network      *Network `json:"network,omitempty"`
	WebChannel   *Network `json:"webChannel,omitempty"`
	Image        *Image   `json:"image,omitempty"`
	Summary      string   `json:"summary,omitempty"`
	Updated      int64    `json:"updated,omitempty"`
}

// Rating represents an average community rating
type Rating struct {
	Average float64 `json:"average,omitempty"`
}

// Network represents a broadcast network or web channel
type Network struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Country *Country `json:"country,omitempty"`
}

// Country represents a network's home country
type Country struct {
	Name     string `json:"name,omitempty"`
	Code     string `json:"code,omitempty"`
	Timezone string `json:"timezone,omitempty"`
}

// Image holds poster image URLs
type Image struct {
	Medium   string `json:"medium,omitempty"`
	Original string `json:"original,omitempty"`
}

// Season represents one entry of a series' season list
type Season struct {
	ID           int64  `json:"id"`
	Number       int    `json:"number"`
	Name         string `json:"name,omitempty"`
	EpisodeOrder int    `json:"episodeOrder,omitempty"`
	PremiereDate string `json:"premiereDate,omitempty"`
	EndDate      string `json:"endDate,omitempty"`
	Summary      string `json:"summary,omitempty"`
}

// Episode represents one entry of a series' episode list
type Episode struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Season  int    `json:"season"`
	Number  int    `json:"number"`
	Type    string `json:"type,omitempty"`
	Airdate string `json:"airdate,omitempty"`
	Airtime string `json:"airtime,omitempty"`
	Runtime int    `json:"runtime,omitempty"`
	Rating  Rating `json:"rating,omitempty"`
	Image   *Image `json:"image,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// CastCredit pairs a person with the character they play
type CastCredit struct {
	Person    Person    `json:"person"`
	Character Character `json:"character"`
	Self      bool      `json:"self,omitempty"`
	Voice     bool      `json:"voice,omitempty"`
}

// Person represents a cast member
type Person struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Country  *Country `json:"country,omitempty"`
	Birthday string   `json:"birthday,omitempty"`
	Gender   string   `json:"gender,omitempty"`
	Image    *Image   `json:"image,omitempty"`
}

// Character represents a played character
type Character struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image *Image `json:"image,omitempty"`
}

// ScheduleEntry is an airing episode with its show embedded
type ScheduleEntry struct {
	Episode
	Show Series `json:"show"`
}

// SearchResult is one remote search hit with its relevance score
type SearchResult struct {
	Score float64 `json:"score"`
	Show  Series  `json:"show"`
}

var htmlTags = regexp.MustCompile(`<[^>]*>`)

// PlainSummary returns the summary with HTML markup removed
func (s *Series) PlainSummary() string {
	return strings.TrimSpace(htmlTags.ReplaceAllString(s.Summary, ""))
}

// DecodeSeries parses a series main-info document
func DecodeSeries(data []byte) (*Series, error) {
	var s Series
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse series document: %w", err)
	}
	return &s, nil
}

// DecodeSeasons parses a season-list document
func DecodeSeasons(data []byte) ([]Season, error) {
	var seasons []Season
	if err := json.Unmarshal(data, &seasons); err != nil {
		return nil, fmt.Errorf("failed to parse season list: %w", err)
	}
	return seasons, nil
}

// DecodeEpisodes parses an episode-list document
func DecodeEpisodes(data []byte) ([]Episode, error) {
	var episodes []Episode
	if err := json.Unmarshal(data, &episodes); err != nil {
		return nil, fmt.Errorf("failed to parse episode list: %w", err)
	}
	return episodes, nil
}

// DecodeCast parses a cast document
func DecodeCast(data []byte) ([]CastCredit, error) {
	var cast []CastCredit
	if err := json.Unmarshal(data, &cast); err != nil {
		return nil, fmt.Errorf("failed to parse cast document: %w", err)
	}
	return cast, nil
}

// DecodeSchedule parses an airing-schedule document
func DecodeSchedule(data []byte) ([]ScheduleEntry, error) {
	var entries []ScheduleEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse schedule document: %w", err)
	}
	return entries, nil
}
