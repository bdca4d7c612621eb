package main

import (
	"fmt"

	"episodic/internal/catalog"
)

func dash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// premiereYear extracts the year from a YYYY-MM-DD premiere date.
func premiereYear(premiered string) string {
	if len(premiered) < 4 {
		return ""
	}
	return premiered[:4]
}

// networkName prefers the broadcast network and falls back to the
// web channel for streaming-only shows.
func networkName(s *catalog.Series) string {
	if s.Network != nil {
		return s.Network.Name
	}
	if s.WebChannel != nil {
		return s.WebChannel.Name
	}
	return ""
}

func formatRating(average float64) string {
	if average <= 0 {
		return ""
	}
	return fmt.Sprintf("%.1f", average)
}
