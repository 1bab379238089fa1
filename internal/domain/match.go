package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

// SortMatches orders matches by risk level descending, then zone name ascending.
func SortMatches(matches []HazardMatch) {
	slices.SortStableFunc(matches, func(a, b HazardMatch) int {
		if c := cmp.Compare(b.Zone.RiskLevel, a.Zone.RiskLevel); c != 0 {
			return c
		}
		return strings.Compare(a.Zone.Name, b.Zone.Name)
	})
}

// FilterMinRisk drops matches below floor. RiskUnspecified keeps everything.
func FilterMinRisk(matches []HazardMatch, floor RiskLevel) []HazardMatch {
	if floor == RiskUnspecified {
		return matches
	}
	return slices.DeleteFunc(matches, func(m HazardMatch) bool {
		return m.Zone.RiskLevel < floor
	})
}

// MatchEvent is the record published to the match-event feed for a query
// that hit at least one zone.
type MatchEvent struct {
	Point          GeoPoint  `json:"point"`
	Zones          []string  `json:"zones"`
	HighestRisk    RiskLevel `json:"highest_risk"`
	DatasetVersion string    `json:"dataset_version"`
	QueriedAt      time.Time `json:"queried_at"`
}

// NewMatchEvent summarizes sorted matches. matches must be non-empty.
func NewMatchEvent(point GeoPoint, matches []HazardMatch, datasetVersion string) MatchEvent {
	names := make([]string, len(matches))
	highest := RiskUnspecified
	for i, m := range matches {
		names[i] = m.Zone.Name
		highest = max(highest, m.Zone.RiskLevel)
	}
	return MatchEvent{
		Point:          point,
		Zones:          names,
		HighestRisk:    highest,
		DatasetVersion: datasetVersion,
		QueriedAt:      clock.Now().UTC(),
	}
}
