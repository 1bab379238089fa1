package domain

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"
)

// RiskLevel is an ordinal disaster-risk classification. The zero value means
// "unspecified" and is never valid on a zone.
type RiskLevel int

const (
	RiskUnspecified RiskLevel = iota
	RiskLow
	RiskModerate
	RiskHigh
)

var riskLevelNames = map[RiskLevel]string{
	RiskLow:      "low",
	RiskModerate: "moderate",
	RiskHigh:     "high",
}

// ParseRiskLevel parses "low", "moderate" or "high" (case-insensitive).
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return RiskLow, nil
	case "moderate":
		return RiskModerate, nil
	case "high":
		return RiskHigh, nil
	}
	return RiskUnspecified, fmt.Errorf("%w: unknown risk level %q", ErrInvalidDataset, s)
}

func (r RiskLevel) String() string {
	if name, ok := riskLevelNames[r]; ok {
		return name
	}
	return "unspecified"
}

// Valid reports whether r is one of the defined levels.
func (r RiskLevel) Valid() bool {
	_, ok := riskLevelNames[r]
	return ok
}

func (r RiskLevel) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: risk level %d", ErrInvalidDataset, int(r))
	}
	return []byte(r.String()), nil
}

func (r *RiskLevel) UnmarshalText(text []byte) error {
	level, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*r = level
	return nil
}

// GeoPoint is a WGS-84 latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the point lies within [-90, 90] x [-180, 180].
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("%w: latitude %v outside [-90, 90]", ErrInvalidCoordinate, p.Lat)
	}
	if math.IsNaN(p.Lon) || p.Lon < -180 || p.Lon > 180 {
		return fmt.Errorf("%w: longitude %v outside [-180, 180]", ErrInvalidCoordinate, p.Lon)
	}
	return nil
}

// Point converts to an orb point (x = longitude, y = latitude).
func (p GeoPoint) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// GeoPointFromOrb converts an orb point back to latitude-first form.
func GeoPointFromOrb(pt orb.Point) GeoPoint {
	return GeoPoint{Lat: pt.Lat(), Lon: pt.Lon()}
}

// HazardZone is a named polygonal region with a risk classification.
// Zones are immutable once built with NewHazardZone.
type HazardZone struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	RiskLevel   RiskLevel  `json:"risk_level"`
	Source      string     `json:"source"`
	Boundary    []GeoPoint `json:"boundary"`

	bound orb.Bound
}

// NewHazardZone validates the zone and precomputes its bounding box.
// A closing vertex that repeats the first one is dropped.
func NewHazardZone(name, description string, level RiskLevel, source string, boundary []GeoPoint) (HazardZone, error) {
	if strings.TrimSpace(name) == "" {
		return HazardZone{}, fmt.Errorf("%w: zone name is empty", ErrInvalidDataset)
	}
	if !level.Valid() {
		return HazardZone{}, fmt.Errorf("%w: zone %q has no valid risk level", ErrInvalidDataset, name)
	}

	ring := make([]GeoPoint, len(boundary))
	copy(ring, boundary)
	if len(ring) > 3 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	if err := ValidateBoundary(ring); err != nil {
		return HazardZone{}, fmt.Errorf("zone %q: %w", name, err)
	}

	return HazardZone{
		Name:        name,
		Description: description,
		RiskLevel:   level,
		Source:      source,
		Boundary:    ring,
		bound:       Ring(ring).Bound(),
	}, nil
}

// Bound returns the zone's bounding box.
func (z HazardZone) Bound() orb.Bound {
	if z.bound == (orb.Bound{}) && len(z.Boundary) > 0 {
		return Ring(z.Boundary).Bound()
	}
	return z.bound
}

// Ring converts a latitude-first boundary into an orb ring.
// The result is not explicitly closed.
func Ring(boundary []GeoPoint) orb.Ring {
	ring := make(orb.Ring, len(boundary))
	for i, p := range boundary {
		ring[i] = p.Point()
	}
	return ring
}

// HazardMatch reports that a query point lies inside a zone.
type HazardMatch struct {
	Zone  HazardZone
	Point GeoPoint
}
