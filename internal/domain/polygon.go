package domain

import (
	"fmt"
	"iter"
	"math"

	"github.com/paulmach/orb/planar"
)

const (
	// degenerateEdgeEpsilon is the length, in degrees, below which an edge is
	// treated as zero-length and skipped.
	degenerateEdgeEpsilon = 1e-12

	// onEdgeEpsilon is the perpendicular distance, in degrees, within which a
	// point is considered to lie on an edge (about 0.1 mm at the equator).
	onEdgeEpsilon = 1e-9

	// minRingArea rejects collinear rings, in square degrees.
	minRingArea = 1e-14
)

// Contains reports whether point lies inside the implicitly closed polygon
// described by boundary. Points on an edge or vertex count as inside.
func Contains(point GeoPoint, boundary []GeoPoint) (bool, error) {
	if len(boundary) < 3 {
		return false, fmt.Errorf("%w: boundary has %d vertices, need at least 3", ErrInvalidGeometry, len(boundary))
	}

	inside := false
	for i, j := 0, len(boundary)-1; i < len(boundary); j, i = i, i+1 {
		a, b := boundary[j], boundary[i]
		if degenerateEdge(a, b) {
			continue
		}
		if onSegment(point, a, b) {
			return true, nil
		}
		if (a.Lat >= point.Lat) == (b.Lat >= point.Lat) {
			continue
		}
		// Longitude at which the edge crosses the point's latitude.
		crossLon := a.Lon + (point.Lat-a.Lat)*(b.Lon-a.Lon)/(b.Lat-a.Lat)
		if crossLon > point.Lon {
			inside = !inside
		}
	}
	return inside, nil
}

// FindContaining lazily yields every zone whose boundary contains point, in
// input order. Zones with malformed boundaries are skipped; use
// FindContainingErr to surface them.
func FindContaining(point GeoPoint, zones []HazardZone) iter.Seq[HazardZone] {
	return func(yield func(HazardZone) bool) {
		for _, z := range zones {
			if ok, err := z.contains(point); err != nil || !ok {
				continue
			}
			if !yield(z) {
				return
			}
		}
	}
}

// FindContainingErr is the strict form of FindContaining. It stops at the
// first zone with malformed geometry.
func FindContainingErr(point GeoPoint, zones []HazardZone) ([]HazardZone, error) {
	var matched []HazardZone
	for _, z := range zones {
		ok, err := z.contains(point)
		if err != nil {
			return nil, fmt.Errorf("zone %q: %w", z.Name, err)
		}
		if ok {
			matched = append(matched, z)
		}
	}
	return matched, nil
}

func (z HazardZone) contains(point GeoPoint) (bool, error) {
	if len(z.Boundary) < 3 {
		return Contains(point, z.Boundary)
	}
	// Padded by the on-edge tolerance so near-boundary points still reach Contains.
	if !z.Bound().Pad(onEdgeEpsilon).Contains(point.Point()) {
		return false, nil
	}
	return Contains(point, z.Boundary)
}

// ValidateBoundary checks the HazardZone geometry invariants: at least three
// distinct vertices, all in coordinate range, non-zero area and no
// self-intersection.
func ValidateBoundary(boundary []GeoPoint) error {
	if len(boundary) < 3 {
		return fmt.Errorf("%w: boundary has %d vertices, need at least 3", ErrInvalidGeometry, len(boundary))
	}

	distinct := make(map[GeoPoint]struct{}, len(boundary))
	for i, p := range boundary {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%w: vertex %d: %w", ErrInvalidGeometry, i, err)
		}
		distinct[p] = struct{}{}
	}
	if len(distinct) < 3 {
		return fmt.Errorf("%w: boundary has %d distinct vertices, need at least 3", ErrInvalidGeometry, len(distinct))
	}

	if area := planar.Area(Ring(boundary)); math.Abs(area) < minRingArea {
		return fmt.Errorf("%w: boundary encloses no area", ErrInvalidGeometry)
	}

	if i, j, ok := firstSelfIntersection(boundary); ok {
		return fmt.Errorf("%w: edges %d and %d intersect", ErrInvalidGeometry, i, j)
	}
	return nil
}

// firstSelfIntersection returns the indices of the first pair of
// non-adjacent edges that touch. Edge i runs from vertex i to vertex i+1.
func firstSelfIntersection(boundary []GeoPoint) (int, int, bool) {
	n := len(boundary)
	edge := func(i int) (GeoPoint, GeoPoint) {
		return boundary[i], boundary[(i+1)%n]
	}
	for i := 0; i < n; i++ {
		a1, a2 := edge(i)
		if degenerateEdge(a1, a2) {
			continue
		}
		for j := i + 2; j < n; j++ {
			if i == 0 && j == n-1 {
				// first and last edges share vertex 0
				continue
			}
			b1, b2 := edge(j)
			if degenerateEdge(b1, b2) {
				continue
			}
			if segmentsIntersect(a1, a2, b1, b2) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

func degenerateEdge(a, b GeoPoint) bool {
	return math.Abs(a.Lat-b.Lat) < degenerateEdgeEpsilon && math.Abs(a.Lon-b.Lon) < degenerateEdgeEpsilon
}

// onSegment reports whether p lies on the closed segment ab.
func onSegment(p, a, b GeoPoint) bool {
	dLon, dLat := b.Lon-a.Lon, b.Lat-a.Lat
	length := math.Hypot(dLon, dLat)
	cross := dLon*(p.Lat-a.Lat) - dLat*(p.Lon-a.Lon)
	if math.Abs(cross)/length > onEdgeEpsilon {
		return false
	}
	return p.Lon >= math.Min(a.Lon, b.Lon)-onEdgeEpsilon &&
		p.Lon <= math.Max(a.Lon, b.Lon)+onEdgeEpsilon &&
		p.Lat >= math.Min(a.Lat, b.Lat)-onEdgeEpsilon &&
		p.Lat <= math.Max(a.Lat, b.Lat)+onEdgeEpsilon
}

// orientation returns >0 for counter-clockwise, <0 for clockwise, 0 for collinear.
func orientation(a, b, c GeoPoint) float64 {
	return (b.Lon-a.Lon)*(c.Lat-a.Lat) - (b.Lat-a.Lat)*(c.Lon-a.Lon)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// segmentsIntersect reports whether closed segments p1p2 and q1q2 share a point.
func segmentsIntersect(p1, p2, q1, q2 GeoPoint) bool {
	d1 := sign(orientation(q1, q2, p1))
	d2 := sign(orientation(q1, q2, p2))
	d3 := sign(orientation(p1, p2, q1))
	d4 := sign(orientation(p1, p2, q2))

	if d1 != d2 && d3 != d4 && d1 != 0 && d2 != 0 && d3 != 0 && d4 != 0 {
		return true
	}
	return (d1 == 0 && onSegment(p1, q1, q2)) ||
		(d2 == 0 && onSegment(p2, q1, q2)) ||
		(d3 == 0 && onSegment(q1, p1, p2)) ||
		(d4 == 0 && onSegment(q2, p1, p2))
}
