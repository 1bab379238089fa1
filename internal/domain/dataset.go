package domain

import (
	"errors"
	"fmt"
	"time"
)

// Dataset is an immutable snapshot of the curated hazard zones.
type Dataset struct {
	zones    []HazardZone
	byName   map[string]int
	version  string
	loadedAt time.Time
}

// NewDataset validates zone names and indexes the zones. Zones must already
// have been built with NewHazardZone. All problems are reported together.
func NewDataset(zones []HazardZone, version string) (*Dataset, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("%w: dataset has no zones", ErrInvalidDataset)
	}

	var errs []error
	byName := make(map[string]int, len(zones))
	for i, z := range zones {
		if err := ValidateBoundary(z.Boundary); err != nil {
			errs = append(errs, fmt.Errorf("zone %q: %w", z.Name, err))
		}
		if prev, dup := byName[z.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: duplicate zone name %q at entries %d and %d", ErrInvalidDataset, z.Name, prev, i))
			continue
		}
		byName[z.Name] = i
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	owned := make([]HazardZone, len(zones))
	copy(owned, zones)
	return &Dataset{
		zones:    owned,
		byName:   byName,
		version:  version,
		loadedAt: clock.Now(),
	}, nil
}

// Zones returns a copy of the zones in dataset order.
func (d *Dataset) Zones() []HazardZone {
	out := make([]HazardZone, len(d.zones))
	copy(out, d.zones)
	return out
}

// Len returns the number of zones.
func (d *Dataset) Len() int { return len(d.zones) }

// Zone looks up a zone by exact, case-sensitive name.
func (d *Dataset) Zone(name string) (HazardZone, error) {
	i, ok := d.byName[name]
	if !ok {
		return HazardZone{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d.zones[i], nil
}

// Version identifies the dataset contents, e.g. a checksum of the source file.
func (d *Dataset) Version() string { return d.version }

// LoadedAt is when the snapshot was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Match evaluates point against the snapshot and returns matches in dataset order.
func (d *Dataset) Match(point GeoPoint) []HazardMatch {
	var out []HazardMatch
	for z := range FindContaining(point, d.zones) {
		out = append(out, HazardMatch{Zone: z, Point: point})
	}
	return out
}
