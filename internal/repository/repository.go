// Package repository holds the active hazard-zone dataset snapshot.
package repository

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
)

// Repository serves read-only lookups over the current dataset snapshot.
// Snapshots are replaced whole, never mutated, so readers need no locking.
type Repository struct {
	current atomic.Pointer[domain.Dataset]
}

// New creates a Repository serving ds. ds may be nil until Swap is called.
func New(ds *domain.Dataset) *Repository {
	r := &Repository{}
	if ds != nil {
		r.current.Store(ds)
	}
	return r
}

// Snapshot returns the current dataset, or nil if none has been loaded.
func (r *Repository) Snapshot() *domain.Dataset {
	return r.current.Load()
}

// Swap atomically publishes a new dataset. In-flight readers keep the
// snapshot they already hold.
func (r *Repository) Swap(ds *domain.Dataset) {
	r.current.Store(ds)
}

// Version returns the current dataset version, or "" if none is loaded.
func (r *Repository) Version() string {
	if ds := r.current.Load(); ds != nil {
		return ds.Version()
	}
	return ""
}

// All returns every zone in dataset order.
func (r *Repository) All() []domain.HazardZone {
	ds := r.current.Load()
	if ds == nil {
		return nil
	}
	return ds.Zones()
}

// ByRiskLevel returns zones with exactly the given risk level, in dataset order.
func (r *Repository) ByRiskLevel(level domain.RiskLevel) []domain.HazardZone {
	var out []domain.HazardZone
	for _, z := range r.All() {
		if z.RiskLevel == level {
			out = append(out, z)
		}
	}
	return out
}

// ByName returns the zone with the exact name, or an error wrapping domain.ErrNotFound.
func (r *Repository) ByName(name string) (domain.HazardZone, error) {
	ds := r.current.Load()
	if ds == nil {
		return domain.HazardZone{}, domain.ErrNotFound
	}
	return ds.Zone(name)
}

// CheckReadiness reports an error until a dataset has been loaded.
func (r *Repository) CheckReadiness(_ context.Context) error {
	if r.current.Load() == nil {
		return errors.New("hazard-zone dataset not loaded")
	}
	return nil
}
