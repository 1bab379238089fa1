// Package query answers "which hazard zones contain this point" against the
// active dataset snapshot.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"github.com/couchcryptid/hazard-zone-service/internal/observability"
)

// ZoneSource provides the dataset snapshot to query and the zone lookups
// served alongside it. *repository.Repository satisfies it.
type ZoneSource interface {
	Snapshot() *domain.Dataset
	All() []domain.HazardZone
	ByRiskLevel(level domain.RiskLevel) []domain.HazardZone
	ByName(name string) (domain.HazardZone, error)
}

// MatchPublisher receives a summary of every query that matched at least one zone.
type MatchPublisher interface {
	PublishMatch(ctx context.Context, event domain.MatchEvent) error
}

// Options narrows a point query.
type Options struct {
	// MinRiskLevel drops matches below this level. RiskUnspecified disables the filter.
	MinRiskLevel domain.RiskLevel
	// Limit caps the number of matches returned. Zero or less means no limit.
	Limit int
}

// Result is the ordered outcome of a point query.
type Result struct {
	Matches        []domain.HazardMatch
	DatasetVersion string
}

// ErrInvalidOptions is returned for query options outside their allowed range.
var ErrInvalidOptions = errors.New("invalid query options")

// ErrNoDataset is returned before any dataset snapshot has been loaded.
var ErrNoDataset = errors.New("hazard-zone dataset not loaded")

// Service is the hazard query façade used by the HTTP layer.
type Service struct {
	source    ZoneSource
	publisher MatchPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a Service. Pass a nil publisher to disable the match-event feed.
func NewService(source ZoneSource, publisher MatchPublisher, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		source:    source,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// QueryPoint returns every zone containing point, highest risk first and
// then by name. An empty result is not an error.
func (s *Service) QueryPoint(ctx context.Context, point domain.GeoPoint, opts Options) (Result, error) {
	if err := point.Validate(); err != nil {
		s.metrics.Queries.WithLabelValues("invalid").Inc()
		return Result{}, err
	}
	if opts.MinRiskLevel != domain.RiskUnspecified && !opts.MinRiskLevel.Valid() {
		s.metrics.Queries.WithLabelValues("invalid").Inc()
		return Result{}, fmt.Errorf("%w: minimum risk level %d", ErrInvalidOptions, int(opts.MinRiskLevel))
	}

	ds := s.source.Snapshot()
	if ds == nil {
		s.metrics.Queries.WithLabelValues("error").Inc()
		return Result{}, ErrNoDataset
	}

	start := time.Now()
	matches := ds.Match(point)
	matches = domain.FilterMinRisk(matches, opts.MinRiskLevel)
	domain.SortMatches(matches)
	if opts.Limit > 0 && len(matches) > opts.Limit {
		matches = matches[:opts.Limit]
	}
	s.metrics.QueryDuration.Observe(time.Since(start).Seconds())
	s.metrics.QueryMatches.Observe(float64(len(matches)))

	if len(matches) == 0 {
		s.metrics.Queries.WithLabelValues("empty").Inc()
		return Result{Matches: []domain.HazardMatch{}, DatasetVersion: ds.Version()}, nil
	}
	s.metrics.Queries.WithLabelValues("matched").Inc()

	s.publish(ctx, domain.NewMatchEvent(point, matches, ds.Version()))
	return Result{Matches: matches, DatasetVersion: ds.Version()}, nil
}

// Zones lists zones in dataset order, restricted to level unless it is RiskUnspecified.
func (s *Service) Zones(level domain.RiskLevel) ([]domain.HazardZone, error) {
	if s.source.Snapshot() == nil {
		return nil, ErrNoDataset
	}
	if level == domain.RiskUnspecified {
		return s.source.All(), nil
	}
	return s.source.ByRiskLevel(level), nil
}

// Zone looks up a zone by exact name.
func (s *Service) Zone(name string) (domain.HazardZone, error) {
	if s.source.Snapshot() == nil {
		return domain.HazardZone{}, ErrNoDataset
	}
	return s.source.ByName(name)
}

// DatasetVersion reports the version of the active snapshot.
func (s *Service) DatasetVersion() string {
	if ds := s.source.Snapshot(); ds != nil {
		return ds.Version()
	}
	return ""
}

// publish hands the event to the feed. Failures never fail the query.
func (s *Service) publish(ctx context.Context, event domain.MatchEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishMatch(ctx, event); err != nil {
		s.metrics.MatchEvents.WithLabelValues("error").Inc()
		s.logger.Warn("match event publish failed",
			"zones", event.Zones,
			"highest_risk", event.HighestRisk.String(),
			"error", err,
		)
		return
	}
	s.metrics.MatchEvents.WithLabelValues("published").Inc()
}
