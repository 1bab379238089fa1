package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"github.com/couchcryptid/hazard-zone-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Publisher receives new dataset snapshots.
type Publisher interface {
	Version() string
	Swap(ds *domain.Dataset)
}

// Watcher polls a dataset file and publishes a new snapshot when its
// contents change. A snapshot that fails validation is discarded and the
// current one stays in place.
type Watcher struct {
	path     string
	interval time.Duration
	target   Publisher
	clock    clockwork.Clock
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewWatcher creates a Watcher. Pass nil for clock to use real time.
func NewWatcher(path string, interval time.Duration, target Publisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Watcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Watcher{
		path:     path,
		interval: interval,
		target:   target,
		clock:    clock,
		logger:   logger,
		metrics:  metrics,
	}
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("dataset watcher started", "path", w.path, "interval", w.interval)
	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("dataset watcher stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
			if _, err := w.Reload(); err != nil {
				w.logger.Error("dataset reload failed, keeping current snapshot",
					"path", w.path,
					"version", w.target.Version(),
					"error", err,
				)
			}
		}
	}
}

// Reload checks the file once. It reports whether a new snapshot was published.
func (w *Watcher) Reload() (bool, error) {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.metrics.DatasetReloads.WithLabelValues("error").Inc()
		return false, fmt.Errorf("read dataset: %w", err)
	}

	version := Checksum(data)
	if version == w.target.Version() {
		w.metrics.DatasetReloads.WithLabelValues("unchanged").Inc()
		return false, nil
	}

	format, err := FormatFromPath(w.path)
	if err != nil {
		w.metrics.DatasetReloads.WithLabelValues("error").Inc()
		return false, err
	}
	ds, err := Parse(data, format, version)
	if err != nil {
		w.metrics.DatasetReloads.WithLabelValues("error").Inc()
		return false, err
	}

	previous := w.target.Version()
	w.target.Swap(ds)
	w.metrics.DatasetReloads.WithLabelValues("success").Inc()
	w.metrics.DatasetZones.Set(float64(ds.Len()))
	w.logger.Info("dataset reloaded",
		"path", w.path,
		"previous_version", previous,
		"version", version,
		"zones", ds.Len(),
	)
	return true, nil
}
