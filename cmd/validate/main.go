// Command validate checks a hazard-zone dataset file against the zone
// invariants without starting the service. It is meant for CI on dataset
// changes: it exits non-zero and prints every problem found.
//
// Usage:
//
//	go run ./cmd/validate -dataset data/abra_hazard_zones.yaml
//	go run ./cmd/validate -dataset zones.geojson -probe 17.5920,120.6900
//
// With no -dataset flag the embedded dataset is checked.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/couchcryptid/hazard-zone-service/internal/dataset"
	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"github.com/couchcryptid/hazard-zone-service/internal/observability"
	"github.com/couchcryptid/hazard-zone-service/internal/query"
	"github.com/couchcryptid/hazard-zone-service/internal/repository"
)

func main() {
	path := flag.String("dataset", "", "dataset file (.yaml, .yml, .geojson, .json); empty checks the embedded dataset")
	probe := flag.String("probe", "", "optional lat,lon to evaluate against the dataset")
	flag.Parse()

	os.Exit(run(os.Stdout, os.Stderr, *path, *probe))
}

func run(stdout, stderr io.Writer, path, probe string) int {
	ds, err := dataset.Load(path)
	if err != nil {
		fmt.Fprintln(stderr, "FAIL: dataset is invalid")
		for _, e := range flatten(err) {
			fmt.Fprintf(stderr, "  - %v\n", e)
		}
		return 1
	}

	fmt.Fprintf(stdout, "OK: %d zones, version %s\n", ds.Len(), ds.Version())
	for _, z := range ds.Zones() {
		fmt.Fprintf(stdout, "  %-9s %s (%d vertices) - %s\n", z.RiskLevel, z.Name, len(z.Boundary), z.Source)
	}

	if probe == "" {
		return 0
	}
	point, err := parseProbe(probe)
	if err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 2
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := query.NewService(repository.New(ds), nil, logger, observability.NewMetricsForTesting())
	res, err := svc.QueryPoint(context.Background(), point, query.Options{})
	if err != nil {
		fmt.Fprintf(stderr, "FAIL: %v\n", err)
		return 2
	}
	fmt.Fprintf(stdout, "probe %.4f,%.4f: %d match(es)\n", point.Lat, point.Lon, len(res.Matches))
	for _, m := range res.Matches {
		fmt.Fprintf(stdout, "  %-9s %s\n", m.Zone.RiskLevel, m.Zone.Name)
	}
	return 0
}

func parseProbe(s string) (domain.GeoPoint, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("probe %q: want lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("probe latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil {
		return domain.GeoPoint{}, fmt.Errorf("probe longitude: %w", err)
	}
	return domain.GeoPoint{Lat: lat, Lon: lon}, nil
}

// flatten expands errors.Join trees so each problem prints on its own line.
func flatten(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}
