// Command export writes a hazard-zone dataset as a GeoJSON FeatureCollection
// so it can be previewed in mapping tools or handed to the frontend map layer.
// The dataset is validated first, so only loadable data is ever exported.
//
// Usage:
//
//	go run ./cmd/export -out web/public/hazard_zones.geojson
//	go run ./cmd/export -dataset zones.yaml -out -
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/hazard-zone-service/internal/dataset"
)

func main() {
	// Logs go to stderr so "-out -" keeps stdout pure GeoJSON.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(os.Args[1:], os.Stdout, logger); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer, logger *slog.Logger) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	path := fs.String("dataset", "", "dataset file to export; empty exports the embedded dataset")
	out := fs.String("out", "-", "output path, or - for stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	ds, err := dataset.Load(*path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}

	if *out == "-" {
		return export(stdout, ds.Zones())
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := export(f, ds.Zones()); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	logger.Info("dataset exported", "zones", ds.Len(), "version", ds.Version(), "out", *out)
	return nil
}
