// Package dataset loads and validates hazard-zone datasets from YAML or
// GeoJSON files, and keeps a repository up to date when the file changes.
package dataset

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"gopkg.in/yaml.v3"
)

// EmbeddedVersion is the version reported for the built-in dataset.
const EmbeddedVersion = "embedded"

//go:embed data/abra_hazard_zones.yaml
var embeddedYAML []byte

// Format is a dataset file encoding.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatGeoJSON Format = "geojson"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".geojson", ".json":
		return FormatGeoJSON, nil
	}
	return "", fmt.Errorf("%w: unsupported dataset file extension %q", domain.ErrInvalidDataset, filepath.Ext(path))
}

// Load reads the dataset at path, or the embedded dataset when path is empty.
func Load(path string) (*domain.Dataset, error) {
	if path == "" {
		return LoadEmbedded()
	}
	return LoadFile(path)
}

// LoadEmbedded parses the dataset compiled into the binary.
func LoadEmbedded() (*domain.Dataset, error) {
	return Parse(embeddedYAML, FormatYAML, EmbeddedVersion)
}

// EmbeddedYAML returns a copy of the built-in dataset file.
func EmbeddedYAML() []byte {
	return bytes.Clone(embeddedYAML)
}

// LoadFile reads and validates a dataset file. The version is derived from
// the file contents.
func LoadFile(path string) (*domain.Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(data, format, Checksum(data))
}

// Parse decodes and validates a dataset. Every invalid entry is reported.
func Parse(data []byte, format Format, version string) (*domain.Dataset, error) {
	var records []zoneRecord
	var err error
	switch format {
	case FormatYAML:
		records, err = decodeYAML(data)
	case FormatGeoJSON:
		records, err = decodeGeoJSON(data)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidDataset, format)
	}
	if err != nil {
		return nil, err
	}

	zones := make([]domain.HazardZone, 0, len(records))
	var errs []error
	for i, rec := range records {
		z, err := rec.toZone()
		if err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		zones = append(zones, z)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return domain.NewDataset(zones, version)
}

// Checksum returns a short content hash used as the dataset version.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:12]
}

// zoneRecord is the format-neutral form of one dataset entry.
type zoneRecord struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	RiskLevel   string      `yaml:"risk_level"`
	Source      string      `yaml:"source"`
	Boundary    [][]float64 `yaml:"boundary"` // [lat, lon]
}

func (r zoneRecord) toZone() (domain.HazardZone, error) {
	level, err := domain.ParseRiskLevel(r.RiskLevel)
	if err != nil {
		return domain.HazardZone{}, fmt.Errorf("zone %q: %w", r.Name, err)
	}
	boundary := make([]domain.GeoPoint, 0, len(r.Boundary))
	for i, pair := range r.Boundary {
		if len(pair) != 2 {
			return domain.HazardZone{}, fmt.Errorf("zone %q: %w: vertex %d has %d values, want [lat, lon]",
				r.Name, domain.ErrInvalidGeometry, i, len(pair))
		}
		boundary = append(boundary, domain.GeoPoint{Lat: pair[0], Lon: pair[1]})
	}
	return domain.NewHazardZone(
		strings.TrimSpace(r.Name),
		strings.TrimSpace(r.Description),
		level,
		strings.TrimSpace(r.Source),
		boundary,
	)
}

type yamlFile struct {
	Zones []zoneRecord `yaml:"zones"`
}

func decodeYAML(data []byte) ([]zoneRecord, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f yamlFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", domain.ErrInvalidDataset, err)
	}
	return f.Zones, nil
}
