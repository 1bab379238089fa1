package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/couchcryptid/hazard-zone-service/internal/dataset"
	"github.com/couchcryptid/hazard-zone-service/internal/domain"
)

func export(w io.Writer, zones []domain.HazardZone) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dataset.ToFeatureCollection(zones)); err != nil {
		return fmt.Errorf("encode geojson: %w", err)
	}
	return nil
}
