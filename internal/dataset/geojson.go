package dataset

import (
	"fmt"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON feature property keys.
const (
	propName        = "name"
	propDescription = "description"
	propRiskLevel   = "risk_level"
	propSource      = "source"
)

func decodeGeoJSON(data []byte) ([]zoneRecord, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("%w: decode geojson: %w", domain.ErrInvalidDataset, err)
	}

	records := make([]zoneRecord, 0, len(fc.Features))
	for i, f := range fc.Features {
		name := f.Properties.MustString(propName, "")
		poly, ok := f.Geometry.(orb.Polygon)
		if !ok {
			return nil, fmt.Errorf("%w: feature %d (%q): geometry is %T, want Polygon",
				domain.ErrInvalidGeometry, i, name, f.Geometry)
		}
		if len(poly) != 1 {
			return nil, fmt.Errorf("%w: feature %d (%q): polygon has %d rings, holes are not supported",
				domain.ErrInvalidGeometry, i, name, len(poly))
		}

		boundary := make([][]float64, len(poly[0]))
		for j, pt := range poly[0] {
			boundary[j] = []float64{pt.Lat(), pt.Lon()}
		}
		records = append(records, zoneRecord{
			Name:        name,
			Description: f.Properties.MustString(propDescription, ""),
			RiskLevel:   f.Properties.MustString(propRiskLevel, ""),
			Source:      f.Properties.MustString(propSource, ""),
			Boundary:    boundary,
		})
	}
	return records, nil
}

// ToFeatureCollection exports zones as GeoJSON Polygon features with closed
// outer rings, in dataset order.
func ToFeatureCollection(zones []domain.HazardZone) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, z := range zones {
		ring := domain.Ring(z.Boundary)
		ring = append(ring, ring[0])

		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties[propName] = z.Name
		f.Properties[propDescription] = z.Description
		f.Properties[propRiskLevel] = z.RiskLevel.String()
		f.Properties[propSource] = z.Source
		fc.Append(f)
	}
	return fc
}
