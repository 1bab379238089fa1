package domain

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		input string
		want  RiskLevel
	}{
		{"low", RiskLow},
		{"moderate", RiskModerate},
		{"high", RiskHigh},
		{"HIGH", RiskHigh},
		{"  Moderate ", RiskModerate},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRiskLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseRiskLevel("extreme")
	require.ErrorIs(t, err, ErrInvalidDataset)
	_, err = ParseRiskLevel("")
	require.ErrorIs(t, err, ErrInvalidDataset)
}

func TestRiskLevel_Ordering(t *testing.T) {
	assert.Less(t, RiskLow, RiskModerate)
	assert.Less(t, RiskModerate, RiskHigh)
	assert.False(t, RiskUnspecified.Valid())
	assert.Equal(t, "unspecified", RiskUnspecified.String())
}

func TestRiskLevel_JSON(t *testing.T) {
	data, err := json.Marshal(struct {
		Level RiskLevel `json:"level"`
	}{RiskHigh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"level":"high"}`, string(data))

	var decoded struct {
		Level RiskLevel `json:"level"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"level":"moderate"}`), &decoded))
	assert.Equal(t, RiskModerate, decoded.Level)

	require.Error(t, json.Unmarshal([]byte(`{"level":"severe"}`), &decoded))

	_, err = json.Marshal(RiskUnspecified)
	require.Error(t, err)
}

func TestGeoPoint_Validate(t *testing.T) {
	valid := []GeoPoint{
		{Lat: 0, Lon: 0},
		{Lat: 90, Lon: 180},
		{Lat: -90, Lon: -180},
		{Lat: 17.5920, Lon: 120.6900},
	}
	for _, p := range valid {
		assert.NoError(t, p.Validate(), "point %v", p)
	}

	invalid := []GeoPoint{
		{Lat: 90.0001, Lon: 0},
		{Lat: -91, Lon: 0},
		{Lat: 0, Lon: 180.5},
		{Lat: 0, Lon: -181},
		{Lat: math.NaN(), Lon: 0},
		{Lat: 0, Lon: math.NaN()},
	}
	for _, p := range invalid {
		assert.ErrorIs(t, p.Validate(), ErrInvalidCoordinate, "point %v", p)
	}
}

func TestGeoPoint_OrbRoundTrip(t *testing.T) {
	p := GeoPoint{Lat: 17.59, Lon: 120.69}
	pt := p.Point()
	assert.Equal(t, 120.69, pt[0])
	assert.Equal(t, 17.59, pt[1])
	assert.Equal(t, p, GeoPointFromOrb(pt))
}

func TestNewHazardZone(t *testing.T) {
	t.Run("drops closing vertex", func(t *testing.T) {
		closed := append(square(), GeoPoint{Lat: 0, Lon: 0})
		z, err := NewHazardZone("Closed", "", RiskLow, "test", closed)
		require.NoError(t, err)
		assert.Len(t, z.Boundary, 4)
	})

	t.Run("copies boundary", func(t *testing.T) {
		b := square()
		z, err := NewHazardZone("Copied", "", RiskLow, "test", b)
		require.NoError(t, err)
		b[0] = GeoPoint{Lat: 50, Lon: 50}
		assert.Equal(t, GeoPoint{Lat: 0, Lon: 0}, z.Boundary[0])
	})

	t.Run("computes bound", func(t *testing.T) {
		z, err := NewHazardZone("Bounded", "", RiskLow, "test", square())
		require.NoError(t, err)
		b := z.Bound()
		assert.Equal(t, 0.0, b.Min.Lat())
		assert.Equal(t, 10.0, b.Max.Lon())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewHazardZone(" ", "", RiskLow, "test", square())
		require.ErrorIs(t, err, ErrInvalidDataset)
	})

	t.Run("rejects unspecified risk", func(t *testing.T) {
		_, err := NewHazardZone("No Risk", "", RiskUnspecified, "test", square())
		require.ErrorIs(t, err, ErrInvalidDataset)
	})

	t.Run("rejects bad geometry", func(t *testing.T) {
		_, err := NewHazardZone("Line", "", RiskLow, "test", []GeoPoint{{0, 0}, {1, 1}})
		require.ErrorIs(t, err, ErrInvalidGeometry)
		assert.Contains(t, err.Error(), "Line")
	})
}

func TestHazardZone_JSON(t *testing.T) {
	z := mustZone(t, "Zone A", RiskHigh, []GeoPoint{{0, 0}, {0, 1}, {1, 1}})
	data, err := json.Marshal(z)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"name": "Zone A",
		"description": "Zone A description",
		"risk_level": "high",
		"source": "test",
		"boundary": [{"lat":0,"lon":0},{"lat":0,"lon":1},{"lat":1,"lon":1}]
	}`, string(data))
}

func TestNewDataset(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	a := mustZone(t, "A", RiskHigh, square())
	b := mustZone(t, "B", RiskLow, uShape())

	ds, err := NewDataset([]HazardZone{a, b}, "v1")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, "v1", ds.Version())
	assert.Equal(t, fixed, ds.LoadedAt())

	got, err := ds.Zone("B")
	require.NoError(t, err)
	assert.Equal(t, RiskLow, got.RiskLevel)

	_, err = ds.Zone("b")
	require.ErrorIs(t, err, ErrNotFound)

	zones := ds.Zones()
	zones[0].Name = "mutated"
	again, err := ds.Zone("A")
	require.NoError(t, err)
	assert.Equal(t, "A", again.Name)
	assert.Equal(t, "A", ds.Zones()[0].Name)
}

func TestNewDataset_Errors(t *testing.T) {
	a := mustZone(t, "A", RiskHigh, square())

	t.Run("empty", func(t *testing.T) {
		_, err := NewDataset(nil, "v")
		require.ErrorIs(t, err, ErrInvalidDataset)
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := NewDataset([]HazardZone{a, a}, "v")
		require.ErrorIs(t, err, ErrInvalidDataset)
		assert.Contains(t, err.Error(), `duplicate zone name "A"`)
	})

	t.Run("collects every problem", func(t *testing.T) {
		broken := HazardZone{Name: "Broken", RiskLevel: RiskLow, Boundary: []GeoPoint{{0, 0}}}
		_, err := NewDataset([]HazardZone{a, a, broken}, "v")
		require.ErrorIs(t, err, ErrInvalidDataset)
		require.ErrorIs(t, err, ErrInvalidGeometry)
	})
}
