package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/hazard-zone-service/internal/dataset"
	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExport_LoadsBackIdentically(t *testing.T) {
	ds, err := dataset.LoadEmbedded()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, export(&buf, ds.Zones()))

	back, err := dataset.Parse(buf.Bytes(), dataset.FormatGeoJSON, "export")
	require.NoError(t, err)
	assert.Equal(t, ds.Zones(), back.Zones())
	assert.Contains(t, buf.String(), `"type": "FeatureCollection"`)
}

func TestRun_WritesFileAndLogs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "zones.geojson")
	var stdout, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	require.NoError(t, run([]string{"-out", out}, &stdout, logger))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	back, err := dataset.Parse(data, dataset.FormatGeoJSON, "export")
	require.NoError(t, err)
	assert.Equal(t, 6, back.Len())
	assert.Empty(t, stdout.String())
	assert.Contains(t, logs.String(), "msg=\"dataset exported\"")
	assert.Contains(t, logs.String(), "zones=6")
}

func TestRun_StdoutKeepsLogsSeparate(t *testing.T) {
	var stdout, logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	require.NoError(t, run(nil, &stdout, logger))

	_, err := dataset.Parse(stdout.Bytes(), dataset.FormatGeoJSON, "export")
	require.NoError(t, err)
	assert.Empty(t, logs.String())
}

func TestRun_InvalidDataset(t *testing.T) {
	err := run([]string{"-dataset", "zones.csv"}, io.Discard, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.ErrorIs(t, err, domain.ErrInvalidDataset)
}
