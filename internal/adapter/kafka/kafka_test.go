package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/hazard-zone-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockWriter struct {
	written []kafkago.Message
	err     error
	closed  bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if m.err != nil {
		return m.err
	}
	m.written = append(m.written, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func testEvent() domain.MatchEvent {
	return domain.MatchEvent{
		Point:          domain.GeoPoint{Lat: 17.592, Lon: 120.69},
		Zones:          []string{"Bangued Central Flood Zone", "Calaba Liquefaction Zone"},
		HighestRisk:    domain.RiskHigh,
		DatasetVersion: "embedded",
		QueriedAt:      time.Date(2025, 8, 2, 9, 15, 0, 0, time.UTC),
	}
}

func TestSerializeToMessage(t *testing.T) {
	event := testEvent()

	msg, err := serializeToMessage(event)
	require.NoError(t, err)

	assert.Equal(t, []byte("Bangued Central Flood Zone"), msg.Key)
	assert.Equal(t, event.QueriedAt, msg.Time)
	assert.JSONEq(t, `{
		"point": {"lat": 17.592, "lon": 120.69},
		"zones": ["Bangued Central Flood Zone", "Calaba Liquefaction Zone"],
		"highest_risk": "high",
		"dataset_version": "embedded",
		"queried_at": "2025-08-02T09:15:00Z"
	}`, string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "risk_level", msg.Headers[0].Key)
	assert.Equal(t, []byte("high"), msg.Headers[0].Value)
	assert.Equal(t, "queried_at", msg.Headers[1].Key)
	assert.Equal(t, []byte("2025-08-02T09:15:00Z"), msg.Headers[1].Value)
}

func TestSerializeToMessage_NoZones(t *testing.T) {
	event := testEvent()
	event.Zones = nil

	_, err := serializeToMessage(event)
	require.Error(t, err)
}

func TestPublisher_PublishMatch(t *testing.T) {
	w := &mockWriter{}
	p := &Publisher{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	require.NoError(t, p.PublishMatch(context.Background(), testEvent()))
	require.Len(t, w.written, 1)
	assert.Equal(t, []byte("Bangued Central Flood Zone"), w.written[0].Key)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublisher_PublishMatch_WriterError(t *testing.T) {
	w := &mockWriter{err: errors.New("broker down")}
	p := &Publisher{writer: w, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	err := p.PublishMatch(context.Background(), testEvent())
	require.EqualError(t, err, "broker down")
}
