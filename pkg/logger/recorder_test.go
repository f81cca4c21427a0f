package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologRecorder_Record_WritesEventWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	rec := NewEventRecorder(zerolog.New(&buf).Level(zerolog.DebugLevel))

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	rec.Record(ctx, "author_listed", map[string]interface{}{"name": "Austen, Jane"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "author_listed", entry["event"])
	assert.Equal(t, "Austen, Jane", entry["name"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "debug", entry["level"])
}

func TestZerologRecorder_Record_SuppressedAboveDebug(t *testing.T) {
	var buf bytes.Buffer
	rec := NewEventRecorder(zerolog.New(&buf).Level(zerolog.InfoLevel))

	rec.Record(context.Background(), "author_listed", nil)

	assert.Empty(t, buf.String())
}

func TestNopRecorder_Record_DoesNothing(t *testing.T) {
	assert.NotPanics(t, func() {
		NopRecorder{}.Record(context.Background(), "anything", map[string]interface{}{"k": 1})
	})
}
