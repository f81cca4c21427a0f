package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// EventRecorder receives diagnostic events from request handling. Recording
// has no error path: a recorder must never change the outcome of a request.
type EventRecorder interface {
	Record(ctx context.Context, event string, fields map[string]interface{})
}

// ZerologRecorder writes events as debug-level zerolog entries.
type ZerologRecorder struct {
	logger zerolog.Logger
}

func NewEventRecorder(l zerolog.Logger) *ZerologRecorder {
	return &ZerologRecorder{logger: l}
}

func (r *ZerologRecorder) Record(ctx context.Context, event string, fields map[string]interface{}) {
	e := r.logger.Debug().Str("event", event).Fields(fields)
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		e = e.Str("request_id", id)
	}
	e.Msg("[EVENT] " + event)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, string, map[string]interface{}) {}

type ctxKey string

// RequestIDKey is the context key under which the request id middleware
// stores the current request id.
const RequestIDKey ctxKey = "request_id"
