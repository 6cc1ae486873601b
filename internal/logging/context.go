package logging

import (
	"context"
	"os"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// EnvTraceID lets callers pin the trace id, e.g. when a wrapper script
// correlates several invocations.
const EnvTraceID = "ALBEDO_TRACE_ID"

type traceIDKey struct{}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// ContextWithTraceID stores a trace id in ctx.
func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext returns the trace id stored in ctx, if any.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

// GetOrGenerateTraceID returns the id already in ctx, then $ALBEDO_TRACE_ID,
// then a fresh ULID.
func GetOrGenerateTraceID(ctx context.Context) string {
	if id := TraceIDFromContext(ctx); id != "" {
		return id
	}
	if id := os.Getenv(EnvTraceID); id != "" {
		return id
	}
	return NewID()
}

// NewID returns a new ULID string.
func NewID() string {
	return ulid.Make().String()
}

// TraceHook adds trace_id to events logged with .Ctx(ctx).
type TraceHook struct{}

// Run implements zerolog.Hook.
func (TraceHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	if id := TraceIDFromContext(e.GetCtx()); id != "" {
		e.Str("trace_id", id)
	}
}
