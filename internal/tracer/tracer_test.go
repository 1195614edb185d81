package tracer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDetectOperation(t *testing.T) {
	tests := []struct {
		sql  string
		want string
	}{
		{"SELECT * FROM t", "SELECT"},
		{"  select 1", "SELECT"},
		{"INSERT INTO t (a) VALUES (?)", "INSERT"},
		{"UPDATE t SET a = ?", "UPDATE"},
		{"DELETE FROM t", "DELETE"},
		{"WITH x AS (SELECT 1) SELECT * FROM x", "SELECT"},
		{"WITH x AS (SELECT 1) UPDATE t SET a = ?", "UPDATE"},
		{"WITH x AS (SELECT 1), y AS (SELECT 2) DELETE FROM t", "DELETE"},
		{"EXPLAIN SELECT 1", "UNKNOWN"},
		{"", "UNKNOWN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectOperation(tt.sql), tt.sql)
	}
}

func TestNoopTracer(t *testing.T) {
	tr := &NoopTracer{}
	ctx, span := tr.StartSpan(context.Background(), "x")
	assert.Equal(t, context.Background(), ctx)

	// All span operations are safe no-ops.
	span.SetAttributes(attribute.String("k", "v"))
	span.RecordError(errors.New("e"))
	span.SetStatus(codes.Error, "e")
	span.End()
}

func newRecordingTracer() (*OtelTracer, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	return NewOtelTracer(provider.Tracer("test")), recorder
}

func TestOtelTracerRecordsQueryAttributes(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "querykit.execute")
	AddQueryAttributes(span, &QueryMetadata{
		SQL:          "UPDATE t SET a = ?",
		Duration:     5 * time.Millisecond,
		RowsAffected: 3,
		Database:     "sqlite3",
		Operation:    DetectOperation("UPDATE t SET a = ?"),
	})
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	attrs := make(map[attribute.Key]attribute.Value)
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "sqlite3", attrs["db.system"].AsString())
	assert.Equal(t, "UPDATE t SET a = ?", attrs["db.statement"].AsString())
	assert.Equal(t, "UPDATE", attrs["db.operation"].AsString())
	assert.Equal(t, int64(3), attrs["db.rows_affected"].AsInt64())
	assert.Equal(t, codes.Ok, spans[0].Status().Code)
}

func TestOtelTracerRecordsError(t *testing.T) {
	tr, recorder := newRecordingTracer()

	_, span := tr.StartSpan(context.Background(), "querykit.execute")
	boom := errors.New("syntax error")
	AddQueryAttributes(span, &QueryMetadata{
		SQL:       "SELEC 1",
		Error:     boom,
		Database:  "sqlite3",
		Operation: "UNKNOWN",
	})
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "syntax error", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
}
