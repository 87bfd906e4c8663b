package otel

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newRecordingOtel() (Otel, *tracetest.SpanRecorder) {
	recorder := tracetest.NewSpanRecorder()

	return &otelImpl{tracerProvider: trace.NewTracerProvider(trace.WithSpanProcessor(recorder))}, recorder
}

func TestScope_RecordsAttributesAndErrors(t *testing.T) {
	ot, recorder := newRecordingOtel()

	_, scope := ot.NewScope(context.Background(), "service", "service.GetMonthly")
	scope.SetAttributes(map[string]any{
		"revenue.month": 3,
		"revenue.year":  int64(2024),
		"cache.hit":     false,
		"window.start":  time.Date(2024, 3, 1, 0, 0, 0, 0, time.FixedZone("BRT", -3*60*60)),
	})
	scope.TraceIfError(nil)
	scope.TraceIfError(errors.New("failed to get reservations for revenue"))
	scope.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)

	span := spans[0]
	assert.Equal(t, "service.GetMonthly", span.Name())
	assert.Equal(t, codes.Error, span.Status().Code)
	assert.Equal(t, "failed to get reservations for revenue", span.Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), attrs["revenue.month"].AsInt64())
	assert.Equal(t, int64(2024), attrs["revenue.year"].AsInt64())
	assert.False(t, attrs["cache.hit"].AsBool())
	assert.Equal(t, "2024-03-01T03:00:00Z", attrs["window.start"].AsString())
}

func TestOtel_Shutdown(t *testing.T) {
	ot, _ := newRecordingOtel()

	assert.NoError(t, ot.Shutdown(context.Background()))
}
