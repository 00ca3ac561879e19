package tracer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace/noop"
)

func TestNoopTracer(t *testing.T) {
	_, span := NewNoop().Start(context.Background(), SpanGenerateLearner, String(AttrResourceID, "course-1"))
	require.NotNil(t, span)
	span.SetAttributes(Bool(AttrForced, true))
	span.AddEvent(EventTaskSubmitted, Int(AttrRemainingCount, 3))
	span.End(errors.New("boom"))
}

func TestOTelTracer(t *testing.T) {
	tr := NewOTel(WithOTelTracer(noop.NewTracerProvider().Tracer("test")))
	_, span := tr.Start(context.Background(), SpanRender, String(AttrCredentialID, "abc"))
	require.NotNil(t, span)
	span.SetAttributes(Int64(AttrLearnerID, 7))
	span.End(errors.New("render failed"))
}

func TestKeyValues(t *testing.T) {
	got := keyValues([]Attribute{
		String("s", "v"),
		Bool("b", true),
		Int("i", 3),
		Duration("d", 1500*time.Millisecond),
		{Key: "f", Value: 0.5},
		{Key: "tags", Value: []string{"a", "b"}},
		{Key: "other", Value: struct{ N int }{4}},
	})
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("s", "v"),
		attribute.Bool("b", true),
		attribute.Int64("i", 3),
		attribute.Int64("d", 1500),
		attribute.Float64("f", 0.5),
		attribute.StringSlice("tags", []string{"a", "b"}),
		attribute.String("other", "{4}"),
	}, got)
	assert.Nil(t, keyValues(nil))
}
