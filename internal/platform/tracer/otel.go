package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "coursecred/credential"

// OTelTracer backs Tracer with an OpenTelemetry tracer.
type OTelTracer struct {
	tracer trace.Tracer
}

type OTelOption func(*OTelTracer)

// WithOTelTracer replaces the tracer of the global provider.
func WithOTelTracer(t trace.Tracer) OTelOption {
	return func(o *OTelTracer) { o.tracer = t }
}

func NewOTel(opts ...OTelOption) *OTelTracer {
	t := &OTelTracer{tracer: otel.Tracer(instrumentationName)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewNoop returns a tracer whose spans are discarded.
func NewNoop() *OTelTracer {
	return NewOTel(WithOTelTracer(noop.NewTracerProvider().Tracer(instrumentationName)))
}

func (t *OTelTracer) Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithAttributes(keyValues(attrs)...))
	return ctx, otelSpan{span: span}
}

type otelSpan struct {
	span trace.Span
}

// End marks the span failed when err is non-nil.
func (s otelSpan) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	}
	s.span.End()
}

func (s otelSpan) SetAttributes(attrs ...Attribute) {
	s.span.SetAttributes(keyValues(attrs)...)
}

func (s otelSpan) AddEvent(name string, attrs ...Attribute) {
	s.span.AddEvent(name, trace.WithAttributes(keyValues(attrs)...))
}

// keyValues converts attributes; values of other types are recorded with
// their fmt representation.
func keyValues(attrs []Attribute) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	kvs := make([]attribute.KeyValue, len(attrs))
	for i, a := range attrs {
		key := attribute.Key(a.Key)
		switch v := a.Value.(type) {
		case string:
			kvs[i] = key.String(v)
		case bool:
			kvs[i] = key.Bool(v)
		case int64:
			kvs[i] = key.Int64(v)
		case int:
			kvs[i] = key.Int(v)
		case float64:
			kvs[i] = key.Float64(v)
		case []string:
			kvs[i] = key.StringSlice(v)
		default:
			kvs[i] = key.String(fmt.Sprint(v))
		}
	}
	return kvs
}

var (
	_ Tracer = (*OTelTracer)(nil)
	_ Span   = otelSpan{}
)
