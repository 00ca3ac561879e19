// Package tracer is a small tracing seam. Services depend on Tracer; the
// OpenTelemetry adapter backs it, with a noop provider in tests.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer starts spans. Implementations are safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute { return Attribute{Key: key, Value: value} }

func Bool(key string, value bool) Attribute { return Attribute{Key: key, Value: value} }

func Int64(key string, value int64) Attribute { return Attribute{Key: key, Value: value} }

func Int(key string, value int) Attribute { return Attribute{Key: key, Value: int64(value)} }

// Duration records d in milliseconds.
func Duration(key string, d time.Duration) Attribute {
	return Attribute{Key: key, Value: d.Milliseconds()}
}

// Span names.
const (
	SpanGenerateConfiguration = "credential.generate_configuration"
	SpanGenerateLearner       = "credential.generate_learner"
	SpanEligibility           = "credential.eligibility"
	SpanRender                = "credential.render"
)

// Attribute keys.
const (
	AttrConfigurationID = "configuration_id"
	AttrResourceID      = "resource_id"
	AttrCredentialType  = "credential_type"
	AttrCredentialID    = "credential_id"
	AttrLearnerID       = "learner_id"
	AttrEligibleCount   = "eligible.count"
	AttrRemainingCount  = "remaining.count"
	AttrForced          = "forced"
)

// Event names.
const (
	EventLedgerFiltered = "ledger.filtered"
	EventTaskSubmitted  = "task.submitted"
)
