// Package tracing starts child spans for the service layers. Spans are only
// created under a valid parent, so requests filtered out by the HTTP tracing
// middleware (health checks, metrics scrapes) never produce orphan roots.
package tracing

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var noopSpan = noop.Span{}

type Tracer struct {
	tracer   trace.Tracer
	prefixes []string
}

type Option func(*options)

type options struct {
	provider trace.TracerProvider
	prefixes []string
}

// WithProvider overrides the global tracer provider.
func WithProvider(provider trace.TracerProvider) Option {
	return func(o *options) { o.provider = provider }
}

// WithNamePrefix limits spans to names starting with one of the prefixes.
func WithNamePrefix(prefixes ...string) Option {
	return func(o *options) { o.prefixes = append(o.prefixes, prefixes...) }
}

func New(instrumentation string, opts ...Option) *Tracer {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	t := &Tracer{prefixes: o.prefixes}
	if o.provider != nil {
		t.tracer = o.provider.Tracer(instrumentation)
	} else {
		t.tracer = otel.Tracer(instrumentation)
	}
	return t
}

func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if !t.enabled(ctx, name) {
		return ctx, noopSpan
	}
	return t.tracer.Start(ctx, name, opts...)
}

func (t *Tracer) enabled(ctx context.Context, name string) bool {
	if strings.TrimSpace(name) == "" {
		return false
	}
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return false
	}
	if len(t.prefixes) == 0 {
		return true
	}
	for _, prefix := range t.prefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
