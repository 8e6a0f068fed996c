package httpapi

import (
	"context"

	"github.com/riskibarqy/creator-hub/internal/platform/tracing"
	"go.opentelemetry.io/otel/trace"
)

// Only handler spans are kept; middleware and helpers stay inside them.
var apiTracer = tracing.New("creator-hub/internal/interfaces/httpapi", tracing.WithNamePrefix("httpapi.Handler."))

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return apiTracer.Start(ctx, name)
}
