package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/creator-hub/internal/platform/logging"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type observerFunc func(method, route string, status int)

func (f observerFunc) ObserveHTTPRequest(method, route string, status int, _ time.Duration) {
	f(method, route, status)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		allowed     []string
		method      string
		origin      string
		preflight   bool
		wantStatus  int
		wantOrigin  string
		wantMethods bool
	}{
		{
			name:       "configured origin",
			allowed:    []string{"https://creator-hub.example.com/"},
			method:     http.MethodGet,
			origin:     "https://creator-hub.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "https://creator-hub.example.com",
		},
		{
			name:        "wildcard preflight",
			allowed:     []string{"*"},
			method:      http.MethodOptions,
			origin:      "https://creator-hub.example.com",
			preflight:   true,
			wantStatus:  http.StatusNoContent,
			wantOrigin:  "*",
			wantMethods: true,
		},
		{
			name:       "unconfigured origin passes through untagged",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodGet,
			origin:     "https://not-allowed.example.com",
			wantStatus: http.StatusOK,
		},
		{
			name:       "unconfigured preflight refused",
			allowed:    []string{"https://allowed.example.com"},
			method:     http.MethodOptions,
			origin:     "https://not-allowed.example.com",
			preflight:  true,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "options without preflight header reaches handler",
			allowed:    []string{"*"},
			method:     http.MethodOptions,
			origin:     "https://creator-hub.example.com",
			wantStatus: http.StatusOK,
			wantOrigin: "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(tt.method, "/v1/dashboard", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight {
				req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
			}
			rec := httptest.NewRecorder()
			CORS(tt.allowed, okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Fatalf("unexpected Access-Control-Allow-Origin: %q", got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Methods") != ""; got != tt.wantMethods {
				t.Fatalf("allow methods present=%v, want %v", got, tt.wantMethods)
			}
		})
	}
}

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", "/metrics", " /HEALTHZ "} {
		if shouldTraceRequest(path) {
			t.Fatalf("expected no tracing for path %q", path)
		}
	}
	for _, path := range []string{"/v1/dashboard", "/v1/campaigns", "/", "/v1/routes/resolve"} {
		if !shouldTraceRequest(path) {
			t.Fatalf("expected tracing for path %q", path)
		}
	}
}

func TestRecordRoute_NamesSpanAfterPattern(t *testing.T) {
	t.Parallel()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	mux := http.NewServeMux()
	mux.Handle("GET /v1/campaigns/{campaignID}", okHandler())

	var observed string
	observer := observerFunc(func(_, route string, _ int) { observed = route })
	handler := RequestLogging(logging.NewNop(), observer, recordRoute(mux))

	ctx, span := provider.Tracer("test").Start(t.Context(), "GET unmatched")
	req := httptest.NewRequest(http.MethodGet, "/v1/campaigns/abc", nil).WithContext(ctx)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	span.End()

	if observed != "GET /v1/campaigns/{campaignID}" {
		t.Fatalf("unexpected observed route: %q", observed)
	}
	ended := recorder.Ended()
	if len(ended) != 1 || ended[0].Name() != "GET /v1/campaigns/{campaignID}" {
		t.Fatalf("expected span renamed to route pattern, got %d spans", len(ended))
	}
}
