package observability

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/riskibarqy/creator-hub/internal/config"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
)

func TestStartTelemetry_AllDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		ServiceName:    "creator-hub-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
		UptraceEnabled: true,
	}

	telemetry, err := StartTelemetry(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if telemetry.PprofAddr() != "" {
		t.Fatalf("expected no pprof listener, got %q", telemetry.PprofAddr())
	}
	if err := telemetry.Shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStartTelemetry_Pprof(t *testing.T) {
	t.Parallel()

	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}
	telemetry, err := StartTelemetry(t.Context(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}

	resp, err := http.Get("http://" + telemetry.PprofAddr() + "/debug/pprof/")
	if err != nil {
		t.Fatalf("get pprof index: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected pprof index 200, got %d", resp.StatusCode)
	}

	if err := telemetry.Shutdown(t.Context()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if _, err := http.Get("http://" + telemetry.PprofAddr() + "/debug/pprof/"); err == nil {
		t.Fatalf("expected pprof listener to be closed")
	}
}

func TestStartTelemetry_PprofAddrInUse(t *testing.T) {
	t.Parallel()

	first, err := StartTelemetry(t.Context(), config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	if err != nil {
		t.Fatalf("start first: %v", err)
	}
	t.Cleanup(func() { _ = first.Shutdown(context.Background()) })

	_, err = StartTelemetry(t.Context(), config.Config{PprofEnabled: true, PprofAddr: first.PprofAddr()}, logging.NewNop())
	if err == nil {
		t.Fatalf("expected error when pprof address is taken")
	}
}
