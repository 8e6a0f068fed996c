package observability

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"runtime"
	"strings"
	"time"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/creator-hub/internal/config"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
	"github.com/uptrace/uptrace-go/uptrace"
)

const (
	mutexProfileFraction = 5
	blockProfileRate     = 5
)

type stopper struct {
	name string
	stop func(context.Context) error
}

// Telemetry owns the process-wide exporters: Uptrace tracing, Pyroscope
// profiling and the pprof debug listener. Each one is optional.
type Telemetry struct {
	logger    *logging.Logger
	stoppers  []stopper
	pprofAddr string
}

// StartTelemetry starts every enabled exporter. When one fails the ones
// already running are stopped before the error is returned.
func StartTelemetry(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger.Named("telemetry")}

	steps := []func(config.Config) error{t.startTracing, t.startProfiling, t.startPprof}
	for _, step := range steps {
		if err := step(cfg); err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
	}
	return t, nil
}

// PprofAddr is the bound debug listener address, or "" when pprof is off.
func (t *Telemetry) PprofAddr() string {
	return t.pprofAddr
}

// Shutdown stops exporters in reverse start order.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(t.stoppers) - 1; i >= 0; i-- {
		s := t.stoppers[i]
		if err := s.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.name, err))
			continue
		}
		t.logger.Info("telemetry stopped", "exporter", s.name)
	}
	t.stoppers = nil
	return errors.Join(errs...)
}

func (t *Telemetry) startTracing(cfg config.Config) error {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		t.logger.Info("uptrace disabled", "enabled", cfg.UptraceEnabled)
		return nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)
	t.stoppers = append(t.stoppers, stopper{name: "uptrace", stop: uptrace.Shutdown})
	t.logger.Info("uptrace enabled", "service_name", cfg.ServiceName, "logs", cfg.UptraceLogsEnabled)
	return nil
}

func (t *Telemetry) startProfiling(cfg config.Config) error {
	if !cfg.PyroscopeEnabled {
		t.logger.Info("pyroscope disabled")
		return nil
	}

	prevMutex := runtime.SetMutexProfileFraction(mutexProfileFraction)
	runtime.SetBlockProfileRate(blockProfileRate)

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileGoroutines,
			pyroscope.ProfileMutexDuration,
			pyroscope.ProfileBlockDuration,
		},
	})
	if err != nil {
		runtime.SetMutexProfileFraction(prevMutex)
		runtime.SetBlockProfileRate(0)
		return fmt.Errorf("start pyroscope: %w", err)
	}

	t.stoppers = append(t.stoppers, stopper{name: "pyroscope", stop: func(context.Context) error {
		err := profiler.Stop()
		runtime.SetMutexProfileFraction(prevMutex)
		runtime.SetBlockProfileRate(0)
		return err
	}})
	t.logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return nil
}

func (t *Telemetry) startPprof(cfg config.Config) error {
	if !cfg.PprofEnabled {
		t.logger.Info("pprof disabled")
		return nil
	}

	listener, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return fmt.Errorf("listen pprof %s: %w", cfg.PprofAddr, err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.logger.Error("pprof server failed", "error", err)
		}
	}()

	t.pprofAddr = listener.Addr().String()
	t.stoppers = append(t.stoppers, stopper{name: "pprof", stop: srv.Shutdown})
	t.logger.Info("pprof server started", "addr", t.pprofAddr)
	return nil
}
