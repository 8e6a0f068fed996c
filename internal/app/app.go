package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/creator-hub/internal/config"
	"github.com/riskibarqy/creator-hub/internal/domain/campaign"
	"github.com/riskibarqy/creator-hub/internal/domain/profile"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/account/hostedauth"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/creator-hub/internal/infrastructure/statestore"
	"github.com/riskibarqy/creator-hub/internal/interfaces/httpapi"
	"github.com/riskibarqy/creator-hub/internal/observability"
	basecache "github.com/riskibarqy/creator-hub/internal/platform/cache"
	"github.com/riskibarqy/creator-hub/internal/platform/debounce"
	idgen "github.com/riskibarqy/creator-hub/internal/platform/id"
	"github.com/riskibarqy/creator-hub/internal/platform/logging"
	"github.com/riskibarqy/creator-hub/internal/usecase"
)

const metricsNamespace = "creatorhub"

// App is the assembled HTTP service. Close releases what NewApp opened, in
// reverse order.
type App struct {
	Server  *http.Server
	closers []func(context.Context) error
}

type repositories struct {
	profiles     profile.Repository
	tiers        profile.TierCalculator
	campaigns    campaign.Repository
	applications campaign.ApplicationRepository
}

func NewApp(ctx context.Context, cfg config.Config, logger *logging.Logger) (_ *App, err error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{}
	defer func() {
		if err != nil {
			_ = a.Close(context.Background())
		}
	}()

	ids := idgen.NewUUIDGenerator()

	var (
		serviceMetrics usecase.Metrics
		observer       httpapi.RequestObserver
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics(metricsNamespace)
		serviceMetrics = metrics
		observer = metrics
		metricsHandler = metrics.Handler()
	}

	state, err := a.openStateStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	repos, err := a.openRepositories(ctx, cfg, logger, ids)
	if err != nil {
		return nil, err
	}

	identity := hostedauth.NewClient(hostedauth.Config{
		BaseURL:           cfg.AuthBaseURL,
		APIKey:            cfg.AuthAPIKey,
		JWTSecret:         cfg.AuthJWTSecret,
		Timeout:           cfg.AuthTimeout,
		MaxRetries:        cfg.AuthMaxRetries,
		PrincipalCacheTTL: cfg.AuthPrincipalCacheTTL,
		Logger:            logger,
		CircuitBreaker:    cfg.AuthCircuit,
	})

	pool, err := ants.NewPool(cfg.AutoSaveWorkers)
	if err != nil {
		return nil, fmt.Errorf("create auto-save pool: %w", err)
	}
	autosave := debounce.New(cfg.AutoSaveDelay, pool)

	authSvc := usecase.NewAuthService(identity, state, repos.profiles, ids, logger, serviceMetrics)
	onboardingSvc := usecase.NewOnboardingService(state, repos.profiles, repos.tiers, identity, autosave, logger, serviceMetrics)
	a.closers = append(a.closers, func(ctx context.Context) error {
		onboardingSvc.Close()
		return pool.ReleaseTimeout(releaseTimeout(ctx))
	})

	handler := httpapi.NewHandler(
		authSvc,
		onboardingSvc,
		usecase.NewCampaignService(repos.campaigns, repos.profiles),
		usecase.NewApplicationService(repos.campaigns, repos.applications, repos.profiles),
		usecase.NewDashboardService(repos.campaigns, repos.profiles),
		logger,
	)
	router := httpapi.NewRouter(handler, identity, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		MetricsHandler:     metricsHandler,
		Observer:           observer,
	})

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// Close stops background work and closes stores. The HTTP server is shut
// down separately by the caller.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) openStateStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (*statestore.Store, error) {
	if !cfg.RedisEnabled {
		logger.Info("state store", "backend", "memory", "ttl", cfg.StateTTL.String())
		return statestore.NewMemory(cfg.StateTTL), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := statestore.Ping(pingCtx, client); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	logger.Info("state store", "backend", "redis", "addr", cfg.RedisAddr, "ttl", cfg.StateTTL.String())
	return statestore.NewRedis(client, cfg.RedisKeyPrefix+":", cfg.StateTTL), nil
}

func (a *App) openRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger, ids idgen.Generator) (repositories, error) {
	var repos repositories
	if cfg.UsesPostgres() {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		a.closers = append(a.closers, func(context.Context) error { return db.Close() })

		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			logger.Warn("seed campaign catalog failed", "error", err)
		}
		repos = repositories{
			profiles:     postgres.NewProfileRepository(db),
			tiers:        postgres.NewTierCalculator(db),
			campaigns:    postgres.NewCampaignRepository(db),
			applications: postgres.NewApplicationRepository(db),
		}
		logger.Info("repositories", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))
	} else {
		applications := memory.NewApplicationRepository(ids)
		repos = repositories{
			profiles:     memory.NewProfileRepository(ids),
			tiers:        memory.TierCalculator{},
			campaigns:    memory.NewCampaignRepository(memory.SeedCampaigns(), nil, applications),
			applications: applications,
		}
		logger.Info("repositories", "backend", "memory")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.profiles = cache.NewProfileRepository(repos.profiles, store)
		repos.campaigns = cache.NewCampaignRepository(repos.campaigns, store)
	}
	return repos, nil
}

func releaseTimeout(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 5 * time.Second
	}
	if remaining := time.Until(deadline); remaining > 0 {
		return remaining
	}
	return time.Millisecond
}
