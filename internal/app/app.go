package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/lineup-studio/external/vpg"
	"github.com/riskibarqy/lineup-studio/internal/config"
	"github.com/riskibarqy/lineup-studio/internal/domain/formation"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/session"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/cookie"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/memory"
	"github.com/riskibarqy/lineup-studio/internal/infrastructure/storage/postgres"
	"github.com/riskibarqy/lineup-studio/internal/interfaces/httpapi"
	"github.com/riskibarqy/lineup-studio/internal/platform/cache"
	"github.com/riskibarqy/lineup-studio/internal/platform/logging"
	"github.com/riskibarqy/lineup-studio/internal/platform/resilience"
	"github.com/riskibarqy/lineup-studio/internal/render"
	"github.com/riskibarqy/lineup-studio/internal/usecase"
	"github.com/sourcegraph/conc"
)

const janitorInterval = time.Minute

// App is the assembled API service plus the background loops it owns.
type App struct {
	Server *http.Server

	cfg      config.Config
	logger   *logging.Logger
	db       *sqlx.DB
	sessions *session.Store
	cache    *cache.Store
	drafts   *postgres.DraftStore
	workers  conc.WaitGroup
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{
		cfg:      cfg,
		logger:   logger,
		sessions: session.NewStore(cfg.SessionTTL),
	}

	cookieOpts := cookie.DefaultOptions()
	cookieOpts.Secure = cfg.CookieSecure

	drafts, err := a.draftStorage(cookieOpts)
	if err != nil {
		return nil, err
	}

	catalog := formation.Builtin()
	surface := render.NewHTMLSurface(nil)
	handler := httpapi.NewHandler(httpapi.HandlerConfig{
		Catalog:        catalog,
		Composer:       render.NewComposer(catalog, render.Size{Width: cfg.ExportWidth, Height: cfg.ExportHeight}),
		Rasterizer:     a.rasterizer(surface),
		Surface:        surface,
		Drafts:         drafts,
		Sessions:       a.sessions,
		LeagueService:  a.leagueService(),
		MaxUploadBytes: int64(cfg.MaxUploadBytes),
		Logger:         logger,
	})

	var routerOpts []httpapi.RouterOption
	if cfg.UptraceEnabled && cfg.UptraceCaptureRequestBody {
		routerOpts = append(routerOpts, httpapi.WithTracedRequestBodies(cfg.UptraceRequestBodyMaxBytes))
	}
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cookieOpts, routerOpts...)

	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

func (a *App) draftStorage(cookieOpts cookie.Options) (httpapi.DraftStorage, error) {
	switch a.cfg.DraftStorage {
	case config.DraftStoragePostgres:
		db, err := openDraftDB(a.cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
		a.drafts = postgres.NewDraftStore(db)
		a.logger.Info("draft storage configured", "backend", config.DraftStoragePostgres, "db", redactDBURL(a.cfg.DBURL))
		return httpapi.ServerDrafts{Store: a.drafts}, nil
	case config.DraftStorageMemory:
		a.logger.Info("draft storage configured", "backend", config.DraftStorageMemory)
		return httpapi.ServerDrafts{Store: memory.NewDraftStore()}, nil
	default:
		a.logger.Info("draft storage configured", "backend", config.DraftStorageCookie, "secure", cookieOpts.Secure)
		return httpapi.CookieDrafts{Options: cookieOpts}, nil
	}
}

func (a *App) rasterizer(surface *render.HTMLSurface) render.Rasterizer {
	if a.cfg.Rasterizer == config.RasterizerChrome {
		a.logger.Info("rasterizer configured", "backend", config.RasterizerChrome, "remote", a.cfg.ChromeRemoteURL != "")
		return render.NewChromeRasterizer(surface, render.ChromeConfig{
			RemoteURL:   a.cfg.ChromeRemoteURL,
			Timeout:     a.cfg.ChromeTimeout,
			DeviceScale: a.cfg.ChromeDeviceScale,
			Logger:      a.logger,
		})
	}
	a.logger.Info("rasterizer configured", "backend", config.RasterizerNative)
	return render.NewPNGRasterizer(nil)
}

func (a *App) leagueService() *usecase.LeagueService {
	if !a.cfg.VPGEnabled {
		a.logger.Info("league browsing disabled", "reason", "VPG_ENABLED=false")
		return nil
	}
	if a.cfg.CacheEnabled {
		a.cache = cache.NewStore(a.cfg.CacheTTL)
	}

	client := vpg.NewClient(vpg.ClientConfig{
		BaseURL:      a.cfg.VPGBaseURL,
		Token:        a.cfg.VPGToken,
		Timeout:      a.cfg.VPGTimeout,
		MaxRetries:   a.cfg.VPGMaxRetries,
		RetryBackoff: a.cfg.VPGRetryBackoff,
		Logger:       a.logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          a.cfg.VPGCircuitEnabled,
			FailureThreshold: a.cfg.VPGCircuitFailureCount,
			OpenTimeout:      a.cfg.VPGCircuitOpenTimeout,
			HalfOpenMaxReq:   a.cfg.VPGCircuitHalfOpenMaxReq,
		},
	})
	return usecase.NewLeagueService(client, usecase.LeagueServiceConfig{
		Cache:           a.cache,
		ImageBaseURL:    a.cfg.VPGImageBaseURL,
		ChampionWorkers: a.cfg.ChampionWorkers,
		Location:        a.cfg.MatchTimezone,
		Logger:          a.logger,
	})
}

// StartBackground runs the session and cache janitors and, for postgres drafts,
// the expired draft purge until ctx is done.
func (a *App) StartBackground(ctx context.Context) {
	a.workers.Go(func() { a.sessions.RunJanitor(ctx, janitorInterval) })
	if a.cache != nil {
		a.workers.Go(func() { a.cache.RunJanitor(ctx, janitorInterval) })
	}
	if a.drafts != nil {
		a.workers.Go(func() { a.purgeDrafts(ctx) })
	}
}

func (a *App) purgeDrafts(ctx context.Context) {
	if a.cfg.DraftPurgeEvery <= 0 {
		return
	}
	ticker := time.NewTicker(a.cfg.DraftPurgeEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := a.drafts.PurgeExpired(ctx)
			if err != nil {
				a.logger.WarnContext(ctx, "purge expired drafts failed", "error", err)
				continue
			}
			if removed > 0 {
				a.logger.InfoContext(ctx, "purged expired drafts", "rows", removed)
			}
		}
	}
}

// Close waits for the background loops, whose context the caller cancels
// first, and releases the database.
func (a *App) Close() error {
	a.workers.Wait()
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
