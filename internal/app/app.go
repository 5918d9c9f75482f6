package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/appdeck/internal/config"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver"
	"github.com/MrSnakeDoc/appdeck/internal/httpserver/deps"
	"github.com/MrSnakeDoc/appdeck/internal/launcher"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/scheduler"
	"github.com/MrSnakeDoc/appdeck/internal/sources/homepage"
	"github.com/MrSnakeDoc/appdeck/internal/store"
	"github.com/MrSnakeDoc/appdeck/internal/utils"
	"github.com/MrSnakeDoc/appdeck/internal/version"
)

// homepageWatchDebounce absorbs the several write events editors emit per save.
const homepageWatchDebounce = 500 * time.Millisecond

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	store       *store.Store
	redisClient *goredis.Client
	homepage    *scheduler.HomepageImporter
}

// New wires every component from the environment configuration.
func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Fail fast if the backend is unreachable
	backend, redisClient, err := OpenBackend(context.Background(), cfg, loggerClient)
	if err != nil {
		return nil, err
	}

	appStore := store.New(backend, loggerClient.Named("store"))

	var (
		importer      *scheduler.HomepageImporter
		reloadTrigger chan struct{}
	)
	source := homepage.Source{
		ServicesFile:  cfg.HomepageServicesFile,
		BookmarksFile: cfg.HomepageBookmarksFile,
	}
	if source.Enabled() {
		reloadTrigger = make(chan struct{}, 1)
		importer = scheduler.NewHomepageImporter(source, appStore, loggerClient, cfg.ImportInterval, reloadTrigger)
		if cfg.HomepageWatch {
			importer.WatchFiles(homepageWatchDebounce)
		}
	} else {
		loggerClient.Info("homepage files not configured, homepage import disabled")
	}

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedHosts:     cfg.AllowedHosts,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		Store:            appStore,
		Launcher:         launcher.New(cfg.EnableStart, loggerClient),
		ProbeTimeout:     cfg.ProbeTimeout,
		SkipTLSProbe:     cfg.SkipTLSProbe,
		SortLocale:       cfg.SortLocale,
		RedisClient:      redisClient,
		Homepage:         importer,
		ReloadTrigger:    reloadTrigger,
		ImportRateBurst:  cfg.ImportRateBurst,
		ImportRatePerMin: cfg.ImportRatePerMin,
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg.ListenPort, d),
		store:       appStore,
		redisClient: redisClient,
		homepage:    importer,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting appdeck %s on %s", version.String(), a.cfg.ListenPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Creates the document on first run
	if err := a.store.Check(ctx); err != nil {
		return fmt.Errorf("store not usable: %w", err)
	}

	if a.homepage != nil {
		a.homepage.Start(ctx)
		a.logger.Info("homepage importer started",
			logger.Duration("interval", a.cfg.ImportInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	if a.homepage != nil {
		a.homepage.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if utils.CloseLogged(a.redisClient, "redis", a.logger) {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	_ = a.logger.Sync()
	a.logger.Info("✅ appdeck stopped cleanly")
	return nil
}
