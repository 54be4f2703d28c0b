package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jloaiza/melisearch/internal/badges"
	"github.com/jloaiza/melisearch/internal/catalog"
	"github.com/jloaiza/melisearch/internal/config"
	"github.com/jloaiza/melisearch/internal/httpserver"
	"github.com/jloaiza/melisearch/internal/httpserver/deps"
	"github.com/jloaiza/melisearch/internal/logger"
	"github.com/jloaiza/melisearch/internal/redis"
	"github.com/jloaiza/melisearch/internal/scheduler"
	"github.com/jloaiza/melisearch/internal/search"
	redisstore "github.com/jloaiza/melisearch/internal/store/redis"
	"github.com/jloaiza/melisearch/internal/version"
)

type App struct {
	cfg           *config.Config
	logger        logger.Logger
	server        *httpserver.Server
	redisClient   *goredis.Client
	orchestrator  *search.Orchestrator
	badgeReloader *scheduler.BadgeReloader
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// Stores (one logical store per process, injected into the orchestrator)
	historyStore := redisstore.NewHistoryStore(redisClient, cfg.HistoryLimit)
	favoritesStore := redisstore.NewFavoritesStore(redisClient)

	// Badge rules (optional)
	ruleSet := badges.NewRuleSet()
	var badgeReloader *scheduler.BadgeReloader
	var badgeReloadTrigger chan struct{}
	if cfg.BadgeFile != "" {
		loggerClient.Info("badge rules file configured, initializing reloader",
			logger.String("file", cfg.BadgeFile))
		badgeReloadTrigger = make(chan struct{}, 1)
		badgeReloader = scheduler.NewBadgeReloader(
			cfg.BadgeFile,
			ruleSet,
			loggerClient,
			cfg.BadgeReloadInterval,
			badgeReloadTrigger,
		)
	} else {
		loggerClient.Info("badge rules file not configured, badges disabled")
	}

	// Catalog client with the fixed credential
	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL: cfg.CatalogBaseURL,
		SiteID:  cfg.SiteID,
		Timeout: cfg.CatalogTimeout,
		Tokens:  catalog.StaticToken(cfg.AccessToken),
	}, loggerClient)

	orchestrator := search.NewOrchestrator(
		catalogClient,
		historyStore,
		favoritesStore,
		ruleSet,
		loggerClient,
	)

	// Warm the history cache; a cold cache is not fatal.
	if err := orchestrator.LoadHistory(context.Background()); err != nil {
		loggerClient.Warn("failed to warm search history cache",
			logger.Error(err))
	}

	d := deps.Deps{
		Logger:             loggerClient,
		StartTime:          time.Now(),
		Version:            version.Version,
		Commit:             version.Commit,
		BuildDate:          version.BuildDate,
		GoVersion:          version.GoVersion,
		TimeNow:            time.Now,
		RedisClient:        redisClient,
		Orchestrator:       orchestrator,
		BadgeReloadTrigger: badgeReloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:           cfg,
		logger:        loggerClient,
		server:        server,
		redisClient:   redisClient,
		orchestrator:  orchestrator,
		badgeReloader: badgeReloader,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting melisearch v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("melisearch %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start badge reloader (if enabled)
	if a.badgeReloader != nil {
		if err := a.badgeReloader.Start(ctx); err != nil {
			return fmt.Errorf("failed to start badge reloader: %w", err)
		}
		a.logger.Info("badge reloader started",
			logger.Duration("interval", a.cfg.BadgeReloadInterval))
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

	if a.badgeReloader != nil {
		a.badgeReloader.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ melisearch stopped cleanly")
	return nil
}
