package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fgc/catalog/api/handler"
	"github.com/fgc/catalog/internal/config"
	"github.com/fgc/catalog/internal/infrastructure/monitor"
	"github.com/fgc/catalog/internal/infrastructure/outbox"
	pgInfra "github.com/fgc/catalog/internal/infrastructure/postgres"
	redisInfra "github.com/fgc/catalog/internal/infrastructure/redis"
	"github.com/fgc/catalog/internal/middleware"
	"github.com/fgc/catalog/internal/router"
	"github.com/fgc/catalog/internal/services"
	"github.com/fgc/catalog/internal/services/lifecycle"
	"github.com/fgc/catalog/pkg/httpcontext"
	"github.com/fgc/catalog/pkg/logger"
	"github.com/fgc/catalog/repository/postgres"
	redisRepo "github.com/fgc/catalog/repository/redis"
	catalogUC "github.com/fgc/catalog/usecase/catalog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	outboxStore, err := outbox.Open(cfg.Outbox.Path, "outbox")
	if err != nil {
		zapLogger.Fatal("failed to open outbox store", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return outboxStore.Close()
	})

	mon := monitor.New(pool, redisClient, outboxStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	gameRepo := postgres.NewGameRepository(pool)
	rankingCache := redisRepo.NewRankingCache(redisClient, cfg.Cache.RankingTTL)

	publisher := redisInfra.NewEventPublisher(redisClient, cfg.Outbox.Channel)
	relay := services.NewOutboxRelay(
		outboxStore,
		mon,
		publisher,
		zapLogger,
		services.RelayConfig{
			Interval:   cfg.Outbox.SyncInterval,
			BatchSize:  cfg.Outbox.BatchSize,
			MaxRetries: cfg.Outbox.MaxRetry,
			Retention:  time.Duration(cfg.Outbox.RetentionHours) * time.Hour,
		},
	)
	relay.Start()
	manager.Register("outbox_relay", func(ctx context.Context) error {
		relay.Stop(ctx)
		return nil
	})

	outboxBridge := services.NewOutboxBridge(outboxStore)
	catalogUseCase := catalogUC.New(gameRepo, outboxBridge, rankingCache, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Game:   apiHandler.NewGameHandler(catalogUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	adminMiddleware := middleware.AdminOnly(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, adminMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
