package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/cityworks/complaint-service/internal/api/http"
	"github.com/cityworks/complaint-service/internal/api/http/handlers"
	"github.com/cityworks/complaint-service/internal/auth"
	"github.com/cityworks/complaint-service/internal/config"
	"github.com/cityworks/complaint-service/internal/events"
	"github.com/cityworks/complaint-service/internal/observability"
	"github.com/cityworks/complaint-service/internal/persistence"
	"github.com/cityworks/complaint-service/internal/repository"
	"github.com/cityworks/complaint-service/internal/seed"
	"github.com/cityworks/complaint-service/internal/service"
	"github.com/cityworks/complaint-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	seedUsers := seed.Users()
	seedComplaints := seed.Complaints()
	floor := seed.MaxComplaintSequence(seedComplaints)

	var (
		userRepo      repository.UserRepository
		complaintRepo repository.ComplaintRepository
	)
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool := pg.PoolHandle()
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pool, cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		if err := persistence.SeedPostgres(ctx, pool, seedUsers, seedComplaints, floor, logger); err != nil {
			logger.Fatal("failed to seed postgres", zap.Error(err))
		}
		userRepo = repository.NewUserRepository(pool)
		complaintRepo = repository.NewComplaintRepository(pool)
	default:
		userRepo = repository.NewMemoryUserRepository(seedUsers)
		complaintRepo = repository.NewMemoryComplaintRepository(seedComplaints)
	}

	var ids service.IDGenerator
	switch cfg.Store.SequenceBackend {
	case config.BackendRedis:
		ids = repository.NewRedisSequence(redis.Client, cfg.Store.SequenceKey, floor)
	case config.BackendPostgres:
		ids = repository.NewPostgresSequence(pg.PoolHandle())
	default:
		ids = repository.NewMemorySequence(floor)
	}

	revocations := auth.NewMemoryRevocationList()
	if redis.Enabled() {
		revocations = auth.NewRedisRevocationList(redis.Client)
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    userRepo,
		Revocations: revocations,
		Logger:      logger,
	})
	complaintService := service.NewComplaintService(service.ComplaintDependencies{
		ComplaintRepo: complaintRepo,
		IDs:           ids,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	leaderboardService := service.NewLeaderboardService(userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, revocations, logger)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}, metrics),
		Session:        handlers.NewSessionHandler(authService),
		Complaints:     handlers.NewComplaintsHandler(complaintService),
		Leaderboard:    handlers.NewLeaderboardHandler(leaderboardService),
		AuthMiddleware: authMiddleware,
	})

	logger.Info("starting complaint service",
		zap.String("addr", cfg.App.Addr()),
		zap.String("store_backend", cfg.Store.Backend),
		zap.String("sequence_backend", cfg.Store.SequenceBackend))

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
