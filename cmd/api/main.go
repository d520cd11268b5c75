package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/directory-admin/internal/api/http"
	"github.com/spec-kit/directory-admin/internal/api/http/handlers"
	"github.com/spec-kit/directory-admin/internal/auth"
	"github.com/spec-kit/directory-admin/internal/config"
	"github.com/spec-kit/directory-admin/internal/events"
	"github.com/spec-kit/directory-admin/internal/observability"
	"github.com/spec-kit/directory-admin/internal/persistence"
	"github.com/spec-kit/directory-admin/internal/repository"
	"github.com/spec-kit/directory-admin/internal/service"
	"github.com/spec-kit/directory-admin/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	checks := map[string]handlers.DependencyCheck{}

	directory, closeDirectory := openDirectory(ctx, cfg, logger, checks)
	defer closeDirectory()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	if cfg.Audit.Enabled {
		checks["redis"] = redis.Ping
	}

	dispatcher := events.NewInMemoryDispatcher()
	auditService := service.NewAuditService(dispatcher, redis, logger, cfg.Audit)
	worker.StartAuditWorker(auditService)

	deps := service.AdminDependencies{
		Directory:  directory,
		Dispatcher: dispatcher,
		Hasher:     auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		Logger:     logger,
	}
	moderationService := service.NewModerationService(deps)
	verificationService := service.NewVerificationService(deps)
	profileService := service.NewProfileMergeService(deps)
	statsService := service.NewDirectoryStatsService(deps)

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	authMiddleware := auth.NewAuthMiddleware(tokens)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks),
		Users:          handlers.NewAdminUsersHandler(moderationService, profileService, statsService),
		Verifications:  handlers.NewVerificationHandler(verificationService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openDirectory builds the configured user directory backend and registers its
// readiness check.
func openDirectory(ctx context.Context, cfg *config.Config, logger *zap.Logger, checks map[string]handlers.DependencyCheck) (repository.UserDirectory, func()) {
	switch cfg.Directory.Driver {
	case config.DriverSQLite:
		db, err := persistence.OpenSQLite(cfg.Directory.SQLitePath, logger)
		if err != nil {
			logger.Fatal("failed to open sqlite", zap.Error(err))
		}
		directory := repository.NewSQLiteUserDirectory(db.DB)
		if err := directory.Init(ctx); err != nil {
			logger.Fatal("failed to init sqlite schema", zap.Error(err))
		}
		checks["sqlite"] = db.Ping
		return directory, db.Close
	case config.DriverMemory:
		logger.Warn("using in-memory user directory; data is lost on restart")
		return repository.NewMemoryUserDirectory(), func() {}
	default:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		checks["postgres"] = pg.Ping
		return repository.NewPostgresUserDirectory(pg.PoolHandle()), pg.Close
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
