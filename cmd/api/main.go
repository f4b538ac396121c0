package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/garage-service/internal/api/http"
	"github.com/spec-kit/garage-service/internal/api/http/handlers"
	"github.com/spec-kit/garage-service/internal/auth"
	"github.com/spec-kit/garage-service/internal/config"
	"github.com/spec-kit/garage-service/internal/events"
	"github.com/spec-kit/garage-service/internal/observability"
	"github.com/spec-kit/garage-service/internal/persistence"
	"github.com/spec-kit/garage-service/internal/repository"
	"github.com/spec-kit/garage-service/internal/repository/memory"
	"github.com/spec-kit/garage-service/internal/service"
	"github.com/spec-kit/garage-service/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(pg, logger)

	sessions := buildSessionManager(cfg, redis, logger)

	dispatcher := events.NewInMemoryDispatcher(logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:   repos.users,
		Sessions:   sessions,
		Dispatcher: dispatcher,
	})
	catalogService := service.NewCatalogService(repos.offerings)
	appointmentService := service.NewAppointmentService(service.AppointmentDependencies{
		AppointmentRepo: repos.appointments,
		OfferingRepo:    repos.offerings,
		UserRepo:        repos.users,
		Dispatcher:      dispatcher,
	})
	subscriptionService := service.NewSubscriptionService(service.SubscriptionDependencies{
		PlanRepo:         repos.plans,
		SubscriptionRepo: repos.subscriptions,
		Dispatcher:       dispatcher,
	})
	contactService := service.NewContactService(repos.messages, dispatcher)
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	metrics := observability.NewMetrics()
	engine := auth.NewEngine(auth.DefaultRouteTable(), logger)
	pageGuard := auth.NewPageGuard(sessions, engine, cfg.Session.CookieName, logger, metrics)
	apiMiddleware := auth.NewAPIMiddleware(authService.TokenManager(), repos.users)

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:        handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Pages:         handlers.NewPagesHandler(cfg.App.Name),
		Auth:          handlers.NewAuthHandler(authService, cfg.Session.CookieName, cfg.Session.TTL()),
		Catalog:       handlers.NewCatalogHandler(catalogService),
		Appointments:  handlers.NewAppointmentsHandler(appointmentService),
		Subscriptions: handlers.NewSubscriptionsHandler(subscriptionService),
		Contact:       handlers.NewContactHandler(contactService),
		PageGuard:     pageGuard,
		APIMiddleware: apiMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

type repositories struct {
	users         repository.UserRepository
	offerings     repository.OfferingRepository
	appointments  repository.AppointmentRepository
	plans         repository.PlanRepository
	subscriptions repository.SubscriptionRepository
	messages      repository.ContactRepository
}

// buildRepositories picks Postgres-backed repositories when a pool is
// available and falls back to the seeded in-memory set otherwise.
func buildRepositories(pg *persistence.Postgres, logger *zap.Logger) repositories {
	pool := pg.PoolHandle()
	if pool != nil {
		return repositories{
			users:         repository.NewUserRepository(pool),
			offerings:     repository.NewOfferingRepository(pool),
			appointments:  repository.NewAppointmentRepository(pool),
			plans:         repository.NewPlanRepository(pool),
			subscriptions: repository.NewSubscriptionRepository(pool),
			messages:      repository.NewContactRepository(pool),
		}
	}

	logger.Info("using in-memory repositories with demo seed data")
	seed := memory.DefaultSeed()
	return repositories{
		users:         memory.NewUserRepository(seed.Users),
		offerings:     memory.NewOfferingRepository(seed.Offerings),
		appointments:  memory.NewAppointmentRepository(nil),
		plans:         memory.NewPlanRepository(seed.Plans),
		subscriptions: memory.NewSubscriptionRepository(nil),
		messages:      memory.NewContactRepository(),
	}
}

func buildSessionManager(cfg *config.Config, redis *persistence.Redis, logger *zap.Logger) auth.SessionManager {
	if cfg.Session.UseStore {
		logger.Info("using redis-backed session store")
		return auth.NewStoreSessions(redis.Client, cfg.Session.TTL(), cfg.Session.LookupTimeout(), logger)
	}
	return auth.NewCookieSessions()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
