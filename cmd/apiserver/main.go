// API server entry point for the jurisacompanha backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/alerting"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/consultas"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/processos"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/config"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres/repositories"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/redis"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/external/datajud"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/messaging/kafka"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/MP-oliveira/jurisacompanha-backend/internal/interfaces/http"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/interfaces/http/handlers"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting jurisacompanha API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port))

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Infrastructure ────────────────────────────────────────────────────────
	conn, err := postgres.NewConnection(postgres.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Database:        cfg.Database.DBName,
		Username:        cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxConns,
		MaxIdleConns:    cfg.Database.MinConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	redisClient, err := redis.NewClient(&redis.RedisConfig{
		Mode:         "standalone",
		Addr:         cfg.Redis.Addr,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	cache := redis.NewRedisCache(redisClient, logger)
	locker := redis.NewSweepLocker(redisClient, logger)

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:    cfg.Kafka.Brokers,
		MaxRetries: cfg.Kafka.ProducerRetries,
		BatchSize:  cfg.Kafka.BatchSize,
	}, logger)
	if err != nil {
		return err
	}
	defer producer.Close()
	publisher := kafka.NewEventPublisher(producer, "apiserver", logger)

	if cfg.Kafka.AutoCreateTopics {
		topicManager, tmErr := kafka.NewTopicManager(cfg.Kafka.Brokers, logger)
		if tmErr != nil {
			logger.Warn("topic manager unavailable", logging.Err(tmErr))
		} else {
			if err := topicManager.EnsureDefaultTopics(ctx); err != nil {
				logger.Warn("could not ensure default topics", logging.Err(err))
			}
			topicManager.Close()
		}
	}

	djClient := datajud.NewClient(datajud.Config{
		BaseURL: cfg.DataJud.BaseURL,
		APIKey:  cfg.DataJud.APIKey,
		Timeout: cfg.DataJud.Timeout,
	}, logger)

	// ── Repositories ──────────────────────────────────────────────────────────
	processoRepo := repositories.NewProcessoRepository(conn, logger)
	alertaRepo := repositories.NewAlertaRepository(conn, logger)
	eventRepo := repositories.NewIngestionEventRepository(conn, logger)
	userRepo := repositories.NewUserRepository(conn, logger)

	// ── Application services ──────────────────────────────────────────────────
	alertSvc := alerting.NewService(alertaRepo, publisher, logger)
	interpreter := ingestion.NewInterpreter(ingestion.DefaultRules()...)
	reconciler := ingestion.NewReconciler(processoRepo, eventRepo, alertSvc, interpreter, publisher, logger)
	ingestSvc := ingestion.NewService(userRepo, reconciler, logger)
	processoSvc := processos.NewService(processoRepo, eventRepo, logger)
	consultaSvc := consultas.NewService(djClient, cache, logger)

	scheduler := alerting.NewScheduler(processoRepo, alertSvc, locker, logger, alerting.SchedulerOptions{
		HourlyInterval: cfg.Scheduler.HourlyInterval,
		DailyHour:      cfg.Scheduler.DailyHour,
		Horizon:        cfg.Scheduler.Horizon,
		LockTTL:        cfg.Scheduler.LockTTL,
	})
	if cfg.Scheduler.Enabled {
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "juris",
		Subsystem: "api",
	}, logger)
	if err != nil {
		return err
	}
	appMetrics := prometheus.NewAppMetrics(collector)

	// ── HTTP surface ──────────────────────────────────────────────────────────
	healthHandler := handlers.NewHealthHandler(version,
		&postgresHealthChecker{conn: conn},
		&redisHealthChecker{client: redisClient},
	)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		ProcessoHandler: handlers.NewProcessoHandler(processoSvc, logger),
		AlertaHandler:   handlers.NewAlertaHandler(alertSvc, logger),
		ConsultaHandler: handlers.NewConsultaHandler(consultaSvc, logger),
		WebhookHandler:  handlers.NewWebhookHandler(ingestSvc, logger),
		HealthHandler:   healthHandler,

		AuthMiddleware: middleware.NewAuthMiddleware(
			&middleware.StaticTokenValidator{
				Token:  cfg.Auth.Token,
				UserID: cfg.Auth.UserID,
				Email:  cfg.Auth.Email,
			},
			middleware.AuthConfig{},
			logger,
		),
		WebhookTokenMiddleware: middleware.NewWebhookTokenMiddleware(cfg.Webhook.Token, logger),
		CORSMiddleware:         middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()),
		LoggingMiddleware: middleware.NewLoggingMiddleware(logger, middleware.LoggingConfig{
			SkipPaths: []string{"/healthz", "/readyz", "/metrics"},
		}),
		RateLimitMiddleware: middleware.NewRateLimitMiddleware(
			middleware.NewTokenBucketLimiter(50, 100, 0),
			middleware.RateLimitConfig{
				RequestsPerSecond: 50,
				BurstSize:         100,
				SkipPaths:         []string{"/healthz", "/readyz", "/metrics"},
			},
		),
		MetricsMiddleware: middleware.NewMetricsMiddleware(appMetrics),

		Logger:           logger,
		MetricsCollector: collector,
	})

	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Stop(shutdownCtx)
}

// loadConfig loads configuration from the given file, or from the
// environment when no path is supplied.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

//Personal.AI order the ending
