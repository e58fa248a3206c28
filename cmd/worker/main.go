// Background worker entry point for the jurisacompanha backend.  The worker
// consumes email-received events from Kafka, runs them through the ingestion
// pipeline, and hosts the deadline scheduler.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/alerting"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/ingestion"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/config"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres/repositories"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/redis"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/messaging/kafka"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/prometheus"
	pkgerrors "github.com/MP-oliveira/jurisacompanha-backend/pkg/errors"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	healthAddr := flag.String("health-addr", ":8081", "health and metrics listen address")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting jurisacompanha worker",
		logging.String("version", version),
		logging.Any("brokers", cfg.Kafka.Brokers))

	if err := run(cfg, logger, *healthAddr); err != nil {
		logger.Error("worker exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger logging.Logger, healthAddr string) error {
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
	}, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	redisClient, err := redis.NewClient(&redis.RedisConfig{
		Mode:     "standalone",
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	producer, err := kafka.NewProducer(kafka.ProducerConfig{
		Brokers:    cfg.Kafka.Brokers,
		MaxRetries: cfg.Kafka.ProducerRetries,
	}, logger)
	if err != nil {
		return err
	}
	defer producer.Close()
	publisher := kafka.NewEventPublisher(producer, "worker", logger)

	// ── Pipeline ──────────────────────────────────────────────────────────────
	processoRepo := repositories.NewProcessoRepository(conn, logger)
	alertaRepo := repositories.NewAlertaRepository(conn, logger)
	eventRepo := repositories.NewIngestionEventRepository(conn, logger)
	userRepo := repositories.NewUserRepository(conn, logger)

	alertSvc := alerting.NewService(alertaRepo, publisher, logger)
	interpreter := ingestion.NewInterpreter(ingestion.DefaultRules()...)
	reconciler := ingestion.NewReconciler(processoRepo, eventRepo, alertSvc, interpreter, publisher, logger)
	ingestSvc := ingestion.NewService(userRepo, reconciler, logger)

	locker := redis.NewSweepLocker(redisClient, logger)
	scheduler := alerting.NewScheduler(processoRepo, alertSvc, locker, logger, alerting.SchedulerOptions{
		HourlyInterval: cfg.Scheduler.HourlyInterval,
		DailyHour:      cfg.Scheduler.DailyHour,
		Horizon:        cfg.Scheduler.Horizon,
		LockTTL:        cfg.Scheduler.LockTTL,
	})
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// ── Consumer ──────────────────────────────────────────────────────────────
	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers:         cfg.Kafka.Brokers,
		GroupID:         cfg.Kafka.GroupID,
		Topics:          []string{kafka.TopicEmailReceived},
		AutoOffsetReset: cfg.Kafka.AutoOffsetReset,
	}, logger)
	if err != nil {
		return err
	}
	defer consumer.Close()

	if err := consumer.Subscribe(kafka.TopicEmailReceived, emailHandler(ingestSvc, logger)); err != nil {
		return err
	}

	// ── Health and metrics endpoint ───────────────────────────────────────────
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace: "juris",
		Subsystem: "worker",
	}, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("/metrics", collector.Handler())

	healthSrv := &http.Server{Addr: healthAddr, Handler: mux, ReadTimeout: 5 * time.Second}
	go func() {
		if err := healthSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("health server error", logging.Err(err))
		}
	}()

	// ── Run ───────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		errCh <- consumer.Start(ctx)
	}()

	select {
	case err := <-errCh:
		if err != nil && ctx.Err() == nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down worker")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return healthSrv.Shutdown(shutdownCtx)
}

// emailHandler adapts the ingestion service to the consumer's handler
// contract.  Malformed or non-notification messages are acknowledged without
// retry; only persistence failures propagate and enter the retry path.
func emailHandler(svc *ingestion.Service, logger logging.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg *kafka.Message) error {
		var env kafka.EventEnvelope
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			logger.Warn("dropping malformed event envelope",
				logging.Int64("offset", msg.Offset), logging.Err(err))
			return nil
		}

		var payload kafka.EmailReceivedPayload
		if err := json.Unmarshal(env.Payload, &payload); err != nil {
			logger.Warn("dropping malformed email payload",
				logging.String("event_id", env.EventID), logging.Err(err))
			return nil
		}

		outcome, err := svc.ProcessEmail(ctx, ingestion.EmailMessage{
			From:       payload.From,
			To:         payload.To,
			Subject:    payload.Subject,
			Body:       payload.Body,
			ReceivedAt: payload.ReceivedAt,
		}, payload.OwnerID)
		if err != nil {
			switch pkgerrors.GetCode(err) {
			case pkgerrors.CodeEmailUnparseable, pkgerrors.CodeOwnerNotFound:
				// Permanent failures; retrying cannot fix the message.
				logger.Warn("unprocessable email notification",
					logging.String("event_id", env.EventID), logging.Err(err))
				return nil
			default:
				return err
			}
		}

		if outcome != nil && !outcome.Processed {
			logger.Debug("ignored non-notification email",
				logging.String("from", payload.From))
		}
		return nil
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

//Personal.AI order the ending
