package cli

import (
	"github.com/spf13/cobra"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/alerting"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres/repositories"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/redis"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

// NewSweepCmd creates the "sweep" command, a one-shot deadline sweep against
// the configured database.  Useful for cron-style deployments and for
// verifying alert generation without a resident scheduler.
func NewSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one deadline sweep and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			logger := cliCtx.Logger

			conn, err := postgres.NewConnection(postgres.PostgresConfig{
				Host:     cfg.Database.Host,
				Port:     cfg.Database.Port,
				Database: cfg.Database.DBName,
				Username: cfg.Database.User,
				Password: cfg.Database.Password,
				SSLMode:  cfg.Database.SSLMode,
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
			}, logger)
			if err != nil {
				return err
			}
			defer redisClient.Close()

			processoRepo := repositories.NewProcessoRepository(conn, logger)
			alertaRepo := repositories.NewAlertaRepository(conn, logger)

			// Events stay local on a manual sweep; no bus is wired.
			alertSvc := alerting.NewService(alertaRepo, nil, logger)
			locker := redis.NewSweepLocker(redisClient, logger)

			scheduler := alerting.NewScheduler(processoRepo, alertSvc, locker, logger, alerting.SchedulerOptions{
				HourlyInterval: cfg.Scheduler.HourlyInterval,
				DailyHour:      cfg.Scheduler.DailyHour,
				Horizon:        cfg.Scheduler.Horizon,
				LockTTL:        cfg.Scheduler.LockTTL,
			})

			if err := scheduler.Sweep(cmd.Context()); err != nil {
				return err
			}

			logger.Info("sweep completed",
				logging.Duration("horizon", cfg.Scheduler.Horizon))
			PrintSuccess(cmd, "sweep completed")
			return nil
		},
	}
}

//Personal.AI order the ending
