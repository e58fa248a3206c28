package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/config"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/database/postgres"
)

// NewMigrateCmd creates the "migrate" command.  The default run applies
// pending schema migrations; --status, --down, and --force expose the other
// migrator operations for development and dirty-state recovery.
func NewMigrateCmd() *cobra.Command {
	var (
		migrationsPath string
		status         bool
		down           int
		force          int
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}

			path := migrationsPath
			if path == "" {
				path = cliCtx.Config.Database.MigrationPath
			}
			if path == "" {
				path = "migrations"
			}
			dbURL := postgresURL(cliCtx.Config.Database)

			switch {
			case status:
				version, dirty, err := postgres.MigrationStatus(dbURL, path)
				if err != nil {
					return err
				}
				return PrintResult(cmd, map[string]interface{}{
					"version": version,
					"dirty":   dirty,
				})
			case down > 0:
				if err := postgres.RollbackMigration(dbURL, path, down); err != nil {
					return err
				}
				PrintSuccess(cmd, fmt.Sprintf("rolled back %d migration(s)", down))
				return nil
			case cmd.Flags().Changed("force"):
				if err := postgres.ForceMigrationVersion(dbURL, path, force); err != nil {
					return err
				}
				PrintSuccess(cmd, fmt.Sprintf("schema version forced to %d", force))
				return nil
			}

			if err := postgres.RunMigrations(dbURL, path); err != nil {
				return err
			}
			PrintSuccess(cmd, "migrations applied")
			return nil
		},
	}

	cmd.Flags().StringVar(&migrationsPath, "path", "", "migrations directory (default from config)")
	cmd.Flags().BoolVar(&status, "status", false, "print the applied schema version and exit")
	cmd.Flags().IntVar(&down, "down", 0, "roll back this many migrations instead of applying")
	cmd.Flags().IntVar(&force, "force", 0, "force the recorded schema version (dirty-state recovery)")

	return cmd
}

// postgresURL renders a DatabaseConfig as a connection URL for the migrator.
func postgresURL(cfg config.DatabaseConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:   "/" + cfg.DBName,
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	q := url.Values{}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

//Personal.AI order the ending
