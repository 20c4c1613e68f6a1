package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-combat-tracker/internal/config"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/errors"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/observability"
	"github.com/KirkDiggler/rpg-combat-tracker/internal/storage/postgres"
)

// annotationNoStore marks commands that must not open the configured store
const annotationNoStore = "tracker/no-store"

var migrateSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the postgres schema migrations",
	Long: `Apply the embedded schema migrations to the configured postgres database.
--steps moves that many versions forward, or back when negative. Without it
every pending migration is applied.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoStore: "true"},
	RunE:        runMigrate,
}

func init() {
	migrateCmd.Flags().IntVar(&migrateSteps, "steps", 0, "Number of versions to move, 0 applies all")
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Store.Driver != config.DriverPostgres {
		return errors.FailedPreconditionf("migrate needs store.driver=%s, got %q", config.DriverPostgres, cfg.Store.Driver)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := postgres.Migrate(cfg.Postgres.DSN(), migrateSteps, logger)
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), outputFormat, result, func(tw *tabwriter.Writer) {
		if !result.Changed {
			fmt.Fprintf(tw, "Schema already at version %d\n", result.Version)
			return
		}
		fmt.Fprintf(tw, "Schema migrated to version %d\n", result.Version)
	})
}
