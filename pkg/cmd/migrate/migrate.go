package migrate

import (
	"github.com/spf13/cobra"

	"github.com/mpapenbr/greenhell-go/log"
	"github.com/mpapenbr/greenhell-go/pkg/config"
	"github.com/mpapenbr/greenhell-go/pkg/db/migrate"
	"github.com/mpapenbr/greenhell-go/pkg/utils"
)

func NewMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "creates the car tables in the database",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return config.RequireDB()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return startMigration(cmd)
		},
	}
	return cmd
}

func startMigration(cmd *cobra.Command) error {
	if err := utils.WaitForDB(cmd.Context(), config.DB, config.WaitForServices); err != nil {
		log.Error("database not ready", log.ErrorField(err))
		return err
	}
	if err := migrate.MigrateDb(config.DB); err != nil {
		log.Error("migration failed", log.ErrorField(err))
		return err
	}
	version, dirty, err := migrate.Version(config.DB)
	if err != nil {
		return err
	}
	log.Info("Database migrated",
		log.Int("version", int(version)),
		log.Bool("dirty", dirty))
	return nil
}
