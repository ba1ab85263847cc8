package commands

import (
	"github.com/deppfellow/yamdb/internal/database"
	"github.com/spf13/cobra"
)

var targetVersion int32

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the database schema",
	Long: `Migrate the database schema to a version. By default every pending
migration is applied.

Examples:
  yamdb migrate              # apply all pending migrations
  yamdb migrate --to 0       # roll everything back`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		return database.Migrate(cmd.Context(), log, cfg, targetVersion)
	},
}

func init() {
	migrateCmd.Flags().Int32Var(&targetVersion, "to", -1, "Target schema version (negative means latest)")
}
