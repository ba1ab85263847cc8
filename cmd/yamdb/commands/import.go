package commands

import (
	"github.com/deppfellow/yamdb/internal/database"
	"github.com/deppfellow/yamdb/internal/importer"
	"github.com/spf13/cobra"
)

var importDir string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load CSV fixtures into the database",
	Long: `Load the CSV fixtures (users, categories, genres, titles, genre links,
reviews, comments) in one transaction. Ids are preserved and the id
sequences are moved past them. Missing files are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		db, err := database.New(cfg, log, loggerService)
		if err != nil {
			return err
		}
		defer db.Close()

		counts, err := importer.New(db.Pool, log).Run(cmd.Context(), importDir)
		if err != nil {
			return err
		}

		event := log.Info()
		for table, n := range counts {
			event = event.Int64(table, n)
		}
		event.Msg("import finished")
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importDir, "dir", "static/data", "Directory holding the CSV fixtures")
}
