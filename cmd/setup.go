package cmd

import (
	"log"

	"github.com/simplefinance/simplefinance/internal/bootstrap"
	"github.com/simplefinance/simplefinance/pkg/logger"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initialize the schema and seed default rows",
	Long:  `Create all tables and insert the default categories, payment methods and admin account. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		lg := logger.LoggerWrapper()

		if err := bootstrap.InitializeSchema(db); err != nil {
			log.Fatalf("failed to initialize schema: %v", err)
		}

		if err := bootstrap.SeedDefaults(db, lg); err != nil {
			log.Fatalf("failed to seed defaults: %v", err)
		}

		lg.Info("setup complete")
	},
}
