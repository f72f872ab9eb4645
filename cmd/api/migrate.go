package main

import (
	"context"
	"fmt"

	pg "daycare-log/internal/adapters/storage/postgres"
	"daycare-log/internal/platform/config"
	"daycare-log/internal/platform/logger"

	"github.com/spf13/cobra"
)

func addMigrate(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending Postgres migrations",
		Example: `
DAYCARE_STORAGE_DRIVER=postgres DAYCARE_STORAGE_DSN=postgres://... daycare-log migrate
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Storage.Driver != config.StoragePostgres {
				return fmt.Errorf("migrate only applies to postgres (driver is %q)", cfg.Storage.Driver)
			}
			log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, App: cfg.App.Name})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			db, err := pg.Open(ctx, cfg.Storage.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return pg.Migrate(ctx, db, log)
		},
	}
	topLevel.AddCommand(cmd)
}
