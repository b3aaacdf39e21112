package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply embedded schema migrations",
	Long: `Apply every embedded migration not yet recorded in schema_migrations.

When LOGIN_DB_SOURCE points at a separate database it is migrated too.`,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	sources := []string{cfg.DBSource}
	if cfg.LoginDBSource != cfg.DBSource {
		sources = append(sources, cfg.LoginDBSource)
	}
	for i, src := range sources {
		if err := migrateOne(ctx, src, logger.With(zap.Int("database", i))); err != nil {
			return err
		}
	}
	logger.Info("migrations complete")
	return nil
}

func migrateOne(ctx context.Context, source string, logger *zap.Logger) error {
	pool, err := store.NewPool(ctx, source)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()
	return store.Migrate(ctx, pool, logger)
}
