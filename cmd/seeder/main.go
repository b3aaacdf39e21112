package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/auth"
	"github.com/punchamoorthee/backoffice/internal/config"
	"github.com/punchamoorthee/backoffice/internal/logging"
	"github.com/punchamoorthee/backoffice/internal/workflow"
)

var (
	configPath    string
	adminUser     string
	adminPassword string
	subscriptions int
)

var (
	companies     = []string{"Head Office", "Plant A", "Plant B"}
	documentTypes = []string{"PAN", "GST Certificate", "Trade License", "Insurance"}
	categories    = []string{"Company", "Personal", "Director"}
)

func main() {
	cmd := &cobra.Command{
		Use:   "seeder",
		Short: "Seed master data, an admin account and pending subscriptions",
		RunE:  runSeed,
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "optional YAML config file")
	cmd.Flags().StringVar(&adminUser, "admin-user", "admin", "username of the seeded admin")
	cmd.Flags().StringVar(&adminPassword, "admin-password", "", "password of the seeded admin (required)")
	cmd.Flags().IntVar(&subscriptions, "subscriptions", 100, "subscriptions to create awaiting approval")
	cmd.MarkFlagRequired("admin-password")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, "console", "stdout")
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer conn.Close(ctx)

	if err := seedMaster(ctx, conn, logger); err != nil {
		return err
	}
	if err := seedSubscriptions(ctx, conn, logger); err != nil {
		return err
	}

	loginConn := conn
	if cfg.LoginDBSource != cfg.DBSource {
		loginConn, err = pgx.Connect(ctx, cfg.LoginDBSource)
		if err != nil {
			return fmt.Errorf("unable to connect to login database: %w", err)
		}
		defer loginConn.Close(ctx)
	}
	return seedAdmin(ctx, loginConn, logger)
}

// seedMaster bulk-loads every company, type and category combination into
// an empty master table.
func seedMaster(ctx context.Context, conn *pgx.Conn, logger *zap.Logger) error {
	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM master").Scan(&count); err != nil {
		return fmt.Errorf("count master: %w", err)
	}
	if count > 0 {
		logger.Info("master data present, skipping", zap.Int("rows", count))
		return nil
	}

	var rows [][]any
	for _, c := range companies {
		for _, t := range documentTypes {
			for _, cat := range categories {
				rows = append(rows, []any{c, t, cat, t == "Insurance"})
			}
		}
	}
	n, err := conn.CopyFrom(ctx,
		pgx.Identifier{"master"},
		[]string{"company_name", "document_type", "category", "renewal_filter"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy master: %w", err)
	}
	logger.Info("seeded master data", zap.Int64("rows", n))
	return nil
}

// seedSubscriptions adds subscriptions gated at the approval stage,
// numbered after the highest existing subscription number.
func seedSubscriptions(ctx context.Context, conn *pgx.Conn, logger *zap.Logger) error {
	if subscriptions <= 0 {
		return nil
	}
	var latest string
	err := conn.QueryRow(ctx, "SELECT subscription_no FROM subscription ORDER BY id DESC LIMIT 1").Scan(&latest)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("latest subscription: %w", err)
	}

	now := time.Now().UTC()
	rows := make([][]any, 0, subscriptions)
	for i := 0; i < subscriptions; i++ {
		next, err := workflow.NextSequenceNumber("SUB", 4, latest)
		if err != nil {
			return err
		}
		latest = next
		rows = append(rows, []any{
			next,
			companies[i%len(companies)],
			fmt.Sprintf("Service %d", i+1),
			float64(100 + i%50),
			"Monthly",
			now,
		})
	}
	n, err := conn.CopyFrom(ctx,
		pgx.Identifier{"subscription"},
		[]string{"subscription_no", "subscriber_name", "subscription_name", "price", "frequency", "planned_2"},
		pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copy subscriptions: %w", err)
	}
	logger.Info("seeded subscriptions", zap.Int64("rows", n), zap.String("last", latest))
	return nil
}

func seedAdmin(ctx context.Context, conn *pgx.Conn, logger *zap.Logger) error {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}
	tag, err := conn.Exec(ctx, `INSERT INTO users (user_name, name, password, role, subscription_access_system)
		VALUES ($1, $1, $2, $3, '{"systems":["subscription","document","payment","loan"],"pages":[]}'::jsonb)
		ON CONFLICT (user_name) DO NOTHING`,
		adminUser, hash, auth.RoleAdmin)
	if err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		logger.Info("admin user present, skipping", zap.String("username", adminUser))
		return nil
	}
	logger.Info("seeded admin user", zap.String("username", adminUser))
	return nil
}
