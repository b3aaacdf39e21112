package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/punchamoorthee/backoffice/internal/api"
	"github.com/punchamoorthee/backoffice/internal/auth"
	"github.com/punchamoorthee/backoffice/internal/config"
	"github.com/punchamoorthee/backoffice/internal/objectstore"
	"github.com/punchamoorthee/backoffice/internal/service"
	"github.com/punchamoorthee/backoffice/internal/store"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply schema migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("starting back-office API",
		zap.String("environment", cfg.Env),
		zap.String("port", cfg.Port))

	ctx := context.Background()

	mainPool, err := store.NewPool(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("unable to connect to database: %w", err)
	}
	defer mainPool.Close()

	loginPool := mainPool
	if cfg.LoginDBSource != cfg.DBSource {
		loginPool, err = store.NewPool(ctx, cfg.LoginDBSource)
		if err != nil {
			return fmt.Errorf("unable to connect to login database: %w", err)
		}
		defer loginPool.Close()
	}

	if migrateOnStart {
		if err := store.Migrate(ctx, mainPool, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		if loginPool != mainPool {
			if err := store.Migrate(ctx, loginPool, logger); err != nil {
				return fmt.Errorf("failed to run login migrations: %w", err)
			}
		}
	}

	loanUploader, err := newUploader(ctx, cfg.AWSRegion, cfg.BucketName, logger)
	if err != nil {
		return err
	}
	docUploader, err := newUploader(ctx, cfg.AWSRegion, cfg.DocumentBucket, logger)
	if err != nil {
		return err
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	handler := api.NewHandler(buildServices(mainPool, loginPool, issuer, loanUploader, docUploader, logger), logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(handler, issuer, logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return run(srv, cfg, logger)
}

func buildServices(mainPool, loginPool *pgxpool.Pool, issuer *auth.Issuer, loanUploader, docUploader objectstore.Uploader, logger *zap.Logger) api.Services {
	users := store.NewUserStore(loginPool, logger)
	return api.Services{
		Payments:      service.NewPaymentService(store.NewPaymentStore(mainPool), logger),
		Loans:         service.NewLoanService(store.NewLoanStore(mainPool), loanUploader, logger),
		Documents:     service.NewDocumentService(store.NewDocumentStore(mainPool), docUploader, logger),
		Master:        service.NewMasterService(store.NewMasterStore(mainPool)),
		Auth:          service.NewAuthService(users, issuer, logger),
		Users:         service.NewUserService(users),
		Subscriptions: service.NewSubscriptionService(store.NewSubscriptionStore(mainPool), logger),
	}
}

// newUploader returns nil when no bucket is configured; uploads are then
// skipped and records are stored without a file reference.
func newUploader(ctx context.Context, region, bucket string, logger *zap.Logger) (objectstore.Uploader, error) {
	if bucket == "" {
		logger.Warn("no bucket configured, inline uploads disabled")
		return nil, nil
	}
	u, err := objectstore.NewS3Uploader(ctx, region, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize S3 uploader: %w", err)
	}
	return u, nil
}

// run serves until SIGINT or SIGTERM, then drains in-flight requests.
func run(srv *http.Server, cfg *config.Config, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownAfter)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
