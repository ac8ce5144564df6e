package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"teamup-board-api/internal/client"
	"teamup-board-api/internal/config"
	"teamup-board-api/internal/database"
	"teamup-board-api/internal/job"
	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/repository"
)

const defaultConfigPath = "configs/config.yaml"

// app carries what every subcommand needs
type app struct {
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "teamup-board-api",
		Short:         "TeamUp board service",
		Long:          `teamup-board-api serves companies, boards and typed cells over HTTP and pushes board changes over websockets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(configPath, runServe)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath, "path to the yaml config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(configPath, runServe)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Run database auto-migration and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(configPath, runMigrate)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "sweep",
		Short: "Expire stale invitations and remove abandoned uploads once",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(configPath, runSweep)
		},
	})

	return root
}

// withApp loads config and the logger, then runs fn
func withApp(configPath string, fn func(*app) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if cfg.JWT.Secret == "" {
		// Validate only allows this outside release mode
		cfg.JWT.Secret = uuid.NewString() + uuid.NewString()
		logger.Warn("JWT secret not configured, using an ephemeral secret; tokens will not survive a restart")
	}

	return fn(&app{cfg: cfg, logger: logger})
}

func (a *app) databaseConfig() database.Config {
	return database.Config{
		Driver:          a.cfg.Database.Driver,
		DSN:             a.cfg.Database.GetDSN(),
		MaxOpenConns:    a.cfg.Database.MaxOpenConns,
		MaxIdleConns:    a.cfg.Database.MaxIdleConns,
		ConnMaxLifetime: a.cfg.Database.ConnMaxLifetime,
	}
}

// connectDatabase returns a connection, retrying in the background until
// one is made or ctx is cancelled
func (a *app) connectDatabase(ctx context.Context) (*gorm.DB, error) {
	dbConfig := a.databaseConfig()

	db, err := database.New(dbConfig)
	if err == nil {
		a.logger.Info("Database connected successfully")
		return db, nil
	}
	a.logger.Warn("Failed to connect to database on startup, will retry in background", zap.Error(err))

	connected := make(chan *gorm.DB, 1)
	database.NewAsync(dbConfig, 5*time.Second, a.logger, func(db *gorm.DB) {
		connected <- db
	})
	select {
	case db := <-connected:
		return db, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("database connection aborted: %w", ctx.Err())
	}
}

// newS3Client returns nil when storage is not configured or fails to initialize
func (a *app) newS3Client(m *metrics.Metrics) client.S3ClientInterface {
	if a.cfg.S3.Bucket == "" || a.cfg.S3.Region == "" {
		a.logger.Warn("S3 configuration incomplete, file cell uploads disabled")
		return nil
	}
	s3Client, err := client.NewS3Client(&a.cfg.S3, m)
	if err != nil {
		a.logger.Warn("Failed to initialize S3 client, file cell uploads disabled", zap.Error(err))
		return nil
	}
	a.logger.Info("S3 client initialized",
		zap.String("bucket", a.cfg.S3.Bucket),
		zap.String("region", a.cfg.S3.Region))
	return s3Client
}

// maintenanceJobs builds the periodic jobs; the cleanup job needs storage
func (a *app) maintenanceJobs(db *gorm.DB, s3Client client.S3ClientInterface) (*job.InvitationExpiryJob, *job.AttachmentCleanupJob) {
	expiry := job.NewInvitationExpiryJob(repository.NewInvitationRepository(db), a.logger)
	if s3Client == nil {
		return expiry, nil
	}
	return expiry, job.NewAttachmentCleanupJob(repository.NewAttachmentRepository(db), s3Client, a.logger)
}

func runMigrate(a *app) error {
	db, err := database.New(a.databaseConfig())
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.SafeAutoMigrate(db, a.logger); err != nil {
		return err
	}
	a.logger.Info("Database migrations completed")
	return nil
}

func runSweep(a *app) error {
	db, err := database.New(a.databaseConfig())
	if err != nil {
		return err
	}
	defer database.Close(db)

	expiry, cleanup := a.maintenanceJobs(db, a.newS3Client(nil))
	jobs := []job.Job{expiry}
	if cleanup != nil {
		jobs = append(jobs, cleanup)
	}
	job.RunNow(jobs...)
	a.logger.Info("Sweep completed", zap.Int("jobs", len(jobs)))
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
