package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"teamup-board-api/internal/client"
	"teamup-board-api/internal/database"
	"teamup-board-api/internal/job"
	"teamup-board-api/internal/metrics"
	"teamup-board-api/internal/realtime"
	"teamup-board-api/internal/router"
	"teamup-board-api/internal/service"
)

func runServe(a *app) error {
	cfg := a.cfg
	logger := a.logger

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting TeamUp Board API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.Bool("redis_enabled", cfg.Redis.Enabled()),
	)

	ctx, stop := signalContext()
	defer stop()

	m := metrics.NewWithLogger(logger)

	db, err := a.connectDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close(db)

	database.RegisterMetricsCallbacks(db, m)
	if err := database.SafeAutoMigrateWithRetry(db, logger, 3); err != nil {
		logger.Warn("Failed to run database migrations", zap.Error(err))
	}
	statsDone := database.StartDBStatsCollector(db, m, 15*time.Second)
	defer close(statsDone)

	// Redis is optional; without it events stay on this instance and
	// sign-outs are remembered in memory.
	var (
		redisClient *redis.Client
		broker      realtime.Broker
		revocations service.RevocationStore
	)
	if cfg.Redis.Enabled() {
		redisClient, err = database.InitRedis(cfg.Redis, logger)
		if err != nil {
			logger.Warn("Failed to connect to Redis, falling back to in-process realtime", zap.Error(err))
			redisClient = nil
		}
	}
	if redisClient != nil {
		defer redisClient.Close()
		broker = realtime.NewRedisBroker(redisClient, logger)
		revocations = service.NewRedisRevocationStore(redisClient)
	} else {
		broker = realtime.NewLocalBroker(logger)
		revocations = service.NewMemoryRevocationStore()
	}

	hub := realtime.NewHub(broker, logger, m)
	go hub.Run(ctx)

	var emailClient client.EmailClient
	if cfg.Email.ResendAPIKey != "" {
		emailClient = client.NewResendClient(cfg.Email.BaseURL, cfg.Email.ResendAPIKey, cfg.Email.From,
			cfg.Email.Timeout, logger, m)
	} else {
		logger.Warn("RESEND_API_KEY not set, invitation emails will be logged only")
		emailClient = client.NewNoOpEmailClient(logger)
	}

	s3Client := a.newS3Client(m)

	collector := metrics.NewBusinessMetricsCollector(db, m, logger)
	collector.Start()
	defer collector.Stop()

	scheduler := job.NewScheduler(logger)
	expiry, cleanup := a.maintenanceJobs(db, s3Client)
	if err := scheduler.Register(cfg.Invitation.ExpirySweepCron, expiry); err != nil {
		return err
	}
	if cleanup != nil {
		if err := scheduler.Register(cfg.Invitation.AttachmentCleanupCron, cleanup); err != nil {
			return err
		}
	}
	scheduler.Start()

	r := router.Setup(router.Config{
		DB:             db,
		Redis:          redisClient,
		Logger:         logger,
		Metrics:        m,
		BasePath:       cfg.Server.BasePath,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Tokens:         service.NewTokenIssuer(cfg.JWT),
		Revocations:    revocations,
		Broker:         broker,
		Hub:            hub,
		EmailClient:    emailClient,
		S3Client:       s3Client,
		Invitations: service.InvitationSettings{
			AppBaseURL:            cfg.Email.AppBaseURL,
			DefaultExpiry:         time.Duration(cfg.Invitation.DefaultExpiryHours) * time.Hour,
			AccessCodeMaxAttempts: cfg.Invitation.AccessCodeMaxAttempts,
		},
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("TeamUp Board API started successfully",
			zap.String("address", srv.Addr),
			zap.String("swagger", fmt.Sprintf("http://localhost:%s/swagger/index.html", cfg.Server.Port)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}
	case <-ctx.Done():
	}
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	scheduler.Stop(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
	return nil
}
