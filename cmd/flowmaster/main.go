package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/flowmasterhq/flowmaster/internal/auth"
	"github.com/flowmasterhq/flowmaster/internal/config"
	"github.com/flowmasterhq/flowmaster/internal/provision"
	"github.com/flowmasterhq/flowmaster/internal/server"
	"github.com/flowmasterhq/flowmaster/internal/storage"
	"github.com/flowmasterhq/flowmaster/internal/store/postgres"
	redisstore "github.com/flowmasterhq/flowmaster/internal/store/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
}

func run() error {
	// Initialize structured logging from environment.
	logLevel := os.Getenv("FLOWMASTER_LOG_LEVEL")
	level, parseErr := zerolog.ParseLevel(logLevel)
	if parseErr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	logFormat := os.Getenv("FLOWMASTER_LOG_FORMAT")
	if logFormat == "text" {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	ctx := context.Background()

	// Load configuration from environment.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.Database.MaxConns < 0 || cfg.Database.MaxConns > math.MaxInt32 {
		return fmt.Errorf("database max_conns %d out of int32 range", cfg.Database.MaxConns)
	}

	// Connect to the global PostgreSQL database and ensure its tables exist.
	store, err := postgres.New(ctx, cfg.Database.GlobalDSN(), int32(cfg.Database.MaxConns)) //nolint:gosec // bounds checked above
	if err != nil {
		return err
	}
	defer store.Close()

	if err = store.EnsureSchema(ctx); err != nil {
		return err
	}

	// Dedicated admin connection for CREATE DATABASE and tenant migrations.
	admin, err := postgres.NewAdmin(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer admin.Close()

	// Per-tenant pool registry.
	pools := postgres.NewTenantPools(cfg.Database, 5*time.Second)
	defer pools.CloseAll()

	// Redis-backed provisioning lease; optional.
	var locker provision.Locker
	if cfg.Redis.Addr != "" {
		redisLocker, redisErr := redisstore.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if redisErr != nil {
			return redisErr
		}
		defer redisLocker.Close()
		locker = redisLocker
	} else {
		log.Warn().Msg("redis not configured; provisioning relies on the tenant_id unique constraint alone")
	}

	// S3-backed object storage; optional.
	var objectStore storage.ObjectStore
	if cfg.Storage.Bucket != "" {
		s3Store, s3Err := storage.NewS3(ctx, cfg.Storage)
		if s3Err != nil {
			return s3Err
		}
		objectStore = s3Store
	} else {
		log.Warn().Msg("object storage not configured; logo and flow uploads disabled")
	}

	// Bearer-token verifier per the configured mode.
	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		return err
	}

	provisioner := provision.NewService(
		store.Tenants(),
		admin,
		objectStore,
		locker,
		cfg.Provision.LockTTL,
		cfg.Provision.StepTimeout,
	)

	// Graceful shutdown on SIGINT / SIGTERM.
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create HTTP server with all routes wired.
	srv := server.New(ctx, cfg, store, pools, verifier, provisioner, objectStore)

	// Start server in background goroutine.
	go func() {
		log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if startErr := srv.Start(ctx); startErr != nil {
			log.Error().Err(startErr).Msg("server error")
		}
	}()

	// Block until shutdown signal.
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		return shutdownErr
	}

	log.Info().Msg("shutdown complete")

	return nil
}
