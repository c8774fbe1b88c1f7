// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"lease-advisor/internal/analysis"
	"lease-advisor/internal/common/config"
	"lease-advisor/internal/common/database"
	"lease-advisor/internal/common/logger"
	"lease-advisor/internal/common/observability"
	"lease-advisor/internal/notify"
	"lease-advisor/internal/recommend"
	"lease-advisor/internal/server"
	"lease-advisor/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// readiness reports whether both backing stores answer a ping.
type readiness struct {
	pg    *database.PostgresClient
	redis *database.RedisClient
}

func (r *readiness) Ready(ctx context.Context) error {
	if err := r.pg.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if err := r.redis.Ping(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting lease advisor API...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	obs := observability.New("lease-advisor")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Wire the recommendation pipeline ---
	openaiClient := recommend.NewOpenAIClient(cfg.OpenAI, log)
	orchestrator := recommend.NewOrchestrator(recommend.Config{
		MaxRetries:         cfg.Recommendation.MaxRetries,
		MinRecommendations: cfg.Recommendation.MinRecommendations,
		RetryDelay:         cfg.Recommendation.RetryDelay(),
		ExponentialBackoff: cfg.Recommendation.ExponentialBackoff,
		SearchRadiusMiles:  cfg.Recommendation.SearchRadiusMiles,
	}, openaiClient, log)

	coordinator := analysis.NewCoordinator(log)

	// --- Wire persistence ---
	dealStore := store.NewDealStore(pg.DB)
	cachedDeals := store.NewCachedDealStore(
		dealStore, redis.Client,
		time.Duration(cfg.Cache.DealsTTL)*time.Second, log,
	)
	customerStore := store.NewCustomerStore(pg.DB)
	leadStore := store.NewLeadStore(pg.DB)

	// --- Wire notifications ---
	notifier, err := notify.NewLeadNotifier(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	handlers := server.NewHandlers(
		orchestrator, coordinator,
		cachedDeals, customerStore, leadStore,
		notifier, log,
	)
	srv := server.New(cfg.Server, handlers, &readiness{pg: pg, redis: redis}, log)

	// --- Run until signaled ---
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	case sig := <-sigCh:
		zapLog.Info("Shutdown signal received, draining requests...", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown incomplete", zap.Error(err))
	}

	zapLog.Info("Lease advisor API stopped gracefully")
}
