// cmd/careerpilot/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"careerpilot/internal/advisor"
	"careerpilot/internal/api"
	"careerpilot/internal/auth"
	"careerpilot/internal/catalog"
	"careerpilot/internal/common/config"
	"careerpilot/internal/common/database"
	"careerpilot/internal/common/logger"
	"careerpilot/internal/common/observability"
	"careerpilot/internal/gesture"
	"careerpilot/internal/models"
	"careerpilot/internal/notify"
	"careerpilot/internal/quota"
	"careerpilot/internal/store"
	"careerpilot/internal/tracker"
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
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	zapLog.Info("Starting careerpilot...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

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

	// --- Load Snapshot ---
	st := store.New(redis, log)
	snapshot, err := st.Load(ctx, models.DefaultStats(cfg.Quota.MaxPromptsPerDay))
	if err != nil {
		zapLog.Fatal("snapshot load failed", zap.Error(err))
	}
	zapLog.Info("Snapshot loaded",
		zap.Int("applications", len(snapshot.Applications)),
		zap.Int("historyEntries", len(snapshot.History)),
	)

	// --- Init Services ---
	center := notify.NewCenter()

	quotaMgr := quota.NewManager(snapshot.Stats, snapshot.History, quota.Hooks{
		PersistStats:   st.SaveStats,
		PersistHistory: st.SaveHistory,
	}, log)

	repo := tracker.NewRepository(snapshot.Applications, tracker.Hooks{
		Persist: st.SaveApplications,
		Notify:  center.Push,
	}, tracker.NewRandomFailure(cfg.Tracker.ArchiveFailureRate, time.Now().UnixNano()), log)

	advisorClient, err := advisor.New(ctx, cfg.Advisor.APIKey, cfg.Advisor.Model,
		config.GetDuration(cfg.Advisor.Timeout), log)
	if err != nil {
		zapLog.Fatal("advisor client failed", zap.Error(err))
	}
	zapLog.Info("Advisor client initialized", zap.String("model", cfg.Advisor.Model))

	authSvc := auth.NewService(snapshot.User, advisorClient, quotaMgr, center, st.SaveUser, log)

	srv := api.NewServer(api.Deps{
		Tracker: repo,
		Catalog: catalog.New(),
		Advisor: advisorClient,
		Quota:   quotaMgr,
		Auth:    authSvc,
		Notify:  center,
		GestureConfig: gesture.Config{
			LongPressDelay:  config.GetDuration(cfg.Gesture.LongPressDelay),
			JitterTolerance: cfg.Gesture.JitterTolerance,
			CommitThreshold: cfg.Gesture.CommitThreshold,
		},
		Observability: obs,
		Logger:        log,
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during HTTP shutdown", zap.Error(err))
	}

	zapLog.Info("Careerpilot stopped gracefully")
}
