package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"stayhaven/internal/api"
	"stayhaven/internal/config"
	"stayhaven/internal/database"
	"stayhaven/internal/domain"
	"stayhaven/internal/events"
	"stayhaven/internal/export"
	"stayhaven/internal/logging"
	"stayhaven/internal/metrics"
	"stayhaven/internal/repository"
	"stayhaven/internal/service"
	"stayhaven/internal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := prepareDirectories(cfg, &logger); err != nil {
		return err
	}

	db, err := database.NewDB(cfg.Database.Path, &logger)
	if err != nil {
		logger.Error().Err(err).Msg("database init failed")
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	redisClient, limiter := initRateLimiter(ctx, cfg, &logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	retryPolicy := worker.RetryPolicy{MaxRetries: 5, InitialDelay: 2 * time.Second, MaxDelay: time.Minute, BackoffFactor: 2}
	notifier := worker.NewLogNotifier(&logger)
	outboxWorker := worker.NewOutboxWorker(db, notifier, redisClient, retryPolicy, &logger)
	go outboxWorker.Start(ctx)

	eventBus := events.NewEventBus()
	subscribeBookingEvents(eventBus, &logger)

	bookingService := service.NewBookingService(db, eventBus, outboxWorker,
		cfg.Booking.MaxBookingDays, cfg.Booking.MaxAdvanceDays, &logger)
	accommodationService := service.NewAccommodationService(db, &logger)
	userService := service.NewUserService(db, &logger)
	reportService := service.NewReportService(db, &logger)
	exporter := export.NewExporter(db, cfg.Exports, &logger)

	sweepInterval := time.Duration(cfg.Booking.CompletionSweepHours) * time.Hour
	sweeper := worker.NewCompletionSweeper(db, bookingService, sweepInterval, &logger)
	go sweeper.Start(ctx)

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	server := api.NewServer(cfg.API, api.Deps{
		Bookings:       bookingService,
		Accommodations: accommodationService,
		Users:          userService,
		Reports:        reportService,
		Limiter:        limiter,
		Exporter:       exporter,
	}, &logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}

	logger.Info().Msg("shutdown complete")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := logging.Component(baseLogger, "api-main")
	return cfg, logger, closer, nil
}

func prepareDirectories(cfg *config.Config, logger *zerolog.Logger) error {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.Error().Err(err).Msg("failed to create database directory")
		return err
	}
	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("failed to create export directory")
		return err
	}
	return nil
}

// initRateLimiter prefers redis with an in-memory fallback; without a
// configured redis address the in-memory limiter runs alone.
func initRateLimiter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*redis.Client, domain.RateLimiter) {
	memory := repository.NewMemoryRateLimiter()
	if cfg.Redis.Address == "" {
		return nil, memory
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, limiter starts on fallback")
	}

	primary := repository.NewRedisRateLimiter(redisClient)
	return redisClient, repository.NewFailoverRateLimiter(primary, memory, logger)
}

// subscribeBookingEvents keeps an audit trail of lifecycle events in the log.
func subscribeBookingEvents(bus *events.EventBus, logger *zerolog.Logger) {
	auditLogger := logging.Component(logger, "booking_events")

	handler := func(ev *events.Event) error {
		var payload events.BookingEventPayload
		if err := json.Unmarshal(ev.Payload, &payload); err != nil {
			auditLogger.Error().Err(err).Str("event", ev.Type).Msg("decode payload")
			return nil
		}
		auditLogger.Info().
			Str("event", ev.Type).
			Int64("booking_id", payload.BookingID).
			Str("code", payload.Code).
			Str("status", payload.Status).
			Int64("changed_by", payload.ChangedByID).
			Msg("booking event")
		return nil
	}

	bus.Subscribe(events.EventBookingCreated, handler)
	bus.Subscribe(events.EventBookingConfirmed, handler)
	bus.Subscribe(events.EventBookingCancelled, handler)
	bus.Subscribe(events.EventBookingCompleted, handler)
}
