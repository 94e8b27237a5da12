package worker

import (
	"context"
	"time"

	"stayhaven/internal/database"

	"github.com/rs/zerolog"
)

// SystemActorID marks transitions driven by background jobs rather than users.
const SystemActorID int64 = 0

// BookingCompleter moves a confirmed booking to completed.
type BookingCompleter interface {
	CompleteBooking(ctx context.Context, bookingID, version, actorID int64) error
}

// CompletionSweeper periodically completes confirmed bookings whose stay
// has ended.
type CompletionSweeper struct {
	db       *database.DB
	bookings BookingCompleter
	interval time.Duration
	logger   zerolog.Logger
}

func NewCompletionSweeper(db *database.DB, bookings BookingCompleter, interval time.Duration, logger *zerolog.Logger) *CompletionSweeper {
	if interval <= 0 {
		interval = time.Hour
	}

	sweeperLogger := zerolog.Nop()
	if logger != nil {
		sweeperLogger = logger.With().Str("component", "completion_sweeper").Logger()
	}

	return &CompletionSweeper{
		db:       db,
		bookings: bookings,
		interval: interval,
		logger:   sweeperLogger,
	}
}

// Start runs the sweep loop until ctx is done. A sweep runs immediately on
// startup to catch stays that ended while the process was down.
func (s *CompletionSweeper) Start(ctx context.Context) {
	s.logger.Info().Dur("interval", s.interval).Msg("started")
	defer s.logger.Info().Msg("stopped")

	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep completes every confirmed booking whose end date has passed.
func (s *CompletionSweeper) Sweep(ctx context.Context) {
	due, err := s.db.GetBookingsDueCompletion(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("fetch due bookings")
		return
	}

	for _, booking := range due {
		if err := s.bookings.CompleteBooking(ctx, booking.ID, booking.Version, SystemActorID); err != nil {
			s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("complete booking")
			continue
		}
		s.logger.Info().Int64("booking_id", booking.ID).Str("code", booking.Code).Msg("booking completed")
	}
}
