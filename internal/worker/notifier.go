package worker

import (
	"stayhaven/internal/models"

	"github.com/rs/zerolog"
)

// LogNotifier records deliveries in the log. It stands in for a mail or
// webhook client until one is configured.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger *zerolog.Logger) *LogNotifier {
	notifierLogger := zerolog.Nop()
	if logger != nil {
		notifierLogger = logger.With().Str("component", "notifier").Logger()
	}
	return &LogNotifier{logger: notifierLogger}
}

func (n *LogNotifier) BookingCreated(booking *models.Booking) error {
	n.logger.Info().
		Int64("booking_id", booking.ID).
		Str("code", booking.Code).
		Int64("room_id", booking.RoomID).
		Time("start_date", booking.StartDate).
		Time("end_date", booking.EndDate).
		Msg("booking created")
	return nil
}

func (n *LogNotifier) BookingStatusChanged(bookingID int64, status string) error {
	n.logger.Info().
		Int64("booking_id", bookingID).
		Str("status", status).
		Msg("booking status changed")
	return nil
}
