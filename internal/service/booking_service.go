package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/database"
	"stayhaven/internal/domain"
	"stayhaven/internal/events"
	"stayhaven/internal/metrics"
	"stayhaven/internal/models"

	"github.com/rs/zerolog"
)

// systemActorID marks lifecycle transitions driven by background jobs.
// System transitions skip the actor authorization checks.
const systemActorID int64 = 0

const codeAttempts = 5

type BookingService struct {
	repo           domain.Repository
	eventBus       domain.EventPublisher
	outbox         domain.OutboxWorker
	maxBookingDays int
	maxAdvanceDays int
	logger         *zerolog.Logger
}

func NewBookingService(repo domain.Repository, eventBus domain.EventPublisher, outbox domain.OutboxWorker, maxBookingDays, maxAdvanceDays int, logger *zerolog.Logger) *BookingService {
	if maxBookingDays <= 0 {
		maxBookingDays = 30
	}
	if maxAdvanceDays <= 0 {
		maxAdvanceDays = models.DefaultMaxBookingDays
	}
	return &BookingService{
		repo:           repo,
		eventBus:       eventBus,
		outbox:         outbox,
		maxBookingDays: maxBookingDays,
		maxAdvanceDays: maxAdvanceDays,
		logger:         logger,
	}
}

// ValidateStayDates bounds when a stay may start. The check-in day itself is
// still bookable until midnight passes.
func (s *BookingService) ValidateStayDates(start time.Time) error {
	today := time.Now().Truncate(24 * time.Hour)
	if start.Before(today) {
		return database.ErrPastDate
	}

	maxStart := time.Now().AddDate(0, 0, s.maxAdvanceDays)
	if start.After(maxStart) {
		return database.ErrDateTooFar
	}

	return nil
}

// CreateBooking validates the request against the room's calendar and, if it
// passes, persists the booking as pending. The overlap check runs twice: once
// here against a snapshot, and again inside the insert transaction, so two
// racing requests for the same dates cannot both succeed.
func (s *BookingService) CreateBooking(ctx context.Context, booking *models.Booking) error {
	room, err := s.repo.GetRoom(ctx, booking.RoomID)
	if err != nil {
		return err
	}

	if booking.Guests < 1 {
		booking.Guests = 1
	}
	if booking.Guests > room.Capacity {
		return database.ErrCapacityExceeded
	}

	if err := s.ValidateStayDates(booking.StartDate); err != nil {
		return err
	}

	proposed := availability.DateRange{Start: booking.StartDate, End: booking.EndDate}
	if proposed.IsValid() && proposed.Nights() > s.maxBookingDays {
		return &availability.Rejection{Reason: availability.ReasonAboveMaximumStay}
	}

	occupied, err := s.repo.OccupiedRanges(ctx, booking.RoomID, proposed)
	if err != nil {
		return err
	}

	if rejection := availability.Validate(room, proposed, occupied); rejection != nil {
		metrics.IncBookingRejected(string(rejection.Reason))
		switch rejection.Reason {
		case availability.ReasonConflict:
			return database.ErrConflict
		case availability.ReasonBlocked:
			return database.ErrBlocked
		default:
			return rejection
		}
	}

	if booking.TotalPrice == 0 {
		booking.TotalPrice = room.BasePrice * float64(proposed.Nights())
	}

	code, err := s.generateCode(ctx)
	if err != nil {
		return err
	}
	booking.Code = code
	booking.Status = models.StatusPending

	if err := s.repo.CreateBookingWithLock(ctx, booking); err != nil {
		if err == database.ErrConflict || err == database.ErrBlocked {
			metrics.IncBookingRejected("conflict_on_commit")
		}
		return err
	}

	metrics.IncBookingCreated()
	s.publishEvent(events.EventBookingCreated, booking, systemActorID)
	s.enqueueNotify(ctx, booking)

	return nil
}

// ConfirmBooking moves a pending booking to confirmed. Only the room's host
// or an admin may confirm.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID, version, actorID int64) error {
	return s.transition(ctx, bookingID, version, actorID, models.StatusConfirmed, hostOnly)
}

// CancelBooking cancels a pending or confirmed booking, freeing its dates.
// The booking's guest, the room's host, and admins may cancel.
func (s *BookingService) CancelBooking(ctx context.Context, bookingID, version, actorID int64) error {
	return s.transition(ctx, bookingID, version, actorID, models.StatusCancelled, guestOrHost)
}

// CompleteBooking moves a confirmed booking to completed once the stay has
// ended. Completing an already completed booking is a no-op.
func (s *BookingService) CompleteBooking(ctx context.Context, bookingID, version, actorID int64) error {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status == models.StatusCompleted {
		return nil
	}
	return s.transition(ctx, bookingID, version, actorID, models.StatusCompleted, hostOnly)
}

type authzRule int

const (
	hostOnly authzRule = iota
	guestOrHost
)

func (s *BookingService) transition(ctx context.Context, bookingID, version, actorID int64, target string, rule authzRule) error {
	booking, err := s.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.authorize(ctx, booking, actorID, rule); err != nil {
		return err
	}

	if !models.CanTransition(booking.Status, target) {
		return database.ErrInvalidTransition
	}

	if err := s.repo.UpdateBookingStatusWithVersion(ctx, bookingID, version, target); err != nil {
		return err
	}

	metrics.IncStatusTransition(target)

	booking, err = s.repo.GetBooking(ctx, bookingID)
	if err == nil {
		s.publishEvent(eventForStatus(target), booking, actorID)
		s.enqueueStatusNotify(ctx, booking)
	}

	return nil
}

func (s *BookingService) authorize(ctx context.Context, booking *models.Booking, actorID int64, rule authzRule) error {
	if actorID == systemActorID {
		return nil
	}

	if rule == guestOrHost && actorID == booking.GuestID {
		return nil
	}

	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}

	hostID, err := s.repo.GetRoomHost(ctx, booking.RoomID)
	if err != nil {
		return err
	}
	if actorID == hostID {
		return nil
	}

	return database.ErrUnauthorized
}

func eventForStatus(status string) string {
	switch status {
	case models.StatusConfirmed:
		return events.EventBookingConfirmed
	case models.StatusCancelled:
		return events.EventBookingCancelled
	case models.StatusCompleted:
		return events.EventBookingCompleted
	default:
		return ""
	}
}

func (s *BookingService) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	return s.repo.GetBooking(ctx, id)
}

func (s *BookingService) GetBookingByCode(ctx context.Context, code string) (*models.Booking, error) {
	return s.repo.GetBookingByCode(ctx, code)
}

func (s *BookingService) GetGuestBookings(ctx context.Context, guestID int64) ([]*models.Booking, error) {
	return s.repo.GetGuestBookings(ctx, guestID)
}

func (s *BookingService) GetHostBookings(ctx context.Context, hostID int64) ([]*models.Booking, error) {
	return s.repo.GetHostBookings(ctx, hostID)
}

func (s *BookingService) GetRoomCalendar(ctx context.Context, roomID int64, window availability.DateRange) ([]*models.RoomAvailability, error) {
	return s.repo.GetRoomCalendar(ctx, roomID, window)
}

// CreateBlock marks a date range unavailable on the room's calendar. Only the
// room's host or an admin may place blocks, and a block cannot cover dates
// already taken by an active booking.
func (s *BookingService) CreateBlock(ctx context.Context, block *models.AvailabilityBlock, actorID int64) error {
	if err := s.authorizeRoomOwner(ctx, block.RoomID, actorID); err != nil {
		return err
	}

	blockRange := availability.DateRange{Start: block.StartDate, End: block.EndDate}
	if !blockRange.IsValid() {
		return &availability.Rejection{Reason: availability.ReasonInvalidRange}
	}

	if block.Reason == "" {
		block.Reason = models.BlockReasonMaintenance
	}
	block.CreatedBy = actorID

	if err := s.repo.CreateBlockWithLock(ctx, block); err != nil {
		return err
	}

	if s.eventBus != nil {
		payload := events.BlockEventPayload{
			BlockID:   block.ID,
			RoomID:    block.RoomID,
			HostID:    actorID,
			StartDate: block.StartDate,
			EndDate:   block.EndDate,
			Reason:    block.Reason,
		}
		if err := s.eventBus.PublishJSON(events.EventBlockCreated, payload); err != nil {
			s.logger.Error().Err(err).Int64("block_id", block.ID).Msg("publish event error")
		}
	}

	return nil
}

// DeleteBlock removes a host block, reopening its dates.
func (s *BookingService) ListBlocks(ctx context.Context, roomID int64) ([]*models.AvailabilityBlock, error) {
	return s.repo.GetBlocksByRoom(ctx, roomID)
}

func (s *BookingService) DeleteBlock(ctx context.Context, blockID, actorID int64) error {
	block, err := s.repo.GetBlock(ctx, blockID)
	if err != nil {
		return err
	}

	if err := s.authorizeRoomOwner(ctx, block.RoomID, actorID); err != nil {
		return err
	}

	if err := s.repo.DeleteBlock(ctx, blockID); err != nil {
		return err
	}

	if s.eventBus != nil {
		payload := events.BlockEventPayload{
			BlockID: block.ID,
			RoomID:  block.RoomID,
			HostID:  actorID,
		}
		if err := s.eventBus.PublishJSON(events.EventBlockDeleted, payload); err != nil {
			s.logger.Error().Err(err).Int64("block_id", blockID).Msg("publish event error")
		}
	}

	return nil
}

func (s *BookingService) authorizeRoomOwner(ctx context.Context, roomID, actorID int64) error {
	if actorID == systemActorID {
		return nil
	}

	actor, err := s.repo.GetUserByID(ctx, actorID)
	if err != nil {
		return err
	}
	if actor.Role == models.RoleAdmin {
		return nil
	}

	hostID, err := s.repo.GetRoomHost(ctx, roomID)
	if err != nil {
		return err
	}
	if actorID != hostID {
		return database.ErrUnauthorized
	}

	return nil
}

const codeLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateCode produces a reservation code of the form RES-XXNNNN and checks
// it against existing bookings to rule out collisions.
func (s *BookingService) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code := fmt.Sprintf("RES-%c%c%04d",
			codeLetters[rand.Intn(len(codeLetters))],
			codeLetters[rand.Intn(len(codeLetters))],
			rand.Intn(10000),
		)

		exists, err := s.repo.BookingCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique booking code after %d attempts", codeAttempts)
}

func (s *BookingService) publishEvent(eventType string, booking *models.Booking, actorID int64) {
	if s.eventBus == nil || eventType == "" {
		return
	}

	payload := events.BookingEventPayload{
		BookingID:   booking.ID,
		Code:        booking.Code,
		RoomID:      booking.RoomID,
		GuestID:     booking.GuestID,
		Status:      booking.Status,
		StartDate:   booking.StartDate,
		EndDate:     booking.EndDate,
		TotalPrice:  booking.TotalPrice,
		ChangedByID: actorID,
	}

	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Int64("booking_id", booking.ID).Msg("publish event error")
	}
}

func (s *BookingService) enqueueNotify(ctx context.Context, booking *models.Booking) {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.EnqueueTask(ctx, "notify_created", booking.ID, booking, ""); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("outbox enqueue error")
	}
}

func (s *BookingService) enqueueStatusNotify(ctx context.Context, booking *models.Booking) {
	if s.outbox == nil {
		return
	}
	if err := s.outbox.EnqueueTask(ctx, "notify_status", booking.ID, booking, booking.Status); err != nil {
		s.logger.Error().Err(err).Int64("booking_id", booking.ID).Msg("outbox enqueue error")
	}
}
