package domain

import (
	"context"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/models"
)

type Repository interface {
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingByCode(ctx context.Context, code string) (*models.Booking, error)
	CreateBookingWithLock(ctx context.Context, booking *models.Booking) error
	BookingCodeExists(ctx context.Context, code string) (bool, error)
	UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status string) error
	OccupiedRanges(ctx context.Context, roomID int64, window availability.DateRange) ([]availability.OccupiedRange, error)
	GetRoomBookings(ctx context.Context, roomID int64, window availability.DateRange) ([]*models.Booking, error)
	GetGuestBookings(ctx context.Context, guestID int64) ([]*models.Booking, error)
	GetHostBookings(ctx context.Context, hostID int64) ([]*models.Booking, error)
	GetBookingsDueCompletion(ctx context.Context, asOf time.Time) ([]*models.Booking, error)

	CreateRoom(ctx context.Context, room *models.Room) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	UpdateRoom(ctx context.Context, room *models.Room) error
	DeleteRoom(ctx context.Context, id int64) error
	GetRoomsByAccommodation(ctx context.Context, accommodationID int64) ([]*models.Room, error)
	GetRoomHost(ctx context.Context, roomID int64) (int64, error)

	CreateAccommodation(ctx context.Context, acc *models.Accommodation) error
	GetAccommodation(ctx context.Context, id int64) (*models.Accommodation, error)
	UpdateAccommodation(ctx context.Context, acc *models.Accommodation) error
	DeleteAccommodation(ctx context.Context, id int64) error
	GetActiveAccommodations(ctx context.Context) ([]*models.Accommodation, error)
	GetAccommodationsByHost(ctx context.Context, hostID int64) ([]*models.Accommodation, error)

	CreateBlockWithLock(ctx context.Context, block *models.AvailabilityBlock) error
	DeleteBlock(ctx context.Context, id int64) error
	GetBlock(ctx context.Context, id int64) (*models.AvailabilityBlock, error)
	GetBlocksByRoom(ctx context.Context, roomID int64) ([]*models.AvailabilityBlock, error)

	CreateOrUpdateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)

	GetRoomReport(ctx context.Context, roomID int64, period availability.DateRange) (*models.BookingReport, error)
	GetHostReport(ctx context.Context, hostID int64, period availability.DateRange) (*models.BookingReport, error)
	GetIncomeByAccommodation(ctx context.Context) ([]*models.AccommodationIncome, error)
	GetBookingsGroupedByPeriod(ctx context.Context, period string, accommodationID int64) ([]*models.PeriodBookingCount, error)
	GetRoomCalendar(ctx context.Context, roomID int64, window availability.DateRange) ([]*models.RoomAvailability, error)

	CreateOutboxTask(ctx context.Context, task *models.OutboxTask) error
	GetPendingOutboxTasks(ctx context.Context, limit int) ([]models.OutboxTask, error)
	UpdateOutboxTaskStatus(ctx context.Context, id int64, status, errMsg string, nextRetryAt *time.Time) error
	GetFailedOutboxTasks(ctx context.Context) ([]models.OutboxTask, error)
}

// RateLimiter throttles per-client request bursts.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	ConfirmBooking(ctx context.Context, bookingID, version, actorID int64) error
	CancelBooking(ctx context.Context, bookingID, version, actorID int64) error
	CompleteBooking(ctx context.Context, bookingID, version, actorID int64) error
	GetBooking(ctx context.Context, id int64) (*models.Booking, error)
	GetBookingByCode(ctx context.Context, code string) (*models.Booking, error)
	GetGuestBookings(ctx context.Context, guestID int64) ([]*models.Booking, error)
	GetHostBookings(ctx context.Context, hostID int64) ([]*models.Booking, error)
	GetRoomCalendar(ctx context.Context, roomID int64, window availability.DateRange) ([]*models.RoomAvailability, error)
	CreateBlock(ctx context.Context, block *models.AvailabilityBlock, actorID int64) error
	ListBlocks(ctx context.Context, roomID int64) ([]*models.AvailabilityBlock, error)
	DeleteBlock(ctx context.Context, blockID, actorID int64) error
}

type AccommodationService interface {
	CreateAccommodation(ctx context.Context, acc *models.Accommodation, actorID int64) error
	UpdateAccommodation(ctx context.Context, acc *models.Accommodation, actorID int64) error
	DeleteAccommodation(ctx context.Context, id, actorID int64) error
	GetAccommodation(ctx context.Context, id int64) (*models.Accommodation, error)
	ListAccommodations(ctx context.Context) ([]*models.Accommodation, error)
	ListByHost(ctx context.Context, hostID int64) ([]*models.Accommodation, error)
	CreateRoom(ctx context.Context, room *models.Room, actorID int64) error
	UpdateRoom(ctx context.Context, room *models.Room, actorID int64) error
	DeleteRoom(ctx context.Context, roomID, actorID int64) error
	GetRoom(ctx context.Context, id int64) (*models.Room, error)
	ListRooms(ctx context.Context, accommodationID int64) ([]*models.Room, error)
}

type UserService interface {
	RegisterUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
}

type ReportService interface {
	RoomReport(ctx context.Context, roomID int64, period availability.DateRange) (*models.BookingReport, error)
	HostReport(ctx context.Context, hostID int64, period availability.DateRange) (*models.BookingReport, error)
	IncomeByAccommodation(ctx context.Context) ([]*models.AccommodationIncome, error)
	BookingsByPeriod(ctx context.Context, period string, accommodationID int64) ([]*models.PeriodBookingCount, error)
}

// OutboxWorker hands side effects off for asynchronous delivery.
type OutboxWorker interface {
	EnqueueTask(ctx context.Context, taskType string, bookingID int64, booking *models.Booking, status string) error
}
