package service

import (
	"context"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/models"

	"github.com/stretchr/testify/mock"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBookingByCode(ctx context.Context, code string) (*models.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}
func (m *mockRepo) CreateBookingWithLock(ctx context.Context, b *models.Booking) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) BookingCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}
func (m *mockRepo) UpdateBookingStatusWithVersion(ctx context.Context, id, v int64, s string) error {
	return m.Called(ctx, id, v, s).Error(0)
}
func (m *mockRepo) OccupiedRanges(ctx context.Context, roomID int64, w availability.DateRange) ([]availability.OccupiedRange, error) {
	args := m.Called(ctx, roomID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]availability.OccupiedRange), args.Error(1)
}
func (m *mockRepo) GetRoomBookings(ctx context.Context, roomID int64, w availability.DateRange) ([]*models.Booking, error) {
	args := m.Called(ctx, roomID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetGuestBookings(ctx context.Context, guestID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetHostBookings(ctx context.Context, hostID int64) ([]*models.Booking, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}
func (m *mockRepo) GetBookingsDueCompletion(ctx context.Context, asOf time.Time) ([]*models.Booking, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Booking), args.Error(1)
}

func (m *mockRepo) CreateRoom(ctx context.Context, r *models.Room) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
func (m *mockRepo) UpdateRoom(ctx context.Context, r *models.Room) error {
	return m.Called(ctx, r).Error(0)
}
func (m *mockRepo) DeleteRoom(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) GetRoomsByAccommodation(ctx context.Context, accID int64) ([]*models.Room, error) {
	args := m.Called(ctx, accID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Room), args.Error(1)
}
func (m *mockRepo) GetRoomHost(ctx context.Context, roomID int64) (int64, error) {
	args := m.Called(ctx, roomID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepo) CreateAccommodation(ctx context.Context, a *models.Accommodation) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockRepo) GetAccommodation(ctx context.Context, id int64) (*models.Accommodation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Accommodation), args.Error(1)
}
func (m *mockRepo) UpdateAccommodation(ctx context.Context, a *models.Accommodation) error {
	return m.Called(ctx, a).Error(0)
}
func (m *mockRepo) DeleteAccommodation(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) GetActiveAccommodations(ctx context.Context) ([]*models.Accommodation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Accommodation), args.Error(1)
}
func (m *mockRepo) GetAccommodationsByHost(ctx context.Context, hostID int64) ([]*models.Accommodation, error) {
	args := m.Called(ctx, hostID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Accommodation), args.Error(1)
}

func (m *mockRepo) CreateBlockWithLock(ctx context.Context, b *models.AvailabilityBlock) error {
	return m.Called(ctx, b).Error(0)
}
func (m *mockRepo) DeleteBlock(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockRepo) GetBlock(ctx context.Context, id int64) (*models.AvailabilityBlock, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityBlock), args.Error(1)
}
func (m *mockRepo) GetBlocksByRoom(ctx context.Context, roomID int64) ([]*models.AvailabilityBlock, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AvailabilityBlock), args.Error(1)
}

func (m *mockRepo) CreateOrUpdateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}
func (m *mockRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *mockRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *mockRepo) GetRoomReport(ctx context.Context, roomID int64, p availability.DateRange) (*models.BookingReport, error) {
	args := m.Called(ctx, roomID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingReport), args.Error(1)
}
func (m *mockRepo) GetHostReport(ctx context.Context, hostID int64, p availability.DateRange) (*models.BookingReport, error) {
	args := m.Called(ctx, hostID, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingReport), args.Error(1)
}
func (m *mockRepo) GetIncomeByAccommodation(ctx context.Context) ([]*models.AccommodationIncome, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AccommodationIncome), args.Error(1)
}
func (m *mockRepo) GetBookingsGroupedByPeriod(ctx context.Context, period string, accID int64) ([]*models.PeriodBookingCount, error) {
	args := m.Called(ctx, period, accID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PeriodBookingCount), args.Error(1)
}
func (m *mockRepo) GetRoomCalendar(ctx context.Context, roomID int64, w availability.DateRange) ([]*models.RoomAvailability, error) {
	args := m.Called(ctx, roomID, w)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.RoomAvailability), args.Error(1)
}

func (m *mockRepo) CreateOutboxTask(ctx context.Context, t *models.OutboxTask) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockRepo) GetPendingOutboxTasks(ctx context.Context, limit int) ([]models.OutboxTask, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OutboxTask), args.Error(1)
}
func (m *mockRepo) UpdateOutboxTaskStatus(ctx context.Context, id int64, status, errMsg string, next *time.Time) error {
	return m.Called(ctx, id, status, errMsg, next).Error(0)
}
func (m *mockRepo) GetFailedOutboxTasks(ctx context.Context) ([]models.OutboxTask, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OutboxTask), args.Error(1)
}

type mockOutbox struct {
	mock.Mock
}

func (m *mockOutbox) EnqueueTask(ctx context.Context, taskType string, bookingID int64, booking *models.Booking, status string) error {
	return m.Called(ctx, taskType, bookingID, booking, status).Error(0)
}
