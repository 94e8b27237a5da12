package worker

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"stayhaven/internal/database"
	"stayhaven/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *database.DB {
	t.Helper()
	logger := zerolog.Nop()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.NewDB(dbPath, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedBooking creates the host, accommodation, room, guest and one booking.
func seedBooking(t *testing.T, db *database.DB, code string, start, end time.Time) *models.Booking {
	t.Helper()
	ctx := context.Background()

	host := &models.User{Email: "host@example.com", Username: "host", Role: models.RoleHost}
	require.NoError(t, db.CreateOrUpdateUser(ctx, host))

	acc := &models.Accommodation{HostID: host.ID, Name: "Pine Lodge", Location: "Aspen", Type: "cabin", IsActive: true}
	require.NoError(t, db.CreateAccommodation(ctx, acc))

	room := &models.Room{AccommodationID: acc.ID, RoomType: "double", Capacity: 2, Beds: 1, BasePrice: 120, MinStay: 1, IsAvailable: true}
	require.NoError(t, db.CreateRoom(ctx, room))

	guest := &models.User{Email: "guest@example.com", Username: "guest", Role: models.RoleGuest}
	require.NoError(t, db.CreateOrUpdateUser(ctx, guest))

	booking := &models.Booking{
		Code:       code,
		RoomID:     room.ID,
		GuestID:    guest.ID,
		StartDate:  start,
		EndDate:    end,
		Guests:     2,
		TotalPrice: 240,
		Status:     models.StatusPending,
	}
	require.NoError(t, db.CreateBookingWithLock(ctx, booking))
	return booking
}

// fakeNotifier records deliveries and can be told to fail.
type fakeNotifier struct {
	mu       sync.Mutex
	created  []*models.Booking
	statuses map[int64]string
	err      error
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{statuses: make(map[int64]string)}
}

func (f *fakeNotifier) BookingCreated(booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, booking)
	return nil
}

func (f *fakeNotifier) BookingStatusChanged(bookingID int64, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.statuses[bookingID] = status
	return nil
}

func (f *fakeNotifier) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeNotifier) createdCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}
