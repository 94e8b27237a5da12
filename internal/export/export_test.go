package export

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/config"
	"stayhaven/internal/database"
	"stayhaven/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func setupExporter(t *testing.T) (*Exporter, *database.DB, *models.Accommodation, *models.Room) {
	t.Helper()
	logger := zerolog.Nop()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	host := &models.User{Email: "host@example.com", Username: "host", Role: models.RoleHost}
	require.NoError(t, db.CreateOrUpdateUser(ctx, host))

	acc := &models.Accommodation{HostID: host.ID, Name: "Pine Lodge", Location: "Aspen", Type: "cabin", IsActive: true}
	require.NoError(t, db.CreateAccommodation(ctx, acc))

	room := &models.Room{AccommodationID: acc.ID, RoomType: "double", Capacity: 2, Beds: 1, BasePrice: 120, MinStay: 1, IsAvailable: true}
	require.NoError(t, db.CreateRoom(ctx, room))

	exporter := NewExporter(db, config.ExportConfig{Path: t.TempDir()}, &logger)
	return exporter, db, acc, room
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOccupancyCalendar(t *testing.T) {
	exporter, db, acc, room := setupExporter(t)
	ctx := context.Background()

	guest := &models.User{Email: "guest@example.com", Username: "guest", Role: models.RoleGuest}
	require.NoError(t, db.CreateOrUpdateUser(ctx, guest))

	booking := &models.Booking{
		Code: "RES-EX0001", RoomID: room.ID, GuestID: guest.ID,
		StartDate: date(2025, 6, 2), EndDate: date(2025, 6, 4),
		Guests: 2, TotalPrice: 240, Status: models.StatusPending,
	}
	require.NoError(t, db.CreateBookingWithLock(ctx, booking))

	block := &models.AvailabilityBlock{
		RoomID: room.ID, StartDate: date(2025, 6, 5), EndDate: date(2025, 6, 6), CreatedBy: acc.HostID,
	}
	require.NoError(t, db.CreateBlockWithLock(ctx, block))

	window := availability.DateRange{Start: date(2025, 6, 1), End: date(2025, 6, 8)}
	path, err := exporter.OccupancyCalendar(ctx, acc.ID, window)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue("Occupancy", "A1")
	require.NoError(t, err)
	assert.Contains(t, title, "Pine Lodge")

	// Columns B.. map to June 1..7; the stay occupies June 2 and 3 only.
	expect := map[string]string{
		"B3": "free",
		"C3": "booked",
		"D3": "booked",
		"E3": "free",
		"F3": "blocked",
		"G3": "free",
	}
	for cell, want := range expect {
		got, err := f.GetCellValue("Occupancy", cell)
		require.NoError(t, err)
		assert.Equal(t, want, got, cell)
	}
}

func TestOccupancyCalendarInvalidWindow(t *testing.T) {
	exporter, _, acc, _ := setupExporter(t)

	window := availability.DateRange{Start: date(2025, 6, 8), End: date(2025, 6, 1)}
	_, err := exporter.OccupancyCalendar(context.Background(), acc.ID, window)
	assert.Error(t, err)
}

func TestEarningsReport(t *testing.T) {
	exporter, db, acc, room := setupExporter(t)
	ctx := context.Background()

	guest := &models.User{Email: "guest@example.com", Username: "guest", Role: models.RoleGuest}
	require.NoError(t, db.CreateOrUpdateUser(ctx, guest))

	booking := &models.Booking{
		Code: "RES-EX0002", RoomID: room.ID, GuestID: guest.ID,
		StartDate: date(2025, 6, 1), EndDate: date(2025, 6, 4),
		Guests: 2, TotalPrice: 360, Status: models.StatusPending,
	}
	require.NoError(t, db.CreateBookingWithLock(ctx, booking))
	require.NoError(t, db.UpdateBookingStatusWithVersion(ctx, booking.ID, 1, models.StatusConfirmed))

	period := availability.DateRange{Start: date(2025, 6, 1), End: date(2025, 7, 1)}
	path, err := exporter.EarningsReport(ctx, acc.ID, period)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	revenue, err := f.GetCellValue("Earnings", "D3")
	require.NoError(t, err)
	assert.Equal(t, "360", revenue)

	name, err := f.GetCellValue("Portfolio", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Pine Lodge", name)
}
