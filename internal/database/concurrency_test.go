package database

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"stayhaven/internal/availability"
	"stayhaven/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentBooking(t *testing.T) {
	db := setupTestDB(t)
	room, _ := seedRoom(t, db)
	guest := seedGuest(t, db, "guest@example.com")
	ctx := context.Background()

	start := date(2025, 6, 10)
	end := date(2025, 6, 13)

	const numGoroutines = 10
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			booking := &models.Booking{
				Code:       fmt.Sprintf("RES-CQ%04d", id),
				RoomID:     room.ID,
				GuestID:    guest.ID,
				StartDate:  start,
				EndDate:    end,
				Guests:     1,
				Status:     models.StatusPending,
				TotalPrice: 360,
			}
			results <- db.CreateBookingWithLock(ctx, booking)
		}(i)
	}

	wg.Wait()
	close(results)

	successCount := 0
	conflictCount := 0
	for err := range results {
		switch {
		case err == nil:
			successCount++
		case assert.ErrorIs(t, err, ErrConflict):
			conflictCount++
		}
	}

	// Exactly one writer wins the range; everyone else sees its committed row.
	assert.Equal(t, 1, successCount, "exactly one booking should win the date range")
	assert.Equal(t, numGoroutines-1, conflictCount)

	window := availability.DateRange{Start: start, End: end}
	ranges, err := db.OccupiedRanges(ctx, room.ID, window)
	require.NoError(t, err)
	assert.Len(t, ranges, 1)
}

func TestConcurrentDisjointBookings(t *testing.T) {
	db := setupTestDB(t)
	room, _ := seedRoom(t, db)
	guest := seedGuest(t, db, "guest@example.com")
	ctx := context.Background()

	// Adjacent half-open weeks never collide, so all writers must succeed.
	const numGoroutines = 5
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make(chan error, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			booking := &models.Booking{
				Code:       fmt.Sprintf("RES-DQ%04d", id),
				RoomID:     room.ID,
				GuestID:    guest.ID,
				StartDate:  date(2025, 6, 1).AddDate(0, 0, id*7),
				EndDate:    date(2025, 6, 8).AddDate(0, 0, id*7),
				Guests:     1,
				Status:     models.StatusPending,
				TotalPrice: 840,
			}
			results <- db.CreateBookingWithLock(ctx, booking)
		}(i)
	}

	wg.Wait()
	close(results)

	for err := range results {
		assert.NoError(t, err)
	}

	window := availability.DateRange{Start: date(2025, 6, 1), End: date(2025, 8, 1)}
	ranges, err := db.OccupiedRanges(ctx, room.ID, window)
	require.NoError(t, err)
	assert.Len(t, ranges, numGoroutines)
}
