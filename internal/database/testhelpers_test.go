package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"stayhaven/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.Nop()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// seedRoom creates a host, an accommodation, and a room, returning the room
// and the host's id.
func seedRoom(t *testing.T, db *DB) (*models.Room, int64) {
	t.Helper()
	ctx := context.Background()

	host := &models.User{Email: "host@example.com", Username: "host", Role: models.RoleHost}
	require.NoError(t, db.CreateOrUpdateUser(ctx, host))

	acc := &models.Accommodation{
		HostID:   host.ID,
		Name:     "Pine Lodge",
		Location: "Aspen",
		Type:     "cabin",
		IsActive: true,
	}
	require.NoError(t, db.CreateAccommodation(ctx, acc))

	room := &models.Room{
		AccommodationID: acc.ID,
		RoomType:        "double",
		Capacity:        2,
		Beds:            1,
		BasePrice:       120,
		MinStay:         1,
		IsAvailable:     true,
	}
	require.NoError(t, db.CreateRoom(ctx, room))

	return room, host.ID
}

func seedGuest(t *testing.T, db *DB, email string) *models.User {
	t.Helper()
	guest := &models.User{Email: email, Username: "guest", Role: models.RoleGuest}
	require.NoError(t, db.CreateOrUpdateUser(context.Background(), guest))
	return guest
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
