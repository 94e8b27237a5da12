package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayhaven/internal/models"
)

const roomColumns = `id, accommodation_id, room_type, capacity, beds, amenities, base_price, min_stay, max_stay, is_available, created_at, updated_at`

func scanRoom(row interface{ Scan(...any) error }) (*models.Room, error) {
	var r models.Room
	err := row.Scan(
		&r.ID, &r.AccommodationID, &r.RoomType, &r.Capacity, &r.Beds, &r.Amenities,
		&r.BasePrice, &r.MinStay, &r.MaxStay, &r.IsAvailable, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *DB) CreateRoom(ctx context.Context, room *models.Room) error {
	query := `INSERT INTO rooms (accommodation_id, room_type, capacity, beds, amenities, base_price, min_stay, max_stay, is_available, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	now := time.Now()
	if room.Beds <= 0 {
		room.Beds = 1
	}
	if room.MinStay <= 0 {
		room.MinStay = 1
	}
	result, err := db.ExecContext(ctx, query,
		room.AccommodationID,
		room.RoomType,
		room.Capacity,
		room.Beds,
		room.Amenities,
		room.BasePrice,
		room.MinStay,
		room.MaxStay,
		room.IsAvailable,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	room.ID = id
	room.CreatedAt = now
	room.UpdatedAt = now

	return nil
}

func (db *DB) GetRoom(ctx context.Context, id int64) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = ?`
	room, err := scanRoom(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

func (db *DB) UpdateRoom(ctx context.Context, room *models.Room) error {
	query := `UPDATE rooms SET room_type = ?, capacity = ?, beds = ?, amenities = ?, base_price = ?,
                     min_stay = ?, max_stay = ?, is_available = ?, updated_at = ?
              WHERE id = ?`
	result, err := db.ExecContext(ctx, query,
		room.RoomType, room.Capacity, room.Beds, room.Amenities, room.BasePrice,
		room.MinStay, room.MaxStay, room.IsAvailable, time.Now(), room.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (db *DB) DeleteRoom(ctx context.Context, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (db *DB) GetRoomsByAccommodation(ctx context.Context, accommodationID int64) ([]*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE accommodation_id = ? ORDER BY room_type`
	rows, err := db.QueryContext(ctx, query, accommodationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		r, err := scanRoom(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// GetRoomHost returns the id of the host owning the room's accommodation.
func (db *DB) GetRoomHost(ctx context.Context, roomID int64) (int64, error) {
	var hostID int64
	query := `SELECT a.host_id FROM rooms r JOIN accommodations a ON r.accommodation_id = a.id WHERE r.id = ?`
	err := db.QueryRowContext(ctx, query, roomID).Scan(&hostID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrRoomNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get room host: %w", err)
	}
	return hostID, nil
}
