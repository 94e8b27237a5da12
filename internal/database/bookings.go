package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stayhaven/internal/availability"
	"stayhaven/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx so calendar reads can run
// inside or outside a booking transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// OccupiedRanges returns the room's committed calendar intersecting the
// window: availability blocks plus pending/confirmed bookings, ordered by
// start date. Half-open interval semantics throughout.
func (db *DB) OccupiedRanges(ctx context.Context, roomID int64, window availability.DateRange) ([]availability.OccupiedRange, error) {
	return occupiedRanges(ctx, db.DB, roomID, window)
}

func occupiedRanges(ctx context.Context, q querier, roomID int64, window availability.DateRange) ([]availability.OccupiedRange, error) {
	query := `SELECT start_date, end_date, 'booking' AS source_type, id FROM bookings
              WHERE room_id = ? AND status IN (?, ?) AND start_date < ? AND ? < end_date
              UNION ALL
              SELECT start_date, end_date, 'block', id FROM availability_blocks
              WHERE room_id = ? AND start_date < ? AND ? < end_date
              ORDER BY start_date`
	rows, err := q.QueryContext(ctx, query,
		roomID, models.StatusPending, models.StatusConfirmed, formatDate(window.End), formatDate(window.Start),
		roomID, formatDate(window.End), formatDate(window.Start),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupied ranges: %w", err)
	}
	defer rows.Close()

	var ranges []availability.OccupiedRange
	for rows.Next() {
		var startStr, endStr, sourceType string
		var sourceID int64
		if err := rows.Scan(&startStr, &endStr, &sourceType, &sourceID); err != nil {
			return nil, fmt.Errorf("failed to scan occupied range: %w", err)
		}
		start, err := parseDate(startStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse range start %s: %w", startStr, err)
		}
		end, err := parseDate(endStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse range end %s: %w", endStr, err)
		}
		ranges = append(ranges, availability.OccupiedRange{
			DateRange:  availability.DateRange{Start: start, End: end},
			SourceType: availability.SourceType(sourceType),
			SourceID:   sourceID,
		})
	}
	return ranges, rows.Err()
}

// IsBlocked reports whether a single date is occupied on the room's calendar.
func (db *DB) IsBlocked(ctx context.Context, roomID int64, date time.Time) (bool, error) {
	day := availability.DateRange{Start: date, End: date.AddDate(0, 0, 1)}
	ranges, err := db.OccupiedRanges(ctx, roomID, day)
	if err != nil {
		return false, err
	}
	return len(ranges) > 0, nil
}

// CreateBookingWithLock inserts the booking inside a single immediate
// transaction that re-reads the room's occupied ranges right before the
// insert. Of two concurrent attempts for overlapping ranges, the loser
// observes the winner's committed row and gets ErrConflict (or ErrBlocked
// when a host block got there first).
func (db *DB) CreateBookingWithLock(ctx context.Context, booking *models.Booking) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var roomExists bool
	err = tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`, booking.RoomID).Scan(&roomExists)
	if err != nil {
		return fmt.Errorf("failed to check room in tx: %w", err)
	}
	if !roomExists {
		return ErrRoomNotFound
	}

	proposed := availability.DateRange{Start: booking.StartDate, End: booking.EndDate}
	ranges, err := occupiedRanges(ctx, tx, booking.RoomID, proposed)
	if err != nil {
		return fmt.Errorf("failed to re-check occupied ranges in tx: %w", err)
	}
	for i := range ranges {
		if !proposed.Overlaps(ranges[i].DateRange) {
			continue
		}
		if ranges[i].SourceType == availability.SourceBlock {
			return ErrBlocked
		}
		return ErrConflict
	}

	now := time.Now()
	query := `INSERT INTO bookings (code, room_id, guest_id, start_date, end_date, guests, status, total_price, created_at, updated_at, version)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := tx.ExecContext(ctx, query,
		booking.Code,
		booking.RoomID,
		booking.GuestID,
		formatDate(booking.StartDate),
		formatDate(booking.EndDate),
		booking.Guests,
		booking.Status,
		booking.TotalPrice,
		now,
		now,
		1,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking in tx: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id in tx: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1

	return tx.Commit()
}

// BookingCodeExists checks code uniqueness before assignment.
func (db *DB) BookingCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bookings WHERE code = ?)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check booking code: %w", err)
	}
	return exists, nil
}

const bookingColumns = `id, code, room_id, guest_id, start_date, end_date, guests, status, total_price, created_at, updated_at, version`

func scanBooking(row interface{ Scan(...any) error }) (*models.Booking, error) {
	var b models.Booking
	var startStr, endStr string
	err := row.Scan(
		&b.ID, &b.Code, &b.RoomID, &b.GuestID, &startStr, &endStr,
		&b.Guests, &b.Status, &b.TotalPrice, &b.CreatedAt, &b.UpdatedAt, &b.Version,
	)
	if err != nil {
		return nil, err
	}
	if b.StartDate, err = parseDate(startStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking start date %s: %w", startStr, err)
	}
	if b.EndDate, err = parseDate(endStr); err != nil {
		return nil, fmt.Errorf("failed to parse booking end date %s: %w", endStr, err)
	}
	return &b, nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

func (db *DB) GetBookingByCode(ctx context.Context, code string) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE code = ?`
	b, err := scanBooking(db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by code: %w", err)
	}
	return b, nil
}

// UpdateBookingStatusWithVersion performs an optimistic status update. A
// stale version means another writer got there first.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status string) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ? WHERE id = ? AND version = ?`
	result, err := db.ExecContext(ctx, query, status, time.Now(), id, fromVersion)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (db *DB) GetRoomBookings(ctx context.Context, roomID int64, window availability.DateRange) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE room_id = ? AND start_date < ? AND ? < end_date
              ORDER BY start_date`
	return db.queryBookings(ctx, query, roomID, formatDate(window.End), formatDate(window.Start))
}

func (db *DB) GetGuestBookings(ctx context.Context, guestID int64) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE guest_id = ? ORDER BY start_date DESC`
	return db.queryBookings(ctx, query, guestID)
}

// GetHostBookings returns all bookings on rooms whose accommodation belongs
// to the host, newest stay first.
func (db *DB) GetHostBookings(ctx context.Context, hostID int64) ([]*models.Booking, error) {
	query := `SELECT b.id, b.code, b.room_id, b.guest_id, b.start_date, b.end_date,
                     b.guests, b.status, b.total_price, b.created_at, b.updated_at, b.version
              FROM bookings b
              JOIN rooms r ON b.room_id = r.id
              JOIN accommodations a ON r.accommodation_id = a.id
              WHERE a.host_id = ?
              ORDER BY b.start_date DESC`
	return db.queryBookings(ctx, query, hostID)
}

// GetBookingsDueCompletion lists confirmed bookings whose checkout has
// passed as of the given date. Used by the completion sweeper.
func (db *DB) GetBookingsDueCompletion(ctx context.Context, asOf time.Time) ([]*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
              WHERE status = ? AND end_date <= ?
              ORDER BY end_date`
	return db.queryBookings(ctx, query, models.StatusConfirmed, formatDate(asOf))
}
